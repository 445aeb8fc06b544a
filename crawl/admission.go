package crawl

import (
	"net/url"
	"path"
	"strings"

	"github.com/fwojciec/sitepdf"
)

// Admission check names reported by Check.
const (
	RejectExcludedURL    = "excluded-url"
	RejectKeyword        = "keyword"
	RejectExcludedPath   = "excluded-path"
	RejectRestrictedPath = "restricted-path"
)

// Admission decides whether a visited page's content goes into the
// document. Every check is a veto; the first failing one wins.
type Admission struct {
	excludeURLs    map[string]struct{}
	excludePaths   []string
	keyword        string
	restrict       bool
	restrictPrefix string
}

// NewAdmission builds the admission rules of the chain starting at seed.
// When path restriction is enabled without an explicit prefix, the seed's
// directory is used.
func NewAdmission(cfg *sitepdf.Config, seed string) *Admission {
	a := &Admission{
		excludeURLs:    make(map[string]struct{}, len(cfg.ExcludeURLs)),
		keyword:        strings.TrimSpace(cfg.FilterKeyword),
		restrict:       cfg.RestrictPath,
		restrictPrefix: cfg.RestrictPathPrefix,
	}
	for _, u := range cfg.ExcludeURLs {
		a.excludeURLs[u] = struct{}{}
	}
	for _, p := range cfg.ExcludePaths {
		if p != "" {
			a.excludePaths = append(a.excludePaths, p)
		}
	}
	if a.restrict && a.restrictPrefix == "" {
		a.restrictPrefix = seedDir(seed)
	}
	return a
}

// Check returns whether rawURL is kept and, if not, the name of the check
// that rejected it. keywords is the page's keyword metadata.
func (a *Admission) Check(rawURL string, keywords []string) (bool, string) {
	if _, ok := a.excludeURLs[rawURL]; ok {
		return false, RejectExcludedURL
	}

	if a.keyword != "" && !containsKeyword(keywords, a.keyword) {
		return false, RejectKeyword
	}

	urlPath := ""
	if u, err := url.Parse(rawURL); err == nil {
		urlPath = u.Path
	}

	for _, p := range a.excludePaths {
		if strings.Contains(urlPath, p) {
			return false, RejectExcludedPath
		}
	}

	if a.restrict && !strings.HasPrefix(urlPath, a.restrictPrefix) {
		return false, RejectRestrictedPath
	}

	return true, ""
}

// IsKept reports whether rawURL passes every check.
func (a *Admission) IsKept(rawURL string, keywords []string) bool {
	kept, _ := a.Check(rawURL, keywords)
	return kept
}

func containsKeyword(keywords []string, keyword string) bool {
	for _, kw := range keywords {
		if strings.TrimSpace(kw) == keyword {
			return true
		}
	}
	return false
}

// seedDir returns the directory part of the seed's path: "/docs/" for
// "/docs/intro" and "/docs/" for "/docs/".
func seedDir(seed string) string {
	u, err := url.Parse(seed)
	if err != nil || u.Path == "" {
		return "/"
	}
	if strings.HasSuffix(u.Path, "/") {
		return u.Path
	}
	dir := path.Dir(u.Path)
	if dir == "/" {
		return dir
	}
	return dir + "/"
}
