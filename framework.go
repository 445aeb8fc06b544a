package sitepdf

import (
	"sort"
	"strings"
)

// Framework identifies a documentation framework.
type Framework string

// Known documentation frameworks.
const (
	FrameworkUnknown    Framework = ""
	FrameworkDocusaurus Framework = "docusaurus"
	FrameworkMkDocs     Framework = "mkdocs"
	FrameworkSphinx     Framework = "sphinx"
	FrameworkVuePress   Framework = "vuepress"
	FrameworkVitePress  Framework = "vitepress"
	FrameworkGitBook    Framework = "gitbook"
	FrameworkNextra     Framework = "nextra"
)

// FrameworkDetector identifies documentation frameworks from HTML.
type FrameworkDetector interface {
	// Detect returns FrameworkUnknown if the framework cannot be determined.
	Detect(html string) Framework
}

// Preset holds the selectors that fit pages generated by one framework.
type Preset struct {
	ContentSelector    string
	PaginationSelector string
	ExcludeSelectors   []string
}

var presets = map[Framework]Preset{
	FrameworkDocusaurus: {
		ContentSelector:    "article",
		PaginationSelector: "a.pagination-nav__link--next",
		ExcludeSelectors:   []string{".theme-doc-breadcrumbs", ".theme-doc-toc-mobile", ".theme-doc-footer"},
	},
	FrameworkMkDocs: {
		ContentSelector:    "article.md-content__inner",
		PaginationSelector: "a.md-footer__link--next",
		ExcludeSelectors:   []string{".md-content__button", ".md-source-file"},
	},
	FrameworkSphinx: {
		ContentSelector:    "div[role=main]",
		PaginationSelector: "a[rel=next]",
		ExcludeSelectors:   []string{".headerlink"},
	},
	FrameworkVitePress: {
		ContentSelector:    ".vp-doc",
		PaginationSelector: "a.pager-link.next",
		ExcludeSelectors:   []string{".header-anchor"},
	},
	FrameworkVuePress: {
		ContentSelector:    ".theme-default-content",
		PaginationSelector: ".page-nav .next a",
		ExcludeSelectors:   []string{".header-anchor"},
	},
}

// LookupPreset returns the preset of the named framework.
func LookupPreset(name string) (Preset, error) {
	p, ok := presets[Framework(strings.ToLower(strings.TrimSpace(name)))]
	if !ok {
		return Preset{}, Errorf(EINVALID, "unknown preset %q (known: %s)", name, strings.Join(PresetNames(), ", "))
	}
	return p, nil
}

// HasPreset reports whether f has a preset.
func HasPreset(f Framework) bool {
	_, ok := presets[f]
	return ok
}

// PresetNames lists the frameworks that have a preset, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for f := range presets {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return names
}

// Apply fills the selectors of cfg the user left empty. Exclude selectors
// are added to the user's own.
func (p Preset) Apply(cfg *Config) {
	if cfg.ContentSelector == "" {
		cfg.ContentSelector = p.ContentSelector
	}
	if cfg.PaginationSelector == "" {
		cfg.PaginationSelector = p.PaginationSelector
	}
	cfg.ExcludeSelectors = append(cfg.ExcludeSelectors, p.ExcludeSelectors...)
}
