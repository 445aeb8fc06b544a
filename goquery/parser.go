// Package goquery reads rendered documentation pages with goquery: it
// extracts content, inlines embedded frames, rewrites heading ids and finds
// pagination links.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sitepdf"
)

// Ensure Parser implements sitepdf.PageParser at compile time.
var _ sitepdf.PageParser = (*Parser)(nil)

// Parser implements sitepdf.PageParser. It never touches the live page:
// every call works on the HTML captured in a Snapshot.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// NextLink returns the resolved href of the first element matching
// selector. When that element is not an anchor, its first a[href]
// descendant is used. The fragment is stripped. Non-HTTP links resolve
// to "".
func (p *Parser) NextLink(snap *sitepdf.Snapshot, selector string) (string, error) {
	if strings.TrimSpace(selector) == "" {
		return "", nil
	}

	doc, err := parse(snap.HTML)
	if err != nil {
		return "", err
	}

	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return "", nil
	}
	if goquery.NodeName(sel) != "a" {
		sel = sel.Find("a[href]").First()
	}

	href, ok := sel.Attr("href")
	if !ok || strings.TrimSpace(href) == "" || isNonHTTPLink(href) {
		return "", nil
	}

	base, err := url.Parse(snap.URL)
	if err != nil {
		return "", sitepdf.Errorf(sitepdf.EINVALID, "invalid page URL: %v", err)
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", nil
	}
	next := base.ResolveReference(ref)
	next.Fragment = ""
	next.RawFragment = ""
	if next.Scheme != "http" && next.Scheme != "https" {
		return "", nil
	}
	return next.String(), nil
}

// Keywords returns the comma-separated entries of <meta name="keywords">,
// trimmed, with empty entries dropped.
func (p *Parser) Keywords(snap *sitepdf.Snapshot) ([]string, error) {
	doc, err := parse(snap.HTML)
	if err != nil {
		return nil, err
	}

	var keywords []string
	doc.Find("meta[name]").Each(func(_ int, sel *goquery.Selection) {
		name, _ := sel.Attr("name")
		if !strings.EqualFold(strings.TrimSpace(name), "keywords") {
			return
		}
		content, _ := sel.Attr("content")
		for _, kw := range strings.Split(content, ",") {
			if kw = strings.TrimSpace(kw); kw != "" {
				keywords = append(keywords, kw)
			}
		}
	})
	return keywords, nil
}

func parse(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, sitepdf.Errorf(sitepdf.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
