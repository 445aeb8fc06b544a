package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sitepdf"
)

var _ sitepdf.FrameworkDetector = (*Detector)(nil)

// frameworkMarkers lists, in checking order, the elements that only a given
// framework generates. VitePress comes before VuePress, its predecessor.
var frameworkMarkers = []struct {
	framework sitepdf.Framework
	selectors []string
}{
	{sitepdf.FrameworkDocusaurus, []string{"#__docusaurus_skipToContent_fallback", ".theme-doc-sidebar-container", ".pagination-nav"}},
	{sitepdf.FrameworkMkDocs, []string{"[data-md-color-scheme]", "[data-md-component]", ".md-nav--primary"}},
	{sitepdf.FrameworkSphinx, []string{".toctree-wrapper", ".wy-nav-side", ".wy-menu-vertical", ".sphinxsidebar"}},
	{sitepdf.FrameworkVitePress, []string{"#VPContent", ".VPDoc", ".vp-doc"}},
	{sitepdf.FrameworkVuePress, []string{".theme-default-content", ".sidebar-links", ".vuepress-navbar"}},
	{sitepdf.FrameworkGitBook, []string{"[data-testid='space.sidebar']", "[data-testid='page.desktopTableOfContents']"}},
	{sitepdf.FrameworkNextra, []string{".nextra-navbar", ".nextra-sidebar", ".nextra-toc"}},
}

// generatorNames maps substrings of <meta name="generator"> to frameworks.
// Order matters: "vitepress" must be tried before "vuepress".
var generatorNames = []struct {
	substr    string
	framework sitepdf.Framework
}{
	{"sphinx", sitepdf.FrameworkSphinx},
	{"gitbook", sitepdf.FrameworkGitBook},
	{"docusaurus", sitepdf.FrameworkDocusaurus},
	{"mkdocs", sitepdf.FrameworkMkDocs},
	{"vitepress", sitepdf.FrameworkVitePress},
	{"vuepress", sitepdf.FrameworkVuePress},
	{"nextra", sitepdf.FrameworkNextra},
}

// Detector identifies documentation frameworks from rendered HTML by their
// meta generator tag or framework specific markup.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect analyzes html and returns the identified framework.
// The meta generator tag wins over markup markers.
func (d *Detector) Detect(html string) sitepdf.Framework {
	doc, err := parse(html)
	if err != nil {
		return sitepdf.FrameworkUnknown
	}

	if generator, ok := doc.Find("meta[name='generator']").Last().Attr("content"); ok {
		generator = strings.ToLower(generator)
		for _, g := range generatorNames {
			if strings.Contains(generator, g.substr) {
				return g.framework
			}
		}
	}

	for _, m := range frameworkMarkers {
		for _, sel := range m.selectors {
			if doc.Find(sel).Length() > 0 {
				return m.framework
			}
		}
	}

	if hasGitBookClasses(doc) {
		return sitepdf.FrameworkGitBook
	}
	return sitepdf.FrameworkUnknown
}

// hasGitBookClasses reports whether the html element carries at least two
// of GitBook's theme classes.
func hasGitBookClasses(doc *goquery.Document) bool {
	class, _ := doc.Find("html").Attr("class")
	count := 0
	for _, c := range []string{"circular-corners", "theme-clean", "tint"} {
		if strings.Contains(class, c) {
			count++
		}
	}
	return count >= 2
}
