package goquery

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/sitepdf"
)

// pageBreakStyle forces a page break after each page's content root.
const pageBreakStyle = "break-after: page; page-break-after: always;"

// Extract returns the sanitized content of the first element matching
// opts.ContentSelector. The matched subtree is cloned before any change so
// later lookups on the same snapshot see the original document.
func (p *Parser) Extract(snap *sitepdf.Snapshot, opts sitepdf.ExtractOptions, ids sitepdf.IDAllocator) (*sitepdf.PageFragment, error) {
	doc, err := parse(snap.HTML)
	if err != nil {
		return nil, err
	}

	root := doc.Find(opts.ContentSelector).First()
	if root.Length() == 0 {
		return nil, sitepdf.Errorf(sitepdf.ESELECTOR, "content selector %q matched nothing on %s", opts.ContentSelector, snap.URL)
	}

	base, err := url.Parse(snap.URL)
	if err != nil {
		return nil, sitepdf.Errorf(sitepdf.EINVALID, "invalid page URL: %v", err)
	}

	content := root.Clone()
	sanitize(content, base, opts.ExcludeSelectors)

	frag := &sitepdf.PageFragment{
		SourceURL: snap.URL,
		Title:     strings.TrimSpace(doc.Find("title").First().Text()),
	}

	if opts.ExtractFrames {
		frag.FrameErrors = inlineFrames(content, snap, opts, 0)
	}
	findAll(content, "iframe").RemoveAttr(sitepdf.FrameAttr)
	if opts.OpenDetails {
		findAll(content, "details").SetAttr("open", "")
	}
	markPageBreak(content)

	sanitized, err := goquery.OuterHtml(content)
	if err != nil {
		return nil, err
	}
	frag.ContentHash = computeHash(sanitized)

	frag.Headers = rewriteHeadings(content, opts.MaxHeaderLevel, ids)
	if frag.HTML, err = goquery.OuterHtml(content); err != nil {
		return nil, err
	}
	return frag, nil
}

// sanitize removes excluded elements and makes relative links absolute.
func sanitize(content *goquery.Selection, base *url.URL, excludeSelectors []string) {
	for _, selector := range excludeSelectors {
		if strings.TrimSpace(selector) == "" {
			continue
		}
		content.Find(selector).Remove()
	}
	resolveAttr(content, base, "href")
	resolveAttr(content, base, "src")
}

// resolveAttr rewrites relative URLs in attr against base. Fragment-only
// and non-HTTP values are left unchanged.
func resolveAttr(content *goquery.Selection, base *url.URL, attr string) {
	findAll(content, "["+attr+"]").Each(func(_ int, sel *goquery.Selection) {
		val, _ := sel.Attr(attr)
		val = strings.TrimSpace(val)
		if val == "" || strings.HasPrefix(val, "#") || isNonHTTPLink(val) {
			return
		}
		ref, err := url.Parse(val)
		if err != nil || ref.IsAbs() {
			return
		}
		sel.SetAttr(attr, base.ResolveReference(ref).String())
	})
}

func markPageBreak(content *goquery.Selection) {
	style := strings.TrimSpace(content.AttrOr("style", ""))
	if style != "" && !strings.HasSuffix(style, ";") {
		style += ";"
	}
	if style != "" {
		style += " "
	}
	content.SetAttr("style", style+pageBreakStyle)
}

// findAll matches selector against sel itself and all of its descendants.
func findAll(sel *goquery.Selection, selector string) *goquery.Selection {
	return sel.Filter(selector).AddSelection(sel.Find(selector))
}

func computeHash(content string) string {
	h := xxhash.Sum64String(content)
	return fmt.Sprintf("%x", h)
}
