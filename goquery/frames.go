package goquery

import (
	"html"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sitepdf"
)

const embeddedLabel = "Embedded content:"

// inlineFrames replaces every <iframe> in content with the body of the
// frame's own document, processed the same way as the page. Frames that
// cannot be read stay in place and are reported as EFRAME errors.
func inlineFrames(content *goquery.Selection, snap *sitepdf.Snapshot, opts sitepdf.ExtractOptions, depth int) []error {
	maxDepth := opts.MaxFrameDepth
	if maxDepth <= 0 {
		maxDepth = sitepdf.DefaultMaxFrameDepth
	}

	var errs []error
	findAll(content, "iframe").Each(func(_ int, frame *goquery.Selection) {
		if depth >= maxDepth {
			errs = append(errs, sitepdf.Errorf(sitepdf.EFRAME, "frame %s nested deeper than %d levels", frameName(frame), maxDepth))
			return
		}

		child, err := frameSnapshot(frame, snap)
		if err != nil {
			errs = append(errs, err)
			return
		}

		body, childErrs, err := frameBody(child, snap.URL, opts, depth+1)
		errs = append(errs, childErrs...)
		if err != nil {
			errs = append(errs, sitepdf.Wrap(sitepdf.EFRAME, err, "frame %s could not be read", frameName(frame)))
			return
		}

		frame.ReplaceWithHtml(embeddedBlock(frame.AttrOr("title", ""), body))
	})
	return errs
}

// frameSnapshot finds the captured document of frame. Frames without a
// captured snapshot fall back to their srcdoc attribute.
func frameSnapshot(frame *goquery.Selection, parent *sitepdf.Snapshot) (*sitepdf.Snapshot, error) {
	if id, ok := frame.Attr(sitepdf.FrameAttr); ok {
		if child := parent.Frames[id]; child != nil {
			return child, nil
		}
	}
	if srcdoc, ok := frame.Attr("srcdoc"); ok {
		return &sitepdf.Snapshot{URL: parent.URL, HTML: srcdoc}, nil
	}
	return nil, sitepdf.Errorf(sitepdf.EFRAME, "frame %s is not accessible", frameName(frame))
}

// frameBody returns the sanitized inner HTML of the frame document's body.
// Relative links resolve against the frame URL, or against parentURL for
// documents without one (about:srcdoc, about:blank).
func frameBody(child *sitepdf.Snapshot, parentURL string, opts sitepdf.ExtractOptions, depth int) (string, []error, error) {
	doc, err := parse(child.HTML)
	if err != nil {
		return "", nil, err
	}

	baseURL := child.URL
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = parentURL
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", nil, err
	}

	body := doc.Find("body").First().Clone()
	sanitize(body, base, opts.ExcludeSelectors)
	errs := inlineFrames(body, child, opts, depth)

	inner, err := body.Html()
	if err != nil {
		return "", errs, err
	}
	return inner, errs, nil
}

func embeddedBlock(title, body string) string {
	label := embeddedLabel
	if title = strings.TrimSpace(title); title != "" {
		label += " " + title
	}

	var b strings.Builder
	b.WriteString(`<div class="sitepdf-embedded"><p class="sitepdf-embedded-label">`)
	b.WriteString(html.EscapeString(label))
	b.WriteString(`</p>`)
	b.WriteString(body)
	b.WriteString(`</div>`)
	return b.String()
}

func frameName(frame *goquery.Selection) string {
	if src, ok := frame.Attr("src"); ok && src != "" {
		return src
	}
	if title, ok := frame.Attr("title"); ok && title != "" {
		return "\"" + title + "\""
	}
	return "(inline)"
}
