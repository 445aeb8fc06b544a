package goquery

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sitepdf"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var headingLevels = map[atom.Atom]int{
	atom.H1: 1,
	atom.H2: 2,
	atom.H3: 3,
	atom.H4: 4,
	atom.H5: 5,
	atom.H6: 6,
}

// rewriteHeadings gives every heading up to maxLevel a run-wide unique id
// and returns the headings in document order.
func rewriteHeadings(content *goquery.Selection, maxLevel int, ids sitepdf.IDAllocator) []sitepdf.HeaderRecord {
	if maxLevel <= 0 {
		maxLevel = sitepdf.DefaultMaxHeaderLevel
	}
	if maxLevel > 6 {
		maxLevel = 6
	}

	tags := make([]string, 0, maxLevel)
	for _, a := range []atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}[:maxLevel] {
		tags = append(tags, a.String())
	}

	var headers []sitepdf.HeaderRecord
	findAll(content, strings.Join(tags, ", ")).Each(func(_ int, h *goquery.Selection) {
		level := headingLevels[h.Get(0).DataAtom]
		if level == 0 {
			return
		}

		text := strings.Join(strings.Fields(h.Text()), " ")
		candidate := strings.TrimSpace(h.AttrOr("id", ""))
		if candidate == "" {
			candidate = Slug(text)
		}

		id := ids.Allocate(candidate)
		h.SetAttr("id", id)
		headers = append(headers, sitepdf.HeaderRecord{Level: level, ID: id, Text: text})
	})
	return headers
}

// Slug turns heading text into an id: accents are stripped, letters are
// lowercased and every run of other characters becomes one dash.
// Text without letters or digits yields "section".
func Slug(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, text)
	if err != nil {
		folded = text
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if b.Len() > 0 && !dash {
			b.WriteByte('-')
			dash = true
		}
	}

	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return "section"
	}
	return slug
}
