// Package html assembles the final document with html/template.
package html

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/fwojciec/sitepdf"
)

// Ensure Assembler implements sitepdf.Assembler at compile time.
var _ sitepdf.Assembler = (*Assembler)(nil)

//go:embed document.gohtml
var documentTemplate string

//go:embed print.css
var baseCSS string

// tocIndent is the left margin added per heading level below the first.
const tocIndent = 20

// Assembler renders a sitepdf.Document as a single HTML page ready for
// printing: base print styles, optional cover, optional table of contents
// and the page fragments in order.
type Assembler struct {
	tmpl *template.Template
}

// NewAssembler parses the document template.
func NewAssembler() *Assembler {
	return &Assembler{
		tmpl: template.Must(template.New("document").Parse(documentTemplate)),
	}
}

type tocEntry struct {
	ID     string
	Text   string
	Level  int
	Indent int
}

type coverData struct {
	Title    string
	Subtitle string
	Image    template.URL
}

type documentData struct {
	Title     string
	BaseCSS   template.CSS
	CSS       template.CSS
	Cover     *coverData
	TOCTitle  string
	TOC       []tocEntry
	ShowTOC   bool
	Fragments []template.HTML
}

// Assemble implements sitepdf.Assembler.
func (a *Assembler) Assemble(doc *sitepdf.Document) (string, error) {
	data := documentData{
		Title:   doc.Title,
		BaseCSS: template.CSS(baseCSS),
		CSS:     template.CSS(doc.CSS),
	}

	if doc.Cover != nil {
		data.Cover = &coverData{Title: doc.Cover.Title, Subtitle: doc.Cover.Subtitle}
		if doc.Cover.Image != nil && len(doc.Cover.Image.Data) > 0 {
			data.Cover.Image = template.URL(doc.Cover.Image.DataURI())
		}
	}

	if doc.TOC != nil {
		data.ShowTOC = true
		data.TOCTitle = doc.TOC.Title
		for _, h := range doc.Headers {
			data.TOC = append(data.TOC, tocEntry{
				ID:     h.ID,
				Text:   h.Text,
				Level:  h.Level,
				Indent: (h.Level - 1) * tocIndent,
			})
		}
	}

	for _, f := range doc.Fragments {
		data.Fragments = append(data.Fragments, template.HTML(f.HTML))
	}

	var buf bytes.Buffer
	if err := a.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render document: %w", err)
	}
	return buf.String(), nil
}
