package sitepdf

import (
	"context"
	"encoding/base64"
	"io"
)

// Document is everything the assembler turns into the final HTML.
type Document struct {
	Title     string
	CSS       string
	Cover     *Cover // nil disables the cover
	TOC       *TOC   // nil disables the table of contents
	Fragments []PageFragment
	Headers   []HeaderRecord
}

// Cover is the first page of the document.
type Cover struct {
	Title    string
	Subtitle string
	Image    *Image // nil renders the cover without an image
}

// TOC configures the table of contents.
type TOC struct {
	Title string
}

// Image is a fetched binary image.
type Image struct {
	ContentType string
	Data        []byte
}

// DataURI returns the image embedded as a data: URI.
func (i *Image) DataURI() string {
	return "data:" + i.ContentType + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}

// Assembler renders a Document as one HTML page.
type Assembler interface {
	Assemble(doc *Document) (string, error)
}

// ImageFetcher retrieves images such as the cover image.
type ImageFetcher interface {
	// FetchImage returns EIMAGE when the image cannot be retrieved.
	FetchImage(ctx context.Context, url string) (*Image, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	Convert(html string) (string, error)
}

// Output receives the final artifact with atomic semantics.
// Create opens a temporary destination; Commit makes it permanent;
// Abort discards it.
type Output interface {
	Create() (io.WriteCloser, error)
	Commit() error
	Abort() error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
