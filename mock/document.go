package mock

import (
	"context"
	"io"

	"github.com/fwojciec/sitepdf"
)

// Compile-time interface verification.
var (
	_ sitepdf.Assembler     = (*Assembler)(nil)
	_ sitepdf.ImageFetcher  = (*ImageFetcher)(nil)
	_ sitepdf.Output        = (*Output)(nil)
	_ sitepdf.DomainLimiter = (*DomainLimiter)(nil)
)

// Assembler is a mock implementation of sitepdf.Assembler.
type Assembler struct {
	AssembleFn func(doc *sitepdf.Document) (string, error)
}

func (a *Assembler) Assemble(doc *sitepdf.Document) (string, error) {
	return a.AssembleFn(doc)
}

// ImageFetcher is a mock implementation of sitepdf.ImageFetcher.
type ImageFetcher struct {
	FetchImageFn func(ctx context.Context, url string) (*sitepdf.Image, error)
}

func (f *ImageFetcher) FetchImage(ctx context.Context, url string) (*sitepdf.Image, error) {
	return f.FetchImageFn(ctx, url)
}

// Output is a mock implementation of sitepdf.Output.
type Output struct {
	CreateFn func() (io.WriteCloser, error)
	CommitFn func() error
	AbortFn  func() error
}

func (o *Output) Create() (io.WriteCloser, error) {
	return o.CreateFn()
}

func (o *Output) Commit() error {
	return o.CommitFn()
}

func (o *Output) Abort() error {
	return o.AbortFn()
}

// DomainLimiter is a mock implementation of sitepdf.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
