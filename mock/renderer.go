package mock

import (
	"context"
	"io"

	"github.com/fwojciec/sitepdf"
)

// Compile-time interface verification.
var (
	_ sitepdf.Renderer = (*Renderer)(nil)
	_ sitepdf.Tab      = (*Tab)(nil)
)

// Renderer is a mock implementation of sitepdf.Renderer.
type Renderer struct {
	NewTabFn func(ctx context.Context) (sitepdf.Tab, error)
	CloseFn  func() error
}

func (r *Renderer) NewTab(ctx context.Context) (sitepdf.Tab, error) {
	return r.NewTabFn(ctx)
}

func (r *Renderer) Close() error {
	return r.CloseFn()
}

// Tab is a mock implementation of sitepdf.Tab.
type Tab struct {
	NavigateFn  func(ctx context.Context, url string) error
	SnapshotFn  func(ctx context.Context, frameDepth int) (*sitepdf.Snapshot, error)
	InterceptFn func(fn sitepdf.InterceptFunc) error
	PrintPDFFn  func(ctx context.Context, html string, opts sitepdf.PrintOptions, w io.Writer) error
	CloseFn     func() error
}

func (t *Tab) Navigate(ctx context.Context, url string) error {
	return t.NavigateFn(ctx, url)
}

func (t *Tab) Snapshot(ctx context.Context, frameDepth int) (*sitepdf.Snapshot, error) {
	return t.SnapshotFn(ctx, frameDepth)
}

func (t *Tab) Intercept(fn sitepdf.InterceptFunc) error {
	return t.InterceptFn(fn)
}

func (t *Tab) PrintPDF(ctx context.Context, html string, opts sitepdf.PrintOptions, w io.Writer) error {
	return t.PrintPDFFn(ctx, html, opts, w)
}

func (t *Tab) Close() error {
	return t.CloseFn()
}
