// Package slog decorates sitepdf services with structured logging.
package slog

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/sitepdf"
)

// Ensure the decorators implement their interfaces.
var (
	_ sitepdf.Renderer = (*LoggingRenderer)(nil)
	_ sitepdf.Tab      = (*LoggingTab)(nil)
)

// LoggingRenderer wraps a Renderer so that every tab it opens logs its
// browser operations.
type LoggingRenderer struct {
	next   sitepdf.Renderer
	logger *slog.Logger
}

// NewLoggingRenderer creates a new LoggingRenderer.
func NewLoggingRenderer(next sitepdf.Renderer, logger *slog.Logger) *LoggingRenderer {
	return &LoggingRenderer{next: next, logger: logger}
}

// NewTab opens a tab on the wrapped renderer and wraps it.
func (r *LoggingRenderer) NewTab(ctx context.Context) (sitepdf.Tab, error) {
	tab, err := r.next.NewTab(ctx)
	if err != nil {
		r.logger.Error("open tab", "err", err)
		return nil, err
	}
	return &LoggingTab{next: tab, logger: r.logger}, nil
}

// Close delegates to the wrapped renderer.
func (r *LoggingRenderer) Close() error {
	return r.next.Close()
}

// LoggingTab wraps a Tab with debug logging.
type LoggingTab struct {
	next   sitepdf.Tab
	logger *slog.Logger
}

// NewLoggingTab creates a new LoggingTab.
func NewLoggingTab(next sitepdf.Tab, logger *slog.Logger) *LoggingTab {
	return &LoggingTab{next: next, logger: logger}
}

// Navigate logs the URL, duration and outcome of the navigation.
func (t *LoggingTab) Navigate(ctx context.Context, url string) (err error) {
	defer func(begin time.Time) {
		t.logger.Debug("navigate",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return t.next.Navigate(ctx, url)
}

// Snapshot logs the captured document size and frame count.
func (t *LoggingTab) Snapshot(ctx context.Context, frameDepth int) (snap *sitepdf.Snapshot, err error) {
	defer func(begin time.Time) {
		var url string
		var size, frames int
		if snap != nil {
			url, size, frames = snap.URL, len(snap.HTML), len(snap.Frames)
		}
		t.logger.Debug("snapshot",
			"url", url,
			"bytes", size,
			"frames", frames,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return t.next.Snapshot(ctx, frameDepth)
}

// Intercept wraps fn so that aborted and rewritten requests are logged.
func (t *LoggingTab) Intercept(fn sitepdf.InterceptFunc) error {
	return t.next.Intercept(func(req sitepdf.Request) sitepdf.Decision {
		d := fn(req)
		switch d.Action {
		case sitepdf.ActionAbort:
			t.logger.Debug("request blocked", "url", req.URL, "type", req.ResourceType)
		case sitepdf.ActionRewrite:
			t.logger.Debug("request rewritten", "url", req.URL, "to", d.URL)
		}
		return d
	})
}

// PrintPDF logs the size of the printed document.
func (t *LoggingTab) PrintPDF(ctx context.Context, html string, opts sitepdf.PrintOptions, w io.Writer) (err error) {
	cw := &countingWriter{w: w}
	defer func(begin time.Time) {
		t.logger.Info("print pdf",
			"html_bytes", len(html),
			"pdf_bytes", cw.n,
			"format", opts.Format,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return t.next.PrintPDF(ctx, html, opts, cw)
}

// Close delegates to the wrapped tab.
func (t *LoggingTab) Close() error {
	return t.next.Close()
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
