package slog_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/fwojciec/sitepdf"
	"github.com/fwojciec/sitepdf/mock"
	sitepdfslog "github.com/fwojciec/sitepdf/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func debugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggingRenderer_NewTab(t *testing.T) {
	t.Parallel()

	t.Run("wraps tabs with logging", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Renderer{
			NewTabFn: func(_ context.Context) (sitepdf.Tab, error) {
				return &mock.Tab{
					NavigateFn: func(_ context.Context, _ string) error { return nil },
				}, nil
			},
		}

		r := sitepdfslog.NewLoggingRenderer(inner, debugLogger(&buf))
		tab, err := r.NewTab(context.Background())
		require.NoError(t, err)
		require.IsType(t, &sitepdfslog.LoggingTab{}, tab)

		require.NoError(t, tab.Navigate(context.Background(), "https://example.com/a"))
		assert.Contains(t, buf.String(), "msg=navigate url=https://example.com/a")
	})

	t.Run("logs tab open failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Renderer{
			NewTabFn: func(_ context.Context) (sitepdf.Tab, error) {
				return nil, errors.New("browser gone")
			},
		}

		r := sitepdfslog.NewLoggingRenderer(inner, debugLogger(&buf))
		_, err := r.NewTab(context.Background())

		require.Error(t, err)
		assert.Contains(t, buf.String(), `err="browser gone"`)
	})
}

func TestLoggingTab(t *testing.T) {
	t.Parallel()

	t.Run("logs navigation error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Tab{
			NavigateFn: func(_ context.Context, _ string) error {
				return errors.New("net::ERR_NAME_NOT_RESOLVED")
			},
		}

		tab := sitepdfslog.NewLoggingTab(inner, debugLogger(&buf))
		err := tab.Navigate(context.Background(), "https://missing.example.com")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "url=https://missing.example.com")
		assert.Contains(t, output, "duration=")
		assert.Contains(t, output, `err=net::ERR_NAME_NOT_RESOLVED`)
	})

	t.Run("logs snapshot size and frames", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Tab{
			SnapshotFn: func(_ context.Context, _ int) (*sitepdf.Snapshot, error) {
				return &sitepdf.Snapshot{
					URL:    "https://example.com/a",
					HTML:   "<html></html>",
					Frames: map[string]*sitepdf.Snapshot{"0": {}},
				}, nil
			},
		}

		tab := sitepdfslog.NewLoggingTab(inner, debugLogger(&buf))
		snap, err := tab.Snapshot(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/a", snap.URL)
		assert.Contains(t, buf.String(), "bytes=13 frames=1")
	})

	t.Run("logs blocked and rewritten requests", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		var installed sitepdf.InterceptFunc
		inner := &mock.Tab{
			InterceptFn: func(fn sitepdf.InterceptFunc) error {
				installed = fn
				return nil
			},
		}

		tab := sitepdfslog.NewLoggingTab(inner, debugLogger(&buf))
		require.NoError(t, tab.Intercept(func(req sitepdf.Request) sitepdf.Decision {
			if sitepdf.IsPrintTarget(req.URL) {
				return sitepdf.Decision{Action: sitepdf.ActionAbort}
			}
			return sitepdf.Decision{Action: sitepdf.ActionRewrite, URL: "http://localhost/app.js"}
		}))

		d := installed(sitepdf.Request{URL: "https://example.com/book.pdf"})
		assert.Equal(t, sitepdf.ActionAbort, d.Action)
		d = installed(sitepdf.Request{URL: "https://example.com/app.js"})
		assert.Equal(t, "http://localhost/app.js", d.URL)

		output := buf.String()
		assert.Contains(t, output, "request blocked")
		assert.Contains(t, output, "request rewritten")
	})

	t.Run("logs printed size", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Tab{
			PrintPDFFn: func(_ context.Context, _ string, _ sitepdf.PrintOptions, w io.Writer) error {
				_, err := io.WriteString(w, "%PDF-1.7")
				return err
			},
		}

		var out bytes.Buffer
		tab := sitepdfslog.NewLoggingTab(inner, debugLogger(&buf))
		err := tab.PrintPDF(context.Background(), "<html></html>", sitepdf.PrintOptions{Format: "A4"}, &out)

		require.NoError(t, err)
		assert.Equal(t, "%PDF-1.7", out.String())
		assert.Contains(t, buf.String(), "pdf_bytes=8")
	})
}
