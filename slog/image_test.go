package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/sitepdf"
	"github.com/fwojciec/sitepdf/mock"
	sitepdfslog "github.com/fwojciec/sitepdf/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingImageFetcher_FetchImage(t *testing.T) {
	t.Parallel()

	t.Run("logs url size and type", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ImageFetcher{
			FetchImageFn: func(_ context.Context, _ string) (*sitepdf.Image, error) {
				return &sitepdf.Image{ContentType: "image/png", Data: []byte("png")}, nil
			},
		}

		f := sitepdfslog.NewLoggingImageFetcher(inner, logger)
		img, err := f.FetchImage(context.Background(), "https://example.com/logo.png")

		require.NoError(t, err)
		assert.Equal(t, "image/png", img.ContentType)
		output := buf.String()
		assert.Contains(t, output, "fetch image")
		assert.Contains(t, output, "url=https://example.com/logo.png")
		assert.Contains(t, output, "bytes=3 type=image/png")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ImageFetcher{
			FetchImageFn: func(_ context.Context, _ string) (*sitepdf.Image, error) {
				return nil, sitepdf.Errorf(sitepdf.EIMAGE, "HTTP 404")
			},
		}

		f := sitepdfslog.NewLoggingImageFetcher(inner, logger)
		_, err := f.FetchImage(context.Background(), "https://example.com/logo.png")

		require.Error(t, err)
		assert.Contains(t, buf.String(), `err="HTTP 404"`)
	})
}
