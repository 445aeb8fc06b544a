package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/sitepdf"
	sitepdfhttp "github.com/fwojciec/sitepdf/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func TestImageFetcher_FetchImage(t *testing.T) {
	t.Parallel()

	t.Run("returns body with header content type", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "image/svg+xml; charset=utf-8")
			_, _ = w.Write([]byte("<svg></svg>"))
		}))
		defer server.Close()

		fetcher := sitepdfhttp.NewImageFetcher()
		defer fetcher.Close()

		img, err := fetcher.FetchImage(context.Background(), server.URL+"/logo.svg")

		require.NoError(t, err)
		assert.Equal(t, "image/svg+xml", img.ContentType)
		assert.Equal(t, []byte("<svg></svg>"), img.Data)
	})

	t.Run("sniffs content type when header is generic", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/octet-stream")
			_, _ = w.Write(pngHeader)
		}))
		defer server.Close()

		fetcher := sitepdfhttp.NewImageFetcher()

		img, err := fetcher.FetchImage(context.Background(), server.URL+"/logo")

		require.NoError(t, err)
		assert.Equal(t, "image/png", img.ContentType)
	})

	t.Run("non-200 status is an image error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		fetcher := sitepdfhttp.NewImageFetcher()

		_, err := fetcher.FetchImage(context.Background(), server.URL+"/missing.png")

		assert.Equal(t, sitepdf.EIMAGE, sitepdf.ErrorCode(err))
		assert.Contains(t, err.Error(), "404")
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write(pngHeader)
		}))
		defer server.Close()

		fetcher := sitepdfhttp.NewImageFetcher(sitepdfhttp.WithTimeout(10 * time.Millisecond))

		_, err := fetcher.FetchImage(context.Background(), server.URL)

		assert.Equal(t, sitepdf.EIMAGE, sitepdf.ErrorCode(err))
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write(pngHeader)
		}))
		defer server.Close()

		fetcher := sitepdfhttp.NewImageFetcher()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fetcher.FetchImage(ctx, server.URL)

		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("rejects oversized images", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write(make([]byte, 64))
		}))
		defer server.Close()

		fetcher := sitepdfhttp.NewImageFetcher(sitepdfhttp.WithMaxBytes(32))

		_, err := fetcher.FetchImage(context.Background(), server.URL)

		assert.Equal(t, sitepdf.EIMAGE, sitepdf.ErrorCode(err))
	})

	t.Run("refuses pdf urls without a request", func(t *testing.T) {
		t.Parallel()

		hit := false
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			hit = true
		}))
		defer server.Close()

		fetcher := sitepdfhttp.NewImageFetcher()

		_, err := fetcher.FetchImage(context.Background(), server.URL+"/cover.pdf")

		assert.Equal(t, sitepdf.EIMAGE, sitepdf.ErrorCode(err))
		assert.False(t, hit)
	})
}
