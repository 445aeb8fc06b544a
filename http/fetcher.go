// Package http fetches images such as the cover image over plain HTTP.
package http

import (
	"context"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/sitepdf"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxImageBytes caps the size of a fetched image.
const DefaultMaxImageBytes = 10 << 20

// Ensure ImageFetcher implements sitepdf.ImageFetcher at compile time.
var _ sitepdf.ImageFetcher = (*ImageFetcher)(nil)

// ImageFetcher retrieves images with HTTP GET requests.
type ImageFetcher struct {
	client   *http.Client
	timeout  time.Duration
	maxBytes int64
}

// Option configures an ImageFetcher.
type Option func(*ImageFetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *ImageFetcher) {
		f.timeout = d
	}
}

// WithMaxBytes sets the largest accepted image.
func WithMaxBytes(n int64) Option {
	return func(f *ImageFetcher) {
		f.maxBytes = n
	}
}

// NewImageFetcher creates a new ImageFetcher.
func NewImageFetcher(opts ...Option) *ImageFetcher {
	f := &ImageFetcher{
		timeout:  DefaultFetchTimeout,
		maxBytes: DefaultMaxImageBytes,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// FetchImage downloads the image at url. The content type comes from the
// response header and is sniffed from the body when missing. Every failure
// is reported as EIMAGE.
func (f *ImageFetcher) FetchImage(ctx context.Context, url string) (*sitepdf.Image, error) {
	if sitepdf.IsPrintTarget(url) {
		return nil, sitepdf.Errorf(sitepdf.EIMAGE, "refusing to fetch pdf %s as image", url)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, sitepdf.Wrap(sitepdf.EIMAGE, err, "fetch image %s", url)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, sitepdf.Wrap(sitepdf.EIMAGE, err, "fetch image %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, sitepdf.Errorf(sitepdf.EIMAGE, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, sitepdf.Wrap(sitepdf.EIMAGE, err, "read image %s", url)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, sitepdf.Errorf(sitepdf.EIMAGE, "image %s larger than %d bytes", url, f.maxBytes)
	}
	if len(body) == 0 {
		return nil, sitepdf.Errorf(sitepdf.EIMAGE, "image %s is empty", url)
	}

	return &sitepdf.Image{ContentType: contentType(resp.Header.Get("Content-Type"), body), Data: body}, nil
}

func contentType(header string, body []byte) string {
	if header != "" {
		if mt, _, err := mime.ParseMediaType(header); err == nil && mt != "application/octet-stream" {
			return mt
		}
	}
	return strings.SplitN(http.DetectContentType(body), ";", 2)[0]
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *ImageFetcher) Close() error {
	return nil
}
