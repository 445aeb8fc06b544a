package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sitepdf"
)

// Ensure LoggingImageFetcher implements sitepdf.ImageFetcher.
var _ sitepdf.ImageFetcher = (*LoggingImageFetcher)(nil)

// LoggingImageFetcher wraps an ImageFetcher with logging.
type LoggingImageFetcher struct {
	next   sitepdf.ImageFetcher
	logger *slog.Logger
}

// NewLoggingImageFetcher creates a new LoggingImageFetcher.
func NewLoggingImageFetcher(next sitepdf.ImageFetcher, logger *slog.Logger) *LoggingImageFetcher {
	return &LoggingImageFetcher{next: next, logger: logger}
}

// FetchImage logs the URL, size and duration of the fetch.
func (f *LoggingImageFetcher) FetchImage(ctx context.Context, url string) (img *sitepdf.Image, err error) {
	defer func(begin time.Time) {
		var size int
		var contentType string
		if img != nil {
			size, contentType = len(img.Data), img.ContentType
		}
		f.logger.Info("fetch image",
			"url", url,
			"bytes", size,
			"type", contentType,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.FetchImage(ctx, url)
}
