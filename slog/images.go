package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagemd"
)

var _ pagemd.ImageFetcher = (*LoggingImageFetcher)(nil)

// LoggingImageFetcher wraps an ImageFetcher. Successful downloads are
// logged at Debug, failures at Warn.
type LoggingImageFetcher struct {
	next   pagemd.ImageFetcher
	logger *slog.Logger
}

func NewLoggingImageFetcher(next pagemd.ImageFetcher, logger *slog.Logger) *LoggingImageFetcher {
	return &LoggingImageFetcher{next: next, logger: logger}
}

func (f *LoggingImageFetcher) FetchImage(ctx context.Context, url string) (img *pagemd.Image, err error) {
	defer func(begin time.Time) {
		if err != nil {
			f.logger.Warn("fetch image",
				"url", url,
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		f.logger.Debug("fetch image",
			"url", url,
			"bytes", len(img.Data),
			"content_type", img.ContentType,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return f.next.FetchImage(ctx, url)
}
