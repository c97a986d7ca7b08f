package mock

import (
	"context"

	"github.com/fwojciec/pagemd"
)

var _ pagemd.ImageFetcher = (*ImageFetcher)(nil)

// ImageFetcher is a mock implementation of pagemd.ImageFetcher.
type ImageFetcher struct {
	FetchImageFn func(ctx context.Context, url string) (*pagemd.Image, error)
}

func (f *ImageFetcher) FetchImage(ctx context.Context, url string) (*pagemd.Image, error) {
	return f.FetchImageFn(ctx, url)
}
