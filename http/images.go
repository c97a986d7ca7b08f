package http

import (
	"context"
	"net/http"

	"github.com/fwojciec/pagemd"
)

// Ensure ImageFetcher implements pagemd.ImageFetcher at compile time.
var _ pagemd.ImageFetcher = (*ImageFetcher)(nil)

// ImageFetcher downloads images over HTTP. The page URL stored with
// pagemd.WithReferer is sent as Referer, since many sites refuse
// hot-linked images.
type ImageFetcher struct {
	*client
}

// NewImageFetcher creates a new ImageFetcher.
func NewImageFetcher(opts ...Option) *ImageFetcher {
	return &ImageFetcher{client: newClient(opts)}
}

// FetchImage downloads the image at url. The content type falls back to
// sniffing when the server sends none.
func (f *ImageFetcher) FetchImage(ctx context.Context, url string) (*pagemd.Image, error) {
	header := http.Header{}
	header.Set("Accept", "image/avif,image/webp,image/*,*/*;q=0.8")
	if ref := pagemd.RefererFromContext(ctx); ref != "" {
		header.Set("Referer", ref)
	}

	resp, body, err := f.get(ctx, url, header)
	if err != nil {
		return nil, err
	}

	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		ct = http.DetectContentType(body)
	}
	return &pagemd.Image{Data: body, ContentType: ct}, nil
}
