// Package http provides HTTP implementations of pagemd.Fetcher,
// pagemd.ImageFetcher and pagemd.SitemapService for static pages that
// don't require JavaScript rendering.
package http

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/fwojciec/pagemd"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
)

// Ensure Fetcher implements pagemd.Fetcher at compile time.
var _ pagemd.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves page markup over HTTP and decodes it to UTF-8.
type Fetcher struct {
	*client
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	return &Fetcher{client: newClient(opts)}
}

// Fetch retrieves the markup at url. The charset is taken from the
// Content-Type header, a byte order mark or a <meta> declaration.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	header := http.Header{}
	header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	header.Set("Accept-Language", DefaultAcceptLanguage)

	resp, body, err := f.get(ctx, url, header)
	if err != nil {
		return "", err
	}
	return decode(body, resp.Header.Get("Content-Type"))
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// decode converts body to UTF-8 using the detected encoding.
func decode(body []byte, contentType string) (string, error) {
	enc, name, _ := charset.DetermineEncoding(body, contentType)
	if name == "utf-8" {
		return string(body), nil
	}
	decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(body), enc.NewDecoder()))
	if err != nil {
		return "", pagemd.Errorf(pagemd.ENETWORK, "decode %s body: %v", name, err)
	}
	return string(decoded), nil
}
