package pagemd

import "context"

// Fetcher retrieves page markup from URLs.
type Fetcher interface {
	// Fetch retrieves the page at url, following redirects, and returns
	// its markup decoded to UTF-8. The context controls timeout and
	// cancellation. Failures carry ETIMEOUT, EHTTP or ENETWORK codes.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}
