package mock

import (
	"context"

	"github.com/fwojciec/pagemd"
)

var _ pagemd.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of pagemd.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *pagemd.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *pagemd.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
