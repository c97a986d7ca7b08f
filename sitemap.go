package pagemd

import (
	"context"
	"regexp"
)

// SitemapService lists page URLs published in a site's sitemaps so that a
// whole section of a site can be converted as one batch.
type SitemapService interface {
	// DiscoverURLs returns the page URLs under baseURL. A baseURL ending in
	// .xml or .xml.gz is read directly. Otherwise robots.txt Sitemap lines
	// are used, falling back to /sitemap.xml. Sitemap indexes are followed
	// and duplicates removed. A nil filter keeps every URL.
	DiscoverURLs(ctx context.Context, baseURL string, filter *URLFilter) ([]string, error)
}

// URLFilter keeps URLs matching any Include pattern (all URLs when
// Include is empty) and drops URLs matching any Exclude pattern.
type URLFilter struct {
	Include []*regexp.Regexp
	Exclude []*regexp.Regexp
}

// Match reports whether url passes the filter. A nil filter passes all.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}
	if len(f.Include) > 0 && !matchAny(f.Include, url) {
		return false
	}
	return !matchAny(f.Exclude, url)
}

func matchAny(patterns []*regexp.Regexp, s string) bool {
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
