package http

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/pagemd"
)

// maxSitemapURLs bounds the URLs collected from one site.
const maxSitemapURLs = 50000

// Ensure SitemapService implements pagemd.SitemapService.
var _ pagemd.SitemapService = (*SitemapService)(nil)

// SitemapService discovers page URLs from robots.txt and sitemap files.
type SitemapService struct {
	*client
}

// NewSitemapService creates a new SitemapService.
func NewSitemapService(opts ...Option) *SitemapService {
	return &SitemapService{client: newClient(opts)}
}

// DiscoverURLs returns the page URLs listed for a site. baseURL may name a
// sitemap file directly (ending in .xml or .xml.gz); otherwise sitemaps are
// read from robots.txt, falling back to /sitemap.xml. Sitemap indexes are
// followed recursively. When baseURL has a non-root path, only URLs below
// that path are returned. Returns an empty slice if no sitemap exists.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *pagemd.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, pagemd.Errorf(pagemd.EINVALID, "invalid base URL %q", baseURL)
	}

	var sitemaps []string
	var pathPrefix string
	fallback := false
	if isSitemapFile(base.Path) {
		sitemaps = []string{base.String()}
	} else {
		if base.Path != "/" {
			pathPrefix = base.Path
		}
		root := &url.URL{Scheme: base.Scheme, Host: base.Host}
		sitemaps, fallback, err = s.findSitemaps(ctx, root)
		if err != nil {
			return nil, err
		}
	}

	c := &collector{
		seenSitemaps: make(map[string]bool),
		seenURLs:     make(map[string]bool),
		pathPrefix:   pathPrefix,
		filter:       filter,
		urls:         []string{},
	}
	for _, sm := range sitemaps {
		err := s.readSitemap(ctx, sm, c)
		if fallback && pagemd.ErrorCode(err) == pagemd.EHTTP {
			// The site has no sitemap.
			return []string{}, nil
		}
		if err != nil {
			return nil, err
		}
	}
	return c.urls, nil
}

func isSitemapFile(p string) bool {
	p = strings.ToLower(p)
	return strings.HasSuffix(p, ".xml") || strings.HasSuffix(p, ".xml.gz")
}

// collector accumulates distinct page URLs across sitemaps.
type collector struct {
	seenSitemaps map[string]bool
	seenURLs     map[string]bool
	pathPrefix   string
	filter       *pagemd.URLFilter
	urls         []string
}

func (c *collector) add(u string) {
	if c.seenURLs[u] || len(c.urls) >= maxSitemapURLs {
		return
	}
	c.seenURLs[u] = true
	if c.pathPrefix != "" && !underPath(u, c.pathPrefix) {
		return
	}
	if !c.filter.Match(u) {
		return
	}
	c.urls = append(c.urls, u)
}

// underPath reports whether rawURL's path is prefix or lies below it.
// "/docs" matches "/docs/intro" but not "/documentation".
func underPath(rawURL, prefix string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	prefix = strings.TrimSuffix(prefix, "/")
	return u.Path == prefix || strings.HasPrefix(u.Path, prefix+"/")
}

// findSitemaps reads Sitemap: directives from robots.txt. When there are
// none it returns /sitemap.xml and reports the fallback.
func (s *SitemapService) findSitemaps(ctx context.Context, root *url.URL) ([]string, bool, error) {
	_, body, err := s.get(ctx, root.JoinPath("robots.txt").String(), nil)
	if err == nil {
		var sitemaps []string
		scanner := bufio.NewScanner(bytes.NewReader(body))
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if len(line) > 8 && strings.EqualFold(line[:8], "sitemap:") {
				if sm := strings.TrimSpace(line[8:]); sm != "" {
					sitemaps = append(sitemaps, sm)
				}
			}
		}
		if len(sitemaps) > 0 {
			return sitemaps, false, nil
		}
	} else if ctx.Err() != nil {
		return nil, false, ctx.Err()
	}

	return []string{root.JoinPath("sitemap.xml").String()}, true, nil
}

// readSitemap fetches a urlset or sitemapindex and feeds its locations to
// c.
func (s *SitemapService) readSitemap(ctx context.Context, sitemapURL string, c *collector) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.seenSitemaps[sitemapURL] {
		return nil
	}
	c.seenSitemaps[sitemapURL] = true

	_, body, err := s.get(ctx, sitemapURL, nil)
	if err != nil {
		return err
	}

	body, err = gunzip(body)
	if err != nil {
		return pagemd.Errorf(pagemd.EINVALID, "sitemap %s: %v", sitemapURL, err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return pagemd.Errorf(pagemd.EINVALID, "parsing sitemap %s: %v", sitemapURL, err)
	}
	root := doc.Root()
	if root == nil {
		return pagemd.Errorf(pagemd.EINVALID, "empty sitemap %s", sitemapURL)
	}

	switch root.Tag {
	case "sitemapindex":
		for _, loc := range locations(root, "sitemap") {
			if err := s.readSitemap(ctx, loc, c); err != nil {
				return err
			}
		}
	default:
		for _, loc := range locations(root, "url") {
			c.add(loc)
		}
	}
	return nil
}

// locations returns the <loc> text of each child element named tag.
func locations(root *etree.Element, tag string) []string {
	var locs []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			locs = append(locs, u)
		}
	}
	return locs
}

// gunzip decompresses gzipped sitemap bodies. Transparent transport
// compression has already been undone by the client.
func gunzip(body []byte) ([]byte, error) {
	if len(body) < 2 || body[0] != 0x1f || body[1] != 0x8b {
		return body, nil
	}
	zr, err := gzip.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(io.LimitReader(zr, MaxBodySize))
}
