package http_test

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/fwojciec/pagemd"
	pagemdhttp "github.com/fwojciec/pagemd/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSitemapService_DiscoverURLs(t *testing.T) {
	t.Parallel()

	t.Run("reads sitemaps declared in robots.txt", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, map[string]string{
			"/robots.txt": "User-agent: *\nDisallow: /private/\nSitemap: {{BASE}}/news.xml\n",
			"/news.xml":   urlset("{{BASE}}/news/a.html", "{{BASE}}/news/b.html"),
		})
		defer srv.Close()

		urls, err := pagemdhttp.NewSitemapService().DiscoverURLs(context.Background(), srv.URL, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/news/a.html", srv.URL + "/news/b.html"}, urls)
	})

	t.Run("falls back to sitemap.xml", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, map[string]string{
			"/sitemap.xml": urlset("{{BASE}}/page1"),
		})
		defer srv.Close()

		urls, err := pagemdhttp.NewSitemapService().DiscoverURLs(context.Background(), srv.URL, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/page1"}, urls)
	})

	t.Run("follows sitemap indexes and deduplicates", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, map[string]string{
			"/sitemap.xml": `<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>{{BASE}}/one.xml</loc></sitemap>
  <sitemap><loc>{{BASE}}/two.xml</loc></sitemap>
  <sitemap><loc>{{BASE}}/one.xml</loc></sitemap>
</sitemapindex>`,
			"/one.xml": urlset("{{BASE}}/a", "{{BASE}}/b"),
			"/two.xml": urlset("{{BASE}}/b", "{{BASE}}/c"),
		})
		defer srv.Close()

		urls, err := pagemdhttp.NewSitemapService().DiscoverURLs(context.Background(), srv.URL, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/a", srv.URL + "/b", srv.URL + "/c"}, urls)
	})

	t.Run("accepts a sitemap URL directly", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, map[string]string{
			"/feeds/list.xml": urlset("{{BASE}}/x"),
		})
		defer srv.Close()

		urls, err := pagemdhttp.NewSitemapService().DiscoverURLs(context.Background(), srv.URL+"/feeds/list.xml", nil)

		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/x"}, urls)
	})

	t.Run("reads gzipped sitemaps", func(t *testing.T) {
		t.Parallel()

		var srv *httptest.Server
		srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var buf bytes.Buffer
			zw := gzip.NewWriter(&buf)
			_, _ = zw.Write([]byte(strings.ReplaceAll(urlset("{{BASE}}/gz"), "{{BASE}}", srv.URL)))
			_ = zw.Close()
			w.Header().Set("Content-Type", "application/octet-stream")
			_, _ = w.Write(buf.Bytes())
		}))
		defer srv.Close()

		urls, err := pagemdhttp.NewSitemapService().DiscoverURLs(context.Background(), srv.URL+"/sitemap.xml.gz", nil)

		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/gz"}, urls)
	})

	t.Run("limits to base path and filter", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, map[string]string{
			"/sitemap.xml": urlset("{{BASE}}/docs/intro", "{{BASE}}/docs/draft-1", "{{BASE}}/documentation", "{{BASE}}/blog/x"),
		})
		defer srv.Close()

		filter := &pagemd.URLFilter{Exclude: []*regexp.Regexp{regexp.MustCompile(`draft`)}}
		urls, err := pagemdhttp.NewSitemapService().DiscoverURLs(context.Background(), srv.URL+"/docs", filter)

		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/docs/intro"}, urls)
	})

	t.Run("returns empty list without sitemap", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, map[string]string{})
		defer srv.Close()

		urls, err := pagemdhttp.NewSitemapService().DiscoverURLs(context.Background(), srv.URL, nil)

		require.NoError(t, err)
		assert.NotNil(t, urls)
		assert.Empty(t, urls)
	})

	t.Run("returns context error", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := pagemdhttp.NewSitemapService().DiscoverURLs(ctx, "https://example.com", nil)

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("rejects invalid base URL", func(t *testing.T) {
		t.Parallel()

		_, err := pagemdhttp.NewSitemapService().DiscoverURLs(context.Background(), "not a url", nil)

		assert.Equal(t, pagemd.EINVALID, pagemd.ErrorCode(err))
	})
}

func urlset(locs ...string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")
	for _, loc := range locs {
		b.WriteString("  <url><loc>" + loc + "</loc></url>\n")
	}
	b.WriteString("</urlset>")
	return b.String()
}

// newTestServer creates a test HTTP server with the given path->content mapping.
// Content strings may contain {{BASE}} which is replaced with the server URL.
func newTestServer(t *testing.T, content map[string]string) *httptest.Server {
	t.Helper()

	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := content[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		body = strings.ReplaceAll(body, "{{BASE}}", srv.URL)

		if r.URL.Path == "/robots.txt" {
			w.Header().Set("Content-Type", "text/plain")
		} else {
			w.Header().Set("Content-Type", "application/xml")
		}
		_, _ = w.Write([]byte(body))
	}))

	return srv
}
