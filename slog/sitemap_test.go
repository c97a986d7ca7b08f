package slog_test

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/fwojciec/pagemd"
	"github.com/fwojciec/pagemd/mock"
	pmslog "github.com/fwojciec/pagemd/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingSitemapService(t *testing.T) {
	t.Parallel()

	t.Run("records how many batch URLs were found", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		svc := pmslog.NewLoggingSitemapService(&mock.SitemapService{
			DiscoverURLsFn: func(context.Context, string, *pagemd.URLFilter) ([]string, error) {
				return []string{"https://news.example.cn/1.html", "https://news.example.cn/2.html"}, nil
			},
		}, newTextLogger(&buf))

		filter := &pagemd.URLFilter{Include: []*regexp.Regexp{regexp.MustCompile(`\.html$`)}}
		urls, err := svc.DiscoverURLs(context.Background(), "https://news.example.cn", filter)

		require.NoError(t, err)
		assert.Len(t, urls, 2)
		line := buf.String()
		assert.Contains(t, line, `msg="sitemap discovery"`)
		assert.Contains(t, line, "url=https://news.example.cn")
		assert.Contains(t, line, "filtered=true")
		assert.Contains(t, line, "count=2")
	})

	t.Run("records the failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		svc := pmslog.NewLoggingSitemapService(&mock.SitemapService{
			DiscoverURLsFn: func(context.Context, string, *pagemd.URLFilter) ([]string, error) {
				return nil, errors.New("connection failed")
			},
		}, newTextLogger(&buf))

		_, err := svc.DiscoverURLs(context.Background(), "https://news.example.cn", nil)

		require.Error(t, err)
		assert.Contains(t, buf.String(), "filtered=false")
		assert.Contains(t, buf.String(), `err="connection failed"`)
	})
}
