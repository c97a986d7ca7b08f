// Package convert orchestrates turning web pages into Markdown documents:
// fetching, extraction, image localization, transcoding and persistence
// for a single URL, and batches of URLs on top of that.
package convert

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fwojciec/pagemd"
)

var _ pagemd.PageConverter = (*Pipeline)(nil)

// Pipeline converts one URL at a time. Assets may be nil, in which case
// image references are left pointing at their original locations.
type Pipeline struct {
	Fetcher     pagemd.Fetcher
	Extractor   pagemd.Extractor
	Converter   pagemd.Converter
	Assets      *Materializer
	Writer      pagemd.DocumentWriter
	RetryDelays []time.Duration
	Logger      *slog.Logger

	// Now returns the crawl timestamp. Defaults to time.Now.
	Now func() time.Time

	mu     sync.Mutex
	claims map[string]string // document path -> source URL
}

// Convert runs fetch, extract, metadata, asset localization, transcoding,
// assembly and the atomic write for rawURL.
func (p *Pipeline) Convert(ctx context.Context, rawURL string, target pagemd.Target) (*pagemd.ConversionResult, error) {
	pageURL, err := NormalizeURL(rawURL)
	if err != nil {
		return nil, err
	}
	logger := p.logger().With("url", pageURL)

	html, err := fetchWithRetry(ctx, p.Fetcher, pageURL, p.RetryDelays, logger)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	doc, err := p.Extractor.Extract(html)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	meta := pagemd.ExtractMetadata(doc, pageURL)

	crawled := p.now()
	docPath := target.OutputPath
	if docPath == "" {
		docPath = p.claimPath(pagemd.DocumentPath(target.OutputDir, pagemd.DocumentBaseName(meta.Title, pageURL, crawled)), pageURL)
	}

	result := &pagemd.ConversionResult{
		SourceURL:    pageURL,
		OutputPath:   docPath,
		Metadata:     meta,
		Strategy:     doc.Strategy,
		CrawledAt:    crawled,
		FailedAssets: make(map[string]error),
	}

	if p.Assets != nil {
		mat, err := p.Assets.Materialize(ctx, pageURL, docPath, doc.ContentHTML)
		if err != nil {
			logger.Warn("asset localization skipped", "err", err)
		} else {
			doc = doc.WithContent(mat.HTML)
			result.AssetDir = mat.Dir
			result.Assets = mat.Assets
			result.FailedAssets = mat.Failed
		}
	}

	body, err := p.Converter.Convert(doc.ContentHTML)
	if err != nil {
		return nil, fmt.Errorf("convert: %w", err)
	}

	result.Markdown = pagemd.FormatDocument(meta, crawled, body)
	if err := p.Writer.WriteDocument(ctx, docPath, []byte(result.Markdown)); err != nil {
		return nil, err
	}

	logger.Debug("converted",
		"path", docPath,
		"strategy", result.Strategy,
		"assets", len(result.Assets),
		"failed_assets", len(result.FailedAssets),
	)
	return result, nil
}

// claimPath reserves path for pageURL. A path already claimed by another
// URL in this pipeline gets a numeric suffix so documents never overwrite
// each other; the same URL keeps its path.
func (p *Pipeline) claimPath(path, pageURL string) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.claims == nil {
		p.claims = make(map[string]string)
	}
	name, _ := pagemd.CollisionFreeName(path, func(candidate string) (bool, error) {
		owner, ok := p.claims[candidate]
		return ok && owner != pageURL, nil
	})
	p.claims[name] = pageURL
	return name
}

func (p *Pipeline) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return p.Logger
}
