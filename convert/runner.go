package convert

import (
	"context"
	"log/slog"

	"github.com/fwojciec/pagemd"
	"golang.org/x/sync/errgroup"
)

// Runner converts a batch of URLs. A failing URL never stops the batch.
type Runner struct {
	Pages pagemd.PageConverter

	// History records each successful conversion when set.
	History pagemd.ConversionService

	// RateLimiter spaces page requests per host when set.
	RateLimiter pagemd.DomainLimiter

	// Concurrency is the number of documents converted at once.
	// Values below 1 mean sequential processing.
	Concurrency int

	Logger *slog.Logger
}

// BatchResult lists the outcome of every URL. Invalid URLs come first in
// Failed, then queued URLs in input order.
type BatchResult struct {
	Total     int
	Succeeded []*pagemd.ConversionResult
	Failed    []BatchFailure
}

// BatchFailure is one URL that could not be converted.
type BatchFailure struct {
	URL string
	Err error
}

type batchItem struct {
	position int
	url      string
	result   *pagemd.ConversionResult
	err      error
}

// Run converts urls. Duplicates (ignoring fragments) are converted once and
// invalid URLs fail with EINVALID without being fetched. An output path in
// target is only accepted for a single URL. progress, when set, is called
// once per URL from the calling goroutine.
func (r *Runner) Run(ctx context.Context, urls []string, target pagemd.Target, progress pagemd.BatchProgressFunc) (*BatchResult, error) {
	queue := NewQueue(uint(len(urls)))
	var invalid []BatchFailure
	for _, raw := range urls {
		if _, err := NormalizeURL(raw); err != nil {
			invalid = append(invalid, BatchFailure{URL: raw, Err: err})
			continue
		}
		if queue.Seen(raw) {
			r.logger().Debug("duplicate url skipped", "url", raw)
			continue
		}
		queue.Push(raw)
	}

	queued := queue.Len()
	total := queued + len(invalid)
	if target.OutputPath != "" && total > 1 {
		return nil, pagemd.Errorf(pagemd.EINVALID, "an output path can only be used with a single URL")
	}

	batch := &BatchResult{Total: total}
	var completed int
	report := func(url string, res *pagemd.ConversionResult, err error) {
		completed++
		if progress != nil {
			progress(pagemd.BatchProgress{
				URL:       url,
				Completed: completed,
				Total:     total,
				Result:    res,
				Error:     err,
			})
		}
	}

	for _, f := range invalid {
		batch.Failed = append(batch.Failed, f)
		report(f.URL, nil, f.Err)
	}

	resultCh := make(chan batchItem, queued)
	go func() {
		var g errgroup.Group
		g.SetLimit(max(r.Concurrency, 1))
		for position := 0; ; position++ {
			u, ok := queue.Pop()
			if !ok {
				break
			}
			g.Go(func() error {
				res, err := r.convert(ctx, u, target)
				resultCh <- batchItem{position: position, url: u, result: res, err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	outcomes := make([]batchItem, queued)
	for item := range resultCh {
		outcomes[item.position] = item
		if item.err == nil {
			r.record(ctx, item.result)
		}
		report(item.url, item.result, item.err)
	}

	for _, o := range outcomes {
		if o.err != nil {
			batch.Failed = append(batch.Failed, BatchFailure{URL: o.url, Err: o.err})
			continue
		}
		batch.Succeeded = append(batch.Succeeded, o.result)
	}
	return batch, nil
}

func (r *Runner) convert(ctx context.Context, url string, target pagemd.Target) (*pagemd.ConversionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := waitHost(ctx, r.RateLimiter, url); err != nil {
		return nil, err
	}
	return r.Pages.Convert(ctx, url, target)
}

func (r *Runner) record(ctx context.Context, res *pagemd.ConversionResult) {
	if r.History == nil {
		return
	}
	conv := &pagemd.Conversion{
		SourceURL:   res.SourceURL,
		Title:       res.Metadata.Title,
		OutputPath:  res.OutputPath,
		Published:   res.Metadata.Date,
		Author:      res.Metadata.Author,
		ContentHash: ContentHash([]byte(res.Markdown)),
		AssetCount:  len(res.Assets),
		Strategy:    res.Strategy,
		CreatedAt:   res.CrawledAt,
	}
	if err := r.History.CreateConversion(ctx, conv); err != nil {
		r.logger().Warn("history not recorded", "url", res.SourceURL, "err", err)
	}
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.Logger
}
