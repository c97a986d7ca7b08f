package convert

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagemd"
)

// RetryDelays returns the backoff delays for the given number of page
// fetch retries:
// 1s, 2s, 4s, doubling further when more retries are requested.
func RetryDelays(retries int) []time.Duration {
	delays := make([]time.Duration, 0, max(retries, 0))
	d := time.Second
	for range retries {
		delays = append(delays, d)
		d *= 2
	}
	return delays
}

// fetchWithRetry fetches url, retrying transient failures (timeouts and
// network errors) once per entry in delays. HTTP status failures and
// other errors are returned immediately.
func fetchWithRetry(ctx context.Context, fetcher pagemd.Fetcher, url string, delays []time.Duration, logger *slog.Logger) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= len(delays); attempt++ {
		html, err := fetcher.Fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if !pagemd.IsTransient(err) || attempt == len(delays) {
			break
		}

		logger.Debug("retry fetch", "url", url, "attempt", attempt+2, "err", err)

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}
