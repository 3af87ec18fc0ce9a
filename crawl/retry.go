package crawl

import (
	"context"
	"log/slog"
	"time"

	"github.com/docgraph/docgraph"
)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// fetchWithRetry attempts a fetch with backoff. The number of attempts is
// len(delays)+1. Each attempt is bounded by timeout. Retry logging goes to
// logger at debug level.
func fetchWithRetry(ctx context.Context, fetcher docgraph.Fetcher, url string, timeout time.Duration, delays []time.Duration, logger *slog.Logger) (string, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		fctx, cancel := context.WithTimeout(ctx, timeout)
		html, err := fetcher.Fetch(fctx, url)
		cancel()
		if err == nil {
			return html, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 {
			break
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		logger.Debug("fetch retry",
			"url", url,
			"attempt", attempt+2,
			"err", err,
		)

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}
