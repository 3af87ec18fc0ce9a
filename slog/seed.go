package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/docgraph/docgraph"
)

// Ensure LoggingSeedSource implements docgraph.SeedSource.
var _ docgraph.SeedSource = (*LoggingSeedSource)(nil)

// LoggingSeedSource wraps a SeedSource with logging.
type LoggingSeedSource struct {
	next   docgraph.SeedSource
	logger *slog.Logger
}

// NewLoggingSeedSource creates a new LoggingSeedSource.
func NewLoggingSeedSource(next docgraph.SeedSource, logger *slog.Logger) *LoggingSeedSource {
	return &LoggingSeedSource{next: next, logger: logger}
}

// Discover delegates to the wrapped source and logs the operation.
func (s *LoggingSeedSource) Discover(ctx context.Context, baseURL string) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("seed discovery",
			"url", baseURL,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Discover(ctx, baseURL)
}
