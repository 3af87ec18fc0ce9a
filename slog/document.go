package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/docgraph/docgraph"
)

// Ensure LoggingDocumentService implements docgraph.DocumentService.
var _ docgraph.DocumentService = (*LoggingDocumentService)(nil)

// LoggingDocumentService wraps a DocumentService with logging.
type LoggingDocumentService struct {
	next   docgraph.DocumentService
	logger *slog.Logger
}

// NewLoggingDocumentService creates a new LoggingDocumentService.
func NewLoggingDocumentService(next docgraph.DocumentService, logger *slog.Logger) *LoggingDocumentService {
	return &LoggingDocumentService{next: next, logger: logger}
}

// GetByNormalizedPath delegates to the wrapped service.
func (s *LoggingDocumentService) GetByNormalizedPath(ctx context.Context, path string) (*docgraph.Document, error) {
	return s.next.GetByNormalizedPath(ctx, path)
}

// Upsert delegates to the wrapped service and logs the operation.
func (s *LoggingDocumentService) Upsert(ctx context.Context, doc *docgraph.Document) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("document upsert",
			"path", doc.NormalizedPath,
			"blocks", len(doc.Content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Upsert(ctx, doc)
}

// ListAll delegates to the wrapped service and logs the operation.
func (s *LoggingDocumentService) ListAll(ctx context.Context) (docs []*docgraph.Document, err error) {
	defer func(begin time.Time) {
		s.logger.Info("document list",
			"count", len(docs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ListAll(ctx)
}
