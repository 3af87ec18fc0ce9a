package mock

import (
	"context"

	"github.com/docgraph/docgraph"
)

var _ docgraph.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of docgraph.DocumentService.
type DocumentService struct {
	GetByNormalizedPathFn func(ctx context.Context, path string) (*docgraph.Document, error)
	UpsertFn              func(ctx context.Context, doc *docgraph.Document) error
	ListAllFn             func(ctx context.Context) ([]*docgraph.Document, error)
}

func (s *DocumentService) GetByNormalizedPath(ctx context.Context, path string) (*docgraph.Document, error) {
	return s.GetByNormalizedPathFn(ctx, path)
}

func (s *DocumentService) Upsert(ctx context.Context, doc *docgraph.Document) error {
	return s.UpsertFn(ctx, doc)
}

func (s *DocumentService) ListAll(ctx context.Context) ([]*docgraph.Document, error) {
	return s.ListAllFn(ctx)
}
