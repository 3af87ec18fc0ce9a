package docgraph

import (
	"context"
	"time"
)

// Document represents one crawled help page. NormalizedPath is the unique
// navigation key: two locale variants of the same page collapse onto one
// Document. Content is the ordered block sequence produced by the parser
// and enriched by the normalizer.
type Document struct {
	DocID          string    `json:"docId"`
	URL            string    `json:"url"`
	NormalizedPath string    `json:"normalizedPath"`
	Title          string    `json:"title"`
	Section        string    `json:"section"`
	Content        []Block   `json:"content"`
	OutgoingLinks  []string  `json:"outgoingLinks"`
	ContentHash    string    `json:"contentHash"`
	CreatedAt      time.Time `json:"createdAt"`
	LastCrawled    time.Time `json:"lastCrawled"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.DocID == "" {
		return Errorf(EINVALID, "document ID required")
	}
	if d.URL == "" {
		return Errorf(EINVALID, "document URL required")
	}
	if d.NormalizedPath == "" {
		return Errorf(EINVALID, "document normalized path required")
	}
	return nil
}

// DocumentService is the storage collaborator for documents. Uniqueness of
// NormalizedPath, DocID and URL is enforced by implementations. The
// conflict policy when two distinct source URLs normalize to the same path
// is last-crawled-wins: Upsert replaces the stored content and URL while
// preserving CreatedAt.
type DocumentService interface {
	// GetByNormalizedPath retrieves a document by its canonical path.
	// Returns ENOTFOUND if the document does not exist.
	GetByNormalizedPath(ctx context.Context, path string) (*Document, error)

	// Upsert creates the document on first fetch and replaces content,
	// outgoing links and LastCrawled on every re-crawl of the same path.
	Upsert(ctx context.Context, doc *Document) error

	// ListAll returns every stored document. Used by the integrity
	// checker's batch pass.
	ListAll(ctx context.Context) ([]*Document, error)
}
