package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/docgraph/docgraph"
)

// Compile-time interface verification.
var _ docgraph.DocumentService = (*DocumentService)(nil)

// DocumentService implements docgraph.DocumentService using SQLite.
type DocumentService struct {
	db *DB
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db}
}

// hashContent computes xxHash of content and returns a hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, h)
	return hex.EncodeToString(b)
}

// GetByNormalizedPath retrieves the document stored under the given
// normalized path.
func (s *DocumentService) GetByNormalizedPath(ctx context.Context, path string) (*docgraph.Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT doc_id, url, normalized_path, title, section, content, outgoing_links, content_hash, created_at, last_crawled
		FROM documents
		WHERE normalized_path = ?
	`, path)

	doc, err := scanDocument(row.Scan)
	if err == sql.ErrNoRows {
		return nil, docgraph.Errorf(docgraph.ENOTFOUND, "document not found")
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Upsert stores a document keyed by its normalized path. When a document
// already exists under the same path the newly crawled version replaces
// it, keeping the original doc_id and created_at.
func (s *DocumentService) Upsert(ctx context.Context, doc *docgraph.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	content, err := docgraph.EncodeBlocks(doc.Content)
	if err != nil {
		return err
	}
	links, err := json.Marshal(doc.OutgoingLinks)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	if doc.LastCrawled.IsZero() {
		doc.LastCrawled = now
	}
	doc.ContentHash = hashContent(string(content))

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (doc_id, url, normalized_path, title, section, content, outgoing_links, content_hash, created_at, last_crawled)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(normalized_path) DO UPDATE SET
			url = excluded.url,
			title = excluded.title,
			section = excluded.section,
			content = excluded.content,
			outgoing_links = excluded.outgoing_links,
			content_hash = excluded.content_hash,
			last_crawled = excluded.last_crawled
	`, doc.DocID, doc.URL, doc.NormalizedPath, doc.Title, doc.Section, string(content), string(links),
		doc.ContentHash, doc.CreatedAt.Format(time.RFC3339), doc.LastCrawled.Format(time.RFC3339))

	// The normalized-path conflict is resolved above, so a remaining
	// constraint failure is the doc_id primary key: two distinct paths
	// derived the same identifier.
	if err != nil && strings.Contains(err.Error(), "constraint failed") {
		return docgraph.Errorf(docgraph.ECONFLICT, "doc_id %q is already used by another document", doc.DocID)
	}
	return err
}

// ListAll retrieves every stored document, ordered by normalized path.
func (s *DocumentService) ListAll(ctx context.Context) ([]*docgraph.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT doc_id, url, normalized_path, title, section, content, outgoing_links, content_hash, created_at, last_crawled
		FROM documents
		ORDER BY normalized_path ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*docgraph.Document
	for rows.Next() {
		doc, err := scanDocument(rows.Scan)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

// scanDocument builds a Document from a row scan function, decoding the
// JSON content and timestamp columns.
func scanDocument(scan func(dest ...any) error) (*docgraph.Document, error) {
	var doc docgraph.Document
	var content, links, createdAt, lastCrawled string

	if err := scan(&doc.DocID, &doc.URL, &doc.NormalizedPath, &doc.Title, &doc.Section,
		&content, &links, &doc.ContentHash, &createdAt, &lastCrawled); err != nil {
		return nil, err
	}

	blocks, err := docgraph.DecodeBlocks([]byte(content))
	if err != nil {
		return nil, err
	}
	doc.Content = blocks

	if err := json.Unmarshal([]byte(links), &doc.OutgoingLinks); err != nil {
		return nil, err
	}

	if doc.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if doc.LastCrawled, err = parseRFC3339(lastCrawled, "last_crawled"); err != nil {
		return nil, err
	}

	return &doc, nil
}
