// Package fs exports stored documents to disk as JSON files.
package fs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/docgraph/docgraph"
)

// PathFor converts a normalized document path to a relative file path.
// Example: crm/create-lead.html → crm/create-lead.json
func PathFor(normalizedPath string) string {
	if normalizedPath == "" {
		return "index.json"
	}
	p := strings.TrimSuffix(normalizedPath, ".html")
	return p + ".json"
}

// Exporter writes documents to a directory tree mirroring their
// normalized paths. Documents are staged in a temporary directory and
// moved into place atomically on Commit, so a partial export never
// replaces a previous complete one.
type Exporter struct {
	baseDir string
	name    string
}

// NewExporter creates a new Exporter.
// baseDir is the parent directory, name is the output directory name.
// Files are staged in baseDir/name.tmp and moved to baseDir/name on Commit.
func NewExporter(baseDir, name string) *Exporter {
	return &Exporter{
		baseDir: baseDir,
		name:    name,
	}
}

func (e *Exporter) tempDir() string {
	return filepath.Join(e.baseDir, e.name+".tmp")
}

func (e *Exporter) finalDir() string {
	return filepath.Join(e.baseDir, e.name)
}

// Save stages one document in the temporary directory.
func (e *Exporter) Save(doc *docgraph.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	fullPath := filepath.Join(e.tempDir(), filepath.FromSlash(PathFor(doc.NormalizedPath)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	content, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(fullPath, content, 0644)
}

// Commit atomically replaces the final directory with the staged one.
func (e *Exporter) Commit() error {
	if err := os.RemoveAll(e.finalDir()); err != nil {
		return err
	}
	return os.Rename(e.tempDir(), e.finalDir())
}

// Abort discards the staged directory.
func (e *Exporter) Abort() error {
	return os.RemoveAll(e.tempDir())
}
