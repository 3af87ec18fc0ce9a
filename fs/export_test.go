package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docgraph/docgraph"
	"github.com/docgraph/docgraph/fs"
)

func TestPathFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"crm/create-lead.html", "crm/create-lead.json"},
		{"crm/leads", "crm/leads.json"},
		{"", "index.json"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, fs.PathFor(tt.in))
	}
}

func TestExporter(t *testing.T) {
	t.Parallel()

	doc := &docgraph.Document{
		DocID:          "create-lead",
		URL:            "https://support.example.com/help/crm/create-lead.html",
		NormalizedPath: "crm/create-lead.html",
		Title:          "Creating leads",
		Content:        []docgraph.Block{&docgraph.Header{Level: 1, Text: "Creating leads"}},
	}

	t.Run("commit moves staged files into place", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()

		e := fs.NewExporter(dir, "out")
		require.NoError(t, e.Save(doc))
		require.NoError(t, e.Commit())

		data, err := os.ReadFile(filepath.Join(dir, "out", "crm", "create-lead.json"))
		require.NoError(t, err)
		assert.Contains(t, string(data), `"normalizedPath": "crm/create-lead.html"`)

		_, err = os.Stat(filepath.Join(dir, "out.tmp"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("commit replaces a previous export", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()

		first := fs.NewExporter(dir, "out")
		require.NoError(t, first.Save(doc))
		require.NoError(t, first.Commit())

		updated := *doc
		updated.Title = "Creating leads (updated)"
		second := fs.NewExporter(dir, "out")
		require.NoError(t, second.Save(&updated))
		require.NoError(t, second.Commit())

		data, err := os.ReadFile(filepath.Join(dir, "out", "crm", "create-lead.json"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "Creating leads (updated)")
	})

	t.Run("abort discards staged files", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()

		e := fs.NewExporter(dir, "out")
		require.NoError(t, e.Save(doc))
		require.NoError(t, e.Abort())

		_, err := os.Stat(filepath.Join(dir, "out"))
		assert.True(t, os.IsNotExist(err))
		_, err = os.Stat(filepath.Join(dir, "out.tmp"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("save rejects invalid documents", func(t *testing.T) {
		t.Parallel()
		e := fs.NewExporter(t.TempDir(), "out")
		err := e.Save(&docgraph.Document{})
		require.Error(t, err)
	})
}
