package docgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docgraph/docgraph"
)

func TestFlattenText(t *testing.T) {
	t.Parallel()

	t.Run("paragraph includes link text but not targets", func(t *testing.T) {
		t.Parallel()
		b := &docgraph.Paragraph{Children: []docgraph.Inline{
			docgraph.Text{Text: "See the "},
			docgraph.Link{Text: "lead guide", Target: "/help/crm/create-lead.html"},
			docgraph.Text{Text: " for details."},
		}}
		assert.Equal(t, "See the lead guide for details.", docgraph.FlattenText(b))
	})

	t.Run("list joins items with newlines", func(t *testing.T) {
		t.Parallel()
		b := &docgraph.List{Items: [][]docgraph.Inline{
			{docgraph.Text{Text: "First step"}},
			{docgraph.Text{Text: "Second step"}},
		}}
		assert.Equal(t, "First step\nSecond step", docgraph.FlattenText(b))
	})

	t.Run("table flattens header and rows", func(t *testing.T) {
		t.Parallel()
		b := &docgraph.Table{
			Header: []string{"Field", "Value"},
			Rows:   [][]string{{"Name", "Lead"}},
		}
		assert.Equal(t, "Field Value\nName Lead", docgraph.FlattenText(b))
	})

	t.Run("special block includes heading and body", func(t *testing.T) {
		t.Parallel()
		b := &docgraph.SpecialBlock{
			Kind:    "Warning",
			Heading: "Warning",
			Children: []docgraph.Inline{
				docgraph.Text{Text: "Deleting a lead is permanent."},
			},
		}
		assert.Equal(t, "Warning\nDeleting a lead is permanent.", docgraph.FlattenText(b))
	})

	t.Run("image yields alt text", func(t *testing.T) {
		t.Parallel()
		b := &docgraph.Image{Src: "/img/lead.png", Alt: "Lead form"}
		assert.Equal(t, "Lead form", docgraph.FlattenText(b))
	})
}

func TestInlineLinks(t *testing.T) {
	t.Parallel()

	t.Run("collects links in document order", func(t *testing.T) {
		t.Parallel()
		b := &docgraph.List{Items: [][]docgraph.Inline{
			{docgraph.Link{Text: "a", Target: "/help/a.html"}},
			{docgraph.Text{Text: "no link"}},
			{docgraph.Link{Text: "b", Target: "/help/b.html"}},
		}}
		links := docgraph.InlineLinks(b)
		require.Len(t, links, 2)
		assert.Equal(t, "/help/a.html", links[0].Target)
		assert.Equal(t, "/help/b.html", links[1].Target)
	})

	t.Run("headers and code blocks carry no links", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, docgraph.InlineLinks(&docgraph.Header{Level: 2, Text: "Setup"}))
		assert.Nil(t, docgraph.InlineLinks(&docgraph.CodeBlock{Code: "GET /leads"}))
	})
}

func TestEncodeDecodeBlocks(t *testing.T) {
	t.Parallel()

	t.Run("round trips every variant", func(t *testing.T) {
		t.Parallel()

		blocks := []docgraph.Block{
			&docgraph.Header{
				Meta:  docgraph.Meta{TokenCount: 2, SemanticRole: docgraph.RoleSection},
				Level: 2, Text: "Creating leads", ID: "creating-leads",
			},
			&docgraph.Paragraph{
				Meta: docgraph.Meta{TokenCount: 6, SemanticRole: docgraph.RoleCapability},
				Children: []docgraph.Inline{
					docgraph.Text{Text: "You can create leads from the "},
					docgraph.Link{Text: "CRM", Target: "/help/crm/index.html"},
				},
			},
			&docgraph.List{
				Meta:    docgraph.Meta{SemanticRole: docgraph.RoleListItem},
				Ordered: true,
				Items: [][]docgraph.Inline{
					{docgraph.Text{Text: "Open the CRM"}},
					{docgraph.Link{Text: "Add a lead", Target: "create-lead.html"}},
				},
			},
			&docgraph.CodeBlock{Language: "json", Code: `{"name": "lead"}`},
			&docgraph.Table{Header: []string{"Field"}, Rows: [][]string{{"Name"}}},
			&docgraph.SpecialBlock{
				Kind: "In this article", Heading: "In this article",
				Children: []docgraph.Inline{docgraph.Link{Text: "Steps", Target: "#steps"}},
			},
			&docgraph.Image{Src: "/img/form.png", Alt: "Lead form"},
		}

		data, err := docgraph.EncodeBlocks(blocks)
		require.NoError(t, err)

		decoded, err := docgraph.DecodeBlocks(data)
		require.NoError(t, err)
		require.Equal(t, blocks, decoded)
	})

	t.Run("rejects unknown block type", func(t *testing.T) {
		t.Parallel()
		_, err := docgraph.DecodeBlocks([]byte(`[{"type": "carousel"}]`))
		require.Error(t, err)
		assert.Equal(t, docgraph.EINVALID, docgraph.ErrorCode(err))
	})

	t.Run("rejects unknown inline type", func(t *testing.T) {
		t.Parallel()
		_, err := docgraph.DecodeBlocks([]byte(`[{"type": "paragraph", "children": [{"type": "emoji"}]}]`))
		require.Error(t, err)
	})

	t.Run("nil sequence encodes as empty array", func(t *testing.T) {
		t.Parallel()
		data, err := docgraph.EncodeBlocks(nil)
		require.NoError(t, err)
		assert.Equal(t, "[]", string(data))
	})

	t.Run("empty data decodes to nil", func(t *testing.T) {
		t.Parallel()
		blocks, err := docgraph.DecodeBlocks(nil)
		require.NoError(t, err)
		assert.Nil(t, blocks)
	})
}
