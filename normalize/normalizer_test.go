package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docgraph/docgraph"
	"github.com/docgraph/docgraph/normalize"
)

func TestNormalizer_Normalize(t *testing.T) {
	t.Parallel()

	n := normalize.NewNormalizer()

	page := &docgraph.Page{
		URL: "https://support.example.com/help/crm/create-lead.html",
		Blocks: []docgraph.Block{
			&docgraph.Header{Level: 1, Text: "Creating leads"},
			&docgraph.Paragraph{Children: []docgraph.Inline{
				docgraph.Text{Text: "See "},
				docgraph.Link{Text: "the form guide", Target: "/ru/help/crm/lead-form.html"},
				docgraph.Text{Text: " and "},
				docgraph.Link{Text: "field reference", Target: "/en/help/crm/lead-form.html#fields"},
				docgraph.Text{Text: "."},
			}},
			&docgraph.SpecialBlock{Kind: "Warning", Heading: "Warning", Children: []docgraph.Inline{
				docgraph.Text{Text: "Deleting a lead is permanent."},
				docgraph.Link{Text: "restore guide", Target: "/help/crm/restore.html"},
			}},
		},
	}

	res := n.Normalize(page)

	t.Run("token counts are set per block", func(t *testing.T) {
		assert.Equal(t, 2, res.Blocks[0].BlockMeta().TokenCount)
		assert.Positive(t, res.Blocks[1].BlockMeta().TokenCount)
		assert.Positive(t, res.Blocks[2].BlockMeta().TokenCount)
	})

	t.Run("semantic roles are assigned", func(t *testing.T) {
		assert.Equal(t, docgraph.RoleSection, res.Blocks[0].BlockMeta().SemanticRole)
		assert.Equal(t, docgraph.RoleWarning, res.Blocks[2].BlockMeta().SemanticRole)
	})

	t.Run("outgoing links are normalized, deduplicated and sorted", func(t *testing.T) {
		// The two locale variants of lead-form collapse to one path.
		require.Equal(t, []string{"crm/lead-form.html", "crm/restore.html"}, res.OutgoingLinks)
	})

	t.Run("stats summarize the pass", func(t *testing.T) {
		assert.Equal(t, 1, res.Stats.SpecialBlocks)
		assert.Equal(t, 3, res.Stats.Links)
		assert.Positive(t, res.Stats.Tokens)
	})
}

func TestNormalizer_Normalize_EmptyPage(t *testing.T) {
	t.Parallel()

	n := normalize.NewNormalizer()
	res := n.Normalize(&docgraph.Page{URL: "https://support.example.com/help/empty.html"})

	assert.Empty(t, res.Blocks)
	assert.Empty(t, res.OutgoingLinks)
	assert.Zero(t, res.Stats.Tokens)
}

func TestNormalizer_Normalize_OrderIndependentLinkSet(t *testing.T) {
	t.Parallel()

	n := normalize.NewNormalizer()

	blocks := func(order []string) []docgraph.Block {
		var bs []docgraph.Block
		for _, target := range order {
			bs = append(bs, &docgraph.Paragraph{Children: []docgraph.Inline{
				docgraph.Link{Text: "x", Target: target},
			}})
		}
		return bs
	}

	a := n.Normalize(&docgraph.Page{Blocks: blocks([]string{"/help/b.html", "/help/a.html", "/help/c.html"})})
	b := n.Normalize(&docgraph.Page{Blocks: blocks([]string{"/help/c.html", "/help/a.html", "/help/b.html"})})

	assert.Equal(t, a.OutgoingLinks, b.OutgoingLinks)
	assert.Equal(t, []string{"a.html", "b.html", "c.html"}, a.OutgoingLinks)
}
