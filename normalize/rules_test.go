package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/docgraph/docgraph"
	"github.com/docgraph/docgraph/normalize"
)

func para(text string) *docgraph.Paragraph {
	return &docgraph.Paragraph{Children: []docgraph.Inline{docgraph.Text{Text: text}}}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	rules := normalize.DefaultRules()

	tests := []struct {
		name  string
		block docgraph.Block
		want  docgraph.SemanticRole
	}{
		{
			name:  "warning keyword",
			block: para("Warning: deleting a lead is permanent."),
			want:  docgraph.RoleWarning,
		},
		{
			name:  "important keyword",
			block: para("Important: save your changes first."),
			want:  docgraph.RoleImportant,
		},
		{
			name:  "example in code block",
			block: &docgraph.CodeBlock{Code: "example request: GET /leads"},
			want:  docgraph.RoleExample,
		},
		{
			name:  "configuration keyword",
			block: para("Open the settings to configure the pipeline."),
			want:  docgraph.RoleConfiguration,
		},
		{
			name:  "definition phrasing",
			block: para("A lead is a potential customer."),
			want:  docgraph.RoleDefinition,
		},
		{
			name:  "capability phrasing",
			block: para("You can convert a lead into a deal."),
			want:  docgraph.RoleCapability,
		},
		{
			name:  "russian capability phrasing",
			block: para("CRM позволяет создавать лиды автоматически."),
			want:  docgraph.RoleCapability,
		},
		{
			name:  "plain header defaults to section",
			block: &docgraph.Header{Level: 2, Text: "Converting leads"},
			want:  docgraph.RoleSection,
		},
		{
			name:  "plain list defaults to list item",
			block: &docgraph.List{Items: [][]docgraph.Inline{{docgraph.Text{Text: "one"}}}},
			want:  docgraph.RoleListItem,
		},
		{
			name:  "plain paragraph keeps no role",
			block: para("The form opens in the sidebar."),
			want:  docgraph.SemanticRole(""),
		},
		{
			name:  "plain code block keeps no role",
			block: &docgraph.CodeBlock{Code: "GET /leads"},
			want:  docgraph.SemanticRole(""),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, normalize.Classify(rules, tt.block))
		})
	}
}

func TestClassify_FirstMatchWins(t *testing.T) {
	t.Parallel()

	rules := normalize.DefaultRules()

	// Contains both warning and example keywords; warning is ordered first.
	b := para("Warning: this example deletes real data.")
	assert.Equal(t, docgraph.RoleWarning, normalize.Classify(rules, b))

	// A warning-flavored header is a warning, not a section.
	h := &docgraph.Header{Level: 3, Text: "Warning"}
	assert.Equal(t, docgraph.RoleWarning, normalize.Classify(rules, h))
}
