package normalize

import (
	"strings"

	"github.com/docgraph/docgraph"
)

// Rule maps a block-shape predicate to a semantic role. Rules are plain
// data so the set can be tested and extended without touching the
// traversal logic.
type Rule struct {
	// Role is assigned when the rule matches.
	Role docgraph.SemanticRole

	// Types restricts the rule to specific block kinds. Empty means any.
	Types []docgraph.BlockType

	// Keywords are matched case-insensitively as substrings of the
	// block's flattened text. Empty means the block type alone decides.
	Keywords []string
}

// Matches reports whether the rule applies to the block.
func (r Rule) Matches(b docgraph.Block) bool {
	if len(r.Types) > 0 {
		found := false
		for _, t := range r.Types {
			if b.Type() == t {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(r.Keywords) == 0 {
		return true
	}
	text := strings.ToLower(docgraph.FlattenText(b))
	for _, kw := range r.Keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// DefaultRules returns the ordered classification rule set; the first
// matching rule wins and unmatched blocks keep no role. Keyword sets
// cover both the Russian and English locales of the source site.
func DefaultRules() []Rule {
	textual := []docgraph.BlockType{docgraph.BlockPara, docgraph.BlockHeader, docgraph.BlockSpecial}
	return []Rule{
		{
			Role:     docgraph.RoleWarning,
			Types:    textual,
			Keywords: []string{"warning", "caution", "внимание", "осторожно"},
		},
		{
			Role:     docgraph.RoleImportant,
			Types:    textual,
			Keywords: []string{"important", "важно", "обязательно"},
		},
		{
			Role:     docgraph.RoleExample,
			Types:    []docgraph.BlockType{docgraph.BlockPara, docgraph.BlockHeader, docgraph.BlockSpecial, docgraph.BlockCode},
			Keywords: []string{"example", "пример", "for instance", "например"},
		},
		{
			Role:     docgraph.RoleConfiguration,
			Types:    textual,
			Keywords: []string{"configuration", "configure", "settings", "parameter", "настройк", "параметр"},
		},
		{
			Role:     docgraph.RoleDefinition,
			Types:    []docgraph.BlockType{docgraph.BlockPara},
			Keywords: []string{" is a ", " is an ", " means ", " represents ", " — это ", " - это "},
		},
		{
			Role:     docgraph.RoleCapability,
			Types:    []docgraph.BlockType{docgraph.BlockPara},
			Keywords: []string{"allows", "enables", "you can", "позволяет", "можно"},
		},
		{
			Role:  docgraph.RoleSection,
			Types: []docgraph.BlockType{docgraph.BlockHeader},
		},
		{
			Role:  docgraph.RoleListItem,
			Types: []docgraph.BlockType{docgraph.BlockList},
		},
	}
}

// Classify returns the role of the first matching rule, or "" when no
// rule matches.
func Classify(rules []Rule, b docgraph.Block) docgraph.SemanticRole {
	for _, r := range rules {
		if r.Matches(b) {
			return r.Role
		}
	}
	return ""
}
