// Package normalize post-processes parsed pages into the canonical block
// model: semantic role assignment, token accounting, and extraction of the
// document's outgoing link set.
package normalize

import (
	"sort"

	"github.com/docgraph/docgraph"
)

// Compile-time interface verification.
var _ docgraph.Normalizer = (*Normalizer)(nil)

// Normalizer enriches raw blocks in place and folds their embedded links
// into a document-level outgoing link set. It is stateless apart from its
// rule table and safe for concurrent use.
type Normalizer struct {
	// Rules is the ordered classification rule table.
	Rules []Rule
}

// NewNormalizer creates a Normalizer with the default rule set.
func NewNormalizer() *Normalizer {
	return &Normalizer{Rules: DefaultRules()}
}

// Normalize runs both enrichment folds over the page's block sequence.
// Token counts come from flattened text (link text included, targets
// excluded); outgoing links are the normalized, deduplicated targets of
// every inline link, rendered as a sorted sequence. Classification or
// counting trouble degrades to omitted fields, never to a failed
// document.
func (n *Normalizer) Normalize(page *docgraph.Page) *docgraph.NormalizeResult {
	res := &docgraph.NormalizeResult{Blocks: page.Blocks}

	targets := make(map[string]bool)
	for _, b := range res.Blocks {
		meta := b.BlockMeta()

		if text := docgraph.FlattenText(b); text != "" {
			meta.TokenCount = CountTokens(text)
			res.Stats.Tokens += meta.TokenCount
		}
		meta.SemanticRole = Classify(n.Rules, b)

		if b.Type() == docgraph.BlockSpecial {
			res.Stats.SpecialBlocks++
		}

		for _, link := range docgraph.InlineLinks(b) {
			res.Stats.Links++
			if path := docgraph.NormalizePath(link.Target); path != "" {
				targets[path] = true
			}
		}
	}

	res.OutgoingLinks = make([]string, 0, len(targets))
	for path := range targets {
		res.OutgoingLinks = append(res.OutgoingLinks, path)
	}
	sort.Strings(res.OutgoingLinks)

	return res
}
