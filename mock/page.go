package mock

import (
	"github.com/docgraph/docgraph"
)

var _ docgraph.PageParser = (*PageParser)(nil)

// PageParser is a mock implementation of docgraph.PageParser.
type PageParser struct {
	ParseFn func(html string, sourceURL string) (*docgraph.Page, error)
}

func (p *PageParser) Parse(html string, sourceURL string) (*docgraph.Page, error) {
	return p.ParseFn(html, sourceURL)
}

var _ docgraph.Normalizer = (*Normalizer)(nil)

// Normalizer is a mock implementation of docgraph.Normalizer.
type Normalizer struct {
	NormalizeFn func(page *docgraph.Page) *docgraph.NormalizeResult
}

func (n *Normalizer) Normalize(page *docgraph.Page) *docgraph.NormalizeResult {
	return n.NormalizeFn(page)
}
