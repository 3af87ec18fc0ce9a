package docgraph

// PageMeta holds page-level metadata extracted alongside the block
// sequence.
type PageMeta struct {
	// Title falls back through h1, the document title tag and the
	// og:title meta tag; empty when none are present.
	Title string

	// Breadcrumbs is the navigation trail, outermost first.
	Breadcrumbs []string

	// Section combines the breadcrumb trail with the first path segment
	// after the help root, e.g. "CRM > Leads | [crm]".
	Section string

	// ImageCount is the number of images found in the main content.
	ImageCount int
}

// Page is the parser's output for one fetched page: metadata, the ordered
// raw block sequence, and every href discovered in the markup. Hrefs are
// resolved to absolute URLs but not yet filtered or normalized.
type Page struct {
	URL    string
	Meta   PageMeta
	Blocks []Block
	Hrefs  []string
}

// PageParser converts one page's raw markup into typed content blocks.
// Implementations never fail on malformed markup; missing structural
// elements degrade gracefully, worst case to an empty block sequence.
type PageParser interface {
	Parse(html string, sourceURL string) (*Page, error)
}

// Normalizer post-processes parsed pages into the canonical block model:
// semantic roles, token counts, and the deduplicated sorted set of
// normalized outgoing links.
type Normalizer interface {
	Normalize(page *Page) *NormalizeResult
}

// NormalizeStats summarizes one normalization pass.
type NormalizeStats struct {
	Tokens        int `json:"tokens"`
	SpecialBlocks int `json:"specialBlocks"`
	Links         int `json:"links"`
}

// NormalizeResult holds the enriched blocks, the document's outgoing
// links (sorted ascending, no duplicates), and pass statistics.
type NormalizeResult struct {
	Blocks        []Block
	OutgoingLinks []string
	Stats         NormalizeStats
}
