package docgraph

import "strings"

// BlockType tags a content block variant.
type BlockType string

// Block variant tags.
const (
	BlockHeader  BlockType = "header"
	BlockPara    BlockType = "paragraph"
	BlockList    BlockType = "list"
	BlockCode    BlockType = "code_block"
	BlockTable   BlockType = "table"
	BlockSpecial BlockType = "special_block"
	BlockImage   BlockType = "image"
)

// SemanticRole classifies a block's function within a help page.
type SemanticRole string

// Semantic roles assigned by the block normalizer.
const (
	RoleSection       SemanticRole = "section"
	RoleDefinition    SemanticRole = "definition"
	RoleCapability    SemanticRole = "capability"
	RoleConfiguration SemanticRole = "configuration"
	RoleExample       SemanticRole = "example"
	RoleWarning       SemanticRole = "warning"
	RoleImportant     SemanticRole = "important"
	RoleListItem      SemanticRole = "list_item"
)

// Meta carries the enrichment fields shared by every block variant.
// Both are absent until the normalizer runs: a zero TokenCount means
// "not counted" and an empty SemanticRole means "no rule matched".
type Meta struct {
	TokenCount   int          `json:"token_count,omitempty"`
	SemanticRole SemanticRole `json:"semantic_role,omitempty"`
}

// Block is a closed tagged variant over the content block kinds. A block
// belongs to exactly one document and has no identity outside that
// document's block sequence; its position in the sequence is its address
// within the page.
type Block interface {
	// Type returns the variant tag.
	Type() BlockType

	// BlockMeta returns a pointer to the shared enrichment fields,
	// letting the normalizer set them without knowing the variant.
	BlockMeta() *Meta
}

// Inline is a run of paragraph or list-item content: either plain text or
// an inline link.
type Inline interface {
	inline()
}

// Text is a plain text run.
type Text struct {
	Text string `json:"text"`
}

func (Text) inline() {}

// Link is an inline reference as it appeared in source markup. Target is
// the raw href value; normalization happens downstream.
type Link struct {
	Text   string `json:"text"`
	Target string `json:"target"`
}

func (Link) inline() {}

// Header is a section heading (h1-h6).
type Header struct {
	Meta
	Level int    `json:"level"`
	Text  string `json:"text"`
	ID    string `json:"id,omitempty"`
}

func (*Header) Type() BlockType    { return BlockHeader }
func (b *Header) BlockMeta() *Meta { return &b.Meta }

// Paragraph is a run of inline content.
type Paragraph struct {
	Meta
	Children []Inline `json:"children"`
}

func (*Paragraph) Type() BlockType    { return BlockPara }
func (b *Paragraph) BlockMeta() *Meta { return &b.Meta }

// List is an ordered or unordered list; each item is a sequence of inline
// runs.
type List struct {
	Meta
	Ordered bool       `json:"ordered"`
	Items   [][]Inline `json:"items"`
}

func (*List) Type() BlockType    { return BlockList }
func (b *List) BlockMeta() *Meta { return &b.Meta }

// CodeBlock is preformatted code with an optional language hint.
type CodeBlock struct {
	Meta
	Language string `json:"language,omitempty"`
	Code     string `json:"code"`
}

func (*CodeBlock) Type() BlockType    { return BlockCode }
func (b *CodeBlock) BlockMeta() *Meta { return &b.Meta }

// Table is tabular content with a header row and body rows.
type Table struct {
	Meta
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

func (*Table) Type() BlockType    { return BlockTable }
func (b *Table) BlockMeta() *Meta { return &b.Meta }

// SpecialBlock is content reified from a marker-phrase heading ("In this
// article", "Example", ...) rather than from a generic structural tag.
// Kind is the matched marker.
type SpecialBlock struct {
	Meta
	Kind     string   `json:"kind"`
	Heading  string   `json:"heading"`
	Children []Inline `json:"children,omitempty"`
}

func (*SpecialBlock) Type() BlockType    { return BlockSpecial }
func (b *SpecialBlock) BlockMeta() *Meta { return &b.Meta }

// Image is an embedded image reference.
type Image struct {
	Meta
	Src string `json:"src"`
	Alt string `json:"alt,omitempty"`
}

func (*Image) Type() BlockType    { return BlockImage }
func (b *Image) BlockMeta() *Meta { return &b.Meta }

// FlattenText folds a block into its visible text. Inline link text is
// included, link targets are not. Used by token accounting and semantic
// classification.
func FlattenText(b Block) string {
	switch v := b.(type) {
	case *Header:
		return v.Text
	case *Paragraph:
		return flattenInlines(v.Children)
	case *List:
		var parts []string
		for _, item := range v.Items {
			if s := flattenInlines(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "\n")
	case *CodeBlock:
		return v.Code
	case *Table:
		var parts []string
		parts = append(parts, strings.Join(v.Header, " "))
		for _, row := range v.Rows {
			parts = append(parts, strings.Join(row, " "))
		}
		return strings.TrimSpace(strings.Join(parts, "\n"))
	case *SpecialBlock:
		if body := flattenInlines(v.Children); body != "" {
			return v.Heading + "\n" + body
		}
		return v.Heading
	case *Image:
		return v.Alt
	default:
		return ""
	}
}

// InlineLinks folds a block into the inline links it embeds, in document
// order. Only paragraph, list and special blocks can carry links.
func InlineLinks(b Block) []Link {
	switch v := b.(type) {
	case *Paragraph:
		return inlineLinks(v.Children)
	case *List:
		var links []Link
		for _, item := range v.Items {
			links = append(links, inlineLinks(item)...)
		}
		return links
	case *SpecialBlock:
		return inlineLinks(v.Children)
	default:
		return nil
	}
}

func flattenInlines(children []Inline) string {
	var sb strings.Builder
	for _, c := range children {
		switch v := c.(type) {
		case Text:
			sb.WriteString(v.Text)
		case Link:
			sb.WriteString(v.Text)
		}
	}
	return strings.TrimSpace(sb.String())
}

func inlineLinks(children []Inline) []Link {
	var links []Link
	for _, c := range children {
		if l, ok := c.(Link); ok {
			links = append(links, l)
		}
	}
	return links
}
