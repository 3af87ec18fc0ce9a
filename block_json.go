package docgraph

import "encoding/json"

// The block variant model serializes as a nested tagged structure: every
// block and inline node carries a "type" field next to its variant-specific
// fields. This file implements the envelope codec; the persisted shape is
// storage-agnostic JSON.

// EncodeBlocks serializes an ordered block sequence.
func EncodeBlocks(blocks []Block) ([]byte, error) {
	if blocks == nil {
		blocks = []Block{}
	}
	return json.Marshal(blocks)
}

// DecodeBlocks deserializes an ordered block sequence produced by
// EncodeBlocks.
func DecodeBlocks(data []byte) ([]Block, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, Errorf(EINVALID, "malformed block sequence: %v", err)
	}
	blocks := make([]Block, 0, len(raws))
	for _, raw := range raws {
		b, err := decodeBlock(raw)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	return blocks, nil
}

func decodeBlock(raw json.RawMessage) (Block, error) {
	var tag struct {
		Type BlockType `json:"type"`
	}
	if err := json.Unmarshal(raw, &tag); err != nil {
		return nil, Errorf(EINVALID, "malformed block: %v", err)
	}

	var b Block
	switch tag.Type {
	case BlockHeader:
		b = &Header{}
	case BlockPara:
		b = &Paragraph{}
	case BlockList:
		b = &List{}
	case BlockCode:
		b = &CodeBlock{}
	case BlockTable:
		b = &Table{}
	case BlockSpecial:
		b = &SpecialBlock{}
	case BlockImage:
		b = &Image{}
	default:
		return nil, Errorf(EINVALID, "unknown block type %q", tag.Type)
	}
	if err := json.Unmarshal(raw, b); err != nil {
		return nil, Errorf(EINVALID, "malformed %s block: %v", tag.Type, err)
	}
	return b, nil
}

func decodeInlines(raws []json.RawMessage) ([]Inline, error) {
	if raws == nil {
		return nil, nil
	}
	children := make([]Inline, 0, len(raws))
	for _, raw := range raws {
		var tag struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(raw, &tag); err != nil {
			return nil, Errorf(EINVALID, "malformed inline node: %v", err)
		}
		switch tag.Type {
		case "link":
			var l Link
			if err := json.Unmarshal(raw, &l); err != nil {
				return nil, Errorf(EINVALID, "malformed inline link: %v", err)
			}
			children = append(children, l)
		case "text":
			var t Text
			if err := json.Unmarshal(raw, &t); err != nil {
				return nil, Errorf(EINVALID, "malformed inline text: %v", err)
			}
			children = append(children, t)
		default:
			return nil, Errorf(EINVALID, "unknown inline type %q", tag.Type)
		}
	}
	return children, nil
}

// MarshalJSON adds the variant tag.
func (t Text) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}{"text", t.Text})
}

// MarshalJSON adds the variant tag.
func (l Link) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type   string `json:"type"`
		Text   string `json:"text"`
		Target string `json:"target"`
	}{"link", l.Text, l.Target})
}

// MarshalJSON adds the variant tag.
func (b *Header) MarshalJSON() ([]byte, error) {
	type alias Header
	return json.Marshal(struct {
		Type BlockType `json:"type"`
		*alias
	}{BlockHeader, (*alias)(b)})
}

// MarshalJSON adds the variant tag.
func (b *Paragraph) MarshalJSON() ([]byte, error) {
	type alias Paragraph
	return json.Marshal(struct {
		Type BlockType `json:"type"`
		*alias
	}{BlockPara, (*alias)(b)})
}

// UnmarshalJSON decodes the tagged inline children.
func (b *Paragraph) UnmarshalJSON(data []byte) error {
	var shadow struct {
		Meta
		Children []json.RawMessage `json:"children"`
	}
	if err := json.Unmarshal(data, &shadow); err != nil {
		return err
	}
	children, err := decodeInlines(shadow.Children)
	if err != nil {
		return err
	}
	b.Meta = shadow.Meta
	b.Children = children
	return nil
}

// MarshalJSON adds the variant tag.
func (b *List) MarshalJSON() ([]byte, error) {
	type alias List
	return json.Marshal(struct {
		Type BlockType `json:"type"`
		*alias
	}{BlockList, (*alias)(b)})
}

// UnmarshalJSON decodes the tagged inline children of every item.
func (b *List) UnmarshalJSON(data []byte) error {
	var shadow struct {
		Meta
		Ordered bool                `json:"ordered"`
		Items   [][]json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(data, &shadow); err != nil {
		return err
	}
	items := make([][]Inline, 0, len(shadow.Items))
	for _, raws := range shadow.Items {
		item, err := decodeInlines(raws)
		if err != nil {
			return err
		}
		items = append(items, item)
	}
	b.Meta = shadow.Meta
	b.Ordered = shadow.Ordered
	b.Items = items
	return nil
}

// MarshalJSON adds the variant tag.
func (b *CodeBlock) MarshalJSON() ([]byte, error) {
	type alias CodeBlock
	return json.Marshal(struct {
		Type BlockType `json:"type"`
		*alias
	}{BlockCode, (*alias)(b)})
}

// MarshalJSON adds the variant tag.
func (b *Table) MarshalJSON() ([]byte, error) {
	type alias Table
	return json.Marshal(struct {
		Type BlockType `json:"type"`
		*alias
	}{BlockTable, (*alias)(b)})
}

// MarshalJSON adds the variant tag.
func (b *SpecialBlock) MarshalJSON() ([]byte, error) {
	type alias SpecialBlock
	return json.Marshal(struct {
		Type BlockType `json:"type"`
		*alias
	}{BlockSpecial, (*alias)(b)})
}

// UnmarshalJSON decodes the tagged inline children.
func (b *SpecialBlock) UnmarshalJSON(data []byte) error {
	var shadow struct {
		Meta
		Kind     string            `json:"kind"`
		Heading  string            `json:"heading"`
		Children []json.RawMessage `json:"children"`
	}
	if err := json.Unmarshal(data, &shadow); err != nil {
		return err
	}
	children, err := decodeInlines(shadow.Children)
	if err != nil {
		return err
	}
	b.Meta = shadow.Meta
	b.Kind = shadow.Kind
	b.Heading = shadow.Heading
	b.Children = children
	return nil
}

// MarshalJSON adds the variant tag.
func (b *Image) MarshalJSON() ([]byte, error) {
	type alias Image
	return json.Marshal(struct {
		Type BlockType `json:"type"`
		*alias
	}{BlockImage, (*alias)(b)})
}
