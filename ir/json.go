package ir

import (
	"encoding/json"
)

// blockEnvelope mirrors Block with the payload left raw so the concrete
// content type can be selected from the type tag.
type blockEnvelope struct {
	ID      string            `json:"id"`
	Type    BlockType         `json:"type"`
	Order   int               `json:"order"`
	Content json.RawMessage   `json:"content"`
	Marks   []Mark            `json:"marks,omitempty"`
	Attrs   map[string]string `json:"attrs,omitempty"`
}

// UnmarshalJSON decodes the tagged union: Block.Type selects which
// BlockContent implementation the content field is decoded into. Payloads
// with an unrecognized type tag are preserved as RawContent so they survive
// a round trip even though they fail validation.
func (b *Block) UnmarshalJSON(data []byte) error {
	var env blockEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	b.ID = env.ID
	b.Type = env.Type
	b.Order = env.Order
	b.Marks = env.Marks
	b.Attrs = env.Attrs

	content, err := decodeContent(env.Type, env.Content)
	if err != nil {
		return err
	}
	b.Content = content
	return nil
}

func decodeContent(t BlockType, raw json.RawMessage) (BlockContent, error) {
	if len(raw) == 0 || string(raw) == "null" {
		if t == BlockDivider {
			return DividerContent{}, nil
		}
		return nil, nil
	}

	switch t {
	case BlockHeading:
		var c HeadingContent
		err := json.Unmarshal(raw, &c)
		return c, err
	case BlockParagraph:
		var c ParagraphContent
		err := json.Unmarshal(raw, &c)
		return c, err
	case BlockList:
		var c ListContent
		err := json.Unmarshal(raw, &c)
		return c, err
	case BlockTable:
		var c TableContent
		err := json.Unmarshal(raw, &c)
		return c, err
	case BlockQuote:
		var c QuoteContent
		err := json.Unmarshal(raw, &c)
		return c, err
	case BlockCallout:
		var c CalloutContent
		err := json.Unmarshal(raw, &c)
		return c, err
	case BlockFigure:
		var c FigureContent
		err := json.Unmarshal(raw, &c)
		return c, err
	case BlockCode:
		var c CodeContent
		err := json.Unmarshal(raw, &c)
		return c, err
	case BlockDivider:
		var c DividerContent
		err := json.Unmarshal(raw, &c)
		return c, err
	case BlockFootnote:
		var c FootnoteContent
		err := json.Unmarshal(raw, &c)
		return c, err
	}

	return RawContent{Data: append([]byte(nil), raw...)}, nil
}

// MarshalJSON emits the raw payload unchanged.
func (r RawContent) MarshalJSON() ([]byte, error) {
	if len(r.Data) == 0 {
		return []byte("null"), nil
	}
	return r.Data, nil
}

// UnmarshalJSON stores the raw payload unchanged.
func (r *RawContent) UnmarshalJSON(data []byte) error {
	r.Data = append(r.Data[:0], data...)
	return nil
}
