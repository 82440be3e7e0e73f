package ir

import (
	"strings"

	"github.com/google/uuid"
)

// BlockType identifies the structural kind of a block. It is a closed set;
// validation rejects anything else.
type BlockType string

const (
	BlockHeading   BlockType = "heading"
	BlockParagraph BlockType = "paragraph"
	BlockList      BlockType = "list"
	BlockTable     BlockType = "table"
	BlockQuote     BlockType = "quote"
	BlockCallout   BlockType = "callout"
	BlockFigure    BlockType = "figure"
	BlockCode      BlockType = "code"
	BlockDivider   BlockType = "divider"
	BlockFootnote  BlockType = "footnote"
)

// Valid reports whether t is a known block type.
func (t BlockType) Valid() bool {
	switch t {
	case BlockHeading, BlockParagraph, BlockList, BlockTable, BlockQuote,
		BlockCallout, BlockFigure, BlockCode, BlockDivider, BlockFootnote:
		return true
	}
	return false
}

// Block is one structural unit of content. Order is 1-based and dense
// within a section after any pipeline stage completes.
type Block struct {
	ID      string            `json:"id"`
	Type    BlockType         `json:"type"`
	Order   int               `json:"order"`
	Content BlockContent      `json:"content"`
	Marks   []Mark            `json:"marks,omitempty"`
	Attrs   map[string]string `json:"attrs,omitempty"`
}

// BlockContent is the payload of a block. The concrete type is determined
// by Block.Type.
type BlockContent interface {
	isBlockContent()
}

// MarkType identifies span-level formatting present on a block's text.
type MarkType string

const (
	MarkBold          MarkType = "bold"
	MarkItalic        MarkType = "italic"
	MarkUnderline     MarkType = "underline"
	MarkStrikethrough MarkType = "strikethrough"
	MarkCode          MarkType = "code"
	MarkLink          MarkType = "link"
	MarkFootnote      MarkType = "footnote"
)

// Mark records formatting present on a block. Marks are block-level tags,
// not character ranges; Attrs carries extras such as link hrefs.
type Mark struct {
	Type  MarkType          `json:"type"`
	Attrs map[string]string `json:"attrs,omitempty"`
}

// ListType distinguishes ordered from unordered lists.
type ListType string

const (
	ListOrdered   ListType = "ordered"
	ListUnordered ListType = "unordered"
)

// CalloutKind is one of the five supported callout flavors.
type CalloutKind string

const (
	CalloutNote    CalloutKind = "note"
	CalloutInfo    CalloutKind = "info"
	CalloutWarning CalloutKind = "warning"
	CalloutError   CalloutKind = "error"
	CalloutSuccess CalloutKind = "success"
)

// HeadingContent is the payload of a heading block.
type HeadingContent struct {
	Level int    `json:"level"` // 1-6
	Text  string `json:"text"`
}

// ParagraphContent is the payload of a paragraph block.
type ParagraphContent struct {
	Text string `json:"text"`
}

// ListItem is a single list entry. Children, when present, is a nested
// sub-list in reading order.
type ListItem struct {
	Content  string       `json:"content"`
	Children *ListContent `json:"children,omitempty"`
}

// ListContent is the payload of a list block. Items is never empty on an
// emitted block.
type ListContent struct {
	Type  ListType   `json:"type"`
	Items []ListItem `json:"items"`
}

// TableContent is the payload of a table block. Header and row column
// counts may legitimately differ; ragged tables are tolerated throughout.
type TableContent struct {
	Headers   []string   `json:"headers"`
	Rows      [][]string `json:"rows"`
	Caption   string     `json:"caption,omitempty"`
	HeaderRow bool       `json:"headerRow"`
}

// QuoteContent is the payload of a quote block.
type QuoteContent struct {
	Content  string `json:"content"`
	Citation string `json:"citation,omitempty"`
	Author   string `json:"author,omitempty"`
}

// CalloutContent is the payload of a callout block.
type CalloutContent struct {
	Type    CalloutKind `json:"type"`
	Title   string      `json:"title,omitempty"`
	Content string      `json:"content"`
}

// FigureContent is the payload of a figure block.
type FigureContent struct {
	Image   AssetRef `json:"image"`
	Caption string   `json:"caption,omitempty"`
	Alt     string   `json:"alt,omitempty"`
	Size    string   `json:"size,omitempty"`
}

// CodeContent is the payload of a code block.
type CodeContent struct {
	Language string `json:"language,omitempty"`
	Content  string `json:"content"`
	Inline   bool   `json:"inline"`
}

// DividerContent is the payload of a divider block. It has no fields.
type DividerContent struct{}

// FootnoteContent is the payload of a footnote reference block.
type FootnoteContent struct {
	Number int    `json:"number"`
	Text   string `json:"text,omitempty"`
}

// RawContent preserves a payload whose type tag was not recognized. Blocks
// carrying it fail validation but are passed through pipeline stages
// unmodified rather than dropped.
type RawContent struct {
	Data []byte
}

func (HeadingContent) isBlockContent()   {}
func (ParagraphContent) isBlockContent() {}
func (ListContent) isBlockContent()      {}
func (TableContent) isBlockContent()     {}
func (QuoteContent) isBlockContent()     {}
func (CalloutContent) isBlockContent()   {}
func (FigureContent) isBlockContent()    {}
func (CodeContent) isBlockContent()      {}
func (DividerContent) isBlockContent()   {}
func (FootnoteContent) isBlockContent()  {}
func (RawContent) isBlockContent()       {}

func newBlock(t BlockType, c BlockContent) *Block {
	return &Block{
		ID:      uuid.NewString(),
		Type:    t,
		Content: c,
	}
}

// NewHeading creates a heading block. Levels outside 1..6 are clamped.
func NewHeading(level int, text string) *Block {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return newBlock(BlockHeading, HeadingContent{Level: level, Text: text})
}

// NewParagraph creates a paragraph block.
func NewParagraph(text string) *Block {
	return newBlock(BlockParagraph, ParagraphContent{Text: text})
}

// NewList creates a list block.
func NewList(listType ListType, items []ListItem) *Block {
	return newBlock(BlockList, ListContent{Type: listType, Items: items})
}

// NewTable creates a table block.
func NewTable(headers []string, rows [][]string, headerRow bool) *Block {
	return newBlock(BlockTable, TableContent{
		Headers:   headers,
		Rows:      rows,
		HeaderRow: headerRow,
	})
}

// NewQuote creates a quote block.
func NewQuote(content, citation string) *Block {
	return newBlock(BlockQuote, QuoteContent{Content: content, Citation: citation})
}

// NewCallout creates a callout block.
func NewCallout(kind CalloutKind, title, content string) *Block {
	return newBlock(BlockCallout, CalloutContent{Type: kind, Title: title, Content: content})
}

// NewFigure creates a figure block.
func NewFigure(image AssetRef, caption, alt string) *Block {
	return newBlock(BlockFigure, FigureContent{Image: image, Caption: caption, Alt: alt})
}

// NewCode creates a code block.
func NewCode(language, content string) *Block {
	return newBlock(BlockCode, CodeContent{Language: language, Content: content})
}

// NewDivider creates a divider block.
func NewDivider() *Block {
	return newBlock(BlockDivider, DividerContent{})
}

// NewFootnoteRef creates a footnote reference block.
func NewFootnoteRef(number int, text string) *Block {
	return newBlock(BlockFootnote, FootnoteContent{Number: number, Text: text})
}

// Text returns the flattened textual content of the block, or "" for
// non-textual blocks.
func (b *Block) Text() string {
	switch c := b.Content.(type) {
	case HeadingContent:
		return c.Text
	case ParagraphContent:
		return c.Text
	case ListContent:
		return c.flatten(0)
	case TableContent:
		var sb strings.Builder
		for _, row := range c.Rows {
			sb.WriteString(strings.Join(row, "\t"))
			sb.WriteString("\n")
		}
		return strings.TrimRight(sb.String(), "\n")
	case QuoteContent:
		return c.Content
	case CalloutContent:
		return c.Content
	case FigureContent:
		return c.Caption
	case CodeContent:
		return c.Content
	case FootnoteContent:
		return c.Text
	}
	return ""
}

func (c ListContent) flatten(depth int) string {
	var sb strings.Builder
	for i, item := range c.Items {
		if i > 0 || depth > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(item.Content)
		if item.Children != nil {
			sb.WriteString(item.Children.flatten(depth + 1))
		}
	}
	return sb.String()
}

// HasMark reports whether the block carries a mark of the given type.
func (b *Block) HasMark(t MarkType) bool {
	for _, m := range b.Marks {
		if m.Type == t {
			return true
		}
	}
	return false
}

// AddMark appends a mark if one of the same type is not already present.
func (b *Block) AddMark(m Mark) {
	if b.HasMark(m.Type) {
		return
	}
	b.Marks = append(b.Marks, m)
}

// SetAttr sets a key in the block's attribute map, allocating it on first use.
func (b *Block) SetAttr(key, val string) {
	if b.Attrs == nil {
		b.Attrs = make(map[string]string)
	}
	b.Attrs[key] = val
}
