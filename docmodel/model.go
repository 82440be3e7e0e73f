// Package docmodel defines the internal document model consumed by the
// editing and export layers.
//
// The model is richer than the ingest IR: content is organized as
// [Document] -> [Section] -> [Flow] -> [Block], where a section may carry
// several flows (columns, sidebars). Ingest always produces one flow per
// section; additional flows come from the editor. There is no code block
// kind; code arrives from ingest as fenced text inside a paragraph.
//
// IDs here are short sequential strings ("sec-1", "flow-2", "blk-17")
// assigned by the mapper, not the UUIDs the IR uses.
package docmodel

// Document is the root of the internal model.
type Document struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Sections []*Section `json:"sections"`
	Metadata Metadata   `json:"metadata"`
}

// Metadata carries document-level descriptive fields.
type Metadata struct {
	Author      string            `json:"author,omitempty"`
	Description string            `json:"description,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	Custom      map[string]string `json:"custom,omitempty"`
}

// Section is a top-level division of a document.
type Section struct {
	ID        string     `json:"id"`
	Title     string     `json:"title,omitempty"`
	Order     int        `json:"order"`
	Flows     []*Flow    `json:"flows"`
	Footnotes []Footnote `json:"footnotes,omitempty"`
}

// Flow is an ordered run of blocks within a section.
type Flow struct {
	ID     string   `json:"id"`
	Order  int      `json:"order"`
	Blocks []*Block `json:"blocks"`
}

// Footnote is a section-level note. SourceBlockID names the block whose
// text references it, or "unknown" when the reference was not recorded.
type Footnote struct {
	ID            string `json:"id"`
	Number        int    `json:"number"`
	Content       string `json:"content"`
	SourceBlockID string `json:"sourceBlockId"`
}

// Kind identifies the structural kind of an internal block.
type Kind string

const (
	KindHeading     Kind = "heading"
	KindParagraph   Kind = "paragraph"
	KindList        Kind = "list"
	KindTable       Kind = "table"
	KindQuote       Kind = "quote"
	KindCallout     Kind = "callout"
	KindFigure      Kind = "figure"
	KindDivider     Kind = "divider"
	KindFootnoteRef Kind = "footnoteRef"
)

// Block is one unit of flow content. Order is 1-based and dense within a
// flow. The concrete Content type is determined by Kind.
type Block struct {
	ID      string            `json:"id"`
	Kind    Kind              `json:"kind"`
	Order   int               `json:"order"`
	Content Content           `json:"content"`
	Attrs   map[string]string `json:"attrs,omitempty"`
}

// Content is the payload of an internal block.
type Content interface {
	isContent()
}

// Heading is the payload of a heading block.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	// Anchor is a URL-safe slug for in-document links, empty unless anchor
	// generation was requested at ingest time.
	Anchor string `json:"anchor,omitempty"`
}

// Paragraph is the payload of a paragraph block.
type Paragraph struct {
	Text string `json:"text"`
}

// ListEntry is one item of a list, with optional nested children.
type ListEntry struct {
	Content  string     `json:"content"`
	Children *ListGroup `json:"children,omitempty"`
}

// ListGroup is the payload of a list block.
type ListGroup struct {
	Ordered bool        `json:"ordered"`
	Items   []ListEntry `json:"items"`
}

// Table is the payload of a table block.
type Table struct {
	Headers      []string   `json:"headers"`
	Rows         [][]string `json:"rows"`
	Caption      string     `json:"caption,omitempty"`
	HasHeaderRow bool       `json:"hasHeaderRow"`
}

// Quote is the payload of a quote block.
type Quote struct {
	Content  string `json:"content"`
	Citation string `json:"citation,omitempty"`
	Author   string `json:"author,omitempty"`
}

// Callout is the payload of a callout block.
type Callout struct {
	Kind    string `json:"kind"`
	Title   string `json:"title,omitempty"`
	Content string `json:"content"`
}

// FigureSize controls how wide a figure renders.
type FigureSize string

const (
	SizeColumnWidth FigureSize = "column-width"
	SizeFullWidth   FigureSize = "full-width"
	SizePageWidth   FigureSize = "page-width"
	SizeInline      FigureSize = "inline"
)

// Valid reports whether s is a known figure size.
func (s FigureSize) Valid() bool {
	switch s {
	case SizeColumnWidth, SizeFullWidth, SizePageWidth, SizeInline:
		return true
	}
	return false
}

// Image locates a figure's image asset.
type Image struct {
	AssetID  string `json:"assetId,omitempty"`
	Filename string `json:"filename,omitempty"`
	URL      string `json:"url,omitempty"`
	MIMEType string `json:"mimeType,omitempty"`
}

// Figure is the payload of a figure block.
type Figure struct {
	Image   Image      `json:"image"`
	Caption string     `json:"caption,omitempty"`
	Alt     string     `json:"alt,omitempty"`
	Size    FigureSize `json:"size"`
}

// Divider is the payload of a divider block.
type Divider struct{}

// FootnoteRef is the payload of a footnote reference block.
type FootnoteRef struct {
	Number int    `json:"number"`
	Text   string `json:"text,omitempty"`
}

func (Heading) isContent()     {}
func (Paragraph) isContent()   {}
func (ListGroup) isContent()   {}
func (Table) isContent()       {}
func (Quote) isContent()       {}
func (Callout) isContent()     {}
func (Figure) isContent()      {}
func (Divider) isContent()     {}
func (FootnoteRef) isContent() {}

// BlockCount returns the number of blocks across all sections and flows.
func (d *Document) BlockCount() int {
	var n int
	for _, sec := range d.Sections {
		for _, f := range sec.Flows {
			n += len(f.Blocks)
		}
	}
	return n
}

// Headings returns every heading payload in reading order.
func (d *Document) Headings() []Heading {
	var out []Heading
	for _, sec := range d.Sections {
		for _, f := range sec.Flows {
			for _, b := range f.Blocks {
				if h, ok := b.Content.(Heading); ok {
					out = append(out, h)
				}
			}
		}
	}
	return out
}
