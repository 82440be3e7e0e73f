package ir

import (
	"time"

	"github.com/google/uuid"
)

// Document represents a complete ingested document.
type Document struct {
	Title    string     `json:"title"`
	Sections []*Section `json:"sections"`
	Metadata Metadata   `json:"metadata"`
}

// Metadata contains document-level information.
type Metadata struct {
	Author      string            `json:"author,omitempty"`
	Created     time.Time         `json:"created"`
	Modified    time.Time         `json:"modified"`
	Tags        []string          `json:"tags,omitempty"`
	Description string            `json:"description,omitempty"`
	// Custom holds audit fields and source-specific metadata.
	Custom map[string]string `json:"custom,omitempty"`
}

// Section is a top-level grouping of blocks, roughly one ingested file or
// one level-1 heading's worth of content.
type Section struct {
	ID     string     `json:"id"`
	Title  string     `json:"title,omitempty"`
	Order  int        `json:"order"`
	Blocks []*Block   `json:"blocks"`
	Notes  []Footnote `json:"notes,omitempty"`
}

// Footnote is owned by a section. Backlinks reference the blocks that cite
// it; the footnote never owns those blocks.
type Footnote struct {
	ID        string   `json:"id"`
	Number    int      `json:"number"`
	Content   string   `json:"content"`
	Backlinks []string `json:"backlinks,omitempty"`
}

// AssetRef describes a referenced external resource. The ingest core never
// downloads or stores bytes.
type AssetRef struct {
	ID       string `json:"id"`
	Filename string `json:"filename,omitempty"`
	MIMEType string `json:"mimeType,omitempty"`
	URL      string `json:"url"`
	Alt      string `json:"alt,omitempty"`
	Title    string `json:"title,omitempty"`
}

// NewDocument creates a new empty document with timestamps set.
func NewDocument(title string) *Document {
	now := time.Now().UTC()
	return &Document{
		Title:    title,
		Sections: make([]*Section, 0),
		Metadata: Metadata{
			Created:  now,
			Modified: now,
			Custom:   make(map[string]string),
		},
	}
}

// NewSection creates an empty section with a fresh id.
func NewSection(title string, order int) *Section {
	return &Section{
		ID:     uuid.NewString(),
		Title:  title,
		Order:  order,
		Blocks: make([]*Block, 0),
	}
}

// Append adds a block to the section and assigns the next dense order value.
func (s *Section) Append(b *Block) {
	b.Order = len(s.Blocks) + 1
	s.Blocks = append(s.Blocks, b)
}

// Renumber restores the dense 1..N block order invariant after blocks have
// been inserted, merged, or removed.
func (s *Section) Renumber() {
	for i, b := range s.Blocks {
		b.Order = i + 1
	}
}

// Renumber restores the dense 1..N section order invariant after sections
// have been split or removed.
func (d *Document) Renumber() {
	for i, s := range d.Sections {
		s.Order = i + 1
	}
}

// BlockCount returns the total number of blocks across all sections.
func (d *Document) BlockCount() int {
	var n int
	for _, s := range d.Sections {
		n += len(s.Blocks)
	}
	return n
}

// Headings returns all heading blocks across all sections in document order.
func (d *Document) Headings() []*Block {
	var out []*Block
	for _, s := range d.Sections {
		for _, b := range s.Blocks {
			if b.Type == BlockHeading {
				out = append(out, b)
			}
		}
	}
	return out
}

// PlainText returns all textual content concatenated, for search indexing
// and quick previews.
func (d *Document) PlainText() string {
	var out string
	for _, s := range d.Sections {
		for _, b := range s.Blocks {
			if t := b.Text(); t != "" {
				out += t + "\n\n"
			}
		}
	}
	return out
}
