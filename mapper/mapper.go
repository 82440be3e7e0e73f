// Package mapper converts the ingest IR into the internal document model.
//
// Mapping is a pure function: one flow per IR section, fresh sequential
// internal ids, no mutation of the input. Code blocks degrade to fenced
// text inside a paragraph because the internal model has no code kind.
package mapper

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/tsawler/docforge/docmodel"
	"github.com/tsawler/docforge/ir"
)

// Options configures mapping.
type Options struct {
	// GenerateAnchors fills URL-safe slugs on heading blocks.
	GenerateAnchors bool
}

// Map converts an IR document into the internal model. ID counters are
// local to the call, so concurrent mappings are independent.
func Map(doc *ir.Document, opts Options) *docmodel.Document {
	m := &mapping{opts: opts, blockIDs: make(map[string]string), anchors: make(map[string]int)}

	out := &docmodel.Document{
		ID:    "doc-1",
		Title: doc.Title,
		Metadata: docmodel.Metadata{
			Author:      doc.Metadata.Author,
			Description: doc.Metadata.Description,
			Tags:        append([]string(nil), doc.Metadata.Tags...),
		},
	}
	if doc.Metadata.Custom != nil {
		out.Metadata.Custom = make(map[string]string, len(doc.Metadata.Custom))
		for k, v := range doc.Metadata.Custom {
			out.Metadata.Custom[k] = v
		}
	}

	for _, sec := range doc.Sections {
		out.Sections = append(out.Sections, m.section(sec))
	}
	return out
}

// mapping holds the per-call id counters and the IR-to-internal block id
// table used to resolve footnote backlinks.
type mapping struct {
	opts Options

	secN, flowN, blkN int

	blockIDs map[string]string
	anchors  map[string]int
}

func (m *mapping) section(sec *ir.Section) *docmodel.Section {
	m.secN++
	m.flowN++

	flow := &docmodel.Flow{
		ID:    fmt.Sprintf("flow-%d", m.flowN),
		Order: 1,
	}
	for _, b := range sec.Blocks {
		flow.Blocks = append(flow.Blocks, m.block(b))
	}
	for i, b := range flow.Blocks {
		b.Order = i + 1
	}

	out := &docmodel.Section{
		ID:    fmt.Sprintf("sec-%d", m.secN),
		Title: sec.Title,
		Order: m.secN,
		Flows: []*docmodel.Flow{flow},
	}
	for _, n := range sec.Notes {
		out.Footnotes = append(out.Footnotes, docmodel.Footnote{
			ID:            fmt.Sprintf("fn-%d-%d", m.secN, n.Number),
			Number:        n.Number,
			Content:       n.Content,
			SourceBlockID: m.sourceBlock(n.Backlinks),
		})
	}
	return out
}

// sourceBlock resolves the first backlink that maps to an internal block.
func (m *mapping) sourceBlock(backlinks []string) string {
	for _, irID := range backlinks {
		if id, ok := m.blockIDs[irID]; ok {
			return id
		}
	}
	return "unknown"
}

func (m *mapping) block(b *ir.Block) *docmodel.Block {
	m.blkN++
	out := &docmodel.Block{ID: fmt.Sprintf("blk-%d", m.blkN)}
	m.blockIDs[b.ID] = out.ID

	if b.Attrs != nil {
		out.Attrs = make(map[string]string, len(b.Attrs))
		for k, v := range b.Attrs {
			out.Attrs[k] = v
		}
	}

	switch c := b.Content.(type) {
	case ir.HeadingContent:
		h := docmodel.Heading{Level: c.Level, Text: c.Text}
		if m.opts.GenerateAnchors {
			h.Anchor = m.anchor(c.Text)
		}
		out.Kind = docmodel.KindHeading
		out.Content = h

	case ir.ParagraphContent:
		out.Kind = docmodel.KindParagraph
		out.Content = docmodel.Paragraph{Text: c.Text}

	case ir.ListContent:
		out.Kind = docmodel.KindList
		out.Content = *mapList(&c)

	case ir.TableContent:
		out.Kind = docmodel.KindTable
		out.Content = docmodel.Table{
			Headers:      append([]string(nil), c.Headers...),
			Rows:         copyRows(c.Rows),
			Caption:      c.Caption,
			HasHeaderRow: c.HeaderRow,
		}

	case ir.QuoteContent:
		out.Kind = docmodel.KindQuote
		out.Content = docmodel.Quote{Content: c.Content, Citation: c.Citation, Author: c.Author}

	case ir.CalloutContent:
		out.Kind = docmodel.KindCallout
		out.Content = docmodel.Callout{Kind: string(c.Type), Title: c.Title, Content: c.Content}

	case ir.FigureContent:
		size := docmodel.FigureSize(c.Size)
		if !size.Valid() {
			size = docmodel.SizeColumnWidth
		}
		out.Kind = docmodel.KindFigure
		out.Content = docmodel.Figure{
			Image: docmodel.Image{
				AssetID:  c.Image.ID,
				Filename: c.Image.Filename,
				URL:      c.Image.URL,
				MIMEType: c.Image.MIMEType,
			},
			Caption: c.Caption,
			Alt:     c.Alt,
			Size:    size,
		}

	case ir.CodeContent:
		// No code kind internally; degrade to formatted paragraph text.
		out.Kind = docmodel.KindParagraph
		out.Content = docmodel.Paragraph{Text: fenceCode(c)}

	case ir.DividerContent:
		out.Kind = docmodel.KindDivider
		out.Content = docmodel.Divider{}

	case ir.FootnoteContent:
		out.Kind = docmodel.KindFootnoteRef
		out.Content = docmodel.FootnoteRef{Number: c.Number, Text: c.Text}

	default:
		// Unrecognized payloads are carried as text rather than dropped.
		text := b.Text()
		if raw, ok := b.Content.(ir.RawContent); ok {
			text = string(raw.Data)
		}
		out.Kind = docmodel.KindParagraph
		out.Content = docmodel.Paragraph{Text: text}
	}

	return out
}

func mapList(c *ir.ListContent) *docmodel.ListGroup {
	out := &docmodel.ListGroup{
		Ordered: c.Type == ir.ListOrdered,
		Items:   make([]docmodel.ListEntry, len(c.Items)),
	}
	for i, item := range c.Items {
		out.Items[i] = docmodel.ListEntry{Content: item.Content}
		if item.Children != nil {
			out.Items[i].Children = mapList(item.Children)
		}
	}
	return out
}

func copyRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = append([]string(nil), row...)
	}
	return out
}

func fenceCode(c ir.CodeContent) string {
	if c.Inline {
		return "`" + c.Content + "`"
	}
	return "```" + c.Language + "\n" + c.Content + "\n```"
}

// anchor builds a URL-safe slug from heading text, suffixing duplicates
// with a counter so every anchor in the document is unique.
func (m *mapping) anchor(text string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(text)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			sb.WriteRune('-')
		}
	}
	slug := strings.Trim(sb.String(), "-")
	if slug == "" {
		slug = "section"
	}
	m.anchors[slug]++
	if n := m.anchors[slug]; n > 1 {
		return fmt.Sprintf("%s-%d", slug, n)
	}
	return slug
}
