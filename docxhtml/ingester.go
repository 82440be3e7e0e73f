// Package docxhtml ingests HTML produced by an external DOCX-to-HTML
// converter.
//
// The converter is expected to be style-mapped: Word's "Heading N" styles
// arrive as h1..h6, list paragraphs as ul/ol items, "Quote" as blockquote,
// and "Caption" paragraphs directly after an image. Word exports also
// fragment lists into runs of single-item ul/ol elements, so consecutive
// lists of the same type are coalesced into one block, flushed whenever
// the type changes or a non-list element appears. Class-based fallbacks
// (Title, Heading1, Caption, Quote, ListParagraph) cover converters that
// leave Word style names on plain paragraphs.
package docxhtml

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/net/html"

	"github.com/tsawler/docforge/internal/domutil"
	"github.com/tsawler/docforge/internal/htmlblocks"
	"github.com/tsawler/docforge/ir"
)

// Options configures DOCX-HTML ingestion.
type Options struct {
	// Title becomes the document title.
	Title string

	// ExtractAssets fills AssetRef MIME types and dimensions for embedded
	// data-URI images.
	ExtractAssets bool
}

var headingClassRe = regexp.MustCompile(`(?i)^(?:mso)?heading-?([1-9])$`)

// Ingest parses converter-produced HTML from r and builds a
// single-section IR document.
func Ingest(r io.Reader, opts Options) (*ir.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing DOCX HTML: %w", err)
	}

	doc := ir.NewDocument(opts.Title)
	sec := ir.NewSection("", 1)

	b := &builder{sec: sec, opts: opts}
	body := domutil.FindElement(root, "body")
	if body == nil {
		body = root
	}
	b.walk(body)
	b.flushList()

	doc.Sections = append(doc.Sections, sec)
	return doc, nil
}

// builder accumulates blocks, coalescing consecutive same-type lists.
type builder struct {
	sec  *ir.Section
	opts Options

	pending    *ir.ListContent // list run being coalesced
	lastFigure *ir.Block
}

// emit flushes any pending list run and appends the block.
func (b *builder) emit(blk *ir.Block) {
	b.flushList()
	b.sec.Append(blk)
	if blk.Type == ir.BlockFigure {
		b.lastFigure = blk
	} else {
		b.lastFigure = nil
	}
}

func (b *builder) flushList() {
	if b.pending == nil || len(b.pending.Items) == 0 {
		b.pending = nil
		return
	}
	list := ir.NewList(b.pending.Type, b.pending.Items)
	b.pending = nil
	b.sec.Append(list)
	b.lastFigure = nil
}

// addList merges a parsed ul/ol into the pending run, flushing first if
// the list type changes.
func (b *builder) addList(content *ir.ListContent) {
	if content == nil || len(content.Items) == 0 {
		return
	}
	b.lastFigure = nil
	if b.pending != nil && b.pending.Type != content.Type {
		b.flushList()
	}
	if b.pending == nil {
		b.pending = &ir.ListContent{Type: content.Type}
	}
	b.pending.Items = append(b.pending.Items, content.Items...)
}

func (b *builder) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		if domutil.SkipElement(n.Data) {
			return
		}
		if htmlblocks.IsFootnote(n) {
			b.flushList()
			b.harvestFootnote(n)
			return
		}

		switch n.Data {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			if text := domutil.TextContent(n); text != "" {
				b.emit(ir.NewHeading(int(n.Data[1]-'0'), text))
			}
			return

		case "ul", "ol":
			b.addList(htmlblocks.ParseList(n))
			return

		case "p":
			b.paragraph(n)
			return

		case "table":
			if blk := htmlblocks.ParseTable(n); blk != nil {
				b.emit(blk)
			}
			return

		case "blockquote":
			if text := domutil.TextContent(n); text != "" {
				b.emit(htmlblocks.ClassifyBlockquote(n, text))
			}
			return

		case "figure":
			img := domutil.FindElement(n, "img")
			if img == nil {
				return
			}
			caption := ""
			if fc := domutil.FindElement(n, "figcaption"); fc != nil {
				caption = domutil.TextContent(fc)
			}
			if blk := htmlblocks.Figure(img, b.opts.ExtractAssets, caption); blk != nil {
				b.emit(blk)
			}
			return

		case "img":
			if blk := htmlblocks.Figure(n, b.opts.ExtractAssets, ""); blk != nil {
				b.emit(blk)
			}
			return

		case "hr":
			b.emit(ir.NewDivider())
			return

		case "pre":
			inner := n
			if code := domutil.FindElement(n, "code"); code != nil {
				inner = code
			}
			if text := strings.Trim(htmlblocks.PreText(inner), "\n"); strings.TrimSpace(text) != "" {
				b.emit(ir.NewCode(htmlblocks.CodeLanguage(inner), text))
			}
			return

		case "br":
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.walk(c)
	}
}

// paragraph handles style-mapped paragraph classes before falling back to
// a plain paragraph block.
func (b *builder) paragraph(n *html.Node) {
	text := domutil.TextContent(n)
	if text == "" {
		return
	}

	for _, class := range strings.Fields(domutil.Attr(n, "class")) {
		if m := headingClassRe.FindStringSubmatch(class); m != nil {
			level, _ := strconv.Atoi(m[1])
			b.emit(ir.NewHeading(level, text))
			return
		}
	}

	switch {
	case domutil.HasClass(n, "Title") || domutil.HasClass(n, "MsoTitle"):
		b.emit(ir.NewHeading(1, text))
		return
	case domutil.HasClass(n, "Subtitle") || domutil.HasClass(n, "MsoSubtitle"):
		b.emit(ir.NewHeading(2, text))
		return
	case domutil.HasClass(n, "Quote") || domutil.HasClass(n, "IntenseQuote") || domutil.HasClass(n, "MsoQuote"):
		b.emit(htmlblocks.ClassifyBlockquote(n, text))
		return
	case domutil.HasClass(n, "ListParagraph") || domutil.HasClass(n, "MsoListParagraph"):
		// Converter left a list paragraph unmapped; treat it as a bullet
		// item continuing the current run.
		b.addList(&ir.ListContent{
			Type:  ir.ListUnordered,
			Items: []ir.ListItem{{Content: text}},
		})
		return
	case domutil.ClassContains(n, "caption"):
		if b.lastFigure != nil {
			c := b.lastFigure.Content.(ir.FigureContent)
			if c.Caption == "" {
				c.Caption = text
				b.lastFigure.Content = c
				b.lastFigure = nil
				return
			}
		}
	}

	blk := ir.NewParagraph(text)
	htmlblocks.ExtractMarks(n, blk)
	b.emit(blk)
}

func (b *builder) harvestFootnote(n *html.Node) {
	text := domutil.TextContent(n)
	if text == "" {
		return
	}
	b.sec.Notes = append(b.sec.Notes, ir.Footnote{
		ID:      uuid.NewString(),
		Number:  len(b.sec.Notes) + 1,
		Content: text,
	})
}
