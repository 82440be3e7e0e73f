package htmldoc

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/net/html"

	"github.com/tsawler/docforge/internal/domutil"
	"github.com/tsawler/docforge/internal/htmlblocks"
	"github.com/tsawler/docforge/ir"
)

// walker carries traversal state while converting DOM nodes to IR blocks.
type walker struct {
	sec  *ir.Section
	opts Options

	// lastFigure is the most recently emitted figure, cleared by any other
	// block. A caption-styled paragraph right after an image becomes its
	// caption.
	lastFigure *ir.Block
}

func (w *walker) emit(b *ir.Block) {
	w.sec.Append(b)
	if b.Type == ir.BlockFigure {
		w.lastFigure = b
	} else {
		w.lastFigure = nil
	}
}

// walk recursively processes DOM nodes. Container elements are
// transparent: the walker recurses into children without emitting a block.
func (w *walker) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		if domutil.SkipElement(n.Data) {
			return
		}
		if htmlblocks.IsFootnote(n) {
			w.harvestFootnote(n)
			return
		}

		switch n.Data {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			level := int(n.Data[1] - '0')
			if text := domutil.TextContent(n); text != "" {
				w.emit(ir.NewHeading(level, text))
			}
			return

		case "p":
			w.paragraph(n)
			return

		case "ul", "ol":
			if content := htmlblocks.ParseList(n); content != nil {
				w.emit(ir.NewList(content.Type, content.Items))
			}
			return

		case "table":
			if b := htmlblocks.ParseTable(n); b != nil {
				w.emit(b)
			}
			return

		case "blockquote":
			if text := domutil.TextContent(n); text != "" {
				w.emit(htmlblocks.ClassifyBlockquote(n, text))
			}
			return

		case "figure":
			w.figure(n)
			return

		case "img":
			if b := htmlblocks.Figure(n, w.opts.ExtractAssets, ""); b != nil {
				w.emit(b)
			}
			return

		case "hr":
			w.emit(ir.NewDivider())
			return

		case "pre":
			w.pre(n)
			return

		case "code":
			// A block-level <code> outside <pre> keeps its inline flag.
			if text := strings.TrimSpace(htmlblocks.PreText(n)); text != "" {
				b := ir.NewCode(htmlblocks.CodeLanguage(n), text)
				c := b.Content.(ir.CodeContent)
				c.Inline = true
				b.Content = c
				w.emit(b)
			}
			return

		case "br":
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
}

// paragraph emits a paragraph block with inline marks, or recurses when
// the element is really a block container. A caption-styled paragraph
// immediately after a figure becomes that figure's caption instead.
func (w *walker) paragraph(n *html.Node) {
	text := domutil.TextContent(n)
	if text == "" {
		return
	}

	if w.lastFigure != nil && domutil.ClassContains(n, "caption") {
		c := w.lastFigure.Content.(ir.FigureContent)
		if c.Caption == "" {
			c.Caption = text
			w.lastFigure.Content = c
			w.lastFigure = nil
			return
		}
	}

	if isBlockContainer(n) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			w.walk(c)
		}
		return
	}

	b := ir.NewParagraph(text)
	htmlblocks.ExtractMarks(n, b)
	w.emit(b)
}

// pre emits a code block, taking the language from a language-* class on
// the inner <code> element when present.
func (w *walker) pre(n *html.Node) {
	inner := n
	if code := domutil.FindElement(n, "code"); code != nil {
		inner = code
	}
	text := strings.Trim(htmlblocks.PreText(inner), "\n")
	if strings.TrimSpace(text) == "" {
		return
	}
	w.emit(ir.NewCode(htmlblocks.CodeLanguage(inner), text))
}

// figure handles <figure> with an img and optional figcaption.
func (w *walker) figure(n *html.Node) {
	img := domutil.FindElement(n, "img")
	if img == nil {
		return
	}
	caption := ""
	if fc := domutil.FindElement(n, "figcaption"); fc != nil {
		caption = domutil.TextContent(fc)
	}
	if b := htmlblocks.Figure(img, w.opts.ExtractAssets, caption); b != nil {
		w.emit(b)
	}
}

// harvestFootnote records the element's text as a section note instead of
// emitting a block.
func (w *walker) harvestFootnote(n *html.Node) {
	text := domutil.TextContent(n)
	if text == "" {
		return
	}
	w.sec.Notes = append(w.sec.Notes, ir.Footnote{
		ID:      uuid.NewString(),
		Number:  len(w.sec.Notes) + 1,
		Content: text,
	})
}

// isBlockContainer returns true if the element has block-level children.
func isBlockContainer(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			switch c.Data {
			case "div", "p", "ul", "ol", "table", "h1", "h2", "h3", "h4", "h5", "h6", "blockquote", "pre", "article", "section":
				return true
			}
		}
	}
	return false
}
