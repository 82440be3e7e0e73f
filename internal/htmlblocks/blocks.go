// Package htmlblocks converts individual HTML elements into IR blocks. It
// is shared by the generic HTML ingester and the style-mapped DOCX-HTML
// ingester, which differ in traversal policy but not in how a single
// table, list, or blockquote becomes a block.
package htmlblocks

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/docforge/internal/blockscan"
	"github.com/tsawler/docforge/internal/domutil"
	"github.com/tsawler/docforge/ir"
)

// ParseList converts ul/ol into list content, recursing into nested lists
// inside li elements.
func ParseList(n *html.Node) *ir.ListContent {
	content := &ir.ListContent{Type: ir.ListUnordered}
	if n.Data == "ol" {
		content.Type = ir.ListOrdered
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data != "li" {
			continue
		}
		item := ir.ListItem{Content: domutil.DirectTextContent(c)}
		for g := c.FirstChild; g != nil; g = g.NextSibling {
			if g.Type == html.ElementNode && (g.Data == "ul" || g.Data == "ol") {
				nested := ParseList(g)
				if nested == nil || len(nested.Items) == 0 {
					continue
				}
				if item.Children == nil {
					item.Children = nested
				} else {
					item.Children.Items = append(item.Children.Items, nested.Items...)
				}
			}
		}
		if item.Content == "" && item.Children == nil {
			continue
		}
		content.Items = append(content.Items, item)
	}

	if len(content.Items) == 0 {
		return nil
	}
	return content
}

// ParseTable extracts a table, deciding the header row with the
// th-majority / bold-majority heuristic.
func ParseTable(n *html.Node) *ir.Block {
	var rowNodes []*html.Node
	var theadRows int

	var collect func(*html.Node, bool)
	collect = func(n *html.Node, inHead bool) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.Data {
			case "thead":
				collect(c, true)
			case "tbody", "tfoot":
				collect(c, false)
			case "tr":
				rowNodes = append(rowNodes, c)
				if inHead {
					theadRows++
				}
			}
		}
	}
	collect(n, false)

	if len(rowNodes) == 0 {
		return nil
	}

	cells := make([][]string, 0, len(rowNodes))
	for _, tr := range rowNodes {
		cells = append(cells, rowCells(tr))
	}

	headerRow := theadRows > 0 || IsHeaderRow(rowNodes[0])

	var headers []string
	rows := cells
	if headerRow {
		headers = cells[0]
		rows = cells[1:]
	}
	b := ir.NewTable(headers, rows, headerRow)

	if caption := domutil.FindElement(n, "caption"); caption != nil {
		c := b.Content.(ir.TableContent)
		c.Caption = domutil.TextContent(caption)
		b.Content = c
	}
	return b
}

func rowCells(tr *html.Node) []string {
	var cells []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
			cells = append(cells, domutil.TextContent(c))
		}
	}
	return cells
}

// IsHeaderRow reports whether a row uses <th> for a majority of its cells
// or has more than half its cells bold.
func IsHeaderRow(tr *html.Node) bool {
	var total, th, bold int
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || (c.Data != "td" && c.Data != "th") {
			continue
		}
		total++
		if c.Data == "th" {
			th++
		}
		if domutil.IsBold(c) {
			bold++
		}
	}
	if total == 0 {
		return false
	}
	return th*2 > total || bold*2 > total
}

// ClassifyBlockquote maps a blockquote to a callout when its bold lead-in
// is a recognized label, to a quote with citation when a <cite> child or
// an em-dash separator is present, and to a plain quote otherwise.
func ClassifyBlockquote(n *html.Node, text string) *ir.Block {
	if label := strings.TrimSuffix(strings.TrimSpace(domutil.FirstBoldText(n)), ":"); label != "" {
		if blockscan.IsCalloutLabel(label) {
			content := strings.TrimSpace(strings.TrimPrefix(text, label))
			content = strings.TrimSpace(strings.TrimPrefix(content, ":"))
			return ir.NewCallout(blockscan.CalloutKindFor(label), label, content)
		}
	}

	if cite := domutil.FindElement(n, "cite"); cite != nil {
		citation := domutil.TextContent(cite)
		body := strings.TrimSpace(strings.TrimSuffix(text, citation))
		body = strings.TrimRight(body, " —-")
		return ir.NewQuote(body, citation)
	}

	return blockscan.ClassifyQuoteText(text)
}

// ExtractMarks tags a paragraph block with the inline formatting found in
// its descendants.
func ExtractMarks(n *html.Node, b *ir.Block) {
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "strong", "b":
				b.AddMark(ir.Mark{Type: ir.MarkBold})
			case "em", "i":
				b.AddMark(ir.Mark{Type: ir.MarkItalic})
			case "u":
				b.AddMark(ir.Mark{Type: ir.MarkUnderline})
			case "s", "del", "strike":
				b.AddMark(ir.Mark{Type: ir.MarkStrikethrough})
			case "code":
				b.AddMark(ir.Mark{Type: ir.MarkCode})
			case "a":
				if href := domutil.Attr(n, "href"); href != "" {
					b.AddMark(ir.Mark{Type: ir.MarkLink, Attrs: map[string]string{"href": href}})
				}
			case "sup":
				b.AddMark(ir.Mark{Type: ir.MarkFootnote})
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
}

// PreText extracts text preserving whitespace, for <pre> content.
func PreText(n *html.Node) string {
	var sb strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return sb.String()
}

// CodeLanguage reads a language-* or lang-* class from a code element.
func CodeLanguage(n *html.Node) string {
	for _, c := range strings.Fields(domutil.Attr(n, "class")) {
		if lang, ok := strings.CutPrefix(c, "language-"); ok {
			return lang
		}
		if lang, ok := strings.CutPrefix(c, "lang-"); ok {
			return lang
		}
	}
	return ""
}

// IsFootnote matches the common footnote conventions: an id starting with
// "fn" or a footnote class.
func IsFootnote(n *html.Node) bool {
	if strings.HasPrefix(domutil.Attr(n, "id"), "fn") {
		return true
	}
	return domutil.ClassContains(n, "footnote")
}
