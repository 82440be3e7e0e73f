// Package domutil provides small helpers for walking parsed HTML trees.
package domutil

import (
	"strings"

	"golang.org/x/net/html"
)

// SkipElement returns true for elements whose content never contributes to
// document text.
func SkipElement(tagName string) bool {
	switch tagName {
	case "script", "style", "noscript", "template", "svg", "math", "iframe", "object", "embed":
		return true
	}
	return false
}

// Attr returns the value of the named attribute, or "".
func Attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// HasClass reports whether the element's class attribute contains name
// (case-insensitive).
func HasClass(n *html.Node, name string) bool {
	for _, c := range strings.Fields(Attr(n, "class")) {
		if strings.EqualFold(c, name) {
			return true
		}
	}
	return false
}

// ClassContains reports whether any class token contains the given
// substring (case-insensitive).
func ClassContains(n *html.Node, sub string) bool {
	return strings.Contains(strings.ToLower(Attr(n, "class")), strings.ToLower(sub))
}

// FindElement finds the first descendant element with the given tag name,
// including n itself.
func FindElement(n *html.Node, tagName string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result := FindElement(c, tagName); result != nil {
			return result
		}
	}
	return nil
}

// TextContent extracts all text content from a node and its descendants,
// with <br> rendered as a newline.
func TextContent(n *html.Node) string {
	var sb strings.Builder
	textContent(n, &sb)
	return strings.Join(strings.Fields(sb.String()), " ")
}

func textContent(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
	}
	if n.Type == html.ElementNode {
		if SkipElement(n.Data) {
			return
		}
		if n.Data == "br" {
			sb.WriteString("\n")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		textContent(c, sb)
	}
	if n.Type == html.ElementNode {
		switch n.Data {
		case "p", "div", "li", "h1", "h2", "h3", "h4", "h5", "h6", "tr":
			sb.WriteString(" ")
		}
	}
}

// DirectTextContent gets text from a node excluding nested lists, tables,
// and blockquotes, used for list items that contain sub-lists. Paragraph
// and div wrappers around item text, common in converter output, are
// folded into the result.
func DirectTextContent(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		} else if c.Type == html.ElementNode {
			switch c.Data {
			case "ul", "ol", "table", "blockquote":
				// Nested structures are handled by the caller.
			default:
				sb.WriteString(TextContent(c))
				sb.WriteString(" ")
			}
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

// IsBold reports whether a node's content is predominantly bold: wrapped in
// <strong>/<b> or styled with a bold font-weight. No layout engine is
// consulted; this is plain attribute inspection.
func IsBold(n *html.Node) bool {
	if boldStyle(n) {
		return true
	}
	// A cell whose only element child is strong/b counts as bold.
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "strong" || c.Data == "b") {
			return true
		}
		if c.Type == html.TextNode && strings.TrimSpace(c.Data) != "" {
			return false
		}
	}
	return false
}

func boldStyle(n *html.Node) bool {
	style := strings.ToLower(Attr(n, "style"))
	if !strings.Contains(style, "font-weight") {
		return false
	}
	return strings.Contains(style, "bold") || strings.Contains(style, "700") ||
		strings.Contains(style, "800") || strings.Contains(style, "900")
}

// FirstBoldText returns the text of the first <strong>/<b> descendant.
func FirstBoldText(n *html.Node) string {
	if n.Type == html.ElementNode && (n.Data == "strong" || n.Data == "b") {
		return TextContent(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := FirstBoldText(c); t != "" {
			return t
		}
	}
	return ""
}
