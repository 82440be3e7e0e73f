// Package ir provides the intermediate representation (IR) for ingested
// document content.
//
// This package defines the normalized, format-agnostic document tree that
// every ingester produces. All parsing operations ultimately build these
// types, making them the primary API for consuming ingested content before
// it is mapped into the editor's richer document model.
//
// # Document Structure
//
// The [Document] type represents a complete document with metadata and
// sections:
//
//	doc := ir.NewDocument("My Document")
//	sec := ir.NewSection("", 1)
//	sec.Append(ir.NewHeading(1, "Introduction"))
//	doc.Sections = append(doc.Sections, sec)
//
// Each [Section] owns an ordered list of [Block] values and any footnotes
// harvested for that section.
//
// # Blocks
//
// A [Block] is one structural unit of content. Its payload is a tagged
// union: [Block.Type] selects the concrete [BlockContent] implementation:
//
//   - [HeadingContent] - headings (levels 1-6)
//   - [ParagraphContent] - body text
//   - [ListContent] - ordered or unordered lists, nested via item children
//   - [TableContent] - tables with optional header row; ragged rows tolerated
//   - [QuoteContent] - quotations with optional citation
//   - [CalloutContent] - note/tip/warning style admonitions
//   - [FigureContent] - referenced images with captions
//   - [CodeContent] - code blocks with optional language
//   - [DividerContent] - horizontal rules
//   - [FootnoteContent] - footnote reference markers
//
// # Validation
//
// [ValidateDocument] is a non-throwing type guard: it reports whether a
// value upholds the structural invariants (dense 1..N block order within a
// section, heading levels in 1..6, non-empty lists, sequential footnote
// numbers). It never panics and never returns an error, so callers can use
// it to decide whether to trust external JSON input as already-IR.
//
// # Serialization
//
// Documents round-trip through encoding/json: for any document produced by
// an ingester, unmarshalling its marshalled form validates true.
package ir
