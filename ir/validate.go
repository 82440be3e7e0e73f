package ir

import "encoding/json"

// ValidateDocument reports whether doc upholds the IR structural
// invariants. It is a type guard, not an assertion: it never panics and
// never returns an error, so callers can probe untrusted values with it.
//
// Checked invariants:
//   - block order values form a dense 1..N sequence within each section
//   - every block type is a known tag and its payload matches the tag
//   - heading levels are in 1..6
//   - emitted lists have at least one item (recursively)
//   - footnote numbers are unique per section and increase with first
//     appearance order
func ValidateDocument(doc *Document) bool {
	if doc == nil {
		return false
	}
	for _, sec := range doc.Sections {
		if !validateSection(sec) {
			return false
		}
	}
	return true
}

// ValidateJSON parses data and reports whether it is a valid IR document.
// On success the parsed document is returned.
func ValidateJSON(data []byte) (*Document, bool) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, false
	}
	if !ValidateDocument(&doc) {
		return nil, false
	}
	return &doc, true
}

func validateSection(sec *Section) bool {
	if sec == nil {
		return false
	}
	for i, b := range sec.Blocks {
		if b == nil || b.Order != i+1 {
			return false
		}
		if !validateBlock(b) {
			return false
		}
	}
	lastNumber := 0
	for _, note := range sec.Notes {
		if note.Number <= lastNumber {
			return false
		}
		lastNumber = note.Number
	}
	return true
}

func validateBlock(b *Block) bool {
	if !b.Type.Valid() {
		return false
	}
	switch c := b.Content.(type) {
	case HeadingContent:
		return b.Type == BlockHeading && c.Level >= 1 && c.Level <= 6
	case ParagraphContent:
		return b.Type == BlockParagraph
	case ListContent:
		return b.Type == BlockList && validateList(c)
	case TableContent:
		// Header and row column counts may differ; ragged tables are
		// tolerated, not rejected.
		return b.Type == BlockTable
	case QuoteContent:
		return b.Type == BlockQuote
	case CalloutContent:
		return b.Type == BlockCallout && validCalloutKind(c.Type)
	case FigureContent:
		return b.Type == BlockFigure
	case CodeContent:
		return b.Type == BlockCode
	case DividerContent:
		return b.Type == BlockDivider
	case FootnoteContent:
		return b.Type == BlockFootnote && c.Number >= 1
	}
	return false
}

func validateList(c ListContent) bool {
	if c.Type != ListOrdered && c.Type != ListUnordered {
		return false
	}
	if len(c.Items) == 0 {
		return false
	}
	for _, item := range c.Items {
		if item.Children != nil && !validateList(*item.Children) {
			return false
		}
	}
	return true
}

func validCalloutKind(k CalloutKind) bool {
	switch k {
	case CalloutNote, CalloutInfo, CalloutWarning, CalloutError, CalloutSuccess:
		return true
	}
	return false
}
