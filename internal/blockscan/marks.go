package blockscan

import (
	"regexp"

	"github.com/tsawler/docforge/ir"
)

var (
	boldRe     = regexp.MustCompile(`\*\*[^*]+\*\*|__[^_]+__`)
	italicRe   = regexp.MustCompile(`(^|[^*])\*[^*\s][^*]*\*([^*]|$)|(^|[^_])_[^_\s][^_]*_([^_]|$)`)
	strikeRe   = regexp.MustCompile(`~~[^~]+~~`)
	codeSpanRe = regexp.MustCompile("`[^`]+`")
	linkRe     = regexp.MustCompile(`\[([^\]^][^\]]*)\]\(([^)]+)\)`)
	footRefRe  = regexp.MustCompile(`\[\^([0-9]+|[A-Za-z][A-Za-z0-9_-]*)\]`)
)

// applyInlineMarks tags a block with the span formats present in its text.
// Marks are presence flags, not character ranges; a link mark carries the
// first href seen.
func applyInlineMarks(b *ir.Block, text string) {
	if boldRe.MatchString(text) {
		b.AddMark(ir.Mark{Type: ir.MarkBold})
	}
	if italicRe.MatchString(text) {
		b.AddMark(ir.Mark{Type: ir.MarkItalic})
	}
	if strikeRe.MatchString(text) {
		b.AddMark(ir.Mark{Type: ir.MarkStrikethrough})
	}
	if codeSpanRe.MatchString(text) {
		b.AddMark(ir.Mark{Type: ir.MarkCode})
	}
	if m := linkRe.FindStringSubmatch(text); m != nil {
		b.AddMark(ir.Mark{Type: ir.MarkLink, Attrs: map[string]string{"href": m[2]}})
	}
	if footRefRe.MatchString(text) {
		b.AddMark(ir.Mark{Type: ir.MarkFootnote})
	}
}

// FootnoteRefs returns the footnote labels referenced in text, in order of
// appearance.
func FootnoteRefs(text string) []string {
	var refs []string
	for _, m := range footRefRe.FindAllStringSubmatch(text, -1) {
		refs = append(refs, m[1])
	}
	return refs
}
