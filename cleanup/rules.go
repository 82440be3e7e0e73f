package cleanup

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/tsawler/docforge/internal/blockscan"
	"github.com/tsawler/docforge/ir"
)

// mergeBrokenLines joins adjacent paragraph pairs that look like one
// sentence split by a hard line break: the first is reasonably long and
// does not end with sentence punctuation, the second does not start with
// a capital letter. Merging repeats until the section is stable, so a
// sentence split across three paragraphs collapses in one run.
func mergeBrokenLines(doc *ir.Document, opts Options) int {
	var merged int
	for _, sec := range doc.Sections {
		for {
			idx := -1
			for i := 0; i < len(sec.Blocks)-1; i++ {
				if mergeable(sec.Blocks[i], sec.Blocks[i+1], opts.MinMergeLength) {
					idx = i
					break
				}
			}
			if idx < 0 {
				break
			}
			a, b := sec.Blocks[idx], sec.Blocks[idx+1]
			at := a.Content.(ir.ParagraphContent).Text
			bt := b.Content.(ir.ParagraphContent).Text
			if strings.HasSuffix(at, "-") {
				// Trailing hyphen means a word was split at the break.
				a.Content = ir.ParagraphContent{Text: strings.TrimSuffix(at, "-") + bt}
			} else {
				a.Content = ir.ParagraphContent{Text: at + " " + bt}
			}
			for _, m := range b.Marks {
				a.AddMark(m)
			}
			sec.Blocks = append(sec.Blocks[:idx+1], sec.Blocks[idx+2:]...)
			merged++
		}
	}
	return merged
}

func mergeable(a, b *ir.Block, minLen int) bool {
	if a.Type != ir.BlockParagraph || b.Type != ir.BlockParagraph {
		return false
	}
	at, aok := a.Content.(ir.ParagraphContent)
	bt, bok := b.Content.(ir.ParagraphContent)
	if !aok || !bok {
		return false
	}
	first := strings.TrimSpace(at.Text)
	second := strings.TrimSpace(bt.Text)
	if len(first) < minLen || second == "" {
		return false
	}
	runes := []rune(first)
	if strings.ContainsRune(".!?:;\"”", runes[len(runes)-1]) {
		return false
	}
	r := []rune(second)[0]
	if unicode.IsUpper(r) {
		return false
	}
	return true
}

var (
	hyphenBreakRe = regexp.MustCompile(`(\p{L})-\n(\p{L})`)
	hyphenSpaceRe = regexp.MustCompile(`(\p{L})- (\p{L})`)
)

// dehyphenate collapses "word-\nword" and "word- word" artifacts left by
// hard-wrapped sources. Replacement repeats until stable because a run
// like "a- b- c" needs more than one pass.
func dehyphenate(doc *ir.Document, _ Options) int {
	var count int
	for _, sec := range doc.Sections {
		for _, blk := range sec.Blocks {
			p, ok := blk.Content.(ir.ParagraphContent)
			if !ok {
				continue
			}
			text := p.Text
			for {
				next := hyphenBreakRe.ReplaceAllString(text, "$1$2")
				next = hyphenSpaceRe.ReplaceAllString(next, "$1$2")
				if next == text {
					break
				}
				count += len(hyphenBreakRe.FindAllString(text, -1)) +
					len(hyphenSpaceRe.FindAllString(text, -1))
				text = next
			}
			if text != p.Text {
				blk.Content = ir.ParagraphContent{Text: text}
			}
		}
	}
	return count
}

// detectCallouts rewrites paragraphs that open with a bare "Label:" into
// callout blocks, keeping the block's identity and position.
func detectCallouts(doc *ir.Document, _ Options) int {
	var count int
	for _, sec := range doc.Sections {
		for _, blk := range sec.Blocks {
			p, ok := blk.Content.(ir.ParagraphContent)
			if !ok {
				continue
			}
			label, content, ok := blockscan.SplitPlainCalloutPrefix(p.Text)
			if !ok || content == "" {
				continue
			}
			blk.Type = ir.BlockCallout
			blk.Content = ir.CalloutContent{
				Type:    blockscan.CalloutKindFor(label),
				Title:   label,
				Content: content,
			}
			count++
		}
	}
	return count
}

// normalizeLists rebuilds list blocks from paragraphs whose every line
// carries a list marker, which happens when an upstream source flattened
// bullets into plain text.
func normalizeLists(doc *ir.Document, _ Options) int {
	var count int
	for _, sec := range doc.Sections {
		for _, blk := range sec.Blocks {
			p, ok := blk.Content.(ir.ParagraphContent)
			if !ok || !strings.Contains(p.Text, "\n") {
				continue
			}
			list, ok := blockscan.ListFromLines(strings.Split(p.Text, "\n"))
			if !ok {
				continue
			}
			blk.Type = ir.BlockList
			blk.Content = list.Content
			blk.Marks = nil
			count++
		}
	}
	return count
}

// adjustHeadings promotes single-line paragraphs that read like headings:
// structural prefixes (Chapter/Part/Section/number) at their heuristic
// level, title-case lines at level 2.
func adjustHeadings(doc *ir.Document, _ Options) int {
	var count int
	for _, sec := range doc.Sections {
		for _, blk := range sec.Blocks {
			p, ok := blk.Content.(ir.ParagraphContent)
			if !ok || strings.Contains(p.Text, "\n") {
				continue
			}
			text := strings.TrimSpace(p.Text)
			if level, ok := blockscan.StructuralHeading(text); ok {
				blk.Type = ir.BlockHeading
				blk.Content = ir.HeadingContent{Level: level, Text: blockscan.StripHeadingPrefix(text)}
				count++
				continue
			}
			if blockscan.TitleCaseHeading(text) {
				blk.Type = ir.BlockHeading
				blk.Content = ir.HeadingContent{Level: 2, Text: text}
				count++
			}
		}
	}
	return count
}

// fixHierarchy clamps heading-level jumps so no heading is more than one
// level deeper than the heading before it, across the whole document. The
// first heading keeps its level. H1, H4, H2 becomes H1, H2, H2.
func fixHierarchy(doc *ir.Document, _ Options) int {
	var count int
	lastLevel := 0
	for _, sec := range doc.Sections {
		for _, blk := range sec.Blocks {
			h, ok := blk.Content.(ir.HeadingContent)
			if !ok {
				continue
			}
			if lastLevel == 0 {
				lastLevel = h.Level
				continue
			}
			if h.Level > lastLevel+1 {
				h.Level = lastLevel + 1
				blk.Content = h
				count++
			}
			lastLevel = h.Level
		}
	}
	return count
}
