// Package blockscan implements the line-oriented block parsers shared by
// the plain-text and markdown ingesters.
//
// Each parser is a pure function over a slice of line tokens: given a start
// index it either recognizes a structural pattern, returning a typed IR
// block and the index of the first unconsumed line, or reports no match.
// The Scan driver tries parsers in a fixed precedence order and falls
// through to the greedy paragraph parser as the default.
package blockscan

import (
	"regexp"
	"strings"

	"github.com/tsawler/docforge/ir"
)

// Options selects which patterns a format enables. The plain-text ingester
// turns on heuristic headings only; markdown enables the full set.
type Options struct {
	ATXHeadings       bool // #..###### headings
	HeuristicHeadings bool // Chapter N / ALL CAPS style headings
	FencedCode        bool // ``` fences with language tag
	Tables            bool // pipe-delimited table runs
	Images            bool // ![alt](src "caption") figures
	InlineMarks       bool // emphasis/code/link marks on paragraphs
	Footnotes         bool // [^n] references and [^n]: definitions
}

// Scan drives the block parsers over lines in precedence order and returns
// the recognized blocks. Blank lines are separators only and are never
// emitted as blocks.
func Scan(lines []string, opts Options) []*ir.Block {
	var blocks []*ir.Block

	i := 0
	for i < len(lines) {
		if strings.TrimSpace(lines[i]) == "" {
			i++
			continue
		}

		if b, next, ok := parseHeading(lines, i, opts); ok {
			blocks = append(blocks, b)
			i = next
			continue
		}
		if b, next, ok := parseRule(lines, i); ok {
			blocks = append(blocks, b)
			i = next
			continue
		}
		if opts.FencedCode {
			if b, next, ok := parseFencedCode(lines, i); ok {
				blocks = append(blocks, b)
				i = next
				continue
			}
		}
		if opts.Tables {
			if b, next, ok := parseTable(lines, i); ok {
				blocks = append(blocks, b)
				i = next
				continue
			}
		}
		if b, next, ok := parseQuote(lines, i); ok {
			blocks = append(blocks, b)
			i = next
			continue
		}
		if b, next, ok := parseList(lines, i); ok {
			blocks = append(blocks, b)
			i = next
			continue
		}
		if opts.Images {
			if b, next, ok := parseImage(lines, i); ok {
				blocks = append(blocks, b)
				i = next
				continue
			}
		}

		b, next := parseParagraph(lines, i, opts)
		blocks = append(blocks, b)
		i = next
	}

	return blocks
}

var ruleRe = regexp.MustCompile(`^(\-{3,}|\*{3,}|_{3,})$`)

// parseRule recognizes a horizontal rule line.
func parseRule(lines []string, i int) (*ir.Block, int, bool) {
	if !ruleRe.MatchString(strings.TrimSpace(lines[i])) {
		return nil, i, false
	}
	return ir.NewDivider(), i + 1, true
}

// parseParagraph consumes lines greedily until a blank line or the start of
// any enabled special pattern. Line breaks inside the paragraph are kept;
// the cleanup stage decides whether they are genuine.
func parseParagraph(lines []string, i int, opts Options) (*ir.Block, int) {
	var collected []string
	for i < len(lines) {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			break
		}
		if len(collected) > 0 && startsSpecial(lines, i, opts) {
			break
		}
		collected = append(collected, strings.TrimRight(line, " \t"))
		i++
	}

	text := strings.Join(collected, "\n")
	b := ir.NewParagraph(text)
	if opts.InlineMarks {
		applyInlineMarks(b, text)
	}
	return b, i
}

// startsSpecial reports whether any higher-precedence parser matches at i.
func startsSpecial(lines []string, i int, opts Options) bool {
	if _, _, ok := parseHeading(lines, i, opts); ok {
		return true
	}
	if ruleRe.MatchString(strings.TrimSpace(lines[i])) {
		return true
	}
	if opts.FencedCode && fenceRe.MatchString(lines[i]) {
		return true
	}
	if opts.Tables && isTableRow(lines[i]) {
		return true
	}
	if strings.HasPrefix(strings.TrimSpace(lines[i]), ">") {
		return true
	}
	if isListMarker(lines[i]) {
		return true
	}
	if opts.Images && imageRe.MatchString(strings.TrimSpace(lines[i])) {
		return true
	}
	return false
}
