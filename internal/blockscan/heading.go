package blockscan

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/tsawler/docforge/ir"
)

var (
	atxRe      = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	chapterRe  = regexp.MustCompile(`^(?:Chapter|CHAPTER)\s+\d+\b`)
	partRe     = regexp.MustCompile(`^(?:Part|PART)\s+\d+\b`)
	sectionRe  = regexp.MustCompile(`^(?:Section|SECTION)\s+\d+\b`)
	numberedRe = regexp.MustCompile(`^\d+\.\s+\S`)
	prefixRe   = regexp.MustCompile(`^(?:(?:Chapter|CHAPTER|Part|PART|Section|SECTION)\s+\d+[.:]?\s*|\d+\.\s+)`)
)

// parseHeading recognizes ATX headings and, for plain text, the structural
// heading heuristics.
func parseHeading(lines []string, i int, opts Options) (*ir.Block, int, bool) {
	line := strings.TrimRight(lines[i], " \t")

	if opts.ATXHeadings {
		if m := atxRe.FindStringSubmatch(line); m != nil {
			text := strings.TrimSpace(m[2])
			text = strings.TrimRight(text, "#")
			text = strings.TrimSpace(text)
			b := ir.NewHeading(len(m[1]), text)
			return b, i + 1, true
		}
	}

	if opts.HeuristicHeadings {
		if level, ok := StructuralHeading(line); ok {
			// A numbered line followed by further numbered lines is a
			// list, not a heading.
			if numberedRe.MatchString(line) && nextLineIsNumbered(lines, i) {
				return nil, i, false
			}
			return ir.NewHeading(level, strings.TrimSpace(line)), i + 1, true
		}
	}

	return nil, i, false
}

// StructuralHeading tests a line against the plain-text heading heuristics,
// in order: Chapter N (level 1), Part N (level 1), Section N (level 2),
// "N. " numbered (level 2), short ALL CAPS line (level 2). First match
// wins.
func StructuralHeading(line string) (int, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return 0, false
	}
	switch {
	case chapterRe.MatchString(line):
		return 1, true
	case partRe.MatchString(line):
		return 1, true
	case sectionRe.MatchString(line):
		return 2, true
	case numberedRe.MatchString(line):
		return 2, true
	case isAllCapsHeading(line):
		return 2, true
	}
	return 0, false
}

// StripHeadingPrefix removes a Chapter/Part/Section/number prefix from a
// heading candidate, leaving the title text.
func StripHeadingPrefix(line string) string {
	line = strings.TrimSpace(line)
	stripped := strings.TrimSpace(prefixRe.ReplaceAllString(line, ""))
	if stripped == "" {
		return line
	}
	return stripped
}

// TitleCaseHeading reports whether a short line reads like a title-case
// heading: every word capitalized, no terminal punctuation. Used only by
// the cleanup pass, which sees text the ingesters already classified as
// paragraphs.
func TitleCaseHeading(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" || len(line) >= 60 || strings.Contains(line, "\n") {
		return false
	}
	if strings.HasSuffix(line, ".") || strings.HasSuffix(line, ",") ||
		strings.HasSuffix(line, ";") || strings.HasSuffix(line, ":") {
		return false
	}
	words := strings.Fields(line)
	if len(words) < 2 || len(words) > 8 {
		return false
	}
	for _, w := range words {
		r := []rune(w)[0]
		if unicode.IsLetter(r) && !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

func isAllCapsHeading(line string) bool {
	if len(line) >= 60 {
		return false
	}
	var letters int
	for _, r := range line {
		if unicode.IsLetter(r) {
			letters++
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return letters >= 2
}

func nextLineIsNumbered(lines []string, i int) bool {
	for j := i + 1; j < len(lines); j++ {
		line := strings.TrimSpace(lines[j])
		if line == "" {
			continue
		}
		return numberedRe.MatchString(line)
	}
	return false
}
