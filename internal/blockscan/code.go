package blockscan

import (
	"regexp"
	"strings"

	"github.com/tsawler/docforge/ir"
)

var fenceRe = regexp.MustCompile("^```\\s*([A-Za-z0-9_+-]*)\\s*$")

// parseFencedCode recognizes a ``` fence, capturing the language tag. An
// unterminated fence consumes through end of input.
func parseFencedCode(lines []string, i int) (*ir.Block, int, bool) {
	m := fenceRe.FindStringSubmatch(strings.TrimSpace(lines[i]))
	if m == nil {
		return nil, i, false
	}
	language := m[1]

	var body []string
	j := i + 1
	for j < len(lines) {
		if strings.HasPrefix(strings.TrimSpace(lines[j]), "```") {
			j++
			return ir.NewCode(language, strings.Join(body, "\n")), j, true
		}
		body = append(body, lines[j])
		j++
	}

	return ir.NewCode(language, strings.Join(body, "\n")), j, true
}
