package blockscan

import (
	"regexp"
	"strings"

	"github.com/tsawler/docforge/ir"
)

var separatorRe = regexp.MustCompile(`^\|?\s*:?-+:?\s*(\|\s*:?-+:?\s*)*\|?$`)

// isTableRow reports whether a line is pipe-delimited with at least two
// cells.
func isTableRow(line string) bool {
	line = strings.TrimSpace(line)
	if !strings.Contains(line, "|") {
		return false
	}
	return len(splitCells(line)) >= 2
}

// parseTable recognizes a run of at least two consecutive pipe-delimited
// lines. If the second line matches the separator pattern it is consumed
// and the first line becomes headers; otherwise there is no header row and
// every line becomes a data row. Column count is taken independently per
// row, so ragged tables pass through untouched.
func parseTable(lines []string, i int) (*ir.Block, int, bool) {
	if !isTableRow(lines[i]) {
		return nil, i, false
	}

	j := i
	var raw []string
	for j < len(lines) && isTableRow(lines[j]) {
		raw = append(raw, strings.TrimSpace(lines[j]))
		j++
	}
	if len(raw) < 2 {
		return nil, i, false
	}

	var headers []string
	var rows [][]string
	headerRow := false

	start := 0
	if separatorRe.MatchString(raw[1]) {
		headers = splitCells(raw[0])
		headerRow = true
		start = 2
	}
	for _, line := range raw[start:] {
		if separatorRe.MatchString(line) {
			continue
		}
		rows = append(rows, splitCells(line))
	}

	return ir.NewTable(headers, rows, headerRow), j, true
}

// splitCells splits a pipe-delimited line into trimmed cell values,
// dropping the empty boundary cells produced by leading/trailing pipes.
func splitCells(line string) []string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")
	parts := strings.Split(line, "|")
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		cells = append(cells, strings.TrimSpace(p))
	}
	return cells
}
