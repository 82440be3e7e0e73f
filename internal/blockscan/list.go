package blockscan

import (
	"regexp"
	"strings"

	"github.com/tsawler/docforge/ir"
)

var (
	unorderedMarkerRe = regexp.MustCompile(`^(\s*)[-*+]\s+(.*)$`)
	orderedMarkerRe   = regexp.MustCompile(`^(\s*)\d+[.)]\s+(.*)$`)
)

type listEntry struct {
	depth   int
	ordered bool
	text    string
}

// isListMarker reports whether a line begins a list item of either kind.
func isListMarker(line string) bool {
	return unorderedMarkerRe.MatchString(line) || orderedMarkerRe.MatchString(line)
}

// parseList recognizes a run of list-marker lines. The run is classified
// by its first item; top-level lines must keep that classification while
// indented lines may switch (a nested numbered list under bullets, and
// vice versa). Blank lines inside the run are skipped. Nesting depth comes
// from leading whitespace (two spaces or one tab per level) and produces a
// true item tree, preserving reading order.
func parseList(lines []string, i int) (*ir.Block, int, bool) {
	first, ok := matchListLine(lines[i])
	if !ok {
		return nil, i, false
	}

	var entries []listEntry
	j := i
	for j < len(lines) {
		line := lines[j]
		if strings.TrimSpace(line) == "" {
			// Blank lines are tolerated inside a run as long as a list
			// line follows.
			if k := nextNonBlank(lines, j); k >= 0 {
				if e, ok := matchListLine(lines[k]); ok && (e.depth > 0 || e.ordered == first.ordered) {
					j = k
					continue
				}
			}
			break
		}
		e, ok := matchListLine(line)
		if !ok {
			break
		}
		if e.depth == 0 && e.ordered != first.ordered {
			break
		}
		entries = append(entries, e)
		j++
	}
	if len(entries) == 0 {
		return nil, i, false
	}

	content := buildList(entries)
	listType := ir.ListUnordered
	if first.ordered {
		listType = ir.ListOrdered
	}
	return ir.NewList(listType, content.Items), j, true
}

func matchListLine(line string) (listEntry, bool) {
	if m := unorderedMarkerRe.FindStringSubmatch(line); m != nil {
		return listEntry{depth: indentDepth(m[1]), text: strings.TrimSpace(m[2])}, true
	}
	if m := orderedMarkerRe.FindStringSubmatch(line); m != nil {
		return listEntry{depth: indentDepth(m[1]), ordered: true, text: strings.TrimSpace(m[2])}, true
	}
	return listEntry{}, false
}

func indentDepth(ws string) int {
	var cols int
	for _, r := range ws {
		if r == '\t' {
			cols += 2
		} else {
			cols++
		}
	}
	return cols / 2
}

func nextNonBlank(lines []string, i int) int {
	for ; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) != "" {
			return i
		}
	}
	return -1
}

// buildList converts the flat (depth, text) entries into a nested list
// tree. Depth jumps deeper than one level are treated as one level.
func buildList(entries []listEntry) *ir.ListContent {
	root := &ir.ListContent{Type: listTypeOf(entries[0])}
	stack := []*ir.ListContent{root}

	for _, e := range entries {
		level := e.depth
		if level > len(stack)-1 {
			// Clamp: can only nest one level under the last item.
			level = len(stack) - 1
			parent := stack[level]
			if len(parent.Items) > 0 {
				last := &parent.Items[len(parent.Items)-1]
				if last.Children == nil {
					last.Children = &ir.ListContent{Type: listTypeOf(e)}
				}
				stack = append(stack, last.Children)
				level = len(stack) - 1
			}
		}
		stack = stack[:level+1]
		cur := stack[len(stack)-1]
		cur.Items = append(cur.Items, ir.ListItem{Content: e.text})
	}

	return root
}

// ListFromLines converts a paragraph's lines into a list block when every
// non-blank line carries a list marker and the top-level lines agree on
// ordered vs unordered. Requires at least two items. Used by the cleanup
// normalize-lists pass.
func ListFromLines(lines []string) (*ir.Block, bool) {
	var entries []listEntry
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		e, ok := matchListLine(line)
		if !ok {
			return nil, false
		}
		entries = append(entries, e)
	}
	if len(entries) < 2 {
		return nil, false
	}
	for _, e := range entries {
		if e.depth == 0 && e.ordered != entries[0].ordered {
			return nil, false
		}
	}

	content := buildList(entries)
	listType := ir.ListUnordered
	if entries[0].ordered {
		listType = ir.ListOrdered
	}
	return ir.NewList(listType, content.Items), true
}

func listTypeOf(e listEntry) ir.ListType {
	if e.ordered {
		return ir.ListOrdered
	}
	return ir.ListUnordered
}
