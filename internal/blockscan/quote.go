package blockscan

import (
	"regexp"
	"strings"

	"github.com/tsawler/docforge/ir"
)

// calloutLabelRe matches a bold "**Label**:" or "**Label:**" prefix on
// flattened blockquote text.
var calloutLabelRe = regexp.MustCompile(`^\*\*([A-Za-z]+)(?::\*\*|\*\*:)\s*`)

// plainLabelRe matches a bare "Label:" prefix on paragraph text. Used by
// the cleanup pass.
var plainLabelRe = regexp.MustCompile(`(?i)^(note|tip|warning|caution|important|info|error|alert|success|check):\s*`)

// CalloutKindFor maps a callout label to one of the five callout kinds.
// Unrecognized labels (and Note/Danger) map to note.
func CalloutKindFor(label string) ir.CalloutKind {
	switch strings.ToLower(label) {
	case "tip", "important", "info":
		return ir.CalloutInfo
	case "warning", "caution":
		return ir.CalloutWarning
	case "error", "alert":
		return ir.CalloutError
	case "success", "check":
		return ir.CalloutSuccess
	default:
		return ir.CalloutNote
	}
}

// IsCalloutLabel reports whether label is one of the recognized callout
// labels.
func IsCalloutLabel(label string) bool {
	switch strings.ToLower(label) {
	case "note", "tip", "warning", "caution", "danger", "error", "alert",
		"success", "check", "info", "important":
		return true
	}
	return false
}

// SplitPlainCalloutPrefix matches a bare "Label:" paragraph prefix and
// returns the canonicalized label and remaining content.
func SplitPlainCalloutPrefix(text string) (label, content string, ok bool) {
	m := plainLabelRe.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}
	label = capitalize(m[1])
	content = strings.TrimSpace(text[len(m[0]):])
	return label, content, true
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// parseQuote recognizes a run of ">"-prefixed lines. The flattened text is
// classified as a labeled callout, a quote with citation, or a plain quote.
func parseQuote(lines []string, i int) (*ir.Block, int, bool) {
	if !strings.HasPrefix(strings.TrimSpace(lines[i]), ">") {
		return nil, i, false
	}

	j := i
	var parts []string
	for j < len(lines) {
		trimmed := strings.TrimSpace(lines[j])
		if !strings.HasPrefix(trimmed, ">") {
			break
		}
		text := strings.TrimPrefix(trimmed, ">")
		text = strings.TrimPrefix(text, " ")
		if text != "" {
			parts = append(parts, text)
		}
		j++
	}
	if len(parts) == 0 {
		return ir.NewQuote("", ""), j, true
	}

	flattened := strings.Join(parts, " ")
	return ClassifyQuoteText(flattened), j, true
}

// ClassifyQuoteText turns flattened blockquote text into a callout or
// quote block: a recognized "**Label**:" lead-in maps to a callout, a
// "body -- citation" shape to a quote with citation, anything else to a
// plain quote.
func ClassifyQuoteText(flattened string) *ir.Block {
	if m := calloutLabelRe.FindStringSubmatch(flattened); m != nil && IsCalloutLabel(m[1]) {
		label := m[1]
		content := strings.TrimSpace(flattened[len(m[0]):])
		return ir.NewCallout(CalloutKindFor(label), label, content)
	}

	if body, citation, ok := splitCitation(flattened); ok {
		return ir.NewQuote(body, citation)
	}

	return ir.NewQuote(flattened, "")
}

// splitCitation splits "<body> -- <citation>" or "<body> — <citation>".
func splitCitation(text string) (body, citation string, ok bool) {
	for _, sep := range []string{" -- ", " — ", "— "} {
		if idx := strings.LastIndex(text, sep); idx > 0 {
			body = strings.TrimSpace(text[:idx])
			citation = strings.TrimSpace(text[idx+len(sep):])
			if body != "" && citation != "" {
				return body, citation, true
			}
		}
	}
	return "", "", false
}
