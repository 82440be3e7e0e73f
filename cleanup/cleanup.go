// Package cleanup repairs common extraction artifacts in an already-built
// IR document.
//
// The pass is a pipeline of independent, order-sensitive rewrites: merge
// wrongly-split paragraphs, collapse soft hyphenation, promote labeled
// paragraphs to callouts, rebuild lists from bullet-prefixed paragraph
// lines, promote heading-like paragraphs, and clamp heading-level jumps.
// Run order matters because later passes operate on the more-structured
// output of earlier ones.
//
// Clean never mutates its input: it rewrites a clone and returns it with a
// full audit log, so callers can tell users exactly what was repaired
// ("merged 3 broken lines"). Running Clean on its own output produces an
// empty audit log.
package cleanup

import (
	"fmt"
	"strings"

	"github.com/tsawler/docforge/ir"
)

// Options toggles individual cleanup rules. The zero value disables
// everything; use DefaultOptions for the standard pipeline.
type Options struct {
	MergeBrokenLines bool
	Dehyphenate      bool
	DetectCallouts   bool
	NormalizeLists   bool
	AdjustHeadings   bool
	FixHierarchy     bool

	// MinMergeLength is the minimum length of the first paragraph before
	// the merge rule considers it a broken line. Tunable policy, not
	// load-bearing correctness.
	MinMergeLength int
}

// DefaultOptions enables every rule with the standard thresholds.
func DefaultOptions() Options {
	return Options{
		MergeBrokenLines: true,
		Dehyphenate:      true,
		DetectCallouts:   true,
		NormalizeLists:   true,
		AdjustHeadings:   true,
		FixHierarchy:     true,
		MinMergeLength:   20,
	}
}

// AuditEntry records one rule's effect on the document.
type AuditEntry struct {
	Rule        string `json:"rule"`
	Count       int    `json:"count"`
	Description string `json:"description"`
}

// Result is the outcome of a cleanup run.
type Result struct {
	Document *ir.Document `json:"document"`
	Audit    []AuditEntry `json:"audit"`
	Summary  string       `json:"summary"`
}

type rule struct {
	name     string
	enabled  func(Options) bool
	apply    func(*ir.Document, Options) int
	describe func(int) string
}

var rules = []rule{
	{
		name:     "merge_broken_lines",
		enabled:  func(o Options) bool { return o.MergeBrokenLines },
		apply:    mergeBrokenLines,
		describe: func(n int) string { return fmt.Sprintf("merged %d broken line(s)", n) },
	},
	{
		name:     "dehyphenate",
		enabled:  func(o Options) bool { return o.Dehyphenate },
		apply:    dehyphenate,
		describe: func(n int) string { return fmt.Sprintf("collapsed %d hyphenation artifact(s)", n) },
	},
	{
		name:     "detect_callouts",
		enabled:  func(o Options) bool { return o.DetectCallouts },
		apply:    detectCallouts,
		describe: func(n int) string { return fmt.Sprintf("converted %d labeled paragraph(s) to callouts", n) },
	},
	{
		name:     "normalize_lists",
		enabled:  func(o Options) bool { return o.NormalizeLists },
		apply:    normalizeLists,
		describe: func(n int) string { return fmt.Sprintf("rebuilt %d list(s) from paragraph text", n) },
	},
	{
		name:     "adjust_headings",
		enabled:  func(o Options) bool { return o.AdjustHeadings },
		apply:    adjustHeadings,
		describe: func(n int) string { return fmt.Sprintf("promoted %d paragraph(s) to headings", n) },
	},
	{
		name:     "fix_hierarchy",
		enabled:  func(o Options) bool { return o.FixHierarchy },
		apply:    fixHierarchy,
		describe: func(n int) string { return fmt.Sprintf("clamped %d heading level(s)", n) },
	},
}

// Clean runs the enabled rules in order over a clone of doc and returns
// the rewritten document with the audit log. The input is not modified.
func Clean(doc *ir.Document, opts Options) Result {
	out := doc.Clone()
	if opts.MinMergeLength <= 0 {
		opts.MinMergeLength = 20
	}

	var audit []AuditEntry
	for _, r := range rules {
		if !r.enabled(opts) {
			continue
		}
		if n := r.apply(out, opts); n > 0 {
			audit = append(audit, AuditEntry{
				Rule:        r.name,
				Count:       n,
				Description: r.describe(n),
			})
		}
	}

	for _, sec := range out.Sections {
		sec.Renumber()
	}

	return Result{Document: out, Audit: audit, Summary: summarize(audit)}
}

func summarize(audit []AuditEntry) string {
	if len(audit) == 0 {
		return "no changes"
	}
	parts := make([]string, len(audit))
	for i, e := range audit {
		parts[i] = e.Description
	}
	return strings.Join(parts, "; ")
}
