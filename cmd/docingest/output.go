package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/tsawler/docforge"
	"github.com/tsawler/docforge/cleanup"
	"github.com/tsawler/docforge/ir"
)

var (
	// titleStyle for section headers
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("75"))

	// dimStyle for muted metadata text
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// ruleStyle for cleanup rule names
	ruleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114")).
			Bold(true)

	// warnStyle for warnings
	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	// boxStyle for the summary box
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("75")).
			Padding(0, 1)
)

// printWarnings renders pipeline warnings to w, one per line.
func printWarnings(w io.Writer, warnings []docforge.Warning) {
	for _, warning := range warnings {
		fmt.Fprintln(w, warnStyle.Render("warning:"), warning.String())
	}
}

// printAudit renders the cleanup audit log and summary.
func printAudit(w io.Writer, audit []cleanup.AuditEntry, summary string) {
	if len(audit) == 0 {
		fmt.Fprintln(w, dimStyle.Render("cleanup: no changes"))
		return
	}

	content := titleStyle.Render("Cleanup")
	for _, e := range audit {
		content += fmt.Sprintf("\n%s %s", ruleStyle.Render(e.Rule+":"), e.Description)
	}
	content += "\n" + dimStyle.Render(summary)
	fmt.Fprintln(w, boxStyle.Render(content))
}

// printSummary renders a structural overview of an IR document.
func printSummary(w io.Writer, filename string, doc *ir.Document) {
	counts := make(map[ir.BlockType]int)
	for _, sec := range doc.Sections {
		for _, b := range sec.Blocks {
			counts[b.Type]++
		}
	}

	content := fmt.Sprintf("%s %s\n%s %s\n%s %d  %s %d",
		dimStyle.Render("File:"), filename,
		dimStyle.Render("Title:"), titleStyle.Render(doc.Title),
		dimStyle.Render("Sections:"), len(doc.Sections),
		dimStyle.Render("Blocks:"), doc.BlockCount(),
	)

	order := []ir.BlockType{
		ir.BlockHeading, ir.BlockParagraph, ir.BlockList, ir.BlockTable,
		ir.BlockQuote, ir.BlockCallout, ir.BlockFigure, ir.BlockCode,
		ir.BlockDivider, ir.BlockFootnote,
	}
	for _, t := range order {
		if n := counts[t]; n > 0 {
			content += fmt.Sprintf("\n%s %d", dimStyle.Render(string(t)+":"), n)
		}
	}

	for _, h := range doc.Headings() {
		if hc, ok := h.Content.(ir.HeadingContent); ok {
			content += fmt.Sprintf("\n%s %s",
				dimStyle.Render(fmt.Sprintf("H%d", hc.Level)), hc.Text)
		}
	}

	fmt.Fprintln(w, boxStyle.Render(content))
}
