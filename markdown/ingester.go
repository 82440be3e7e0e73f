// Package markdown ingests Markdown files into the IR.
//
// The dialect is the common GFM subset: ATX headings, fenced code with
// language tags, pipe tables with separator-row header detection, images,
// labeled blockquote callouts, nested lists, and inline emphasis/code/link
// marks. A YAML front matter block contributes document metadata, and
// [^label] footnote definitions are harvested into section notes.
package markdown

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/docforge/internal/blockscan"
	"github.com/tsawler/docforge/internal/textnorm"
	"github.com/tsawler/docforge/ir"
)

// Options configures markdown ingestion.
type Options struct {
	// Title becomes the document title unless front matter overrides it.
	Title string
}

// frontMatter is the recognized YAML front matter shape. Unknown keys are
// ignored.
type frontMatter struct {
	Title       string   `yaml:"title"`
	Author      string   `yaml:"author"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
}

var footnoteDefRe = regexp.MustCompile(`^\[\^([0-9]+|[A-Za-z][A-Za-z0-9_-]*)\]:\s+(.*)$`)

// Ingest reads markdown from r and builds a single-section IR document.
func Ingest(r io.Reader, opts Options) (*ir.Document, error) {
	text, err := textnorm.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading markdown input: %w", err)
	}
	lines := textnorm.Lines(text)

	doc := ir.NewDocument(opts.Title)

	lines = extractFrontMatter(lines, doc)
	lines, defs := extractFootnoteDefs(lines)

	blocks := blockscan.Scan(lines, blockscan.Options{
		ATXHeadings: true,
		FencedCode:  true,
		Tables:      true,
		Images:      true,
		InlineMarks: true,
		Footnotes:   true,
	})

	sec := ir.NewSection("", 1)
	for _, b := range blocks {
		sec.Append(b)
	}
	attachFootnotes(sec, defs)
	doc.Sections = append(doc.Sections, sec)
	return doc, nil
}

// extractFrontMatter consumes a leading "---" fenced YAML block, if any,
// and applies it to the document metadata. A block that fails to parse as
// YAML is left in place for the regular scanner.
func extractFrontMatter(lines []string, doc *ir.Document) []string {
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return lines
	}
	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			end = i
			break
		}
	}
	if end < 0 {
		return lines
	}

	var fm frontMatter
	body := strings.Join(lines[1:end], "\n")
	if err := yaml.Unmarshal([]byte(body), &fm); err != nil {
		return lines
	}

	if fm.Title != "" {
		doc.Title = fm.Title
	}
	doc.Metadata.Author = fm.Author
	doc.Metadata.Description = fm.Description
	doc.Metadata.Tags = fm.Tags
	return lines[end+1:]
}

// footnoteDef is one [^label]: definition in source order.
type footnoteDef struct {
	label   string
	content string
}

// extractFootnoteDefs removes footnote definition lines from the token
// stream so they do not surface as paragraphs.
func extractFootnoteDefs(lines []string) ([]string, []footnoteDef) {
	var kept []string
	var defs []footnoteDef
	for _, line := range lines {
		if m := footnoteDefRe.FindStringSubmatch(line); m != nil {
			defs = append(defs, footnoteDef{label: m[1], content: strings.TrimSpace(m[2])})
			continue
		}
		kept = append(kept, line)
	}
	return kept, defs
}

// attachFootnotes numbers footnotes by first reference appearance and
// records backlinks from the referencing blocks. References without a
// matching definition are ignored.
func attachFootnotes(sec *ir.Section, defs []footnoteDef) {
	if len(defs) == 0 {
		return
	}
	content := make(map[string]string, len(defs))
	for _, d := range defs {
		content[d.label] = d.content
	}

	index := make(map[string]int) // label -> position in sec.Notes
	for _, b := range sec.Blocks {
		for _, label := range blockscan.FootnoteRefs(b.Text()) {
			def, known := content[label]
			if !known {
				continue
			}
			pos, seen := index[label]
			if !seen {
				sec.Notes = append(sec.Notes, ir.Footnote{
					ID:      uuid.NewString(),
					Number:  len(sec.Notes) + 1,
					Content: def,
				})
				pos = len(sec.Notes) - 1
				index[label] = pos
			}
			sec.Notes[pos].Backlinks = append(sec.Notes[pos].Backlinks, b.ID)
		}
	}
}
