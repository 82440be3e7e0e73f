// Package plaintext ingests plain text files into the IR.
//
// The ingester scans line by line, applying the shared block parsers in
// precedence order. Headings are recognized through structural heuristics
// (Chapter N, Part N, Section N, numbered prefixes, short ALL CAPS lines)
// since plain text carries no markup. Blank lines act as separators only
// and are never emitted as blocks.
package plaintext

import (
	"fmt"
	"io"

	"github.com/tsawler/docforge/internal/blockscan"
	"github.com/tsawler/docforge/internal/textnorm"
	"github.com/tsawler/docforge/ir"
)

// Options configures plain text ingestion.
type Options struct {
	// Title becomes the document title. Callers usually pass the source
	// filename stem.
	Title string
}

// Ingest reads plain text from r and builds a single-section IR document.
func Ingest(r io.Reader, opts Options) (*ir.Document, error) {
	text, err := textnorm.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading text input: %w", err)
	}

	blocks := blockscan.Scan(textnorm.Lines(text), blockscan.Options{
		HeuristicHeadings: true,
		Tables:            true,
	})

	doc := ir.NewDocument(opts.Title)
	sec := ir.NewSection("", 1)
	for _, b := range blocks {
		sec.Append(b)
	}
	doc.Sections = append(doc.Sections, sec)
	return doc, nil
}
