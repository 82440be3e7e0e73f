// Package docforge provides a fluent API for ingesting documents into a
// normalized intermediate representation, cleaning up extraction
// artifacts, and mapping the result into the internal document model.
//
// Basic usage:
//
//	doc, warnings, err := docforge.Open("notes.md").IR()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", docforge.FormatWarnings(warnings))
//	}
//
// With options:
//
//	doc, _, err := docforge.Open("report.html").
//	    Sanitize().
//	    ExtractAssets().
//	    MergeShortParagraphs().
//	    Document()
//
// The pipeline is Open -> ingest -> cleanup -> map. IR stops after ingest,
// Cleaned after cleanup, Document runs the full chain. Lower-level format
// packages (plaintext, markdown, htmldoc, docxhtml, jsondoc) are also
// available for direct use.
package docforge

import (
	"io"

	"github.com/tsawler/docforge/cleanup"
	"github.com/tsawler/docforge/docmodel"
	"github.com/tsawler/docforge/format"
	"github.com/tsawler/docforge/ir"
	"github.com/tsawler/docforge/mapper"
)

// Open prepares an Ingester for the named file. The format is inferred
// from the extension; an unsupported extension fails at the first terminal
// operation, before any parsing.
//
// Example:
//
//	doc, warnings, err := docforge.Open("chapter.txt").IR()
func Open(filename string) *Ingester {
	return &Ingester{
		filename: filename,
		format:   format.Detect(filename),
		options:  defaultOptions(),
	}
}

// FromReader creates an Ingester reading from r with an explicit format.
// The caller keeps ownership of the reader.
//
// Example:
//
//	doc, warnings, err := docforge.FromReader(f, format.Markdown).IR()
func FromReader(r io.Reader, f format.Format) *Ingester {
	return &Ingester{
		source:  r,
		format:  f,
		options: defaultOptions(),
	}
}

// IngestFile ingests the named file with default options. It is the
// function form of Open(filename).IR() for callers that do not need the
// fluent chain.
func IngestFile(filename string) (*ir.Document, []Warning, error) {
	return Open(filename).IR()
}

// CleanIRDocument runs the cleanup pass over an already-built IR document.
// The input is not modified.
func CleanIRDocument(doc *ir.Document, opts cleanup.Options) *cleanup.Result {
	res := cleanup.Clean(doc, opts)
	return &res
}

// MapIRToDocument converts an IR document into the internal document
// model without running cleanup first.
func MapIRToDocument(doc *ir.Document, generateAnchors bool) *docmodel.Document {
	return mapper.Map(doc, mapper.Options{GenerateAnchors: generateAnchors})
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustIngest is a helper that wraps a terminal operation and panics if the
// error is non-nil. It discards warnings and returns just the value.
//
// Example:
//
//	doc := docforge.MustIngest(docforge.Open("notes.md").IR())
func MustIngest[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
