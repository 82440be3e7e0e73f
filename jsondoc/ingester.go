// Package jsondoc ingests JSON files into the IR.
package jsondoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/tsawler/docforge/ir"
)

// Options configures JSON ingestion.
type Options struct {
	// Title becomes the document title when the JSON is not already an IR
	// document.
	Title string
}

// Ingest reads JSON from r. Input that validates as an IR document passes
// through unchanged apart from order renumbering; any other valid JSON is
// wrapped as a single code block so the caller still gets something
// renderable. Unparseable input is an error, surfaced to the caller.
func Ingest(r io.Reader, opts Options) (*ir.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading JSON input: %w", err)
	}

	if !json.Valid(data) {
		return nil, fmt.Errorf("input is not valid JSON")
	}

	if doc, ok := ir.ValidateJSON(data); ok {
		for _, sec := range doc.Sections {
			sec.Renumber()
		}
		return doc, nil
	}

	// Generic JSON: render pretty-printed as opaque code.
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "", "  "); err != nil {
		pretty.Write(data)
	}

	doc := ir.NewDocument(opts.Title)
	sec := ir.NewSection("", 1)
	sec.Append(ir.NewCode("json", pretty.String()))
	doc.Sections = append(doc.Sections, sec)
	return doc, nil
}
