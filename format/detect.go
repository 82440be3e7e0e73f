// Package format provides file format detection for the docforge ingest
// pipeline.
package format

import (
	"encoding/json"
	"path/filepath"
	"strings"
)

// Format represents a supported input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PlainText indicates a plain text (.txt) file.
	PlainText
	// Markdown indicates a Markdown (.md) file.
	Markdown
	// HTML indicates an HTML document.
	HTML
	// JSON indicates a JSON file, either an already-IR document or
	// arbitrary data.
	JSON
	// DOCX indicates a Word document, ingested as pre-converted HTML.
	DOCX
	// PDF indicates a PDF, ingested through an external PDF-to-IR converter.
	PDF
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PlainText:
		return "PlainText"
	case Markdown:
		return "Markdown"
	case HTML:
		return "HTML"
	case JSON:
		return "JSON"
	case DOCX:
		return "DOCX"
	case PDF:
		return "PDF"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PlainText:
		return ".txt"
	case Markdown:
		return ".md"
	case HTML:
		return ".html"
	case JSON:
		return ".json"
	case DOCX:
		return ".docx"
	case PDF:
		return ".pdf"
	default:
		return ""
	}
}

// Detect determines file format from the filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt", ".text":
		return PlainText
	case ".md", ".markdown":
		return Markdown
	case ".html", ".htm":
		return HTML
	case ".json":
		return JSON
	case ".docx":
		return DOCX
	case ".pdf":
		return PDF
	default:
		return Unknown
	}
}

// DetectFromContent sniffs the leading bytes of a file to determine format.
// It recognizes HTML and JSON signatures and falls back to PlainText for
// any other valid text; binary-looking content returns Unknown.
func DetectFromContent(data []byte) Format {
	trimmed := trimLeadingSpace(data)
	if len(trimmed) == 0 {
		return Unknown
	}

	if detectHTMLMagic(trimmed) {
		return HTML
	}

	if trimmed[0] == '{' || trimmed[0] == '[' {
		if json.Valid(data) {
			return JSON
		}
	}

	if looksBinary(trimmed) {
		return Unknown
	}
	return PlainText
}

// detectHTMLMagic checks if the data looks like HTML content.
func detectHTMLMagic(data []byte) bool {
	upper := strings.ToUpper(string(data[:min(512, len(data))]))
	if strings.HasPrefix(upper, "<!DOCTYPE HTML") {
		return true
	}
	if strings.HasPrefix(upper, "<HTML") {
		return true
	}
	// XML declaration followed by html-like content could be XHTML.
	if strings.HasPrefix(upper, "<?XML") && strings.Contains(upper, "<HTML") {
		return true
	}
	return false
}

func trimLeadingSpace(data []byte) []byte {
	start := 0
	for start < len(data) {
		switch data[start] {
		case ' ', '\t', '\n', '\r':
			start++
		default:
			return data[start:]
		}
	}
	return nil
}

func looksBinary(data []byte) bool {
	limit := min(512, len(data))
	for i := 0; i < limit; i++ {
		if data[i] == 0 {
			return true
		}
	}
	return false
}
