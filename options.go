package docforge

import "github.com/tsawler/docforge/cleanup"

// ingestOptions holds configuration for the ingest pipeline.
type ingestOptions struct {
	title string

	// Ingest behavior
	sanitize      bool
	extractAssets bool

	// Post-ingest shaping
	mergeShortParagraphs bool
	shortParagraphLimit  int
	splitSections        bool

	// Downstream stages
	cleanup         cleanup.Options
	generateAnchors bool

	// External converters and failure policy
	docxConverter DOCXConverter
	pdfConverter  PDFConverter
	placeholder   bool
}

// defaultOptions returns the default ingest options.
func defaultOptions() ingestOptions {
	return ingestOptions{
		shortParagraphLimit: 50,
		cleanup:             cleanup.DefaultOptions(),
	}
}

// clone creates a copy of ingestOptions. All fields are values or
// interfaces shared intentionally, so a field copy is sufficient.
func (o ingestOptions) clone() ingestOptions {
	return o
}
