package docforge

import (
	"io"

	"github.com/tsawler/docforge/docmodel"
	"github.com/tsawler/docforge/ir"
)

// DOCXConverter converts a Word document into style-mapped HTML that the
// docxhtml ingester understands. Implementations live outside this module;
// the pipeline only consumes the interface.
type DOCXConverter interface {
	// ConvertToHTML converts the DOCX bytes read from r. The returned
	// reader yields HTML where Word styles are mapped to semantic tags.
	ConvertToHTML(r io.Reader) (io.Reader, error)
}

// PDFConverter converts a PDF directly into an IR document, typically via
// text extraction with an OCR fallback. Implementations live outside this
// module.
type PDFConverter interface {
	ConvertToIR(filename string) (*ir.Document, error)
}

// Exporter renders an internal document to an output format. It is a
// consumed interface for the downstream export engine; this module never
// implements it.
type Exporter interface {
	// Export starts an asynchronous export and returns a job handle.
	Export(doc *docmodel.Document, format string) (ExportJob, error)
}

// ExportJob is a handle to an in-flight export.
type ExportJob interface {
	// ID identifies the job.
	ID() string

	// Progress reports completion in [0, 1]. The channel closes when the
	// job finishes.
	Progress() <-chan float64

	// Wait blocks until the job completes and returns its final error.
	Wait() error
}
