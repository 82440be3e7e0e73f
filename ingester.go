package docforge

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsawler/docforge/cleanup"
	"github.com/tsawler/docforge/docmodel"
	"github.com/tsawler/docforge/docxhtml"
	"github.com/tsawler/docforge/format"
	"github.com/tsawler/docforge/htmldoc"
	"github.com/tsawler/docforge/ir"
	"github.com/tsawler/docforge/jsondoc"
	"github.com/tsawler/docforge/mapper"
	"github.com/tsawler/docforge/markdown"
	"github.com/tsawler/docforge/plaintext"
)

// Ingester provides a fluent interface for ingesting documents. Each
// configuration method returns a new Ingester instance, making it safe
// for concurrent use and allowing method chaining.
type Ingester struct {
	// Source
	filename string
	source   io.Reader
	format   format.Format

	// Configuration
	options ingestOptions

	// Accumulated error (fail-fast)
	err error

	// Warnings accumulated during processing
	warnings []Warning
}

// clone creates a shallow copy of the Ingester with a copy of options.
// This ensures immutability so each chain method returns a new instance.
func (e *Ingester) clone() *Ingester {
	return &Ingester{
		filename: e.filename,
		source:   e.source,
		format:   e.format,
		options:  e.options.clone(),
		err:      e.err,
		warnings: append([]Warning(nil), e.warnings...),
	}
}

// ============================================================================
// Configuration Methods (return new Ingester instance)
// ============================================================================

// Title sets the document title, overriding any title found in the source.
//
// Example:
//
//	doc, _, err := docforge.Open("ch1.txt").Title("Chapter One").IR()
func (e *Ingester) Title(title string) *Ingester {
	newIng := e.clone()
	newIng.options.title = title
	return newIng
}

// Sanitize runs HTML input through a UGC sanitization policy before
// parsing. Only affects the HTML ingester.
//
// Example:
//
//	doc, _, err := docforge.Open("upload.html").Sanitize().IR()
func (e *Ingester) Sanitize() *Ingester {
	newIng := e.clone()
	newIng.options.sanitize = true
	return newIng
}

// ExtractAssets fills in MIME types and image dimensions for embedded
// images during HTML and DOCX ingestion.
//
// Example:
//
//	doc, _, err := docforge.Open("report.html").ExtractAssets().IR()
func (e *Ingester) ExtractAssets() *Ingester {
	newIng := e.clone()
	newIng.options.extractAssets = true
	return newIng
}

// MergeShortParagraphs coalesces runs of consecutive short paragraphs
// into one, joined with single spaces. The length threshold defaults to
// 50 characters; see ShortParagraphLimit. This runs after ingestion,
// before cleanup.
//
// Example:
//
//	doc, _, err := docforge.Open("extract.txt").MergeShortParagraphs().IR()
func (e *Ingester) MergeShortParagraphs() *Ingester {
	newIng := e.clone()
	newIng.options.mergeShortParagraphs = true
	return newIng
}

// ShortParagraphLimit sets the length threshold for MergeShortParagraphs.
// Values below 1 keep the default of 50.
func (e *Ingester) ShortParagraphLimit(limit int) *Ingester {
	newIng := e.clone()
	if limit > 0 {
		newIng.options.shortParagraphLimit = limit
	}
	return newIng
}

// SplitSections splits a single-section document into one section per
// level-1 heading, titling each section with its heading text.
//
// Example:
//
//	doc, _, err := docforge.Open("book.md").SplitSections().IR()
func (e *Ingester) SplitSections() *Ingester {
	newIng := e.clone()
	newIng.options.splitSections = true
	return newIng
}

// GenerateAnchors fills URL-safe slugs on heading blocks during mapping.
// Only affects the Document terminal.
func (e *Ingester) GenerateAnchors() *Ingester {
	newIng := e.clone()
	newIng.options.generateAnchors = true
	return newIng
}

// CleanupOptions replaces the cleanup rule configuration used by the
// Cleaned and Document terminals. The default enables every rule.
//
// Example:
//
//	opts := cleanup.DefaultOptions()
//	opts.AdjustHeadings = false
//	doc, _, err := docforge.Open("notes.txt").CleanupOptions(opts).Cleaned()
func (e *Ingester) CleanupOptions(opts cleanup.Options) *Ingester {
	newIng := e.clone()
	newIng.options.cleanup = opts
	return newIng
}

// WithDOCXConverter supplies the external DOCX-to-HTML converter used for
// .docx input.
func (e *Ingester) WithDOCXConverter(c DOCXConverter) *Ingester {
	newIng := e.clone()
	newIng.options.docxConverter = c
	return newIng
}

// WithPDFConverter supplies the external PDF-to-IR converter used for
// .pdf input.
func (e *Ingester) WithPDFConverter(c PDFConverter) *Ingester {
	newIng := e.clone()
	newIng.options.pdfConverter = c
	return newIng
}

// PlaceholderOnFailure makes external-converter failures produce a
// minimal placeholder document (one paragraph naming the failure) next to
// the returned error, so callers have something renderable.
func (e *Ingester) PlaceholderOnFailure() *Ingester {
	newIng := e.clone()
	newIng.options.placeholder = true
	return newIng
}

// ============================================================================
// Terminal Operations (execute the pipeline and return results)
// ============================================================================

// IR ingests the source and returns the intermediate representation,
// without running cleanup.
//
// Returns the document, any warnings encountered during processing, and
// an error if ingestion failed. Warnings indicate non-fatal issues where
// ingestion succeeded but results may be imperfect.
//
// Example:
//
//	doc, warnings, err := docforge.Open("notes.md").IR()
func (e *Ingester) IR() (*ir.Document, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	return e.ingest()
}

// Cleaned ingests the source and runs the cleanup pass, returning the
// cleaned document with its audit log.
//
// Example:
//
//	res, warnings, err := docforge.Open("scan.txt").Cleaned()
//	fmt.Println(res.Summary)
func (e *Ingester) Cleaned() (*cleanup.Result, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}

	doc, warnings, err := e.ingest()
	if err != nil {
		return nil, warnings, err
	}

	res := cleanup.Clean(doc, e.options.cleanup)
	return &res, warnings, nil
}

// Document runs the full pipeline: ingest, cleanup, and mapping into the
// internal document model.
//
// Example:
//
//	doc, warnings, err := docforge.Open("report.docx").
//	    WithDOCXConverter(conv).
//	    Document()
func (e *Ingester) Document() (*docmodel.Document, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}

	res, warnings, err := e.Cleaned()
	if err != nil {
		return nil, warnings, err
	}

	out := mapper.Map(res.Document, mapper.Options{
		GenerateAnchors: e.options.generateAnchors,
	})
	return out, warnings, nil
}

// ============================================================================
// Internal pipeline
// ============================================================================

// ingest dispatches to the format ingester and applies the shared
// post-ingest shaping steps.
func (e *Ingester) ingest() (*ir.Document, []Warning, error) {
	warnings := append([]Warning(nil), e.warnings...)

	doc, err := e.ingestFormat(&warnings)
	if err != nil {
		return doc, warnings, err
	}

	if e.options.mergeShortParagraphs {
		coalesceShortParagraphs(doc, e.options.shortParagraphLimit)
	}
	if e.options.splitSections {
		splitAtTopHeadings(doc)
	}
	for _, sec := range doc.Sections {
		sec.Renumber()
	}
	doc.Renumber()

	if doc.BlockCount() == 0 {
		warnings = append(warnings, Warning{
			Stage:   "ingest",
			Message: "no content blocks produced",
		})
	}

	return doc, warnings, nil
}

func (e *Ingester) ingestFormat(warnings *[]Warning) (*ir.Document, error) {
	title := e.title()

	switch e.format {
	case format.PlainText:
		r, closeFn, err := e.open()
		if err != nil {
			return nil, e.stageError("ingest", err)
		}
		defer closeFn()
		doc, err := plaintext.Ingest(r, plaintext.Options{Title: title})
		if err != nil {
			return nil, e.stageError("ingest", err)
		}
		return doc, nil

	case format.Markdown:
		r, closeFn, err := e.open()
		if err != nil {
			return nil, e.stageError("ingest", err)
		}
		defer closeFn()
		doc, err := markdown.Ingest(r, markdown.Options{Title: title})
		if err != nil {
			return nil, e.stageError("ingest", err)
		}
		return doc, nil

	case format.HTML:
		r, closeFn, err := e.open()
		if err != nil {
			return nil, e.stageError("ingest", err)
		}
		defer closeFn()
		hr, err := htmldoc.OpenReaderWithOptions(r, htmldoc.Options{
			Title:         title,
			Sanitize:      e.options.sanitize,
			ExtractAssets: e.options.extractAssets,
		})
		if err != nil {
			return nil, e.stageError("ingest", err)
		}
		defer hr.Close()
		doc, err := hr.IRDocument()
		if err != nil {
			return nil, e.stageError("ingest", err)
		}
		return doc, nil

	case format.JSON:
		r, closeFn, err := e.open()
		if err != nil {
			return nil, e.stageError("ingest", err)
		}
		defer closeFn()
		doc, err := jsondoc.Ingest(r, jsondoc.Options{Title: title})
		if err != nil {
			return nil, e.stageError("ingest", fmt.Errorf("%w: %v", ErrMalformedInput, err))
		}
		return doc, nil

	case format.DOCX:
		return e.ingestDOCX(title, warnings)

	case format.PDF:
		return e.ingestPDF(title, warnings)

	default:
		return nil, e.stageError("ingest",
			fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(e.filename)))
	}
}

func (e *Ingester) ingestDOCX(title string, warnings *[]Warning) (*ir.Document, error) {
	if e.options.docxConverter == nil {
		return nil, e.stageError("ingest",
			fmt.Errorf("%w: no DOCX converter configured", ErrExternalConversion))
	}

	r, closeFn, err := e.open()
	if err != nil {
		return nil, e.stageError("ingest", err)
	}
	defer closeFn()

	htmlReader, err := e.options.docxConverter.ConvertToHTML(r)
	if err != nil {
		convErr := e.stageError("ingest", fmt.Errorf("%w: %v", ErrExternalConversion, err))
		return e.degrade(title, convErr, warnings), convErr
	}

	doc, err := docxhtml.Ingest(htmlReader, docxhtml.Options{
		Title:         title,
		ExtractAssets: e.options.extractAssets,
	})
	if err != nil {
		return nil, e.stageError("ingest", err)
	}
	return doc, nil
}

func (e *Ingester) ingestPDF(title string, warnings *[]Warning) (*ir.Document, error) {
	if e.options.pdfConverter == nil {
		return nil, e.stageError("ingest",
			fmt.Errorf("%w: no PDF converter configured", ErrExternalConversion))
	}
	if e.filename == "" {
		return nil, e.stageError("ingest", fmt.Errorf("PDF ingestion requires a filename"))
	}

	doc, err := e.options.pdfConverter.ConvertToIR(e.filename)
	if err != nil {
		convErr := e.stageError("ingest", fmt.Errorf("%w: %v", ErrExternalConversion, err))
		return e.degrade(title, convErr, warnings), convErr
	}
	for _, sec := range doc.Sections {
		sec.Renumber()
	}
	return doc, nil
}

// degrade builds the placeholder document returned beside an external
// conversion error when PlaceholderOnFailure is set, or nil otherwise.
func (e *Ingester) degrade(title string, convErr error, warnings *[]Warning) *ir.Document {
	if !e.options.placeholder {
		return nil
	}
	*warnings = append(*warnings, Warning{
		Stage:   "ingest",
		Message: "conversion failed; produced placeholder document",
	})

	doc := ir.NewDocument(title)
	sec := ir.NewSection("", 1)
	sec.Append(ir.NewParagraph(fmt.Sprintf("This document could not be imported: %v", convErr)))
	doc.Sections = append(doc.Sections, sec)
	return doc
}

// open returns the configured reader, opening the file if needed.
func (e *Ingester) open() (io.Reader, func() error, error) {
	if e.source != nil {
		return e.source, func() error { return nil }, nil
	}
	if e.filename == "" {
		return nil, nil, fmt.Errorf("no filename specified")
	}
	f, err := os.Open(e.filename)
	if err != nil {
		return nil, nil, fmt.Errorf("opening file: %w", err)
	}
	return f, f.Close, nil
}

// title resolves the effective document title: the configured override,
// else the filename without its extension.
func (e *Ingester) title() string {
	if e.options.title != "" {
		return e.options.title
	}
	if e.filename == "" {
		return ""
	}
	base := filepath.Base(e.filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// coalesceShortParagraphs concatenates runs of consecutive paragraphs
// shorter than limit, joined with single spaces.
func coalesceShortParagraphs(doc *ir.Document, limit int) {
	for _, sec := range doc.Sections {
		out := sec.Blocks[:0]
		for _, blk := range sec.Blocks {
			if len(out) > 0 {
				prev := out[len(out)-1]
				if shortParagraph(prev, limit) && shortParagraph(blk, limit) {
					pt := prev.Content.(ir.ParagraphContent)
					bt := blk.Content.(ir.ParagraphContent)
					prev.Content = ir.ParagraphContent{Text: pt.Text + " " + bt.Text}
					for _, m := range blk.Marks {
						prev.AddMark(m)
					}
					continue
				}
			}
			out = append(out, blk)
		}
		sec.Blocks = out
	}
}

func shortParagraph(b *ir.Block, limit int) bool {
	if b.Type != ir.BlockParagraph {
		return false
	}
	p, ok := b.Content.(ir.ParagraphContent)
	return ok && len(p.Text) < limit
}

// splitAtTopHeadings rewrites a single-section document into one section
// per level-1 heading. Content before the first level-1 heading stays in
// the leading section; footnotes follow the blocks that reference them.
func splitAtTopHeadings(doc *ir.Document) {
	if len(doc.Sections) != 1 {
		return
	}
	src := doc.Sections[0]
	blocks := src.Blocks
	notes := src.Notes
	src.Blocks = nil

	sections := []*ir.Section{src}
	cur := src
	for _, blk := range blocks {
		if h, ok := blk.Content.(ir.HeadingContent); ok && h.Level == 1 {
			if len(cur.Blocks) == 0 && cur.Title == "" {
				cur.Title = h.Text
			} else {
				cur = ir.NewSection(h.Text, len(sections)+1)
				sections = append(sections, cur)
			}
		}
		cur.Blocks = append(cur.Blocks, blk)
	}

	redistributeNotes(notes, sections)
	doc.Sections = sections
}

// redistributeNotes moves footnotes to the section containing their first
// backlinked block, defaulting to the first section. Numbers restart at 1
// within each section.
func redistributeNotes(notes []ir.Footnote, sections []*ir.Section) {
	if len(notes) == 0 {
		return
	}
	owner := make(map[string]*ir.Section)
	for _, sec := range sections {
		sec.Notes = nil
		for _, blk := range sec.Blocks {
			owner[blk.ID] = sec
		}
	}
	for _, n := range notes {
		target := sections[0]
		for _, id := range n.Backlinks {
			if sec, ok := owner[id]; ok {
				target = sec
				break
			}
		}
		n.Number = len(target.Notes) + 1
		target.Notes = append(target.Notes, n)
	}
}
