package docforge

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsawler/docforge/cleanup"
	"github.com/tsawler/docforge/docmodel"
	"github.com/tsawler/docforge/format"
	"github.com/tsawler/docforge/ir"
)

func TestOpen_UnsupportedFormat(t *testing.T) {
	_, _, err := Open("data.xyz").IR()
	if err == nil {
		t.Fatal("IR() expected error for unsupported extension")
	}
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}

	var se *StageError
	if !errors.As(err, &se) {
		t.Fatalf("err = %T, want *StageError", err)
	}
	if se.File != "data.xyz" || se.Stage != "ingest" {
		t.Errorf("stage error = %+v", se)
	}
}

func TestOpen_UnsupportedFormatFailsBeforeReading(t *testing.T) {
	// The file does not exist; detection must fail on the extension alone.
	_, _, err := Open("/nonexistent/file.xyz").IR()
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestFromReader_Markdown(t *testing.T) {
	input := "# Title\n\nBody text here."

	doc, warnings, err := FromReader(strings.NewReader(input), format.Markdown).IR()
	if err != nil {
		t.Fatalf("IR() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
	if doc.BlockCount() != 2 {
		t.Errorf("blocks = %d, want 2", doc.BlockCount())
	}
	if doc.Sections[0].Blocks[0].Type != ir.BlockHeading {
		t.Errorf("block 0 = %v, want heading", doc.Sections[0].Blocks[0].Type)
	}
}

func TestFromReader_MalformedJSON(t *testing.T) {
	_, _, err := FromReader(strings.NewReader(`{"broken":`), format.JSON).IR()
	if !errors.Is(err, ErrMalformedInput) {
		t.Errorf("err = %v, want ErrMalformedInput", err)
	}
}

func TestIngester_ChainImmutability(t *testing.T) {
	base := FromReader(strings.NewReader("text"), format.PlainText)
	titled := base.Title("Changed")

	if base.options.title != "" {
		t.Error("base ingester mutated by Title()")
	}
	if titled.options.title != "Changed" {
		t.Error("chained ingester missing title")
	}
	if base == titled {
		t.Error("Title() should return a new instance")
	}
}

func TestIngester_TitleFallback(t *testing.T) {
	tests := []struct {
		filename string
		override string
		want     string
	}{
		{"notes.txt", "", "notes"},
		{"/deep/path/report.final.md", "", "report.final"},
		{"notes.txt", "Override", "Override"},
		{"", "", ""},
	}
	for _, tt := range tests {
		e := &Ingester{filename: tt.filename, options: defaultOptions()}
		e.options.title = tt.override
		if got := e.title(); got != tt.want {
			t.Errorf("title(%q, %q) = %q, want %q", tt.filename, tt.override, got, tt.want)
		}
	}
}

func TestIngester_MergeShortParagraphs(t *testing.T) {
	input := "First bit.\n\nSecond bit.\n\nThird bit."

	doc, _, err := FromReader(strings.NewReader(input), format.PlainText).
		MergeShortParagraphs().
		IR()
	if err != nil {
		t.Fatalf("IR() error = %v", err)
	}

	blocks := doc.Sections[0].Blocks
	if len(blocks) != 1 {
		t.Fatalf("blocks = %d, want 1 merged paragraph", len(blocks))
	}
	p := blocks[0].Content.(ir.ParagraphContent)
	want := "First bit. Second bit. Third bit."
	if p.Text != want {
		t.Errorf("text = %q, want %q", p.Text, want)
	}
	if blocks[0].Order != 1 {
		t.Errorf("order = %d, want renumbered to 1", blocks[0].Order)
	}
}

func TestIngester_ShortParagraphLimit(t *testing.T) {
	input := "This paragraph is noticeably longer than ten characters.\n\nAlso long enough to stay separate from the first."

	doc, _, err := FromReader(strings.NewReader(input), format.PlainText).
		MergeShortParagraphs().
		ShortParagraphLimit(10).
		IR()
	if err != nil {
		t.Fatalf("IR() error = %v", err)
	}
	if len(doc.Sections[0].Blocks) != 2 {
		t.Error("paragraphs above the limit should not merge")
	}
}

func TestIngester_SplitSections(t *testing.T) {
	input := "intro before any heading\n\n# One\n\nfirst body\n\n# Two\n\nsecond body"

	doc, _, err := FromReader(strings.NewReader(input), format.Markdown).
		SplitSections().
		IR()
	if err != nil {
		t.Fatalf("IR() error = %v", err)
	}

	if len(doc.Sections) != 3 {
		t.Fatalf("sections = %d, want 3", len(doc.Sections))
	}
	if doc.Sections[1].Title != "One" || doc.Sections[2].Title != "Two" {
		t.Errorf("titles = %q, %q", doc.Sections[1].Title, doc.Sections[2].Title)
	}
	for i, sec := range doc.Sections {
		if sec.Order != i+1 {
			t.Errorf("section %d order = %d, want %d", i, sec.Order, i+1)
		}
		for j, b := range sec.Blocks {
			if b.Order != j+1 {
				t.Errorf("section %d block %d order = %d", i, j, b.Order)
			}
		}
	}
}

func TestIngester_SplitSectionsLeadingHeadingTitlesFirst(t *testing.T) {
	input := "# Only\n\nbody"

	doc, _, err := FromReader(strings.NewReader(input), format.Markdown).
		SplitSections().
		IR()
	if err != nil {
		t.Fatalf("IR() error = %v", err)
	}
	if len(doc.Sections) != 1 {
		t.Fatalf("sections = %d, want 1", len(doc.Sections))
	}
	if doc.Sections[0].Title != "Only" {
		t.Errorf("title = %q, want heading text", doc.Sections[0].Title)
	}
}

func TestIngester_SplitSectionsRenumbersNotes(t *testing.T) {
	doc := ir.NewDocument("d")
	sec := ir.NewSection("", 1)
	sec.Append(ir.NewHeading(1, "First"))
	p1 := ir.NewParagraph("alpha")
	sec.Append(p1)
	sec.Append(ir.NewHeading(1, "Second"))
	p2 := ir.NewParagraph("beta")
	sec.Append(p2)
	sec.Notes = []ir.Footnote{
		{ID: "n1", Number: 1, Content: "stays put", Backlinks: []string{p1.ID}},
		{ID: "n2", Number: 2, Content: "moves over", Backlinks: []string{p2.ID}},
	}
	doc.Sections = append(doc.Sections, sec)

	splitAtTopHeadings(doc)

	if len(doc.Sections) != 2 {
		t.Fatalf("sections = %d, want 2", len(doc.Sections))
	}
	first, second := doc.Sections[0], doc.Sections[1]
	if len(first.Notes) != 1 || first.Notes[0].Number != 1 {
		t.Errorf("first section notes = %+v, want one note numbered 1", first.Notes)
	}
	if len(second.Notes) != 1 || second.Notes[0].Content != "moves over" {
		t.Fatalf("second section notes = %+v, want the backlinked note", second.Notes)
	}
	if second.Notes[0].Number != 1 {
		t.Errorf("moved note number = %d, want numbering restarted at 1", second.Notes[0].Number)
	}
}

func TestIngester_EmptyInputWarns(t *testing.T) {
	doc, warnings, err := FromReader(strings.NewReader(""), format.PlainText).IR()
	if err != nil {
		t.Fatalf("IR() error = %v", err)
	}
	if doc.BlockCount() != 0 {
		t.Errorf("blocks = %d, want 0", doc.BlockCount())
	}
	if len(warnings) != 1 || warnings[0].Stage != "ingest" {
		t.Errorf("warnings = %v, want single ingest warning", warnings)
	}
}

func TestIngester_DOCXWithoutConverter(t *testing.T) {
	_, _, err := FromReader(strings.NewReader("bytes"), format.DOCX).IR()
	if !errors.Is(err, ErrExternalConversion) {
		t.Errorf("err = %v, want ErrExternalConversion", err)
	}
}

type stubDOCXConverter struct {
	html string
	err  error
}

func (c *stubDOCXConverter) ConvertToHTML(r io.Reader) (io.Reader, error) {
	if c.err != nil {
		return nil, c.err
	}
	return strings.NewReader(c.html), nil
}

func TestIngester_DOCXConversion(t *testing.T) {
	conv := &stubDOCXConverter{html: "<html><body><h1>From Word</h1><p>Body.</p></body></html>"}

	doc, _, err := FromReader(strings.NewReader("docx bytes"), format.DOCX).
		WithDOCXConverter(conv).
		IR()
	if err != nil {
		t.Fatalf("IR() error = %v", err)
	}
	if doc.BlockCount() != 2 {
		t.Errorf("blocks = %d, want 2", doc.BlockCount())
	}
}

func TestIngester_DOCXPlaceholderOnFailure(t *testing.T) {
	conv := &stubDOCXConverter{err: fmt.Errorf("converter exploded")}

	doc, warnings, err := FromReader(strings.NewReader("docx bytes"), format.DOCX).
		WithDOCXConverter(conv).
		PlaceholderOnFailure().
		IR()

	if !errors.Is(err, ErrExternalConversion) {
		t.Errorf("err = %v, want ErrExternalConversion", err)
	}
	if doc == nil {
		t.Fatal("placeholder document missing")
	}
	text := doc.Sections[0].Blocks[0].Content.(ir.ParagraphContent).Text
	if !strings.Contains(text, "could not be imported") {
		t.Errorf("placeholder text = %q", text)
	}
	found := false
	for _, w := range warnings {
		if strings.Contains(w.Message, "placeholder") {
			found = true
		}
	}
	if !found {
		t.Errorf("warnings = %v, want placeholder warning", warnings)
	}
}

func TestIngester_DOCXFailureWithoutPlaceholder(t *testing.T) {
	conv := &stubDOCXConverter{err: fmt.Errorf("converter exploded")}

	doc, _, err := FromReader(strings.NewReader("docx bytes"), format.DOCX).
		WithDOCXConverter(conv).
		IR()

	if err == nil {
		t.Fatal("expected conversion error")
	}
	if doc != nil {
		t.Error("doc should be nil without PlaceholderOnFailure")
	}
}

type stubPDFConverter struct {
	doc *ir.Document
	err error
}

func (c *stubPDFConverter) ConvertToIR(filename string) (*ir.Document, error) {
	return c.doc, c.err
}

func TestIngester_PDFRequiresFilename(t *testing.T) {
	conv := &stubPDFConverter{}

	_, _, err := FromReader(strings.NewReader("pdf"), format.PDF).
		WithPDFConverter(conv).
		IR()
	if err == nil {
		t.Error("PDF from reader without filename should fail")
	}
}

func TestIngester_Cleaned(t *testing.T) {
	input := "Note: labeled line\n\nAn ordinary paragraph that stands alone."

	res, _, err := FromReader(strings.NewReader(input), format.PlainText).Cleaned()
	if err != nil {
		t.Fatalf("Cleaned() error = %v", err)
	}

	if len(res.Audit) == 0 {
		t.Fatal("audit empty, want detect_callouts entry")
	}
	if res.Audit[0].Rule != "detect_callouts" {
		t.Errorf("rule = %q, want detect_callouts", res.Audit[0].Rule)
	}
	if res.Document.Sections[0].Blocks[0].Type != ir.BlockCallout {
		t.Error("labeled paragraph not converted")
	}
}

func TestIngester_CleanupOptionsRespected(t *testing.T) {
	input := "Note: labeled line\n\nAn ordinary paragraph that stands alone."

	res, _, err := FromReader(strings.NewReader(input), format.PlainText).
		CleanupOptions(cleanup.Options{}).
		Cleaned()
	if err != nil {
		t.Fatalf("Cleaned() error = %v", err)
	}
	if len(res.Audit) != 0 {
		t.Errorf("audit = %+v, want empty with rules disabled", res.Audit)
	}
}

func TestIngester_Document(t *testing.T) {
	input := "# Getting Started\n\nSome body text for the chapter."

	doc, _, err := FromReader(strings.NewReader(input), format.Markdown).
		GenerateAnchors().
		Document()
	if err != nil {
		t.Fatalf("Document() error = %v", err)
	}

	if doc.ID != "doc-1" || len(doc.Sections) != 1 {
		t.Fatalf("doc = %+v", doc)
	}
	flow := doc.Sections[0].Flows[0]
	if len(flow.Blocks) != 2 {
		t.Fatalf("blocks = %d, want 2", len(flow.Blocks))
	}
	h := flow.Blocks[0].Content.(docmodel.Heading)
	if h.Anchor != "getting-started" {
		t.Errorf("anchor = %q, want %q", h.Anchor, "getting-started")
	}
}

func TestIngestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.md")
	if err := os.WriteFile(path, []byte("# Hello\n\nBody."), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	doc, _, err := IngestFile(path)
	if err != nil {
		t.Fatalf("IngestFile() error = %v", err)
	}
	if doc.Title != "note" {
		t.Errorf("title = %q, want filename stem", doc.Title)
	}
	if doc.BlockCount() != 2 {
		t.Errorf("blocks = %d, want 2", doc.BlockCount())
	}
}

func TestCleanIRDocument(t *testing.T) {
	doc := ir.NewDocument("d")
	sec := ir.NewSection("", 1)
	sec.Append(ir.NewParagraph("Note: standalone wrapper"))
	doc.Sections = append(doc.Sections, sec)

	res := CleanIRDocument(doc, cleanup.DefaultOptions())
	if res.Document.Sections[0].Blocks[0].Type != ir.BlockCallout {
		t.Error("wrapper did not run cleanup rules")
	}
}

func TestMapIRToDocument(t *testing.T) {
	doc := ir.NewDocument("d")
	sec := ir.NewSection("", 1)
	sec.Append(ir.NewHeading(1, "Mapped Title"))
	doc.Sections = append(doc.Sections, sec)

	out := MapIRToDocument(doc, true)
	h := out.Sections[0].Flows[0].Blocks[0].Content.(docmodel.Heading)
	if h.Anchor != "mapped-title" {
		t.Errorf("anchor = %q, want %q", h.Anchor, "mapped-title")
	}
}

func TestMustIngest_PanicsOnError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustIngest should panic on error")
		}
	}()
	MustIngest(Open("data.xyz").IR())
}

func TestFormatWarnings(t *testing.T) {
	got := FormatWarnings([]Warning{
		{Stage: "ingest", Message: "first"},
		{Stage: "cleanup", Message: "second"},
	})
	want := "ingest: first; cleanup: second"
	if got != want {
		t.Errorf("FormatWarnings() = %q, want %q", got, want)
	}
}
