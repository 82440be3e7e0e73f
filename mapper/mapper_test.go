package mapper

import (
	"testing"

	"github.com/tsawler/docforge/docmodel"
	"github.com/tsawler/docforge/ir"
)

func irDoc(blocks ...*ir.Block) *ir.Document {
	doc := ir.NewDocument("Mapped")
	sec := ir.NewSection("First", 1)
	for _, b := range blocks {
		sec.Append(b)
	}
	doc.Sections = append(doc.Sections, sec)
	return doc
}

func TestMap_OneFlowPerSection(t *testing.T) {
	doc := ir.NewDocument("Two Sections")
	for i, title := range []string{"A", "B"} {
		sec := ir.NewSection(title, i+1)
		sec.Append(ir.NewParagraph("text"))
		doc.Sections = append(doc.Sections, sec)
	}

	out := Map(doc, Options{})

	if out.ID != "doc-1" {
		t.Errorf("id = %q, want %q", out.ID, "doc-1")
	}
	if len(out.Sections) != 2 {
		t.Fatalf("sections = %d, want 2", len(out.Sections))
	}
	for i, sec := range out.Sections {
		if len(sec.Flows) != 1 {
			t.Errorf("section %d flows = %d, want 1", i, len(sec.Flows))
		}
		if sec.Order != i+1 {
			t.Errorf("section %d order = %d", i, sec.Order)
		}
	}
	if out.Sections[0].ID != "sec-1" || out.Sections[1].ID != "sec-2" {
		t.Errorf("section ids = %q, %q", out.Sections[0].ID, out.Sections[1].ID)
	}
	if out.Sections[1].Flows[0].ID != "flow-2" {
		t.Errorf("flow id = %q, want %q", out.Sections[1].Flows[0].ID, "flow-2")
	}
}

func TestMap_FreshSequentialIDs(t *testing.T) {
	doc := irDoc(ir.NewParagraph("one"), ir.NewParagraph("two"))

	out := Map(doc, Options{})

	blocks := out.Sections[0].Flows[0].Blocks
	if blocks[0].ID != "blk-1" || blocks[1].ID != "blk-2" {
		t.Errorf("ids = %q, %q, want blk-1, blk-2", blocks[0].ID, blocks[1].ID)
	}
	for i, b := range blocks {
		if b.Order != i+1 {
			t.Errorf("block %d order = %d", i, b.Order)
		}
	}
	if blocks[0].ID == doc.Sections[0].Blocks[0].ID {
		t.Error("internal id should not reuse IR id")
	}
}

func TestMap_CountersPerCall(t *testing.T) {
	doc := irDoc(ir.NewParagraph("text"))

	a := Map(doc, Options{})
	b := Map(doc, Options{})

	if a.Sections[0].Flows[0].Blocks[0].ID != b.Sections[0].Flows[0].Blocks[0].ID {
		t.Error("counters should reset per call")
	}
}

func TestMap_CodeDegradesToFencedParagraph(t *testing.T) {
	doc := irDoc(ir.NewCode("go", "x := 1"))

	out := Map(doc, Options{})

	blk := out.Sections[0].Flows[0].Blocks[0]
	if blk.Kind != docmodel.KindParagraph {
		t.Fatalf("kind = %v, want paragraph", blk.Kind)
	}
	p := blk.Content.(docmodel.Paragraph)
	want := "```go\nx := 1\n```"
	if p.Text != want {
		t.Errorf("text = %q, want %q", p.Text, want)
	}
}

func TestMap_InlineCodeUsesBackticks(t *testing.T) {
	blk := ir.NewCode("", "a+b")
	c := blk.Content.(ir.CodeContent)
	c.Inline = true
	blk.Content = c
	doc := irDoc(blk)

	out := Map(doc, Options{})

	p := out.Sections[0].Flows[0].Blocks[0].Content.(docmodel.Paragraph)
	if p.Text != "`a+b`" {
		t.Errorf("text = %q, want %q", p.Text, "`a+b`")
	}
}

func TestMap_TableHeaderRowRename(t *testing.T) {
	tbl := ir.NewTable([]string{"Name", "Age"}, [][]string{{"Ann", "40"}}, true)
	doc := irDoc(tbl)

	out := Map(doc, Options{})

	got := out.Sections[0].Flows[0].Blocks[0].Content.(docmodel.Table)
	if !got.HasHeaderRow {
		t.Error("HasHeaderRow = false, want true")
	}
	if len(got.Headers) != 2 || got.Rows[0][0] != "Ann" {
		t.Errorf("table = %+v", got)
	}

	// Copied, not aliased.
	got.Rows[0][0] = "changed"
	if doc.Sections[0].Blocks[0].Content.(ir.TableContent).Rows[0][0] != "Ann" {
		t.Error("mapped table aliases IR rows")
	}
}

func TestMap_FigureSize(t *testing.T) {
	tests := []struct {
		in   string
		want docmodel.FigureSize
	}{
		{"full-width", docmodel.SizeFullWidth},
		{"inline", docmodel.SizeInline},
		{"", docmodel.SizeColumnWidth},
		{"gigantic", docmodel.SizeColumnWidth},
	}
	for _, tt := range tests {
		doc := irDoc(&ir.Block{
			ID:   "b1",
			Type: ir.BlockFigure,
			Content: ir.FigureContent{
				Image: ir.AssetRef{ID: "asset-1", URL: "pic.png"},
				Size:  tt.in,
			},
		})

		out := Map(doc, Options{})

		f := out.Sections[0].Flows[0].Blocks[0].Content.(docmodel.Figure)
		if f.Size != tt.want {
			t.Errorf("size %q mapped to %q, want %q", tt.in, f.Size, tt.want)
		}
		if f.Image.AssetID != "asset-1" || f.Image.URL != "pic.png" {
			t.Errorf("image = %+v", f.Image)
		}
	}
}

func TestMap_FootnoteSourceBlock(t *testing.T) {
	doc := ir.NewDocument("Notes")
	sec := ir.NewSection("", 1)
	ref := ir.NewParagraph("Has a reference.")
	sec.Append(ref)
	sec.Notes = append(sec.Notes,
		ir.Footnote{ID: "n1", Number: 1, Content: "Resolved note.", Backlinks: []string{ref.ID}},
		ir.Footnote{ID: "n2", Number: 2, Content: "Orphan note.", Backlinks: []string{"missing-id"}},
	)
	doc.Sections = append(doc.Sections, sec)

	out := Map(doc, Options{})

	notes := out.Sections[0].Footnotes
	if len(notes) != 2 {
		t.Fatalf("footnotes = %d, want 2", len(notes))
	}
	if notes[0].SourceBlockID != "blk-1" {
		t.Errorf("source = %q, want %q", notes[0].SourceBlockID, "blk-1")
	}
	if notes[1].SourceBlockID != "unknown" {
		t.Errorf("orphan source = %q, want %q", notes[1].SourceBlockID, "unknown")
	}
	if notes[0].ID != "fn-1-1" {
		t.Errorf("footnote id = %q, want %q", notes[0].ID, "fn-1-1")
	}
}

func TestMap_Anchors(t *testing.T) {
	doc := irDoc(
		ir.NewHeading(1, "Getting Started!"),
		ir.NewHeading(2, "Getting Started"),
		ir.NewHeading(2, "???"),
	)

	out := Map(doc, Options{GenerateAnchors: true})

	blocks := out.Sections[0].Flows[0].Blocks
	wantAnchors := []string{"getting-started", "getting-started-2", "section"}
	for i, want := range wantAnchors {
		h := blocks[i].Content.(docmodel.Heading)
		if h.Anchor != want {
			t.Errorf("anchor %d = %q, want %q", i, h.Anchor, want)
		}
	}
}

func TestMap_NoAnchorsByDefault(t *testing.T) {
	doc := irDoc(ir.NewHeading(1, "Title"))

	out := Map(doc, Options{})

	h := out.Sections[0].Flows[0].Blocks[0].Content.(docmodel.Heading)
	if h.Anchor != "" {
		t.Errorf("anchor = %q, want empty", h.Anchor)
	}
}

func TestMap_NestedList(t *testing.T) {
	doc := irDoc(ir.NewList(ir.ListOrdered, []ir.ListItem{
		{Content: "top", Children: &ir.ListContent{
			Type:  ir.ListUnordered,
			Items: []ir.ListItem{{Content: "child"}},
		}},
	}))

	out := Map(doc, Options{})

	g := out.Sections[0].Flows[0].Blocks[0].Content.(docmodel.ListGroup)
	if !g.Ordered {
		t.Error("outer list should be ordered")
	}
	child := g.Items[0].Children
	if child == nil || child.Ordered || child.Items[0].Content != "child" {
		t.Errorf("child = %+v", child)
	}
}

func TestMap_UnknownPayloadKeptAsParagraph(t *testing.T) {
	doc := irDoc(&ir.Block{
		ID:      "b1",
		Type:    ir.BlockType("sidebar"),
		Content: ir.RawContent{Data: []byte(`{"x":1}`)},
	})

	out := Map(doc, Options{})

	blocks := out.Sections[0].Flows[0].Blocks
	if len(blocks) != 1 {
		t.Fatalf("blocks = %d, want unknown payload carried", len(blocks))
	}
	if blocks[0].Kind != docmodel.KindParagraph {
		t.Errorf("kind = %v, want paragraph", blocks[0].Kind)
	}
	p := blocks[0].Content.(docmodel.Paragraph)
	if p.Text != `{"x":1}` {
		t.Errorf("text = %q, want raw payload data carried", p.Text)
	}
}

func TestMap_InputNotMutated(t *testing.T) {
	doc := irDoc(ir.NewHeading(1, "Stable"), ir.NewParagraph("text"))
	before := doc.Sections[0].Blocks[0].ID

	Map(doc, Options{GenerateAnchors: true})

	if doc.Sections[0].Blocks[0].ID != before {
		t.Error("IR block id changed")
	}
	if _, ok := doc.Sections[0].Blocks[0].Content.(ir.HeadingContent); !ok {
		t.Error("IR content type changed")
	}
}

func TestMap_MetadataCopied(t *testing.T) {
	doc := ir.NewDocument("Meta")
	doc.Metadata.Author = "Writer"
	doc.Metadata.Tags = []string{"a", "b"}
	doc.Metadata.Custom = map[string]string{"k": "v"}

	out := Map(doc, Options{})

	if out.Metadata.Author != "Writer" || len(out.Metadata.Tags) != 2 {
		t.Errorf("metadata = %+v", out.Metadata)
	}
	out.Metadata.Custom["k"] = "changed"
	if doc.Metadata.Custom["k"] != "v" {
		t.Error("custom metadata aliased")
	}
}
