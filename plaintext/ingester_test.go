package plaintext

import (
	"strings"
	"testing"

	"github.com/tsawler/docforge/ir"
)

func TestIngest_Simple(t *testing.T) {
	input := "CHAPTER ONE\n\nSome opening text that flows along.\n\n- a\n- b\n- c"

	doc, err := Ingest(strings.NewReader(input), Options{Title: "Book"})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	if doc.Title != "Book" {
		t.Errorf("title = %q, want %q", doc.Title, "Book")
	}
	if len(doc.Sections) != 1 {
		t.Fatalf("sections = %d, want 1", len(doc.Sections))
	}

	blocks := doc.Sections[0].Blocks
	if len(blocks) != 3 {
		t.Fatalf("blocks = %d, want 3", len(blocks))
	}
	if blocks[0].Type != ir.BlockHeading {
		t.Errorf("block 0 = %v, want heading", blocks[0].Type)
	}
	if blocks[1].Type != ir.BlockParagraph {
		t.Errorf("block 1 = %v, want paragraph", blocks[1].Type)
	}

	list, ok := blocks[2].Content.(ir.ListContent)
	if !ok {
		t.Fatalf("block 2 content = %T, want ListContent", blocks[2].Content)
	}
	if list.Type != ir.ListUnordered || len(list.Items) != 3 {
		t.Errorf("list = %+v, want 3 unordered items", list)
	}
	for i, want := range []string{"a", "b", "c"} {
		if list.Items[i].Content != want {
			t.Errorf("item %d = %q, want %q", i, list.Items[i].Content, want)
		}
	}
}

func TestIngest_OrderDensity(t *testing.T) {
	input := "INTRO\n\npara one\n\npara two\n\n---\n\npara three"

	doc, err := Ingest(strings.NewReader(input), Options{})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	for _, sec := range doc.Sections {
		for i, b := range sec.Blocks {
			if b.Order != i+1 {
				t.Errorf("block %d order = %d, want %d", i, b.Order, i+1)
			}
		}
	}
	if !ir.ValidateDocument(doc) {
		t.Error("ingester output failed validation")
	}
}

func TestIngest_NoMarkdownSyntax(t *testing.T) {
	// Plain text must not interpret ATX heading or fence markers.
	input := "# not a heading\n\n```\nnot code\n```"

	doc, err := Ingest(strings.NewReader(input), Options{})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	for _, b := range doc.Sections[0].Blocks {
		if b.Type == ir.BlockHeading || b.Type == ir.BlockCode {
			t.Errorf("plain text produced %v block", b.Type)
		}
	}
}

func TestIngest_CRLFNormalized(t *testing.T) {
	input := "line one\r\nline two"

	doc, err := Ingest(strings.NewReader(input), Options{})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	p := doc.Sections[0].Blocks[0].Content.(ir.ParagraphContent)
	if strings.Contains(p.Text, "\r") {
		t.Errorf("text contains carriage return: %q", p.Text)
	}
}

func TestIngest_Empty(t *testing.T) {
	doc, err := Ingest(strings.NewReader(""), Options{Title: "Empty"})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if doc.BlockCount() != 0 {
		t.Errorf("blocks = %d, want 0", doc.BlockCount())
	}
}
