package format

import "testing"

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{PlainText, "PlainText"},
		{Markdown, "Markdown"},
		{HTML, "HTML"},
		{JSON, "JSON"},
		{DOCX, "DOCX"},
		{PDF, "PDF"},
		{Unknown, "Unknown"},
		{Format(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_Extension(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{PlainText, ".txt"},
		{Markdown, ".md"},
		{HTML, ".html"},
		{JSON, ".json"},
		{DOCX, ".docx"},
		{PDF, ".pdf"},
		{Unknown, ""},
	}

	for _, tt := range tests {
		if got := tt.format.Extension(); got != tt.want {
			t.Errorf("Format(%d).Extension() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"notes.txt", PlainText},
		{"notes.TXT", PlainText},
		{"notes.text", PlainText},
		{"readme.md", Markdown},
		{"readme.markdown", Markdown},
		{"readme.MD", Markdown},
		{"page.html", HTML},
		{"page.htm", HTML},
		{"data.json", JSON},
		{"report.docx", DOCX},
		{"paper.pdf", PDF},
		{"archive.xyz", Unknown},
		{"noextension", Unknown},
		{"", Unknown},
		{"/path/to/file.md", Markdown},
		{"/path/to/file.json", JSON},
	}

	for _, tt := range tests {
		if got := Detect(tt.filename); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestDetectFromContent(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{
			name: "HTML with DOCTYPE",
			data: []byte("<!DOCTYPE html>\n<html>"),
			want: HTML,
		},
		{
			name: "HTML with html tag",
			data: []byte("<html><head>"),
			want: HTML,
		},
		{
			name: "HTML with leading whitespace",
			data: []byte("  \n  <!DOCTYPE HTML PUBLIC"),
			want: HTML,
		},
		{
			name: "JSON object",
			data: []byte(`{"title": "x"}`),
			want: JSON,
		},
		{
			name: "JSON array",
			data: []byte(`[1, 2, 3]`),
			want: JSON,
		},
		{
			name: "invalid JSON falls back to text",
			data: []byte(`{not json`),
			want: PlainText,
		},
		{
			name: "plain text",
			data: []byte("Hello, World!"),
			want: PlainText,
		},
		{
			name: "binary content",
			data: []byte{0x00, 0x01, 0x02, 0x03},
			want: Unknown,
		},
		{
			name: "empty data",
			data: []byte{},
			want: Unknown,
		},
		{
			name: "whitespace only",
			data: []byte("   \n\t  "),
			want: Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFromContent(tt.data); got != tt.want {
				t.Errorf("DetectFromContent() = %v, want %v", got, tt.want)
			}
		})
	}
}
