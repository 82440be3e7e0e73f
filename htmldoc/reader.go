// Package htmldoc ingests HTML documents into the IR.
package htmldoc

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"

	"github.com/tsawler/docforge/internal/domutil"
	"github.com/tsawler/docforge/ir"
)

// Options configures HTML ingestion.
type Options struct {
	// Title becomes the document title unless the <head> provides one.
	Title string

	// Sanitize runs the input through a bluemonday UGC policy before
	// parsing. Use for untrusted HTML.
	Sanitize bool

	// ExtractAssets fills AssetRef MIME types and records image
	// dimensions for data-URI images. Bytes are never stored.
	ExtractAssets bool
}

// Reader provides access to HTML document content.
type Reader struct {
	doc      *html.Node
	title    string
	metadata map[string]string
	opts     Options
}

// Open opens an HTML file for reading.
func Open(filename string) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return OpenReader(f)
}

// OpenReader parses HTML from an io.Reader with default options.
func OpenReader(r io.Reader) (*Reader, error) {
	return OpenReaderWithOptions(r, Options{})
}

// OpenReaderWithOptions parses HTML from an io.Reader.
func OpenReaderWithOptions(r io.Reader, opts Options) (*Reader, error) {
	if opts.Sanitize {
		r = bluemonday.UGCPolicy().SanitizeReader(r)
	}

	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	reader := &Reader{
		doc:      doc,
		metadata: make(map[string]string),
		opts:     opts,
	}
	reader.extractHead(doc)
	return reader, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	// Nothing to close for HTML (no file handles kept).
	return nil
}

// Title returns the document title from <head>, or the configured fallback.
func (r *Reader) Title() string {
	if r.title != "" {
		return r.title
	}
	return r.opts.Title
}

// Metadata returns the meta tags collected from <head>.
func (r *Reader) Metadata() map[string]string {
	return r.metadata
}

// extractHead extracts title and meta tags from the head element.
func (r *Reader) extractHead(n *html.Node) {
	if n.Type == html.ElementNode && n.Data == "head" {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.Data {
			case "title":
				r.title = domutil.TextContent(c)
			case "meta":
				name, content := "", ""
				for _, attr := range c.Attr {
					switch attr.Key {
					case "name", "property":
						name = attr.Val
					case "content":
						content = attr.Val
					}
				}
				if name != "" && content != "" {
					r.metadata[name] = content
				}
			}
		}
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.extractHead(c)
	}
}

// IRDocument walks the parsed tree and builds a single-section IR document.
func (r *Reader) IRDocument() (*ir.Document, error) {
	doc := ir.NewDocument(r.Title())
	if author, ok := r.metadata["author"]; ok {
		doc.Metadata.Author = author
	}
	if desc, ok := r.metadata["description"]; ok {
		doc.Metadata.Description = desc
	}
	if keywords, ok := r.metadata["keywords"]; ok {
		for _, kw := range strings.Split(keywords, ",") {
			if kw = strings.TrimSpace(kw); kw != "" {
				doc.Metadata.Tags = append(doc.Metadata.Tags, kw)
			}
		}
	}

	sec := ir.NewSection("", 1)
	w := &walker{sec: sec, opts: r.opts}

	body := domutil.FindElement(r.doc, "body")
	if body == nil {
		// No body tag; extract from the root.
		body = r.doc
	}
	w.walk(body)

	doc.Sections = append(doc.Sections, sec)
	return doc, nil
}
