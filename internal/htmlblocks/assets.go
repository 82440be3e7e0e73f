package htmlblocks

import (
	"bytes"
	"encoding/base64"
	"image"
	"mime"
	"path"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/net/html"

	// Register decoders so asset sniffing can read dimensions from the
	// formats Word and web exports commonly embed.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/tsawler/docforge/internal/domutil"
	"github.com/tsawler/docforge/ir"
)

// Figure builds a figure block from an <img> element. The asset is
// referenced, never downloaded; with extractAssets set, data-URI images
// are decoded just far enough to learn their MIME type and dimensions.
func Figure(n *html.Node, extractAssets bool, caption string) *ir.Block {
	src := domutil.Attr(n, "src")
	if src == "" {
		return nil
	}

	alt := domutil.Attr(n, "alt")
	asset := ir.AssetRef{
		ID:    uuid.NewString(),
		URL:   src,
		Alt:   alt,
		Title: domutil.Attr(n, "title"),
	}

	var width, height int
	if strings.HasPrefix(src, "data:") {
		if extractAssets {
			asset.MIMEType, width, height = sniffDataURI(src)
		} else if mt, _, ok := strings.Cut(strings.TrimPrefix(src, "data:"), ";"); ok {
			asset.MIMEType = mt
		}
	} else {
		asset.Filename = path.Base(src)
		asset.MIMEType = mime.TypeByExtension(strings.ToLower(path.Ext(src)))
	}

	b := ir.NewFigure(asset, caption, alt)
	if width > 0 && height > 0 {
		b.SetAttr("width", strconv.Itoa(width))
		b.SetAttr("height", strconv.Itoa(height))
	}
	return b
}

// sniffDataURI decodes the payload of a base64 data URI and reads the
// image config. Failures return the declared media type and no dimensions.
func sniffDataURI(uri string) (mimeType string, width, height int) {
	rest := strings.TrimPrefix(uri, "data:")
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", 0, 0
	}
	mimeType, _, _ = strings.Cut(meta, ";")

	if !strings.Contains(meta, "base64") {
		return mimeType, 0, 0
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return mimeType, 0, 0
	}

	cfg, name, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return mimeType, 0, 0
	}
	return "image/" + name, cfg.Width, cfg.Height
}
