package blockscan

import (
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/tsawler/docforge/ir"
)

var imageRe = regexp.MustCompile(`^!\[([^\]]*)\]\(\s*(\S+?)(?:\s+"([^"]*)")?\s*\)$`)

// parseImage recognizes a standalone ![alt](src "caption") line and emits a
// figure block. The asset is referenced, never fetched.
func parseImage(lines []string, i int) (*ir.Block, int, bool) {
	m := imageRe.FindStringSubmatch(strings.TrimSpace(lines[i]))
	if m == nil {
		return nil, i, false
	}

	alt, src, caption := m[1], m[2], m[3]
	asset := ir.AssetRef{
		ID:       uuid.NewString(),
		Filename: path.Base(src),
		URL:      src,
		Alt:      alt,
	}
	if caption != "" {
		asset.Title = caption
	}
	return ir.NewFigure(asset, caption, alt), i + 1, true
}
