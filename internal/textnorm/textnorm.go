// Package textnorm normalizes raw text input before line scanning.
package textnorm

import (
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ReadAll reads r fully, strips any UTF-8/UTF-16 byte order mark, applies
// Unicode NFC normalization, and canonicalizes line endings to \n.
func ReadAll(r io.Reader) (string, error) {
	decoder := unicode.UTF8BOM.NewDecoder()
	data, err := io.ReadAll(transform.NewReader(r, transform.Chain(decoder, norm.NFC)))
	if err != nil {
		return "", err
	}

	s := string(data)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return s, nil
}

// Lines splits normalized text into line tokens.
func Lines(s string) []string {
	return strings.Split(s, "\n")
}
