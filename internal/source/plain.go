package source

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// PlainText reads text payloads such as text/plain and text/csv.
type PlainText struct{}

// ExtractText decodes data as UTF-8. Invalid bytes become U+FFFD so the
// result is always valid UTF-8.
func (PlainText) ExtractText(data []byte, _ string) (*Text, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	content := string(data)
	if !utf8.Valid(data) {
		content = strings.ToValidUTF8(content, string(utf8.RuneError))
	}
	return &Text{Content: content, Pages: 1, Kind: KindPlainText}, nil
}
