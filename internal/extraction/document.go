package extraction

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	reLineBreak = regexp.MustCompile(`\r\n?`)
	// NFKC has already folded U+00A0 into a plain space.
	reSpaceRun = regexp.MustCompile(` {2,}`)
)

// NormalizeLines splits raw extracted text into trimmed, non-empty lines.
// Compatibility characters (ligatures, full-width digits, non-breaking
// spaces) are folded first, tabs become spaces and runs of spaces collapse.
func NormalizeLines(raw string) []string {
	s := norm.NFKC.String(raw)
	s = reLineBreak.ReplaceAllString(s, "\n")
	s = strings.ReplaceAll(s, "\t", " ")
	s = reSpaceRun.ReplaceAllString(s, " ")

	parts := strings.Split(s, "\n")
	lines := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			lines = append(lines, p)
		}
	}
	return lines
}

// Document is the normalized view of one text input shared by all extractors.
type Document struct {
	Raw   string
	Lines []string
	// Text is Lines joined with "\n".
	Text string
}

// NewDocument normalizes raw into a Document.
func NewDocument(raw string) *Document {
	lines := NormalizeLines(raw)
	return &Document{
		Raw:   raw,
		Lines: lines,
		Text:  strings.Join(lines, "\n"),
	}
}

// strategy is one named way of extracting a field from a document.
type strategy[T any] struct {
	name    string
	extract func(doc *Document) (T, bool)
}

// firstMatch runs strategies in order and returns the first successful
// value together with the name of the strategy that produced it.
func firstMatch[T any](doc *Document, strategies []strategy[T]) (T, string, bool) {
	for _, s := range strategies {
		if v, ok := s.extract(doc); ok {
			return v, s.name, true
		}
	}
	var zero T
	return zero, "", false
}
