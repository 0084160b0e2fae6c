package source

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// DefaultPDFMaxPages caps how many pages are read from one PDF.
const DefaultPDFMaxPages = 20

// PDFText reads the embedded text layer of PDF documents. It does not
// render pages, so scanned PDFs yield ErrNoText.
type PDFText struct {
	// MaxPages limits the pages read; zero means DefaultPDFMaxPages.
	MaxPages int
}

// ExtractText returns the text of up to MaxPages pages, one line per text
// row and a blank line between pages.
func (p PDFText) ExtractText(data []byte, _ string) (text *Text, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = nil, fmt.Errorf("reading PDF: %w: %v", ErrMalformedDocument, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w: %w", ErrMalformedDocument, err)
	}

	limit := p.MaxPages
	if limit <= 0 {
		limit = DefaultPDFMaxPages
	}
	numPages := min(r.NumPage(), limit)

	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("reading PDF page %d: %w", i, err)
		}
		var lines []string
		for _, row := range rows {
			words := make([]string, 0, len(row.Content))
			for _, word := range row.Content {
				words = append(words, word.S)
			}
			if line := strings.TrimSpace(strings.Join(words, " ")); line != "" {
				lines = append(lines, line)
			}
		}
		if len(lines) > 0 {
			pages = append(pages, strings.Join(lines, "\n"))
		}
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("reading PDF: %w", ErrNoText)
	}
	return &Text{Content: strings.Join(pages, "\n\n"), Pages: numPages, Kind: KindPDF}, nil
}
