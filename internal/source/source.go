package source

import "errors"

var (
	// ErrUnsupportedContentType is returned when no extractor handles a payload.
	ErrUnsupportedContentType = errors.New("unsupported content type")
	// ErrNoText is returned when a document has no extractable text layer,
	// such as a scanned PDF that needs OCR.
	ErrNoText = errors.New("no extractable text")
	// ErrMalformedDocument is returned when a payload cannot be decoded as
	// the format it claims to be.
	ErrMalformedDocument = errors.New("malformed document")
)

// Kinds of text sources.
const (
	KindPlainText = "text"
	KindPDF       = "pdf"
)

// Text is the text recovered from one document.
type Text struct {
	Content string
	Pages   int
	// Kind names the extractor that produced Content.
	Kind string
}

// Extractor defines the interface for recovering document text
type Extractor interface {
	// ExtractText returns the text layer of data, which has the given content type
	ExtractText(data []byte, contentType string) (*Text, error)
}
