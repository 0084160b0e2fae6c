package source

import (
	"bytes"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
)

// Content types understood by the default router.
const (
	ContentTypePlain = "text/plain"
	ContentTypeCSV   = "text/csv"
	ContentTypePDF   = "application/pdf"
	// ContentTypeUnknown is what browsers send when they cannot tell.
	ContentTypeUnknown = "application/octet-stream"
)

var pdfMagic = []byte("%PDF-")

// Router dispatches payloads to the extractor registered for their
// content type.
type Router struct {
	extractors map[string]Extractor
}

// NewRouter returns a router with no extractors registered.
func NewRouter() *Router {
	return &Router{extractors: make(map[string]Extractor)}
}

// NewDefaultRouter handles plain text, CSV and PDF.
func NewDefaultRouter(pdfMaxPages int) *Router {
	r := NewRouter()
	r.Register(PlainText{}, ContentTypePlain, ContentTypeCSV)
	r.Register(PDFText{MaxPages: pdfMaxPages}, ContentTypePDF)
	return r
}

// Register routes the given content types to e.
func (r *Router) Register(e Extractor, contentTypes ...string) {
	for _, ct := range contentTypes {
		r.extractors[NormalizeContentType(ct)] = e
	}
}

// ExtractText sniffs PDFs by their magic bytes, since uploads often arrive
// as application/octet-stream, then dispatches on the normalized type.
func (r *Router) ExtractText(data []byte, contentType string) (*Text, error) {
	ct := NormalizeContentType(contentType)
	if isPDFFormat(data) {
		ct = ContentTypePDF
	}
	e, ok := r.extractors[ct]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedContentType, contentType)
	}
	return e.ExtractText(data, ct)
}

// NormalizeContentType lowercases a media type and drops its parameters,
// so "Text/Plain; charset=utf-8" becomes "text/plain".
func NormalizeContentType(contentType string) string {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		return mediaType
	}
	mediaType, _, _ := strings.Cut(contentType, ";")
	return strings.TrimSpace(mediaType)
}

// ContentTypeFor resolves the content type of an upload, falling back to
// the file extension when the client sent none or a generic one.
func ContentTypeFor(filename, contentType string) string {
	ct := NormalizeContentType(contentType)
	if ct != "" && ct != ContentTypeUnknown {
		return ct
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".text":
		return ContentTypePlain
	case ".csv":
		return ContentTypeCSV
	case ".pdf":
		return ContentTypePDF
	default:
		return ContentTypeUnknown
	}
}

// isPDFFormat checks for the %PDF- header PDF files start with
func isPDFFormat(data []byte) bool {
	return bytes.HasPrefix(data, pdfMagic)
}
