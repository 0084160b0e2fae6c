package invoice

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zombor/invoice-lens/internal/extraction"
	"github.com/zombor/invoice-lens/internal/source"
)

// SourceText marks results parsed from text submitted directly.
const SourceText = "text"

// IDGenerator generates unique IDs for parse results
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

// uuidGenerator generates random (version 4) UUIDs
type uuidGenerator struct{}

func (g *uuidGenerator) Generate() string {
	return uuid.NewString()
}

// defaultTimeSource provides the current time
type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Result is one parsed document together with where it came from.
type Result struct {
	ID       string                    `json:"id"`
	Source   string                    `json:"source"`             // "text", or the kind of extractor used
	Filename string                    `json:"filename,omitempty"` // Sanitized upload name
	ParsedAt time.Time                 `json:"parsed_at"`
	Pages    int                       `json:"pages"`
	Invoice  *extraction.ParsedInvoice `json:"invoice"`
}

// Service turns documents into parsed invoices
type Service struct {
	extractor   source.Extractor
	logger      *slog.Logger
	idGenerator IDGenerator
	timeSource  TimeSource
}

// NewService creates a new Service with a UUID generator and the wall clock.
// A nil logger logs through slog.Default().
func NewService(extractor source.Extractor, logger *slog.Logger) *Service {
	return NewServiceWithDeps(extractor, logger, &uuidGenerator{}, &defaultTimeSource{})
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing
func NewServiceWithDeps(extractor source.Extractor, logger *slog.Logger, idGen IDGenerator, timeSrc TimeSource) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		extractor:   extractor,
		logger:      logger,
		idGenerator: idGen,
		timeSource:  timeSrc,
	}
}

// ParseText parses text that was already extracted by the caller.
func (s *Service) ParseText(text string, ocrQuality *int) (*Result, error) {
	return s.parse(text, ocrQuality, Result{Source: SourceText, Pages: 1})
}

// ParseDocument recovers the text of an uploaded document and parses it.
func (s *Service) ParseDocument(filename string, data []byte, contentType string, ocrQuality *int) (*Result, error) {
	cleanFilename := sanitizeFilename(filename)
	text, err := s.extractor.ExtractText(data, contentType)
	if err != nil {
		s.logger.Error("invoice.parse.failed",
			"filename", cleanFilename,
			"content_type", contentType,
			"file_size", len(data),
			"error", err,
		)
		return nil, fmt.Errorf("extracting text from %s: %w", cleanFilename, err)
	}
	return s.parse(text.Content, ocrQuality, Result{Source: text.Kind, Filename: cleanFilename, Pages: text.Pages})
}

func (s *Service) parse(text string, ocrQuality *int, result Result) (*Result, error) {
	result.ID = s.idGenerator.Generate()
	result.ParsedAt = s.timeSource.Now()

	inv, err := extraction.Parse(text, extraction.WithOCRQuality(ocrQuality))
	if err != nil {
		s.logger.Error("invoice.parse.failed", "id", result.ID, "source", result.Source, "error", err)
		return nil, fmt.Errorf("parsing invoice: %w", err)
	}
	result.Invoice = inv

	s.logger.Info("invoice.parse.ok",
		"id", result.ID,
		"source", result.Source,
		"merchant", inv.Merchant,
		"confidence", inv.Confidence,
		"issues", len(inv.Issues),
		"status", inv.Status(),
	)
	return &result, nil
}

var (
	reFilenameDisallowed = regexp.MustCompile(`[^a-zA-Z0-9\s\-_]`)
	reFilenameSpaces     = regexp.MustCompile(`\s+`)
)

// maxFilenameBase is the longest base name kept from an upload.
const maxFilenameBase = 50

// sanitizeFilename cleans up a filename by removing special characters and truncating length
func sanitizeFilename(filename string) string {
	filename = filepath.Base(filename)
	if filename == "." || filename == string(filepath.Separator) {
		filename = ""
	}
	ext := strings.ToLower(filepath.Ext(filename))
	base := strings.TrimSuffix(filename, filepath.Ext(filename))

	base = reFilenameDisallowed.ReplaceAllString(base, "")
	base = strings.TrimSpace(reFilenameSpaces.ReplaceAllString(base, " "))
	if len(base) > maxFilenameBase {
		base = strings.TrimSpace(base[:maxFilenameBase])
	}
	if base == "" {
		base = "document"
	}
	return base + ext
}
