package invoice

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/zombor/invoice-lens/internal/extraction"
	"github.com/zombor/invoice-lens/internal/source"
)

// setCORSHeaders sets CORS headers on a response
func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	w.Header().Set("Access-Control-Max-Age", "3600")
}

// writeJSON writes v as a JSON response with the given status
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// writeError writes an {"error": message} JSON response
func writeError(w http.ResponseWriter, message string, code int) {
	writeJSON(w, code, map[string]string{"error": message})
}

// statusForError maps service errors to HTTP status codes
func statusForError(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, extraction.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, source.ErrUnsupportedContentType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, source.ErrNoText), errors.Is(err, source.ErrMalformedDocument):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// handleHealth reports liveness and the running version
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": s.config.Version,
	})
}

// parseTextRequest is the body of POST /api/parse
type parseTextRequest struct {
	Text       *string `json:"text"`
	OCRQuality *int    `json:"ocrQuality"`
}

// handleParseText parses text submitted as JSON
func (s *Server) handleParseText(w http.ResponseWriter, r *http.Request) {
	var req parseTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if statusForError(err) == http.StatusRequestEntityTooLarge {
			writeError(w, "Request body is too large", http.StatusRequestEntityTooLarge)
			return
		}
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Text == nil {
		writeError(w, "text is required", http.StatusBadRequest)
		return
	}

	result, err := s.service.ParseText(*req.Text, req.OCRQuality)
	if err != nil {
		writeError(w, err.Error(), statusForError(err))
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleParseDocument parses an uploaded document
func (s *Server) handleParseDocument(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.config.MaxUploadBytes); err != nil {
		slog.Error("Error parsing multipart form", "error", err)
		if statusForError(err) == http.StatusRequestEntityTooLarge {
			writeError(w, "File is too large", http.StatusRequestEntityTooLarge)
			return
		}
		writeError(w, "Error parsing form", http.StatusBadRequest)
		return
	}

	ocrQuality, err := formOCRQuality(r)
	if err != nil {
		writeError(w, "ocrQuality must be an integer", http.StatusBadRequest)
		return
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		errorMsg := "No file provided"
		if errors.Is(err, http.ErrMissingFile) {
			errorMsg = "No file was selected. Please choose a file to upload."
		}
		writeError(w, errorMsg, http.StatusBadRequest)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		slog.Error("Error reading file data", "error", err, "filename", header.Filename)
		writeError(w, "Error reading file. Please try again.", http.StatusInternalServerError)
		return
	}

	contentType := source.ContentTypeFor(header.Filename, header.Header.Get("Content-Type"))
	result, err := s.service.ParseDocument(header.Filename, data, contentType, ocrQuality)
	if err != nil {
		writeError(w, err.Error(), statusForError(err))
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// formOCRQuality reads the optional ocrQuality form value
func formOCRQuality(r *http.Request) (*int, error) {
	raw := r.FormValue("ocrQuality")
	if raw == "" {
		return nil, nil
	}
	q, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &q, nil
}
