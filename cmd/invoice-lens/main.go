package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/zombor/invoice-lens/internal/invoice"
	"github.com/zombor/invoice-lens/internal/source"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

const shutdownTimeout = 10 * time.Second

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			fmt.Println(version)
			os.Exit(0)
		}
	}

	fs := ff.NewFlagSet("invoice-lens")
	var (
		port        = fs.IntLong("port", 8080, "HTTP server port")
		authUser    = fs.StringLong("auth-user", "", "Basic auth username (optional)")
		authPass    = fs.StringLong("auth-pass", "", "Basic auth password (optional)")
		maxUploadMB = fs.IntLong("max-upload-mb", 20, "Maximum upload size in megabytes")
		pdfMaxPages = fs.IntLong("pdf-max-pages", source.DefaultPDFMaxPages, "Maximum PDF pages to read")
		ocrQuality  = fs.IntLong("ocr-quality", -1, "OCR quality hint 0-100 for files parsed from the command line (-1 for none)")
		pretty      = fs.BoolLong("pretty", "Indent JSON printed for files parsed from the command line")
		showVersion = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("INVOICE_LENS"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Check version flag after parsing
	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	router := source.NewDefaultRouter(*pdfMaxPages)
	service := invoice.NewService(router, slog.Default())

	// Files on the command line are parsed once and printed
	if files := fs.GetArgs(); len(files) > 0 {
		var hint *int
		if *ocrQuality >= 0 {
			hint = ocrQuality
		}
		if err := parseFiles(os.Stdout, service, files, hint, *pretty); err != nil {
			slog.Error("Failed to parse files", "error", err)
			os.Exit(1)
		}
		return
	}

	server := invoice.NewServer(service, invoice.ServerConfig{
		BasicAuth: invoice.BasicAuth{
			Username: *authUser,
			Password: *authPass,
		},
		MaxUploadBytes: int64(*maxUploadMB) << 20,
		Version:        version,
	})

	addr := fmt.Sprintf(":%d", *port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in goroutine
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("Server started", "address", fmt.Sprintf("http://localhost%s", addr), "version", version)
	if *authUser != "" || *authPass != "" {
		slog.Info("Basic auth enabled", "user", *authUser)
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		slog.Error("Shutdown error", "error", err)
	}
}

// parseFiles parses each file and writes one JSON result per file to w.
// Every file is attempted; the first failure is returned.
func parseFiles(w io.Writer, service *invoice.Service, files []string, hint *int, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}

	var firstErr error
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err == nil {
			var result *invoice.Result
			contentType := source.ContentTypeFor(path, "")
			result, err = service.ParseDocument(filepath.Base(path), data, contentType, hint)
			if err == nil {
				err = enc.Encode(result)
			}
		}
		if err != nil {
			slog.Error("Failed to parse file", "path", path, "error", err)
			if firstErr == nil {
				firstErr = fmt.Errorf("parsing %s: %w", path, err)
			}
		}
	}
	return firstErr
}
