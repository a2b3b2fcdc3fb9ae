// Package export renders analysis results as Markdown or JSON, to a
// file or any writer.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Format represents the export format.
type Format string

const (
	// FormatMarkdown represents Markdown export format.
	FormatMarkdown Format = "markdown"
	// FormatJSON represents JSON export format.
	FormatJSON Format = "json"
)

// ParseFormat maps a CLI format name to a Format.
func ParseFormat(s string) (Format, bool) {
	switch s {
	case "markdown", "md":
		return FormatMarkdown, true
	case "json":
		return FormatJSON, true
	}
	return "", false
}

// Extension returns the file extension for the format.
func (f Format) Extension() string {
	if f == FormatMarkdown {
		return "md"
	}
	return string(f)
}

// Options holds configuration for export operations.
type Options struct {
	Format    Format
	FilePath  string
	Overwrite bool
}

// Exporter writes analysis results in the configured format.
type Exporter struct {
	opts Options
}

// NewExporter creates a new Exporter with the given options.
func NewExporter(opts Options) *Exporter {
	return &Exporter{opts: opts}
}

// export renders data to the configured file. renderMarkdown produces
// the Markdown body; JSON goes through encoding/json directly.
func (e *Exporter) export(data any, renderMarkdown func(io.Writer) error) (err error) {
	file, fileErr := e.createFile()
	if fileErr != nil {
		return fileErr
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	return writeTo(file, e.opts.Format, data, renderMarkdown)
}

func writeTo(w io.Writer, format Format, data any, renderMarkdown func(io.Writer) error) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(data)
	case FormatMarkdown:
		return renderMarkdown(w)
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
}

// createFile creates the output file, handling overwrite settings.
func (e *Exporter) createFile() (*os.File, error) {
	dir := filepath.Dir(e.opts.FilePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	if _, err := os.Stat(e.opts.FilePath); err == nil && !e.opts.Overwrite {
		return nil, fmt.Errorf("file already exists: %s (use overwrite option to replace)", e.opts.FilePath)
	}

	file, err := os.Create(e.opts.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	return file, nil
}

// GenerateFilename generates a default filename for an export type.
func GenerateFilename(exportType string, format Format) string {
	timestamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("%s_%s.%s", exportType, timestamp, format.Extension())
}
