package exporter

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"supstats/internal/errors"
)

// utf8BOM marks report files as UTF-8 for Excel and Notepad.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// TextWriter writes report text files
type TextWriter struct {
	logger *slog.Logger
}

// NewTextWriter creates a new text writer instance
func NewTextWriter(logger *slog.Logger) *TextWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &TextWriter{logger: logger}
}

// WriteOptions configures report writing behavior
type WriteOptions struct {
	Dir       string
	Filename  string
	Content   string
	BOMPrefix bool // prepend a UTF-8 BOM
}

// Write persists the content under options.Dir, creating the directory
// if needed, and returns the full path of the written file.
func (w *TextWriter) Write(ctx context.Context, options WriteOptions) (string, error) {
	if options.Filename == "" {
		return "", errors.NewValidationError("output filename must not be empty")
	}
	fullPath := filepath.Join(options.Dir, options.Filename)

	w.logger.InfoContext(ctx, "writing report file",
		slog.String("path", fullPath),
		slog.Int("bytes", len(options.Content)))

	if err := os.MkdirAll(options.Dir, 0755); err != nil {
		return "", errors.NewStorageError("failed to create output directory", err).
			WithContext("dir", options.Dir)
	}

	file, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return "", errors.NewStorageError("failed to create report file", err).
			WithContext("path", fullPath)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write(utf8BOM); err != nil {
			return "", errors.NewStorageError("failed to write BOM", err).
				WithContext("path", fullPath)
		}
	}
	if _, err := file.WriteString(options.Content); err != nil {
		return "", errors.NewStorageError("failed to write report content", err).
			WithContext("path", fullPath)
	}

	return fullPath, nil
}
