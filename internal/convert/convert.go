// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert extracts plain text from PDF files with pluggable backends.
//
// Every backend produces the text of each page, in page order, followed by
// a newline (the last page included). Extracted text is passed through as
// the backend returns it; ligatures and column order are not corrected.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pdiddy/doc-assistant/internal/container"
	"github.com/pdiddy/doc-assistant/pkg/types"
)

// Converter transforms a PDF file into plain text. Different backends
// (native, markitdown) implement this interface.
type Converter interface {
	// Convert reads a PDF at pdfPath and returns its text. Failures wrap
	// types.ErrExtraction.
	Convert(ctx context.Context, pdfPath string) (string, error)
}

// New returns the converter selected by cfg.Backend.
func New(cfg types.ExtractionConfig) (Converter, error) {
	switch cfg.Backend {
	case types.BackendNative, "":
		return NativeConverter{}, nil
	case types.BackendMarkitdown:
		rt, err := container.DetectRuntime()
		if err != nil {
			return nil, fmt.Errorf("markitdown backend: %w", err)
		}
		return NewMarkitdownConverter(rt, cfg.Image)
	default:
		return nil, fmt.Errorf("unknown extraction backend %q: use native or markitdown", cfg.Backend)
	}
}

// checkReadable returns an extraction error when pdfPath cannot be opened.
func checkReadable(pdfPath string) error {
	f, err := os.Open(pdfPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w: %w", pdfPath, types.ErrExtraction, err)
		}
		return fmt.Errorf("opening %s: %w: %w", pdfPath, types.ErrExtraction, err)
	}
	return f.Close()
}
