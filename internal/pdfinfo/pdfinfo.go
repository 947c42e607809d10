// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdfinfo reads structural facts (page count) from PDF files.
package pdfinfo

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

func init() {
	// Keep pdfcpu from creating a configuration directory under $HOME.
	api.DisableConfigDir()
}

// PageCount returns the number of pages of the PDF at path.
func PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("counting pages of %s: %w", path, err)
	}
	return n, nil
}

// PageCountBytes returns the number of pages of an in-memory PDF.
func PageCountBytes(data []byte) (int, error) {
	n, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		return 0, fmt.Errorf("counting pages: %w", err)
	}
	return n, nil
}
