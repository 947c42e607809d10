// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"path/filepath"
	"strings"
)

// TextSuffix is the suffix of extracted and filled text entries.
const TextSuffix = ".txt"

// PDFSuffix is the suffix of uploaded and generated PDFs.
const PDFSuffix = ".pdf"

// Filter selects store names.
type Filter func(name string) bool

// Suffix accepts names ending in suffix. An empty suffix accepts everything.
func Suffix(suffix string) Filter {
	return func(name string) bool {
		return strings.HasSuffix(name, suffix)
	}
}

// Contains accepts names containing substr.
func Contains(substr string) Filter {
	return func(name string) bool {
		return strings.Contains(name, substr)
	}
}

// All accepts names accepted by every filter.
func All(filters ...Filter) Filter {
	return func(name string) bool {
		for _, f := range filters {
			if f != nil && !f(name) {
				return false
			}
		}
		return true
	}
}

// IsText reports whether name is a text entry.
func IsText(name string) bool {
	return strings.HasSuffix(name, TextSuffix)
}

// TextName returns the text entry derived from name by replacing its
// extension with .txt ("report.pdf" -> "report.txt").
func TextName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + TextSuffix
}

// PDFName returns the PDF entry for an output base name. A trailing .txt or
// .pdf extension is replaced.
func PDFName(name string) string {
	switch filepath.Ext(name) {
	case TextSuffix, PDFSuffix:
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	return name + PDFSuffix
}
