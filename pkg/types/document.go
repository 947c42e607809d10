// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"strings"
	"time"
)

// StoredDocument describes one entry of the document store.
type StoredDocument struct {
	// Name is the file name, unique within the store directory.
	Name string `json:"name" yaml:"name"`

	// Size is the content length in bytes.
	Size int64 `json:"size" yaml:"size"`

	// Lines is the number of text lines (a trailing newline does not start
	// a new line).
	Lines int `json:"lines" yaml:"lines"`

	// ModTime is the last full overwrite.
	ModTime time.Time `json:"mod_time" yaml:"mod_time"`
}

// LineRange selects lines [Start, End) of a document. A nil End means
// "to the end".
type LineRange struct {
	Start int
	End   *int
}

// AllLines selects the whole document.
func AllLines() LineRange {
	return LineRange{}
}

// LinesFrom selects lines from start to the end of the document.
func LinesFrom(start int) LineRange {
	return LineRange{Start: start}
}

// LinesBetween selects lines [start, end).
func LinesBetween(start, end int) LineRange {
	return LineRange{Start: start, End: &end}
}

// SplitLines splits text into lines the way a text file is iterated: "\n"
// terminates a line, a trailing "\r" is dropped, and a final newline does
// not produce an extra empty line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// UploadResult reports the outcome of importing one PDF into the store.
type UploadResult struct {
	// Source is the local path or URL the PDF came from.
	Source string `json:"source" yaml:"source"`

	// PDFName is the store name of the imported PDF.
	PDFName string `json:"pdf_name" yaml:"pdf_name"`

	// TextName is the store name of the extracted text.
	TextName string `json:"text_name" yaml:"text_name"`

	// Pages is the PDF page count (0 when it could not be determined).
	Pages int `json:"pages" yaml:"pages"`

	// Lines is the line count of the extracted text.
	Lines int `json:"lines" yaml:"lines"`
}
