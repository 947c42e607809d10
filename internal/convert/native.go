// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/pdiddy/doc-assistant/pkg/types"
)

// NativeConverter extracts text in-process with github.com/ledongthuc/pdf.
type NativeConverter struct{}

// Convert returns the plain text of every page, each followed by "\n".
// Pages without a content dictionary contribute an empty line.
func (NativeConverter) Convert(ctx context.Context, pdfPath string) (text string, err error) {
	if err := checkReadable(pdfPath); err != nil {
		return "", err
	}

	// The parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("parsing %s: %w: %v", pdfPath, types.ErrExtraction, r)
		}
	}()

	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("parsing %s: %w: %w", pdfPath, types.ErrExtraction, err)
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := r.Page(i)
		if !page.V.IsNull() {
			pageText, err := page.GetPlainText(nil)
			if err != nil {
				return "", fmt.Errorf("extracting page %d of %s: %w: %w", i, pdfPath, types.ErrExtraction, err)
			}
			b.WriteString(pageText)
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}
