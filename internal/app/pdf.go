// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package app

import (
	"fmt"

	"github.com/pdiddy/doc-assistant/internal/paginate"
	"github.com/pdiddy/doc-assistant/internal/store"
	"github.com/pdiddy/doc-assistant/pkg/types"
)

// ToPDFRequest renders a stored text document as a PDF.
type ToPDFRequest struct {
	// Name is the store name of the text document.
	Name string

	// Output is the base name of the PDF; ".pdf" is appended. Empty uses
	// Name without its .txt suffix.
	Output string

	// Geometry overrides the configured page geometry when non-nil.
	Geometry *types.PageGeometry
}

// ToPDFResult reports a generated PDF.
type ToPDFResult struct {
	Name  string `json:"name" yaml:"name"`
	Path  string `json:"path" yaml:"path"`
	Pages int    `json:"pages" yaml:"pages"`
}

// ToPDF paginates the document into a PDF inside the store. Only text
// entries are accepted, and the output never replaces the source.
func (a *App) ToPDF(req ToPDFRequest) (ToPDFResult, error) {
	src, err := a.store.Path(req.Name)
	if err != nil {
		return ToPDFResult{}, err
	}
	if !store.IsText(req.Name) {
		return ToPDFResult{}, fmt.Errorf("%s is not a %s document: %w", req.Name, store.TextSuffix, types.ErrInvalidName)
	}
	if !a.store.Exists(req.Name) {
		return ToPDFResult{}, fmt.Errorf("%s: %w: %w", req.Name, types.ErrIO, types.ErrNotFound)
	}

	out := req.Output
	if out == "" {
		out = req.Name
	}
	name := store.PDFName(out)
	dst, err := a.store.Path(name)
	if err != nil {
		return ToPDFResult{}, err
	}
	if dst == src {
		return ToPDFResult{}, fmt.Errorf("output %s would overwrite its source: %w", name, types.ErrInvalidName)
	}

	pg := a.paginator
	if req.Geometry != nil {
		cfg := a.cfg.PDF
		cfg.PageGeometry = *req.Geometry
		if pg, err = paginate.New(cfg, a.logger); err != nil {
			return ToPDFResult{}, err
		}
	}

	pages, err := pg.RenderFile(src, dst)
	if err != nil {
		return ToPDFResult{}, err
	}
	return ToPDFResult{Name: name, Path: dst, Pages: pages}, nil
}
