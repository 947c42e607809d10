// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/pdiddy/doc-assistant/internal/ingest"
	"github.com/pdiddy/doc-assistant/internal/pdfinfo"
	"github.com/pdiddy/doc-assistant/internal/store"
	"github.com/pdiddy/doc-assistant/pkg/types"
)

// ErrNoDocuments is returned by List-dependent operations when the store
// holds no text documents.
var ErrNoDocuments = fmt.Errorf("no documents available, upload first: %w", types.ErrNotFound)

// UploadRequest imports PDFs into the store.
type UploadRequest struct {
	// Sources are local paths or http(s) URLs.
	Sources []string

	// Name overrides the stored name. Only valid with a single source.
	Name string

	// Backend overrides the configured extraction backend.
	Backend types.ExtractionBackend
}

// Upload imports every source and extracts its text. Progress lines go to w.
func (a *App) Upload(ctx context.Context, req UploadRequest, w io.Writer) ([]types.UploadResult, error) {
	if len(req.Sources) == 0 {
		return nil, errors.New("no sources given")
	}
	if req.Name != "" && len(req.Sources) > 1 {
		return nil, errors.New("a name can only be given for a single source")
	}
	conv, err := a.getConverter(req.Backend)
	if err != nil {
		return nil, err
	}
	in := ingest.New(a.store, conv, a.cfg.LLM.HTTPConfig, a.logger)

	if len(req.Sources) == 1 {
		r, err := in.Upload(ctx, req.Sources[0], req.Name)
		if err != nil {
			return nil, err
		}
		return []types.UploadResult{r}, nil
	}
	return in.UploadBatch(ctx, req.Sources, w)
}

// ListRequest filters store entries. Empty fields match everything.
type ListRequest struct {
	Suffix   string
	Contains string
}

// List returns matching entries sorted by name.
func (a *App) List(req ListRequest) ([]types.StoredDocument, error) {
	var filters []store.Filter
	if req.Suffix != "" {
		filters = append(filters, store.Suffix(req.Suffix))
	}
	if req.Contains != "" {
		filters = append(filters, store.Contains(req.Contains))
	}
	names, err := a.store.List(filters...)
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	docs := make([]types.StoredDocument, 0, len(names))
	for _, n := range names {
		d, err := a.store.Stat(n)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, nil
}

// TextDocuments returns the names of stored text documents, or
// ErrNoDocuments when there are none.
func (a *App) TextDocuments() ([]string, error) {
	names, err := a.store.List(store.Suffix(store.TextSuffix))
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, ErrNoDocuments
	}
	sort.Strings(names)
	return names, nil
}

// ReadRequest selects lines [Start, End) of a document. A nil End reads to
// the end.
type ReadRequest struct {
	Name  string
	Start int
	End   *int
}

// Read returns the selected lines joined by "\n".
func (a *App) Read(req ReadRequest) (string, error) {
	return a.store.Read(req.Name, types.LineRange{Start: req.Start, End: req.End})
}

// InfoResult describes a stored PDF.
type InfoResult struct {
	Name  string `json:"name" yaml:"name"`
	Pages int    `json:"pages" yaml:"pages"`
	Size  int64  `json:"size" yaml:"size"`
}

// Info reports the page count of a stored PDF.
func (a *App) Info(name string) (InfoResult, error) {
	doc, err := a.store.Stat(name)
	if err != nil {
		return InfoResult{}, err
	}
	path, err := a.store.Path(name)
	if err != nil {
		return InfoResult{}, err
	}
	pages, err := pdfinfo.PageCount(path)
	if err != nil {
		return InfoResult{}, fmt.Errorf("%s: %w: %w", name, types.ErrExtraction, err)
	}
	return InfoResult{Name: name, Pages: pages, Size: doc.Size}, nil
}
