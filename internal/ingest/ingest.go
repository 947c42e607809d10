// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest imports PDFs into the document store and writes the
// extracted text alongside them.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pdiddy/doc-assistant/internal/convert"
	"github.com/pdiddy/doc-assistant/internal/httputil"
	"github.com/pdiddy/doc-assistant/internal/pdfinfo"
	"github.com/pdiddy/doc-assistant/internal/store"
	"github.com/pdiddy/doc-assistant/pkg/types"
)

const (
	stagePattern    = "doc-assistant-upload-*.pdf"
	downloadRetries = 3
)

// Ingester copies PDFs into a store and extracts their text.
type Ingester struct {
	store     *store.Store
	converter convert.Converter
	client    *http.Client
	userAgent string
	logger    *slog.Logger
}

// New returns an Ingester. httpCfg configures URL downloads.
func New(st *store.Store, conv convert.Converter, httpCfg types.HTTPConfig, logger *slog.Logger) *Ingester {
	if logger == nil {
		logger = slog.Default()
	}
	ua := httpCfg.UserAgent
	if ua == "" {
		ua = types.DefaultConfig().LLM.UserAgent
	}
	return &Ingester{
		store:     st,
		converter: conv,
		client:    &http.Client{Timeout: httpCfg.Timeout},
		userAgent: ua,
		logger:    logger,
	}
}

// IsURL reports whether source is an http(s) URL.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Upload imports source (a local path or http(s) URL) into the store under
// name, or under the source's base name when name is empty. The extracted
// text is written to the same name with a .txt suffix.
//
// The PDF is staged and extracted outside the store first, so a source that
// cannot be fetched or extracted leaves the store untouched. If the text
// cannot be written the imported PDF is removed again.
func (in *Ingester) Upload(ctx context.Context, source, name string) (types.UploadResult, error) {
	result := types.UploadResult{Source: source}
	if name == "" {
		name = baseName(source)
	}
	if !strings.HasSuffix(strings.ToLower(name), store.PDFSuffix) {
		name += store.PDFSuffix
	}
	result.PDFName = name
	result.TextName = store.TextName(name)
	if _, err := in.store.Path(name); err != nil {
		return result, err
	}

	staged, err := os.CreateTemp("", stagePattern)
	if err != nil {
		return result, fmt.Errorf("staging %s: %w: %w", source, types.ErrIO, err)
	}
	stagedPath := staged.Name()
	defer os.Remove(stagedPath)

	if IsURL(source) {
		err = in.download(ctx, source, staged)
	} else {
		err = copyLocal(source, staged)
	}
	if closeErr := staged.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("staging %s: %w: %w", source, types.ErrIO, closeErr)
	}
	if err != nil {
		return result, err
	}

	text, err := in.converter.Convert(ctx, stagedPath)
	if err != nil {
		return result, err
	}
	result.Lines = len(types.SplitLines(text))
	if pages, err := pdfinfo.PageCount(stagedPath); err != nil {
		in.logger.Warn("ingest.page_count", "name", name, "error", err)
	} else {
		result.Pages = pages
	}

	if err := in.importFile(name, stagedPath); err != nil {
		return result, err
	}
	if err := in.store.Write(result.TextName, text); err != nil {
		if rmErr := in.store.Remove(name); rmErr != nil {
			in.logger.Warn("ingest.rollback", "name", name, "error", rmErr)
		}
		return result, err
	}

	in.logger.Info("ingest.upload",
		"source", source,
		"pdf", result.PDFName,
		"text", result.TextName,
		"pages", result.Pages,
		"lines", result.Lines,
	)
	return result, nil
}

func (in *Ingester) importFile(name, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening staged %s: %w: %w", name, types.ErrIO, err)
	}
	defer f.Close()
	return in.store.Import(name, f)
}

// UploadBatch uploads every source, printing progress to w, and returns the
// successful results. Failures are reported and counted but do not stop the
// batch; the returned error summarizes them.
func (in *Ingester) UploadBatch(ctx context.Context, sources []string, w io.Writer) ([]types.UploadResult, error) {
	var results []types.UploadResult
	var failed int
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		r, err := in.Upload(ctx, src, "")
		if err != nil {
			failed++
			fmt.Fprintf(w, "  failed: %s: %v\n", src, err)
			continue
		}
		fmt.Fprintf(w, "  uploaded: %s -> %s (%d pages, %d lines)\n", src, r.TextName, r.Pages, r.Lines)
		results = append(results, r)
	}

	fmt.Fprintf(w, "Upload complete: %d uploaded, %d failed\n", len(results), failed)
	if failed > 0 {
		return results, fmt.Errorf("%d of %d uploads failed", failed, len(sources))
	}
	return results, nil
}

func copyLocal(source string, dst io.Writer) error {
	f, err := os.Open(source)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w", source, types.ErrNotFound)
		}
		return fmt.Errorf("opening %s: %w: %w", source, types.ErrIO, err)
	}
	defer f.Close()
	if _, err := io.Copy(dst, f); err != nil {
		return fmt.Errorf("copying %s: %w: %w", source, types.ErrIO, err)
	}
	return nil
}

// download fetches url into dst.
func (in *Ingester) download(ctx context.Context, rawURL string, dst io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", in.userAgent)
	req.Header.Set("Accept", "application/pdf")

	resp, err := httputil.DoWithRetry(ctx, in.client, req, downloadRetries, in.logger)
	if err != nil {
		return fmt.Errorf("downloading %s: %w: %w", rawURL, types.ErrIO, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s: %w", rawURL, types.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s: %w", resp.StatusCode, rawURL, types.ErrIO)
	}
	if _, err := io.Copy(dst, resp.Body); err != nil {
		return fmt.Errorf("downloading %s: %w: %w", rawURL, types.ErrIO, err)
	}
	return nil
}

// baseName derives a store name from a local path or URL.
func baseName(source string) string {
	if IsURL(source) {
		if u, err := url.Parse(source); err == nil {
			if b := path.Base(u.Path); b != "." && b != "/" && b != "" {
				return b
			}
			return u.Hostname()
		}
	}
	return filepath.Base(source)
}
