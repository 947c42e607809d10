// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pdiddy/doc-assistant/internal/journal"
	"github.com/pdiddy/doc-assistant/pkg/types"
)

// ErrJournalDisabled is returned by history operations when the journal is
// turned off.
var ErrJournalDisabled = errors.New("journal is disabled (journal.enabled=false)")

// History returns recent language model interactions, newest first.
func (a *App) History(ctx context.Context, q journal.Query) ([]types.Interaction, error) {
	if a.journal == nil {
		return nil, ErrJournalDisabled
	}
	return a.journal.Recent(ctx, q)
}

// ExportRequest writes the journal to a store entry.
type ExportRequest struct {
	Query  journal.Query
	Format journal.Format

	// Output is the store name; empty uses history-<timestamp>.<format>.
	Output string
}

// ExportResult reports a journal export.
type ExportResult struct {
	Name    string `json:"name" yaml:"name"`
	Entries int    `json:"entries" yaml:"entries"`
}

// ExportHistory exports matching interactions into the store.
func (a *App) ExportHistory(ctx context.Context, req ExportRequest) (ExportResult, error) {
	if a.journal == nil {
		return ExportResult{}, ErrJournalDisabled
	}
	name := req.Output
	if name == "" {
		name = fmt.Sprintf("history-%s%s", time.Now().UTC().Format("20060102-150405"), req.Format.Ext())
	}

	var buf bytes.Buffer
	n, err := a.journal.Export(ctx, req.Query, req.Format, &buf)
	if err != nil {
		return ExportResult{}, err
	}
	if err := a.store.Import(name, &buf); err != nil {
		return ExportResult{}, err
	}
	return ExportResult{Name: name, Entries: n}, nil
}
