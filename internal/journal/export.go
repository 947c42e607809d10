// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/doc-assistant/pkg/types"
)

// Format is a journal export encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// ParseFormat validates an export format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatYAML, FormatJSON, FormatXLSX:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown export format %q: use yaml, json, or xlsx", s)
}

// Ext returns the file extension for the format.
func (f Format) Ext() string { return "." + string(f) }

// ExportEntry is the export shape of one interaction.
type ExportEntry struct {
	ID          string  `json:"id" yaml:"id"`
	RequestID   string  `json:"request_id" yaml:"request_id"`
	Task        string  `json:"task" yaml:"task"`
	Document    string  `json:"document,omitempty" yaml:"document,omitempty"`
	Model       string  `json:"model" yaml:"model"`
	Input       string  `json:"input" yaml:"input"`
	PromptChars int     `json:"prompt_chars" yaml:"prompt_chars"`
	Response    string  `json:"response" yaml:"response"`
	Error       string  `json:"error,omitempty" yaml:"error,omitempty"`
	StartedAt   string  `json:"started_at" yaml:"started_at"`
	ElapsedSec  float64 `json:"elapsed_sec" yaml:"elapsed_sec"`
}

func toExport(in types.Interaction) ExportEntry {
	return ExportEntry{
		ID:          in.ID,
		RequestID:   in.RequestID,
		Task:        string(in.Task),
		Document:    in.Document,
		Model:       in.Model,
		Input:       in.Input,
		PromptChars: in.PromptChars,
		Response:    in.Response,
		Error:       in.Error,
		StartedAt:   in.StartedAt.UTC().Format(time.RFC3339),
		ElapsedSec:  in.Elapsed.Seconds(),
	}
}

// Export writes every entry matching q to w in the given format. A zero
// q.Limit exports everything.
func (j *Journal) Export(ctx context.Context, q Query, format Format, w io.Writer) (int, error) {
	if q.Limit == 0 {
		q.Limit = -1
	}
	entries, err := j.Recent(ctx, q)
	if err != nil {
		return 0, fmt.Errorf("querying for export: %w", err)
	}

	out := make([]ExportEntry, len(entries))
	for i, e := range entries {
		out[i] = toExport(e)
	}

	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		if err := enc.Encode(out); err != nil {
			return 0, fmt.Errorf("marshaling YAML: %w", err)
		}
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return 0, fmt.Errorf("marshaling JSON: %w", err)
		}
	case FormatXLSX:
		if err := writeXLSX(w, out); err != nil {
			return 0, err
		}
	default:
		return 0, fmt.Errorf("unknown export format %q", format)
	}
	return len(out), nil
}

const sheetName = "Interactions"

var xlsxHeaders = []string{
	"Started", "Task", "Document", "Model", "Input", "Prompt Chars",
	"Response", "Error", "Elapsed (s)", "Request ID",
}

func writeXLSX(w io.Writer, entries []ExportEntry) error {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(sheetName); err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	idx, _ := f.GetSheetIndex(sheetName)
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	for i, h := range xlsxHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for r, e := range entries {
		row := r + 2
		values := []any{
			e.StartedAt, e.Task, e.Document, e.Model, e.Input, e.PromptChars,
			e.Response, e.Error, e.ElapsedSec, e.RequestID,
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("writing row %d: %w", row, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
