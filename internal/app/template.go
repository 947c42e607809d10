// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package app

import (
	"context"

	"github.com/pdiddy/doc-assistant/internal/fill"
	"github.com/pdiddy/doc-assistant/pkg/types"
)

// FillRequest fills a stored template.
type FillRequest struct {
	// Template is the store name of the template text.
	Template string

	// Values maps field keys to replacement values.
	Values types.Values

	// Output is the store name of the result (default filled_template.txt).
	Output string

	// Polish rewrites the merged text with the language model.
	Polish bool

	// Verify fails a polish that lost any merged value.
	Verify bool
}

// FillResult reports a filled template.
type FillResult struct {
	Output   string                `json:"output" yaml:"output"`
	Text     string                `json:"text" yaml:"text"`
	Fields   []types.TemplateField `json:"fields" yaml:"fields"`
	Polished bool                  `json:"polished" yaml:"polished"`

	// Missing lists fields whose values do not occur in the polished text.
	Missing []types.TemplateField `json:"missing,omitempty" yaml:"missing,omitempty"`
}

// Fields returns the fields detected in a stored template, in line order.
func (a *App) Fields(template string) ([]types.TemplateField, error) {
	text, err := a.store.ReadAll(template)
	if err != nil {
		return nil, err
	}
	return fill.Fields(text), nil
}

// FillTemplate merges values into the template and writes the result. With
// Polish the language model output is written instead, trimmed. Polished
// text is compared against the merged values; with Verify any loss is an
// error and nothing is written.
func (a *App) FillTemplate(ctx context.Context, req FillRequest) (FillResult, error) {
	text, err := a.store.ReadAll(req.Template)
	if err != nil {
		return FillResult{}, err
	}

	merged := fill.Merge(text, req.Values)
	res := FillResult{
		Output: req.Output,
		Text:   merged.String(),
		Fields: merged.Fields,
	}
	if res.Output == "" {
		res.Output = fill.DefaultOutput
	}

	if req.Polish {
		c, err := a.getComposer()
		if err != nil {
			return FillResult{}, err
		}
		polished, err := c.Polish(ctx, req.Template, res.Text)
		if err != nil {
			return FillResult{}, err
		}
		res.Text = polished
		res.Polished = true
		res.Missing = fill.Missing(merged, polished)
		if len(res.Missing) > 0 {
			a.logger.Warn("fill.polish.missing_values", "template", req.Template, "count", len(res.Missing))
			if req.Verify {
				return res, fill.MissingError(res.Missing)
			}
		}
	}

	if err := a.store.Write(res.Output, res.Text); err != nil {
		return FillResult{}, err
	}
	return res, nil
}
