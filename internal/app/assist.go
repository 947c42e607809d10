// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package app

import (
	"context"

	"github.com/pdiddy/doc-assistant/internal/assist"
)

// AskRequest asks a question about one stored document.
type AskRequest struct {
	Document string
	Question string
}

// Ask answers a question using only the document's text.
func (a *App) Ask(ctx context.Context, req AskRequest) (string, error) {
	doc, err := a.loadDocument(req.Document)
	if err != nil {
		return "", err
	}
	c, err := a.getComposer()
	if err != nil {
		return "", err
	}
	return c.Ask(ctx, *doc, req.Question)
}

// StepsRequest asks for step-by-step instructions. Document is optional
// context.
type StepsRequest struct {
	Process  string
	Document string
}

// Steps returns instructions for a named process.
func (a *App) Steps(ctx context.Context, req StepsRequest) (string, error) {
	doc, err := a.optionalDocument(req.Document)
	if err != nil {
		return "", err
	}
	c, err := a.getComposer()
	if err != nil {
		return "", err
	}
	return c.Steps(ctx, req.Process, doc)
}

// AnalyzeRequest describes a situation to analyze. Document is optional
// context.
type AnalyzeRequest struct {
	Situation string
	Document  string
}

// Analyze explains a situation and proposes a practical solution.
func (a *App) Analyze(ctx context.Context, req AnalyzeRequest) (string, error) {
	doc, err := a.optionalDocument(req.Document)
	if err != nil {
		return "", err
	}
	c, err := a.getComposer()
	if err != nil {
		return "", err
	}
	return c.Analyze(ctx, req.Situation, doc)
}

func (a *App) loadDocument(name string) (*assist.Document, error) {
	text, err := a.store.ReadAll(name)
	if err != nil {
		return nil, err
	}
	return &assist.Document{Name: name, Text: text}, nil
}

func (a *App) optionalDocument(name string) (*assist.Document, error) {
	if name == "" {
		return nil, nil
	}
	return a.loadDocument(name)
}
