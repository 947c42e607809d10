// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package app exposes the document assistant operations as typed calls over
// one configuration: upload, list, read, ask, steps, analyze, fill-template,
// to-pdf, plus info and history. The CLI is a thin layer over App; any other
// front end can drive the same calls.
package app

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/pdiddy/doc-assistant/internal/assist"
	"github.com/pdiddy/doc-assistant/internal/convert"
	"github.com/pdiddy/doc-assistant/internal/journal"
	"github.com/pdiddy/doc-assistant/internal/paginate"
	"github.com/pdiddy/doc-assistant/internal/store"
	"github.com/pdiddy/doc-assistant/pkg/types"
)

// Operation names, matching the CLI verbs.
const (
	OpUpload       = "upload"
	OpList         = "list"
	OpRead         = "read"
	OpAsk          = "ask"
	OpSteps        = "steps"
	OpAnalyze      = "analyze"
	OpFillTemplate = "fill-template"
	OpToPDF        = "to-pdf"
	OpInfo         = "info"
	OpHistory      = "history"
)

// App wires the store, extractor, paginator, prompt composer, and journal
// from one AppConfig. Components that need external tools or credentials
// (the converter and the language model backend) are built on first use,
// so offline operations work without them.
type App struct {
	cfg       types.AppConfig
	logger    *slog.Logger
	store     *store.Store
	paginator *paginate.Paginator
	journal   *journal.Journal

	converter convert.Converter
	backend   assist.Backend
	composer  *assist.Composer
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the logger shared by every component.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithBackend injects the language model backend instead of building one
// from cfg.LLM.
func WithBackend(b assist.Backend) Option {
	return func(a *App) { a.backend = b }
}

// WithConverter injects the text extractor instead of building one from
// cfg.Extraction.
func WithConverter(c convert.Converter) Option {
	return func(a *App) { a.converter = c }
}

// New builds an App. The store directory is created if needed and the
// journal is opened when enabled.
func New(cfg types.AppConfig, opts ...Option) (*App, error) {
	a := &App{cfg: cfg, logger: slog.Default()}
	for _, o := range opts {
		o(a)
	}

	st, err := store.New(cfg.Store, a.logger)
	if err != nil {
		return nil, err
	}
	a.store = st

	pg, err := paginate.New(cfg.PDF, a.logger)
	if err != nil {
		return nil, fmt.Errorf("configuring paginator: %w", err)
	}
	a.paginator = pg

	if cfg.Journal.Enabled {
		path := cfg.Journal.Path
		if path == "" {
			path = filepath.Join(st.Dir(), journal.DefaultFile)
		}
		j, err := journal.Open(path, a.logger)
		if err != nil {
			return nil, err
		}
		a.journal = j
	}
	return a, nil
}

// Close releases the journal.
func (a *App) Close() error {
	if a.journal == nil {
		return nil
	}
	return a.journal.Close()
}

// Config returns the configuration the App was built from.
func (a *App) Config() types.AppConfig { return a.cfg }

// Store returns the document store.
func (a *App) Store() *store.Store { return a.store }

func (a *App) getConverter(backend types.ExtractionBackend) (convert.Converter, error) {
	if backend != "" && backend != a.cfg.Extraction.Backend {
		ec := a.cfg.Extraction
		ec.Backend = backend
		return convert.New(ec)
	}
	if a.converter == nil {
		c, err := convert.New(a.cfg.Extraction)
		if err != nil {
			return nil, err
		}
		a.converter = c
	}
	return a.converter, nil
}

func (a *App) getComposer() (*assist.Composer, error) {
	if a.composer != nil {
		return a.composer, nil
	}
	if a.backend == nil {
		b, err := assist.NewBackend(a.cfg.LLM, a.logger)
		if err != nil {
			return nil, err
		}
		a.backend = b
	}
	opts := []assist.Option{
		assist.WithLogger(a.logger),
		assist.WithMaxRetries(a.cfg.LLM.MaxRetries),
	}
	if a.journal != nil {
		opts = append(opts, assist.WithRecorder(a.journal))
	}
	a.composer = assist.NewComposer(a.backend, opts...)
	return a.composer, nil
}
