// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package assist composes the fixed prompt shapes (question answering, step
// lists, situation analysis, template polish) and sends them to a chat
// completion backend.
//
// The backend is a black box: responses are returned as the model produced
// them. Polished templates in particular are not checked against the merged
// values here; callers that need exact values use the raw merge or
// fill.Missing.
package assist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/doc-assistant/internal/httputil"
	"github.com/pdiddy/doc-assistant/pkg/types"
)

// backoffBase controls the base duration for exponential backoff. Tests
// override this to avoid real sleeps.
var backoffBase = time.Second

// Recorder receives every completed interaction. The journal implements it.
type Recorder interface {
	Record(ctx context.Context, in types.Interaction) error
}

// Composer builds prompts and calls the backend with bounded retry.
type Composer struct {
	backend    Backend
	recorder   Recorder
	maxRetries int
	log        *slog.Logger
	now        func() time.Time
}

// Option configures a Composer.
type Option func(*Composer)

// WithRecorder records each interaction.
func WithRecorder(r Recorder) Option {
	return func(c *Composer) { c.recorder = r }
}

// WithMaxRetries sets the number of retries after a transient failure
// (default 3). Zero disables retries.
func WithMaxRetries(n int) Option {
	return func(c *Composer) {
		if n >= 0 {
			c.maxRetries = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Composer) {
		if l != nil {
			c.log = l
		}
	}
}

// NewComposer returns a Composer over backend.
func NewComposer(backend Backend, opts ...Option) *Composer {
	c := &Composer{
		backend:    backend,
		maxRetries: 3,
		log:        slog.Default(),
		now:        time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Ask answers question from the document text only.
func (c *Composer) Ask(ctx context.Context, doc Document, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", errors.New("question is empty")
	}
	msgs, err := AskMessages(doc, question)
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}
	return c.complete(ctx, types.TaskAsk, doc.Name, question, msgs)
}

// Steps returns step-by-step instructions for a named process. doc may be nil.
func (c *Composer) Steps(ctx context.Context, process string, doc *Document) (string, error) {
	if strings.TrimSpace(process) == "" {
		return "", errors.New("process is empty")
	}
	msgs, err := StepsMessages(process, doc)
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}
	return c.complete(ctx, types.TaskSteps, docName(doc), process, msgs)
}

// Analyze explains a situation and proposes a practical solution. doc may be nil.
func (c *Composer) Analyze(ctx context.Context, situation string, doc *Document) (string, error) {
	if strings.TrimSpace(situation) == "" {
		return "", errors.New("situation is empty")
	}
	msgs, err := AnalyzeMessages(situation, doc)
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}
	return c.complete(ctx, types.TaskAnalyze, docName(doc), situation, msgs)
}

// Polish rewrites merged template text for prose quality. The result is
// trimmed of surrounding whitespace.
func (c *Composer) Polish(ctx context.Context, templateName, merged string) (string, error) {
	msgs, err := PolishMessages(merged)
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}
	out, err := c.complete(ctx, types.TaskPolish, templateName, merged, msgs)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (c *Composer) complete(ctx context.Context, task types.Task, doc, input string, msgs []types.Message) (string, error) {
	in := types.Interaction{
		ID:          uuid.New().String(),
		RequestID:   uuid.New().String(),
		Task:        task,
		Document:    doc,
		Model:       c.backend.Model(),
		Input:       input,
		PromptChars: promptChars(msgs),
		StartedAt:   c.now().UTC(),
	}
	c.log.Info("assist.complete.start",
		"req_id", in.RequestID,
		"task", task,
		"doc", doc,
		"prompt_chars", in.PromptChars,
	)

	out, err := c.callWithRetry(ctx, msgs)
	in.Elapsed = c.now().UTC().Sub(in.StartedAt)
	in.Response = out
	if err != nil {
		in.Error = err.Error()
	}
	c.record(ctx, in)

	if err != nil {
		c.log.Error("assist.complete.error", "req_id", in.RequestID, "task", task, "error", err)
		return "", err
	}
	c.log.Info("assist.complete.ok",
		"req_id", in.RequestID,
		"task", task,
		"elapsed_ms", in.Elapsed.Milliseconds(),
	)
	return out, nil
}

// record stores the interaction. Journal failures are logged and never fail
// the call.
func (c *Composer) record(ctx context.Context, in types.Interaction) {
	if c.recorder == nil {
		return
	}
	if err := c.recorder.Record(context.WithoutCancel(ctx), in); err != nil {
		c.log.Warn("assist.record", "req_id", in.RequestID, "error", err)
	}
}

// callWithRetry calls the backend, retrying transient failures (rate
// limits, overloaded or unreachable servers) with exponential backoff or the
// server's Retry-After. Permanent failures such as a rejected key or a
// malformed request return at once. The final error always wraps
// ErrExternalService.
func (c *Composer) callWithRetry(ctx context.Context, msgs []types.Message) (string, error) {
	for attempt := 0; ; attempt++ {
		out, err := c.backend.Complete(ctx, msgs)
		if err == nil {
			return out, nil
		}
		if ctx.Err() != nil || attempt >= c.maxRetries || !httputil.Transient(err) {
			return "", serviceError(err)
		}

		backoff := time.Duration(math.Pow(2, float64(attempt))) * backoffBase
		if d, ok := httputil.RetryAfterOf(err); ok {
			backoff = d
		}
		c.log.Warn("assist.complete.retry", "attempt", attempt+1, "backoff", backoff, "error", err)

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %w", types.ErrExternalService, ctx.Err())
		case <-time.After(backoff):
		}
	}
}

func serviceError(err error) error {
	if errors.Is(err, types.ErrExternalService) {
		return err
	}
	return fmt.Errorf("%w: %w", types.ErrExternalService, err)
}

func docName(doc *Document) string {
	if doc == nil {
		return ""
	}
	return doc.Name
}
