// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/doc-assistant/pkg/types"
)

// OpenAIBackend calls the OpenAI chat/completions endpoint.
type OpenAIBackend struct {
	cfg    types.LLMConfig
	client *http.Client
	log    *slog.Logger
}

type openaiRequest struct {
	Model       string          `json:"model"`
	Messages    []types.Message `json:"messages"`
	Temperature *float64        `json:"temperature,omitempty"`
}

type openaiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Model returns the configured model identifier.
func (c *OpenAIBackend) Model() string { return c.cfg.Model }

// Complete sends messages as one chat completion request and returns the
// first choice's content.
func (c *OpenAIBackend) Complete(ctx context.Context, messages []types.Message) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.log.Info("assist.openai.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"messages", len(messages),
	)

	body := openaiRequest{Model: c.cfg.Model, Messages: messages}
	// Some models accept only their default temperature.
	if c.cfg.Temperature != 0 {
		t := c.cfg.Temperature
		body.Temperature = &t
	}

	base := c.cfg.BaseURL
	if base == "" {
		base = openaiBaseURL
	}
	endpoint := strings.TrimRight(base, "/") + "/chat/completions"

	raw, err := postJSON(ctx, c.client, endpoint, map[string]string{
		"Authorization": "Bearer " + c.cfg.APIKey,
	}, body)
	if err != nil {
		c.log.Error("assist.openai.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", err
	}

	var cc openaiResponse
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.log.Error("assist.openai.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
		)
		return "", fmt.Errorf("decoding openai response: %w: %w", types.ErrExternalService, err)
	}
	if len(cc.Choices) == 0 {
		return "", fmt.Errorf("no choices in openai response: %w", types.ErrExternalService)
	}

	content := cc.Choices[0].Message.Content
	c.log.Info("assist.openai.ok",
		"req_id", rid,
		"response_len", len(content),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return content, nil
}
