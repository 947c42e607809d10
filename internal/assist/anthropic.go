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

const anthropicVersion = "2023-06-01"

// AnthropicBackend calls the Claude Messages API. System messages are lifted
// into the top-level system field since the API accepts only user and
// assistant turns.
type AnthropicBackend struct {
	cfg    types.LLMConfig
	client *http.Client
	log    *slog.Logger
}

// claudeRequest is the request body for the Claude Messages API.
type claudeRequest struct {
	Model       string          `json:"model"`
	MaxTokens   int             `json:"max_tokens"`
	System      string          `json:"system,omitempty"`
	Temperature *float64        `json:"temperature,omitempty"`
	Messages    []types.Message `json:"messages"`
}

// claudeResponse is the response body from the Claude Messages API.
type claudeResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// Model returns the configured model identifier.
func (c *AnthropicBackend) Model() string { return c.cfg.Model }

// Complete sends messages to the Messages API and returns the concatenated
// text blocks of the reply.
func (c *AnthropicBackend) Complete(ctx context.Context, messages []types.Message) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	maxTokens := c.cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	body := claudeRequest{Model: c.cfg.Model, MaxTokens: maxTokens}
	if c.cfg.Temperature != 0 {
		t := c.cfg.Temperature
		body.Temperature = &t
	}
	var system []string
	for _, m := range messages {
		if m.Role == types.RoleSystem {
			system = append(system, m.Content)
			continue
		}
		body.Messages = append(body.Messages, m)
	}
	body.System = strings.Join(system, "\n\n")

	c.log.Info("assist.anthropic.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"messages", len(body.Messages),
	)

	url := anthropicAPIURL
	if c.cfg.BaseURL != "" {
		url = strings.TrimRight(c.cfg.BaseURL, "/") + "/messages"
	}
	raw, err := postJSON(ctx, c.client, url, map[string]string{
		"x-api-key":         c.cfg.APIKey,
		"anthropic-version": anthropicVersion,
	}, body)
	if err != nil {
		c.log.Error("assist.anthropic.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", err
	}

	var cResp claudeResponse
	if err := json.Unmarshal(raw, &cResp); err != nil {
		return "", fmt.Errorf("decoding Claude response: %w: %w", types.ErrExternalService, err)
	}

	var sb strings.Builder
	for _, block := range cResp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("no text content in Claude response: %w", types.ErrExternalService)
	}

	c.log.Info("assist.anthropic.ok",
		"req_id", rid,
		"response_len", sb.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return sb.String(), nil
}
