// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/pdiddy/doc-assistant/internal/httputil"
	"github.com/pdiddy/doc-assistant/pkg/types"
)

// Backend abstracts the chat completion API so tests can supply a fake.
// Each call takes an ordered sequence of role-tagged messages and returns a
// single text completion.
type Backend interface {
	Complete(ctx context.Context, messages []types.Message) (string, error)

	// Model returns the model identifier sent with each request.
	Model() string
}

// Default endpoints. Package-level vars for test substitution.
var (
	openaiBaseURL   = "https://api.openai.com/v1"
	anthropicAPIURL = "https://api.anthropic.com/v1/messages"
)

// NewBackend returns the backend selected by cfg.Provider. A missing API key
// is reported as ErrExternalService since no call could succeed.
func NewBackend(cfg types.LLMConfig, logger *slog.Logger) (Backend, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("no API key for provider %q: %w", cfg.Provider, types.ErrExternalService)
	}
	client := &http.Client{Timeout: cfg.Timeout}

	switch cfg.Provider {
	case types.ProviderOpenAI, "":
		return &OpenAIBackend{cfg: cfg, client: client, log: logger}, nil
	case types.ProviderAnthropic:
		return &AnthropicBackend{cfg: cfg, client: client, log: logger}, nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q: use openai or anthropic", cfg.Provider)
	}
}

// postJSON sends body to url once and returns the raw response body. Every
// failure wraps ErrExternalService; non-2xx responses also carry an
// *httputil.StatusError so the composer can tell transient failures from
// permanent ones.
func postJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, body any) ([]byte, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling %s: %w: %w", url, types.ErrExternalService, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w: %w", types.ErrExternalService, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %w", httputil.NewStatusError(resp, truncate(string(raw), 512)), types.ErrExternalService)
	}
	return raw, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
