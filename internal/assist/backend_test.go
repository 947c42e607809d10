// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assist

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/doc-assistant/internal/httputil"
	"github.com/pdiddy/doc-assistant/pkg/types"
)

var testMessages = []types.Message{
	{Role: types.RoleSystem, Content: "be brief"},
	{Role: types.RoleUser, Content: "hello"},
}

func llmConfig(provider types.LLMProvider, baseURL string) types.LLMConfig {
	return types.LLMConfig{
		HTTPConfig: types.HTTPConfig{Timeout: 5 * time.Second},
		Provider:   provider,
		Model:      "test-model",
		BaseURL:    baseURL,
		APIKey:     "secret",
		MaxRetries: 2,
	}
}

func TestNewBackend(t *testing.T) {
	b, err := NewBackend(llmConfig(types.ProviderOpenAI, ""), nil)
	require.NoError(t, err)
	assert.IsType(t, &OpenAIBackend{}, b)
	assert.Equal(t, "test-model", b.Model())

	b, err = NewBackend(llmConfig(types.ProviderAnthropic, ""), nil)
	require.NoError(t, err)
	assert.IsType(t, &AnthropicBackend{}, b)

	cfg := llmConfig(types.ProviderOpenAI, "")
	cfg.APIKey = ""
	_, err = NewBackend(cfg, nil)
	assert.ErrorIs(t, err, types.ErrExternalService)

	_, err = NewBackend(llmConfig("mystery", ""), nil)
	assert.Error(t, err)
}

func TestOpenAIBackend_Complete(t *testing.T) {
	var got map[string]any
	var auth, path string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		path = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Hi there"}}]}`))
	}))
	defer ts.Close()

	b, err := NewBackend(llmConfig(types.ProviderOpenAI, ts.URL+"/v1/"), nil)
	require.NoError(t, err)

	out, err := b.Complete(context.Background(), testMessages)
	require.NoError(t, err)
	assert.Equal(t, "Hi there", out)
	assert.Equal(t, "Bearer secret", auth)
	assert.Equal(t, "/v1/chat/completions", path)
	assert.Equal(t, "test-model", got["model"])
	_, hasTemp := got["temperature"]
	assert.False(t, hasTemp, "zero temperature is omitted")

	msgs := got["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
}

func TestOpenAIBackend_SendsTemperature(t *testing.T) {
	var got map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"choices":[{"message":{"content":"x"}}]}`))
	}))
	defer ts.Close()

	cfg := llmConfig(types.ProviderOpenAI, ts.URL)
	cfg.Temperature = 0.3
	b, err := NewBackend(cfg, nil)
	require.NoError(t, err)
	_, err = b.Complete(context.Background(), testMessages)
	require.NoError(t, err)
	assert.InDelta(t, 0.3, got["temperature"], 1e-9)
}

func TestOpenAIBackend_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"error":"bad key"}`},
		{name: "no choices", status: http.StatusOK, body: `{"choices":[]}`},
		{name: "malformed", status: http.StatusOK, body: `not json`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			b, err := NewBackend(llmConfig(types.ProviderOpenAI, ts.URL), nil)
			require.NoError(t, err)
			_, err = b.Complete(context.Background(), testMessages)
			assert.ErrorIs(t, err, types.ErrExternalService)
		})
	}
}

func TestOpenAIBackend_RateLimitIsTransient(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Retry-After", "12")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	b, err := NewBackend(llmConfig(types.ProviderOpenAI, ts.URL), nil)
	require.NoError(t, err)
	_, err = b.Complete(context.Background(), testMessages)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrExternalService)
	assert.True(t, httputil.Transient(err))
	d, ok := httputil.RetryAfterOf(err)
	assert.True(t, ok)
	assert.Equal(t, 12*time.Second, d)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "the backend itself does not retry")
}

func TestOpenAIBackend_UnauthorizedIsPermanent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	b, err := NewBackend(llmConfig(types.ProviderOpenAI, ts.URL), nil)
	require.NoError(t, err)
	_, err = b.Complete(context.Background(), testMessages)
	assert.ErrorIs(t, err, types.ErrExternalService)
	assert.False(t, httputil.Transient(err))
}

func TestAnthropicBackend_Complete(t *testing.T) {
	var got claudeRequest
	var key, version string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key = r.Header.Get("x-api-key")
		version = r.Header.Get("anthropic-version")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"content":[{"type":"text","text":"Hello "},{"type":"tool_use"},{"type":"text","text":"world"}]}`))
	}))
	defer ts.Close()

	old := anthropicAPIURL
	anthropicAPIURL = ts.URL
	t.Cleanup(func() { anthropicAPIURL = old })

	b, err := NewBackend(llmConfig(types.ProviderAnthropic, ""), nil)
	require.NoError(t, err)

	out, err := b.Complete(context.Background(), testMessages)
	require.NoError(t, err)
	assert.Equal(t, "Hello world", out)
	assert.Equal(t, "secret", key)
	assert.Equal(t, anthropicVersion, version)
	assert.Equal(t, "be brief", got.System)
	assert.Equal(t, 4096, got.MaxTokens)
	require.Len(t, got.Messages, 1, "system message lifted out of the turn list")
	assert.Equal(t, types.RoleUser, got.Messages[0].Role)
}

func TestAnthropicBackend_EmptyContent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"content":[]}`))
	}))
	defer ts.Close()

	b, err := NewBackend(llmConfig(types.ProviderAnthropic, ts.URL), nil)
	require.NoError(t, err)
	_, err = b.Complete(context.Background(), testMessages)
	assert.ErrorIs(t, err, types.ErrExternalService)
}
