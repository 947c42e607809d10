// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys from a directory of plain-text files.
// Each file holds one secret: the filename is the key name and the trimmed
// file contents are the value.
//
// Supported key files: openai-api-key, anthropic-api-key.
package secrets

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Key file names.
const (
	OpenAIKey    = "openai-api-key"
	AnthropicKey = "anthropic-api-key"
)

// envFallback maps key files to the environment variables consulted when
// the file is absent.
var envFallback = map[string]string{
	OpenAIKey:    "OPENAI_API_KEY",
	AnthropicKey: "ANTHROPIC_API_KEY",
}

// Set is the loaded secrets keyed by file name.
type Set map[string]string

// Load reads all files in dir and returns a Set of filename to trimmed
// contents. A missing directory is not an error; Load returns an empty Set.
// Unreadable files are logged and skipped.
func Load(dir string, logger *slog.Logger) (Set, error) {
	if logger == nil {
		logger = slog.Default()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Set{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(Set)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logger.Warn("secrets.unreadable", "name", name, "error", err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// Lookup returns the secret for key, falling back to its environment
// variable. The second result is false when neither source has a value.
func (s Set) Lookup(key string) (string, bool) {
	if v, ok := s[key]; ok && v != "" {
		return v, true
	}
	if env, ok := envFallback[key]; ok {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			return v, true
		}
	}
	return "", false
}

// KeyFor returns the key file name for an LLM provider name.
func KeyFor(provider string) string {
	if provider == "anthropic" {
		return AnthropicKey
	}
	return OpenAIKey
}
