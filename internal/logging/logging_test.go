// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/doc-assistant/pkg/types"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     types.LogConfig
		wantErr bool
	}{
		{name: "defaults", cfg: types.LogConfig{}},
		{name: "debug json", cfg: types.LogConfig{Level: "debug", Format: "json"}},
		{name: "warning alias", cfg: types.LogConfig{Level: "WARNING", Format: "text"}},
		{name: "bad level", cfg: types.LogConfig{Level: "loud"}, wantErr: true},
		{name: "bad format", cfg: types.LogConfig{Format: "xml"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg, &bytes.Buffer{})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, logger)
		})
	}
}

func TestNew_LevelFilteringAndJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(types.LogConfig{Level: "warn", Format: "json"}, &buf)
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept", "doc", "a.txt")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "kept", rec["msg"])
	assert.Equal(t, "a.txt", rec["doc"])
}

func TestDiscard(t *testing.T) {
	Discard().Error("nothing")
}
