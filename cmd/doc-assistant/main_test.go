// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/doc-assistant/pkg/types"
)

// run executes the root command with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "doc-assistant dev\n", out)
}

func TestCLI_OfflineWorkflow(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "store")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	template := "Lease Renewal\nTenant: ...\nUnit: ...\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lease.txt"), []byte(template), 0o644))

	out, err := run(t, "--store-dir", dir, "list", "--suffix", ".txt")
	require.NoError(t, err)
	assert.Contains(t, out, "lease.txt")
	assert.Contains(t, out, "1 documents")

	out, err = run(t, "--store-dir", dir, "read", "lease.txt", "--start", "1", "--numbered")
	require.NoError(t, err)
	assert.Equal(t, "     1  Tenant: ...\n     2  Unit: ...\n     3  \n", out)

	out, err = run(t, "--store-dir", dir, "fill-template", "lease.txt", "--fields")
	require.NoError(t, err)
	assert.Contains(t, out, "Tenant")
	assert.Contains(t, out, "Unit")

	out, err = run(t, "--store-dir", dir, "fill-template", "lease.txt", "--fields=false",
		"--set", "Tenant=Ada Lovelace", "--set", "Unit=4B", "--out", "filled_lease.txt")
	require.NoError(t, err)
	assert.Contains(t, out, "saved as filled_lease.txt")

	filled, err := os.ReadFile(filepath.Join(dir, "filled_lease.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Lease Renewal\nTenant: Ada Lovelace\nUnit: 4B", string(filled))

	out, err = run(t, "--store-dir", dir, "to-pdf", "filled_lease.txt")
	require.NoError(t, err)
	assert.Contains(t, out, "filled_lease.pdf (1 pages)")

	out, err = run(t, "--store-dir", dir, "info", "filled_lease.pdf")
	require.NoError(t, err)
	assert.Contains(t, out, "filled_lease.pdf: 1 pages")

	out, err = run(t, "--store-dir", dir, "list", "--suffix", "", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "filled_lease.pdf"`)

	_, err = run(t, "--store-dir", dir, "read", "missing.txt", "--start", "0", "--numbered=false")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestGeometryFromFlags(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().Float64("page-width", 0, "")
	cmd.Flags().Float64("page-height", 0, "")
	cmd.Flags().Float64("margin", 0, "")
	cmd.Flags().Float64("line-height", 0, "")
	cmd.Flags().Float64("left", 0, "")

	base := types.A4Geometry()
	g, ok := geometryFromFlags(cmd, base)
	assert.False(t, ok)
	assert.Equal(t, base, g)

	require.NoError(t, cmd.Flags().Set("margin", "20"))
	g, ok = geometryFromFlags(cmd, base)
	assert.True(t, ok)
	assert.Equal(t, 20.0, g.Margin)
	assert.Equal(t, base.Height, g.Height)
}

func TestWriteStructured(t *testing.T) {
	v := []map[string]string{{"name": "a.txt"}}

	var buf bytes.Buffer
	ok, err := writeStructured(&buf, "yaml", v)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "- name: a.txt\n", buf.String())

	buf.Reset()
	ok, err = writeStructured(&buf, "json", v)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, buf.String(), `"name": "a.txt"`)

	ok, err = writeStructured(&buf, "table", v)
	assert.NoError(t, err)
	assert.False(t, ok)

	_, err = writeStructured(&buf, "csv", v)
	assert.Error(t, err)
}

func TestAbbreviate(t *testing.T) {
	assert.Equal(t, "short", abbreviate("short", 10))
	assert.Equal(t, "a b", abbreviate("a\nb", 10))
	assert.Equal(t, "abcdefg...", abbreviate(strings.Repeat("abcdefgh", 3), 10))
}
