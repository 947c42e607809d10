// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"
)

// writeStructured encodes v as yaml or json. It reports false for any
// other format so the caller can fall back to a table.
func writeStructured(w io.Writer, format string, v any) (bool, error) {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return true, enc.Encode(v)
	case "table", "":
		return false, nil
	}
	return false, fmt.Errorf("unsupported format %q: use table, yaml, or json", format)
}

// abbreviate shortens s to n runes with a trailing "...".
func abbreviate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// joinArgs joins free-text arguments into one string.
func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
