// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// TemplateField is a key derived from one `key: value` template line paired
// with the value that fills it.
type TemplateField struct {
	// Line is the zero-based index of the template line.
	Line int `json:"line" yaml:"line"`

	// Key is the text before the first colon, trimmed.
	Key string `json:"key" yaml:"key"`

	// Value is the user-supplied replacement.
	Value string `json:"value" yaml:"value"`
}

// Values maps template keys to user-supplied values.
type Values map[string]string

// Get returns the value for key, or "" when the key is absent.
func (v Values) Get(key string) string {
	if v == nil {
		return ""
	}
	return v[key]
}

// Merge returns a copy of v overlaid with other; keys in other win.
func (v Values) Merge(other Values) Values {
	out := make(Values, len(v)+len(other))
	for k, val := range v {
		out[k] = val
	}
	for k, val := range other {
		out[k] = val
	}
	return out
}

// FilledTemplate is a template with every field line substituted. Lines
// without a colon are carried over verbatim.
type FilledTemplate struct {
	Lines  []string        `json:"lines" yaml:"lines"`
	Fields []TemplateField `json:"fields" yaml:"fields"`
}

// String joins the lines with newlines.
func (f FilledTemplate) String() string {
	return strings.Join(f.Lines, "\n")
}
