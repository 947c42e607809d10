// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fill merges user values into `key: value` templates.
//
// A template line containing a colon is a field: its key is the text before
// the first colon, trimmed, and the line is re-emitted as "key: value". The
// text after the colon (the placeholder) is discarded. Lines without a colon
// are carried over unchanged. Every occurrence of a key is filled from the
// same Values, so repeated keys receive the same value.
package fill

import (
	"fmt"
	"strings"

	"github.com/pdiddy/doc-assistant/pkg/types"
)

// DefaultOutput is the store name used for filled templates when the caller
// does not choose one.
const DefaultOutput = "filled_template.txt"

// fieldKey returns the key of a field line and whether the line is a field.
func fieldKey(line string) (string, bool) {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return "", false
	}
	return strings.TrimSpace(line[:idx]), true
}

// Fields lists the fields of template in line order. Duplicate keys are
// reported once per line.
func Fields(template string) []types.TemplateField {
	var fields []types.TemplateField
	for i, line := range types.SplitLines(template) {
		if key, ok := fieldKey(line); ok {
			fields = append(fields, types.TemplateField{Line: i, Key: key})
		}
	}
	return fields
}

// Keys returns the distinct field keys of template in first-seen order.
func Keys(template string) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, f := range Fields(template) {
		if seen[f.Key] {
			continue
		}
		seen[f.Key] = true
		keys = append(keys, f.Key)
	}
	return keys
}

// Merge fills template from values. Missing keys are filled with "". The
// result has exactly the lines of template, in order.
func Merge(template string, values types.Values) types.FilledTemplate {
	lines := types.SplitLines(template)
	out := types.FilledTemplate{Lines: make([]string, len(lines))}
	for i, line := range lines {
		key, ok := fieldKey(line)
		if !ok {
			out.Lines[i] = line
			continue
		}
		value := values.Get(key)
		out.Lines[i] = fmt.Sprintf("%s: %s", key, value)
		out.Fields = append(out.Fields, types.TemplateField{Line: i, Key: key, Value: value})
	}
	return out
}

// Missing returns the filled fields whose non-empty value does not occur in
// polished. Polished output is produced by a language model and is not
// guaranteed to keep the values; callers needing exact values should use the
// raw merge.
func Missing(filled types.FilledTemplate, polished string) []types.TemplateField {
	var missing []types.TemplateField
	for _, f := range filled.Fields {
		if f.Value == "" {
			continue
		}
		if !strings.Contains(polished, f.Value) {
			missing = append(missing, f)
		}
	}
	return missing
}

// MissingError describes fields lost during polishing.
func MissingError(missing []types.TemplateField) error {
	if len(missing) == 0 {
		return nil
	}
	keys := make([]string, len(missing))
	for i, f := range missing {
		keys[i] = f.Key
	}
	return fmt.Errorf("polished text dropped values for %s: %w", strings.Join(keys, ", "), types.ErrInvalidValues)
}
