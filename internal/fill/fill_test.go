// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fill

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/doc-assistant/pkg/types"
)

func TestMerge_Scenario(t *testing.T) {
	template := "Name: ...\nDate: ...\nNotes"
	got := Merge(template, types.Values{"Name": "Alice", "Date": "2024-01-01"})
	assert.Equal(t, "Name: Alice\nDate: 2024-01-01\nNotes", got.String())
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name     string
		template string
		values   types.Values
		want     string
	}{
		{
			name:     "missing key defaults to empty",
			template: "Name: ...\nEmail: ...",
			values:   types.Values{"Name": "Bob"},
			want:     "Name: Bob\nEmail: ",
		},
		{
			name:     "placeholder after colon is discarded",
			template: "Amount:   ______ EUR (incl. tax)",
			values:   types.Values{"Amount": "12"},
			want:     "Amount: 12",
		},
		{
			name:     "key is text before first colon, trimmed",
			template: "  Start time : 10:00",
			values:   types.Values{"Start time": "09:30"},
			want:     "Start time: 09:30",
		},
		{
			name:     "empty key",
			template: ": orphan value",
			values:   types.Values{"": "filled"},
			want:     ": filled",
		},
		{
			name:     "duplicate keys receive the same value",
			template: "Name: ...\nSigned\nName: ...",
			values:   types.Values{"Name": "Carol"},
			want:     "Name: Carol\nSigned\nName: Carol",
		},
		{
			name:     "no fields",
			template: "Just prose.\nNothing to fill.",
			values:   types.Values{"Name": "ignored"},
			want:     "Just prose.\nNothing to fill.",
		},
		{
			name:     "nil values",
			template: "Name: ...",
			values:   nil,
			want:     "Name: ",
		},
		{
			name:     "empty template",
			template: "",
			values:   types.Values{"Name": "x"},
			want:     "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Merge(tt.template, tt.values).String())
		})
	}
}

func TestMerge_PreservesLineCountAndOrder(t *testing.T) {
	template := strings.Join([]string{
		"APPLICATION FORM",
		"",
		"Full name: ....",
		"Address: ....",
		"\tIndented prose without colon",
		"City: ....",
		"Signature",
	}, "\n")
	values := types.Values{"Full name": "Dana", "City": "Lyon"}

	src := types.SplitLines(template)
	got := Merge(template, values)
	require.Len(t, got.Lines, len(src))

	for i, line := range src {
		key, isField := fieldKey(line)
		if !isField {
			assert.Equal(t, line, got.Lines[i], "line %d must be verbatim", i)
			continue
		}
		assert.Equal(t, key+": "+values.Get(key), got.Lines[i], "line %d", i)
	}

	require.Len(t, got.Fields, 3)
	assert.Equal(t, types.TemplateField{Line: 2, Key: "Full name", Value: "Dana"}, got.Fields[0])
	assert.Equal(t, types.TemplateField{Line: 3, Key: "Address", Value: ""}, got.Fields[1])
}

func TestFieldsAndKeys(t *testing.T) {
	template := "Name: ...\nDate: ...\nNotes\nName: again"
	fields := Fields(template)
	require.Len(t, fields, 3)
	assert.Equal(t, "Name", fields[0].Key)
	assert.Equal(t, 1, fields[1].Line)
	assert.Equal(t, 3, fields[2].Line)
	assert.Equal(t, []string{"Name", "Date"}, Keys(template))
}

func TestMissing(t *testing.T) {
	filled := Merge("Name: ...\nDate: ...\nEmail: ...", types.Values{"Name": "Alice", "Date": "2024-01-01"})

	assert.Empty(t, Missing(filled, "Dear Alice, your appointment on 2024-01-01 is confirmed."))

	missing := Missing(filled, "Dear Alice, your appointment is confirmed.")
	require.Len(t, missing, 1)
	assert.Equal(t, "Date", missing[0].Key)

	err := MissingError(missing)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrInvalidValues)
	assert.Contains(t, err.Error(), "Date")
	assert.NoError(t, MissingError(nil))
}

func TestParseAssignments(t *testing.T) {
	values, err := ParseAssignments([]string{"Name=Alice", " Date =2024-01-01", "Query=a=b", "Empty="})
	require.NoError(t, err)
	assert.Equal(t, types.Values{"Name": "Alice", "Date": "2024-01-01", "Query": "a=b", "Empty": ""}, values)

	_, err = ParseAssignments([]string{"novalue"})
	assert.ErrorIs(t, err, types.ErrInvalidValues)
}

func TestLoadValues(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    types.Values
		wantErr error
	}{
		{
			name:    "yaml mapping",
			file:    "values.yaml",
			content: "Name: Alice\nDate: 2024-01-01\n",
			want:    types.Values{"Name": "Alice", "Date": "2024-01-01"},
		},
		{
			name:    "json object",
			file:    "values.json",
			content: `{"Name": "Alice", "Full address": "1 Main St"}`,
			want:    types.Values{"Name": "Alice", "Full address": "1 Main St"},
		},
		{
			name:    "empty yaml",
			file:    "values.yml",
			content: "",
			want:    types.Values{},
		},
		{
			name:    "yaml scalars keep their text",
			file:    "values.yaml",
			content: "Age: 42\nZip: 007\nPrice: 1.50\nMember: yes\nNotes:\n",
			want:    types.Values{"Age": "42", "Zip": "007", "Price": "1.50", "Member": "yes", "Notes": ""},
		},
		{
			name:    "json numbers and booleans",
			file:    "values.json",
			content: `{"Age": 42, "Price": 1.50, "Member": true, "Notes": null}`,
			want:    types.Values{"Age": "42", "Price": "1.50", "Member": "true", "Notes": ""},
		},
		{
			name:    "yaml list value rejected",
			file:    "values.yaml",
			content: "Name:\n  - Alice\n  - Bob\n",
			wantErr: types.ErrInvalidValues,
		},
		{
			name:    "yaml sequence document rejected",
			file:    "values.yaml",
			content: "- Alice\n",
			wantErr: types.ErrInvalidValues,
		},
		{
			name:    "json array rejected",
			file:    "values.json",
			content: `["Alice"]`,
			wantErr: types.ErrInvalidValues,
		},
		{
			name:    "nested object rejected",
			file:    "values.json",
			content: `{"Name": {"first": "Alice"}}`,
			wantErr: types.ErrInvalidValues,
		},
		{
			name:    "malformed json",
			file:    "values.json",
			content: `{"Name": `,
			wantErr: types.ErrInvalidValues,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			got, err := LoadValues(path)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadValues_MissingFile(t *testing.T) {
	_, err := LoadValues(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, types.ErrIO)
}
