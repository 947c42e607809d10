// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fill

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/doc-assistant/pkg/types"
)

// valuesSchema accepts a flat object of string values.
const valuesSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": {"type": "string"}
}`

var compiledValuesSchema = mustCompile("values.json", valuesSchema)

func mustCompile(url, schema string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, strings.NewReader(schema)); err != nil {
		panic(fmt.Sprintf("add schema %s: %v", url, err))
	}
	return compiler.MustCompile(url)
}

// LoadValues reads a values file. Files ending in .json are parsed as JSON,
// anything else as YAML. The document must be a flat mapping of strings.
func LoadValues(path string) (types.Values, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading values %s: %w: %w", path, types.ErrIO, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ParseValuesJSON(data)
	}
	return ParseValuesYAML(data)
}

// ParseValuesJSON parses and validates a JSON values document. Numbers and
// booleans are taken as their literal text; null is "".
func ParseValuesJSON(data []byte) (types.Values, error) {
	var doc any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing values JSON: %w: %w", types.ErrInvalidValues, err)
	}
	if obj, ok := doc.(map[string]any); ok {
		for k, v := range obj {
			switch v := v.(type) {
			case json.Number:
				obj[k] = v.String()
			case bool:
				obj[k] = strconv.FormatBool(v)
			case nil:
				obj[k] = ""
			}
		}
	}
	return validateValues(doc)
}

// ParseValuesYAML parses and validates a YAML values document. Scalars keep
// their source text, so "Age: 42" yields "42" and "Zip: 007" keeps its
// leading zeros. An empty document yields empty values.
func ParseValuesYAML(data []byte) (types.Values, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing values YAML: %w: %w", types.ErrInvalidValues, err)
	}
	if len(root.Content) == 0 {
		return types.Values{}, nil
	}

	node := root.Content[0]
	var doc any
	if node.Kind == yaml.MappingNode {
		obj := make(map[string]any, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, val := node.Content[i], node.Content[i+1]
			if val.Kind == yaml.AliasNode && val.Alias != nil {
				val = val.Alias
			}
			switch {
			case val.Kind == yaml.ScalarNode && val.ShortTag() == "!!null":
				obj[key.Value] = ""
			case val.Kind == yaml.ScalarNode:
				obj[key.Value] = val.Value
			default:
				var v any
				if err := val.Decode(&v); err != nil {
					return nil, fmt.Errorf("parsing values YAML: %w: %w", types.ErrInvalidValues, err)
				}
				obj[key.Value] = v
			}
		}
		doc = obj
	} else if err := node.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing values YAML: %w: %w", types.ErrInvalidValues, err)
	}

	// Round-trip through JSON so the validator sees JSON value types.
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("converting values YAML: %w: %w", types.ErrInvalidValues, err)
	}
	return ParseValuesJSON(b)
}

func validateValues(doc any) (types.Values, error) {
	if err := compiledValuesSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("values must map keys to strings: %w: %w", types.ErrInvalidValues, err)
	}
	obj, _ := doc.(map[string]any)
	values := make(types.Values, len(obj))
	for k, v := range obj {
		values[k], _ = v.(string)
	}
	return values, nil
}

// ParseAssignments parses "key=value" pairs. The key is trimmed; the value is
// kept as given and may contain further "=" characters.
func ParseAssignments(pairs []string) (types.Values, error) {
	values := make(types.Values, len(pairs))
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		if !ok {
			return nil, fmt.Errorf("assignment %q is not key=value: %w", p, types.ErrInvalidValues)
		}
		values[strings.TrimSpace(key)] = value
	}
	return values, nil
}
