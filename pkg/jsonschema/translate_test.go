package jsonschema_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MacroPower/abischema/pkg/abi"
	"github.com/MacroPower/abischema/pkg/jsonschema"
)

func decodeNode(t *testing.T, raw string) *abi.TypeSchema {
	t.Helper()

	node := &abi.TypeSchema{}
	require.NoError(t, json.Unmarshal([]byte(raw), node))

	return node
}

func TestTranslate(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input    string
		want     string
		warnings []jsonschema.WarningKind
	}{
		"ref": {
			input: `{"$ref": "#/definitions/AccountId"}`,
			want:  `{"$ref": "#/definitions/AccountId"}`,
		},
		"ref ignores siblings": {
			input: `{"$ref": "#/definitions/U128", "type": "string", "description": "x"}`,
			want:  `{"$ref": "#/definitions/U128"}`,
		},
		"string": {
			input: `{"type": "string"}`,
			want:  `{"type": "string"}`,
		},
		"boolean": {
			input: `{"type": "boolean"}`,
			want:  `{"type": "boolean"}`,
		},
		"integer keeps extra keywords out": {
			input: `{"type": "integer", "format": "uint64", "minimum": 0}`,
			want:  `{"type": "integer"}`,
		},
		"number": {
			input: `{"type": "number"}`,
			want:  `{"type": "number"}`,
		},
		"array with items": {
			input: `{"type": "array", "items": {"type": "string"}}`,
			want:  `{"type": "array", "items": {"type": "string"}}`,
		},
		"array without items": {
			input: `{"type": "array"}`,
			want:  `{"type": "array"}`,
		},
		"object with properties": {
			input: `{"type": "object", "properties": {"a": {"type": "integer"}, "b": {"$ref": "#/definitions/X"}}}`,
			want:  `{"type": "object", "properties": {"a": {"type": "integer"}, "b": {"$ref": "#/definitions/X"}}}`,
		},
		"object without properties": {
			input: `{"type": "object", "required": ["a"]}`,
			want:  `{"type": "object"}`,
		},
		"nested": {
			input: `{"type": "array", "items": {"type": "object", "properties": {"x": {"type": "number"}}}}`,
			want:  `{"type": "array", "items": {"type": "object", "properties": {"x": {"type": "number"}}}}`,
		},
		"type union": {
			input:    `{"type": ["string", "null"]}`,
			want:     `{}`,
			warnings: []jsonschema.WarningKind{jsonschema.WarnUnrecognized},
		},
		"unknown type": {
			input:    `{"type": "null"}`,
			want:     `{}`,
			warnings: []jsonschema.WarningKind{jsonschema.WarnUnrecognized},
		},
		"empty": {
			input:    `{}`,
			want:     `{}`,
			warnings: []jsonschema.WarningKind{jsonschema.WarnUnrecognized},
		},
		"anyOf": {
			input:    `{"anyOf": [{"type": "string"}, {"type": "null"}]}`,
			want:     `{}`,
			warnings: []jsonschema.WarningKind{jsonschema.WarnUnrecognized},
		},
		"unrecognized item": {
			input:    `{"type": "array", "items": {"oneOf": []}}`,
			want:     `{"type": "array", "items": {}}`,
			warnings: []jsonschema.WarningKind{jsonschema.WarnUnrecognized},
		},
		"unrecognized property": {
			input:    `{"type": "object", "properties": {"a": {"type": "string"}, "b": true}}`,
			want:     `{"type": "object", "properties": {"a": {"type": "string"}, "b": {}}}`,
			warnings: []jsonschema.WarningKind{jsonschema.WarnUnrecognized},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, warnings := jsonschema.DefaultTranslator.Translate(decodeNode(t, tc.input))

			b, err := json.Marshal(got)
			require.NoError(t, err)
			assert.JSONEq(t, tc.want, string(b))

			kinds := make([]jsonschema.WarningKind, 0, len(warnings))
			for _, w := range warnings {
				kinds = append(kinds, w.Kind)
			}

			if tc.warnings == nil {
				assert.Empty(t, kinds)
			} else {
				assert.Equal(t, tc.warnings, kinds)
			}
		})
	}
}

func TestTranslatePropertyOrder(t *testing.T) {
	t.Parallel()

	node := decodeNode(t, `{"type": "object", "properties": {"z": {"type": "string"}, "a": {"type": "string"}, "m": {"type": "string"}}}`)

	got, warnings := jsonschema.DefaultTranslator.Translate(node)
	require.Empty(t, warnings)

	b, err := json.Marshal(got)
	require.NoError(t, err)

	assert.Equal(t, `{"type":"object","properties":{"z":{"type":"string"},"a":{"type":"string"},"m":{"type":"string"}}}`, string(b))
}

func TestTranslateNil(t *testing.T) {
	t.Parallel()

	got, warnings := jsonschema.DefaultTranslator.TranslateAt("fn/arg", nil)

	assert.Equal(t, &jsonschema.Schema{}, got)
	require.Len(t, warnings, 1)
	assert.Equal(t, jsonschema.WarnUnrecognized, warnings[0].Kind)
	assert.Equal(t, "fn/arg", warnings[0].Path)
}

func TestTranslateWarningPath(t *testing.T) {
	t.Parallel()

	node := decodeNode(t, `{"type": "array", "items": {"type": "object", "properties": {"x": {"type": ["integer", "null"]}}}}`)

	_, warnings := jsonschema.DefaultTranslator.TranslateAt("transfer/amount", node)
	require.Len(t, warnings, 1)
	assert.Equal(t, "transfer/amount/items/properties/x", warnings[0].Path)
	assert.Contains(t, warnings[0].Detail, `["integer", "null"]`)

	_, warnings = jsonschema.DefaultTranslator.Translate(decodeNode(t, `{}`))
	require.Len(t, warnings, 1)
	assert.Equal(t, "/", warnings[0].Path)
}

func TestTranslateDepthGuard(t *testing.T) {
	t.Parallel()

	const levels = 10

	raw := strings.Repeat(`{"type": "array", "items": `, levels) + `{"type": "string"}` + strings.Repeat(`}`, levels)
	node := decodeNode(t, raw)

	t.Run("within limit", func(t *testing.T) {
		t.Parallel()

		got, warnings := jsonschema.NewTranslator(levels).Translate(node)
		assert.Empty(t, warnings)

		leaf := got
		for range levels {
			require.NotNil(t, leaf.Items)
			leaf = leaf.Items
		}

		assert.Equal(t, "string", leaf.Type)
	})

	t.Run("exceeded", func(t *testing.T) {
		t.Parallel()

		got, warnings := jsonschema.NewTranslator(3).Translate(node)
		require.Len(t, warnings, 1)
		assert.Equal(t, jsonschema.WarnDepthExceeded, warnings[0].Kind)
		assert.Equal(t, "items/items/items/items", warnings[0].Path)

		b, err := json.Marshal(got)
		require.NoError(t, err)
		assert.JSONEq(t, `{"type":"array","items":{"type":"array","items":{"type":"array","items":{"type":"array","items":{}}}}}`, string(b))
	})

	t.Run("non-positive uses default", func(t *testing.T) {
		t.Parallel()

		_, warnings := jsonschema.NewTranslator(0).Translate(node)
		assert.Empty(t, warnings)
	})
}
