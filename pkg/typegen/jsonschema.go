package typegen

import (
	"context"
	"fmt"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/MacroPower/abischema/pkg/abierrors"
	"github.com/MacroPower/abischema/pkg/jsonschema"
)

// SchemaFormat is the encoding of the jsonschema target.
type SchemaFormat string

const (
	SchemaFormatJSON SchemaFormat = "json"
	SchemaFormatYAML SchemaFormat = "yaml"
)

// ParseSchemaFormat parses a case-insensitive format. An empty string is
// JSON.
func ParseSchemaFormat(s string) (SchemaFormat, error) {
	switch f := SchemaFormat(strings.ToLower(s)); f {
	case "", SchemaFormatJSON:
		return SchemaFormatJSON, nil
	case SchemaFormatYAML, "yml":
		return SchemaFormatYAML, nil
	}

	return "", fmt.Errorf("%w: unknown schema format %q", abierrors.ErrInvalidArguments, s)
}

// JSONSchema emits the schema document itself.
type JSONSchema struct {
	Format SchemaFormat
}

func (c *JSONSchema) Extension() string {
	if c.Format == SchemaFormatYAML {
		return "schema.yaml"
	}

	return "schema.json"
}

// Compile encodes doc. The title is only set when rootName is not empty.
func (c *JSONSchema) Compile(_ context.Context, doc *jsonschema.Document, rootName string) ([]byte, error) {
	if rootName != "" {
		doc = doc.WithTitle(rootName)
	}

	return EncodeSchema(doc, c.Format)
}

// EncodeSchema encodes doc in the given format.
func EncodeSchema(doc *jsonschema.Document, format SchemaFormat) ([]byte, error) {
	b, err := doc.MarshalIndent()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", abierrors.ErrCompile, err)
	}

	if format != SchemaFormatYAML {
		return b, nil
	}

	y, err := yaml.JSONToYAML(b)
	if err != nil {
		return nil, fmt.Errorf("%w: convert to yaml: %w", abierrors.ErrCompile, err)
	}

	return y, nil
}
