package jsonschema

import (
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Draft07 is the $schema marker of generated documents.
const Draft07 = "http://json-schema.org/draft-07/schema#"

// DefaultRootName is the conventional name of the generated root type.
const DefaultRootName = "ContractCallArgs"

// Schema is a translated type schema. The zero value is the empty schema and
// marshals to `{}`.
type Schema struct {
	Ref        string                                  `json:"$ref,omitempty"`
	Type       string                                  `json:"type,omitempty"`
	Items      *Schema                                 `json:"items,omitempty"`
	Properties *orderedmap.OrderedMap[string, *Schema] `json:"properties,omitempty"`
}

// FunctionSchema describes the argument object of a single function.
type FunctionSchema struct {
	Type                 string                                  `json:"type"`
	Properties           *orderedmap.OrderedMap[string, *Schema] `json:"properties"`
	Required             []string                                `json:"required"`
	AdditionalProperties bool                                    `json:"additionalProperties"`
}

// Document is the root JSON Schema document.
type Document struct {
	Schema string `json:"$schema"`

	// Title is left empty by [Transformer]; compilers that derive the root
	// type name from it set it on a copy.
	Title string `json:"title,omitempty"`

	// Definitions is the source document's definitions pool, unchanged.
	Definitions json.RawMessage `json:"definitions"`

	Type                 string                                          `json:"type"`
	Properties           *orderedmap.OrderedMap[string, *FunctionSchema] `json:"properties"`
	Required             []string                                        `json:"required"`
	AdditionalProperties bool                                            `json:"additionalProperties"`
}

// NewDocument returns an empty root document.
func NewDocument() *Document {
	return &Document{
		Schema:               Draft07,
		Definitions:          json.RawMessage(`{}`),
		Type:                 "object",
		Properties:           orderedmap.New[string, *FunctionSchema](),
		Required:             []string{},
		AdditionalProperties: false,
	}
}

func newFunctionSchema() *FunctionSchema {
	return &FunctionSchema{
		Type:                 "object",
		Properties:           orderedmap.New[string, *Schema](),
		Required:             []string{},
		AdditionalProperties: false,
	}
}

// Function returns the schema for the named function.
func (d *Document) Function(name string) (*FunctionSchema, bool) {
	return d.Properties.Get(name)
}

// FunctionNames returns the function names in document order.
func (d *Document) FunctionNames() []string {
	names := make([]string, 0, d.Properties.Len())
	for pair := d.Properties.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}

	return names
}

// WithTitle returns a shallow copy of the document with the given title.
func (d *Document) WithTitle(title string) *Document {
	cp := *d
	cp.Title = title

	return &cp
}

// MarshalIndent returns the indented JSON encoding of the document, with a
// trailing newline.
func (d *Document) MarshalIndent() ([]byte, error) {
	b, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal json schema: %w", err)
	}

	return append(b, '\n'), nil
}
