package abi

import (
	"bytes"
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Primitive type tags that pass through the converter unchanged.
const (
	TypeString  = "string"
	TypeBoolean = "boolean"
	TypeInteger = "integer"
	TypeNumber  = "number"
	TypeArray   = "array"
	TypeObject  = "object"
)

// Function kinds.
const (
	KindView = "view"
	KindCall = "call"
)

// Kind is the variant of a [TypeSchema].
type Kind int

const (
	KindUnrecognized Kind = iota
	KindReference
	KindPrimitive
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindReference:
		return "reference"
	case KindPrimitive:
		return "primitive"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindUnrecognized:
		return "unrecognized"
	}

	return "unrecognized"
}

// Document is a contract ABI.
type Document struct {
	SchemaVersion string
	Metadata      Metadata
	Functions     []Function

	// Definitions is the shared definitions pool exactly as it appeared in the
	// source document. It is nil when the source has none.
	Definitions json.RawMessage
}

// Metadata describes the contract the ABI was generated from.
type Metadata struct {
	Build   *BuildInfo `json:"build,omitempty"`
	Name    string     `json:"name,omitempty"`
	Version string     `json:"version,omitempty"`
	Authors []string   `json:"authors,omitempty"`
}

// BuildInfo describes the toolchain that built the contract.
type BuildInfo struct {
	Compiler string `json:"compiler,omitempty"`
	Builder  string `json:"builder,omitempty"`
	Image    string `json:"image,omitempty"`
}

// Function is a callable contract function.
type Function struct {
	Params    *Params  `json:"params,omitempty"`
	Name      string   `json:"name"`
	Doc       string   `json:"doc,omitempty"`
	Kind      string   `json:"kind,omitempty"`
	Modifiers []string `json:"modifiers,omitempty"`
}

// Params is a function's parameter list.
type Params struct {
	SerializationType string      `json:"serialization_type,omitempty"`
	Args              []Parameter `json:"args"`
}

// Parameter is a named, typed function argument.
type Parameter struct {
	TypeSchema *TypeSchema `json:"type_schema"`
	Name       string      `json:"name"`
}

// Arguments returns the function's parameters. A function without a params
// object has no parameters.
func (f Function) Arguments() []Parameter {
	if f.Params == nil {
		return nil
	}

	return f.Params.Args
}

// IsView returns true if the function is a read-only view.
func (f Function) IsView() bool {
	return f.Kind == KindView
}

// HasModifier returns true if the function carries the given modifier, e.g.
// "init" or "payable".
func (f Function) HasModifier(m string) bool {
	for _, fm := range f.Modifiers {
		if fm == m {
			return true
		}
	}

	return false
}

// Required returns true unless the parameter's type schema is explicitly
// marked with `"required": false`.
func (p Parameter) Required() bool {
	return p.TypeSchema == nil || !p.TypeSchema.Optional
}

// TypeSchema is one node of a parameter or definition type description.
type TypeSchema struct {
	// Properties holds the object's named properties in source order. It is
	// nil when the node does not specify any.
	Properties *orderedmap.OrderedMap[string, *TypeSchema]

	// Items is the array element type. It is nil when unconstrained.
	Items *TypeSchema

	Ref  string
	Type string

	// RawType holds the original "type" value when it was not a string, such
	// as `["string", "null"]`.
	RawType json.RawMessage

	// Optional is set only by an explicit `"required": false`.
	Optional bool
}

// Kind returns the variant of the node. A nil node is unrecognized.
func (s *TypeSchema) Kind() Kind {
	if s == nil {
		return KindUnrecognized
	}

	if s.Ref != "" {
		return KindReference
	}

	switch s.Type {
	case TypeString, TypeBoolean, TypeInteger, TypeNumber:
		return KindPrimitive
	case TypeArray:
		return KindArray
	case TypeObject:
		return KindObject
	}

	return KindUnrecognized
}

// TypeLabel returns a short human readable description of the node's type.
func (s *TypeSchema) TypeLabel() string {
	switch {
	case s == nil:
		return "<none>"
	case s.Ref != "":
		return s.Ref
	case s.Type != "":
		return s.Type
	case len(s.RawType) > 0:
		return string(s.RawType)
	}

	return "<none>"
}

// UnmarshalJSON decodes a type schema without failing on unexpected shapes.
func (s *TypeSchema) UnmarshalJSON(data []byte) error {
	*s = TypeSchema{}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		// Not an object, so there is nothing to translate.
		return nil //nolint:nilerr // Unrecognized node.
	}

	if raw, ok := fields["$ref"]; ok {
		var ref string
		if json.Unmarshal(raw, &ref) == nil {
			s.Ref = ref
		}
	}

	if raw, ok := fields["type"]; ok {
		var t string
		if json.Unmarshal(raw, &t) == nil {
			s.Type = t
		} else {
			s.RawType = raw
		}
	}

	if raw, ok := fields["items"]; ok && !isFalsy(raw) {
		s.Items = &TypeSchema{}
		if err := json.Unmarshal(raw, s.Items); err != nil {
			return fmt.Errorf("items: %w", err)
		}
	}

	if raw, ok := fields["properties"]; ok && isObject(raw) {
		s.Properties = orderedmap.New[string, *TypeSchema]()
		if err := s.Properties.UnmarshalJSON(raw); err != nil {
			return fmt.Errorf("properties: %w", err)
		}
	}

	if raw, ok := fields["required"]; ok && bytes.Equal(bytes.TrimSpace(raw), []byte("false")) {
		s.Optional = true
	}

	return nil
}

func isFalsy(raw json.RawMessage) bool {
	v := bytes.TrimSpace(raw)

	return bytes.Equal(v, []byte("null")) || bytes.Equal(v, []byte("false"))
}

func isObject(raw json.RawMessage) bool {
	v := bytes.TrimSpace(raw)

	return len(v) > 0 && v[0] == '{'
}
