package jsonschema

import "fmt"

// WarningKind classifies a [Warning].
type WarningKind int

const (
	// WarnUnrecognized means a type schema had no translatable shape and was
	// replaced with the empty schema.
	WarnUnrecognized WarningKind = iota

	// WarnDepthExceeded means a type schema was nested deeper than the
	// translator allows and was replaced with the empty schema.
	WarnDepthExceeded

	// WarnDuplicate means a function or parameter name appeared more than
	// once; the last occurrence wins.
	WarnDuplicate

	// WarnUnresolvedRef means a $ref does not point into the document.
	WarnUnresolvedRef
)

func (k WarningKind) String() string {
	switch k {
	case WarnUnrecognized:
		return "unrecognized type"
	case WarnDepthExceeded:
		return "depth exceeded"
	case WarnDuplicate:
		return "duplicate name"
	case WarnUnresolvedRef:
		return "unresolved reference"
	}

	return "unknown"
}

// Warning reports degraded output at a location in the document. Path is a
// slash separated list of function, parameter and property names.
type Warning struct {
	Path   string
	Detail string
	Kind   WarningKind
}

func (w Warning) String() string {
	if w.Detail == "" {
		return fmt.Sprintf("%s: %s", w.Path, w.Kind)
	}

	return fmt.Sprintf("%s: %s: %s", w.Path, w.Kind, w.Detail)
}

// Error implements error so warnings can be aggregated in strict mode.
func (w Warning) Error() string {
	return w.String()
}
