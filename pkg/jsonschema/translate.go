package jsonschema

import (
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/MacroPower/abischema/pkg/abi"
)

// DefaultMaxDepth is the nesting limit used when [Translator.MaxDepth] is not
// positive.
const DefaultMaxDepth = 64

// DefaultTranslator is a [Translator] with the default depth limit.
var DefaultTranslator = NewTranslator(DefaultMaxDepth)

// Translator converts ABI type schemas into JSON Schema fragments.
type Translator struct {
	// MaxDepth is the number of levels below the root node that are
	// translated. Deeper nodes become the empty schema.
	MaxDepth int
}

// NewTranslator creates a new [Translator].
func NewTranslator(maxDepth int) *Translator {
	return &Translator{MaxDepth: maxDepth}
}

// Translate converts a type schema into a JSON Schema fragment. It never
// fails: unrecognized shapes produce the empty schema and a [Warning].
func (t *Translator) Translate(node *abi.TypeSchema) (*Schema, []Warning) {
	return t.TranslateAt("", node)
}

// TranslateAt is like [Translator.Translate], but prefixes warning paths with
// the given path.
func (t *Translator) TranslateAt(path string, node *abi.TypeSchema) (*Schema, []Warning) {
	tr := &translation{maxDepth: t.maxDepth()}
	s := tr.translate(node, path, 0)

	return s, tr.warnings
}

func (t *Translator) maxDepth() int {
	if t == nil || t.MaxDepth <= 0 {
		return DefaultMaxDepth
	}

	return t.MaxDepth
}

// translation holds the state of a single [Translator.Translate] call.
type translation struct {
	warnings []Warning
	maxDepth int
}

func (tr *translation) translate(node *abi.TypeSchema, path string, depth int) *Schema {
	if depth > tr.maxDepth {
		tr.warn(WarnDepthExceeded, path, fmt.Sprintf("nested more than %d levels", tr.maxDepth))

		return &Schema{}
	}

	switch node.Kind() {
	case abi.KindReference:
		return &Schema{Ref: node.Ref}

	case abi.KindPrimitive:
		return &Schema{Type: node.Type}

	case abi.KindArray:
		if node.Items == nil {
			return &Schema{Type: abi.TypeArray}
		}

		return &Schema{
			Type:  abi.TypeArray,
			Items: tr.translate(node.Items, joinPath(path, "items"), depth+1),
		}

	case abi.KindObject:
		if node.Properties == nil {
			return &Schema{Type: abi.TypeObject}
		}

		props := orderedmap.New[string, *Schema](orderedmap.WithCapacity[string, *Schema](node.Properties.Len()))
		for pair := node.Properties.Oldest(); pair != nil; pair = pair.Next() {
			props.Set(pair.Key, tr.translate(pair.Value, joinPath(path, "properties", pair.Key), depth+1))
		}

		return &Schema{Type: abi.TypeObject, Properties: props}

	case abi.KindUnrecognized:
	}

	tr.warn(WarnUnrecognized, path, "type "+node.TypeLabel())

	return &Schema{}
}

func (tr *translation) warn(kind WarningKind, path, detail string) {
	if path == "" {
		path = "/"
	}

	tr.warnings = append(tr.warnings, Warning{Kind: kind, Path: path, Detail: detail})
}

func joinPath(base string, segments ...string) string {
	if base == "" {
		return strings.Join(segments, "/")
	}

	return base + "/" + strings.Join(segments, "/")
}
