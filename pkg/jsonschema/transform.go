package jsonschema

import (
	"slices"

	"github.com/MacroPower/abischema/pkg/abi"
)

// DefaultTransformer is a [Transformer] using [DefaultTranslator].
var DefaultTransformer = NewTransformer(DefaultTranslator)

// Transformer assembles a JSON Schema document from an ABI document.
type Transformer struct {
	translator *Translator
}

// NewTransformer creates a new [Transformer]. A nil translator uses
// [DefaultTranslator].
func NewTransformer(t *Translator) *Transformer {
	if t == nil {
		t = DefaultTranslator
	}

	return &Transformer{translator: t}
}

// Transform builds the root document. Each function becomes an object
// property whose own properties are the function's parameters. A parameter is
// required unless its type schema is marked `"required": false`. Definitions
// are copied from the source as-is.
func (t *Transformer) Transform(doc *abi.Document) (*Document, []Warning) {
	out := NewDocument()
	if doc == nil {
		return out, nil
	}

	var warnings []Warning

	for _, fn := range doc.Functions {
		fs, fnWarnings := t.transformFunction(fn)
		warnings = append(warnings, fnWarnings...)

		if _, dup := out.Properties.Set(fn.Name, fs); dup {
			warnings = append(warnings, Warning{
				Kind:   WarnDuplicate,
				Path:   fn.Name,
				Detail: "function defined more than once",
			})
		}
	}

	if doc.Definitions != nil {
		out.Definitions = doc.Definitions
	}

	return out, warnings
}

func (t *Transformer) transformFunction(fn abi.Function) (*FunctionSchema, []Warning) {
	fs := newFunctionSchema()

	var warnings []Warning

	for _, arg := range fn.Arguments() {
		path := joinPath(fn.Name, arg.Name)

		s, argWarnings := t.translator.TranslateAt(path, arg.TypeSchema)
		warnings = append(warnings, argWarnings...)

		if _, dup := fs.Properties.Set(arg.Name, s); dup {
			warnings = append(warnings, Warning{
				Kind:   WarnDuplicate,
				Path:   path,
				Detail: "parameter defined more than once",
			})

			fs.Required = slices.DeleteFunc(fs.Required, func(name string) bool {
				return name == arg.Name
			})
		}

		if arg.Required() {
			fs.Required = append(fs.Required, arg.Name)
		}
	}

	return fs, warnings
}
