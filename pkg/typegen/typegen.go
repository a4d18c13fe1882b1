package typegen

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/MacroPower/abischema/pkg/abierrors"
	"github.com/MacroPower/abischema/pkg/jsonschema"
)

// Target names a compiler.
type Target string

const (
	TargetTypeScript Target = "typescript"
	TargetKCL        Target = "kcl"
	TargetJSONSchema Target = "jsonschema"

	DefaultTarget = TargetTypeScript
)

// Targets returns all supported targets.
func Targets() []Target {
	return []Target{TargetTypeScript, TargetKCL, TargetJSONSchema}
}

// ParseTarget parses a case-insensitive target name.
func ParseTarget(s string) (Target, error) {
	t := Target(strings.ToLower(s))
	if !slices.Contains(Targets(), t) {
		return "", fmt.Errorf("%w: %q", abierrors.ErrInvalidTarget, s)
	}

	return t, nil
}

// Compiler turns a JSON Schema document into type declarations.
type Compiler interface {
	// Compile returns the declarations for doc, naming the root type
	// rootName.
	Compile(ctx context.Context, doc *jsonschema.Document, rootName string) ([]byte, error)
	// Extension is the default file extension of the output, without the
	// leading dot.
	Extension() string
}

// Options configures the compilers returned by [GetCompiler].
type Options struct {
	// JSON2TS is the path to the json2ts executable.
	JSON2TS string
	// Format is the encoding used by the jsonschema target (json or yaml).
	Format string
	// Timeout bounds external compiler runs.
	Timeout time.Duration
}

// GetCompiler returns the [Compiler] for target.
//
//nolint:ireturn
func GetCompiler(target Target, opts Options) (Compiler, error) {
	switch target {
	case TargetTypeScript:
		return &TypeScript{Binary: opts.JSON2TS, Timeout: opts.Timeout}, nil
	case TargetKCL:
		return &KCL{}, nil
	case TargetJSONSchema:
		format, err := ParseSchemaFormat(opts.Format)
		if err != nil {
			return nil, err
		}

		return &JSONSchema{Format: format}, nil
	}

	return nil, fmt.Errorf("%w: %q", abierrors.ErrInvalidTarget, target)
}
