package typegen

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/MacroPower/abischema/pkg/abierrors"
	"github.com/MacroPower/abischema/pkg/exec"
	"github.com/MacroPower/abischema/pkg/jsonschema"
)

// DefaultJSON2TS is the name of the json-schema-to-typescript executable.
const DefaultJSON2TS = "json2ts"

// TypeScriptArgs are the compiler options passed to json2ts.
var TypeScriptArgs = []string{
	"--additionalProperties=false",
	"--declareExternallyReferenced",
	"--unknownAny=false",
}

// TypeScript compiles schemas with json2ts. The schema is written to the
// tool's stdin with its title set to the root name.
type TypeScript struct {
	// Binary is the path to json2ts.
	Binary string
	// Timeout bounds the runtime of json2ts.
	Timeout time.Duration
}

func (c *TypeScript) Extension() string {
	return "ts"
}

func (c *TypeScript) Compile(ctx context.Context, doc *jsonschema.Document, rootName string) ([]byte, error) {
	src, err := doc.WithTitle(rootName).MarshalIndent()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", abierrors.ErrCompile, err)
	}

	binary := c.Binary
	if binary == "" {
		binary = DefaultJSON2TS
	}

	out, err := exec.Run(ctx, binary, exec.CmdOpts{
		Stdin:            bytes.NewReader(src),
		Timeout:          c.Timeout,
		SkipErrorLogging: true,
	}, TypeScriptArgs...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", abierrors.ErrCompile, err)
	}

	return []byte(out + "\n"), nil
}
