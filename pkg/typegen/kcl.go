package typegen

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	kclgen "kcl-lang.io/kcl-go/pkg/tools/gen"

	"github.com/MacroPower/abischema/pkg/abierrors"
	"github.com/MacroPower/abischema/pkg/jsonschema"
)

// kcl-go's generator is not safe for concurrent use.
var kclMu sync.Mutex

// KCL compiles schemas to KCL schema declarations using kcl-go.
type KCL struct {
	// RemoveDefaults drops default values from generated schemas.
	RemoveDefaults bool
}

func (c *KCL) Extension() string {
	return "k"
}

func (c *KCL) Compile(_ context.Context, doc *jsonschema.Document, rootName string) ([]byte, error) {
	src, err := doc.WithTitle(rootName).MarshalIndent()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", abierrors.ErrCompile, err)
	}

	kclMu.Lock()
	defer kclMu.Unlock()

	out := &bytes.Buffer{}
	if err := kclgen.GenKcl(out, rootName, src, &kclgen.GenKclOptions{
		Mode:                  kclgen.ModeJsonSchema,
		CastingOption:         kclgen.OriginalName,
		UseIntegersForNumbers: true,
		RemoveDefaults:        c.RemoveDefaults,
	}); err != nil {
		return nil, fmt.Errorf("%w: generate kcl: %w", abierrors.ErrCompile, err)
	}

	return out.Bytes(), nil
}
