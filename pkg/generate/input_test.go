package generate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MacroPower/abischema/pkg/abierrors"
	"github.com/MacroPower/abischema/pkg/generate"
)

func TestResolveInput(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		want generate.Input
		err  bool
	}{
		"wrap.near":             {want: generate.Input{ContractID: "wrap.near"}},
		"./ft.abi.json":         {want: generate.Input{Path: "./ft.abi.json"}},
		"../abis/ft.abi.json":   {want: generate.Input{Path: "../abis/ft.abi.json"}},
		"ft.abi.json":           {want: generate.Input{ContractID: "ft.abi.json"}},
		"/abs/path/ft.abi.json": {want: generate.Input{ContractID: "/abs/path/ft.abi.json"}},
		"":                      {err: true},
		"   ":                   {err: true},
	}

	for arg, tc := range tcs {
		t.Run(arg, func(t *testing.T) {
			t.Parallel()

			got, err := generate.ResolveInput(arg)
			if tc.err {
				require.ErrorIs(t, err, abierrors.ErrInvalidArguments)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, arg, got.String())
			assert.Equal(t, tc.want.Path != "", got.IsFile())
		})
	}
}

func TestDefaultOutputPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "./contract_types.ts", generate.DefaultOutputPath("ts"))
	assert.Equal(t, "./contract_types.schema.json", generate.DefaultOutputPath("schema.json"))
}
