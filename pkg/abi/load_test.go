package abi_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MacroPower/abischema/pkg/abi"
	"github.com/MacroPower/abischema/pkg/abierrors"
)

var testDataDir string

func init() {
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Dir(filename)
	testDataDir = filepath.Join(dir, "testdata")
}

func TestLoad(t *testing.T) {
	t.Parallel()

	doc, err := abi.Load(filepath.Join(testDataDir, "ft.abi.json"))
	require.NoError(t, err)

	assert.Equal(t, "0.4.0", doc.SchemaVersion)
	assert.Equal(t, "ft", doc.Metadata.Name)
	require.NotNil(t, doc.Metadata.Build)
	assert.Equal(t, "cargo-near 0.6.1", doc.Metadata.Build.Builder)

	require.Len(t, doc.Functions, 4)
	assert.Equal(t, "ft_balance_of", doc.Functions[0].Name)
	assert.True(t, doc.Functions[0].IsView())
	assert.Equal(t, "json", doc.Functions[0].Params.SerializationType)
	assert.Nil(t, doc.Functions[2].Params)

	memo := doc.Functions[1].Arguments()[2]
	assert.Equal(t, "memo", memo.Name)
	assert.False(t, memo.Required())

	assert.JSONEq(t, `{
		"AccountId": {"description": "NEAR Account Identifier.", "type": "string"},
		"U128": {"type": "string"}
	}`, string(doc.Definitions))
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		path string
		err  error
	}{
		"missing file": {
			path: filepath.Join(testDataDir, "does-not-exist.abi.json"),
			err:  abierrors.ErrReadABI,
		},
		"invalid json": {
			path: filepath.Join(testDataDir, "invalid.abi.json"),
			err:  abierrors.ErrParseABI,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := abi.Load(tc.path)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input       string
		err         error
		functions   int
		definitions string
	}{
		"missing body": {
			input: `{"schema_version": "0.4.0"}`,
			err:   abierrors.ErrParseABI,
		},
		"not an object": {
			input: `[]`,
			err:   abierrors.ErrParseABI,
		},
		"no functions": {
			input: `{"body": {}}`,
		},
		"null definitions": {
			input:     `{"body": {"functions": [{"name": "a"}], "root_schema": {"definitions": null}}}`,
			functions: 1,
		},
		"definitions kept verbatim": {
			input:       `{"body": {"functions": [], "root_schema": {"definitions": {"B": {"type": "string"},  "A": {}}}}}`,
			definitions: `{"B": {"type": "string"},  "A": {}}`,
		},
		"unknown fields ignored": {
			input:     `{"extra": 1, "body": {"functions": [{"name": "a", "result": {"type_schema": {}}}], "other": true}}`,
			functions: 1,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			doc, err := abi.Parse([]byte(tc.input))
			if tc.err != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.err)

				return
			}

			require.NoError(t, err)
			assert.Len(t, doc.Functions, tc.functions)

			if tc.definitions == "" {
				assert.Nil(t, doc.Definitions)
			} else {
				assert.Equal(t, tc.definitions, string(doc.Definitions))
			}
		})
	}
}

func TestParseCompressed(t *testing.T) {
	t.Parallel()

	plain, err := os.ReadFile(filepath.Join(testDataDir, "ft.abi.json"))
	require.NoError(t, err)

	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)

	compressed := enc.EncodeAll(plain, nil)
	require.NoError(t, enc.Close())
	require.True(t, abi.IsCompressed(compressed))
	require.False(t, abi.IsCompressed(plain))

	doc, err := abi.Parse(compressed)
	require.NoError(t, err)
	assert.Len(t, doc.Functions, 4)

	path := filepath.Join(t.TempDir(), "ft.abi.json.zst")
	require.NoError(t, os.WriteFile(path, compressed, 0o600))

	doc, err = abi.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ft", doc.Metadata.Name)
}

func TestParseCorruptCompressed(t *testing.T) {
	t.Parallel()

	_, err := abi.Parse([]byte{0x28, 0xb5, 0x2f, 0xfd, 0x00, 0x01})
	require.Error(t, err)
	assert.ErrorIs(t, err, abierrors.ErrParseABI)
}
