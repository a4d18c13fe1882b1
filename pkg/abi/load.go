package abi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/MacroPower/abischema/pkg/abierrors"
)

// zstdMagic is the frame header of zstd-compressed data.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

type envelope struct {
	Body          *body    `json:"body"`
	SchemaVersion string   `json:"schema_version"`
	Metadata      Metadata `json:"metadata"`
}

type body struct {
	RootSchema *rootSchema `json:"root_schema"`
	Functions  []Function  `json:"functions"`
}

type rootSchema struct {
	Definitions json.RawMessage `json:"definitions"`
}

// Load reads and parses the ABI document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", abierrors.ErrReadABI, path, err)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	slog.Debug("loaded abi",
		"path", path,
		"contract", doc.Metadata.Name,
		"functions", len(doc.Functions),
	)

	return doc, nil
}

// Parse decodes an ABI document. Compressed input is decompressed first.
func Parse(data []byte) (*Document, error) {
	if IsCompressed(data) {
		var err error

		data, err = Decompress(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", abierrors.ErrParseABI, err)
		}
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %w", abierrors.ErrParseABI, err)
	}

	if env.Body == nil {
		return nil, fmt.Errorf("%w: missing body", abierrors.ErrParseABI)
	}

	doc := &Document{
		SchemaVersion: env.SchemaVersion,
		Metadata:      env.Metadata,
		Functions:     env.Body.Functions,
	}

	if env.Body.RootSchema != nil && !isFalsy(env.Body.RootSchema.Definitions) {
		doc.Definitions = env.Body.RootSchema.Definitions
	}

	return doc, nil
}

// IsCompressed returns true if data begins with a zstd frame.
func IsCompressed(data []byte) bool {
	return bytes.HasPrefix(data, zstdMagic)
}

// Decompress decodes zstd-compressed data.
func Decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	defer dec.Close()

	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress zstd: %w", err)
	}

	return out, nil
}
