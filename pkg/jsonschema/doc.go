// Package jsonschema converts contract ABI documents into JSON Schema.
//
// A [Translator] turns a single ABI type schema into a JSON Schema fragment,
// and a [Transformer] assembles those fragments into a draft-07 document with
// one object property per contract function. Shapes that cannot be expressed
// degrade to an empty schema and are reported as a [Warning], so callers can
// detect lossy output without conversion ever failing.
//
// The package never resolves or inlines references. [UnresolvedRefs] can be
// used to check a finished document for references that do not point into it.
package jsonschema
