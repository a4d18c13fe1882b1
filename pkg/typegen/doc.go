// Package typegen compiles generated JSON Schema documents into type
// declarations.
//
// Supported targets:
//
//   - typescript: runs the external `json2ts` tool (json-schema-to-typescript)
//     with additional properties disallowed, externally referenced
//     definitions declared and unknown types mapped to `unknown`.
//   - kcl: generates KCL schemas in-process with kcl-go.
//   - jsonschema: emits the schema itself, as JSON or YAML.
package typegen
