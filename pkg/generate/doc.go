// Package generate runs the ABI to type declaration pipeline.
//
// A [Generator] resolves its input to either a local ABI file or a contract
// ID, downloads the ABI when needed, translates it to JSON Schema, compiles
// the schema with a [typegen.Compiler] and writes the result. Progress is
// broadcast to subscribers as events.
package generate
