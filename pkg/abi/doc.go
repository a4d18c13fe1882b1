// Package abi provides the data model for NEAR contract ABI documents.
//
// Decoding is deliberately tolerant: type schemas with shapes the converter
// does not understand decode into unrecognized nodes instead of failing, so
// that a single exotic parameter never prevents the rest of a contract from
// being described.
//
// Documents may be plain JSON or zstd-compressed JSON, which is how ABIs are
// embedded into contract code.
package abi
