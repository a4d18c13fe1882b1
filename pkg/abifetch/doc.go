// Package abifetch downloads contract ABI documents.
//
// Two fetchers are provided. [NearCLI] shells out to the `near` command line
// tool. [RPC] queries a NEAR JSON-RPC node for the ABI embedded in the
// contract and decompresses it locally.
//
// Both write the ABI to `<dir>/<contract-id>.abi.json` and report the path in
// a [Result].
package abifetch
