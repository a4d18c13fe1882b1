package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/MacroPower/abischema/cmd/abischema/commands"
)

const (
	cmdName = "abischema"

	shortDesc = "Generate type declarations for NEAR contract calls."
	longDesc  = `abischema converts the ABI of a NEAR smart contract into a JSON Schema
(draft-07) document describing the arguments of every contract function, and
compiles that schema into type declarations.

The argument is either a contract account ID, whose ABI is downloaded first, or
a path to a local ABI file starting with "./" or "../".

By default TypeScript declarations are written to ./contract_types.ts using
json2ts (json-schema-to-typescript). KCL schemas and the raw JSON Schema are
also supported.
`
)

func main() {
	cmd := commands.NewRootCmd(cmdName, shortDesc, longDesc)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, strings.TrimLeft(err.Error(), "\n"))
		os.Exit(1)
	}
}
