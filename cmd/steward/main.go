// Package main provides the steward CLI.
//
// steward checks, normalizes and queries YAML or JSON documents against
// record types declared in a schema file:
//
//	steward check   --schema schema.yaml --type Person person.yaml
//	steward normalize --schema schema.yaml --type Person person.yaml -o out.json
//	steward get     --schema schema.yaml --type Person person.yaml friends[0].name
//	steward dump    --schema schema.yaml --type Person person.yaml
//
// Flags may also come from steward.yaml in the working directory and from
// STEWARD_* environment variables.
package main

import (
	"fmt"
	"os"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
