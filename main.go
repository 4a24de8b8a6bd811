// Copyright (c) 2026 Quillbox Team
// Confstore - profile-scoped configuration store
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for Confstore.
//
// Usage:
//
//	go run . [flags]
//	./confstore [flags]
//
// This launches the Confstore CLI. See --help for options.
package main

import (
	"log"
	"os"

	"github.com/quillbox/confstore/ui/cli"
)

// main is the entrypoint for the Confstore CLI.
func main() {
	if err := cli.Execute(); err != nil {
		log.Printf("Confstore CLI error: %v", err)
		os.Exit(1)
	}
}
