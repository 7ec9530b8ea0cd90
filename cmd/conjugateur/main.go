// Package main is the entry point for the conjugateur CLI.
package main

import (
	"os"

	"github.com/cbueth/conjugateur-fr/cmd/conjugateur/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
