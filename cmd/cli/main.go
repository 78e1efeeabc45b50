// Package main is the entry point for the site-quote CLI.
package main

import (
	"os"

	"site-quote/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
