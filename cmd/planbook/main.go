// Package main provides the CLI entry point for planbook.
package main

import (
	"os"

	"planbook/internal/cli"
	"planbook/internal/log"
)

func main() {
	err := cli.NewRootCmd().Execute()
	log.Close()
	if err != nil {
		os.Exit(1)
	}
}
