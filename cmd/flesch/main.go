// Package main is the entry point for the flesch CLI.
package main

import (
	"os"

	"github.com/f3rmion/flesch/cmd/flesch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
