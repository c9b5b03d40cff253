package main

import (
	"os"

	"github.com/zero-day-ai/jsonschema/internal/commands"
)

func main() {
	if err := commands.RootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
