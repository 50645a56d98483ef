package main

import (
	"os"

	"github.com/ai-stack/stackbuilder/internal/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
