package main

import (
	"os"

	"github.com/auszug-dev/auszug/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
