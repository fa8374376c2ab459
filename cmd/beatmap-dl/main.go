package main

import (
	"os"

	"github.com/handiism/beatmap-browser/internal/commands"
)

func main() {
	if err := commands.New().Execute(); err != nil {
		os.Exit(1)
	}
}
