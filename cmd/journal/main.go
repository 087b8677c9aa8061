package main

import (
	"os"

	"github.com/ehjvfzekdalq/trading-journal-macos-sub000/cmd/journal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
