// cmd/taskboard/main.go
//
// This is the entry point for the taskboard CLI.
//
// Flow:
// 1. Resolve the project directory and create .taskboard/ if needed
// 2. Load config.yaml, then apply flag overrides
// 3. Launch the TUI; tasks live in memory until the program exits

package main

import (
	"fmt"
	"os"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
