// Command algo runs classic sorting, search, graph, dynamic programming,
// greedy and number theory algorithms step by step in the terminal, either
// as an interactive visualizer (algo tui) or as one-shot reports (algo run,
// algo compare).
package main

import (
	"os"

	"github.com/kazumasamatsumoto/algo/internal/cli"
)

// Build variables set by ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd := cli.NewRootCommand(version, commit, date)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
