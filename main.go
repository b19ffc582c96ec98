// Package main is the entry point for the sdmetrics CLI tool, which parses
// Pokemon Showdown battle transcripts and computes team win-rate metrics.
package main

import "github.com/vgcstats/go-showdown-metrics/cmd"

func main() {
	cmd.Execute()
}
