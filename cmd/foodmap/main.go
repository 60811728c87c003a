// Package main provides the entry point for the foodmap CLI tool.
package main

import (
	"github.com/foodmap/foodmap/cmd/foodmap/cmd"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
