// Package main provides the entry point for the pubsync CLI tool.
package main

import (
	"github.com/zotools/pubsync/cmd/pubsync/cmd"
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
