// Package main is the entry point for the gcpboot CLI.
//
// gcpboot bootstraps Google Cloud projects: it proposes a project ID
// from a configured prefix plus a random suffix, creates the project via
// gcloud (retrying with fresh IDs on rejection), persists the final ID,
// and links the project to an open billing account.
//
// Commands: init, billing, doctor, version.
//
// For detailed usage information, run:
//
//	gcpboot --help
package main

import (
	"fmt"
	"os"

	"github.com/agentverse/gcpboot/cmd/gcpboot/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
