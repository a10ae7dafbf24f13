// Package main is the entry point for the sparkop CLI.
//
// sparkop installs, lists and removes Spark Operator releases on a
// Kubernetes cluster by driving helm and kubectl, and exports a scoped
// kubeconfig for the operator's elevated service account.
//
// Commands: list, install, uninstall, get-kubectl-config, config, doctor.
//
// For detailed usage information, run:
//
//	sparkop --help
package main

import (
	"fmt"
	"os"

	"github.com/mlops-platform/sparkop/cmd/sparkop/commands"
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
