// Package main provides the entry point for the commons CLI tool.
package main

import (
	"context"
	"os"

	"github.com/everypolitician/commons-tools/cmd/commons/app"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	application, err := app.New(version, commit, date, builtBy)
	if err != nil {
		app.ExitOnError(err)
	}

	// Cancelling on SIGINT/SIGTERM aborts in-flight requests; files are
	// only ever replaced by rename, so an interrupted run leaves them intact.
	ctx, cancel := app.ContextWithSignals(context.Background())
	defer cancel()

	if err := application.Execute(ctx, os.Args[1:]); err != nil {
		app.ExitOnError(err)
	}
}
