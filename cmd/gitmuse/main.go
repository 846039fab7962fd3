// Package main is the entry point for the GitMuse CLI application.
// GitMuse generates Git commit messages with a locally hosted language
// model, then commits, pushes, and bumps a semantic version tag.
package main

import (
	"fmt"
	"os"

	"github.com/gitmuse/gitmuse/internal/cmd"
	apperrors "github.com/gitmuse/gitmuse/internal/pkg/errors"
)

// Version information - set via ldflags during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := cmd.NewRootCmd(version, commit, date)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if appErr := apperrors.GetAppError(err); appErr != nil {
			if appErr.Suggestion != "" {
				fmt.Fprintf(os.Stderr, "Suggestion: %s\n", appErr.Suggestion)
			}
			if appErr.Body != "" {
				fmt.Fprintf(os.Stderr, "Response body: %s\n", appErr.Body)
			}
		}
		os.Exit(apperrors.GetExitCode(err))
	}
}
