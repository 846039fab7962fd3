// Package cmd contains the CLI command definitions for GitMuse.
package cmd

import (
	"github.com/spf13/cobra"
)

// NewGenerateCmd creates the generate command as an alias for commit --dry-run.
func NewGenerateCmd() *cobra.Command {
	flags := &CommitFlags{
		DryRun: true, // Always dry-run for generate command
	}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a commit message without committing",
		Long: `Generate a commit message from your pending changes without
committing, pushing, or tagging.

This is equivalent to running 'gitmuse commit --dry-run'.

Examples:
  gitmuse generate              # Generate and display the message
  gitmuse generate -o msg.txt   # Save the message to a file`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommit(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.OutputFile, "output", "o", "", "Write generated message to file")

	return cmd
}
