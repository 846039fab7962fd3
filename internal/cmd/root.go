// Package cmd contains the CLI command definitions for GitMuse.
package cmd

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for the GitMuse CLI.
func NewRootCmd(version, commitHash, date string) *cobra.Command {
	commitCmd := NewCommitCmd()

	rootCmd := &cobra.Command{
		Use:   "gitmuse",
		Short: "Commit messages and version tags from a local model",
		Long: `GitMuse generates a git commit message with a locally hosted language
model, commits and pushes the result, and bumps a semantic version tag.

It summarizes your pending changes (staged diff, unstaged diff, or new
files), sends a bounded summary to a local inference endpoint (Ollama by
default), cleans up the returned text, and drives the commit/push/tag
flow. The tag bump can also run on its own via 'gitmuse tag'.`,
		Version: version,
		// Default action is to run the commit command
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := &CommitFlags{}
			flags.DryRun, _ = cmd.Flags().GetBool("dry-run")
			flags.Yes, _ = cmd.Flags().GetBool("yes")
			flags.OutputFile, _ = cmd.Flags().GetString("output")
			flags.NoPush, _ = cmd.Flags().GetBool("no-push")
			flags.NoTag, _ = cmd.Flags().GetBool("no-tag")
			flags.Bump, _ = cmd.Flags().GetString("bump")

			return runCommit(cmd, flags)
		},
	}

	rootCmd.SetVersionTemplate(`GitMuse {{.Version}}
Commit: ` + commitHash + `
Built:  ` + date + "\n")

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().String("config", "", "Config file path (default: ~/.gitmuse/config.yaml)")
	rootCmd.PersistentFlags().String("provider", "", "Inference provider to use (ollama, openai)")
	rootCmd.PersistentFlags().String("model", "", "Model to use")
	rootCmd.PersistentFlags().String("language", "", "Language of the generated message (default: english)")

	// Commit flags on the root command for the default action
	rootCmd.Flags().Bool("dry-run", false, "Report the would-be message and tag without committing")
	rootCmd.Flags().BoolP("yes", "y", false, "Skip confirmation and commit immediately")
	rootCmd.Flags().StringP("output", "o", "", "Write generated message to file (implies --dry-run)")
	rootCmd.Flags().Bool("no-push", false, "Commit without pushing")
	rootCmd.Flags().Bool("no-tag", false, "Commit without bumping the version tag")
	rootCmd.Flags().String("bump", "", "Version bump type: patch, minor, or major")

	// Subcommands
	rootCmd.AddCommand(commitCmd)
	rootCmd.AddCommand(NewGenerateCmd())
	rootCmd.AddCommand(NewTagCmd())
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewHistoryCmd())

	return rootCmd
}
