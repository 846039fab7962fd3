// Package cmd contains the CLI command definitions for GitMuse.
package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/gitmuse/gitmuse/internal/app"
	"github.com/gitmuse/gitmuse/internal/pkg/ai"
	"github.com/gitmuse/gitmuse/internal/pkg/config"
	apperrors "github.com/gitmuse/gitmuse/internal/pkg/errors"
	"github.com/gitmuse/gitmuse/internal/pkg/git"
	"github.com/gitmuse/gitmuse/internal/pkg/history"
	"github.com/gitmuse/gitmuse/internal/pkg/summary"
	"github.com/gitmuse/gitmuse/internal/pkg/ui"
	"github.com/gitmuse/gitmuse/internal/pkg/version"
	"github.com/spf13/cobra"
)

// commandTimeout bounds one full pipeline run.
const commandTimeout = 5 * time.Minute

// CommitFlags holds the flags for the commit command.
type CommitFlags struct {
	DryRun     bool
	Yes        bool
	OutputFile string
	NoPush     bool
	NoTag      bool
	Bump       string
}

// NewCommitCmd creates the commit command.
func NewCommitCmd() *cobra.Command {
	flags := &CommitFlags{}

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Generate a commit message, commit, push, and tag",
		Long: `Generate a commit message from your pending changes using the local
model, then commit, push the current branch, and bump the version tag.

Exit code 0 also covers "nothing to commit" and "model server
unavailable"; inspect the output to tell those apart from a commit.

Examples:
  gitmuse commit               # Full pipeline with confirmation
  gitmuse commit --yes         # Skip the confirmation prompt
  gitmuse commit --dry-run     # Preview message and tag only
  gitmuse commit --bump minor  # Bump the minor version after commit
  gitmuse commit --no-tag      # Commit and push without tagging`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommit(cmd, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "Report the would-be message and tag without committing")
	cmd.Flags().BoolVarP(&flags.Yes, "yes", "y", false, "Skip confirmation and commit immediately")
	cmd.Flags().StringVarP(&flags.OutputFile, "output", "o", "", "Write generated message to file (implies --dry-run)")
	cmd.Flags().BoolVar(&flags.NoPush, "no-push", false, "Commit without pushing")
	cmd.Flags().BoolVar(&flags.NoTag, "no-tag", false, "Commit without bumping the version tag")
	cmd.Flags().StringVar(&flags.Bump, "bump", "", "Version bump type: patch, minor, or major")

	return cmd
}

// runCommit executes the commit command logic.
func runCommit(cmd *cobra.Command, flags *CommitFlags) error {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if flags.OutputFile != "" {
		flags.DryRun = true
	}

	bumpName := cfg.Tag.Bump
	if flags.Bump != "" {
		bumpName = flags.Bump
	}
	bump, err := version.ParseBump(bumpName)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrInvalidBumpType, "invalid --bump value")
	}

	service, err := buildService(cfg, flags.Yes || flags.DryRun)
	if err != nil {
		return err
	}

	opts := &app.Options{
		DryRun:      flags.DryRun,
		OutputFile:  flags.OutputFile,
		SkipConfirm: flags.Yes,
		NoPush:      flags.NoPush,
		NoTag:       flags.NoTag,
		Bump:        bump,
	}
	return service.Run(ctx, opts)
}

// loadConfig builds the immutable configuration from file, environment,
// and command-line flag overrides, in that priority order (flags win).
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	apperrors.SetVerbose(verbose)

	configPath, _ := cmd.Flags().GetString("config")
	mgr, err := config.NewManager(configPath)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInvalidConfig, "failed to create config manager")
	}

	// Flag overrides are applied before loading so they take highest
	// priority and never persist to the config file.
	if provider, _ := cmd.Flags().GetString("provider"); provider != "" {
		mgr.SetOverride("provider.name", provider)
	}
	if model, _ := cmd.Flags().GetString("model"); model != "" {
		mgr.SetOverride("provider.model", model)
	}
	if language, _ := cmd.Flags().GetString("language"); language != "" {
		mgr.SetOverride("commit.language", language)
	}

	cfg, err := mgr.Load()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInvalidConfig, "failed to load config")
	}

	if verbose {
		apperrors.Info("provider: %s, model: %s, language: %s",
			cfg.Provider.Name, cfg.Provider.Model, cfg.Commit.Language)
	}
	return cfg, nil
}

// buildService wires the pipeline dependencies from configuration.
func buildService(cfg *config.Config, nonInteractive bool) (*app.Service, error) {
	gitClient := git.NewClient()

	provider, err := ai.NewProvider(&cfg.Provider)
	if err != nil {
		return nil, err
	}

	prompts, err := ai.NewPromptBuilder()
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt templates: %w", err)
	}

	var uiMgr ui.Manager
	if nonInteractive {
		uiMgr = ui.NewNonInteractiveManager(cfg.UI.ColorEnabled)
	} else {
		uiMgr = ui.NewDefaultManager(cfg.UI.ColorEnabled)
	}

	var historyMgr history.Manager
	if cfg.History.Enabled {
		historyMgr = history.NewFileManager(cfg.History.FilePath, cfg.History.MaxEntries)
	}

	return app.NewService(
		gitClient,
		provider,
		summary.New(gitClient),
		prompts,
		uiMgr,
		historyMgr,
		cfg,
	), nil
}
