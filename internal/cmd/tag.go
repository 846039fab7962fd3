// Package cmd contains the CLI command definitions for GitMuse.
package cmd

import (
	"context"
	"time"

	apperrors "github.com/gitmuse/gitmuse/internal/pkg/errors"
	"github.com/gitmuse/gitmuse/internal/pkg/version"
	"github.com/spf13/cobra"
)

// tagCommandTimeout bounds the tag-only flow, which may fetch remote tags.
const tagCommandTimeout = 2 * time.Minute

// NewTagCmd creates the tag command for tag-only mode.
func NewTagCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "tag [patch|minor|major]",
		Short: "Bump the version tag without committing",
		Long: `Compute and create the next semantic version tag without generating
a message or committing anything.

The highest existing vMAJOR.MINOR.PATCH tag is bumped according to the
given bump type (default from config, normally patch). A repository
with no semver tags starts at v0.1.0. Remote tags are fetched first so
the new tag does not collide with one pushed elsewhere.

Examples:
  gitmuse tag             # Bump with the configured default
  gitmuse tag minor       # v1.2.3 -> v1.3.0
  gitmuse tag --dry-run   # Show the would-be tag only`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), tagCommandTimeout)
			defer cancel()

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			bumpName := cfg.Tag.Bump
			if len(args) == 1 {
				bumpName = args[0]
			}
			bump, err := version.ParseBump(bumpName)
			if err != nil {
				return apperrors.Wrap(err, apperrors.ErrInvalidBumpType, "invalid bump type")
			}

			service, err := buildService(cfg, true)
			if err != nil {
				return err
			}
			return service.TagOnly(ctx, bump, dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the would-be tag without creating it")

	return cmd
}
