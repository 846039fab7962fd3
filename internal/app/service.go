// Package app contains the application layer with business orchestration logic.
package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gitmuse/gitmuse/internal/pkg/ai"
	"github.com/gitmuse/gitmuse/internal/pkg/config"
	apperrors "github.com/gitmuse/gitmuse/internal/pkg/errors"
	"github.com/gitmuse/gitmuse/internal/pkg/git"
	"github.com/gitmuse/gitmuse/internal/pkg/history"
	"github.com/gitmuse/gitmuse/internal/pkg/message"
	"github.com/gitmuse/gitmuse/internal/pkg/summary"
	"github.com/gitmuse/gitmuse/internal/pkg/ui"
	"github.com/gitmuse/gitmuse/internal/pkg/version"
)

// writeFile is a variable to allow mocking in tests.
var writeFile = os.WriteFile

// Options contains options for the commit workflow.
type Options struct {
	DryRun      bool
	OutputFile  string
	SkipConfirm bool
	NoPush      bool
	NoTag       bool
	Bump        version.Bump
}

// Service orchestrates the summarize, generate, commit, and tag pipeline.
// The whole flow is sequential and synchronous.
type Service struct {
	gitClient  git.Client
	provider   ai.Provider
	summarizer *summary.Summarizer
	prompts    *ai.PromptBuilder
	uiManager  ui.Manager
	historyMgr history.Manager
	config     *config.Config
}

// NewService creates a new Service with the given dependencies.
func NewService(
	gitClient git.Client,
	provider ai.Provider,
	summarizer *summary.Summarizer,
	prompts *ai.PromptBuilder,
	uiManager ui.Manager,
	historyMgr history.Manager,
	cfg *config.Config,
) *Service {
	return &Service{
		gitClient:  gitClient,
		provider:   provider,
		summarizer: summarizer,
		prompts:    prompts,
		uiManager:  uiManager,
		historyMgr: historyMgr,
		config:     cfg,
	}
}

// Run executes the commit workflow: summarize pending changes, generate
// a commit message (with one fallback attempt), commit, push, and bump
// the version tag.
//
// Soft conditions (nothing to commit, endpoint unreachable, model not
// loaded) are reported and return nil so the process exits cleanly.
func (s *Service) Run(ctx context.Context, opts *Options) error {
	if opts == nil {
		opts = &Options{}
	}

	frag, err := s.summarizer.Summarize(ctx)
	if err != nil {
		return err
	}
	if frag.Empty() {
		s.uiManager.ShowInfo("Nothing to commit. Working tree is clean.")
		return nil
	}
	apperrors.Debug("change source: %s (%d bytes)", frag.Source, len(frag.Text))

	if err := s.provider.CheckAvailability(ctx); err != nil {
		if apperrors.IsSoft(err) {
			s.reportSoft(err)
			return nil
		}
		return err
	}

	spinner := s.uiManager.ShowSpinner("Generating commit message...")
	spinner.Start()
	msg, attempts, err := s.generate(ctx, frag)
	spinner.Stop()
	if err != nil {
		if apperrors.IsSoft(err) {
			s.reportSoft(err)
			return nil
		}
		return err
	}

	s.saveHistory(&history.Entry{
		Message:   msg,
		Source:    frag.Source.String(),
		Provider:  s.provider.Name(),
		Model:     s.config.Provider.Model,
		Language:  s.config.Commit.Language,
		Attempts:  attempts,
		Committed: !opts.DryRun,
	})

	if opts.DryRun {
		return s.reportDryRun(ctx, opts, msg)
	}

	s.uiManager.DisplayMessage(msg)
	if !opts.SkipConfirm {
		confirmed, err := s.uiManager.PromptConfirm("Commit with this message?")
		if err != nil {
			return fmt.Errorf("failed to prompt user: %w", err)
		}
		if !confirmed {
			s.uiManager.ShowInfo("Commit cancelled.")
			return nil
		}
	}

	if err := s.gitClient.AddAll(ctx); err != nil {
		return err
	}
	if err := s.gitClient.Commit(ctx, msg); err != nil {
		return err
	}
	s.uiManager.ShowSuccess("Committed: " + msg)

	hasRemote, err := s.gitClient.HasRemote(ctx)
	if err != nil {
		return err
	}
	if hasRemote && !opts.NoPush && s.config.Commit.Push {
		if err := s.gitClient.Push(ctx); err != nil {
			return err
		}
		s.uiManager.ShowSuccess("Pushed current branch")
	}

	// The tag bump happens only after a successful commit and push.
	if opts.NoTag || !s.config.Tag.Enabled {
		return nil
	}
	return s.bumpTag(ctx, opts.Bump, hasRemote)
}

// generate drives the two-attempt prompt/response exchange. The first
// attempt uses the rich prompt; if cleanup yields an empty message, one
// retry runs with the simplified prompt and a shorter target length.
// There are no further retries beyond that fallback.
func (s *Service) generate(ctx context.Context, frag summary.Fragment) (string, int, error) {
	apperrors.LogAttempt(1, message.MaxLength)
	prompt, err := s.prompts.RenderPrimary(ai.PromptData{
		Language:  s.config.Commit.Language,
		MaxLength: message.MaxLength,
		Summary:   summary.Sanitize(frag.Text, summary.PrimaryLines),
	})
	if err != nil {
		return "", 0, err
	}

	raw, err := s.provider.Generate(ctx, prompt)
	if err != nil {
		return "", 1, err
	}
	if msg := message.Clean(raw); msg != "" {
		return msg, 1, nil
	}

	apperrors.LogAttempt(2, message.FallbackMaxLength)
	fallbackPrompt, err := s.prompts.RenderFallback(ai.PromptData{
		Language:  s.config.Commit.Language,
		MaxLength: message.FallbackMaxLength,
		Summary:   summary.Sanitize(frag.Text, summary.FallbackLines),
	})
	if err != nil {
		return "", 1, err
	}

	raw, err = s.provider.Generate(ctx, fallbackPrompt)
	if err != nil {
		return "", 2, err
	}
	if msg := message.Clean(raw); msg != "" {
		return msg, 2, nil
	}
	return "", 2, apperrors.NewGenerationFailedError(raw)
}

// bumpTag fetches remote tags, computes the next version tag, creates
// it, and publishes it.
func (s *Service) bumpTag(ctx context.Context, bump version.Bump, hasRemote bool) error {
	if hasRemote {
		if err := s.gitClient.FetchTags(ctx); err != nil {
			return err
		}
	}

	tags, err := s.gitClient.ListTags(ctx)
	if err != nil {
		return err
	}
	next := version.Next(tags, bump)

	if err := s.gitClient.CreateTag(ctx, next); err != nil {
		return err
	}
	if hasRemote {
		if err := s.gitClient.PushTag(ctx, next); err != nil {
			return err
		}
	}
	s.uiManager.ShowSuccess("Tagged " + next)
	return nil
}

// TagOnly performs the version bump without summarization or message
// generation. With dryRun the would-be tag is reported and nothing is
// created; the preview reads local tags only, so the repository stays
// untouched.
func (s *Service) TagOnly(ctx context.Context, bump version.Bump, dryRun bool) error {
	hasRemote, err := s.gitClient.HasRemote(ctx)
	if err != nil {
		return err
	}

	if dryRun {
		tags, err := s.gitClient.ListTags(ctx)
		if err != nil {
			return err
		}
		s.uiManager.ShowInfo("Would create tag " + version.Next(tags, bump))
		return nil
	}

	return s.bumpTag(ctx, bump, hasRemote)
}

// reportDryRun shows the would-be commit message and tag, or writes the
// message to a file, without mutating the repository.
func (s *Service) reportDryRun(ctx context.Context, opts *Options, msg string) error {
	if opts.OutputFile != "" {
		if err := writeFile(opts.OutputFile, []byte(msg), 0644); err != nil {
			return fmt.Errorf("failed to write to file %s: %w", opts.OutputFile, err)
		}
		s.uiManager.ShowSuccess("Message written to " + opts.OutputFile)
		return nil
	}

	s.uiManager.DisplayMessage(msg)
	if !opts.NoTag && s.config.Tag.Enabled {
		tags, err := s.gitClient.ListTags(ctx)
		if err != nil {
			return err
		}
		s.uiManager.ShowInfo("Would create tag " + version.Next(tags, opts.Bump))
	}
	s.uiManager.ShowInfo("Dry run complete. No commit, push, or tag was made.")
	return nil
}

// reportSoft prints a soft condition along with its suggestion.
func (s *Service) reportSoft(err error) {
	s.uiManager.ShowInfo(err.Error())
	if appErr := apperrors.GetAppError(err); appErr != nil && appErr.Suggestion != "" {
		s.uiManager.ShowInfo(appErr.Suggestion)
	}
}

// saveHistory records the generation outcome, if history is enabled.
// History failures never fail the commit.
func (s *Service) saveHistory(entry *history.Entry) {
	if s.historyMgr == nil || s.config == nil || !s.config.History.Enabled {
		return
	}
	if err := s.historyMgr.Save(entry); err != nil {
		apperrors.Warn("failed to save history entry: %v", err)
	}
}
