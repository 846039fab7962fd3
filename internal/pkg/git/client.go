// Package git provides Git operations for GitMuse.
package git

import (
	"context"
	"os/exec"
	"strings"
	"time"

	apperrors "github.com/gitmuse/gitmuse/internal/pkg/errors"
)

const (
	// CommandTimeout is the default timeout for local git commands.
	CommandTimeout = 10 * time.Second

	// NetworkTimeout is the timeout for git commands that touch the remote.
	NetworkTimeout = 60 * time.Second
)

// Client defines the interface for Git operations.
type Client interface {
	StagedDiff(ctx context.Context) (string, error)
	UnstagedDiff(ctx context.Context) (string, error)
	UntrackedFiles(ctx context.Context) ([]string, error)
	AddAll(ctx context.Context) error
	Commit(ctx context.Context, message string) error
	Push(ctx context.Context) error
	CurrentBranch(ctx context.Context) (string, error)
	HasRemote(ctx context.Context) (bool, error)
	FetchTags(ctx context.Context) error
	ListTags(ctx context.Context) ([]string, error)
	CreateTag(ctx context.Context, name string) error
	PushTag(ctx context.Context, name string) error
}

// DefaultClient implements the Client interface using exec.CommandContext.
type DefaultClient struct {
	// workDir is the working directory for git commands.
	// If empty, uses the current directory.
	workDir string
}

// NewClient creates a new DefaultClient.
func NewClient() *DefaultClient {
	return &DefaultClient{}
}

// NewClientWithWorkDir creates a new DefaultClient with a specific working directory.
func NewClientWithWorkDir(workDir string) *DefaultClient {
	return &DefaultClient{workDir: workDir}
}

// WorkDir returns the working directory git commands run in.
// Empty means the current directory.
func (c *DefaultClient) WorkDir() string {
	return c.workDir
}

// run executes a git command and returns its stdout.
func (c *DefaultClient) run(ctx context.Context, timeout time.Duration, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	if c.workDir != "" {
		cmd.Dir = c.workDir
	}

	output, err := cmd.Output()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", apperrors.NewTimeoutError(ctx.Err())
		}
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", apperrors.NewGitError(err, string(exitErr.Stderr))
		}
		return "", apperrors.NewGitError(err, "")
	}
	return string(output), nil
}

// runCombined executes a git command where only success matters,
// surfacing combined output on failure.
func (c *DefaultClient) runCombined(ctx context.Context, timeout time.Duration, args ...string) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	if c.workDir != "" {
		cmd.Dir = c.workDir
	}

	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return apperrors.NewTimeoutError(ctx.Err())
		}
		return apperrors.NewGitError(err, string(output))
	}
	return nil
}

// StagedDiff returns the diff of staged changes.
func (c *DefaultClient) StagedDiff(ctx context.Context) (string, error) {
	return c.run(ctx, CommandTimeout, "diff", "--cached")
}

// UnstagedDiff returns the diff of unstaged changes to tracked files.
func (c *DefaultClient) UnstagedDiff(ctx context.Context) (string, error) {
	return c.run(ctx, CommandTimeout, "diff")
}

// UntrackedFiles lists untracked files, respecting ignore rules.
func (c *DefaultClient) UntrackedFiles(ctx context.Context) ([]string, error) {
	output, err := c.run(ctx, CommandTimeout, "ls-files", "--others", "--exclude-standard")
	if err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(output)
	if trimmed == "" {
		return nil, nil
	}
	return strings.Split(trimmed, "\n"), nil
}

// AddAll stages all changes (git add .).
func (c *DefaultClient) AddAll(ctx context.Context) error {
	return c.runCombined(ctx, CommandTimeout, "add", ".")
}

// Commit executes a git commit with the given message.
func (c *DefaultClient) Commit(ctx context.Context, message string) error {
	return c.runCombined(ctx, CommandTimeout, "commit", "-m", message)
}

// Push pushes the current branch to the remote.
func (c *DefaultClient) Push(ctx context.Context) error {
	return c.runCombined(ctx, NetworkTimeout, "push")
}

// CurrentBranch returns the name of the current branch.
func (c *DefaultClient) CurrentBranch(ctx context.Context) (string, error) {
	output, err := c.run(ctx, CommandTimeout, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(output), nil
}

// HasRemote checks if the repository has a remote configured.
func (c *DefaultClient) HasRemote(ctx context.Context) (bool, error) {
	output, err := c.run(ctx, CommandTimeout, "remote")
	if err != nil {
		return false, err
	}
	return len(strings.TrimSpace(output)) > 0, nil
}

// FetchTags fetches remote tags so the next tag is computed against
// the remote's tag set rather than a stale local one.
func (c *DefaultClient) FetchTags(ctx context.Context) error {
	return c.runCombined(ctx, NetworkTimeout, "fetch", "--tags", "--quiet")
}

// ListTags lists all tags sorted by version, descending.
func (c *DefaultClient) ListTags(ctx context.Context) ([]string, error) {
	output, err := c.run(ctx, CommandTimeout, "tag", "-l", "--sort=-v:refname")
	if err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(output)
	if trimmed == "" {
		return nil, nil
	}
	return strings.Split(trimmed, "\n"), nil
}

// CreateTag creates a lightweight tag at HEAD.
func (c *DefaultClient) CreateTag(ctx context.Context, name string) error {
	return c.runCombined(ctx, CommandTimeout, "tag", name)
}

// PushTag pushes a single tag ref to the remote.
func (c *DefaultClient) PushTag(ctx context.Context, name string) error {
	return c.runCombined(ctx, NetworkTimeout, "push", "origin", name)
}
