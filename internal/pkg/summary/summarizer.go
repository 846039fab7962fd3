// Package summary derives a bounded change fragment from pending repository changes.
package summary

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gitmuse/gitmuse/internal/pkg/git"
)

const (
	// PrimaryLines is the fragment line bound for the primary prompt.
	PrimaryLines = 5

	// FallbackLines is the fragment line bound for the simplified retry prompt.
	FallbackLines = 3
)

// Source indicates which change source produced the fragment.
// The three sources are mutually exclusive, in priority order.
type Source int

const (
	SourceNone Source = iota
	SourceStaged
	SourceUnstaged
	SourceUntracked
)

// String returns the string representation of a Source.
func (s Source) String() string {
	switch s {
	case SourceStaged:
		return "staged"
	case SourceUnstaged:
		return "unstaged"
	case SourceUntracked:
		return "untracked"
	default:
		return "none"
	}
}

// Fragment is an immutable textual representation of pending changes.
type Fragment struct {
	Source Source
	Text   string
}

// Empty reports whether no change source yielded content.
func (f Fragment) Empty() bool {
	return f.Source == SourceNone || strings.TrimSpace(f.Text) == ""
}

// Summarizer gathers pending repository changes into a Fragment.
type Summarizer struct {
	git git.Client
	// readFile reads an untracked file's contents; overridable in tests.
	readFile func(name string) ([]byte, error)
}

// New creates a Summarizer backed by the given git client.
func New(client git.Client) *Summarizer {
	return &Summarizer{
		git:      client,
		readFile: os.ReadFile,
	}
}

// NewWithReader creates a Summarizer with a custom file reader.
func NewWithReader(client git.Client, readFile func(string) ([]byte, error)) *Summarizer {
	return &Summarizer{git: client, readFile: readFile}
}

// Summarize produces a Fragment from the first non-empty source:
// staged diff, then unstaged diff, then untracked file contents with
// "New file: <name>" headers. An empty Fragment means nothing to commit.
func (s *Summarizer) Summarize(ctx context.Context) (Fragment, error) {
	staged, err := s.git.StagedDiff(ctx)
	if err != nil {
		return Fragment{}, err
	}
	if strings.TrimSpace(staged) != "" {
		return Fragment{Source: SourceStaged, Text: staged}, nil
	}

	unstaged, err := s.git.UnstagedDiff(ctx)
	if err != nil {
		return Fragment{}, err
	}
	if strings.TrimSpace(unstaged) != "" {
		return Fragment{Source: SourceUnstaged, Text: unstaged}, nil
	}

	files, err := s.git.UntrackedFiles(ctx)
	if err != nil {
		return Fragment{}, err
	}
	if len(files) == 0 {
		return Fragment{}, nil
	}

	base := ""
	if c, ok := s.git.(*git.DefaultClient); ok {
		base = c.WorkDir()
	}

	var sb strings.Builder
	for _, name := range files {
		path := name
		if base != "" {
			path = filepath.Join(base, name)
		}
		content, err := s.readFile(path)
		if err != nil {
			// Unreadable untracked files still count as a change.
			fmt.Fprintf(&sb, "New file: %s\n", name)
			continue
		}
		fmt.Fprintf(&sb, "New file: %s\n%s\n", name, content)
	}
	return Fragment{Source: SourceUntracked, Text: sb.String()}, nil
}

// isSafeRune reports whether r belongs to the character subset safe to
// embed in a request payload.
func isSafeRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == ' ' || r == '.' || r == '_' || r == '-':
		return true
	default:
		return false
	}
}

// Sanitize reduces text to its first maxLines lines and strips it to
// the alphanumeric/space/./_/- subset, collapsing runs of whitespace.
// This protects the request payload from arbitrary diff content such
// as embedded quotes, control characters, and unterminated escapes.
func Sanitize(text string, maxLines int) string {
	lines := strings.Split(text, "\n")
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}

	var sb strings.Builder
	for _, line := range lines {
		for _, r := range line {
			if isSafeRune(r) {
				sb.WriteRune(r)
			} else {
				sb.WriteRune(' ')
			}
		}
		sb.WriteRune(' ')
	}

	return strings.Join(strings.Fields(sb.String()), " ")
}
