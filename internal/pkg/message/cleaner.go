// Package message post-processes model output into a valid commit message.
package message

import (
	"regexp"
	"strings"
)

const (
	// MaxLength is the maximum length of a commit message in characters.
	MaxLength = 102

	// truncateAt is where the message is cut when MaxLength is exceeded.
	truncateAt = 99

	// Ellipsis marks a truncated message.
	Ellipsis = "..."

	// FallbackMaxLength is the target length for the simplified retry prompt.
	FallbackMaxLength = 48
)

// preamblePatterns matches boilerplate the model tends to put in front
// of the actual message, in English and Spanish.
var preamblePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^here(?: is|'s) (?:a |the |your )?[^:]*:\s*`),
	regexp.MustCompile(`(?i)^(?:the )?commit message(?: (?:is|would be))?:\s*`),
	regexp.MustCompile(`(?i)^sure[,!.]\s*`),
	regexp.MustCompile(`(?i)^aqu[ií] (?:está|esta|tienes) [^:]*:\s*`),
	regexp.MustCompile(`(?i)^(?:el )?mensaje de commit(?: (?:es|ser[ií]a))?:\s*`),
}

// artifactCutset holds the quote and slash characters trimmed from both ends.
const artifactCutset = "\"'`\\/ \t"

// Clean turns raw model output into a single-line commit message:
// known preamble phrases are removed, whitespace and newlines collapse
// to single spaces, surrounding quote and slash artifacts are trimmed,
// and the result is truncated to MaxLength. Clean is idempotent.
func Clean(raw string) string {
	s := strings.TrimSpace(raw)

	// Strip to a fixpoint so stacked artifacts ("Commit message:
	// \"Commit message: fix\"") come off in one pass.
	for {
		prev := s
		s = strings.Join(strings.Fields(s), " ")
		for _, re := range preamblePatterns {
			s = re.ReplaceAllString(s, "")
		}
		s = strings.Trim(s, artifactCutset)
		if s == prev {
			break
		}
	}

	return Truncate(s)
}

// Truncate enforces the MaxLength invariant: messages longer than
// MaxLength characters are cut to truncateAt characters plus the
// Ellipsis marker, for a total of exactly MaxLength.
func Truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= MaxLength {
		return s
	}
	return string(runes[:truncateAt]) + Ellipsis
}
