package message

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "already clean",
			raw:  "Add user authentication",
			want: "Add user authentication",
		},
		{
			name: "surrounding whitespace",
			raw:  "  Fix typo in README  ",
			want: "Fix typo in README",
		},
		{
			name: "newlines collapse to spaces",
			raw:  "Refactor config\nloader for\nnested keys",
			want: "Refactor config loader for nested keys",
		},
		{
			name: "runs of whitespace collapse",
			raw:  "Update   \t deps\n\n\nto latest",
			want: "Update deps to latest",
		},
		{
			name: "surrounding double quotes",
			raw:  `"Fix race in tag fetch"`,
			want: "Fix race in tag fetch",
		},
		{
			name: "surrounding single quotes and backticks",
			raw:  "`'Add retry to push'`",
			want: "Add retry to push",
		},
		{
			name: "surrounding slashes",
			raw:  `\Fix parser/`,
			want: "Fix parser",
		},
		{
			name: "here is preamble",
			raw:  "Here is a commit message: Add logging to git client",
			want: "Add logging to git client",
		},
		{
			name: "here's preamble",
			raw:  "Here's the message: Drop unused import",
			want: "Drop unused import",
		},
		{
			name: "commit message colon preamble",
			raw:  "Commit message: Simplify error wrapping",
			want: "Simplify error wrapping",
		},
		{
			name: "the commit message is preamble",
			raw:  "The commit message is: Bump minimum Go version",
			want: "Bump minimum Go version",
		},
		{
			name: "sure preamble",
			raw:  "Sure! Update CI matrix",
			want: "Update CI matrix",
		},
		{
			name: "spanish aqui preamble",
			raw:  "Aquí está el mensaje: Corrige el manejo de errores",
			want: "Corrige el manejo de errores",
		},
		{
			name: "spanish mensaje de commit preamble",
			raw:  "El mensaje de commit es: Agrega validación de entrada",
			want: "Agrega validación de entrada",
		},
		{
			name: "preamble inside quotes",
			raw:  `"Commit message: Fix flag parsing"`,
			want: "Fix flag parsing",
		},
		{
			name: "stacked preamble and artifacts",
			raw:  "Here is the commit message:\n\"Commit message: Handle empty diff\"",
			want: "Handle empty diff",
		},
		{
			name: "interior quotes preserved",
			raw:  `Rename "old" helper`,
			want: `Rename "old" helper`,
		},
		{
			name: "empty input",
			raw:  "",
			want: "",
		},
		{
			name: "whitespace only",
			raw:  " \n\t ",
			want: "",
		},
		{
			name: "artifacts only",
			raw:  "\"\" '' ``",
			want: "",
		},
		{
			name: "preamble with nothing after it",
			raw:  "Here is the commit message:",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clean(tt.raw)
			if got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"Add user authentication",
		"Here is the commit message: \"Fix flag parsing\"",
		"  spaced \n out \t message  ",
		strings.Repeat("long message segment ", 20),
		"",
	}

	for _, raw := range inputs {
		once := Clean(raw)
		twice := Clean(once)
		if once != twice {
			t.Errorf("Clean not idempotent for %q: first %q, second %q", raw, once, twice)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantLen int
		marker  bool
	}{
		{
			name:    "short message unchanged",
			input:   "Fix typo",
			wantLen: 8,
		},
		{
			name:    "exactly max length unchanged",
			input:   strings.Repeat("a", MaxLength),
			wantLen: MaxLength,
		},
		{
			name:    "one over gets cut",
			input:   strings.Repeat("a", MaxLength+1),
			wantLen: MaxLength,
			marker:  true,
		},
		{
			name:    "far over gets cut",
			input:   strings.Repeat("a", 500),
			wantLen: MaxLength,
			marker:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.input)
			if gotLen := utf8.RuneCountInString(got); gotLen != tt.wantLen {
				t.Errorf("Truncate() length = %d, want %d", gotLen, tt.wantLen)
			}
			if tt.marker && !strings.HasSuffix(got, Ellipsis) {
				t.Errorf("Truncate() = %q, want %q suffix", got, Ellipsis)
			}
			if !tt.marker && got != tt.input {
				t.Errorf("Truncate() = %q, want input unchanged", got)
			}
		})
	}
}

func TestTruncate_CountsRunesNotBytes(t *testing.T) {
	// 103 multi-byte runes must be cut the same way as 103 ASCII ones.
	input := strings.Repeat("é", MaxLength+1)

	got := Truncate(input)
	if gotLen := utf8.RuneCountInString(got); gotLen != MaxLength {
		t.Errorf("Truncate() rune length = %d, want %d", gotLen, MaxLength)
	}
	if !strings.HasSuffix(got, Ellipsis) {
		t.Errorf("Truncate() = %q, want %q suffix", got, Ellipsis)
	}
	if !utf8.ValidString(got) {
		t.Error("Truncate() produced invalid UTF-8")
	}
}
