// Package ai provides inference provider interfaces and implementations for GitMuse.
package ai

import (
	"bytes"
	"text/template"
)

// PrimaryPromptTemplate is the rich first-attempt prompt. It instructs
// the model to produce only a commit message, in the selected language,
// within the maximum allowed length.
const PrimaryPromptTemplate = `Write a git commit message in {{.Language}} for the following changes.

Rules:
- One line only, at most {{.MaxLength}} characters
- Imperative mood, no trailing period
- Output the commit message only: no explanations, no quotes, no preamble

Changes:
{{.Summary}}`

// FallbackPromptTemplate is the deliberately simplified retry prompt
// used when the first attempt cleans to an empty message.
const FallbackPromptTemplate = `Describe this change in {{.Language}} in under {{.MaxLength}} characters. Output only the description: {{.Summary}}`

// PromptData contains the data used to render a prompt template.
type PromptData struct {
	Language  string
	MaxLength int
	Summary   string
}

// PromptBuilder renders the prompt templates. Templates are data, not
// branching logic: custom templates can replace the defaults wholesale.
type PromptBuilder struct {
	primary  *template.Template
	fallback *template.Template
}

// NewPromptBuilder creates a PromptBuilder with the default templates.
func NewPromptBuilder() (*PromptBuilder, error) {
	return NewPromptBuilderWithTemplates(PrimaryPromptTemplate, FallbackPromptTemplate)
}

// NewPromptBuilderWithTemplates creates a PromptBuilder from custom
// template text. Empty strings fall back to the defaults.
func NewPromptBuilderWithTemplates(primary, fallback string) (*PromptBuilder, error) {
	if primary == "" {
		primary = PrimaryPromptTemplate
	}
	if fallback == "" {
		fallback = FallbackPromptTemplate
	}

	pt, err := template.New("primary").Parse(primary)
	if err != nil {
		return nil, err
	}
	ft, err := template.New("fallback").Parse(fallback)
	if err != nil {
		return nil, err
	}

	return &PromptBuilder{primary: pt, fallback: ft}, nil
}

// RenderPrimary renders the first-attempt prompt.
func (b *PromptBuilder) RenderPrimary(data PromptData) (string, error) {
	return render(b.primary, data)
}

// RenderFallback renders the simplified retry prompt.
func (b *PromptBuilder) RenderFallback(data PromptData) (string, error) {
	return render(b.fallback, data)
}

func render(t *template.Template, data PromptData) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
