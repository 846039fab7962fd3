package ai

import (
	"strconv"
	"strings"
	"testing"
)

func TestPromptBuilder_RenderPrimary(t *testing.T) {
	builder, err := NewPromptBuilder()
	if err != nil {
		t.Fatalf("NewPromptBuilder() error = %v", err)
	}

	data := PromptData{
		Language:  "english",
		MaxLength: 102,
		Summary:   "renamed config loader",
	}
	got, err := builder.RenderPrimary(data)
	if err != nil {
		t.Fatalf("RenderPrimary() error = %v", err)
	}

	if !strings.Contains(got, "english") {
		t.Errorf("prompt %q missing language", got)
	}
	if !strings.Contains(got, strconv.Itoa(data.MaxLength)) {
		t.Errorf("prompt %q missing max length", got)
	}
	if !strings.Contains(got, "renamed config loader") {
		t.Errorf("prompt %q missing summary", got)
	}
}

func TestPromptBuilder_RenderFallback(t *testing.T) {
	builder, err := NewPromptBuilder()
	if err != nil {
		t.Fatalf("NewPromptBuilder() error = %v", err)
	}

	got, err := builder.RenderFallback(PromptData{
		Language:  "spanish",
		MaxLength: 48,
		Summary:   "cambio pequeno",
	})
	if err != nil {
		t.Fatalf("RenderFallback() error = %v", err)
	}

	if !strings.Contains(got, "spanish") || !strings.Contains(got, "48") || !strings.Contains(got, "cambio pequeno") {
		t.Errorf("fallback prompt %q missing rendered fields", got)
	}
	if len(got) >= len(PrimaryPromptTemplate) {
		t.Error("fallback prompt should be simpler than the primary prompt")
	}
}

func TestNewPromptBuilderWithTemplates(t *testing.T) {
	builder, err := NewPromptBuilderWithTemplates("custom {{.Summary}}", "short {{.Summary}}")
	if err != nil {
		t.Fatalf("NewPromptBuilderWithTemplates() error = %v", err)
	}

	got, err := builder.RenderPrimary(PromptData{Summary: "x"})
	if err != nil {
		t.Fatalf("RenderPrimary() error = %v", err)
	}
	if got != "custom x" {
		t.Errorf("RenderPrimary() = %q, want %q", got, "custom x")
	}
}

func TestNewPromptBuilderWithTemplates_EmptyFallsBackToDefaults(t *testing.T) {
	builder, err := NewPromptBuilderWithTemplates("", "")
	if err != nil {
		t.Fatalf("NewPromptBuilderWithTemplates() error = %v", err)
	}

	got, err := builder.RenderPrimary(PromptData{Language: "english", MaxLength: 102, Summary: "s"})
	if err != nil {
		t.Fatalf("RenderPrimary() error = %v", err)
	}
	if !strings.Contains(got, "commit message") {
		t.Errorf("default template not used, got %q", got)
	}
}

func TestNewPromptBuilderWithTemplates_InvalidTemplate(t *testing.T) {
	if _, err := NewPromptBuilderWithTemplates("{{.Unclosed", ""); err == nil {
		t.Error("NewPromptBuilderWithTemplates() should reject malformed template")
	}
}
