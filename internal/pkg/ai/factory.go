// Package ai provides inference provider interfaces and implementations for GitMuse.
package ai

import (
	"fmt"

	"github.com/gitmuse/gitmuse/internal/pkg/config"
)

// ProviderName constants for supported providers.
const (
	ProviderNameOllama = "ollama"
	ProviderNameOpenAI = "openai"
)

// NewProvider creates a new inference provider based on the configuration.
func NewProvider(cfg *config.ProviderConfig) (Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("provider configuration is required")
	}

	aiConfig := ProviderConfig{
		APIKey:      cfg.APIKey,
		Model:       cfg.Model,
		Endpoint:    cfg.Endpoint,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
	}

	switch cfg.Name {
	case ProviderNameOllama, "":
		// Default to the local endpoint if no provider specified
		return NewOllamaProvider(aiConfig)

	case ProviderNameOpenAI:
		return NewOpenAIProvider(aiConfig)

	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Name)
	}
}
