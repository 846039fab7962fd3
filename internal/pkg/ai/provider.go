// Package ai provides inference provider interfaces and implementations for GitMuse.
package ai

import (
	"context"
)

// ProviderConfig contains configuration for an inference provider.
type ProviderConfig struct {
	APIKey      string
	Model       string
	Endpoint    string
	Temperature float32
	MaxTokens   int
}

// Provider defines the interface for inference providers.
//
// CheckAvailability returns a soft AppError (exit code 0) when the
// endpoint is unreachable or the configured model is not loaded;
// callers report those conditions and exit without error status.
type Provider interface {
	Name() string
	CheckAvailability(ctx context.Context) error
	Generate(ctx context.Context, prompt string) (string, error)
}
