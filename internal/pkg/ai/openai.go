// Package ai provides inference provider interfaces and implementations for GitMuse.
package ai

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/gitmuse/gitmuse/internal/pkg/errors"
	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultOpenAIModel is the default model for OpenAI-compatible endpoints.
	DefaultOpenAIModel = "gpt-4o-mini"

	// openAITimeout bounds a single completion call.
	openAITimeout = 30 * time.Second
)

// OpenAIProvider implements the Provider interface for OpenAI-compatible
// endpoints. It exists for setups that front a local model with an
// OpenAI-compatible server; Ollama remains the default provider.
type OpenAIProvider struct {
	client *openai.Client
	config ProviderConfig
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(config ProviderConfig) (*OpenAIProvider, error) {
	if config.APIKey == "" {
		return nil, apperrors.NewMissingAPIKeyError("openai")
	}

	if config.Model == "" {
		config.Model = DefaultOpenAIModel
	}
	if config.Temperature == 0 {
		config.Temperature = DefaultTemperature
	}
	if config.MaxTokens == 0 {
		config.MaxTokens = DefaultMaxTokens
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.Endpoint != "" {
		clientConfig.BaseURL = config.Endpoint
	}
	clientConfig.HTTPClient = &http.Client{
		Timeout: openAITimeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 5,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// CheckAvailability lists models on the endpoint and checks for the
// configured model. An unreachable endpoint is a soft condition, same
// as with Ollama.
func (p *OpenAIProvider) CheckAvailability(ctx context.Context) error {
	models, err := p.client.ListModels(ctx)
	if err != nil {
		return apperrors.NewServiceUnavailableError(p.endpoint(), err)
	}
	for _, m := range models.Models {
		if strings.Contains(m.ID, p.config.Model) {
			return nil
		}
	}
	return apperrors.NewModelNotLoadedError(p.config.Model)
}

// Generate sends one completion request and returns the raw text.
func (p *OpenAIProvider) Generate(ctx context.Context, prompt string) (string, error) {
	apperrors.LogRequest("openai", p.endpoint(), p.config.Model, len(prompt))
	startTime := time.Now()

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.config.Model,
		Temperature: p.config.Temperature,
		MaxTokens:   p.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", apperrors.NewGenerationFailedError(apiErr.Message)
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return "", apperrors.NewTimeoutError(err)
		}
		return "", apperrors.NewServiceUnavailableError(p.endpoint(), err)
	}

	if len(resp.Choices) == 0 {
		return "", apperrors.NewGenerationFailedError("response contained no choices")
	}
	text := resp.Choices[0].Message.Content
	apperrors.LogResponse("openai", http.StatusOK, len(text), time.Since(startTime))
	return text, nil
}

func (p *OpenAIProvider) endpoint() string {
	if p.config.Endpoint != "" {
		return p.config.Endpoint
	}
	return "https://api.openai.com/v1"
}
