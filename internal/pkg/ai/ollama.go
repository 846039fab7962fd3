// Package ai provides inference provider interfaces and implementations for GitMuse.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/gitmuse/gitmuse/internal/pkg/errors"
)

const (
	// DefaultOllamaModel is the default model for Ollama.
	DefaultOllamaModel = "llama3"

	// DefaultOllamaEndpoint is the default API endpoint for Ollama.
	DefaultOllamaEndpoint = "http://localhost:11434"

	// OllamaGeneratePath is the completion endpoint path.
	OllamaGeneratePath = "/api/generate"

	// OllamaTagsPath is the model-listing endpoint path.
	OllamaTagsPath = "/api/tags"

	// DefaultTemperature is the default temperature for generation.
	DefaultTemperature = 0.2

	// DefaultMaxTokens is the default prediction budget.
	DefaultMaxTokens = 200

	// GenerateTimeout bounds a single generation request. Local models
	// can be slow on first load.
	GenerateTimeout = 120 * time.Second

	// ProbeTimeout is the short connect-timeout used purely to detect
	// whether the endpoint is reachable before doing real work.
	ProbeTimeout = 2 * time.Second
)

// OllamaProvider implements the Provider interface for Ollama.
type OllamaProvider struct {
	httpClient  *http.Client
	probeClient *http.Client
	config      ProviderConfig
}

// OllamaGenerateRequest represents a request to the Ollama generate API.
type OllamaGenerateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options *OllamaOptions `json:"options,omitempty"`
}

// OllamaOptions represents optional parameters for Ollama requests.
type OllamaOptions struct {
	Temperature float32 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

// OllamaGenerateResponse represents a non-streamed response from the
// Ollama generate API.
type OllamaGenerateResponse struct {
	Model     string `json:"model"`
	CreatedAt string `json:"created_at"`
	Response  string `json:"response"`
	Done      bool   `json:"done"`
	Error     string `json:"error,omitempty"`
}

// OllamaAPIError represents a non-200 response from the Ollama API.
type OllamaAPIError struct {
	StatusCode int
	Body       string
}

func (e *OllamaAPIError) Error() string {
	return fmt.Sprintf("ollama API error (status %d): %s", e.StatusCode, e.Body)
}

// NewOllamaProvider creates a new Ollama provider.
func NewOllamaProvider(config ProviderConfig) (*OllamaProvider, error) {
	if err := validateOllamaConfig(config); err != nil {
		return nil, err
	}

	if config.Model == "" {
		config.Model = DefaultOllamaModel
	}
	if config.Endpoint == "" {
		config.Endpoint = DefaultOllamaEndpoint
	}
	if config.Temperature == 0 {
		config.Temperature = DefaultTemperature
	}
	if config.MaxTokens == 0 {
		config.MaxTokens = DefaultMaxTokens
	}
	config.Endpoint = strings.TrimRight(config.Endpoint, "/")

	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 5,
		IdleConnTimeout:     90 * time.Second,
	}

	return &OllamaProvider{
		httpClient: &http.Client{
			Timeout:   GenerateTimeout,
			Transport: transport,
		},
		probeClient: &http.Client{
			Timeout: ProbeTimeout,
		},
		config: config,
	}, nil
}

// validateOllamaConfig validates the Ollama provider configuration.
// Ollama is local and needs no API key.
func validateOllamaConfig(config ProviderConfig) error {
	if config.Endpoint == "" {
		return nil
	}
	if strings.HasPrefix(config.Endpoint, "http://") || strings.HasPrefix(config.Endpoint, "https://") {
		return nil
	}
	return errors.New("endpoint must start with http:// or https://")
}

// Name returns the provider name.
func (p *OllamaProvider) Name() string {
	return "ollama"
}

// CheckAvailability probes the endpoint with a bare GET, then checks
// the model listing for the configured model via a textual match. Both
// failure modes are soft: the service being down is not a user error.
func (p *OllamaProvider) CheckAvailability(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.config.Endpoint+"/", nil)
	if err != nil {
		return err
	}
	resp, err := p.probeClient.Do(req)
	if err != nil {
		return apperrors.NewServiceUnavailableError(p.config.Endpoint, err)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	tagsReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.config.Endpoint+OllamaTagsPath, nil)
	if err != nil {
		return err
	}
	tagsResp, err := p.probeClient.Do(tagsReq)
	if err != nil {
		return apperrors.NewServiceUnavailableError(p.config.Endpoint, err)
	}
	defer tagsResp.Body.Close()

	body, err := io.ReadAll(tagsResp.Body)
	if err != nil {
		return apperrors.NewServiceUnavailableError(p.config.Endpoint, err)
	}
	if !strings.Contains(string(body), p.config.Model) {
		return apperrors.NewModelNotLoadedError(p.config.Model)
	}
	return nil
}

// Generate sends one synchronous, non-streamed completion request and
// returns the raw response text. Any status other than 200 is a hard
// failure for the attempt, with the response body surfaced.
func (p *OllamaProvider) Generate(ctx context.Context, prompt string) (string, error) {
	genReq := OllamaGenerateRequest{
		Model:  p.config.Model,
		Prompt: prompt,
		Stream: false, // single complete response expected
		Options: &OllamaOptions{
			Temperature: p.config.Temperature,
			NumPredict:  p.config.MaxTokens,
		},
	}

	apperrors.LogRequest("ollama", p.config.Endpoint, p.config.Model, len(prompt))
	startTime := time.Now()

	resp, err := p.doGenerate(ctx, genReq)
	if err != nil {
		var apiErr *OllamaAPIError
		if errors.As(err, &apiErr) {
			return "", apperrors.NewGenerationFailedError(apiErr.Body)
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return "", apperrors.NewTimeoutError(err)
		}
		// The transport failing mid-flight is the same soft condition
		// as the liveness probe failing.
		return "", apperrors.NewServiceUnavailableError(p.config.Endpoint, err)
	}

	apperrors.LogResponse("ollama", http.StatusOK, len(resp.Response), time.Since(startTime))

	if resp.Error != "" {
		return "", apperrors.NewGenerationFailedError(resp.Error)
	}
	return resp.Response, nil
}

// doGenerate performs the HTTP request to the Ollama generate API.
func (p *OllamaProvider) doGenerate(ctx context.Context, genReq OllamaGenerateRequest) (*OllamaGenerateResponse, error) {
	body, err := json.Marshal(genReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := p.config.Endpoint + OllamaGeneratePath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, &OllamaAPIError{
			StatusCode: httpResp.StatusCode,
			Body:       string(respBody),
		}
	}

	var resp OllamaGenerateResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &resp, nil
}

// Config returns the provider configuration (useful for testing).
func (p *OllamaProvider) Config() ProviderConfig {
	return p.config
}
