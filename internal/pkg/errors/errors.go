// Package errors provides error types, exit-code mapping, and logging for GitMuse.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents the category of an error.
type ErrorCode int

const (
	// Soft conditions (Exit Code 0) - reported, but not failures of this tool
	ErrNothingToCommit ErrorCode = iota + 10
	ErrServiceUnavailable
	ErrModelNotLoaded

	// User errors (Exit Code 1)
	ErrInvalidConfig ErrorCode = iota + 100
	ErrInvalidBumpType
	ErrMissingAPIKey

	// Git errors (Exit Code 2)
	ErrGitCommandFailed ErrorCode = iota + 200
	ErrFileSystemError

	// Generation errors (Exit Code 3)
	ErrGenerationFailed ErrorCode = iota + 300
	ErrNetworkError
	ErrTimeout
)

// ExitCode returns the appropriate process exit code for an error code.
func (c ErrorCode) ExitCode() int {
	switch {
	case c < 100:
		return 0 // Soft conditions
	case c >= 100 && c < 200:
		return 1 // User errors
	case c >= 200 && c < 300:
		return 2 // Git errors
	default:
		return 3 // Generation errors
	}
}

// String returns a human-readable name for the error code.
func (c ErrorCode) String() string {
	switch c {
	case ErrNothingToCommit:
		return "NothingToCommit"
	case ErrServiceUnavailable:
		return "ServiceUnavailable"
	case ErrModelNotLoaded:
		return "ModelNotLoaded"
	case ErrInvalidConfig:
		return "InvalidConfig"
	case ErrInvalidBumpType:
		return "InvalidBumpType"
	case ErrMissingAPIKey:
		return "MissingAPIKey"
	case ErrGitCommandFailed:
		return "GitCommandFailed"
	case ErrFileSystemError:
		return "FileSystemError"
	case ErrGenerationFailed:
		return "GenerationFailed"
	case ErrNetworkError:
		return "NetworkError"
	case ErrTimeout:
		return "Timeout"
	default:
		return "Unknown"
	}
}

// AppError represents an application error with context.
type AppError struct {
	Code       ErrorCode
	Message    string
	Cause      error
	Suggestion string
	// Body holds a raw response body surfaced for diagnostics.
	Body string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithSuggestion adds a suggestion to the error.
func (e *AppError) WithSuggestion(suggestion string) *AppError {
	e.Suggestion = suggestion
	return e
}

// WithBody attaches a raw response body for diagnostics.
func (e *AppError) WithBody(body string) *AppError {
	e.Body = body
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with a code and message.
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// GetAppError extracts an AppError from an error chain.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// GetExitCode returns the appropriate exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return 0
	}
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Code.ExitCode()
	}
	return 1 // Default to user error
}

// IsSoft reports whether the error is a soft condition that should be
// reported without a failing exit status (endpoint unavailable, model
// not loaded, nothing to commit).
func IsSoft(err error) bool {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Code.ExitCode() == 0
	}
	return false
}

// Common error constructors with suggestions

// NewNothingToCommitError creates the soft error for an empty working tree.
func NewNothingToCommitError() *AppError {
	return &AppError{
		Code:    ErrNothingToCommit,
		Message: "nothing to commit, working tree clean",
	}
}

// NewServiceUnavailableError creates the soft error for an unreachable endpoint.
func NewServiceUnavailableError(endpoint string, err error) *AppError {
	return &AppError{
		Code:       ErrServiceUnavailable,
		Message:    fmt.Sprintf("inference endpoint %s is not reachable", endpoint),
		Cause:      err,
		Suggestion: "Start the local model server with 'ollama serve' and try again",
	}
}

// NewModelNotLoadedError creates the soft error for a model missing from the endpoint.
func NewModelNotLoadedError(model string) *AppError {
	return &AppError{
		Code:       ErrModelNotLoaded,
		Message:    fmt.Sprintf("model %q is not loaded on the inference endpoint", model),
		Suggestion: fmt.Sprintf("Pull it with 'ollama pull %s'", model),
	}
}

// NewGitError creates an error for git command failures.
func NewGitError(err error, output string) *AppError {
	appErr := &AppError{
		Code:    ErrGitCommandFailed,
		Message: "git command failed",
		Cause:   err,
	}
	if output != "" {
		appErr.Body = output
	}
	return appErr
}

// NewGenerationFailedError creates the fatal error for unusable generation output.
// The raw response body is surfaced verbatim for diagnostics.
func NewGenerationFailedError(body string) *AppError {
	return &AppError{
		Code:    ErrGenerationFailed,
		Message: "commit message generation failed after primary and fallback attempts",
		Body:    body,
	}
}

// NewTimeoutError creates an error for timeouts.
func NewTimeoutError(err error) *AppError {
	return &AppError{
		Code:       ErrTimeout,
		Message:    "request timed out",
		Cause:      err,
		Suggestion: "Check that the model server is responding and try again",
	}
}

// NewInvalidConfigError creates an error for invalid configuration.
func NewInvalidConfigError(message string) *AppError {
	return &AppError{
		Code:       ErrInvalidConfig,
		Message:    message,
		Suggestion: "Run 'gitmuse config init' to create a valid configuration file",
	}
}

// NewMissingAPIKeyError creates an error for a missing API key.
func NewMissingAPIKeyError(provider string) *AppError {
	return &AppError{
		Code:       ErrMissingAPIKey,
		Message:    fmt.Sprintf("API key is required for %s provider", provider),
		Suggestion: "Set it with 'gitmuse config set provider.api_key <your-key>' or the GITMUSE_PROVIDER_API_KEY environment variable",
	}
}
