package llm

import (
	"encoding/json"
	"fmt"
	"time"
)

// ErrMissingCredential indicates no usable API key is configured.
// It is raised before any network I/O happens.
type ErrMissingCredential struct {
	Provider string
	EnvVar   string
}

func (e *ErrMissingCredential) Error() string {
	if e.EnvVar != "" {
		return fmt.Sprintf("no usable API key for %s provider: set %s", e.Provider, e.EnvVar)
	}
	return fmt.Sprintf("no usable API key for %s provider", e.Provider)
}

// ErrRateLimit indicates the provider rejected the call with a 429.
type ErrRateLimit struct {
	StatusCode int
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (status %d): %v", e.StatusCode, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrUpstream indicates the provider returned a non-success status
// other than rate limiting, or was unreachable.
type ErrUpstream struct {
	StatusCode int // 0 when the transport failed before a status arrived
	Err        error
}

func (e *ErrUpstream) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("upstream provider error (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("upstream provider unreachable: %v", e.Err)
}

func (e *ErrUpstream) Unwrap() error { return e.Err }

// ErrEmptyResponse indicates the provider answered successfully but the
// response carried no usable text.
type ErrEmptyResponse struct {
	Model string
}

func (e *ErrEmptyResponse) Error() string {
	return fmt.Sprintf("empty response from model %s", e.Model)
}

// ErrInvalidResponse indicates the model returned content that cannot be
// decoded into the requested schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded indicates the response was truncated because it
// hit the MaxTokens limit.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}
