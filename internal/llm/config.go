package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// minKeyLength is the shortest string accepted as a real API key.
// Anything shorter is treated as a placeholder.
const minKeyLength = 8

// placeholderKeys are sentinel values that show up when someone copies a
// sample .env file without filling it in. They never reach the network.
var placeholderKeys = map[string]bool{
	"your_api_key":      true,
	"your-api-key":      true,
	"your_api_key_here": true,
	"changeme":          true,
	"xxx":               true,
	"todo":              true,
}

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "gemini", "anthropic", "openai", "mock"
	Provider string

	Gemini    GeminiConfig
	Anthropic AnthropicConfig
	OpenAI    OpenAIConfig

	// Timeout is the maximum duration for a single LLM request.
	// Default: 60s — guide generation routinely takes 15-30s.
	Timeout time.Duration
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional. Override for OpenRouter or compatible APIs.
}

// DefaultConfig returns a Config with sensible defaults.
// Gemini is the default provider; it is what the guide prompts were tuned on.
func DefaultConfig() Config {
	return Config{
		Provider: "gemini",
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Timeout: 60 * time.Second,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("LOVLEARN_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}

	if k := os.Getenv("LOVLEARN_GEMINI_API_KEY"); k != "" {
		cfg.Gemini.APIKey = k
	}
	if m := os.Getenv("LOVLEARN_GEMINI_MODEL"); m != "" {
		cfg.Gemini.Model = m
	}

	if k := os.Getenv("LOVLEARN_ANTHROPIC_API_KEY"); k != "" {
		cfg.Anthropic.APIKey = k
	}
	if m := os.Getenv("LOVLEARN_ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}

	if k := os.Getenv("LOVLEARN_OPENAI_API_KEY"); k != "" {
		cfg.OpenAI.APIKey = k
	}
	if m := os.Getenv("LOVLEARN_OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	if u := os.Getenv("LOVLEARN_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}

	return cfg
}

// DiscoverConfig probes standard API key env vars in priority order
// (Gemini → OpenAI → Anthropic) and returns a Config for the first
// provider whose key passes the credential check. Returns
// (Config{}, false) if none is found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("GEMINI_API_KEY"); usableKey(k) {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); usableKey(k) {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); usableKey(k) {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// Validate checks that the selected provider has a usable API key.
// The check happens here, before any client is constructed, so a missing
// credential is reported as configuration — not as a failed network call.
func (c Config) Validate() error {
	switch c.Provider {
	case "gemini":
		if !usableKey(c.Gemini.APIKey) {
			return &ErrMissingCredential{Provider: "gemini", EnvVar: "LOVLEARN_GEMINI_API_KEY"}
		}
	case "anthropic":
		if !usableKey(c.Anthropic.APIKey) {
			return &ErrMissingCredential{Provider: "anthropic", EnvVar: "LOVLEARN_ANTHROPIC_API_KEY"}
		}
	case "openai":
		if !usableKey(c.OpenAI.APIKey) {
			return &ErrMissingCredential{Provider: "openai", EnvVar: "LOVLEARN_OPENAI_API_KEY"}
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}

// usableKey reports whether s looks like a real credential: non-empty,
// long enough, and not a known placeholder sentinel.
func usableKey(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) < minKeyLength {
		return false
	}
	return !placeholderKeys[strings.ToLower(s)]
}
