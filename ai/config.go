// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import (
	"errors"
	"strings"
	"time"
)

// Supported remote model backends.
const (
	// BackendLangchain talks to the model through langchaingo's OpenAI client.
	BackendLangchain = "langchaingo"
	// BackendGoOpenAI talks to the model through sashabaranov/go-openai.
	BackendGoOpenAI = "go-openai"
)

// DefaultHost is the OpenAI API base URL.
const DefaultHost = "https://api.openai.com/v1"

// Config holds configuration for the remote chat model.
type Config struct {
	// Backend selects the client library.
	// Default: "langchaingo"
	Backend string

	// Host is the base URL of an OpenAI-compatible chat completions API.
	// Example: "http://localhost:11434/v1" for a local server
	Host string

	// APIKey authenticates against the remote API. An empty key means the
	// remote model is not configured and answers come from the local corpus.
	APIKey string

	// Model is the chat model identifier.
	// Default: "gpt-4o-mini"
	Model string

	// MaxTokens caps the length of a completion.
	// Default: 1000
	MaxTokens int

	// Temperature is the sampling temperature (0-2).
	// Default: 0.7
	Temperature float64

	// TopP is the nucleus sampling mass (0-1].
	// Default: 1
	TopP float64

	// Timeout bounds a single remote call. Zero disables the timeout.
	// Default: 30s
	Timeout time.Duration

	// RequestsPerMinute budgets remote calls. Zero means unlimited.
	RequestsPerMinute int

	// Burst is the number of calls allowed at once under the budget.
	// Defaults to 1 when RequestsPerMinute is set.
	Burst int

	// MaxRetries is the number of extra attempts after a transport failure.
	// Retries share the Timeout budget.
	// Default: 0
	MaxRetries int

	// RetryDelay is the wait before the first retry; it doubles after each.
	// Default: 500ms
	RetryDelay time.Duration
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithBackend sets the client library.
func WithBackend(backend string) ConfigOption {
	return func(c *Config) {
		c.Backend = backend
	}
}

// WithHost sets the API base URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithAPIKey sets the API credential.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithModel sets the chat model identifier.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		c.Model = model
	}
}

// WithMaxTokens sets the completion length cap.
func WithMaxTokens(n int) ConfigOption {
	return func(c *Config) {
		c.MaxTokens = n
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) ConfigOption {
	return func(c *Config) {
		c.Temperature = t
	}
}

// WithTopP sets the nucleus sampling mass.
func WithTopP(p float64) ConfigOption {
	return func(c *Config) {
		c.TopP = p
	}
}

// WithTimeout sets the per-call timeout.
func WithTimeout(d time.Duration) ConfigOption {
	return func(c *Config) {
		c.Timeout = d
	}
}

// WithRateLimit budgets remote calls to rpm per minute with the given burst.
func WithRateLimit(rpm, burst int) ConfigOption {
	return func(c *Config) {
		c.RequestsPerMinute = rpm
		c.Burst = burst
	}
}

// WithRetry sets the number of retries after transport failures and the
// initial delay between them.
func WithRetry(retries int, delay time.Duration) ConfigOption {
	return func(c *Config) {
		c.MaxRetries = retries
		c.RetryDelay = delay
	}
}

// DefaultConfig returns a Config for the OpenAI API without a credential.
func DefaultConfig() *Config {
	return &Config{
		Backend:     BackendLangchain,
		Host:        DefaultHost,
		Model:       "gpt-4o-mini",
		MaxTokens:   1000,
		Temperature: 0.7,
		TopP:        1,
		Timeout:     30 * time.Second,
		RetryDelay:  500 * time.Millisecond,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithAPIKey(os.Getenv("OPENAI_API_KEY")),
//	    WithModel("gpt-4o"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Configured reports whether a credential is present.
func (c *Config) Configured() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// Normalize ensures the configuration is in a canonical form.
// It adds the /v1 suffix to the host if missing, which is required by most
// OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc), selects the default
// backend and gives a rate budget a burst of at least one.
func (c *Config) Normalize() {
	if c.Host != "" && !strings.HasSuffix(c.Host, "/v1") {
		// Remove trailing slash if present before adding /v1
		c.Host = strings.TrimSuffix(c.Host, "/")
		c.Host = c.Host + "/v1"
	}
	if c.Backend == "" {
		c.Backend = BackendLangchain
	}
	c.APIKey = strings.TrimSpace(c.APIKey)
	if c.RequestsPerMinute > 0 && c.Burst < 1 {
		c.Burst = 1
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
// A missing APIKey is valid.
func (c *Config) Validate() error {
	// Normalize first to ensure host is in correct format
	c.Normalize()

	if c.Backend != BackendLangchain && c.Backend != BackendGoOpenAI {
		return errors.New("ai config: Backend must be langchaingo or go-openai")
	}
	if c.Host == "" {
		return errors.New("ai config: Host is required")
	}
	if c.Model == "" {
		return errors.New("ai config: Model is required")
	}
	if c.MaxTokens < 1 {
		return errors.New("ai config: MaxTokens must be at least 1")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return errors.New("ai config: Temperature must be between 0 and 2")
	}
	if c.TopP <= 0 || c.TopP > 1 {
		return errors.New("ai config: TopP must be in (0, 1]")
	}
	if c.Timeout < 0 {
		return errors.New("ai config: Timeout must not be negative")
	}
	if c.RequestsPerMinute < 0 {
		return errors.New("ai config: RequestsPerMinute must not be negative")
	}
	if c.MaxRetries < 0 || c.RetryDelay < 0 {
		return errors.New("ai config: retry settings must not be negative")
	}
	return nil
}
