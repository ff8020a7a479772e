package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/poiesic/homeqa/ai"
	"github.com/poiesic/homeqa/chat"
	"github.com/poiesic/homeqa/search"
	"gopkg.in/yaml.v3"
)

// Environment variables read by ApplyEnv.
const (
	EnvOpenAIKey = "OPENAI_API_KEY"
	EnvAPIKey    = "HOMEQA_API_KEY"
	EnvModel     = "HOMEQA_MODEL"
	EnvHost      = "HOMEQA_HOST"
	EnvBackend   = "HOMEQA_BACKEND"
)

// RemoteConfig configures the remote chat model.
type RemoteConfig struct {
	Backend           string  `yaml:"backend" toml:"backend"`
	Host              string  `yaml:"host" toml:"host"`
	APIKey            string  `yaml:"api_key,omitempty" toml:"api_key,omitempty"`
	Model             string  `yaml:"model" toml:"model"`
	MaxTokens         int     `yaml:"max_tokens" toml:"max_tokens"`
	Temperature       float64 `yaml:"temperature" toml:"temperature"`
	TopP              float64 `yaml:"top_p" toml:"top_p"`
	TimeoutSecs       int     `yaml:"timeout_secs" toml:"timeout_secs"`
	RequestsPerMinute int     `yaml:"requests_per_minute" toml:"requests_per_minute"`
	Burst             int     `yaml:"burst" toml:"burst"`
	MaxRetries        int     `yaml:"max_retries" toml:"max_retries"`
	RetryDelayMillis  int     `yaml:"retry_delay_ms" toml:"retry_delay_ms"`
}

// ChatConfig configures prompt assembly.
type ChatConfig struct {
	HistoryWindow int    `yaml:"history_window" toml:"history_window"`
	ContextDocs   int    `yaml:"context_docs" toml:"context_docs"`
	SystemPrompt  string `yaml:"system_prompt,omitempty" toml:"system_prompt,omitempty"`
}

// StorageConfig configures persistence of injected documents. An empty
// DataDir keeps everything in memory.
type StorageConfig struct {
	DataDir string `yaml:"data_dir" toml:"data_dir"`
}

// IngestionConfig configures file ingestion.
type IngestionConfig struct {
	PoolSize int `yaml:"pool_size" toml:"pool_size"`
}

// MCPConfig configures the tool server.
type MCPConfig struct {
	Addr string `yaml:"addr" toml:"addr"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Remote    RemoteConfig    `yaml:"remote" toml:"remote"`
	Search    search.Params   `yaml:"search" toml:"search"`
	Chat      ChatConfig      `yaml:"chat" toml:"chat"`
	Storage   StorageConfig   `yaml:"storage" toml:"storage"`
	Ingestion IngestionConfig `yaml:"ingestion" toml:"ingestion"`
	MCP       MCPConfig       `yaml:"mcp" toml:"mcp"`
}

// Default returns the default configuration: no credential, in-memory
// storage and the default search parameters.
func Default() *AppConfig {
	remote := ai.DefaultConfig()
	return &AppConfig{
		Remote: RemoteConfig{
			Backend:          remote.Backend,
			Host:             remote.Host,
			Model:            remote.Model,
			MaxTokens:        remote.MaxTokens,
			Temperature:      remote.Temperature,
			TopP:             remote.TopP,
			TimeoutSecs:      int(remote.Timeout / time.Second),
			RetryDelayMillis: int(remote.RetryDelay / time.Millisecond),
		},
		Search: search.DefaultParams(),
		Chat: ChatConfig{
			HistoryWindow: chat.DefaultHistoryWindow,
			ContextDocs:   chat.DefaultContextDocs,
		},
		MCP: MCPConfig{Addr: "localhost:8765"},
	}
}

// Load reads a config from path. Fields absent from the file keep their
// defaults. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefault tries ./homeqa.yaml, ./homeqa.toml, then
// ~/.config/homeqa/config.yaml and returns the first one found with its
// path. Without any file it returns defaults and an empty path.
func LoadDefault() (*AppConfig, string, error) {
	candidates := []string{"homeqa.yaml", "homeqa.toml"}
	if userPath, err := DefaultUserPath(); err == nil {
		candidates = append(candidates, userPath)
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			cfg, err := Load(path)
			return cfg, path, err
		}
	}
	return Default(), "", nil
}

// DefaultUserPath returns ~/.config/homeqa/config.yaml.
func DefaultUserPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "homeqa", "config.yaml"), nil
}

// Save writes cfg to path as YAML, creating directories as needed. The
// API key is never written.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	out := *cfg
	out.Remote.APIKey = ""
	data, err := yaml.Marshal(&out)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// ApplyEnv overrides the remote settings from the environment.
// HOMEQA_API_KEY takes precedence over OPENAI_API_KEY.
func (c *AppConfig) ApplyEnv() {
	if key := os.Getenv(EnvOpenAIKey); key != "" {
		c.Remote.APIKey = key
	}
	if key := os.Getenv(EnvAPIKey); key != "" {
		c.Remote.APIKey = key
	}
	if model := os.Getenv(EnvModel); model != "" {
		c.Remote.Model = model
	}
	if host := os.Getenv(EnvHost); host != "" {
		c.Remote.Host = host
	}
	if backend := os.Getenv(EnvBackend); backend != "" {
		c.Remote.Backend = backend
	}
}

// AIConfig converts the remote settings to an ai.Config.
func (c *AppConfig) AIConfig() *ai.Config {
	r := c.Remote
	return ai.NewConfig(
		ai.WithBackend(r.Backend),
		ai.WithHost(r.Host),
		ai.WithAPIKey(r.APIKey),
		ai.WithModel(r.Model),
		ai.WithMaxTokens(r.MaxTokens),
		ai.WithTemperature(r.Temperature),
		ai.WithTopP(r.TopP),
		ai.WithTimeout(time.Duration(r.TimeoutSecs)*time.Second),
		ai.WithRateLimit(r.RequestsPerMinute, r.Burst),
		ai.WithRetry(r.MaxRetries, time.Duration(r.RetryDelayMillis)*time.Millisecond),
	)
}

// ChatOptions converts the chat settings to orchestrator options.
func (c *AppConfig) ChatOptions() []chat.Option {
	opts := []chat.Option{
		chat.WithHistoryWindow(c.Chat.HistoryWindow),
		chat.WithContextDocs(c.Chat.ContextDocs),
	}
	if c.Chat.SystemPrompt != "" {
		opts = append(opts, chat.WithSystemPrompt(c.Chat.SystemPrompt))
	}
	return opts
}

// Validate checks the remote and search settings.
func (c *AppConfig) Validate() error {
	if err := c.AIConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.Search.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Chat.HistoryWindow < 0 {
		return fmt.Errorf("%w: chat history_window must not be negative", ErrInvalidConfig)
	}
	return nil
}
