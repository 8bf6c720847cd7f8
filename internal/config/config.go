// Package config provides application configuration with multi-source
// priority.
//
// Configuration sources (highest to lowest priority):
//  1. Environment variables (runtime override)
//  2. Config file (~/.storyforge/config.yaml)
//  3. Default values
//
// Error Handling:
//   - Sentinel errors for Go-idiomatic checking with errors.Is()
//   - Wrap with context using fmt.Errorf("%w: details", ErrXxx)
//
// Security: the Composio API key is never logged; MarshalJSON masks it.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

var (
	// ErrInvalidProvider indicates the AI provider is not supported.
	ErrInvalidProvider = errors.New("invalid provider")

	// ErrInvalidMaxTurns indicates the max turns value is out of range.
	ErrInvalidMaxTurns = errors.New("invalid max turns")

	// ErrInvalidToolLimit indicates the Composio discovery limit is out of range.
	ErrInvalidToolLimit = errors.New("invalid tool limit")

	// ErrInvalidOllamaHost indicates the Ollama host is invalid.
	ErrInvalidOllamaHost = errors.New("invalid Ollama host")
)

// AI provider identifiers used in Config.Provider.
const (
	ProviderOpenAI   = "openai"
	ProviderGemini   = "gemini"
	ProviderGoogleAI = "googleai"
	ProviderOllama   = "ollama"
)

// Limits for the agentic loop.
const (
	// DefaultMaxTurns bounds tool-calling rounds within one model turn.
	DefaultMaxTurns = 8

	// MaxAllowedTurns is the absolute cap to keep runaway loops bounded.
	MaxAllowedTurns = 32
)

// Config stores application configuration.
// SECURITY: sensitive fields are explicitly masked in MarshalJSON().
type Config struct {
	// AI provider and model configuration
	Provider  string `mapstructure:"provider" json:"provider"`     // "openai" (default), "gemini", "ollama"
	ModelName string `mapstructure:"model_name" json:"model_name"` // Model identifier (e.g., "gpt-4.1", "gemini-2.5-flash")
	MaxTurns  int    `mapstructure:"max_turns" json:"max_turns"`

	// Ollama configuration (only used when provider is "ollama")
	OllamaHost string `mapstructure:"ollama_host" json:"ollama_host"`

	// Composio external tool registry (see composio.go)
	Composio ComposioConfig `mapstructure:"composio" json:"composio"`

	// HTTP server address for serve mode
	Addr string `mapstructure:"addr" json:"addr"`

	// Tracing configuration (see tracing.go)
	Tracing TracingConfig `mapstructure:"tracing" json:"tracing"`
}

// Load loads configuration.
// Priority: environment variables > configuration file > default values.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting user home directory: %w", err)
	}

	configDir := filepath.Join(home, ".storyforge")
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)
	viper.AddConfigPath(".") // Also support current directory

	setDefaults()
	bindEnvVariables()

	if err := viper.ReadInConfig(); err != nil {
		// Configuration file not found is not an error, use default values
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("configuration file not found, using default values",
			"search_paths", []string{configDir, "."})
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets all default configuration values.
func setDefaults() {
	// AI defaults; gpt-4.1 matches the original story agent deployment
	viper.SetDefault("provider", ProviderOpenAI)
	viper.SetDefault("model_name", "gpt-4.1")
	viper.SetDefault("max_turns", DefaultMaxTurns)

	// Ollama defaults
	viper.SetDefault("ollama_host", "http://localhost:11434")

	// Composio defaults: discover the Reddit toolkit unless explicit tool
	// ids are configured
	viper.SetDefault("composio.base_url", "https://backend.composio.dev")
	viper.SetDefault("composio.user_id", "default")
	viper.SetDefault("composio.toolkits", "reddit")
	viper.SetDefault("composio.tool_limit", 100)

	// Serve defaults
	viper.SetDefault("addr", "127.0.0.1:3400")

	// Tracing defaults (disabled unless an endpoint is configured)
	viper.SetDefault("tracing.service_name", "storyforge")
}

// bindEnvVariables binds environment variables explicitly.
//
// The COMPOSIO_* names match the registry's documented configuration
// surface; STORYFORGE_* override model selection at runtime.
//
// NOTE: OPENAI_API_KEY and GEMINI_API_KEY are read directly by the Genkit
// provider plugins, not via Viper.
func bindEnvVariables() {
	// Hardcoded keys can't fail to bind; a panic here is a bug, not a
	// runtime error.
	mustBind := func(key, envVar string) {
		if err := viper.BindEnv(key, envVar); err != nil {
			panic(fmt.Sprintf("BUG: failed to bind %q to %q: %v", key, envVar, err))
		}
	}

	mustBind("composio.api_key", "COMPOSIO_API_KEY")
	mustBind("composio.user_id", "COMPOSIO_USER_ID")
	mustBind("composio.tool_ids", "COMPOSIO_TOOL_IDS")
	mustBind("composio.toolkits", "COMPOSIO_TOOLKITS")
	mustBind("composio.search", "COMPOSIO_TOOL_SEARCH")
	mustBind("composio.scopes", "COMPOSIO_TOOL_SCOPES")
	mustBind("composio.tool_limit", "COMPOSIO_TOOL_LIMIT")
	mustBind("composio.base_url", "COMPOSIO_BASE_URL")

	mustBind("provider", "STORYFORGE_PROVIDER")
	mustBind("model_name", "STORYFORGE_MODEL_NAME")
	mustBind("max_turns", "STORYFORGE_MAX_TURNS")
	mustBind("ollama_host", "STORYFORGE_OLLAMA_HOST")
	mustBind("addr", "STORYFORGE_ADDR")

	mustBind("tracing.endpoint", "STORYFORGE_OTLP_ENDPOINT")
	mustBind("tracing.service_name", "STORYFORGE_SERVICE_NAME")
}

// Validate checks configuration invariants (fail-fast at startup).
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderOpenAI, ProviderGemini, ProviderGoogleAI, ProviderOllama:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidProvider, c.Provider)
	}

	if c.MaxTurns <= 0 || c.MaxTurns > MaxAllowedTurns {
		return fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidMaxTurns, c.MaxTurns, MaxAllowedTurns)
	}

	if c.Composio.ToolLimit <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidToolLimit, c.Composio.ToolLimit)
	}

	if c.Provider == ProviderOllama && !strings.HasPrefix(c.OllamaHost, "http") {
		return fmt.Errorf("%w: %q", ErrInvalidOllamaHost, c.OllamaHost)
	}

	return nil
}

// FullModelName returns the provider-qualified model name for Genkit.
// Examples: "openai/gpt-4.1", "googleai/gemini-2.5-flash", "ollama/llama3.3".
// If ModelName already contains a "/", it is returned as-is.
func (c *Config) FullModelName() string {
	if strings.Contains(c.ModelName, "/") {
		return c.ModelName
	}
	switch c.Provider {
	case ProviderOllama:
		return ProviderOllama + "/" + c.ModelName
	case ProviderGemini, ProviderGoogleAI:
		return ProviderGoogleAI + "/" + c.ModelName
	default:
		return ProviderOpenAI + "/" + c.ModelName
	}
}

// maskedValue is the placeholder for masked sensitive data.
const maskedValue = "████████"

// maskSecret masks a secret string for safe logging. Short secrets are
// fully masked; longer ones keep the first and last two characters for
// debug utility.
func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 8 {
		return maskedValue
	}
	return s[:2] + "<" + maskedValue + ">" + s[len(s)-2:]
}

// MarshalJSON implements json.Marshaler with sensitive field masking.
// Sensitive fields: Composio.APIKey (via ComposioConfig.MarshalJSON).
func (c Config) MarshalJSON() ([]byte, error) {
	type alias Config
	data, err := json.Marshal(alias(c))
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

// String implements Stringer to prevent accidental printing of secrets.
func (c Config) String() string {
	data, err := c.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("Config{error: %v}", err)
	}
	return string(data)
}
