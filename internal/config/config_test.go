package config

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Provider:  ProviderOpenAI,
		ModelName: "gpt-4.1",
		MaxTurns:  8,
		Composio:  ComposioConfig{ToolLimit: 100},
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		if err := validConfig().Validate(); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("unknown provider", func(t *testing.T) {
		cfg := validConfig()
		cfg.Provider = "anthropic"
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidProvider) {
			t.Errorf("err = %v, want ErrInvalidProvider", err)
		}
	})

	t.Run("max turns bounds", func(t *testing.T) {
		cfg := validConfig()
		cfg.MaxTurns = 0
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidMaxTurns) {
			t.Errorf("err = %v, want ErrInvalidMaxTurns", err)
		}
		cfg.MaxTurns = MaxAllowedTurns + 1
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidMaxTurns) {
			t.Errorf("err = %v, want ErrInvalidMaxTurns", err)
		}
	})

	t.Run("ollama host must be a URL", func(t *testing.T) {
		cfg := validConfig()
		cfg.Provider = ProviderOllama
		cfg.OllamaHost = "localhost:11434"
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidOllamaHost) {
			t.Errorf("err = %v, want ErrInvalidOllamaHost", err)
		}
	})
}

func TestFullModelName(t *testing.T) {
	tests := []struct {
		provider, model, want string
	}{
		{ProviderOpenAI, "gpt-4.1", "openai/gpt-4.1"},
		{ProviderGemini, "gemini-2.5-flash", "googleai/gemini-2.5-flash"},
		{ProviderGoogleAI, "gemini-2.5-flash", "googleai/gemini-2.5-flash"},
		{ProviderOllama, "llama3.3", "ollama/llama3.3"},
		{ProviderOpenAI, "openai/gpt-4.1", "openai/gpt-4.1"}, // already qualified
	}
	for _, tt := range tests {
		cfg := &Config{Provider: tt.provider, ModelName: tt.model}
		if got := cfg.FullModelName(); got != tt.want {
			t.Errorf("FullModelName(%s, %s) = %q, want %q", tt.provider, tt.model, got, tt.want)
		}
	}
}

func TestMaskSecret(t *testing.T) {
	if got := maskSecret(""); got != "" {
		t.Errorf("empty = %q", got)
	}
	if got := maskSecret("short"); got != maskedValue {
		t.Errorf("short = %q", got)
	}
	got := maskSecret("sk-12345678901234")
	if !strings.HasPrefix(got, "sk") || !strings.HasSuffix(got, "34") {
		t.Errorf("long = %q", got)
	}
	if strings.Contains(got, "1234567890") {
		t.Errorf("secret leaked: %q", got)
	}
}

func TestConfigMarshalMasksAPIKey(t *testing.T) {
	cfg := validConfig()
	cfg.Composio.APIKey = "super-secret-api-key"

	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "super-secret-api-key") {
		t.Errorf("api key leaked: %s", data)
	}

	// String goes through the same masking.
	if strings.Contains(cfg.String(), "super-secret-api-key") {
		t.Error("String() leaked the api key")
	}
}

func TestComposioListAccessors(t *testing.T) {
	cfg := ComposioConfig{
		ToolIDs:  "A, B ,,C",
		Toolkits: "",
		Scopes:   "read",
	}
	if got := cfg.ToolIDList(); len(got) != 3 || got[2] != "C" {
		t.Errorf("ToolIDList = %v", got)
	}
	if got := cfg.ToolkitList(); got != nil {
		t.Errorf("ToolkitList = %v, want nil", got)
	}
	if got := cfg.ScopeList(); len(got) != 1 || got[0] != "read" {
		t.Errorf("ScopeList = %v", got)
	}

	if cfg.Enabled() {
		t.Error("Enabled without api key")
	}
	cfg.APIKey = "k"
	if !cfg.Enabled() {
		t.Error("not Enabled with api key")
	}
}
