package config

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ComposioConfig holds the external tool registry configuration.
//
// List-valued settings (ToolIDs, Toolkits, Scopes) are comma-separated
// strings so that the same form works from config file and environment;
// the slice accessors split and trim them.
//
// Behavior mirrors the registry's discovery rules:
//   - If ToolIDs is set, those exact tool slugs are used.
//   - Otherwise tools are auto-discovered from Toolkits (default "reddit"),
//     optionally narrowed by Search and Scopes, capped at ToolLimit.
//   - Missing APIKey means no external tools; never an error.
type ComposioConfig struct {
	APIKey    string `mapstructure:"api_key" json:"api_key"` // SENSITIVE: masked in MarshalJSON
	BaseURL   string `mapstructure:"base_url" json:"base_url"`
	UserID    string `mapstructure:"user_id" json:"user_id"`
	ToolIDs   string `mapstructure:"tool_ids" json:"tool_ids"`
	Toolkits  string `mapstructure:"toolkits" json:"toolkits"`
	Search    string `mapstructure:"search" json:"search"`
	Scopes    string `mapstructure:"scopes" json:"scopes"`
	ToolLimit int    `mapstructure:"tool_limit" json:"tool_limit"`
}

// splitList splits a comma-separated list, trimming blanks.
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ToolIDList returns the explicit tool slugs, if any.
func (c ComposioConfig) ToolIDList() []string { return splitList(c.ToolIDs) }

// ToolkitList returns the toolkits to auto-discover from.
func (c ComposioConfig) ToolkitList() []string { return splitList(c.Toolkits) }

// ScopeList returns the optional scope filters.
func (c ComposioConfig) ScopeList() []string { return splitList(c.Scopes) }

// Enabled reports whether the registry is configured at all.
func (c ComposioConfig) Enabled() bool { return c.APIKey != "" }

// MarshalJSON implements json.Marshaler with API key masking.
func (c ComposioConfig) MarshalJSON() ([]byte, error) {
	type alias ComposioConfig
	a := alias(c)
	a.APIKey = maskSecret(a.APIKey)
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("marshal composio config: %w", err)
	}
	return data, nil
}

// TracingConfig holds OTLP trace export configuration. An empty Endpoint
// disables tracing.
type TracingConfig struct {
	Endpoint    string `mapstructure:"endpoint" json:"endpoint"` // e.g. "localhost:4318"
	ServiceName string `mapstructure:"service_name" json:"service_name"`
}
