// Package registry connects optional external Composio tools to the agent.
//
// External tools are strictly additive: any failure while talking to the
// Composio API (missing key, network error, bad payload) degrades to an
// empty tool list with a warning, never an error. The conversational agent
// must keep working without its external registry.
package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/storyforge/storyforge/internal/config"
	"github.com/storyforge/storyforge/internal/log"
)

const (
	defaultBaseURL = "https://backend.composio.dev"
	defaultTimeout = 15 * time.Second
	maxBodySize    = 4 << 20
)

// ToolDescriptor is the subset of a Composio tool definition the agent needs.
type ToolDescriptor struct {
	Slug        string          `json:"slug"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputParams json.RawMessage `json:"input_parameters"`
}

type listResponse struct {
	Items []ToolDescriptor `json:"items"`
}

type executeRequest struct {
	UserID    string         `json:"user_id,omitempty"`
	Arguments map[string]any `json:"arguments"`
}

type executeResponse struct {
	Successful bool            `json:"successful"`
	Error      string          `json:"error"`
	Data       json.RawMessage `json:"data"`
}

// Client is a minimal Composio REST API client.
type Client struct {
	cfg        config.ComposioConfig
	baseURL    string
	httpClient *http.Client
	logger     log.Logger
}

// NewClient creates a Composio client from configuration.
func NewClient(cfg config.ComposioConfig, logger log.Logger) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	return &Client{
		cfg:        cfg,
		baseURL:    strings.TrimRight(base, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger,
	}
}

// ListTools fetches the configured tool descriptors.
//
// Explicit tool slugs win; otherwise tools are discovered from the
// configured toolkits, optionally narrowed by search and scopes and
// capped at the tool limit.
func (c *Client) ListTools(ctx context.Context) ([]ToolDescriptor, error) {
	q := url.Values{}
	if ids := c.cfg.ToolIDList(); len(ids) > 0 {
		q.Set("tool_slugs", strings.Join(ids, ","))
	} else {
		toolkits := c.cfg.ToolkitList()
		if len(toolkits) == 0 {
			toolkits = []string{"reddit"}
		}
		q.Set("toolkit_slug", strings.Join(toolkits, ","))
		if c.cfg.Search != "" {
			q.Set("search", c.cfg.Search)
		}
		if scopes := c.cfg.ScopeList(); len(scopes) > 0 {
			q.Set("scopes", strings.Join(scopes, ","))
		}
		limit := c.cfg.ToolLimit
		if limit <= 0 {
			limit = 100
		}
		q.Set("limit", strconv.Itoa(limit))
	}

	var out listResponse
	if err := c.get(ctx, "/api/v3/tools?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// Execute runs an external tool and returns its result rendered as a
// string for the model.
func (c *Client) Execute(ctx context.Context, slug string, args map[string]any) (string, error) {
	req := executeRequest{UserID: c.cfg.UserID, Arguments: args}
	var out executeResponse
	if err := c.post(ctx, "/api/v3/tools/execute/"+url.PathEscape(slug), req, &out); err != nil {
		return "", err
	}
	if !out.Successful {
		msg := out.Error
		if msg == "" {
			msg = "execution failed"
		}
		return "", fmt.Errorf("composio tool %s: %s", slug, msg)
	}
	if len(out.Data) == 0 {
		return "ok", nil
	}
	return string(out.Data), nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("x-api-key", c.cfg.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("composio request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("read composio response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("composio API status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode composio response: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
