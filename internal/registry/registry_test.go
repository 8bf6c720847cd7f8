package registry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/firebase/genkit/go/genkit"

	"github.com/storyforge/storyforge/internal/config"
	"github.com/storyforge/storyforge/internal/log"
)

func testClient(t *testing.T, cfg config.ComposioConfig, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg.BaseURL = srv.URL
	return NewClient(cfg, log.NewNop())
}

func TestListToolsExplicitIDs(t *testing.T) {
	var gotQuery string
	c := testClient(t, config.ComposioConfig{
		APIKey:  "k",
		ToolIDs: "REDDIT_SEARCH, REDDIT_GET_POSTS",
	}, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		if r.Header.Get("x-api-key") != "k" {
			t.Errorf("missing api key header")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"slug":"REDDIT_SEARCH","description":"search"}]}`))
	})

	tools, err := c.ListTools(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(tools) != 1 || tools[0].Slug != "REDDIT_SEARCH" {
		t.Errorf("tools = %+v", tools)
	}
	if !strings.Contains(gotQuery, "tool_slugs=REDDIT_SEARCH%2CREDDIT_GET_POSTS") {
		t.Errorf("query = %q", gotQuery)
	}
	if strings.Contains(gotQuery, "toolkit_slug") {
		t.Errorf("explicit ids must skip discovery params: %q", gotQuery)
	}
}

func TestListToolsDiscovery(t *testing.T) {
	var gotQuery string
	c := testClient(t, config.ComposioConfig{
		APIKey:    "k",
		Search:    "posts",
		Scopes:    "read",
		ToolLimit: 5,
	}, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"items":[]}`))
	})

	if _, err := c.ListTools(context.Background()); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"toolkit_slug=reddit", "search=posts", "scopes=read", "limit=5"} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("query %q missing %q", gotQuery, want)
		}
	}
}

func TestExecute(t *testing.T) {
	t.Run("success returns data", func(t *testing.T) {
		c := testClient(t, config.ComposioConfig{APIKey: "k", UserID: "u1"},
			func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("method = %s", r.Method)
				}
				if !strings.HasSuffix(r.URL.Path, "/tools/execute/REDDIT_SEARCH") {
					t.Errorf("path = %s", r.URL.Path)
				}
				_, _ = w.Write([]byte(`{"successful":true,"data":{"posts":[]}}`))
			})

		out, err := c.Execute(context.Background(), "REDDIT_SEARCH", map[string]any{"q": "go"})
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(out, "posts") {
			t.Errorf("out = %q", out)
		}
	})

	t.Run("unsuccessful execution is an error", func(t *testing.T) {
		c := testClient(t, config.ComposioConfig{APIKey: "k"},
			func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"successful":false,"error":"no connection"}`))
			})

		if _, err := c.Execute(context.Background(), "X", nil); err == nil {
			t.Fatal("want error")
		}
	})

	t.Run("http error status", func(t *testing.T) {
		c := testClient(t, config.ComposioConfig{APIKey: "k"},
			func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", http.StatusUnauthorized)
			})

		if _, err := c.Execute(context.Background(), "X", nil); err == nil {
			t.Fatal("want error")
		}
	})
}

func TestRegisterDegradation(t *testing.T) {
	ctx := context.Background()

	t.Run("no api key yields empty list", func(t *testing.T) {
		tools := Register(ctx, nil, config.ComposioConfig{}, log.NewNop())
		if len(tools) != 0 {
			t.Errorf("tools = %d, want 0", len(tools))
		}
	})

	t.Run("unreachable registry yields empty list", func(t *testing.T) {
		cfg := config.ComposioConfig{
			APIKey:  "k",
			BaseURL: "http://127.0.0.1:1", // nothing listens here
		}
		tools := Register(ctx, nil, cfg, log.NewNop())
		if len(tools) != 0 {
			t.Errorf("tools = %d, want 0", len(tools))
		}
	})

	t.Run("server error yields empty list", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		cfg := config.ComposioConfig{APIKey: "k", BaseURL: srv.URL}
		tools := Register(ctx, nil, cfg, log.NewNop())
		if len(tools) != 0 {
			t.Errorf("tools = %d, want 0", len(tools))
		}
	})
}

func TestRegisterDefinesTools(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":[
			{"slug":"REDDIT_SEARCH","description":"Search reddit"},
			{"slug":"","description":"bad entry"}
		]}`))
	}))
	defer srv.Close()

	g := genkit.Init(context.Background())
	cfg := config.ComposioConfig{APIKey: "k", BaseURL: srv.URL}
	tools := Register(context.Background(), g, cfg, log.NewNop())

	if len(tools) != 1 {
		t.Fatalf("tools = %d, want 1 (slug-less entry skipped)", len(tools))
	}
	if tools[0].Name() != "REDDIT_SEARCH" {
		t.Errorf("name = %q", tools[0].Name())
	}
}
