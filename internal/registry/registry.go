package registry

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/storyforge/storyforge/internal/config"
	"github.com/storyforge/storyforge/internal/log"
)

// Register discovers the configured Composio tools and registers each as a
// Genkit tool whose execution proxies to the Composio API.
//
// Degradation contract: every failure path returns an empty slice, never an
// error. A missing API key is silent; anything else logs a warning.
func Register(ctx context.Context, g *genkit.Genkit, cfg config.ComposioConfig, logger log.Logger) []ai.Tool {
	if !cfg.Enabled() {
		logger.Debug("composio registry disabled, no API key")
		return nil
	}

	client := NewClient(cfg, logger)
	descriptors, err := client.ListTools(ctx)
	if err != nil {
		logger.Warn("composio tool discovery failed, continuing without external tools", "error", err)
		return nil
	}
	if len(descriptors) == 0 {
		logger.Info("composio returned no tools for the configured filters")
		return nil
	}

	tools := make([]ai.Tool, 0, len(descriptors))
	for _, d := range descriptors {
		if d.Slug == "" {
			logger.Warn("skipping composio tool without slug")
			continue
		}
		tools = append(tools, defineProxy(g, client, d))
	}
	logger.Info("registered composio tools", "count", len(tools))
	return tools
}

// defineProxy registers one external tool. Execution errors are reported to
// the model as text so a flaky external API cannot abort the turn.
func defineProxy(g *genkit.Genkit, client *Client, d ToolDescriptor) ai.Tool {
	desc := d.Description
	if desc == "" {
		desc = fmt.Sprintf("External tool %s provided by Composio.", d.Slug)
	}
	return genkit.DefineTool(g, d.Slug, desc,
		func(tc *ai.ToolContext, args map[string]any) (string, error) {
			out, err := client.Execute(tc.Context, d.Slug, args)
			if err != nil {
				client.logger.Warn("composio tool execution failed", "tool", d.Slug, "error", err)
				return "error: " + err.Error(), nil
			}
			return out, nil
		})
}
