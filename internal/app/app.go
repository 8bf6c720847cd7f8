// Package app wires the application together: configuration, logging,
// Genkit with the selected AI provider, canvas tools, the external tool
// registry, and the agent.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/compat_oai/openai"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/firebase/genkit/go/plugins/ollama"

	"github.com/storyforge/storyforge/internal/agent"
	"github.com/storyforge/storyforge/internal/config"
	"github.com/storyforge/storyforge/internal/log"
	"github.com/storyforge/storyforge/internal/observability"
	"github.com/storyforge/storyforge/internal/registry"
	"github.com/storyforge/storyforge/internal/session"
	"github.com/storyforge/storyforge/internal/tools"
)

// App is the assembled application.
type App struct {
	Config   *config.Config
	Logger   log.Logger
	Genkit   *genkit.Genkit
	Sessions *session.Store
	Agent    *agent.Agent

	shutdownTracing func(context.Context) error
}

// Setup builds the application from configuration. Tracing is wired first
// so Genkit's spans reach the exporter.
func Setup(ctx context.Context, cfg *config.Config, logger log.Logger) (*App, error) {
	shutdownTracing, err := observability.Setup(ctx, cfg.Tracing, logger)
	if err != nil {
		return nil, fmt.Errorf("setting up tracing: %w", err)
	}

	g, err := provideGenkit(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	sessions := session.NewStore(logger)

	toolRefs := tools.RegisterTools(g, logger)
	external := registry.Register(ctx, g, cfg.Composio, logger)
	toolRefs = append(toolRefs, external...)

	ag, err := agent.New(agent.Config{
		Genkit:    g,
		Sessions:  sessions,
		Logger:    logger,
		Tools:     toolRefs,
		ModelName: cfg.FullModelName(),
		MaxTurns:  cfg.MaxTurns,
	})
	if err != nil {
		return nil, fmt.Errorf("creating agent: %w", err)
	}

	return &App{
		Config:          cfg,
		Logger:          logger,
		Genkit:          g,
		Sessions:        sessions,
		Agent:           ag,
		shutdownTracing: shutdownTracing,
	}, nil
}

// Close flushes pending telemetry.
func (a *App) Close(ctx context.Context) error {
	if a.shutdownTracing != nil {
		if err := a.shutdownTracing(ctx); err != nil {
			return fmt.Errorf("flushing traces: %w", err)
		}
	}
	return nil
}

// provideGenkit initializes Genkit with the configured AI provider plugin.
func provideGenkit(ctx context.Context, cfg *config.Config, logger log.Logger) (*genkit.Genkit, error) {
	var g *genkit.Genkit

	switch cfg.Provider {
	case config.ProviderOllama:
		ollamaPlugin := &ollama.Ollama{ServerAddress: cfg.OllamaHost}
		g = genkit.Init(ctx, genkit.WithPlugins(ollamaPlugin))
		if g == nil {
			return nil, errors.New("initializing genkit with ollama provider")
		}
		// Ollama requires explicit model registration (no auto-discovery).
		ollamaPlugin.DefineModel(g, ollama.ModelDefinition{
			Name: cfg.ModelName,
			Type: "chat",
		}, nil)
		logger.Info("initialized genkit with ollama provider",
			"model", cfg.ModelName, "host", cfg.OllamaHost)

	case config.ProviderGemini, config.ProviderGoogleAI:
		g = genkit.Init(ctx, genkit.WithPlugins(&googlegenai.GoogleAI{}))
		if g == nil {
			return nil, errors.New("initializing genkit with googleai provider")
		}
		logger.Info("initialized genkit with googleai provider", "model", cfg.ModelName)

	default: // openai
		g = genkit.Init(ctx, genkit.WithPlugins(&openai.OpenAI{}))
		if g == nil {
			return nil, errors.New("initializing genkit with openai provider")
		}
		logger.Info("initialized genkit with openai provider", "model", cfg.ModelName)
	}

	return g, nil
}
