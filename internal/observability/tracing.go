// Package observability wires OTLP trace export into Genkit's tracer
// provider. Tracing is optional; an empty endpoint disables it entirely.
package observability

import (
	"context"
	"os"

	"github.com/firebase/genkit/go/core/tracing"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/storyforge/storyforge/internal/config"
	"github.com/storyforge/storyforge/internal/log"
)

// DefaultServiceName is used when the config does not name the service.
const DefaultServiceName = "storyforge"

// Setup registers an OTLP HTTP exporter with Genkit's TracerProvider and
// returns a shutdown function that flushes pending spans.
//
// Exporter creation failures disable tracing with a warning instead of
// failing startup; traces are diagnostics, not a dependency.
func Setup(ctx context.Context, cfg config.TracingConfig, logger log.Logger) (func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }
	if cfg.Endpoint == "" {
		return noop, nil
	}

	service := cfg.ServiceName
	if service == "" {
		service = DefaultServiceName
	}
	// Genkit's TracerProvider reads the service name from the environment.
	_ = os.Setenv("OTEL_SERVICE_NAME", service)

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(cfg.Endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		logger.Warn("failed to create OTLP exporter, tracing disabled", "error", err)
		return noop, nil
	}

	processor := sdktrace.NewBatchSpanProcessor(exporter)
	tracing.TracerProvider().RegisterSpanProcessor(processor)

	logger.Debug("tracing enabled", "endpoint", cfg.Endpoint, "service", service)
	return tracing.TracerProvider().Shutdown, nil
}
