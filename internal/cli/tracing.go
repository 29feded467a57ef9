package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Environment variables that enable span export. The exporter reads its
// remaining settings from the standard OTEL_EXPORTER_OTLP_* variables.
var tracingEnv = []string{
	"OTEL_EXPORTER_OTLP_ENDPOINT",
	"OTEL_EXPORTER_OTLP_TRACES_ENDPOINT",
}

// SetupTracing installs a global tracer provider exporting spans over OTLP
// gRPC when an OTLP endpoint is configured in the environment. The returned
// function flushes and stops the provider; it is never nil.
func SetupTracing(ctx context.Context) (func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }

	if !tracingEnabled() {
		return noop, nil
	}

	exp, err := otlptracegrpc.New(ctx)
	if err != nil {
		return noop, fmt.Errorf("create otlp exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exp))
	otel.SetTracerProvider(tp)

	slog.Debug("exporting traces over otlp")

	return tp.Shutdown, nil
}

func tracingEnabled() bool {
	for _, key := range tracingEnv {
		if os.Getenv(key) != "" {
			return true
		}
	}

	return false
}
