// Package telemetry installs the process-wide OpenTelemetry tracer provider.
package telemetry

import (
	"context"
	"fmt"
	"io"
	"log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Settings selects the span exporter. Endpoint wins over Stdout; with
// neither set tracing stays disabled.
type Settings struct {
	ServiceName string
	Endpoint    string
	Stdout      io.Writer
}

// Setup builds a tracer provider for s and installs it globally together
// with the W3C trace context propagator. It returns nil when tracing is
// disabled. Callers shut the provider down on exit to flush spans.
func Setup(ctx context.Context, s Settings, logger *log.Logger) (*sdktrace.TracerProvider, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	var (
		exporter sdktrace.SpanExporter
		err      error
	)
	switch {
	case s.Endpoint != "":
		exporter, err = otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(s.Endpoint),
			otlptracegrpc.WithInsecure(),
		)
		if err != nil {
			return nil, fmt.Errorf("create otlp exporter: %w", err)
		}
		logger.Printf("tracing: exporting spans to %s", s.Endpoint)
	case s.Stdout != nil:
		exporter, err = stdouttrace.New(stdouttrace.WithWriter(s.Stdout))
		if err != nil {
			return nil, fmt.Errorf("create stdout exporter: %w", err)
		}
		logger.Printf("tracing: writing spans to stdout")
	default:
		logger.Printf("tracing: disabled")
		return nil, nil
	}

	tp, err := NewProvider(s.ServiceName, sdktrace.WithBatcher(exporter))
	if err != nil {
		return nil, err
	}
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return tp, nil
}

// NewProvider builds a tracer provider tagged with the service name.
func NewProvider(serviceName string, opts ...sdktrace.TracerProviderOption) (*sdktrace.TracerProvider, error) {
	if serviceName == "" {
		serviceName = "storefront"
	}
	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(attribute.String("service.name", serviceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}
	opts = append(opts, sdktrace.WithResource(res))
	return sdktrace.NewTracerProvider(opts...), nil
}
