// Package telemetry exports game traces to Honeycomb over OTLP/HTTP.
package telemetry

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const (
	serviceName    = "rawcrawl"
	serviceVersion = "0.1.0"

	// EnvAPIKey and EnvDataset select the Honeycomb team and dataset.
	EnvAPIKey  = "HONEYCOMB_RAWCRAWL_API_KEY"
	EnvDataset = "HONEYCOMB_RAWCRAWL_DATASET"

	envEndpoint     = "OTEL_EXPORTER_OTLP_ENDPOINT"
	defaultEndpoint = "https://api.honeycomb.io"
	defaultDataset  = "rawcrawl"
)

// sessionID identifies this process in every exported trace.
var sessionID = uuid.NewString()

// Honeycomb holds the export destination.
type Honeycomb struct {
	APIKey  string
	Dataset string
}

// HoneycombFromEnv reads the API key and dataset, defaulting the dataset.
func HoneycombFromEnv() Honeycomb {
	h := Honeycomb{
		APIKey:  os.Getenv(EnvAPIKey),
		Dataset: os.Getenv(EnvDataset),
	}
	if h.Dataset == "" {
		h.Dataset = defaultDataset
	}
	return h
}

// headers returns the OTLP request headers, or nil without an API key.
func (h Honeycomb) headers() map[string]string {
	if h.APIKey == "" {
		return nil
	}
	return map[string]string{
		"x-honeycomb-team":    h.APIKey,
		"x-honeycomb-dataset": h.Dataset,
	}
}

// exporterOptions points the exporter at Honeycomb unless the standard OTEL
// endpoint variable overrides it.
func (h Honeycomb) exporterOptions() []otlptracehttp.Option {
	var opts []otlptracehttp.Option
	if os.Getenv(envEndpoint) == "" {
		opts = append(opts, otlptracehttp.WithEndpointURL(defaultEndpoint))
	}
	if hdr := h.headers(); hdr != nil {
		opts = append(opts, otlptracehttp.WithHeaders(hdr))
	}
	return opts
}

// Setup installs a batching tracer provider as the global provider and
// returns its shutdown function. Until Setup succeeds, Tracer hands out
// no-op tracers.
func Setup(ctx context.Context, hc Honeycomb) (shutdown func(context.Context) error, err error) {
	exporter, err := otlptracehttp.New(ctx, hc.exporterOptions()...)
	if err != nil {
		return nil, fmt.Errorf("create exporter: %w", err)
	}

	res, err := newResource(ctx)
	if err != nil {
		return nil, fmt.Errorf("build resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// newResource describes this play session. Not merged with resource.Default,
// whose schema URL would conflict.
func newResource(ctx context.Context) (*resource.Resource, error) {
	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}
	return resource.New(ctx, resource.WithAttributes(
		attribute.String("service.name", serviceName),
		attribute.String("service.version", serviceVersion),
		attribute.String("service.instance.id", sessionID),
		attribute.String("host.name", host),
		attribute.String("os.type", runtime.GOOS),
		attribute.String("process.runtime.version", runtime.Version()),
	))
}

// Tracer returns a tracer scoped to one component of the game.
func Tracer(name string) trace.Tracer {
	return otel.GetTracerProvider().Tracer(serviceName + "/" + name)
}

// SessionID returns the identifier of this process's play session.
func SessionID() string {
	return sessionID
}
