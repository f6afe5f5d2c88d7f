// Package telemetry owns the OpenTelemetry providers: traces exported over
// OTLP/HTTP when an endpoint is configured, metrics served in Prometheus
// text format.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	instrumentationName = "github.com/arno-dev/postagent-mcp"
	defaultTracesPath   = "/v1/traces"
)

// Settings selects what Setup builds.
type Settings struct {
	ServiceName    string
	ServiceVersion string
	// OTLPEndpoint is the collector base URL, e.g. http://collector:4318.
	// Empty disables span export.
	OTLPEndpoint string
}

// Providers bundles the tracer and meter providers for the process.
type Providers struct {
	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
	registry       *prometheus.Registry
	exporting      bool
}

// Setup builds the providers and installs the W3C trace-context propagator
// used on backend calls. Call Shutdown to flush pending spans.
func Setup(ctx context.Context, s Settings) (*Providers, error) {
	res := resource.NewWithAttributes(semconv.SchemaURL,
		semconv.ServiceName(s.ServiceName),
		semconv.ServiceVersion(s.ServiceVersion),
	)

	registry := prometheus.NewRegistry()
	promExporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("telemetry: prometheus exporter: %w", err)
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(promExporter),
	)

	tpOpts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	exporting := false
	if s.OTLPEndpoint != "" {
		endpoint, err := tracesURL(s.OTLPEndpoint)
		if err != nil {
			_ = mp.Shutdown(ctx)
			return nil, err
		}
		exp, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint))
		if err != nil {
			_ = mp.Shutdown(ctx)
			return nil, fmt.Errorf("telemetry: otlp exporter: %w", err)
		}
		tpOpts = append(tpOpts, sdktrace.WithBatcher(exp))
		exporting = true
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return &Providers{
		tracerProvider: sdktrace.NewTracerProvider(tpOpts...),
		meterProvider:  mp,
		registry:       registry,
		exporting:      exporting,
	}, nil
}

func (p *Providers) Tracer() trace.Tracer { return p.tracerProvider.Tracer(instrumentationName) }

func (p *Providers) Meter() metric.Meter { return p.meterProvider.Meter(instrumentationName) }

// Exporting reports whether spans leave the process.
func (p *Providers) Exporting() bool { return p.exporting }

// MetricsHandler serves the collected metrics in Prometheus text format.
func (p *Providers) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// Shutdown flushes and stops both providers.
func (p *Providers) Shutdown(ctx context.Context) error {
	return errors.Join(
		p.tracerProvider.Shutdown(ctx),
		p.meterProvider.Shutdown(ctx),
	)
}

// tracesURL turns a collector base URL into the OTLP/HTTP traces URL. A
// missing scheme means http and a missing path means /v1/traces.
func tracesURL(endpoint string) (string, error) {
	if !strings.Contains(endpoint, "://") {
		endpoint = "http://" + endpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("telemetry: invalid otlp endpoint %q", endpoint)
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = defaultTracesPath
	}
	return u.String(), nil
}
