// Package metrics exports panel metrics through OpenTelemetry and serves them
// in the Prometheus text format.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

type Provider struct {
	*sdkmetric.MeterProvider
	registry *prometheus.Registry
}

// Setup creates a meter provider backed by its own Prometheus registry and
// installs it as the global provider.
func Setup() (*Provider, error) {
	registry := prometheus.NewRegistry()

	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return nil, err
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	return &Provider{MeterProvider: provider, registry: registry}, nil
}

// Handler serves the collected metrics.
func (p *Provider) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// Recorder holds the instruments for backend round trips.
type Recorder struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
}

func NewRecorder(meter metric.Meter) (*Recorder, error) {
	requests, err := meter.Int64Counter(
		"admin.backend.requests",
		metric.WithDescription("Count of completed backend requests, by method, resource and response status"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"admin.backend.duration",
		metric.WithDescription("Backend request latency"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &Recorder{requests: requests, duration: duration}, nil
}

// Observe matches client.Observer.
func (rec *Recorder) Observe(ctx context.Context, method, resource string, status int, elapsed time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("resource", resource),
		attribute.String("status", strconv.Itoa(status)),
	)

	rec.requests.Add(ctx, 1, attrs)
	rec.duration.Record(ctx, elapsed.Seconds(), attrs)
}
