package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"

	"agri-advisor/internal/common/logger"
)

// Recorder is what the advisor components need from observability. A nil
// *Observability satisfies it and records nothing.
type Recorder interface {
	RecordCycle(ctx context.Context, component, outcome string)
	RecordCycleDuration(ctx context.Context, component string, duration time.Duration, outcome string)
}

// Observability exports one classify/fetch/render cycle counter and
// duration histogram through the OpenTelemetry Prometheus exporter.
type Observability struct {
	meterProvider *metric.MeterProvider
	meter         otelmetric.Meter
	cycleCounter  otelmetric.Int64Counter
	cycleDuration otelmetric.Float64Histogram
}

func New(serviceName string, log logger.Logger) *Observability {
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	exporter, err := prometheus.New()
	if err != nil {
		log.Warn("failed to create prometheus exporter", map[string]interface{}{"error": err})
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	cycleCounter, err := meter.Int64Counter(
		"advisor.cycles",
		otelmetric.WithDescription("Number of advisor cycles completed"),
	)
	if err != nil {
		log.Warn("failed to create cycle counter", map[string]interface{}{"error": err})
	}

	cycleDuration, err := meter.Float64Histogram(
		"advisor.cycle.duration",
		otelmetric.WithDescription("Advisor cycle duration"),
		otelmetric.WithUnit("ms"),
	)
	if err != nil {
		log.Warn("failed to create cycle duration histogram", map[string]interface{}{"error": err})
	}

	return &Observability{
		meterProvider: provider,
		meter:         meter,
		cycleCounter:  cycleCounter,
		cycleDuration: cycleDuration,
	}
}

func (o *Observability) RecordCycle(ctx context.Context, component, outcome string) {
	if o == nil || o.cycleCounter == nil {
		return
	}
	o.cycleCounter.Add(ctx, 1, otelmetric.WithAttributes(
		attribute.String("component", component),
		attribute.String("outcome", outcome),
	))
}

func (o *Observability) RecordCycleDuration(ctx context.Context, component string, duration time.Duration, outcome string) {
	if o == nil || o.cycleDuration == nil {
		return
	}
	o.cycleDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
		attribute.String("component", component),
		attribute.String("outcome", outcome),
	))
}

func (o *Observability) Shutdown() {
	if o == nil || o.meterProvider == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = o.meterProvider.Shutdown(ctx)
}
