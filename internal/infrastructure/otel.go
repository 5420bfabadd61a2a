package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"time"

	"bikeshare/internal/config"
	"bikeshare/pkg/contracts"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	ServiceName = "bikeshare"
	// InstrumentationName names the tracer and meter used across the module
	InstrumentationName = "bikeshare"
)

// Metric names as registered with the meter. The Prometheus exporter appends
// unit and _total suffixes when gathering.
const (
	MetricLoads             = "bikeshare_loads"
	MetricLoadDuration      = "bikeshare_load_duration"
	MetricTripsLoaded       = "bikeshare_trips_loaded"
	MetricStatisticDuration = "bikeshare_statistic_duration"
)

// TelemetryOption customises InitializeTelemetry
type TelemetryOption func(*telemetryOptions)

type telemetryOptions struct {
	traceWriter io.Writer
}

// WithTraceWriter sends stdout-exported spans to w instead of stderr
func WithTraceWriter(w io.Writer) TelemetryOption {
	return func(o *telemetryOptions) { o.traceWriter = w }
}

// Telemetry holds the OpenTelemetry providers and the instruments used by
// the loader and the statistics engine. A nil *Telemetry records nothing.
type Telemetry struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Registry       *prometheus.Registry
	Logger         *slog.Logger

	loads             metric.Int64Counter
	loadDuration      metric.Float64Histogram
	tripsLoaded       metric.Int64Counter
	statisticDuration metric.Float64Histogram
}

// InitializeTelemetry sets up tracing and metrics according to cfg.
// Metrics are exported into a private Prometheus registry; nothing is served.
func InitializeTelemetry(cfg config.TelemetryConfig, logger *slog.Logger, opts ...TelemetryOption) (*Telemetry, error) {
	if logger == nil {
		logger = GetLogger()
	}
	o := telemetryOptions{traceWriter: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}

	ctx := context.Background()
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(contracts.Version),
	)

	t := &Telemetry{Logger: logger}

	if err := t.initializeTracing(cfg, res, o.traceWriter); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	meter, err := t.initializeMetrics(cfg, res)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}
	if err := t.createInstruments(meter); err != nil {
		return nil, fmt.Errorf("failed to create instruments: %w", err)
	}

	logger.DebugContext(ctx, "Telemetry initialized",
		slog.String("trace_exporter", cfg.TraceExporter),
		slog.Bool("metrics_enabled", cfg.EnableMetrics))

	return t, nil
}

// initializeTracing installs a global tracer provider when an exporter is configured
func (t *Telemetry) initializeTracing(cfg config.TelemetryConfig, res *resource.Resource, w io.Writer) error {
	switch cfg.TraceExporter {
	case "", "none":
		return nil
	case "stdout":
		exporter, err := stdouttrace.New(
			stdouttrace.WithWriter(w),
			stdouttrace.WithPrettyPrint(),
		)
		if err != nil {
			return fmt.Errorf("failed to create trace exporter: %w", err)
		}
		tp := sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithResource(res),
			sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.SampleRatio)),
		)
		t.TracerProvider = tp
		otel.SetTracerProvider(tp)
		return nil
	default:
		return fmt.Errorf("unsupported trace exporter: %s", cfg.TraceExporter)
	}
}

// initializeMetrics returns the meter instruments are created from
func (t *Telemetry) initializeMetrics(cfg config.TelemetryConfig, res *resource.Resource) (metric.Meter, error) {
	if !cfg.EnableMetrics {
		return noop.NewMeterProvider().Meter(InstrumentationName), nil
	}

	reg := prometheus.NewRegistry()
	exporter, err := otelprom.New(otelprom.WithRegisterer(reg))
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)
	t.MeterProvider = mp
	t.Registry = reg

	return mp.Meter(InstrumentationName, metric.WithInstrumentationVersion(contracts.Version)), nil
}

func (t *Telemetry) createInstruments(meter metric.Meter) error {
	var err error
	if t.loads, err = meter.Int64Counter(MetricLoads,
		metric.WithDescription("Number of dataset loads by city and outcome"),
	); err != nil {
		return err
	}
	if t.loadDuration, err = meter.Float64Histogram(MetricLoadDuration,
		metric.WithDescription("Dataset load duration in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return err
	}
	if t.tripsLoaded, err = meter.Int64Counter(MetricTripsLoaded,
		metric.WithDescription("Trips surviving the selection filters"),
	); err != nil {
		return err
	}
	if t.statisticDuration, err = meter.Float64Histogram(MetricStatisticDuration,
		metric.WithDescription("Statistic group computation time in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return err
	}
	return nil
}

// ObserveLoad records one dataset load
func (t *Telemetry) ObserveLoad(ctx context.Context, city string, trips int, elapsed time.Duration, err error) {
	if t == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	attrs := metric.WithAttributes(
		attribute.String("city", city),
		attribute.String("status", status),
	)
	t.loads.Add(ctx, 1, attrs)
	t.loadDuration.Record(ctx, elapsed.Seconds(), attrs)
	if err == nil {
		t.tripsLoaded.Add(ctx, int64(trips), metric.WithAttributes(attribute.String("city", city)))
	}
}

// ObserveComputation records the time one statistic group took over a table of the given size
func (t *Telemetry) ObserveComputation(ctx context.Context, group string, elapsed time.Duration, trips int) {
	if t == nil {
		return
	}
	t.statisticDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attribute.String("group", group)))
	trace.SpanFromContext(ctx).AddEvent("statistic.computed", trace.WithAttributes(
		attribute.String("group", group),
		attribute.Int("trips", trips),
	))
}

// Snapshot gathers the registry and returns, per metric family, the counter
// total or the histogram sample count summed across label sets.
func (t *Telemetry) Snapshot() (map[string]float64, error) {
	if t == nil || t.Registry == nil {
		return map[string]float64{}, nil
	}
	families, err := t.Registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("failed to gather metrics: %w", err)
	}

	out := make(map[string]float64, len(families))
	for _, mf := range families {
		var total float64
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				total += m.GetCounter().GetValue()
			case m.GetHistogram() != nil:
				total += float64(m.GetHistogram().GetSampleCount())
			case m.GetGauge() != nil:
				total += m.GetGauge().GetValue()
			}
		}
		out[mf.GetName()] = total
	}
	return out, nil
}

// LogSnapshot writes the current metric snapshot at debug level
func (t *Telemetry) LogSnapshot(ctx context.Context) {
	if t == nil {
		return
	}
	snap, err := t.Snapshot()
	if err != nil {
		WithError(t.Logger, err).WarnContext(ctx, "Telemetry snapshot failed")
		return
	}
	names := make([]string, 0, len(snap))
	for name := range snap {
		names = append(names, name)
	}
	sort.Strings(names)

	attrs := make([]any, 0, len(names))
	for _, name := range names {
		attrs = append(attrs, slog.Float64(name, snap[name]))
	}
	t.Logger.DebugContext(ctx, "Telemetry snapshot", attrs...)
}

// Shutdown flushes and stops the providers
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}
	var errs []error
	if t.TracerProvider != nil {
		if err := t.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}
	if t.MeterProvider != nil {
		if err := t.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

// StartSpan starts a span on the global tracer
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(InstrumentationName).Start(ctx, name, trace.WithAttributes(attrs...))
}

// RecordError records an error on the current span
func RecordError(ctx context.Context, err error) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() || err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// TraceIDFromContext extracts trace ID from context for logging correlation
func TraceIDFromContext(ctx context.Context) string {
	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() {
		return spanCtx.TraceID().String()
	}
	return ""
}
