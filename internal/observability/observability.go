package observability

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/KasumiMercury/primind-reminder-scheduling/internal/observability/logging"
)

type Config struct {
	ServiceInfo   logging.ServiceInfo
	Environment   logging.Environment
	LogLevel      slog.Level
	SamplingRate  float64
	DefaultModule logging.Module

	// GCPProjectID selects the Cloud Trace / Cloud Monitoring project for
	// gcloud builds. Ignored on other platforms.
	GCPProjectID string
}

// Resources holds the initialized observability stack. Shutdown flushes
// exporters and must run before process exit.
type Resources struct {
	logger    *slog.Logger
	shutdowns []func(context.Context) error
}

func (r *Resources) Logger() *slog.Logger {
	return r.logger
}

func (r *Resources) Shutdown(ctx context.Context) error {
	var errs []error
	for i := len(r.shutdowns) - 1; i >= 0; i-- {
		if err := r.shutdowns[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Init wires the logger, tracer provider, and meter provider. Exporters
// are platform-specific: gcloud builds export to Cloud Trace and Cloud
// Monitoring, local builds export over OTLP when an endpoint is
// configured. A nil exporter skips the corresponding provider, leaving
// instrumented code on the no-op defaults.
func Init(ctx context.Context, cfg Config) (*Resources, error) {
	res := &Resources{
		logger: logging.NewLogger(cfg.Environment, cfg.LogLevel, cfg.ServiceInfo, cfg.DefaultModule),
	}

	otelResource, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.ServiceInfo.Name),
			semconv.ServiceVersion(cfg.ServiceInfo.Version),
			semconv.DeploymentEnvironment(string(cfg.Environment)),
		),
	)
	if err != nil {
		return nil, err
	}

	traceExporter, err := newTraceExporter(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if traceExporter != nil {
		samplingRate := cfg.SamplingRate
		if samplingRate <= 0 || samplingRate > 1 {
			samplingRate = 1.0
		}

		tracerProvider := sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(traceExporter),
			sdktrace.WithResource(otelResource),
			sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(samplingRate))),
		)
		otel.SetTracerProvider(tracerProvider)
		res.shutdowns = append(res.shutdowns, tracerProvider.Shutdown)
	}

	metricExporter, err := newMetricExporter(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if metricExporter != nil {
		meterProvider := sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(otelResource),
			sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter,
				sdkmetric.WithInterval(30*time.Second),
			)),
		)
		otel.SetMeterProvider(meterProvider)
		res.shutdowns = append(res.shutdowns, meterProvider.Shutdown)
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))

	return res, nil
}
