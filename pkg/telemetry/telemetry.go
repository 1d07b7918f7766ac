package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.20.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

type Config struct {
	Service           string
	Namespace         string
	Version           string
	Environment       string
	OtelCollectorAddr string
}

var globalTelemetry = NewNull()

func Global() Telemetry {
	return globalTelemetry
}

func SetGlobal(t Telemetry) {
	globalTelemetry = t
}

type Telemetry struct {
	trace         trace.Tracer
	traceProvider trace.TracerProvider
}

func NewNull() Telemetry {
	provider := noop.NewTracerProvider()
	return Telemetry{
		trace:         provider.Tracer("noop"),
		traceProvider: provider,
	}
}

// New installs an OTLP exporting tracer provider as the global one. Without
// a collector address it installs the null provider and a no-op shutdown.
func New(ctx context.Context, cfg *Config) (tel Telemetry, shutdown func(context.Context) error, err error) {
	if cfg.OtelCollectorAddr == "" {
		tel = NewNull()
		SetGlobal(tel)
		return tel, func(context.Context) error { return nil }, nil
	}

	var shutdownFuncs []func(context.Context) error

	// Each registered cleanup runs once; errors are joined.
	shutdown = func(ctx context.Context) error {
		var err error
		for _, fn := range shutdownFuncs {
			err = errors.Join(err, fn(ctx))
		}
		shutdownFuncs = nil
		return err
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	tracerProvider, err := newTracerProvider(ctx, newResource(ctx, *cfg), cfg)
	if err != nil {
		err = errors.Join(err, shutdown(ctx))
		return
	}
	shutdownFuncs = append(shutdownFuncs, tracerProvider.Shutdown)
	otel.SetTracerProvider(tracerProvider)

	tel.traceProvider = tracerProvider
	tel.trace = otel.Tracer(fmt.Sprintf("%s_%s_tracer", cfg.Namespace, cfg.Service))

	SetGlobal(tel)

	return
}

func newTracerProvider(ctx context.Context, res *resource.Resource, cfg *Config) (*sdktrace.TracerProvider, error) {
	traceExporter, err := otlptrace.New(
		ctx,
		otlptracegrpc.NewClient(
			otlptracegrpc.WithEndpoint(cfg.OtelCollectorAddr),
			otlptracegrpc.WithInsecure(),
		),
	)
	if err != nil {
		return nil, err
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(traceExporter, sdktrace.WithBatchTimeout(time.Second)),
	), nil
}

func newResource(ctx context.Context, cfg Config) *resource.Resource {
	res, _ := resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithHost(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(cfg.Service),
			// loki labels cannot contain dots
			attribute.Key("service").String(cfg.Service),
			semconv.ServiceNamespaceKey.String(cfg.Namespace),
			semconv.ServiceVersionKey.String(cfg.Version),
			semconv.DeploymentEnvironmentKey.String(cfg.Environment),
			semconv.ServiceInstanceIDKey.String(cfg.Service+"-"+uuid.NewString()[:8]),
		),
	)
	return res
}

func (t Telemetry) T() trace.Tracer {
	return t.trace
}

func (t Telemetry) Tracer(name string, opts ...trace.TracerOption) Telemetry {
	t.trace = t.traceProvider.Tracer(name, opts...)
	return t
}

func (t Telemetry) TraceProvider() trace.TracerProvider {
	return t.traceProvider
}
