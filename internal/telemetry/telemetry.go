// Package telemetry installs the OpenTelemetry SDK providers for traces,
// metrics, and logs.
package telemetry

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Config holds telemetry settings.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	// Endpoint is the host:port of an OTLP gRPC collector. If empty, the
	// providers are installed without exporters.
	Endpoint string
}

// Telemetry holds the installed providers.
type Telemetry struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	LoggerProvider *sdklog.LoggerProvider
}

// Setup creates the providers, exporting to cfg.Endpoint if it is set, and
// installs them as the global providers.
func Setup(ctx context.Context, cfg Config) (*Telemetry, error) {
	if cfg.Endpoint == "" {
		return install(cfg, pipeline{}), nil
	}
	tExp, err := otlptracegrpc.New(ctx, otlptracegrpc.WithEndpoint(cfg.Endpoint), otlptracegrpc.WithInsecure())
	if err != nil {
		return nil, fmt.Errorf("can't initialize tracer exporter: %w", err)
	}
	mExp, err := otlpmetricgrpc.New(ctx, otlpmetricgrpc.WithEndpoint(cfg.Endpoint), otlpmetricgrpc.WithInsecure())
	if err != nil {
		return nil, fmt.Errorf("can't initialize metric exporter: %w", err)
	}
	lExp, err := otlploggrpc.New(ctx, otlploggrpc.WithEndpoint(cfg.Endpoint), otlploggrpc.WithInsecure())
	if err != nil {
		return nil, fmt.Errorf("can't initialize logger exporter: %w", err)
	}
	return install(cfg, pipeline{
		spans:   sdktrace.NewBatchSpanProcessor(tExp),
		metrics: sdkmetric.NewPeriodicReader(mExp),
		logs:    sdklog.NewBatchProcessor(lExp),
	}), nil
}

// pipeline is where each provider sends its data. Nil fields are omitted.
type pipeline struct {
	spans   sdktrace.SpanProcessor
	metrics sdkmetric.Reader
	logs    sdklog.Processor
}

func install(cfg Config, p pipeline) *Telemetry {
	res := newResource(cfg)

	topts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	if p.spans != nil {
		topts = append(topts, sdktrace.WithSpanProcessor(p.spans))
	}
	mopts := []sdkmetric.Option{sdkmetric.WithResource(res)}
	if p.metrics != nil {
		mopts = append(mopts, sdkmetric.WithReader(p.metrics))
	}
	lopts := []sdklog.LoggerProviderOption{sdklog.WithResource(res)}
	if p.logs != nil {
		lopts = append(lopts, sdklog.WithProcessor(p.logs))
	}

	t := &Telemetry{
		TracerProvider: sdktrace.NewTracerProvider(topts...),
		MeterProvider:  sdkmetric.NewMeterProvider(mopts...),
		LoggerProvider: sdklog.NewLoggerProvider(lopts...),
	}
	otel.SetTracerProvider(t.TracerProvider)
	otel.SetMeterProvider(t.MeterProvider)
	global.SetLoggerProvider(t.LoggerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	return t
}

func newResource(cfg Config) *sdkresource.Resource {
	return sdkresource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		semconv.DeploymentEnvironment(cfg.Environment),
		semconv.TelemetrySDKLanguageGo,
	)
}

// Shutdown flushes and stops the providers and their exporters.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	if err := t.MeterProvider.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("can't shutdown metric provider: %w", err))
	}
	if err := t.TracerProvider.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("can't shutdown tracer provider: %w", err))
	}
	if err := t.LoggerProvider.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("can't shutdown logger provider: %w", err))
	}
	return errors.Join(errs...)
}
