package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	ServiceName    = "gouji-game-engine"
	ServiceVersion = "1.0.0"
)

type TracingConfig struct {
	Enabled     bool    `yaml:"enabled" mapstructure:"enabled"`
	JaegerURL   string  `yaml:"jaeger_url" mapstructure:"jaeger_url"`
	ServiceName string  `yaml:"service_name" mapstructure:"service_name"`
	Environment string  `yaml:"environment" mapstructure:"environment"`
	SampleRate  float64 `yaml:"sample_rate" mapstructure:"sample_rate"`
}

// TracingManager owns the OpenTelemetry setup. When disabled it hands
// out the global no-op tracer so call sites stay unconditional.
type TracingManager struct {
	tracer   trace.Tracer
	provider *sdktrace.TracerProvider
	config   TracingConfig
}

func NewTracingManager(config TracingConfig) (*TracingManager, error) {
	if !config.Enabled {
		return &TracingManager{
			tracer: otel.Tracer(ServiceName),
			config: config,
		}, nil
	}

	exp, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(config.JaegerURL)))
	if err != nil {
		return nil, fmt.Errorf("failed to create Jaeger exporter: %w", err)
	}

	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(getServiceName(config)),
			semconv.ServiceVersion(ServiceVersion),
			semconv.DeploymentEnvironment(config.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(config.SampleRate)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return &TracingManager{
		tracer:   tp.Tracer(getServiceName(config)),
		provider: tp,
		config:   config,
	}, nil
}

func (tm *TracingManager) StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return tm.tracer.Start(ctx, name, opts...)
}

// StartGameOperation starts a span for game operations.
func (tm *TracingManager) StartGameOperation(ctx context.Context, operation, gameID string) (context.Context, trace.Span) {
	spanName := fmt.Sprintf("game.%s", operation)
	return tm.tracer.Start(ctx, spanName,
		trace.WithAttributes(
			attribute.String("game.id", gameID),
			attribute.String("operation", operation),
		),
	)
}

// StartBenchOperation starts a span for benchmark runs.
func (tm *TracingManager) StartBenchOperation(ctx context.Context, benchmark string) (context.Context, trace.Span) {
	return tm.tracer.Start(ctx, "bench.run",
		trace.WithAttributes(
			attribute.String("bench.name", benchmark),
		),
	)
}

func (tm *TracingManager) SetSpanError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

func (tm *TracingManager) Shutdown(ctx context.Context) error {
	if tm.provider == nil {
		return nil
	}
	return tm.provider.Shutdown(ctx)
}

func (tm *TracingManager) IsEnabled() bool {
	return tm.config.Enabled
}

func (tm *TracingManager) GetTracer() trace.Tracer {
	return tm.tracer
}

func getServiceName(config TracingConfig) string {
	if config.ServiceName != "" {
		return config.ServiceName
	}
	return ServiceName
}
