// Package tracing wires OpenTelemetry into the site: a tracer provider that
// exports over OTLP/HTTP when an endpoint is configured, and echo middleware
// that traces the /api routes.
package tracing

import (
	"context"
	"log/slog"
	"strings"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/fx"

	"github.com/wackyworksdigital/wearewacky-com-sub000/internal/config"
	"github.com/wackyworksdigital/wearewacky-com-sub000/internal/version"
	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/logger"
)

var Module = fx.Module("tracing",
	fx.Provide(NewProvider),
	fx.Invoke(
		RegisterLifecycle,
		RegisterEchoMiddleware,
	),
)

// Provider holds the tracer provider installed as the otel global. sdk is
// nil when export is disabled.
type Provider struct {
	tp  trace.TracerProvider
	sdk *sdktrace.TracerProvider
}

// Exporting reports whether spans leave the process
func (p *Provider) Exporting() bool {
	return p.sdk != nil
}

// TracerProvider returns the installed provider
func (p *Provider) TracerProvider() trace.TracerProvider {
	return p.tp
}

// Shutdown flushes pending spans
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.sdk == nil {
		return nil
	}
	return p.sdk.Shutdown(ctx)
}

// NewProvider builds the provider from cfg.Otel and registers it globally so
// pkg/tracing spans in the domains attach to it.
func NewProvider(cfg *config.Config, log *slog.Logger) (*Provider, error) {
	log = log.With(logger.Scope("tracing"))
	oc := cfg.Otel

	if !oc.Enabled() {
		log.Info("tracing disabled, OTEL_EXPORTER_OTLP_ENDPOINT not set")
		tp := noop.NewTracerProvider()
		otel.SetTracerProvider(tp)
		return &Provider{tp: tp}, nil
	}

	ctx := context.Background()
	exp, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(oc.ExporterEndpoint))
	if err != nil {
		return nil, err
	}

	res, err := Resource(ctx, cfg)
	if err != nil {
		log.Warn("partial tracing resource", logger.Error(err))
	}

	sdk := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(Sampler(oc.SamplingRate)),
	)
	otel.SetTracerProvider(sdk)

	log.Info("tracing enabled",
		slog.String("endpoint", oc.ExporterEndpoint),
		slog.String("service", oc.ServiceName),
		slog.Float64("sampling_rate", oc.SamplingRate))

	return &Provider{tp: sdk, sdk: sdk}, nil
}

// Resource describes this deployment of the site. Attributes from
// OTEL_RESOURCE_ATTRIBUTES are merged in.
func Resource(ctx context.Context, cfg *config.Config) (*resource.Resource, error) {
	return resource.New(ctx,
		resource.WithSchemaURL(semconv.SchemaURL),
		resource.WithAttributes(
			semconv.ServiceName(cfg.Otel.ServiceName),
			semconv.ServiceVersion(version.Version),
			semconv.DeploymentEnvironment(cfg.Environment),
			attribute.String("wacky.site.base_url", cfg.BaseURL),
		),
		resource.WithFromEnv(),
	)
}

// Sampler honors the caller's decision and samples new traces at rate.
// Rates outside (0, 1) mean never or always.
func Sampler(rate float64) sdktrace.Sampler {
	var root sdktrace.Sampler
	switch {
	case rate <= 0:
		root = sdktrace.NeverSample()
	case rate >= 1:
		root = sdktrace.AlwaysSample()
	default:
		root = sdktrace.TraceIDRatioBased(rate)
	}
	return sdktrace.ParentBased(root)
}

// Traced reports whether a request path gets a server span. Only the JSON
// API is traced; health checks and /metrics are scraped too often to be useful.
func Traced(path string) bool {
	return strings.HasPrefix(path, "/api/") && path != "/api/health"
}

// RegisterLifecycle flushes spans on shutdown
func RegisterLifecycle(lc fx.Lifecycle, p *Provider, log *slog.Logger) {
	if !p.Exporting() {
		return
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Info("flushing traces")
			return p.Shutdown(ctx)
		},
	})
}

// RegisterEchoMiddleware traces /api requests with the site's provider
func RegisterEchoMiddleware(e *echo.Echo, p *Provider, cfg *config.Config) {
	if !p.Exporting() {
		return
	}
	e.Use(otelecho.Middleware(
		cfg.Otel.ServiceName,
		otelecho.WithTracerProvider(p.TracerProvider()),
		otelecho.WithSkipper(func(c echo.Context) bool {
			return !Traced(c.Request().URL.Path)
		}),
	))
}
