// Package observability sets up OpenTelemetry tracing for tabular.
//
// Until Init is called spans go to the global no-op provider, so callers
// can start spans unconditionally.
package observability

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/ajitpratap0/tabular/pkg/errors"
	"github.com/ajitpratap0/tabular/pkg/logger"
)

// InstrumentationName names the tracer used by all tabular packages.
const InstrumentationName = "github.com/ajitpratap0/tabular"

// TracingConfig contains tracing configuration
type TracingConfig struct {
	ServiceName    string
	ServiceVersion string
	// SamplingRate is the fraction of traces kept, 0 keeps none and 1 keeps all
	SamplingRate float64
	// Writer receives the exported spans, os.Stderr when nil
	Writer io.Writer
	// PrettyPrint indents the exported JSON
	PrettyPrint bool
}

var (
	mu       sync.Mutex
	provider *sdktrace.TracerProvider
)

// Init installs an SDK tracer provider that exports spans as JSON to
// cfg.Writer. Calling Init again replaces the previous provider after
// shutting it down.
func Init(ctx context.Context, cfg TracingConfig) error {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(cfg.ServiceName),
			semconv.ServiceVersionKey.String(cfg.ServiceVersion),
		),
	)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeConfig, "failed to create tracing resource")
	}

	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}
	opts := []stdouttrace.Option{stdouttrace.WithWriter(w)}
	if cfg.PrettyPrint {
		opts = append(opts, stdouttrace.WithPrettyPrint())
	}
	exporter, err := stdouttrace.New(opts...)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeConfig, "failed to create stdout exporter")
	}

	var sampler sdktrace.Sampler
	switch {
	case cfg.SamplingRate <= 0:
		sampler = sdktrace.NeverSample()
	case cfg.SamplingRate >= 1.0:
		sampler = sdktrace.AlwaysSample()
	default:
		sampler = sdktrace.TraceIDRatioBased(cfg.SamplingRate)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
		sdktrace.WithBatcher(exporter),
	)

	mu.Lock()
	previous := provider
	provider = tp
	mu.Unlock()

	otel.SetTracerProvider(tp)
	logger.Debug("tracing initialized", zap.String("service", cfg.ServiceName))

	if previous != nil {
		return previous.Shutdown(ctx)
	}
	return nil
}

// Tracer returns the tabular tracer from the global provider.
func Tracer() trace.Tracer {
	return otel.Tracer(InstrumentationName)
}

// StartSpan starts a span named operation.
func StartSpan(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return Tracer().Start(ctx, operation, trace.WithAttributes(attrs...))
}

// EndSpan records err on the span, if any, and ends it.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// Shutdown flushes pending spans and syncs the logger.
func Shutdown(ctx context.Context) error {
	mu.Lock()
	tp := provider
	provider = nil
	mu.Unlock()

	var err error
	if tp != nil {
		if serr := tp.Shutdown(ctx); serr != nil {
			err = multierr.Append(err, errors.Wrap(serr, errors.ErrorTypeInternal, "failed to shutdown tracer"))
		}
	}
	if serr := logger.Sync(); serr != nil && !isStdSyncError(serr) {
		err = multierr.Append(err, errors.Wrap(serr, errors.ErrorTypeInternal, "failed to sync logger"))
	}
	return err
}

// isStdSyncError reports the errors fsync returns for terminals and pipes.
// See https://github.com/uber-go/zap/issues/328
func isStdSyncError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "bad file descriptor") ||
		strings.Contains(msg, "invalid argument") ||
		strings.Contains(msg, "inappropriate ioctl")
}
