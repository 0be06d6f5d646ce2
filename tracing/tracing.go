// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tracing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"fram.dev/message"
	"fram.dev/router"
	"fram.dev/telemetry/semconv"
)

const instrumentationName = "fram.dev/tracing"

// Provider selects the built-in span exporter.
type Provider string

const (
	// NoopProvider records spans without exporting them.
	NoopProvider Provider = "noop"
	// StdoutProvider writes spans as JSON.
	StdoutProvider Provider = "stdout"
)

const (
	// DefaultServiceName is used when WithServiceName is not given.
	DefaultServiceName = "fram"
	// DefaultServiceVersion is used when WithServiceVersion is not given.
	DefaultServiceVersion = "dev"
	// DefaultSampleRate samples every request.
	DefaultSampleRate = 1.0
)

// ErrInvalidSampleRate is returned for a sample rate outside [0, 1].
var ErrInvalidSampleRate = errors.New("sample rate must be between 0.0 and 1.0")

// Tracer traces dispatches. It is safe for concurrent use.
type Tracer struct {
	tracer         trace.Tracer
	tracerProvider trace.TracerProvider
	sdkProvider    *sdktrace.TracerProvider
	propagator     propagation.TextMapPropagator
	logger         *slog.Logger

	provider       Provider
	output         io.Writer
	serviceName    string
	serviceVersion string
	sampleRate     float64
	recordHeaders  []string
	excludePaths   map[string]bool

	customTracerProvider bool
	registerGlobal       bool
	isShutdown           atomic.Bool
}

// Option configures a Tracer.
type Option func(*Tracer)

// WithServiceName sets the service.name resource attribute.
func WithServiceName(name string) Option {
	return func(t *Tracer) { t.serviceName = name }
}

// WithServiceVersion sets the service.version resource attribute.
func WithServiceVersion(version string) Option {
	return func(t *Tracer) { t.serviceVersion = version }
}

// WithNoop records spans without exporting them. This is the default.
func WithNoop() Option {
	return func(t *Tracer) { t.provider = NoopProvider }
}

// WithStdout exports spans as JSON to os.Stdout.
func WithStdout() Option {
	return WithStdoutWriter(os.Stdout)
}

// WithStdoutWriter exports spans as JSON to w.
func WithStdoutWriter(w io.Writer) Option {
	return func(t *Tracer) {
		t.provider = StdoutProvider
		t.output = w
	}
}

// WithTracerProvider uses a caller-owned provider. Shutdown leaves it running.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(t *Tracer) {
		t.tracerProvider = tp
		t.customTracerProvider = true
	}
}

// WithGlobalTracerProvider registers the provider with otel.SetTracerProvider.
func WithGlobalTracerProvider() Option {
	return func(t *Tracer) { t.registerGlobal = true }
}

// WithPropagator replaces the W3C trace-context and baggage propagator.
func WithPropagator(p propagation.TextMapPropagator) Option {
	return func(t *Tracer) { t.propagator = p }
}

// WithSampleRate samples a fraction of root spans. Requests carrying a
// sampled parent are always traced.
func WithSampleRate(rate float64) Option {
	return func(t *Tracer) { t.sampleRate = rate }
}

// WithHeaders records the given request headers as span attributes.
func WithHeaders(headers ...string) Option {
	return func(t *Tracer) { t.recordHeaders = append(t.recordHeaders, headers...) }
}

// WithExcludePaths skips tracing for exact paths such as "/healthz".
func WithExcludePaths(paths ...string) Option {
	return func(t *Tracer) {
		for _, p := range paths {
			t.excludePaths[p] = true
		}
	}
}

// WithLogger sets the logger for operational messages.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tracer) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// New creates a Tracer.
func New(opts ...Option) (*Tracer, error) {
	t := &Tracer{
		logger:         slog.New(slog.DiscardHandler),
		provider:       NoopProvider,
		serviceName:    DefaultServiceName,
		serviceVersion: DefaultServiceVersion,
		sampleRate:     DefaultSampleRate,
		excludePaths:   make(map[string]bool),
		propagator: propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	}
	for _, opt := range opts {
		opt(t)
	}

	if err := t.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := t.initializeProvider(); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	return t, nil
}

// MustNew is like New but panics on error.
func MustNew(opts ...Option) *Tracer {
	t, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("tracing.MustNew: %v", err))
	}
	return t
}

func (t *Tracer) validate() error {
	var errs []error
	if t.serviceName == "" {
		errs = append(errs, errors.New("service name cannot be empty"))
	}
	if t.sampleRate < 0 || t.sampleRate > 1 {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalidSampleRate, t.sampleRate))
	}
	if t.customTracerProvider && t.tracerProvider == nil {
		errs = append(errs, errors.New("custom tracer provider is nil"))
	}
	if t.propagator == nil {
		errs = append(errs, errors.New("propagator cannot be nil"))
	}
	return errors.Join(errs...)
}

// ServiceName returns the service.name attribute value.
func (t *Tracer) ServiceName() string { return t.serviceName }

// Provider returns the built-in provider in use, or "" for a custom one.
func (t *Tracer) Provider() Provider {
	if t.customTracerProvider {
		return ""
	}
	return t.provider
}

// Shutdown flushes and stops the provider it owns.
func (t *Tracer) Shutdown(ctx context.Context) error {
	if !t.isShutdown.CompareAndSwap(false, true) || t.sdkProvider == nil {
		return nil
	}
	if err := t.sdkProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("tracer provider shutdown: %w", err)
	}
	return nil
}

// OnDispatchStart extracts the remote trace context and starts a server span.
func (t *Tracer) OnDispatchStart(ctx context.Context, req *message.Request) (context.Context, any) {
	if t.isShutdown.Load() || t.excludePaths[req.Path()] {
		return ctx, nil
	}

	ctx = t.propagator.Extract(ctx, propagation.HeaderCarrier(req.Headers()))
	ctx, span := t.tracer.Start(ctx, req.Method()+" "+req.Path(), trace.WithSpanKind(trace.SpanKindServer))

	attrs := make([]attribute.KeyValue, 0, 3+len(t.recordHeaders))
	attrs = append(attrs,
		attribute.String(semconv.HTTPRequestMethod, req.Method()),
		attribute.String(semconv.URLPath, req.Path()),
	)
	if q := req.URL().RawQuery; q != "" {
		attrs = append(attrs, attribute.String(semconv.URLQuery, q))
	}
	for _, h := range t.recordHeaders {
		if v := req.Header(h); v != "" {
			attrs = append(attrs, attribute.String(semconv.HTTPRequestHeaderPrefix+strings.ToLower(h), v))
		}
	}
	span.SetAttributes(attrs...)
	return ctx, span
}

// OnDispatchEnd names the span after the route and records the outcome.
func (t *Tracer) OnDispatchEnd(_ context.Context, state any, route router.Route, resp *message.Response, err error) {
	span, ok := state.(trace.Span)
	if !ok {
		return
	}
	defer span.End()

	if route.IsFailure() {
		span.SetAttributes(attribute.Bool(semconv.RouteMiss, true))
	} else {
		span.SetName(route.Method() + " " + route.Pattern())
		span.SetAttributes(
			attribute.String(semconv.HTTPRoute, route.Pattern()),
			attribute.String(semconv.RouteName, route.Name()),
			attribute.String(semconv.RouteHandler, route.Handler()),
		)
	}

	switch {
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	case resp != nil:
		span.SetAttributes(attribute.Int(semconv.HTTPResponseStatusCode, resp.StatusCode()))
		if resp.StatusCode() >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(resp.StatusCode()))
		}
	}
}

// Inject writes the trace context of ctx into h.
func (t *Tracer) Inject(ctx context.Context, h http.Header) {
	t.propagator.Inject(ctx, propagation.HeaderCarrier(h))
}

// TraceID returns the trace id in ctx, or "".
func TraceID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return ""
	}
	return sc.TraceID().String()
}

// SpanID returns the span id in ctx, or "".
func SpanID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return ""
	}
	return sc.SpanID().String()
}

// AddEvent adds an event to the span in ctx, if it is recording.
func AddEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.AddEvent(name, trace.WithAttributes(attrs...))
	}
}

// SetAttributes sets attributes on the span in ctx, if it is recording.
func SetAttributes(ctx context.Context, attrs ...attribute.KeyValue) {
	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(attrs...)
	}
}

func (t *Tracer) setGlobal() {
	if t.registerGlobal {
		t.logger.Debug("setting global tracer provider", "provider", t.provider)
		otel.SetTracerProvider(t.tracerProvider)
		otel.SetTextMapPropagator(t.propagator)
	}
}
