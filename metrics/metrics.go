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

package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"fram.dev/telemetry/semconv"
)

const instrumentationName = "fram.dev/metrics"

// DefaultDurationBuckets are the dispatch duration histogram bounds in seconds.
var DefaultDurationBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

var (
	// ErrNoHandler is returned by HandlerE when the recorder does not own a
	// Prometheus registry.
	ErrNoHandler = errors.New("metrics handler only available with the built-in Prometheus exporter")

	// ErrInvalidMetricName is returned for custom metric names that are
	// empty, malformed or use a reserved prefix.
	ErrInvalidMetricName = errors.New("invalid metric name")

	// ErrMetricsLimit is returned when the custom metric limit is reached.
	ErrMetricsLimit = errors.New("custom metrics limit reached")
)

// Recorder records dispatch metrics. It is safe for concurrent use.
type Recorder struct {
	meter         metric.Meter
	meterProvider metric.MeterProvider
	registry      *promclient.Registry
	handler       http.Handler
	logger        *slog.Logger

	requests metric.Int64Counter
	duration metric.Float64Histogram
	active   metric.Int64UpDownCounter
	misses   metric.Int64Counter

	customMu          sync.RWMutex
	customCounters    map[string]metric.Int64Counter
	customHistograms  map[string]metric.Float64Histogram
	maxCustomMetrics  int
	customMetricCount int

	durationBuckets []float64
	serviceName     string
	serviceVersion  string
	serviceAttrs    []attribute.KeyValue

	customMeterProvider bool
	registerGlobal      bool
	isShuttingDown      atomic.Bool
}

// New creates a Recorder.
func New(opts ...Option) (*Recorder, error) {
	r := &Recorder{
		logger:           slog.New(slog.DiscardHandler),
		serviceName:      "fram",
		serviceVersion:   "dev",
		durationBuckets:  DefaultDurationBuckets,
		maxCustomMetrics: 100,
		customCounters:   make(map[string]metric.Int64Counter),
		customHistograms: make(map[string]metric.Float64Histogram),
	}
	for _, opt := range opts {
		opt(r)
	}

	if err := r.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := r.initializeProvider(); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}
	return r, nil
}

// MustNew is like New but panics on error.
func MustNew(opts ...Option) *Recorder {
	r, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("metrics.MustNew: %v", err))
	}
	return r
}

func (r *Recorder) validate() error {
	var errs []error
	if r.serviceName == "" {
		errs = append(errs, errors.New("service name cannot be empty"))
	}
	if r.customMeterProvider && r.meterProvider == nil {
		errs = append(errs, errors.New("custom meter provider is nil"))
	}
	if r.maxCustomMetrics < 0 {
		errs = append(errs, errors.New("max custom metrics must be non-negative"))
	}
	for i := 1; i < len(r.durationBuckets); i++ {
		if r.durationBuckets[i] <= r.durationBuckets[i-1] {
			errs = append(errs, errors.New("duration buckets must be strictly increasing"))
			break
		}
	}
	return errors.Join(errs...)
}

func (r *Recorder) initializeProvider() error {
	if !r.customMeterProvider {
		r.registry = promclient.NewRegistry()
		exporter, err := prometheus.New(prometheus.WithRegisterer(r.registry))
		if err != nil {
			return fmt.Errorf("failed to create Prometheus exporter: %w", err)
		}
		r.meterProvider = sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
		r.handler = promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
	}

	if r.registerGlobal {
		r.logger.Debug("setting global meter provider")
		otel.SetMeterProvider(r.meterProvider)
	}

	r.serviceAttrs = []attribute.KeyValue{
		attribute.String(semconv.ServiceName, r.serviceName),
		attribute.String(semconv.ServiceVersion, r.serviceVersion),
	}
	r.meter = r.meterProvider.Meter(instrumentationName)
	return r.initializeMetrics()
}

func (r *Recorder) initializeMetrics() error {
	var err error

	r.requests, err = r.meter.Int64Counter(
		"fram.dispatch.requests",
		metric.WithDescription("Dispatched requests"),
	)
	if err != nil {
		return fmt.Errorf("failed to create request counter: %w", err)
	}

	r.duration, err = r.meter.Float64Histogram(
		"fram.dispatch.duration",
		metric.WithDescription("Dispatch duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(r.durationBuckets...),
	)
	if err != nil {
		return fmt.Errorf("failed to create duration histogram: %w", err)
	}

	r.active, err = r.meter.Int64UpDownCounter(
		"fram.dispatch.active",
		metric.WithDescription("In-flight dispatches"),
	)
	if err != nil {
		return fmt.Errorf("failed to create active counter: %w", err)
	}

	r.misses, err = r.meter.Int64Counter(
		"fram.route.misses",
		metric.WithDescription("Requests no route matched"),
	)
	if err != nil {
		return fmt.Errorf("failed to create miss counter: %w", err)
	}
	return nil
}

// Handler serves the Prometheus registry. It returns 404 when a custom
// meter provider is used.
func (r *Recorder) Handler() http.Handler {
	if r.handler == nil {
		return http.NotFoundHandler()
	}
	return r.handler
}

// HandlerE is like Handler but reports a missing registry.
func (r *Recorder) HandlerE() (http.Handler, error) {
	if r.handler == nil {
		return nil, ErrNoHandler
	}
	return r.handler, nil
}

// ServiceName returns the service.name attribute value.
func (r *Recorder) ServiceName() string {
	return r.serviceName
}

// Shutdown flushes and stops the meter provider it owns. Custom providers
// are left to their owner.
func (r *Recorder) Shutdown(ctx context.Context) error {
	if !r.isShuttingDown.CompareAndSwap(false, true) {
		return nil
	}
	if r.customMeterProvider {
		return nil
	}

	mp, ok := r.meterProvider.(*sdkmetric.MeterProvider)
	if !ok {
		return nil
	}
	if err := mp.ForceFlush(ctx); err != nil {
		r.logger.Warn("metrics flush failed", "error", err)
	}
	if err := mp.Shutdown(ctx); err != nil {
		return fmt.Errorf("meter provider shutdown: %w", err)
	}
	return nil
}
