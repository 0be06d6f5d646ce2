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
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"fram.dev/message"
	"fram.dev/router"
	"fram.dev/telemetry/semconv"
)

// Outcome values of the outcome attribute.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

const maxMetricNameLength = 255

var metricNameRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_.-]*$`)

// reserved for the built-in instruments
var reservedPrefixes = []string{"__", "fram."}

type dispatchState struct {
	start time.Time
}

// OnDispatchStart starts timing a dispatch.
func (r *Recorder) OnDispatchStart(ctx context.Context, _ *message.Request) (context.Context, any) {
	if r.isShuttingDown.Load() {
		return ctx, nil
	}
	r.active.Add(ctx, 1, metric.WithAttributes(r.serviceAttrs...))
	return ctx, &dispatchState{start: time.Now()}
}

// OnDispatchEnd records the dispatch outcome.
func (r *Recorder) OnDispatchEnd(ctx context.Context, state any, route router.Route, resp *message.Response, err error) {
	st, ok := state.(*dispatchState)
	if !ok {
		return
	}
	r.active.Add(ctx, -1, metric.WithAttributes(r.serviceAttrs...))

	status := 0
	if resp != nil {
		status = resp.StatusCode()
	}

	outcome := OutcomeOK
	switch {
	case err != nil:
		outcome = OutcomeError
	case route.IsFailure():
		outcome = OutcomeNotFound
	}

	attrs := make([]attribute.KeyValue, 0, len(r.serviceAttrs)+3)
	attrs = append(attrs, r.serviceAttrs...)
	attrs = append(attrs,
		attribute.String(semconv.MetricRoute, route.Name()),
		attribute.String(semconv.MetricStatusClass, statusClass(status)),
		attribute.String(semconv.MetricOutcome, outcome),
	)
	set := metric.WithAttributes(attrs...)

	r.requests.Add(ctx, 1, set)
	r.duration.Record(ctx, time.Since(st.start).Seconds(), set)
	if route.IsFailure() {
		r.misses.Add(ctx, 1, metric.WithAttributes(r.serviceAttrs...))
	}
}

func statusClass(status int) string {
	switch status / 100 {
	case 1:
		return "1xx"
	case 2:
		return "2xx"
	case 3:
		return "3xx"
	case 4:
		return "4xx"
	case 5:
		return "5xx"
	default:
		return "unknown"
	}
}

// IncrementCounter adds one to a custom counter.
func (r *Recorder) IncrementCounter(ctx context.Context, name string, attrs ...attribute.KeyValue) error {
	return r.AddCounter(ctx, name, 1, attrs...)
}

// AddCounter adds value to a custom counter, creating it on first use.
func (r *Recorder) AddCounter(ctx context.Context, name string, value int64, attrs ...attribute.KeyValue) error {
	counter, err := getOrCreate(r, r.customCounters, name, func() (metric.Int64Counter, error) {
		return r.meter.Int64Counter(name)
	})
	if err != nil {
		return err
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
	return nil
}

// RecordHistogram records value in a custom histogram, creating it on first use.
func (r *Recorder) RecordHistogram(ctx context.Context, name string, value float64, attrs ...attribute.KeyValue) error {
	hist, err := getOrCreate(r, r.customHistograms, name, func() (metric.Float64Histogram, error) {
		return r.meter.Float64Histogram(name)
	})
	if err != nil {
		return err
	}
	hist.Record(ctx, value, metric.WithAttributes(attrs...))
	return nil
}

// CustomMetricCount returns the number of custom instruments created.
func (r *Recorder) CustomMetricCount() int {
	r.customMu.RLock()
	defer r.customMu.RUnlock()
	return r.customMetricCount
}

func getOrCreate[T any](r *Recorder, instruments map[string]T, name string, create func() (T, error)) (T, error) {
	r.customMu.RLock()
	inst, exists := instruments[name]
	r.customMu.RUnlock()
	if exists {
		return inst, nil
	}

	var zero T
	if err := validateMetricName(name); err != nil {
		return zero, err
	}

	r.customMu.Lock()
	defer r.customMu.Unlock()

	if inst, exists = instruments[name]; exists {
		return inst, nil
	}
	if r.customMetricCount >= r.maxCustomMetrics {
		return zero, fmt.Errorf("%w: cannot create %q (limit %d)", ErrMetricsLimit, name, r.maxCustomMetrics)
	}

	inst, err := create()
	if err != nil {
		return zero, err
	}
	instruments[name] = inst
	r.customMetricCount++
	return inst, nil
}

func validateMetricName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty", ErrInvalidMetricName)
	}
	if len(name) > maxMetricNameLength {
		return fmt.Errorf("%w: %d characters (max %d)", ErrInvalidMetricName, len(name), maxMetricNameLength)
	}
	if !metricNameRegex.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidMetricName, name)
	}
	for _, prefix := range reservedPrefixes {
		if strings.HasPrefix(name, prefix) {
			return fmt.Errorf("%w: %q uses reserved prefix %q", ErrInvalidMetricName, name, prefix)
		}
	}
	return nil
}
