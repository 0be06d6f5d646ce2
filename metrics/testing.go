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
	"testing"

	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// TestRecorder is a Recorder backed by a manual reader.
type TestRecorder struct {
	*Recorder
	Reader *sdkmetric.ManualReader
}

// NewTestRecorder creates a Recorder whose metrics can be collected
// synchronously with Collect.
func NewTestRecorder(tb testing.TB, opts ...Option) *TestRecorder {
	tb.Helper()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	tb.Cleanup(func() {
		_ = mp.Shutdown(context.Background())
	})

	rec, err := New(append([]Option{WithServiceName("test")}, append(opts, WithMeterProvider(mp))...)...)
	require.NoError(tb, err)
	return &TestRecorder{Recorder: rec, Reader: reader}
}

// Collect returns the current metrics keyed by instrument name.
func (t *TestRecorder) Collect(tb testing.TB) map[string]metricdata.Aggregation {
	tb.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(tb, t.Reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Aggregation)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

// Sum returns the total of an int64 sum instrument, or 0.
func (t *TestRecorder) Sum(tb testing.TB, name string) int64 {
	tb.Helper()

	sum, ok := t.Collect(tb)[name].(metricdata.Sum[int64])
	if !ok {
		return 0
	}
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}
