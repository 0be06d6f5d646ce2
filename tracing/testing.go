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
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// NewTestTracer creates a Tracer whose ended spans are kept in the returned
// recorder.
func NewTestTracer(tb testing.TB, opts ...Option) (*Tracer, *tracetest.SpanRecorder) {
	tb.Helper()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	tb.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
	})

	t, err := New(append(opts, WithTracerProvider(tp))...)
	if err != nil {
		tb.Fatalf("NewTestTracer: %v", err)
	}
	return t, sr
}
