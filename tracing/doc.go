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

// Package tracing creates an OpenTelemetry span per dispatch.
//
// A [Tracer] implements the dispatcher's recorder hook. The span is started
// before routing, with the W3C trace context extracted from the request
// headers, and renamed after the matched route once the handler returns:
//
//	t := tracing.MustNew(tracing.WithServiceName("blog"), tracing.WithStdout())
//	defer t.Shutdown(context.Background())
//	d := dispatch.MustNew(..., dispatch.WithRecorder(t))
//
// The span context travels with the request, so handlers and middleware can
// add events with [AddEvent] and loggers built with fram.dev/logging pick up
// trace_id and span_id.
package tracing
