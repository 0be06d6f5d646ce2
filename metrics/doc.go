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

// Package metrics records dispatch metrics with OpenTelemetry.
//
// A [Recorder] implements the dispatcher's recorder hook. By default it
// exports to a private Prometheus registry exposed through [Recorder.Handler]:
//
//	rec := metrics.MustNew(metrics.WithServiceName("blog"))
//	d := dispatch.MustNew(..., dispatch.WithRecorder(rec))
//	mux.Handle("/metrics", rec.Handler())
//
// Instruments:
//
//	fram.dispatch.requests   counter, attributes route, status_class, outcome
//	fram.dispatch.duration   histogram in seconds, same attributes
//	fram.dispatch.active     up-down counter of in-flight dispatches
//	fram.route.misses        counter of requests no route matched
//
// Custom counters and histograms are created on first use with
// [Recorder.IncrementCounter] and [Recorder.RecordHistogram].
package metrics
