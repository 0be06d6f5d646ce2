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

// Package logging builds the structured slog loggers used across fram.
//
//	logger := logging.MustNew(
//	    logging.WithConsoleHandler(),
//	    logging.WithServiceName("fram"),
//	    logging.WithDebugLevel(),
//	)
//	slogger := logger.Logger()
//
// Three handler types are available: JSON (default), text and a colored
// console handler for development. Every handler is wrapped so that log
// calls made with a context (InfoContext and friends) carry the trace_id
// and span_id of the active OpenTelemetry span and the request_id stored
// with [WithRequestID].
//
// Values under the keys password, token, secret, api_key and authorization
// are redacted.
package logging
