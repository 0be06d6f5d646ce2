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

// Package accesslog writes one structured log record per request.
//
//	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
//	application.Pipe(accesslog.New(
//	    accesslog.WithLogger(logger),
//	    accesslog.WithExcludePaths("/healthz"),
//	    accesslog.WithSlowThreshold(500*time.Millisecond),
//	))
//
// Each record carries method, path, status, duration_ms and bytes. The
// client_ip, request_id and original_method fields are added when realip,
// requestid or methodoverride ran earlier in the pipeline. When the
// middleware is attached to a route group it also logs the matched route
// name and pattern.
//
// Server errors log at Error, client errors and slow requests at Warn and
// everything else at Info. Errors and slow requests are never sampled out.
package accesslog
