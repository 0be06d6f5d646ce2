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

package semconv

// Logger-level fields.
const (
	LogService     = "service"
	LogVersion     = "version"
	LogEnvironment = "env"
)

// Correlation fields added from the request context.
const (
	LogTraceID   = "trace_id"
	LogSpanID    = "span_id"
	LogRequestID = "request_id"
)

// Access log fields.
const (
	LogMethod         = "method"
	LogPath           = "path"
	LogStatus         = "status"
	LogDurationMS     = "duration_ms"
	LogBytes          = "bytes"
	LogUserAgent      = "user_agent"
	LogClientIP       = "client_ip"
	LogOriginalMethod = "original_method"
	LogRoute          = "route"
	LogPattern        = "pattern"
	LogSlow           = "slow"
	LogError          = "error"
)
