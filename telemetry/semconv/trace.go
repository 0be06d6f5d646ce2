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

// Resource attributes, set once per process.
const (
	ServiceName       = "service.name"
	ServiceVersion    = "service.version"
	DeploymentEnviron = "deployment.environment"
)

// HTTP span attributes.
const (
	HTTPRequestMethod      = "http.request.method"
	HTTPRoute              = "http.route"
	HTTPResponseStatusCode = "http.response.status_code"
	URLPath                = "url.path"
	URLQuery               = "url.query"

	// HTTPRequestHeaderPrefix is followed by the lowercased header name.
	HTTPRequestHeaderPrefix = "http.request.header."
)

// Exception event attributes recorded for recovered panics.
const (
	ExceptionEscaped = "exception.escaped"
	ExceptionType    = "exception.type"
	ExceptionMessage = "exception.message"
)

// Router attributes.
const (
	RouteName    = "fram.route.name"
	RouteHandler = "fram.route.handler"
	RouteMiss    = "fram.route.miss"
)

// Metric labels. Prometheus forbids dots in label names.
const (
	MetricRoute       = "route"
	MetricStatusClass = "status_class"
	MetricOutcome     = "outcome"
)
