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

// Package semconv names the attribute keys shared by fram's logs, spans
// and metrics.
//
// Span and metric keys follow OpenTelemetry semantic conventions where one
// exists; router-specific keys live under the "fram." namespace. Log keys
// are short snake_case names meant for humans reading JSON or console
// output.
//
//	span.SetAttributes(
//	    attribute.String(semconv.HTTPRoute, route.Pattern()),
//	    attribute.String(semconv.RouteName, route.Name()),
//	)
//
//	logger.Info("access", semconv.LogMethod, req.Method(), semconv.LogStatus, 200)
package semconv
