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

package router

// DiagnosticEvent is an informational event raised during route registration.
type DiagnosticEvent struct {
	Kind    DiagnosticKind
	Message string
	Fields  map[string]any
}

// DiagnosticKind categorizes diagnostic events.
type DiagnosticKind string

const (
	// DiagNameOverridden is raised when a route name is registered again.
	DiagNameOverridden DiagnosticKind = "route_name_overridden"
)

// DiagnosticHandler receives diagnostic events from the router.
//
// Example:
//
//	handler := router.DiagnosticHandlerFunc(func(e router.DiagnosticEvent) {
//	    slog.Warn(e.Message, "kind", e.Kind, "fields", e.Fields)
//	})
//	r := router.MustNew(router.WithDiagnostics(handler))
type DiagnosticHandler interface {
	OnDiagnostic(event DiagnosticEvent)
}

// DiagnosticHandlerFunc adapts a function to [DiagnosticHandler].
type DiagnosticHandlerFunc func(DiagnosticEvent)

// OnDiagnostic calls f(event).
func (f DiagnosticHandlerFunc) OnDiagnostic(event DiagnosticEvent) {
	f(event)
}

func (r *Router) emit(kind DiagnosticKind, message string, fields map[string]any) {
	r.logger.Warn(message, "kind", string(kind), "fields", fields)
	if r.diagnostics != nil {
		r.diagnostics.OnDiagnostic(DiagnosticEvent{
			Kind:    kind,
			Message: message,
			Fields:  fields,
		})
	}
}
