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

// Package recovery turns panics in downstream middleware and handlers into
// errors.
//
// By default the panic is logged with a truncated stack and returned as a
// *PanicError, which matches ErrPanic. The application error formatter then
// answers 500 without exposing the panic value. WithHandler replaces that
// with a custom response:
//
//	app.Pipe(recovery.New(
//	    recovery.WithLogger(logger),
//	    recovery.WithHandler(func(req *message.Request, v any) (*message.Response, error) {
//	        return message.Text("try again later").WithStatus(http.StatusServiceUnavailable), nil
//	    }),
//	))
//
// When the request context carries a recording span, it is marked as failed.
package recovery
