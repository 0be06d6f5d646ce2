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

package middleware

import "fram.dev/message"

// Handler produces a response for a request.
type Handler interface {
	Handle(req *message.Request) (*message.Response, error)
}

// HandlerFunc adapts an ordinary function to the [Handler] interface.
type HandlerFunc func(req *message.Request) (*message.Response, error)

// Handle calls f(req).
func (f HandlerFunc) Handle(req *message.Request) (*message.Response, error) {
	return f(req)
}

// Middleware processes a request, optionally delegating to next.
type Middleware interface {
	Process(req *message.Request, next Handler) (*message.Response, error)
}

// Func adapts an ordinary function to the [Middleware] interface.
type Func func(req *message.Request, next Handler) (*message.Response, error)

// Process calls f(req, next).
func (f Func) Process(req *message.Request, next Handler) (*message.Response, error) {
	return f(req, next)
}
