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

/*
Package middleware defines the request pipeline used by the dispatcher.

A [Middleware] receives the request and the rest of the pipeline as a
[Handler]. It may delegate by calling next.Handle, answer on its own, or
fail with an error:

	auth := middleware.Func(func(req *message.Request, next middleware.Handler) (*message.Response, error) {
	    if req.Header("Authorization") == "" {
	        return message.Text("forbidden").WithStatus(http.StatusForbidden), nil
	    }
	    return next.Handle(req)
	})

A [Chain] runs its middleware in order and then the final handler. Chains
hold a cursor and are built fresh for every request; they must not be
shared between requests.

# Built-in middleware

Each middleware lives in its own sub-package:

  - realip: attaches the client IP as the "ipAddress" attribute
  - methodoverride: honors the "_method" field of POST forms
  - trailingslash: redirects "/path/" to "/path"
  - requestid: generates and propagates X-Request-ID
  - recovery: turns panics into errors or 500 responses
  - accesslog: structured access logging through log/slog
  - timeout: bounds the request context with a deadline
  - security: sets common security response headers
*/
package middleware
