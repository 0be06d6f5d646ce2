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

package trailingslash

import (
	"net/http"
	"strings"

	"fram.dev/message"
	"fram.dev/middleware"
)

// Policy defines how trailing slashes are handled.
type Policy int

const (
	// PolicyRemove redirects /users/ to /users.
	PolicyRemove Policy = iota

	// PolicyAdd redirects /users to /users/.
	PolicyAdd

	// PolicyStrict does nothing. Paths must match routes exactly.
	PolicyStrict
)

// Option configures the middleware.
type Option func(*config)

type config struct {
	policy Policy
	status int
}

func defaultConfig() *config {
	return &config{
		policy: PolicyRemove,
		status: http.StatusMovedPermanently,
	}
}

// WithPolicy sets the trailing slash policy. Default: PolicyRemove.
func WithPolicy(p Policy) Option {
	return func(c *config) { c.policy = p }
}

// WithRedirectCode sets the redirect status. Use 308 to keep the method and
// body on non-GET requests. Default: 301.
func WithRedirectCode(status int) Option {
	return func(c *config) {
		if status >= 300 && status < 400 {
			c.status = status
		}
	}
}

// New returns middleware enforcing the trailing slash policy.
func New(opts ...Option) middleware.Middleware {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return middleware.Func(func(req *message.Request, next middleware.Handler) (*message.Response, error) {
		path := req.Path()
		if path == "/" || path == "" {
			return next.Handle(req)
		}

		hasSlash := strings.HasSuffix(path, "/")
		switch cfg.policy {
		case PolicyRemove:
			if hasSlash {
				// TrimSuffix removes exactly one slash, so /a// becomes /a/.
				return redirect(req, strings.TrimSuffix(path, "/"), cfg.status), nil
			}
		case PolicyAdd:
			if !hasSlash {
				return redirect(req, path+"/", cfg.status), nil
			}
		case PolicyStrict:
		}
		return next.Handle(req)
	})
}

func redirect(req *message.Request, path string, status int) *message.Response {
	u := *req.URL()
	u.Path = path
	u.RawPath = ""
	// Only the path and query go into Location.
	u.Scheme, u.Host, u.User = "", "", nil
	return message.Redirect(u.RequestURI(), status)
}
