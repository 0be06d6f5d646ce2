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

package security

import (
	"strconv"
	"strings"

	"fram.dev/message"
	"fram.dev/middleware"
)

// New returns middleware setting security headers on successful responses.
func New(opts ...Option) middleware.Middleware {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	headers := cfg.headers()
	hsts := cfg.hsts()

	return middleware.Func(func(req *message.Request, next middleware.Handler) (*message.Response, error) {
		resp, err := next.Handle(req)
		if err != nil || resp == nil {
			return resp, err
		}

		for _, h := range headers {
			if resp.Header(h[0]) == "" {
				resp = resp.WithHeader(h[0], h[1])
			}
		}
		if hsts != "" && isHTTPS(req) && resp.Header("Strict-Transport-Security") == "" {
			resp = resp.WithHeader("Strict-Transport-Security", hsts)
		}
		return resp, nil
	})
}

func (cfg *config) headers() [][2]string {
	var out [][2]string
	add := func(name, value string) {
		if value != "" {
			out = append(out, [2]string{name, value})
		}
	}
	add("X-Frame-Options", cfg.frameOptions)
	if cfg.contentTypeNosniff {
		add("X-Content-Type-Options", "nosniff")
	}
	add("Content-Security-Policy", cfg.contentSecurityPolicy)
	add("Referrer-Policy", cfg.referrerPolicy)
	add("Permissions-Policy", cfg.permissionsPolicy)
	for name, value := range cfg.customHeaders {
		add(name, value)
	}
	return out
}

func (cfg *config) hsts() string {
	if cfg.hstsMaxAge <= 0 {
		return ""
	}
	v := "max-age=" + strconv.Itoa(cfg.hstsMaxAge)
	if cfg.hstsIncludeSubdomains {
		v += "; includeSubDomains"
	}
	if cfg.hstsPreload {
		v += "; preload"
	}
	return v
}

func isHTTPS(req *message.Request) bool {
	if raw := req.HTTPRequest(); raw != nil && raw.TLS != nil {
		return true
	}
	if req.URL().Scheme == "https" {
		return true
	}
	return strings.EqualFold(req.Header("X-Forwarded-Proto"), "https")
}
