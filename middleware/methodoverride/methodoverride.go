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

package methodoverride

import (
	"net/http"
	"strings"

	"github.com/spf13/cast"

	"fram.dev/message"
	"fram.dev/middleware"
)

// Option configures the middleware.
type Option func(*config)

type config struct {
	field      string
	header     string
	queryParam string
	allow      []string
	onlyOn     []string
}

func defaultConfig() *config {
	return &config{
		field:      "_method",
		header:     "X-HTTP-Method-Override",
		queryParam: "_method",
		allow:      []string{http.MethodPut, http.MethodPatch, http.MethodDelete},
		onlyOn:     []string{http.MethodPost},
	}
}

// WithField sets the body field name. Empty disables it.
func WithField(name string) Option {
	return func(cfg *config) { cfg.field = name }
}

// WithHeader sets the override header. Empty disables it.
func WithHeader(header string) Option {
	return func(cfg *config) { cfg.header = header }
}

// WithQueryParam sets the query parameter. Empty disables it.
func WithQueryParam(param string) Option {
	return func(cfg *config) { cfg.queryParam = param }
}

// WithAllow sets the methods a request may be overridden to.
func WithAllow(methods ...string) Option {
	return func(cfg *config) { cfg.allow = methods }
}

// WithOnlyOn sets the methods that may be overridden.
func WithOnlyOn(methods ...string) Option {
	return func(cfg *config) { cfg.onlyOn = methods }
}

type methodOverride struct {
	cfg    *config
	allow  map[string]bool
	onlyOn map[string]bool
}

// New returns the method override middleware.
func New(opts ...Option) middleware.Middleware {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	m := &methodOverride{
		cfg:    cfg,
		allow:  make(map[string]bool, len(cfg.allow)),
		onlyOn: make(map[string]bool, len(cfg.onlyOn)),
	}
	for _, method := range cfg.allow {
		m.allow[strings.ToUpper(method)] = true
	}
	for _, method := range cfg.onlyOn {
		m.onlyOn[strings.ToUpper(method)] = true
	}
	return m
}

// Process implements middleware.Middleware.
func (m *methodOverride) Process(req *message.Request, next middleware.Handler) (*message.Response, error) {
	original := req.Method()
	if !m.onlyOn[original] {
		return next.Handle(req)
	}

	override := strings.ToUpper(strings.TrimSpace(m.lookup(req)))
	if override == "" || !m.allow[override] {
		return next.Handle(req)
	}

	req = req.WithMethod(override).WithAttribute(middleware.AttrOriginalMethod, original)
	return next.Handle(req)
}

func (m *methodOverride) lookup(req *message.Request) string {
	if m.cfg.field != "" {
		if v, ok := req.ParsedBody()[m.cfg.field]; ok {
			if s := cast.ToString(v); s != "" {
				return s
			}
		}
	}
	if m.cfg.header != "" {
		if v := req.Header(m.cfg.header); v != "" {
			return v
		}
	}
	if m.cfg.queryParam != "" {
		return req.Query().Get(m.cfg.queryParam)
	}
	return ""
}

// OriginalMethod returns the method before any override.
func OriginalMethod(req *message.Request) string {
	if orig, ok := req.AttributeOr(middleware.AttrOriginalMethod, "").(string); ok && orig != "" {
		return orig
	}
	return req.Method()
}
