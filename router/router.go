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

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"

	"fram.dev/message"
	"fram.dev/middleware"
)

const (
	defaultBloomFilterSize    = 1000
	defaultBloomHashFunctions = 3
)

// noopLogger is a singleton no-op logger used when no logger is configured.
var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// NoopLogger returns the singleton no-op logger.
func NoopLogger() *slog.Logger {
	return noopLogger
}

// Option defines functional options for router configuration.
type Option func(*Router)

// Router holds the route table and the group middleware registry.
//
// Registration methods are safe for concurrent use before Freeze. After
// Freeze the router is read-only and matching takes no locks.
type Router struct {
	matcher     Matcher
	logger      *slog.Logger
	diagnostics DiagnosticHandler

	bloomFilterSize    uint64
	bloomHashFunctions int

	mu        sync.RWMutex
	routes    []*RouteInfo
	names     map[string]*RouteInfo
	groups    map[string][]middleware.Middleware
	flattened map[string][]middleware.Middleware

	frozen     atomic.Bool
	freezeOnce sync.Once
}

// New creates a router.
//
// Example:
//
//	r, err := router.New(
//	    router.WithLogger(logger),
//	    router.WithBloomFilterSize(2000),
//	)
func New(opts ...Option) (*Router, error) {
	r := &Router{
		logger:             noopLogger,
		bloomFilterSize:    defaultBloomFilterSize,
		bloomHashFunctions: defaultBloomHashFunctions,
		names:              make(map[string]*RouteInfo),
		groups:             make(map[string][]middleware.Middleware),
	}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.validate(); err != nil {
		return nil, fmt.Errorf("router configuration validation failed: %w", err)
	}
	if r.matcher == nil {
		r.matcher = NewCompilerMatcher(r.bloomFilterSize, r.bloomHashFunctions)
	}
	return r, nil
}

// MustNew creates a router and panics if the configuration is invalid.
func MustNew(opts ...Option) *Router {
	r, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("router.MustNew: %v", err))
	}
	return r
}

func (r *Router) validate() error {
	if r.bloomFilterSize == 0 {
		return ErrBloomFilterSizeZero
	}
	if r.bloomHashFunctions <= 0 {
		return fmt.Errorf("%w: got %d", ErrBloomHashFunctionsInvalid, r.bloomHashFunctions)
	}
	return nil
}

// WithLogger sets the logger used for registration and fallback events.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMatcher replaces the default pattern matcher.
func WithMatcher(m Matcher) Option {
	return func(r *Router) {
		r.matcher = m
	}
}

// WithBloomFilterSize sets the bit size of the static route bloom filter.
func WithBloomFilterSize(size uint64) Option {
	return func(r *Router) {
		r.bloomFilterSize = size
	}
}

// WithBloomFilterHashFunctions sets the number of bloom filter hash functions.
func WithBloomFilterHashFunctions(n int) Option {
	return func(r *Router) {
		r.bloomHashFunctions = n
	}
}

// WithDiagnostics sets a handler for registration diagnostics.
func WithDiagnostics(handler DiagnosticHandler) Option {
	return func(r *Router) {
		r.diagnostics = handler
	}
}

// Handle registers a route.
//
// Registering an existing name replaces it for URL generation; the earlier
// route stays matchable. Registering the same method and pattern twice is an error.
func (r *Router) Handle(method, name, handler, pattern string) error {
	if r.frozen.Load() {
		return fmt.Errorf("%w: cannot register %q", ErrRouterFrozen, name)
	}
	if name == "" {
		return fmt.Errorf("%w: %s %s", ErrEmptyRouteName, method, pattern)
	}
	if handler == "" {
		return fmt.Errorf("%w: route %q", ErrEmptyHandler, name)
	}

	info := &RouteInfo{
		Method:  method,
		Name:    name,
		Handler: handler,
		Pattern: pattern,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.matcher.Add(info); err != nil {
		return fmt.Errorf("register route %q: %w", name, err)
	}

	if prev, ok := r.names[name]; ok {
		r.emit(DiagNameOverridden, "route name registered twice; URL generation uses the latest", map[string]any{
			"name":             name,
			"previous_pattern": prev.Pattern,
			"pattern":          pattern,
		})
	}
	r.names[name] = info
	r.routes = append(r.routes, info)

	r.logger.Debug("route registered",
		"method", method,
		"name", name,
		"handler", handler,
		"pattern", pattern,
	)
	return nil
}

func (r *Router) mustHandle(method, name, handler, pattern string) {
	if err := r.Handle(method, name, handler, pattern); err != nil {
		panic(err)
	}
}

// GET registers a GET route. It panics if the route cannot be registered.
func (r *Router) GET(name, handler, pattern string) {
	r.mustHandle(http.MethodGet, name, handler, pattern)
}

// POST registers a POST route. It panics if the route cannot be registered.
func (r *Router) POST(name, handler, pattern string) {
	r.mustHandle(http.MethodPost, name, handler, pattern)
}

// PUT registers a PUT route. It panics if the route cannot be registered.
func (r *Router) PUT(name, handler, pattern string) {
	r.mustHandle(http.MethodPut, name, handler, pattern)
}

// PATCH registers a PATCH route. It panics if the route cannot be registered.
func (r *Router) PATCH(name, handler, pattern string) {
	r.mustHandle(http.MethodPatch, name, handler, pattern)
}

// DELETE registers a DELETE route. It panics if the route cannot be registered.
func (r *Router) DELETE(name, handler, pattern string) {
	r.mustHandle(http.MethodDelete, name, handler, pattern)
}

// Match resolves req to a route. HEAD requests fall back to GET routes.
// When nothing matches the failure route is returned.
func (r *Router) Match(req *message.Request) Route {
	return r.MatchPath(req.Method(), req.Path())
}

// MatchPath is Match for a bare method and path.
func (r *Router) MatchPath(method, path string) Route {
	if !r.frozen.Load() {
		r.mu.RLock()
		defer r.mu.RUnlock()
	}

	info, params := r.matcher.Match(method, path)
	if info == nil && method == http.MethodHead {
		info, params = r.matcher.Match(http.MethodGet, path)
	}
	if info == nil {
		return NotFound()
	}
	return info.route(params)
}

// Routes returns the registered routes in registration order.
func (r *Router) Routes() []RouteInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]RouteInfo, len(r.routes))
	for i, info := range r.routes {
		out[i] = *info
	}
	return out
}

// RouteByName returns the route URL generation uses for name.
func (r *Router) RouteByName(name string) (RouteInfo, bool) {
	info := r.named(name)
	if info == nil {
		return RouteInfo{}, false
	}
	return *info, true
}

func (r *Router) named(name string) *RouteInfo {
	if !r.frozen.Load() {
		r.mu.RLock()
		defer r.mu.RUnlock()
	}
	return r.names[name]
}

// Freeze ends registration: the matcher is frozen and the group chain of
// every registered route is precomputed. Calling Freeze again is a no-op.
func (r *Router) Freeze() {
	r.freezeOnce.Do(func() {
		r.mu.Lock()
		defer r.mu.Unlock()

		r.matcher.Freeze()
		r.flattened = make(map[string][]middleware.Middleware, len(r.names))
		for name := range r.names {
			r.flattened[name] = r.collectGroupMiddleware(name)
		}
		r.frozen.Store(true)

		r.logger.Debug("router frozen",
			"routes", len(r.routes),
			"groups", len(r.groups),
		)
	})
}

// IsFrozen reports whether Freeze has been called.
func (r *Router) IsFrozen() bool {
	return r.frozen.Load()
}
