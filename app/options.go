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

package app

import (
	"context"
	"log/slog"
	"time"

	"fram.dev/binding"
	"fram.dev/container"
	"fram.dev/dispatch"
	framerrors "fram.dev/errors"
	"fram.dev/metrics"
	"fram.dev/render"
	"fram.dev/router"
	"fram.dev/tracing"
)

// Default configuration values.
const (
	DefaultServiceName     = "fram"
	DefaultVersion         = "dev"
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultHealthPath      = "/healthz"
	DefaultReadyPath       = "/readyz"
	DefaultMetricsPath     = "/metrics"
)

// CheckFunc reports whether a dependency is available.
type CheckFunc func(ctx context.Context) error

// Option configures an App.
type Option func(*config)

type config struct {
	serviceName    string
	serviceVersion string

	router    *router.Router
	registry  *dispatch.Registry
	resolver  dispatch.Resolver
	services  container.Container
	renderer  render.Renderer
	logger    *slog.Logger
	formatter framerrors.Formatter
	metrics   *metrics.Recorder
	tracer    *tracing.Tracer

	notFoundView string
	bindingOpts  []binding.Option
	recovery     bool

	server serverConfig
	health healthConfig
}

type serverConfig struct {
	readTimeout     time.Duration
	writeTimeout    time.Duration
	idleTimeout     time.Duration
	shutdownTimeout time.Duration
}

type healthConfig struct {
	livePath    string
	readyPath   string
	metricsPath string
	timeout     time.Duration
	readiness   map[string]CheckFunc
}

func defaultConfig() *config {
	return &config{
		serviceName:    DefaultServiceName,
		serviceVersion: DefaultVersion,
		notFoundView:   dispatch.DefaultNotFoundView,
		recovery:       true,
		server: serverConfig{
			readTimeout:     DefaultReadTimeout,
			writeTimeout:    DefaultWriteTimeout,
			idleTimeout:     DefaultIdleTimeout,
			shutdownTimeout: DefaultShutdownTimeout,
		},
		health: healthConfig{
			livePath:    DefaultHealthPath,
			readyPath:   DefaultReadyPath,
			metricsPath: DefaultMetricsPath,
			timeout:     time.Second,
			readiness:   make(map[string]CheckFunc),
		},
	}
}

// WithServiceName sets the service name used in logs and problem responses.
func WithServiceName(name string) Option {
	return func(c *config) { c.serviceName = name }
}

// WithServiceVersion sets the service version.
func WithServiceVersion(version string) Option {
	return func(c *config) { c.serviceVersion = version }
}

// WithRouter uses r instead of a fresh router.
func WithRouter(r *router.Router) Option {
	return func(c *config) { c.router = r }
}

// WithRegistry uses reg as the handler registry.
func WithRegistry(reg *dispatch.Registry) Option {
	return func(c *config) { c.registry = reg }
}

// WithResolver replaces the registry with a custom resolver. [App.Registry]
// then returns nil.
func WithResolver(r dispatch.Resolver) Option {
	return func(c *config) { c.resolver = r }
}

// WithContainer sets the service container.
func WithContainer(services container.Container) Option {
	return func(c *config) { c.services = services }
}

// WithRenderer sets the view renderer.
func WithRenderer(r render.Renderer) Option {
	return func(c *config) { c.renderer = r }
}

// WithLogger sets the application logger. Default: discard.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithErrorFormatter sets how fatal errors are rendered.
// Default: RFC 9457 problem details.
func WithErrorFormatter(f framerrors.Formatter) Option {
	return func(c *config) { c.formatter = f }
}

// WithMetrics records dispatch metrics and serves them from [App.Handler].
func WithMetrics(r *metrics.Recorder) Option {
	return func(c *config) { c.metrics = r }
}

// WithTracer opens a span per dispatch.
func WithTracer(t *tracing.Tracer) Option {
	return func(c *config) { c.tracer = t }
}

// WithNotFoundView sets the view rendered for unmatched routes.
func WithNotFoundView(view string) Option {
	return func(c *config) { c.notFoundView = view }
}

// WithBindingOptions configures request body decoding.
func WithBindingOptions(opts ...binding.Option) Option {
	return func(c *config) { c.bindingOpts = append(c.bindingOpts, opts...) }
}

// WithoutRecovery removes the recovery middleware piped by default.
func WithoutRecovery() Option {
	return func(c *config) { c.recovery = false }
}

// WithServerTimeouts sets the HTTP server read, write and idle timeouts.
func WithServerTimeouts(read, write, idle time.Duration) Option {
	return func(c *config) {
		c.server.readTimeout = read
		c.server.writeTimeout = write
		c.server.idleTimeout = idle
	}
}

// WithShutdownTimeout bounds graceful shutdown.
func WithShutdownTimeout(d time.Duration) Option {
	return func(c *config) { c.server.shutdownTimeout = d }
}

// WithHealthPaths sets the liveness and readiness probe paths. An empty
// path disables that probe.
func WithHealthPaths(live, ready string) Option {
	return func(c *config) {
		c.health.livePath = live
		c.health.readyPath = ready
	}
}

// WithMetricsPath sets where [App.Handler] serves metrics. Empty disables it.
func WithMetricsPath(path string) Option {
	return func(c *config) { c.health.metricsPath = path }
}

// WithReadinessCheck adds a named readiness check.
//
//	app.WithReadinessCheck("db", func(ctx context.Context) error {
//	    return db.PingContext(ctx)
//	})
func WithReadinessCheck(name string, fn CheckFunc) Option {
	return func(c *config) { c.health.readiness[name] = fn }
}

// WithCheckTimeout bounds each readiness check. Default: 1s.
func WithCheckTimeout(d time.Duration) Option {
	return func(c *config) { c.health.timeout = d }
}
