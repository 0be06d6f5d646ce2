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
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"

	"fram.dev/container"
	"fram.dev/dispatch"
	framerrors "fram.dev/errors"
	"fram.dev/message"
	"fram.dev/middleware"
	"fram.dev/middleware/recovery"
	"fram.dev/render"
	"fram.dev/router"
)

var noopLogger = slog.New(slog.DiscardHandler)

// defaultViews backs the renderer when none is configured.
var defaultViews = render.Static{
	dispatch.DefaultNotFoundView: "<!DOCTYPE html><title>Not Found</title><h1>Not Found</h1>",
}

// App is an HTTP host for the dispatcher. Create one with [New].
type App struct {
	cfg        *config
	router     *router.Router
	registry   *dispatch.Registry
	services   container.Container
	renderer   render.Renderer
	dispatcher *dispatch.Dispatcher
	logger     *slog.Logger
	formatter  framerrors.Formatter
	hooks      hooks

	mu       sync.Mutex
	pipeline []middleware.Middleware

	freezeOnce sync.Once
	frozen     atomic.Bool
	draining   atomic.Bool
}

// Module bundles routes, handlers and services.
type Module interface {
	Register(a *App) error
}

// ModuleFunc adapts a function to [Module].
type ModuleFunc func(a *App) error

// Register calls f(a).
func (f ModuleFunc) Register(a *App) error { return f(a) }

// New creates an application. Unset collaborators get defaults: a fresh
// router, an empty registry and container, and a static renderer that only
// knows the not-found view.
func New(opts ...Option) (*App, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	a := &App{cfg: cfg, logger: cfg.logger}
	if a.logger == nil {
		a.logger = noopLogger
	}

	a.router = cfg.router
	if a.router == nil {
		a.router = router.MustNew(router.WithLogger(a.logger))
	}

	resolver := cfg.resolver
	if resolver == nil {
		a.registry = cfg.registry
		if a.registry == nil {
			a.registry = dispatch.NewRegistry()
		}
		resolver = a.registry
	}

	a.services = cfg.services
	if a.services == nil {
		a.services = container.New()
	}

	a.renderer = cfg.renderer
	if a.renderer == nil {
		a.renderer = defaultViews
	}
	if g, ok := a.renderer.(interface{ AddGlobal(string, any) }); ok {
		g.AddGlobal("router", a.router)
		g.AddGlobal("container", a.services)
	}

	a.formatter = cfg.formatter
	if a.formatter == nil {
		a.formatter = framerrors.NewRFC9457("")
	}

	var recorders []dispatch.Recorder
	if cfg.tracer != nil {
		recorders = append(recorders, cfg.tracer)
	}
	if cfg.metrics != nil {
		recorders = append(recorders, cfg.metrics)
	}

	d, err := dispatch.New(
		dispatch.WithRouter(a.router),
		dispatch.WithContainer(a.services),
		dispatch.WithRenderer(a.renderer),
		dispatch.WithResolver(resolver),
		dispatch.WithLogger(a.logger),
		dispatch.WithRecorder(dispatch.Recorders(recorders...)),
		dispatch.WithNotFoundView(cfg.notFoundView),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	a.dispatcher = d

	if cfg.recovery {
		a.pipeline = append(a.pipeline, recovery.New(recovery.WithLogger(a.logger)))
	}
	return a, nil
}

// MustNew is like [New] but panics on error.
func MustNew(opts ...Option) *App {
	a, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("app.MustNew: %v", err))
	}
	return a
}

func (c *config) validate() error {
	var errs []error
	if c.serviceName == "" {
		errs = append(errs, errors.New("service name cannot be empty"))
	}
	if c.registry != nil && c.resolver != nil {
		errs = append(errs, errors.New("registry and resolver are mutually exclusive"))
	}
	s := c.server
	if s.readTimeout <= 0 || s.writeTimeout <= 0 || s.idleTimeout <= 0 {
		errs = append(errs, errors.New("server timeouts must be positive"))
	}
	if s.readTimeout > s.writeTimeout {
		errs = append(errs, fmt.Errorf("read timeout %s exceeds write timeout %s", s.readTimeout, s.writeTimeout))
	}
	if s.shutdownTimeout <= 0 {
		errs = append(errs, errors.New("shutdown timeout must be positive"))
	}
	for name, fn := range c.health.readiness {
		if fn == nil {
			errs = append(errs, fmt.Errorf("readiness check %q is nil", name))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// Router returns the application router.
func (a *App) Router() *router.Router { return a.router }

// Registry returns the handler registry, or nil with [WithResolver].
func (a *App) Registry() *dispatch.Registry { return a.registry }

// Services returns the service container.
func (a *App) Services() container.Container { return a.services }

// Renderer returns the view renderer.
func (a *App) Renderer() render.Renderer { return a.renderer }

// Dispatcher returns the dispatcher.
func (a *App) Dispatcher() *dispatch.Dispatcher { return a.dispatcher }

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger { return a.logger }

// ServiceName returns the configured service name.
func (a *App) ServiceName() string { return a.cfg.serviceName }

// ServiceVersion returns the configured service version.
func (a *App) ServiceVersion() string { return a.cfg.serviceVersion }

// Pipe appends middleware to the global pipeline. Global middleware runs
// before route matching, so it may rewrite the method or path.
func (a *App) Pipe(mws ...middleware.Middleware) error {
	for i, mw := range mws {
		if mw == nil {
			return fmt.Errorf("%w: argument %d is nil", ErrInvalidMiddleware, i)
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.frozen.Load() {
		return ErrFrozen
	}
	a.pipeline = append(a.pipeline, mws...)
	return nil
}

// PipeID appends the middleware registered in the container under id.
// The service is fetched once, now.
func (a *App) PipeID(id string) error {
	mw, err := a.middlewareByID(id)
	if err != nil {
		return err
	}
	return a.Pipe(mw)
}

func (a *App) middlewareByID(id string) (middleware.Middleware, error) {
	svc, err := a.services.Get(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidMiddleware, id, err)
	}
	mw, ok := svc.(middleware.Middleware)
	if !ok || mw == nil {
		return nil, fmt.Errorf("%w: %s is %T", ErrInvalidMiddleware, id, svc)
	}
	return mw, nil
}

// AddModule registers each module with the application.
func (a *App) AddModule(mods ...Module) error {
	if a.frozen.Load() {
		return ErrFrozen
	}
	for _, m := range mods {
		if err := m.Register(a); err != nil {
			return fmt.Errorf("register module %T: %w", m, err)
		}
	}
	return nil
}

// Freeze makes routes and pipeline immutable. It runs on the first request
// if not called before.
func (a *App) Freeze() {
	a.freezeOnce.Do(func() {
		a.mu.Lock()
		a.frozen.Store(true)
		a.mu.Unlock()
		a.router.Freeze()
	})
}

// Handle runs req through the global pipeline and the dispatcher.
func (a *App) Handle(req *message.Request) (*message.Response, error) {
	a.Freeze()
	chain := middleware.NewChain(a.pipeline...)
	chain.SetFinal(middleware.HandlerFunc(a.dispatcher.Dispatch))
	return chain.Handle(req)
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req, err := message.FromHTTP(r, a.cfg.bindingOpts...)
	if err != nil {
		a.writeError(w, r, nil, err)
		return
	}

	resp, err := a.Handle(req)
	if err == nil && resp == nil {
		err = dispatch.ErrInvalidHandlerReturn
	}
	if err != nil {
		a.writeError(w, r, req, err)
		return
	}

	if err := resp.WriteTo(w, r.Method); err != nil {
		a.logger.DebugContext(r.Context(), "failed to write response", "error", err)
	}
}

func (a *App) writeError(w http.ResponseWriter, r *http.Request, req *message.Request, err error) {
	formatted := a.formatter.Format(req, err)

	level := slog.LevelDebug
	if formatted.Status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	a.logger.Log(r.Context(), level, "request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"status", formatted.Status,
		"error", err,
	)

	resp, mErr := formatted.Message()
	if mErr != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if wErr := resp.WriteTo(w, r.Method); wErr != nil {
		a.logger.DebugContext(r.Context(), "failed to write error response", "error", wErr)
	}
}
