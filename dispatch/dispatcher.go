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

package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"fram.dev/container"
	"fram.dev/message"
	"fram.dev/middleware"
	"fram.dev/render"
	"fram.dev/router"
)

// DefaultNotFoundView is the view rendered for unmatched routes.
const DefaultNotFoundView = "errors/404"

var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Router is the part of *router.Router the dispatcher needs.
type Router interface {
	Match(req *message.Request) router.Route
	MiddlewareChain(routeName string) *middleware.Chain
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// Dispatcher matches requests and calls their handlers. It keeps no
// per-request state and is safe for concurrent use once built.
type Dispatcher struct {
	router       Router
	container    container.Container
	renderer     render.Renderer
	resolver     Resolver
	logger       *slog.Logger
	recorder     Recorder
	notFoundView string
}

var _ middleware.Handler = (*Dispatcher)(nil)

// New creates a dispatcher. Router, container, renderer and resolver are
// required.
//
// Example:
//
//	d, err := dispatch.New(
//	    dispatch.WithRouter(r),
//	    dispatch.WithContainer(services),
//	    dispatch.WithRenderer(views),
//	    dispatch.WithResolver(registry),
//	)
func New(opts ...Option) (*Dispatcher, error) {
	d := &Dispatcher{
		logger:       noopLogger,
		recorder:     noopRecorder{},
		notFoundView: DefaultNotFoundView,
	}
	for _, opt := range opts {
		opt(d)
	}
	if err := d.validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// MustNew is like New but panics on error.
func MustNew(opts ...Option) *Dispatcher {
	d, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("dispatch.MustNew: %v", err))
	}
	return d
}

func (d *Dispatcher) validate() error {
	var errs []error
	if d.router == nil {
		errs = append(errs, fmt.Errorf("%w: router", ErrMissingDependency))
	}
	if d.container == nil {
		errs = append(errs, fmt.Errorf("%w: container", ErrMissingDependency))
	}
	if d.renderer == nil {
		errs = append(errs, fmt.Errorf("%w: renderer", ErrMissingDependency))
	}
	if d.resolver == nil {
		errs = append(errs, fmt.Errorf("%w: resolver", ErrMissingDependency))
	}
	return errors.Join(errs...)
}

// WithRouter sets the router used to match requests.
func WithRouter(r Router) Option {
	return func(d *Dispatcher) {
		d.router = r
	}
}

// WithContainer sets the container handlers are fetched from.
func WithContainer(c container.Container) Option {
	return func(d *Dispatcher) {
		d.container = c
	}
}

// WithRenderer sets the renderer used for the not-found page.
func WithRenderer(r render.Renderer) Option {
	return func(d *Dispatcher) {
		d.renderer = r
	}
}

// WithResolver sets the handler method resolver, usually a *Registry.
func WithResolver(r Resolver) Option {
	return func(d *Dispatcher) {
		d.resolver = r
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithRecorder sets the dispatch recorder. Use Recorders to combine several.
func WithRecorder(r Recorder) Option {
	return func(d *Dispatcher) {
		if r != nil {
			d.recorder = r
		}
	}
}

// WithNotFoundView sets the view rendered for unmatched routes.
func WithNotFoundView(view string) Option {
	return func(d *Dispatcher) {
		d.notFoundView = view
	}
}

// Dispatch matches req and runs the route's group middleware with the
// dispatcher as final handler. An unmatched route yields a 404 response
// rendered from the not-found view.
func (d *Dispatcher) Dispatch(req *message.Request) (*message.Response, error) {
	ctx, state := d.recorder.OnDispatchStart(req.Context(), req)
	req = req.WithContext(ctx)

	route := d.router.Match(req)
	resp, err := d.dispatch(req, route)

	if state != nil {
		d.recorder.OnDispatchEnd(req.Context(), state, route, resp, err)
	}
	return resp, err
}

func (d *Dispatcher) dispatch(req *message.Request, route router.Route) (*message.Response, error) {
	if route.IsFailure() {
		d.logger.Debug("no route matched", "method", req.Method(), "path", req.Path())
		return d.notFound(), nil
	}

	req = req.WithAttributes(route.Params())
	req = req.WithContext(WithRoute(req.Context(), route))

	chain := d.router.MiddlewareChain(route.Name())
	chain.SetFinal(d)
	return chain.Handle(req)
}

func (d *Dispatcher) notFound() *message.Response {
	body, err := d.renderer.Render(d.notFoundView, nil)
	if err != nil {
		d.logger.Warn("failed to render not-found view",
			"view", d.notFoundView,
			"error", err,
		)
		body = http.StatusText(http.StatusNotFound)
	}
	resp := message.New(http.StatusNotFound, []byte(body))
	return resp.WithHeader("Content-Type", "text/html; charset=utf-8")
}

// Handle calls the handler of the route Dispatch attached to req.
func (d *Dispatcher) Handle(req *message.Request) (*message.Response, error) {
	route, ok := CurrentRoute(req)
	if !ok {
		return nil, ErrNoMatchedRoute
	}
	return d.Invoke(req.Context(), route.Handler(), req)
}

// Invoke calls the handler named by descriptor for req.
func (d *Dispatcher) Invoke(ctx context.Context, descriptor string, req *message.Request) (*message.Response, error) {
	target, err := ParseTarget(descriptor)
	if err != nil {
		return nil, err
	}

	method, err := d.resolver.Resolve(target.Class, target.Method)
	if err != nil {
		return nil, err
	}

	args, err := newBinder(target, req, d.container).bind(method.Params)
	if err != nil {
		return nil, err
	}

	instance, err := d.container.Get(target.Class)
	if err != nil {
		return nil, fmt.Errorf("dispatch: fetch %s: %w", target.Class, err)
	}

	d.logger.DebugContext(ctx, "invoking handler", "handler", target.String())

	out, err := method.Call(instance, args)
	if err != nil {
		return nil, err
	}
	return convert(target, out)
}

func convert(target Target, out any) (*message.Response, error) {
	switch v := out.(type) {
	case string:
		return message.Text(v), nil
	case *message.Response:
		if v != nil {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: %s returned %T", ErrInvalidHandlerReturn, target, out)
}
