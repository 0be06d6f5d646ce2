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
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
)

// hooks stores lifecycle callbacks.
type hooks struct {
	mu         sync.Mutex
	onStart    []func(context.Context) error
	onShutdown []func(context.Context)
	onStop     []func()
}

// OnStart registers a hook run before the server listens. Hooks run in
// order and the first error aborts startup.
//
//	a.OnStart(func(ctx context.Context) error {
//	    return db.PingContext(ctx)
//	})
func (a *App) OnStart(fn func(context.Context) error) {
	a.hooks.mu.Lock()
	defer a.hooks.mu.Unlock()
	a.hooks.onStart = append(a.hooks.onStart, fn)
}

// OnShutdown registers a hook run during graceful shutdown, in reverse
// registration order. ctx carries the shutdown deadline.
func (a *App) OnShutdown(fn func(context.Context)) {
	a.hooks.mu.Lock()
	defer a.hooks.mu.Unlock()
	a.hooks.onShutdown = append(a.hooks.onShutdown, fn)
}

// OnStop registers a hook run after the server stopped. Panics are logged.
func (a *App) OnStop(fn func()) {
	a.hooks.mu.Lock()
	defer a.hooks.mu.Unlock()
	a.hooks.onStop = append(a.hooks.onStop, fn)
}

func (a *App) runStartHooks(ctx context.Context) error {
	a.hooks.mu.Lock()
	fns := append([]func(context.Context) error(nil), a.hooks.onStart...)
	a.hooks.mu.Unlock()

	for i, fn := range fns {
		if err := fn(ctx); err != nil {
			return fmt.Errorf("OnStart hook %d failed: %w", i, err)
		}
	}
	return nil
}

func (a *App) runShutdownHooks(ctx context.Context) {
	a.hooks.mu.Lock()
	fns := append(([]func(context.Context))(nil), a.hooks.onShutdown...)
	a.hooks.mu.Unlock()

	for i := len(fns) - 1; i >= 0; i-- {
		fns[i](ctx)
	}
}

func (a *App) runStopHooks() {
	a.hooks.mu.Lock()
	fns := append(([]func())(nil), a.hooks.onStop...)
	a.hooks.mu.Unlock()

	for _, fn := range fns {
		func() {
			defer func() {
				if r := recover(); r != nil {
					a.logger.Warn("OnStop hook panic", "error", r)
				}
			}()
			fn()
		}()
	}
}

// Run listens on addr and serves until ctx is canceled, then shuts down
// gracefully. Signal handling belongs to the caller:
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//	err := a.Run(ctx, ":8080")
func (a *App) Run(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return a.Serve(ctx, ln)
}

// Serve is like [App.Run] on an existing listener, which it closes.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	if err := a.runStartHooks(ctx); err != nil {
		_ = ln.Close()
		return fmt.Errorf("startup failed: %w", err)
	}
	a.Freeze()

	s := a.cfg.server
	server := &http.Server{
		Handler:           a.Handler(),
		ReadTimeout:       s.readTimeout,
		ReadHeaderTimeout: s.readTimeout,
		WriteTimeout:      s.writeTimeout,
		IdleTimeout:       s.idleTimeout,
		ErrorLog:          slog.NewLogLogger(a.logger.Handler(), slog.LevelWarn),
	}

	serverErr := make(chan error, 1)
	go func() {
		a.logger.InfoContext(ctx, "server starting",
			"address", ln.Addr().String(),
			"service", a.cfg.serviceName,
			"version", a.cfg.serviceVersion,
			"routes", len(a.router.Routes()),
			"metrics_enabled", a.cfg.metrics != nil,
			"tracing_enabled", a.cfg.tracer != nil,
		)
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("http server failed: %w", err)
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		a.logger.Info("server shutting down", "reason", context.Cause(ctx))
	}

	a.draining.Store(true)

	// ctx is already canceled; the shutdown budget needs a fresh parent.
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
	defer cancel()

	a.runShutdownHooks(shutdownCtx)

	var errs []error
	if err := server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("http server forced to shutdown: %w", err))
	}
	if a.cfg.metrics != nil {
		if err := a.cfg.metrics.Shutdown(shutdownCtx); err != nil {
			a.logger.Warn("metrics shutdown failed", "error", err)
		}
	}
	if a.cfg.tracer != nil {
		if err := a.cfg.tracer.Shutdown(shutdownCtx); err != nil {
			a.logger.Warn("tracing shutdown failed", "error", err)
		}
	}

	a.runStopHooks()
	a.logger.Info("server exited")
	return errors.Join(errs...)
}
