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

package timeout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	framerrors "fram.dev/errors"
	"fram.dev/message"
	"fram.dev/middleware"
)

// ErrTimeout is returned when a request exceeds its deadline.
var ErrTimeout = errors.New("request timeout")

// Handler builds the result returned on timeout.
type Handler func(req *message.Request, d time.Duration) (*message.Response, error)

// Option configures the timeout middleware.
type Option func(*config)

type config struct {
	duration   time.Duration
	logger     *slog.Logger
	handler    Handler
	skipPaths  map[string]bool
	skipPrefix []string
}

func defaultConfig() *config {
	return &config{
		duration:  30 * time.Second,
		logger:    slog.Default(),
		handler:   defaultHandler,
		skipPaths: make(map[string]bool),
	}
}

// WithDuration sets the deadline. Non-positive values are ignored.
func WithDuration(d time.Duration) Option {
	return func(cfg *config) {
		if d > 0 {
			cfg.duration = d
		}
	}
}

// WithLogger sets the logger used for timeout warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) { cfg.logger = logger }
}

// WithoutLogging disables timeout warnings.
func WithoutLogging() Option {
	return func(cfg *config) { cfg.logger = nil }
}

// WithHandler sets the timeout handler.
func WithHandler(h Handler) Option {
	return func(cfg *config) {
		if h != nil {
			cfg.handler = h
		}
	}
}

// WithSkipPaths exempts exact paths.
func WithSkipPaths(paths ...string) Option {
	return func(cfg *config) {
		for _, p := range paths {
			cfg.skipPaths[p] = true
		}
	}
}

// WithSkipPrefix exempts paths starting with any of prefixes.
func WithSkipPrefix(prefixes ...string) Option {
	return func(cfg *config) { cfg.skipPrefix = append(cfg.skipPrefix, prefixes...) }
}

func defaultHandler(_ *message.Request, d time.Duration) (*message.Response, error) {
	return nil, framerrors.WithStatus(fmt.Errorf("%w after %s", ErrTimeout, d), http.StatusRequestTimeout)
}

type result struct {
	resp     *message.Response
	err      error
	panicked bool
	panicVal any
}

// New returns the timeout middleware. Downstream handling runs on its own
// goroutine; a result arriving after the deadline is dropped.
func New(opts ...Option) middleware.Middleware {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return middleware.Func(func(req *message.Request, next middleware.Handler) (*message.Response, error) {
		if cfg.skip(req.Path()) {
			return next.Handle(req)
		}

		ctx, cancel := context.WithTimeout(req.Context(), cfg.duration)
		defer cancel()
		req = req.WithContext(ctx)

		done := make(chan result, 1)
		go func() {
			var res result
			defer func() {
				if v := recover(); v != nil {
					res = result{panicked: true, panicVal: v}
				}
				done <- res
			}()
			res.resp, res.err = next.Handle(req)
		}()

		select {
		case res := <-done:
			if res.panicked {
				panic(res.panicVal)
			}
			return res.resp, res.err
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil, ctx.Err()
			}
			if cfg.logger != nil {
				cfg.logger.WarnContext(ctx, "request timeout",
					"method", req.Method(),
					"path", req.Path(),
					"timeout", cfg.duration,
				)
			}
			return cfg.handler(req, cfg.duration)
		}
	})
}

func (cfg *config) skip(path string) bool {
	if cfg.skipPaths[path] {
		return true
	}
	for _, prefix := range cfg.skipPrefix {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
