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

package recovery

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"fram.dev/message"
	"fram.dev/middleware"
	"fram.dev/telemetry/semconv"
)

// ErrPanic is matched by every recovered panic.
var ErrPanic = errors.New("panic recovered")

// PanicError carries a recovered panic value.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic recovered: %v", e.Value)
}

// Unwrap returns ErrPanic and the panic value when it is an error.
func (e *PanicError) Unwrap() []error {
	if err, ok := e.Value.(error); ok {
		return []error{ErrPanic, err}
	}
	return []error{ErrPanic}
}

// Handler builds the outcome of a recovered panic.
type Handler func(req *message.Request, value any) (*message.Response, error)

// Option configures the middleware.
type Option func(*config)

type config struct {
	logger     *slog.Logger
	handler    Handler
	stackTrace bool
	stackSize  int
}

// WithLogger logs recovered panics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) { cfg.logger = logger }
}

// WithoutLogging disables logging.
func WithoutLogging() Option {
	return func(cfg *config) { cfg.logger = nil }
}

// WithHandler replaces the default outcome.
func WithHandler(h Handler) Option {
	return func(cfg *config) { cfg.handler = h }
}

// WithStackTrace enables or disables stack capture.
func WithStackTrace(enabled bool) Option {
	return func(cfg *config) { cfg.stackTrace = enabled }
}

// WithStackSize truncates captured stacks to size bytes.
func WithStackSize(size int) Option {
	return func(cfg *config) { cfg.stackSize = size }
}

type recovery struct {
	cfg *config
}

// New returns the recovery middleware.
func New(opts ...Option) middleware.Middleware {
	cfg := &config{
		logger:     slog.Default(),
		stackTrace: true,
		stackSize:  4 << 10,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return &recovery{cfg: cfg}
}

// Process implements middleware.Middleware.
func (m *recovery) Process(req *message.Request, next middleware.Handler) (resp *message.Response, err error) {
	defer func() {
		v := recover()
		if v == nil {
			return
		}

		var stack []byte
		if m.cfg.stackTrace {
			stack = debug.Stack()
			if m.cfg.stackSize > 0 && len(stack) > m.cfg.stackSize {
				stack = stack[:m.cfg.stackSize]
			}
		}

		markSpan(req, v)
		if m.cfg.logger != nil {
			m.cfg.logger.ErrorContext(req.Context(), "panic recovered",
				"panic", fmt.Sprint(v),
				"method", req.Method(),
				"path", req.Path(),
				"stack", string(stack),
			)
		}

		if m.cfg.handler != nil {
			resp, err = m.cfg.handler(req, v)
			return
		}
		resp, err = nil, &PanicError{Value: v, Stack: stack}
	}()

	return next.Handle(req)
}

func markSpan(req *message.Request, v any) {
	span := trace.SpanFromContext(req.Context())
	if !span.IsRecording() {
		return
	}
	span.SetStatus(codes.Error, "panic recovered")
	span.SetAttributes(
		attribute.Bool(semconv.ExceptionEscaped, true),
		attribute.String(semconv.ExceptionType, fmt.Sprintf("%T", v)),
		attribute.String(semconv.ExceptionMessage, fmt.Sprint(v)),
	)
	if err, ok := v.(error); ok {
		span.RecordError(err)
	}
}
