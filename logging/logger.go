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

package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"fram.dev/telemetry/semconv"
)

// HandlerType represents the type of logging handler.
type HandlerType string

const (
	// JSONHandler outputs structured JSON logs.
	JSONHandler HandlerType = "json"
	// TextHandler outputs key=value text logs.
	TextHandler HandlerType = "text"
	// ConsoleHandler outputs human-readable colored logs.
	ConsoleHandler HandlerType = "console"
)

// Level represents log level.
type Level = slog.Level

const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// ParseLevel parses "debug", "info", "warn"/"warning" or "error".
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
}

// Logger owns a configured *slog.Logger.
type Logger struct {
	handlerType HandlerType
	output      io.Writer
	level       slog.LevelVar

	serviceName    string
	serviceVersion string
	environment    string

	addSource bool

	customLogger *slog.Logger
	useCustom    bool

	slogger atomic.Pointer[slog.Logger]
}

// Option is a functional option for configuring the logger.
type Option func(*Logger)

// New creates a Logger. It never touches the slog default logger; the
// app hands the result to every component explicitly.
func New(opts ...Option) (*Logger, error) {
	l := &Logger{
		handlerType: JSONHandler,
		output:      os.Stdout,
	}
	l.level.Set(LevelInfo)

	for _, opt := range opts {
		opt(l)
	}

	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	sl, err := l.build()
	if err != nil {
		return nil, err
	}
	l.slogger.Store(sl)
	return l, nil
}

// MustNew creates a new Logger or panics on error.
func MustNew(opts ...Option) *Logger {
	l, err := New(opts...)
	if err != nil {
		panic("logging initialization failed: " + err.Error())
	}
	return l
}

// Validate checks if the configuration is valid.
func (l *Logger) Validate() error {
	if l.useCustom {
		if l.customLogger == nil {
			return ErrNilLogger
		}
		return nil
	}
	if l.output == nil {
		return ErrNilOutput
	}
	switch l.handlerType {
	case JSONHandler, TextHandler, ConsoleHandler:
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidHandler, l.handlerType)
}

func (l *Logger) build() (*slog.Logger, error) {
	if l.useCustom {
		return l.customLogger, nil
	}

	opts := &slog.HandlerOptions{
		Level:       &l.level,
		AddSource:   l.addSource,
		ReplaceAttr: redact,
	}

	var handler slog.Handler
	switch l.handlerType {
	case JSONHandler:
		handler = slog.NewJSONHandler(l.output, opts)
	case TextHandler:
		handler = slog.NewTextHandler(l.output, opts)
	case ConsoleHandler:
		handler = newConsoleHandler(l.output, opts)
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidHandler, l.handlerType)
	}

	sl := slog.New(&contextHandler{next: handler})

	var attrs []any
	if l.serviceName != "" {
		attrs = append(attrs, semconv.LogService, l.serviceName)
	}
	if l.serviceVersion != "" {
		attrs = append(attrs, semconv.LogVersion, l.serviceVersion)
	}
	if l.environment != "" {
		attrs = append(attrs, semconv.LogEnvironment, l.environment)
	}
	if len(attrs) > 0 {
		sl = sl.With(attrs...)
	}
	return sl, nil
}

// redactedKeys are masked wherever they appear, including inside groups.
// _token and _csrf cover form fields posted to handlers.
var redactedKeys = map[string]bool{
	"password":      true,
	"secret":        true,
	"token":         true,
	"_token":        true,
	"_csrf":         true,
	"api_key":       true,
	"authorization": true,
	"cookie":        true,
	"set-cookie":    true,
}

func redact(_ []string, a slog.Attr) slog.Attr {
	if redactedKeys[strings.ToLower(a.Key)] {
		return slog.String(a.Key, "***REDACTED***")
	}
	return a
}

// Logger returns the underlying [slog.Logger].
func (l *Logger) Logger() *slog.Logger {
	return l.slogger.Load()
}

// With returns a [slog.Logger] with additional attributes.
func (l *Logger) With(args ...any) *slog.Logger {
	return l.Logger().With(args...)
}

// SetLevel changes the minimum log level at runtime.
func (l *Logger) SetLevel(level Level) error {
	if l.useCustom {
		return ErrCannotChangeLevel
	}
	l.level.Set(level)
	return nil
}

// Level returns the current minimum log level.
func (l *Logger) Level() Level {
	return l.level.Level()
}

// ServiceName returns the service name.
func (l *Logger) ServiceName() string {
	return l.serviceName
}

// LogError logs err at error level with msg. A nil err is ignored.
func (l *Logger) LogError(ctx context.Context, err error, msg string, extra ...any) {
	if err == nil {
		return
	}
	args := append([]any{semconv.LogError, err.Error()}, extra...)
	l.Logger().ErrorContext(ctx, msg, args...)
}

// LogDuration logs msg at info level with the time elapsed since start.
func (l *Logger) LogDuration(ctx context.Context, msg string, start time.Time, extra ...any) {
	elapsed := time.Since(start)
	args := append([]any{semconv.LogDurationMS, elapsed.Milliseconds(), "duration", elapsed.String()}, extra...)
	l.Logger().InfoContext(ctx, msg, args...)
}
