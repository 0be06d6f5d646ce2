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

package accesslog

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"fram.dev/dispatch"
	framerrors "fram.dev/errors"
	"fram.dev/logging"
	"fram.dev/message"
	"fram.dev/middleware"
	"fram.dev/telemetry/semconv"
)

// New returns the access log middleware.
func New(opts ...Option) middleware.Middleware {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return middleware.Func(func(req *message.Request, next middleware.Handler) (*message.Response, error) {
		if cfg.logger == nil || cfg.excluded(req.Path()) {
			return next.Handle(req)
		}

		start := time.Now()
		resp, err := next.Handle(req)
		duration := time.Since(start)

		status := http.StatusOK
		var size int
		switch {
		case err != nil:
			status = framerrors.DefaultStatus(err)
		case resp != nil:
			status = resp.StatusCode()
			size = len(resp.Body())
		}

		isError := status >= http.StatusBadRequest
		isSlow := cfg.slowThreshold > 0 && duration >= cfg.slowThreshold
		if !isError && !isSlow {
			if cfg.errorsOnly {
				return resp, err
			}
			if cfg.sampleRate < 1 && !sampleByHash(requestID(req), cfg.sampleRate) {
				return resp, err
			}
		}

		attrs := []slog.Attr{
			slog.String(semconv.LogMethod, req.Method()),
			slog.String(semconv.LogPath, req.Path()),
			slog.Int(semconv.LogStatus, status),
			slog.Int64(semconv.LogDurationMS, duration.Milliseconds()),
			slog.Int(semconv.LogBytes, size),
		}
		if ua := req.Header("User-Agent"); ua != "" {
			attrs = append(attrs, slog.String(semconv.LogUserAgent, ua))
		}
		if ip, ok := req.AttributeOr(middleware.AttrIPAddress, "").(string); ok && ip != "" {
			attrs = append(attrs, slog.String(semconv.LogClientIP, ip))
		}
		ctx := req.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		// A context-aware handler already adds request_id from ctx.
		if id := requestID(req); id != "" && logging.RequestID(ctx) == "" {
			attrs = append(attrs, slog.String(semconv.LogRequestID, id))
		}
		if orig, ok := req.AttributeOr(middleware.AttrOriginalMethod, "").(string); ok && orig != "" {
			attrs = append(attrs, slog.String(semconv.LogOriginalMethod, orig))
		}
		if route, ok := dispatch.CurrentRoute(req); ok && !route.IsFailure() {
			attrs = append(attrs, slog.String(semconv.LogRoute, route.Name()), slog.String(semconv.LogPattern, route.Pattern()))
		}
		if isSlow {
			attrs = append(attrs, slog.Bool(semconv.LogSlow, true))
		}
		if err != nil {
			attrs = append(attrs, slog.String(semconv.LogError, err.Error()))
		}

		level := slog.LevelInfo
		switch {
		case status >= http.StatusInternalServerError:
			level = slog.LevelError
		case isError, isSlow:
			level = slog.LevelWarn
		}
		cfg.logger.LogAttrs(ctx, level, "access", attrs...)

		return resp, err
	})
}

func (cfg *config) excluded(path string) bool {
	if cfg.excludePaths[path] {
		return true
	}
	for _, prefix := range cfg.excludePrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func requestID(req *message.Request) string {
	id, _ := req.AttributeOr(middleware.AttrRequestID, "").(string)
	return id
}

// sampleByHash makes the same decision for the same ID on every replica.
func sampleByHash(id string, rate float64) bool {
	if id == "" {
		return true
	}
	h := sha256.Sum256([]byte(id))
	return binary.BigEndian.Uint64(h[:8]) <= uint64(rate*float64(^uint64(0)))
}
