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
	"log/slog"
	"time"
)

// Option configures the access log middleware.
type Option func(*config)

type config struct {
	logger          *slog.Logger
	excludePaths    map[string]bool
	excludePrefixes []string
	slowThreshold   time.Duration
	errorsOnly      bool
	sampleRate      float64
}

func defaultConfig() *config {
	return &config{
		excludePaths: make(map[string]bool),
		sampleRate:   1.0,
	}
}

// WithLogger sets the destination logger. Without one nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) { cfg.logger = logger }
}

// WithExcludePaths skips exact paths.
func WithExcludePaths(paths ...string) Option {
	return func(cfg *config) {
		for _, p := range paths {
			cfg.excludePaths[p] = true
		}
	}
}

// WithExcludePrefixes skips every path starting with one of prefixes.
func WithExcludePrefixes(prefixes ...string) Option {
	return func(cfg *config) {
		cfg.excludePrefixes = append(cfg.excludePrefixes, prefixes...)
	}
}

// WithSlowThreshold marks requests taking at least d as slow.
func WithSlowThreshold(d time.Duration) Option {
	return func(cfg *config) { cfg.slowThreshold = d }
}

// WithErrorsOnly logs only failed or slow requests.
func WithErrorsOnly() Option {
	return func(cfg *config) { cfg.errorsOnly = true }
}

// WithSampleRate logs roughly rate of the successful requests. The decision
// is derived from the request ID so every replica agrees. Values are clamped
// to [0, 1].
func WithSampleRate(rate float64) Option {
	return func(cfg *config) {
		cfg.sampleRate = min(max(rate, 0), 1)
	}
}
