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
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"fram.dev/message"
)

// Handler returns the application behind a chi mux serving the health
// probes and, with [WithMetrics], the metrics endpoint. Every other request,
// including other methods on those paths, reaches the application.
func (a *App) Handler() http.Handler {
	mux := chi.NewRouter()

	h := a.cfg.health
	if h.livePath != "" {
		mux.Get(h.livePath, a.serveLiveness)
	}
	if h.readyPath != "" {
		mux.Get(h.readyPath, a.serveReadiness)
	}
	if a.cfg.metrics != nil && h.metricsPath != "" {
		mux.Handle(h.metricsPath, a.cfg.metrics.Handler())
	}

	mux.NotFound(a.ServeHTTP)
	mux.MethodNotAllowed(a.ServeHTTP)
	return mux
}

func (a *App) serveLiveness(w http.ResponseWriter, r *http.Request) {
	resp := message.Text("ok").WithHeader("Cache-Control", "no-store")
	_ = resp.WriteTo(w, r.Method)
}

func (a *App) serveReadiness(w http.ResponseWriter, r *http.Request) {
	var failures map[string]string
	if a.draining.Load() {
		failures = map[string]string{"server": "shutting down"}
	} else {
		failures = runChecks(r.Context(), a.cfg.health.readiness, a.cfg.health.timeout)
	}

	resp := message.New(http.StatusNoContent, nil)
	if len(failures) > 0 {
		var err error
		resp, err = message.JSON(http.StatusServiceUnavailable, map[string]any{
			"status": "unavailable",
			"checks": failures,
		})
		if err != nil {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		}
	}
	_ = resp.WithHeader("Cache-Control", "no-store").WriteTo(w, r.Method)
}

// runChecks runs checks concurrently, each with its own timeout, and
// returns the failures by name.
func runChecks(ctx context.Context, checks map[string]CheckFunc, timeout time.Duration) map[string]string {
	type result struct {
		name string
		err  error
	}

	results := make(chan result, len(checks))
	for name, fn := range checks {
		go func() {
			checkCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			results <- result{name, fn(checkCtx)}
		}()
	}

	failures := make(map[string]string)
	for range len(checks) {
		r := <-results
		if r.err != nil {
			failures[r.name] = r.err.Error()
		}
	}
	return failures
}
