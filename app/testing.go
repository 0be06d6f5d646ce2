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
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"
)

// TestOption configures [App.Test].
type TestOption func(*testConfig)

type testConfig struct {
	timeout time.Duration
	ctx     context.Context //nolint:containedctx // test configuration
}

// WithTimeout bounds a test request. Use -1 for no timeout. Default: 1s.
func WithTimeout(d time.Duration) TestOption {
	return func(cfg *testConfig) { cfg.timeout = d }
}

// WithContext runs the test request under ctx.
func WithContext(ctx context.Context) TestOption {
	return func(cfg *testConfig) { cfg.ctx = ctx }
}

// Test sends req through [App.Handler] without a network listener.
//
//	resp, err := a.Test(httptest.NewRequest(http.MethodGet, "/posts/hello-1", nil))
//	require.NoError(t, err)
//	assert.Equal(t, http.StatusOK, resp.StatusCode)
//
// A handler still running after the timeout is abandoned, not canceled.
func (a *App) Test(req *http.Request, opts ...TestOption) (*http.Response, error) {
	cfg := &testConfig{timeout: time.Second, ctx: context.Background()}
	for _, opt := range opts {
		opt(cfg)
	}

	ctx := cfg.ctx
	if cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	handler := a.Handler()

	done := make(chan any, 1)
	go func() {
		defer func() { done <- recover() }()
		handler.ServeHTTP(rec, req)
	}()

	select {
	case p := <-done:
		if p != nil {
			return nil, fmt.Errorf("handler panicked: %v", p)
		}
		return rec.Result(), nil
	case <-ctx.Done():
		return nil, fmt.Errorf("test request: %w", ctx.Err())
	}
}
