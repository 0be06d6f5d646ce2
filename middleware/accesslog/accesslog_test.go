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

//go:build !integration

package accesslog

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fram.dev/dispatch"
	framerrors "fram.dev/errors"
	"fram.dev/logging"
	"fram.dev/message"
	"fram.dev/middleware"
	"fram.dev/router"
)

func respond(resp *message.Response, err error) middleware.Handler {
	return middleware.HandlerFunc(func(*message.Request) (*message.Response, error) {
		return resp, err
	})
}

func TestAccessLog_Fields(t *testing.T) {
	t.Parallel()

	th := logging.NewTestHelper(t)
	mw := New(WithLogger(th.Logger.Logger()))

	req := message.NewRequest(http.MethodGet, "/posts?page=2").
		WithHeader("User-Agent", "test-agent").
		WithAttribute(middleware.AttrIPAddress, "203.0.113.7").
		WithAttribute(middleware.AttrRequestID, "req-1")

	resp, err := mw.Process(req, respond(message.Text("hello"), nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())

	entry, err := th.LastLog()
	require.NoError(t, err)
	assert.Equal(t, "access", entry.Message)
	assert.Equal(t, "INFO", entry.Level)
	assert.Equal(t, "GET", entry.Attrs["method"])
	assert.Equal(t, "/posts", entry.Attrs["path"])
	assert.InDelta(t, 200, entry.Attrs["status"], 0)
	assert.InDelta(t, 5, entry.Attrs["bytes"], 0)
	assert.Equal(t, "test-agent", entry.Attrs["user_agent"])
	assert.Equal(t, "203.0.113.7", entry.Attrs["client_ip"])
	assert.Equal(t, "req-1", entry.Attrs["request_id"])
	assert.NotContains(t, entry.Attrs, "route")
}

func TestAccessLog_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		resp       *message.Response
		err        error
		wantLevel  string
		wantStatus float64
	}{
		{name: "ok", resp: message.Text("ok"), wantLevel: "INFO", wantStatus: 200},
		{name: "not found", resp: message.New(http.StatusNotFound, nil), wantLevel: "WARN", wantStatus: 404},
		{name: "server error response", resp: message.New(http.StatusBadGateway, nil), wantLevel: "ERROR", wantStatus: 502},
		{name: "handler error", err: errors.New("boom"), wantLevel: "ERROR", wantStatus: 500},
		{
			name:       "handler error with status",
			err:        framerrors.WithStatus(errors.New("nope"), http.StatusForbidden),
			wantLevel:  "WARN",
			wantStatus: 403,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			th := logging.NewTestHelper(t)
			_, err := New(WithLogger(th.Logger.Logger())).
				Process(message.NewRequest(http.MethodGet, "/x"), respond(tt.resp, tt.err))
			assert.ErrorIs(t, err, tt.err)

			entry, err := th.LastLog()
			require.NoError(t, err)
			assert.Equal(t, tt.wantLevel, entry.Level)
			assert.InDelta(t, tt.wantStatus, entry.Attrs["status"], 0)
			if tt.err != nil {
				assert.Contains(t, entry.Attrs, "error")
			}
		})
	}
}

func TestAccessLog_Filters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []Option
		path    string
		status  int
		wantLog bool
	}{
		{name: "excluded path", opts: []Option{WithExcludePaths("/healthz")}, path: "/healthz", status: 200},
		{name: "excluded prefix", opts: []Option{WithExcludePrefixes("/assets/")}, path: "/assets/app.css", status: 200},
		{name: "prefix does not match", opts: []Option{WithExcludePrefixes("/assets/")}, path: "/api", status: 200, wantLog: true},
		{name: "errors only skips success", opts: []Option{WithErrorsOnly()}, path: "/", status: 200},
		{name: "errors only keeps failures", opts: []Option{WithErrorsOnly()}, path: "/", status: 500, wantLog: true},
		{name: "zero sample rate skips success", opts: []Option{WithSampleRate(0)}, path: "/", status: 200},
		{name: "zero sample rate keeps failures", opts: []Option{WithSampleRate(0)}, path: "/", status: 404, wantLog: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			th := logging.NewTestHelper(t)
			opts := append([]Option{WithLogger(th.Logger.Logger())}, tt.opts...)
			req := message.NewRequest(http.MethodGet, tt.path).WithAttribute(middleware.AttrRequestID, "id-1")
			_, err := New(opts...).Process(req, respond(message.New(tt.status, nil), nil))
			require.NoError(t, err)

			assert.Equal(t, tt.wantLog, th.ContainsLog("access"))
		})
	}
}

func TestAccessLog_SlowRequest(t *testing.T) {
	t.Parallel()

	th := logging.NewTestHelper(t)
	mw := New(WithLogger(th.Logger.Logger()), WithSlowThreshold(time.Millisecond), WithErrorsOnly())

	slow := middleware.HandlerFunc(func(*message.Request) (*message.Response, error) {
		time.Sleep(5 * time.Millisecond)
		return message.Text("ok"), nil
	})
	_, err := mw.Process(message.NewRequest(http.MethodGet, "/slow"), slow)
	require.NoError(t, err)

	entry, err := th.LastLog()
	require.NoError(t, err)
	assert.Equal(t, "WARN", entry.Level)
	assert.Equal(t, true, entry.Attrs["slow"])
}

func TestAccessLog_RouteAndOverride(t *testing.T) {
	t.Parallel()

	r := router.MustNew()
	r.GET("post.show", "Posts@show", "/posts/{id}")
	route := r.MatchPath(http.MethodGet, "/posts/42")
	require.False(t, route.IsFailure())

	th := logging.NewTestHelper(t)
	req := message.NewRequest(http.MethodGet, "/posts/42").
		WithAttribute(middleware.AttrOriginalMethod, http.MethodPost)
	req = req.WithContext(dispatch.WithRoute(req.Context(), route))

	_, err := New(WithLogger(th.Logger.Logger())).Process(req, respond(message.Text("ok"), nil))
	require.NoError(t, err)

	entry, err := th.LastLog()
	require.NoError(t, err)
	assert.Equal(t, "post.show", entry.Attrs["route"])
	assert.Equal(t, "/posts/{id}", entry.Attrs["pattern"])
	assert.Equal(t, "POST", entry.Attrs["original_method"])
}

func TestAccessLog_NoLogger(t *testing.T) {
	t.Parallel()

	resp, err := New().Process(message.NewRequest(http.MethodGet, "/"), respond(message.Text("ok"), nil))
	require.NoError(t, err)
	assert.Equal(t, "ok", string(resp.Body()))
}

func TestSampleByHash(t *testing.T) {
	t.Parallel()

	assert.True(t, sampleByHash("", 0))
	assert.True(t, sampleByHash("abc", 1))
	assert.Equal(t, sampleByHash("abc", 0.5), sampleByHash("abc", 0.5))
}
