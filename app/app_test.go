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

package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fram.dev/container"
	"fram.dev/dispatch"
	"fram.dev/message"
	"fram.dev/metrics"
	"fram.dev/middleware"
	"fram.dev/middleware/methodoverride"
)

type posts struct{}

func postsModule() Module {
	return ModuleFunc(func(a *App) error {
		str := func(name string) dispatch.Param { return dispatch.Param{Name: name, Kind: dispatch.KindString} }
		integer := func(name string) dispatch.Param { return dispatch.Param{Name: name, Kind: dispatch.KindInt} }

		if err := a.Registry().Register("Posts",
			dispatch.NewMethod("show", func(_ any, args dispatch.Args) (any, error) {
				return fmt.Sprintf("post %s #%d", args.String(0), args.Int(1)), nil
			}, str("slug"), integer("id")),
			dispatch.NewMethod("delete", func(_ any, args dispatch.Args) (any, error) {
				return fmt.Sprintf("deleted #%d", args.Int(0)), nil
			}, integer("id")),
			dispatch.NewMethod("fail", func(any, dispatch.Args) (any, error) {
				return nil, errors.New("database password leaked in message")
			}),
			dispatch.NewMethod("panic", func(any, dispatch.Args) (any, error) {
				panic("boom")
			}),
		); err != nil {
			return err
		}
		a.Services().(*container.Services).Set("Posts", posts{})

		r := a.Router()
		r.GET("post.show", "Posts@show", `/posts/{slug}-{id:\d+}`)
		r.DELETE("post.delete", "Posts@delete", `/posts/{id:\d+}`)
		r.GET("post.fail", "Posts@fail", "/fail")
		r.GET("post.panic", "Posts@panic", "/panic")
		return nil
	})
}

func newTestApp(t *testing.T, opts ...Option) *App {
	t.Helper()

	a, err := New(append([]Option{WithLogger(middleware.NewTestLogger())}, opts...)...)
	require.NoError(t, err)
	require.NoError(t, a.AddModule(postsModule()))
	return a
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()

	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []Option
		wantErr string
	}{
		{name: "empty service name", opts: []Option{WithServiceName("")}, wantErr: "service name"},
		{
			name:    "read exceeds write",
			opts:    []Option{WithServerTimeouts(DefaultWriteTimeout*2, DefaultWriteTimeout, DefaultIdleTimeout)},
			wantErr: "exceeds write timeout",
		},
		{name: "zero shutdown", opts: []Option{WithShutdownTimeout(0)}, wantErr: "shutdown timeout"},
		{
			name:    "registry and resolver",
			opts:    []Option{WithRegistry(dispatch.NewRegistry()), WithResolver(dispatch.NewRegistry())},
			wantErr: "mutually exclusive",
		},
		{name: "nil check", opts: []Option{WithReadinessCheck("db", nil)}, wantErr: `"db" is nil`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := New(tt.opts...)
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	assert.PanicsWithValue(t, "app.MustNew: "+func() string {
		_, err := New(WithServiceName(""))
		return err.Error()
	}(), func() { MustNew(WithServiceName("")) })
}

func TestApp_Dispatch(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)

	tests := []struct {
		name       string
		method     string
		target     string
		wantStatus int
		wantBody   string
	}{
		{name: "matched route", method: http.MethodGet, target: "/posts/hello-42", wantStatus: http.StatusOK, wantBody: "post hello #42"},
		{name: "head has no body", method: http.MethodHead, target: "/posts/hello-42", wantStatus: http.StatusOK},
		{name: "unknown path", method: http.MethodGet, target: "/nope", wantStatus: http.StatusNotFound, wantBody: "<h1>Not Found</h1>"},
		{name: "wrong method", method: http.MethodPost, target: "/posts/hello-42", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp, err := a.Test(httptest.NewRequest(tt.method, tt.target, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Contains(t, body(t, resp), tt.wantBody)
		})
	}
}

func TestApp_FatalErrors(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)

	for _, path := range []string{"/fail", "/panic"} {
		resp, err := a.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode, path)
		assert.Contains(t, resp.Header.Get("Content-Type"), "application/problem+json")

		var problem map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&problem))
		resp.Body.Close()
		assert.Equal(t, "Internal Server Error", problem["detail"], "internal details stay hidden")
		assert.NotEmpty(t, problem["error_id"])
	}
}

func TestApp_WithoutRecoveryPanics(t *testing.T) {
	t.Parallel()

	a := newTestApp(t, WithoutRecovery())
	_, err := a.Test(httptest.NewRequest(http.MethodGet, "/panic", nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestApp_PipeMethodOverride(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	require.NoError(t, a.Pipe(methodoverride.New()))

	form := url.Values{"_method": {"DELETE"}}
	req := httptest.NewRequest(http.MethodPost, "/posts/7", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "deleted #7", body(t, resp))
}

func TestApp_Pipe(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	services := a.Services().(*container.Services)
	services.Set("tagger", middleware.Func(func(req *message.Request, next middleware.Handler) (*message.Response, error) {
		resp, err := next.Handle(req)
		if err != nil {
			return nil, err
		}
		return resp.WithHeader("X-Tagged", "yes"), nil
	}))
	services.Set("not-middleware", 42)

	require.ErrorIs(t, a.Pipe(nil), ErrInvalidMiddleware)
	require.ErrorIs(t, a.PipeID("missing"), ErrInvalidMiddleware)
	require.ErrorIs(t, a.PipeID("not-middleware"), ErrInvalidMiddleware)
	require.NoError(t, a.PipeID("tagger"))

	resp, err := a.Handle(message.NewRequest(http.MethodGet, "/posts/a-1"))
	require.NoError(t, err)
	assert.Equal(t, "yes", resp.Header("X-Tagged"))

	assert.ErrorIs(t, a.PipeID("tagger"), ErrFrozen, "handling a request freezes the pipeline")
	assert.ErrorIs(t, a.AddModule(postsModule()), ErrFrozen)
}

func TestApp_Health(t *testing.T) {
	t.Parallel()

	healthy := newTestApp(t)
	failing := newTestApp(t, WithReadinessCheck("db", func(context.Context) error {
		return errors.New("connection refused")
	}))

	resp, err := healthy.Test(httptest.NewRequest(http.MethodGet, DefaultHealthPath, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body(t, resp))

	resp, err = healthy.Test(httptest.NewRequest(http.MethodGet, DefaultReadyPath, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = failing.Test(httptest.NewRequest(http.MethodGet, DefaultReadyPath, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, body(t, resp), "connection refused")

	resp, err = healthy.Test(httptest.NewRequest(http.MethodPost, DefaultHealthPath, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "other methods reach the dispatcher")
}

func TestApp_Metrics(t *testing.T) {
	t.Parallel()

	rec, err := metrics.New(metrics.WithServiceName("app-test"))
	require.NoError(t, err)
	a := newTestApp(t, WithMetrics(rec))

	resp, err := a.Test(httptest.NewRequest(http.MethodGet, "/posts/a-1", nil))
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = a.Test(httptest.NewRequest(http.MethodGet, DefaultMetricsPath, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	out := body(t, resp)
	assert.Contains(t, out, "fram_dispatch_requests_total")
	assert.Contains(t, out, `route="post.show"`)
}

func TestApp_RendererGlobals(t *testing.T) {
	t.Parallel()

	views := &globalsRenderer{globals: map[string]any{}}
	a := MustNew(WithRenderer(views))

	assert.Same(t, a.Router(), views.globals["router"])
	assert.Equal(t, a.Services(), views.globals["container"])
}

type globalsRenderer struct {
	globals map[string]any
}

func (r *globalsRenderer) AddGlobal(key string, value any) { r.globals[key] = value }

func (r *globalsRenderer) Render(string, map[string]any) (string, error) { return "", nil }
