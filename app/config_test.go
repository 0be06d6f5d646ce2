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
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fram.dev/container"
	"fram.dev/message"
	"fram.dev/middleware"
	"fram.dev/validation"
)

const sampleConfig = `
service:
  name: blog
  version: 1.2.3
server:
  addr: ":9090"
  read_timeout: 5s
log:
  level: debug
  format: text
routes:
  - name: post.show
    method: get
    pattern: '/posts/{slug}-{id:\d+}'
    handler: Posts@show
  - name: admin.post.delete
    method: DELETE
    pattern: '/admin/posts/{id:\d+}'
    handler: Posts@delete
groups:
  - prefix: admin
    middleware: [auth]
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fram.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	cfg, raw, err := LoadConfig(context.Background(), writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "blog", cfg.Service.Name)
	assert.Equal(t, "development", cfg.Service.Environment, "default applied")
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.WriteTimeout, "default applied")
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	require.Len(t, cfg.Routes, 2)
	assert.Equal(t, "Posts@show", cfg.Routes[0].Handler)
	assert.Equal(t, []string{"auth"}, cfg.Groups[0].Middleware)

	assert.Equal(t, "blog", raw.String("service.name"))
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("FRAM_SERVER__ADDR", ":7070")
	t.Setenv("FRAM_METRICS__ENABLED", "true")

	cfg, _, err := LoadConfig(context.Background(), writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Addr, "environment overrides the file")
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		wantPath string
	}{
		{
			name:     "bad method",
			content:  "routes:\n  - {name: a, method: BREW, pattern: /a, handler: A}\n",
			wantPath: "routes.0.method",
		},
		{
			name:     "bad pattern",
			content:  "routes:\n  - {name: a, method: GET, pattern: '/a/{id', handler: A}\n",
			wantPath: "routes.0.pattern",
		},
		{
			name:     "read exceeds write",
			content:  "server:\n  read_timeout: 20s\n  write_timeout: 10s\n",
			wantPath: "server.write_timeout",
		},
		{
			name:     "unknown log format",
			content:  "log:\n  format: xml\n",
			wantPath: "log.format",
		},
		{
			name:     "group without middleware",
			content:  "groups:\n  - prefix: admin\n",
			wantPath: "groups.0.middleware",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := LoadConfig(context.Background(), writeConfig(t, tt.content))
			require.Error(t, err)

			var verr *validation.Error
			require.ErrorAs(t, err, &verr)
			assert.True(t, verr.Has(tt.wantPath), "got %v", err)
		})
	}
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	cfg, _, err := LoadConfig(context.Background(), writeConfig(t, sampleConfig+"\nmetrics:\n  enabled: true\ntracing:\n  enabled: true\n"))
	require.NoError(t, err)

	a, err := NewFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, "blog", a.ServiceName())
	assert.Equal(t, "1.2.3", a.ServiceVersion())
	assert.NotNil(t, a.cfg.metrics)
	assert.NotNil(t, a.cfg.tracer)
	assert.Equal(t, 5*time.Second, a.cfg.server.readTimeout)
}

func TestLoadRoutes(t *testing.T) {
	t.Parallel()

	cfg, _, err := LoadConfig(context.Background(), writeConfig(t, sampleConfig))
	require.NoError(t, err)

	a := newTestApp(t)
	a.Services().(*container.Services).Set("auth", middleware.Func(func(req *message.Request, next middleware.Handler) (*message.Response, error) {
		if req.Header("Authorization") == "" {
			return message.New(http.StatusUnauthorized, []byte("login first")), nil
		}
		return next.Handle(req)
	}))
	require.NoError(t, a.LoadRoutes(cfg.RoutesConfig()))

	route, ok := a.Router().RouteByName("admin.post.delete")
	require.True(t, ok)
	assert.Equal(t, http.MethodDelete, route.Method)

	resp, err := a.Test(httptest.NewRequest(http.MethodDelete, "/admin/posts/3", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	req := httptest.NewRequest(http.MethodDelete, "/admin/posts/3", nil)
	req.Header.Set("Authorization", "Bearer x")
	resp, err = a.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "deleted #3", body(t, resp))
}

func TestLoadRoutes_Errors(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)

	err := a.LoadRoutes(RoutesConfig{Routes: []RouteConfig{{Name: "x", Method: "GET", Pattern: "/x", Handler: "not a handler!"}}})
	require.ErrorIs(t, err, ErrInvalidConfig)

	err = a.LoadRoutes(RoutesConfig{Groups: []GroupConfig{{Prefix: "admin", Middleware: []string{"ghost"}}}})
	require.ErrorIs(t, err, ErrInvalidMiddleware)
}
