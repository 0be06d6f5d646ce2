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

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProject(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	views := filepath.Join(dir, "views")
	require.NoError(t, os.MkdirAll(filepath.Join(views, "pages"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(views, "errors"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(views, "pages", "about.html"),
		[]byte(`<h1>{{ .slug }}</h1>`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(views, "errors", "404.html"),
		[]byte(`<p>missing</p>`), 0o600))

	cfg := `
service:
  name: site
log:
  level: error
views: ` + views + `
routes:
  - name: page.show
    method: GET
    pattern: '/pages/{slug}'
    handler: Pages@show
  - name: status
    method: GET
    pattern: /status
    handler: Health
`
	path := filepath.Join(dir, "fram.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, version+"\n", out)

	out, err = execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "commit:")
	assert.Contains(t, out, "go:")
}

func TestRoutesCommand(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "routes", "--config", writeProject(t))
	require.NoError(t, err)

	assert.Contains(t, out, "METHOD")
	assert.Regexp(t, `GET\s+page\.show\s+/pages/\{slug\}\s+Pages@show`, out)
	assert.Regexp(t, `GET\s+status\s+/status\s+Health`, out)
}

func TestURICommand(t *testing.T) {
	t.Parallel()

	cfg := writeProject(t)

	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{name: "substitutes", args: []string{"page.show", "slug=about"}, want: "/pages/about\n"},
		{name: "query", args: []string{"page.show", "slug=about", "-q", "b=2", "-q", "a=1"}, want: "/pages/about?a=1&b=2\n"},
		{name: "unknown route", args: []string{"nope"}, wantErr: true},
		{name: "missing substitute", args: []string{"page.show"}, wantErr: true},
		{name: "malformed pair", args: []string{"page.show", "slug"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := execute(t, append([]string{"uri", "--config", cfg}, tt.args...)...)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestConfigCommand(t *testing.T) {
	t.Parallel()

	cfg := writeProject(t)

	out, err := execute(t, "config", "--config", cfg, "--format", "json")
	require.NoError(t, err)

	var values map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &values))
	service, ok := values["service"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "site", service["name"])

	flat := filepath.Join(t.TempDir(), "flat.yaml")
	require.NoError(t, os.WriteFile(flat, []byte("service:\n  name: flat\n"), 0o600))
	out, err = execute(t, "config", "--config", flat, "--format", "toml")
	require.NoError(t, err)
	assert.Contains(t, out, "[service]")
	assert.Contains(t, out, `name = "flat"`)

	_, err = execute(t, "config", "--config", cfg, "--format", "ini")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestServeCommandRejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "fram.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: loud\n"), 0o600))

	_, err := execute(t, "serve", "--config", path)
	require.Error(t, err)
}

func TestBuiltinHandlers(t *testing.T) {
	t.Parallel()

	a, _, _, err := loadApp(context.Background(), writeProject(t))
	require.NoError(t, err)
	require.NoError(t, pipeDefaults(a))

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantBody   string
	}{
		{name: "page", target: "/pages/about", wantStatus: http.StatusOK, wantBody: "<h1>about</h1>"},
		{name: "trailing slash", target: "/pages/about/", wantStatus: http.StatusMovedPermanently},
		{name: "missing page", target: "/pages/contact", wantStatus: http.StatusNotFound, wantBody: "<p>missing</p>"},
		{name: "unmatched", target: "/nowhere", wantStatus: http.StatusNotFound, wantBody: "<p>missing</p>"},
		{name: "invokable", target: "/status", wantStatus: http.StatusOK, wantBody: "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp, err := a.Test(httptest.NewRequest(http.MethodGet, tt.target, nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
			assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
			if tt.wantBody != "" {
				body, err := io.ReadAll(resp.Body)
				require.NoError(t, err)
				assert.Equal(t, tt.wantBody, string(body))
			}
		})
	}
}
