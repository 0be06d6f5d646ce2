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

package security

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fram.dev/message"
	"fram.dev/middleware"
)

func process(t *testing.T, mw middleware.Middleware, req *message.Request, resp *message.Response) *message.Response {
	t.Helper()

	out, err := mw.Process(req, middleware.HandlerFunc(func(*message.Request) (*message.Response, error) {
		return resp, nil
	}))
	require.NoError(t, err)
	return out
}

func TestSecurity_Defaults(t *testing.T) {
	t.Parallel()

	resp := process(t, New(), message.NewRequest(http.MethodGet, "/"), message.Text("ok"))

	assert.Equal(t, "DENY", resp.Header("X-Frame-Options"))
	assert.Equal(t, "nosniff", resp.Header("X-Content-Type-Options"))
	assert.Equal(t, "default-src 'self'", resp.Header("Content-Security-Policy"))
	assert.Equal(t, "strict-origin-when-cross-origin", resp.Header("Referrer-Policy"))
	assert.Empty(t, resp.Header("Strict-Transport-Security"), "plain HTTP gets no HSTS")
}

func TestSecurity_HSTS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts []Option
		req  *message.Request
		want string
	}{
		{
			name: "forwarded https",
			req:  message.NewRequest(http.MethodGet, "/").WithHeader("X-Forwarded-Proto", "https"),
			want: "max-age=31536000; includeSubDomains",
		},
		{
			name: "absolute https url",
			req:  message.NewRequest(http.MethodGet, "https://example.com/"),
			want: "max-age=31536000; includeSubDomains",
		},
		{
			name: "preload",
			opts: []Option{WithHSTS(600, false, true)},
			req:  message.NewRequest(http.MethodGet, "https://example.com/"),
			want: "max-age=600; preload",
		},
		{
			name: "disabled",
			opts: []Option{WithHSTS(0, false, false)},
			req:  message.NewRequest(http.MethodGet, "https://example.com/"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp := process(t, New(tt.opts...), tt.req, message.Text("ok"))
			assert.Equal(t, tt.want, resp.Header("Strict-Transport-Security"))
		})
	}
}

func TestSecurity_HandlerHeaderWins(t *testing.T) {
	t.Parallel()

	handlerResp := message.Text("ok").WithHeader("Content-Security-Policy", "default-src *")
	resp := process(t, New(), message.NewRequest(http.MethodGet, "/"), handlerResp)

	assert.Equal(t, "default-src *", resp.Header("Content-Security-Policy"))
}

func TestSecurity_Options(t *testing.T) {
	t.Parallel()

	resp := process(t, New(
		DevelopmentPreset(),
		WithPermissionsPolicy("camera=()"),
		WithCustomHeader("X-Custom", "yes"),
	), message.NewRequest(http.MethodGet, "/"), message.Text("ok"))

	assert.Equal(t, "SAMEORIGIN", resp.Header("X-Frame-Options"))
	assert.Contains(t, resp.Header("Content-Security-Policy"), "'unsafe-inline'")
	assert.Equal(t, "camera=()", resp.Header("Permissions-Policy"))
	assert.Equal(t, "yes", resp.Header("X-Custom"))

	bare := process(t, New(NoSecurityHeaders()), message.NewRequest(http.MethodGet, "/"), message.Text("ok"))
	assert.Empty(t, bare.Headers().Get("X-Frame-Options"))
	assert.Empty(t, bare.Headers().Get("Content-Security-Policy"))
}

func TestSecurity_ErrorPassesThrough(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	_, err := New().Process(message.NewRequest(http.MethodGet, "/"), middleware.HandlerFunc(func(*message.Request) (*message.Response, error) {
		return nil, boom
	}))
	assert.ErrorIs(t, err, boom)
}
