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

package requestid

import (
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fram.dev/logging"
	"fram.dev/message"
	"fram.dev/middleware"
)

func run(t *testing.T, mw middleware.Middleware, req *message.Request) (*message.Response, *message.Request) {
	t.Helper()

	var seen *message.Request
	resp, err := mw.Process(req, middleware.HandlerFunc(func(r *message.Request) (*message.Response, error) {
		seen = r
		return message.Text("ok"), nil
	}))
	require.NoError(t, err)
	require.NotNil(t, seen)
	return resp, seen
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		opts     []Option
		incoming string
		check    func(t *testing.T, id string)
	}{
		{
			name: "generates uuid v7",
			check: func(t *testing.T, id string) {
				u, err := uuid.Parse(id)
				require.NoError(t, err)
				assert.Equal(t, uuid.Version(7), u.Version())
			},
		},
		{
			name: "generates ulid",
			opts: []Option{WithULID()},
			check: func(t *testing.T, id string) {
				_, err := ulid.ParseStrict(id)
				require.NoError(t, err)
			},
		},
		{
			name:     "reuses client id",
			incoming: "abc-123",
			check: func(t *testing.T, id string) {
				assert.Equal(t, "abc-123", id)
			},
		},
		{
			name:     "rejects client id when disabled",
			opts:     []Option{WithAllowClientID(false), WithGenerator(func() string { return "gen" })},
			incoming: "abc-123",
			check: func(t *testing.T, id string) {
				assert.Equal(t, "gen", id)
			},
		},
		{
			name:     "rejects malformed client id",
			opts:     []Option{WithGenerator(func() string { return "gen" })},
			incoming: "has spaces in it",
			check: func(t *testing.T, id string) {
				assert.Equal(t, "gen", id)
			},
		},
		{
			name:     "rejects oversized client id",
			opts:     []Option{WithGenerator(func() string { return "gen" })},
			incoming: strings.Repeat("a", maxClientIDLength+1),
			check: func(t *testing.T, id string) {
				assert.Equal(t, "gen", id)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := message.NewRequest(http.MethodGet, "/")
			if tt.incoming != "" {
				req = req.WithHeader(DefaultHeader, tt.incoming)
			}

			resp, seen := run(t, New(tt.opts...), req)
			id := Get(seen)
			tt.check(t, id)
			assert.Equal(t, id, resp.Header(DefaultHeader))
			assert.Equal(t, id, logging.RequestID(seen.Context()))
		})
	}
}

func TestRequestID_CustomHeader(t *testing.T) {
	t.Parallel()

	req := message.NewRequest(http.MethodGet, "/").WithHeader("X-Correlation-ID", "corr-1")
	resp, seen := run(t, New(WithHeader("X-Correlation-ID")), req)

	assert.Equal(t, "corr-1", Get(seen))
	assert.Equal(t, "corr-1", resp.Header("X-Correlation-ID"))
	assert.Empty(t, resp.Header(DefaultHeader))
}

func TestGet_Unset(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Get(message.NewRequest(http.MethodGet, "/")))
}

func TestULIDsAreMonotonic(t *testing.T) {
	t.Parallel()

	prev := generateULID()
	for range 100 {
		next := generateULID()
		assert.Greater(t, next, prev)
		prev = next
	}
}
