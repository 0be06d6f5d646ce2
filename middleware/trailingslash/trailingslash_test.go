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

package trailingslash

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fram.dev/message"
	"fram.dev/middleware"
)

func TestTrailingSlash(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		opts         []Option
		target       string
		wantStatus   int
		wantLocation string
	}{
		{name: "remove redirects", target: "/posts/", wantStatus: http.StatusMovedPermanently, wantLocation: "/posts"},
		{name: "remove keeps query", target: "/posts/?page=2", wantStatus: http.StatusMovedPermanently, wantLocation: "/posts?page=2"},
		{name: "remove trims one slash", target: "/a//", wantStatus: http.StatusMovedPermanently, wantLocation: "/a/"},
		{name: "remove passes canonical", target: "/posts", wantStatus: http.StatusOK},
		{name: "root untouched", target: "/", wantStatus: http.StatusOK},
		{
			name:         "permanent redirect code",
			opts:         []Option{WithRedirectCode(http.StatusPermanentRedirect)},
			target:       "/posts/",
			wantStatus:   http.StatusPermanentRedirect,
			wantLocation: "/posts",
		},
		{
			name:       "invalid redirect code ignored",
			opts:       []Option{WithRedirectCode(http.StatusOK)},
			target:     "/posts/",
			wantStatus: http.StatusMovedPermanently, wantLocation: "/posts",
		},
		{
			name:         "add redirects",
			opts:         []Option{WithPolicy(PolicyAdd)},
			target:       "/posts",
			wantStatus:   http.StatusMovedPermanently,
			wantLocation: "/posts/",
		},
		{name: "add passes canonical", opts: []Option{WithPolicy(PolicyAdd)}, target: "/posts/", wantStatus: http.StatusOK},
		{name: "strict passes", opts: []Option{WithPolicy(PolicyStrict)}, target: "/posts/", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := message.NewRequest(http.MethodGet, tt.target)
			resp, err := New(tt.opts...).Process(req, middleware.HandlerFunc(func(*message.Request) (*message.Response, error) {
				return message.Text("ok"), nil
			}))
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, resp.StatusCode())
			assert.Equal(t, tt.wantLocation, resp.Header("Location"))
		})
	}
}
