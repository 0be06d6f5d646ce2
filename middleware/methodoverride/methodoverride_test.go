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

package methodoverride

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fram.dev/message"
	"fram.dev/middleware"
)

func TestMethodOverride(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		opts       []Option
		method     string
		target     string
		body       map[string]any
		header     string
		wantMethod string
	}{
		{name: "body field", method: http.MethodPost, body: map[string]any{"_method": "DELETE"}, wantMethod: http.MethodDelete},
		{name: "body field lowercase", method: http.MethodPost, body: map[string]any{"_method": "put"}, wantMethod: http.MethodPut},
		{name: "header", method: http.MethodPost, header: "PATCH", wantMethod: http.MethodPatch},
		{name: "query", method: http.MethodPost, target: "/?_method=DELETE", wantMethod: http.MethodDelete},
		{name: "body wins over header", method: http.MethodPost, body: map[string]any{"_method": "PUT"}, header: "DELETE", wantMethod: http.MethodPut},
		{name: "not allowed", method: http.MethodPost, body: map[string]any{"_method": "TRACE"}, wantMethod: http.MethodPost},
		{name: "only on post", method: http.MethodGet, body: map[string]any{"_method": "DELETE"}, wantMethod: http.MethodGet},
		{name: "nothing to override", method: http.MethodPost, wantMethod: http.MethodPost},
		{
			name:       "custom allow list",
			opts:       []Option{WithAllow("DELETE")},
			method:     http.MethodPost,
			body:       map[string]any{"_method": "PUT"},
			wantMethod: http.MethodPost,
		},
		{
			name:       "field disabled",
			opts:       []Option{WithField("")},
			method:     http.MethodPost,
			body:       map[string]any{"_method": "PUT"},
			wantMethod: http.MethodPost,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			target := tt.target
			if target == "" {
				target = "/"
			}
			req := message.NewRequest(tt.method, target)
			if tt.body != nil {
				req = req.WithParsedBody(tt.body)
			}
			if tt.header != "" {
				req = req.WithHeader("X-HTTP-Method-Override", tt.header)
			}

			var seen *message.Request
			_, err := New(tt.opts...).Process(req, middleware.HandlerFunc(func(r *message.Request) (*message.Response, error) {
				seen = r
				return message.Text("ok"), nil
			}))
			require.NoError(t, err)

			assert.Equal(t, tt.wantMethod, seen.Method())
			assert.Equal(t, tt.method, OriginalMethod(seen))
			assert.Equal(t, tt.method, req.Method(), "original request is unchanged")
		})
	}
}
