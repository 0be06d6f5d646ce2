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

package realip

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fram.dev/message"
	"fram.dev/middleware"
)

func TestRealIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []Option
		remote  string
		headers map[string]string
		want    string
	}{
		{
			name:   "remote addr without proxies",
			remote: "203.0.113.7:52100",
			want:   "203.0.113.7",
		},
		{
			name:    "untrusted remote ignores headers",
			remote:  "203.0.113.7:52100",
			headers: map[string]string{"X-Forwarded-For": "1.2.3.4"},
			want:    "203.0.113.7",
		},
		{
			name:    "trusted proxy xff",
			opts:    []Option{WithTrustedProxies("10.0.0.0/8")},
			remote:  "10.0.0.1:80",
			headers: map[string]string{"X-Forwarded-For": "198.51.100.9"},
			want:    "198.51.100.9",
		},
		{
			name:    "xff skips trusted hops",
			opts:    []Option{WithTrustedProxies("10.0.0.0/8"), WithMaxHops(2)},
			remote:  "10.0.0.1:80",
			headers: map[string]string{"X-Forwarded-For": "6.6.6.6, 198.51.100.9, 10.0.0.2"},
			want:    "198.51.100.9",
		},
		{
			name:    "x-real-ip fallback",
			opts:    []Option{WithTrustedProxies("127.0.0.1")},
			remote:  "127.0.0.1:80",
			headers: map[string]string{"X-Real-IP": "198.51.100.10"},
			want:    "198.51.100.10",
		},
		{
			name:    "cloudflare header",
			opts:    []Option{WithTrustedProxies("127.0.0.1"), WithHeaders(HeaderCFConnecting)},
			remote:  "127.0.0.1:80",
			headers: map[string]string{"CF-Connecting-IP": "2001:db8::1", "X-Forwarded-For": "1.1.1.1"},
			want:    "2001:db8::1",
		},
		{
			name:    "garbage header falls back to remote",
			opts:    []Option{WithTrustedProxies("127.0.0.1")},
			remote:  "127.0.0.1:80",
			headers: map[string]string{"X-Forwarded-For": "not-an-ip"},
			want:    "127.0.0.1",
		},
		{
			name:   "remote without port",
			remote: "192.0.2.1",
			want:   "192.0.2.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := message.NewRequest(http.MethodGet, "/").WithRemoteAddr(tt.remote)
			for k, v := range tt.headers {
				req = req.WithHeader(k, v)
			}

			var got string
			_, err := MustNew(tt.opts...).Process(req, middleware.HandlerFunc(func(r *message.Request) (*message.Response, error) {
				got = Get(r)
				return message.Text("ok"), nil
			}))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_InvalidProxy(t *testing.T) {
	t.Parallel()

	_, err := New(WithTrustedProxies("10.0.0.0/33"))
	require.Error(t, err)
	assert.Panics(t, func() { MustNew(WithTrustedProxies("nope")) })
}
