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

package message

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
)

// NewTestRequest builds a request with the given attributes already attached.
// It is meant for tests of middleware and handlers that read attributes.
func NewTestRequest(method, target string, attrs map[string]any) *Request {
	return NewRequest(method, target).WithAttributes(attrs)
}

// NewTestHTTPRequest converts an httptest request carrying body with the
// given content type. It fails the test if the body cannot be decoded.
func NewTestHTTPRequest(tb testing.TB, method, target, contentType string, body []byte) *Request {
	tb.Helper()

	r := httptest.NewRequest(method, target, bytes.NewReader(body))
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}
	req, err := FromHTTP(r)
	if err != nil {
		tb.Fatalf("message: decode test request: %v", err)
	}
	return req
}

// Recorded writes resp to an httptest.ResponseRecorder and returns it.
func Recorded(resp *Response) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	_ = resp.WriteTo(rec, http.MethodGet)
	return rec
}
