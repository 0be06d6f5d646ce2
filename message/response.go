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
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

// Response is an immutable HTTP response.
type Response struct {
	status int
	header http.Header
	body   []byte
}

// New creates a response with the given status and body.
func New(status int, body []byte) *Response {
	return &Response{
		status: status,
		header: make(http.Header),
		body:   body,
	}
}

// Text creates a 200 response with an HTML body, the conversion applied to
// handlers that return a string.
func Text(body string) *Response {
	r := New(http.StatusOK, []byte(body))
	r.header.Set("Content-Type", "text/html; charset=utf-8")
	return r
}

// JSON creates a response whose body is v encoded as JSON.
// A json.RawMessage or []byte value is sent as-is.
func JSON(status int, v any) (*Response, error) {
	var body []byte
	switch raw := v.(type) {
	case json.RawMessage:
		body = raw
	case []byte:
		body = raw
	default:
		var err error
		if body, err = json.Marshal(v); err != nil {
			return nil, fmt.Errorf("message: encode json response: %w", err)
		}
	}
	r := New(status, body)
	r.header.Set("Content-Type", "application/json")
	return r, nil
}

// Redirect creates a response that redirects to location.
// A status of 0 means 302 Found.
func Redirect(location string, status int) *Response {
	if status == 0 {
		status = http.StatusFound
	}
	r := New(status, nil)
	r.header.Set("Location", location)
	return r
}

// StatusCode returns the HTTP status code.
func (r *Response) StatusCode() int { return r.status }

// Header returns the first value of the named header.
func (r *Response) Header(name string) string { return r.header.Get(name) }

// Headers returns a copy of all response headers.
func (r *Response) Headers() http.Header { return r.header.Clone() }

// Body returns the response body.
func (r *Response) Body() []byte { return r.body }

// WithStatus returns a copy of r with a different status code.
func (r *Response) WithStatus(status int) *Response {
	c := *r
	c.status = status
	return &c
}

// WithHeader returns a copy of r with the header set.
func (r *Response) WithHeader(name, value string) *Response {
	c := *r
	c.header = r.header.Clone()
	if c.header == nil {
		c.header = make(http.Header)
	}
	c.header.Set(name, value)
	return &c
}

// WithAddedHeader returns a copy of r with value appended to the header.
func (r *Response) WithAddedHeader(name, value string) *Response {
	c := *r
	c.header = r.header.Clone()
	if c.header == nil {
		c.header = make(http.Header)
	}
	c.header.Add(name, value)
	return &c
}

// WriteTo writes the response to w. HEAD responses carry headers only.
func (r *Response) WriteTo(w http.ResponseWriter, method string) error {
	dst := w.Header()
	for k, v := range r.header {
		dst[k] = append([]string(nil), v...)
	}
	if dst.Get("Content-Length") == "" {
		dst.Set("Content-Length", strconv.Itoa(len(r.body)))
	}
	status := r.status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	if method == http.MethodHead || len(r.body) == 0 {
		return nil
	}
	if _, err := w.Write(r.body); err != nil {
		return fmt.Errorf("message: write response body: %w", err)
	}
	return nil
}
