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

// Package message provides the immutable request and response values that
// flow through routing, middleware and dispatch.
//
// A [Request] is never mutated in place: every With* method returns a copy,
// so middleware can decorate a request without affecting the caller's value.
//
//	req, err := message.FromHTTP(r)
//	if err != nil {
//	    return err
//	}
//	req = req.WithAttribute("ipAddress", "10.0.0.1")
package message

import (
	"context"
	"maps"
	"net/http"
	"net/url"

	"fram.dev/binding"
)

// Request is an immutable view of an incoming HTTP request.
type Request struct {
	ctx        context.Context
	method     string
	url        *url.URL
	header     http.Header
	query      url.Values
	body       map[string]any
	files      map[string][]*binding.File
	attributes map[string]any
	remoteAddr string
	raw        *http.Request
}

// NewRequest builds a request for method and target without a body.
// target may be a path with a query string or an absolute URL.
// It panics if target cannot be parsed.
func NewRequest(method, target string) *Request {
	u, err := url.Parse(target)
	if err != nil {
		panic("message: invalid request target " + target + ": " + err.Error())
	}
	if u.Path == "" {
		u.Path = "/"
	}
	return &Request{
		ctx:    context.Background(),
		method: method,
		url:    u,
		header: make(http.Header),
		query:  u.Query(),
	}
}

// FromHTTP converts an http.Request, decoding its body with [binding.Decode].
func FromHTTP(r *http.Request, opts ...binding.Option) (*Request, error) {
	body, err := binding.Decode(r, opts...)
	if err != nil {
		return nil, err
	}
	u := *r.URL
	return &Request{
		ctx:        r.Context(),
		method:     r.Method,
		url:        &u,
		header:     r.Header.Clone(),
		query:      r.URL.Query(),
		body:       body.Fields,
		files:      body.Files,
		remoteAddr: r.RemoteAddr,
		raw:        r,
	}, nil
}

func (r *Request) clone() *Request {
	c := *r
	return &c
}

// Context returns the request context. It is never nil.
func (r *Request) Context() context.Context {
	if r.ctx == nil {
		return context.Background()
	}
	return r.ctx
}

// Method returns the HTTP method.
func (r *Request) Method() string { return r.method }

// URL returns a copy of the request URL.
func (r *Request) URL() *url.URL {
	u := *r.url
	return &u
}

// Path returns the URL path.
func (r *Request) Path() string { return r.url.Path }

// Header returns the first value of the named header.
func (r *Request) Header(name string) string { return r.header.Get(name) }

// Headers returns a copy of all request headers.
func (r *Request) Headers() http.Header { return r.header.Clone() }

// RemoteAddr returns the network address of the client, as set by the server.
func (r *Request) RemoteAddr() string { return r.remoteAddr }

// HTTPRequest returns the http.Request this request was built from, or nil.
func (r *Request) HTTPRequest() *http.Request { return r.raw }

// Query returns a copy of the parsed query string.
func (r *Request) Query() url.Values {
	out := make(url.Values, len(r.query))
	for k, v := range r.query {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// QueryParams returns the query string as a field map, using the same
// flattening rules as form bodies.
func (r *Request) QueryParams() map[string]any {
	return binding.Values(r.query)
}

// ParsedBody returns a copy of the decoded body fields.
func (r *Request) ParsedBody() map[string]any {
	return maps.Clone(r.body)
}

// UploadedFiles returns the first uploaded file per form field.
func (r *Request) UploadedFiles() map[string]*binding.File {
	out := make(map[string]*binding.File, len(r.files))
	for name, files := range r.files {
		if len(files) > 0 {
			out[name] = files[0]
		}
	}
	return out
}

// Attribute returns the named attribute.
func (r *Request) Attribute(name string) (any, bool) {
	v, ok := r.attributes[name]
	return v, ok
}

// AttributeOr returns the named attribute or def when it is absent.
func (r *Request) AttributeOr(name string, def any) any {
	if v, ok := r.attributes[name]; ok {
		return v
	}
	return def
}

// Attributes returns a copy of all attributes.
func (r *Request) Attributes() map[string]any {
	out := make(map[string]any, len(r.attributes))
	maps.Copy(out, r.attributes)
	return out
}

// WithAttribute returns a copy of r with the attribute set.
func (r *Request) WithAttribute(name string, value any) *Request {
	c := r.clone()
	c.attributes = make(map[string]any, len(r.attributes)+1)
	maps.Copy(c.attributes, r.attributes)
	c.attributes[name] = value
	return c
}

// WithAttributes returns a copy of r with every entry of attrs set.
func (r *Request) WithAttributes(attrs map[string]any) *Request {
	c := r.clone()
	c.attributes = make(map[string]any, len(r.attributes)+len(attrs))
	maps.Copy(c.attributes, r.attributes)
	maps.Copy(c.attributes, attrs)
	return c
}

// WithoutAttribute returns a copy of r without the named attribute.
func (r *Request) WithoutAttribute(name string) *Request {
	c := r.clone()
	c.attributes = maps.Clone(r.attributes)
	delete(c.attributes, name)
	return c
}

// WithMethod returns a copy of r with a different method.
func (r *Request) WithMethod(method string) *Request {
	c := r.clone()
	c.method = method
	return c
}

// WithPath returns a copy of r with a different URL path.
func (r *Request) WithPath(path string) *Request {
	c := r.clone()
	u := *r.url
	u.Path = path
	u.RawPath = ""
	c.url = &u
	return c
}

// WithParsedBody returns a copy of r with the body fields replaced.
func (r *Request) WithParsedBody(body map[string]any) *Request {
	c := r.clone()
	c.body = maps.Clone(body)
	return c
}

// WithHeader returns a copy of r with the header set.
func (r *Request) WithHeader(name, value string) *Request {
	c := r.clone()
	c.header = r.header.Clone()
	if c.header == nil {
		c.header = make(http.Header)
	}
	c.header.Set(name, value)
	return c
}

// WithRemoteAddr returns a copy of r with a different client address.
func (r *Request) WithRemoteAddr(addr string) *Request {
	c := r.clone()
	c.remoteAddr = addr
	return c
}

// WithUploadedFiles returns a copy of r with the uploaded files replaced.
func (r *Request) WithUploadedFiles(files map[string][]*binding.File) *Request {
	c := r.clone()
	c.files = maps.Clone(files)
	return c
}

// WithContext returns a copy of r with ctx as its context.
// It panics if ctx is nil.
func (r *Request) WithContext(ctx context.Context) *Request {
	if ctx == nil {
		panic("message: nil context")
	}
	c := r.clone()
	c.ctx = ctx
	return c
}
