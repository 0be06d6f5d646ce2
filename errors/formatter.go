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

package errors

import (
	"encoding/json"
	"errors"
	"net/http"

	"fram.dev/binding"
	"fram.dev/message"
)

// Formatter defines how errors are formatted in HTTP responses.
type Formatter interface {
	// Format converts an error into response components. req may be nil.
	Format(req *message.Request, err error) Response
}

// Response represents a formatted error response.
type Response struct {
	// Status is the HTTP status code.
	Status int

	// ContentType is the Content-Type header value.
	ContentType string

	// Body is the response body, marshaled to JSON by Message.
	Body any

	// Headers contains additional headers to set (optional).
	Headers http.Header
}

// Message encodes r as a *message.Response.
func (r Response) Message() (*message.Response, error) {
	body, err := json.Marshal(r.Body)
	if err != nil {
		return nil, err
	}
	resp := message.New(r.Status, body).WithHeader("Content-Type", r.ContentType)
	for k, vs := range r.Headers {
		for _, v := range vs {
			resp = resp.WithAddedHeader(k, v)
		}
	}
	return resp, nil
}

// ErrorType allows errors to declare their own HTTP status code.
//
// Example:
//
//	func (e *QuotaError) HTTPStatus() int {
//		return http.StatusTooManyRequests
//	}
type ErrorType interface {
	error
	// HTTPStatus returns the HTTP status code for this error.
	HTTPStatus() int
}

// ErrorDetails allows errors to provide additional structured information.
type ErrorDetails interface {
	error
	// Details returns structured information about the error.
	Details() any
}

// ErrorCode allows errors to provide a machine-readable code.
type ErrorCode interface {
	error
	// Code returns a machine-readable error code.
	Code() string
}

// NewRFC9457 creates a new RFC9457 formatter.
// The baseURL parameter is prepended to problem type slugs to create full URIs.
func NewRFC9457(baseURL string) *RFC9457 {
	return &RFC9457{
		BaseURL: baseURL,
	}
}

// NewSimple creates a new Simple formatter.
func NewSimple() *Simple {
	return &Simple{}
}

// WithStatus wraps an error with an explicit HTTP status code.
// If err is nil, the status text is used as the error message.
//
// Example:
//
//	return nil, errors.WithStatus(err, http.StatusServiceUnavailable)
func WithStatus(err error, status int) error {
	return &statusError{err: err, status: status}
}

type statusError struct {
	err    error
	status int
}

func (e *statusError) Error() string {
	if e.err == nil {
		return http.StatusText(e.status)
	}
	return e.err.Error()
}

func (e *statusError) Unwrap() error {
	return e.err
}

func (e *statusError) HTTPStatus() int {
	return e.status
}

// DefaultStatus returns the status declared by err through ErrorType, the
// status of a known request body error, or 500.
func DefaultStatus(err error) int {
	var typed ErrorType
	if errors.As(err, &typed) {
		return typed.HTTPStatus()
	}

	switch {
	case errors.Is(err, binding.ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, binding.ErrUnsupportedContentType):
		return http.StatusUnsupportedMediaType
	}
	var decodeErr *binding.DecodeError
	if errors.As(err, &decodeErr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// publicDetail returns the message safe to show for status.
func publicDetail(status int, err error) string {
	if status >= http.StatusInternalServerError {
		return http.StatusText(status)
	}
	return err.Error()
}
