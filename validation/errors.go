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

package validation

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// ErrValidation is matched by every validation failure.
var ErrValidation = errors.New("validation")

var (
	// ErrCannotValidateNilValue is returned when attempting to validate a nil value.
	ErrCannotValidateNilValue = errors.New("cannot validate nil value")

	// ErrInvalidOption is returned by New for inconsistent options.
	ErrInvalidOption = errors.New("invalid validation option")
)

// FieldError is a single failed check.
type FieldError struct {
	Path    string         `json:"path"`           // dotted path, e.g. "routes.2.pattern"
	Code    string         `json:"code"`           // stable code, e.g. "tag.required"
	Message string         `json:"message"`        // human-readable message
	Meta    map[string]any `json:"meta,omitempty"` // tag, param, value
}

// Error returns "path: message", or the message alone without a path.
func (e FieldError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Unwrap returns [ErrValidation].
func (e FieldError) Unwrap() error {
	return ErrValidation
}

// Error collects the field errors of one validation.
//
//nolint:recvcheck // value receivers for the error interface, pointer receivers to mutate
type Error struct {
	Fields    []FieldError `json:"errors"`
	Truncated bool         `json:"truncated,omitempty"`
}

// Error returns a formatted error message.
func (v Error) Error() string {
	switch len(v.Fields) {
	case 0:
		return "validation failed"
	case 1:
		return v.Fields[0].Error()
	}

	msgs := make([]string, 0, len(v.Fields))
	for _, f := range v.Fields {
		msgs = append(msgs, f.Error())
	}
	suffix := ""
	if v.Truncated {
		suffix = " (truncated)"
	}
	return fmt.Sprintf("validation failed: %s%s", strings.Join(msgs, "; "), suffix)
}

// Unwrap returns [ErrValidation].
func (v Error) Unwrap() error {
	return ErrValidation
}

// HTTPStatus implements fram.dev/errors.ErrorType.
func (v Error) HTTPStatus() int {
	return http.StatusUnprocessableEntity
}

// Details implements fram.dev/errors.ErrorDetails.
func (v Error) Details() any {
	return v.Fields
}

// Code implements fram.dev/errors.ErrorCode.
func (v Error) Code() string {
	return "validation_error"
}

// Add appends a field error.
func (v *Error) Add(path, code, message string, meta map[string]any) {
	v.Fields = append(v.Fields, FieldError{Path: path, Code: code, Message: message, Meta: meta})
}

// AddError appends err, flattening FieldError and Error values.
func (v *Error) AddError(err error) {
	var (
		fe  FieldError
		ve  Error
		pve *Error
	)
	switch {
	case err == nil:
	case errors.As(err, &pve):
		v.Fields = append(v.Fields, pve.Fields...)
		v.Truncated = v.Truncated || pve.Truncated
	case errors.As(err, &ve):
		v.Fields = append(v.Fields, ve.Fields...)
		v.Truncated = v.Truncated || ve.Truncated
	case errors.As(err, &fe):
		v.Fields = append(v.Fields, fe)
	default:
		v.Fields = append(v.Fields, FieldError{Code: "validation_error", Message: err.Error()})
	}
}

// HasErrors reports whether any field failed.
func (v Error) HasErrors() bool {
	return len(v.Fields) > 0
}

// Has reports whether path failed.
func (v Error) Has(path string) bool {
	return v.GetField(path) != nil
}

// GetField returns the first error for path, or nil.
func (v Error) GetField(path string) *FieldError {
	for i := range v.Fields {
		if v.Fields[i].Path == path {
			return &v.Fields[i]
		}
	}
	return nil
}

// Sort orders errors by path, then code.
func (v *Error) Sort() {
	sort.SliceStable(v.Fields, func(i, j int) bool {
		if v.Fields[i].Path != v.Fields[j].Path {
			return v.Fields[i].Path < v.Fields[j].Path
		}
		return v.Fields[i].Code < v.Fields[j].Code
	})
}
