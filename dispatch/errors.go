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

package dispatch

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingBindableParameter indicates a handler parameter no request
	// source could supply. Errors of type *MissingParameterError match it.
	ErrMissingBindableParameter = errors.New("missing bindable parameter")

	// ErrInvalidHandlerReturn indicates a handler returned something other
	// than a string or a *message.Response.
	ErrInvalidHandlerReturn = errors.New("handler must return a string or a *message.Response")

	// ErrHandlerNotFound indicates a descriptor naming an unregistered class or method.
	ErrHandlerNotFound = errors.New("handler not found")

	// ErrInvalidDescriptor indicates a malformed handler descriptor.
	ErrInvalidDescriptor = errors.New("invalid handler descriptor")

	// ErrNoMatchedRoute indicates Handle was called for a request that did
	// not go through Dispatch.
	ErrNoMatchedRoute = errors.New("request carries no matched route")

	// ErrDuplicateMethod indicates a method registered twice for a class.
	ErrDuplicateMethod = errors.New("method already registered")

	// ErrMissingDependency indicates a Dispatcher built without a required collaborator.
	ErrMissingDependency = errors.New("missing dispatcher dependency")

	// ErrParameterConversion indicates a bound value that could not be
	// coerced to its parameter kind. Errors of type *ConversionError match it.
	ErrParameterConversion = errors.New("parameter conversion failed")
)

// MissingParameterError reports a handler parameter that could not be bound.
type MissingParameterError struct {
	Method    string
	Class     string
	Attribute string
}

// Error implements the error interface.
func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("dispatch: method %s of %s expects an attribute %q which does not exist in the request",
		e.Method, e.Class, e.Attribute)
}

// Is reports whether target is ErrMissingBindableParameter.
func (e *MissingParameterError) Is(target error) bool {
	return target == ErrMissingBindableParameter
}

// Code returns a machine-readable error code.
func (e *MissingParameterError) Code() string {
	return "missing_bindable_parameter"
}

// ConversionError reports a bound value that does not fit its parameter kind.
type ConversionError struct {
	Method string
	Class  string
	Param  string
	Kind   Kind
	Value  any
	Err    error
}

// Error implements the error interface.
func (e *ConversionError) Error() string {
	return fmt.Sprintf("dispatch: method %s of %s: parameter %q: cannot convert %T to %s: %v",
		e.Method, e.Class, e.Param, e.Value, e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConversionError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrParameterConversion.
func (e *ConversionError) Is(target error) bool {
	return target == ErrParameterConversion
}

// Code returns a machine-readable error code.
func (e *ConversionError) Code() string {
	return "parameter_conversion_failed"
}
