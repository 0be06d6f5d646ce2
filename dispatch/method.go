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
	"fram.dev/binding"
	"fram.dev/container"
	"fram.dev/message"
)

// Kind is the declared type of a handler parameter.
type Kind int

const (
	// KindAny passes the bound value through unchanged.
	KindAny Kind = iota
	KindString
	KindInt
	KindInt64
	KindFloat
	KindBool
	// KindFile expects an uploaded *binding.File.
	KindFile
	// KindRequest receives the live *message.Request.
	KindRequest
	// KindContainer receives the service container.
	KindContainer
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindAny:
		return "any"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindInt64:
		return "int64"
	case KindFloat:
		return "float64"
	case KindBool:
		return "bool"
	case KindFile:
		return "file"
	case KindRequest:
		return "request"
	case KindContainer:
		return "container"
	default:
		return "unknown"
	}
}

// Param describes one formal parameter of a handler method.
type Param struct {
	Name     string
	Kind     Kind
	Nullable bool
}

// OrNil returns a nullable copy of p.
func (p Param) OrNil() Param {
	p.Nullable = true
	return p
}

// CallFunc invokes a handler method on target with bound arguments.
type CallFunc func(target any, args Args) (any, error)

// Method describes a callable handler method.
type Method struct {
	Name   string
	Params []Param
	Call   CallFunc
}

// NewMethod describes the method name with the given parameters.
func NewMethod(name string, call CallFunc, params ...Param) *Method {
	return &Method{Name: name, Params: params, Call: call}
}

// Invokable describes the entry point used for descriptors without "@".
func Invokable(call CallFunc, params ...Param) *Method {
	return NewMethod(InvokeMethod, call, params...)
}

// Args holds the arguments bound for a call, in parameter order.
// Accessors return the zero value for nil (unbound nullable) arguments and
// panic on a type that does not match the parameter kind, which binding
// guarantees cannot happen for well-declared methods.
type Args struct {
	values []any
}

// NewArgs builds Args from values. It is mainly useful in tests.
func NewArgs(values ...any) Args {
	return Args{values: values}
}

// Len returns the number of arguments.
func (a Args) Len() int { return len(a.values) }

// Value returns argument i as bound.
func (a Args) Value(i int) any { return a.values[i] }

// IsNil reports whether argument i is nil.
func (a Args) IsNil(i int) bool { return a.values[i] == nil }

// Values returns a copy of all arguments.
func (a Args) Values() []any { return append([]any(nil), a.values...) }

// String returns argument i as a string.
func (a Args) String(i int) string { return as[string](a, i) }

// Int returns argument i as an int.
func (a Args) Int(i int) int { return as[int](a, i) }

// Int64 returns argument i as an int64.
func (a Args) Int64(i int) int64 { return as[int64](a, i) }

// Float returns argument i as a float64.
func (a Args) Float(i int) float64 { return as[float64](a, i) }

// Bool returns argument i as a bool.
func (a Args) Bool(i int) bool { return as[bool](a, i) }

// File returns argument i as an uploaded file, or nil.
func (a Args) File(i int) *binding.File { return as[*binding.File](a, i) }

// Request returns argument i as the request, or nil.
func (a Args) Request(i int) *message.Request { return as[*message.Request](a, i) }

// Container returns argument i as the container, or nil.
func (a Args) Container(i int) container.Container { return as[container.Container](a, i) }

func as[T any](a Args, i int) T {
	v := a.values[i]
	if v == nil {
		var zero T
		return zero
	}
	return v.(T)
}
