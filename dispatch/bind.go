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
	"fmt"
	"maps"

	"fram.dev/binding"
	"fram.dev/container"
	"fram.dev/message"
)

// binder resolves the arguments of one handler call.
type binder struct {
	target    Target
	req       *message.Request
	container container.Container

	// lazily merged sources
	attrs map[string]any
	body  map[string]any
}

func newBinder(target Target, req *message.Request, c container.Container) *binder {
	return &binder{target: target, req: req, container: c}
}

// bind returns the arguments for params, in order.
func (b *binder) bind(params []Param) (Args, error) {
	values := make([]any, len(params))
	for i, p := range params {
		v, err := b.bindOne(p)
		if err != nil {
			return Args{}, err
		}
		values[i] = v
	}
	return Args{values: values}, nil
}

func (b *binder) bindOne(p Param) (any, error) {
	if v, ok := b.attributes()[p.Name]; ok {
		return b.coerce(p, v)
	}

	switch p.Kind {
	case KindRequest:
		return b.req, nil
	case KindContainer:
		return b.container, nil
	}

	if v, ok := b.parsedBody()[p.Name]; ok {
		return b.coerce(p, v)
	}

	if p.Nullable {
		return nil, nil
	}

	return nil, &MissingParameterError{
		Method:    b.target.Method,
		Class:     b.target.Class,
		Attribute: p.Name,
	}
}

// attributes merges the query string with request attributes.
// Attributes win on equal names.
func (b *binder) attributes() map[string]any {
	if b.attrs == nil {
		b.attrs = b.req.QueryParams()
		maps.Copy(b.attrs, b.req.Attributes())
	}
	return b.attrs
}

// parsedBody merges the parsed body with uploaded files. Files win on
// equal names.
func (b *binder) parsedBody() map[string]any {
	if b.body == nil {
		b.body = b.req.ParsedBody()
		if b.body == nil {
			b.body = make(map[string]any)
		}
		for name, f := range b.req.UploadedFiles() {
			b.body[name] = f
		}
	}
	return b.body
}

func (b *binder) coerce(p Param, v any) (any, error) {
	if v == nil {
		if p.Nullable || p.Kind == KindAny {
			return nil, nil
		}
		return nil, b.conversionError(p, v, fmt.Errorf("nil value"))
	}

	var (
		out any
		err error
	)
	switch p.Kind {
	case KindAny:
		return v, nil
	case KindString:
		out, err = binding.String(v)
	case KindInt:
		out, err = binding.Int(v)
	case KindInt64:
		out, err = binding.Int64(v)
	case KindFloat:
		out, err = binding.Float(v)
	case KindBool:
		out, err = binding.Bool(v)
	case KindFile:
		f, ok := v.(*binding.File)
		if !ok {
			err = fmt.Errorf("%T is not an uploaded file", v)
		}
		out = f
	case KindRequest:
		r, ok := v.(*message.Request)
		if !ok {
			err = fmt.Errorf("%T is not a request", v)
		}
		out = r
	case KindContainer:
		c, ok := v.(container.Container)
		if !ok {
			err = fmt.Errorf("%T is not a container", v)
		}
		out = c
	default:
		err = fmt.Errorf("unknown kind %d", int(p.Kind))
	}
	if err != nil {
		return nil, b.conversionError(p, v, err)
	}
	return out, nil
}

func (b *binder) conversionError(p Param, v any, err error) error {
	return &ConversionError{
		Method: b.target.Method,
		Class:  b.target.Class,
		Param:  p.Name,
		Kind:   p.Kind,
		Value:  v,
		Err:    err,
	}
}
