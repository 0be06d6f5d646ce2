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

package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type route struct {
	Name    string `json:"name" validate:"required"`
	Method  string `json:"method" validate:"omitempty,http_method"`
	Pattern string `json:"pattern" validate:"required,route_pattern"`
	Handler string `json:"handler" validate:"required,handler"`
}

type routesFile struct {
	Routes []route `json:"routes" validate:"dive"`
}

type server struct {
	Addr    string `config:"addr" validate:"required,hostname_port"`
	Workers int    `config:"workers" validate:"min=1,max=64"`
}

type window struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func (w window) Validate() error {
	if w.From > w.To {
		return FieldError{Path: "from", Code: "range", Message: "must not exceed to"}
	}
	return nil
}

func TestValidate_Routes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		route     route
		wantPaths []string
	}{
		{
			name:  "valid",
			route: route{Name: "home", Method: "GET", Pattern: "/", Handler: "Pages@home"},
		},
		{
			name:  "valid invokable with params",
			route: route{Name: "post", Pattern: "/posts/{slug}-{id:\\d+}", Handler: "ShowPost"},
		},
		{
			name:      "missing name",
			route:     route{Pattern: "/", Handler: "Pages"},
			wantPaths: []string{"routes.0.name"},
		},
		{
			name:      "bad method",
			route:     route{Name: "x", Method: "FETCH", Pattern: "/", Handler: "Pages"},
			wantPaths: []string{"routes.0.method"},
		},
		{
			name:      "unbalanced pattern",
			route:     route{Name: "x", Pattern: "/posts/{slug", Handler: "Pages"},
			wantPaths: []string{"routes.0.pattern"},
		},
		{
			name:      "bad handler",
			route:     route{Name: "x", Pattern: "/", Handler: "Pages@@home"},
			wantPaths: []string{"routes.0.handler"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := Validate(&routesFile{Routes: []route{tt.route}})
			if len(tt.wantPaths) == 0 {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			require.ErrorIs(t, err, ErrValidation)

			var verr *Error
			require.ErrorAs(t, err, &verr)
			for _, p := range tt.wantPaths {
				assert.True(t, verr.Has(p), "expected error at %s, got %v", p, verr.Fields)
			}
		})
	}
}

func TestValidate_TagName(t *testing.T) {
	t.Parallel()

	v := MustNew(WithTagName("config"))
	err := v.Validate(server{Workers: 0})
	require.Error(t, err)

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("addr"))
	assert.True(t, verr.Has("workers"))

	addr := verr.GetField("addr")
	require.NotNil(t, addr)
	assert.Equal(t, "tag.required", addr.Code)
	assert.Equal(t, "is required", addr.Message)
	assert.Equal(t, "required", addr.Meta["tag"])

	assert.NoError(t, v.Validate(server{Addr: "localhost:8080", Workers: 4}))
}

func TestValidate_SelfValidator(t *testing.T) {
	t.Parallel()

	err := Validate(window{From: 5, To: 1})
	require.Error(t, err)

	var verr *Error
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "range", verr.Fields[0].Code)
	assert.Equal(t, "from: must not exceed to", err.Error())

	assert.NoError(t, Validate(window{From: 1, To: 5}))
}

func TestValidate_Nil(t *testing.T) {
	t.Parallel()

	var r *route
	require.ErrorIs(t, Validate(nil), ErrCannotValidateNilValue)
	require.ErrorIs(t, Validate(r), ErrCannotValidateNilValue)
}

func TestValidate_MaxErrors(t *testing.T) {
	t.Parallel()

	v := MustNew(WithMaxErrors(2))
	err := v.Validate(&routesFile{Routes: []route{{}, {}, {}}})
	require.Error(t, err)

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 2)
	assert.True(t, verr.Truncated)
	assert.True(t, strings.HasSuffix(err.Error(), "(truncated)"))
}

func TestValidate_CustomTagAndMessages(t *testing.T) {
	t.Parallel()

	type slugged struct {
		Slug string `json:"slug" validate:"slug"`
	}

	v := MustNew(
		WithCustomTag("slug", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return s != "" && strings.ToLower(s) == s && !strings.Contains(s, " ")
		}),
		WithMessages(map[string]string{"slug": "must be a lowercase slug"}),
	)

	err := v.Validate(slugged{Slug: "Hello World"})
	require.Error(t, err)
	assert.Equal(t, "slug: must be a lowercase slug", err.Error())
	assert.NoError(t, v.Validate(slugged{Slug: "hello-world"}))
}

func TestNew_InvalidOptions(t *testing.T) {
	t.Parallel()

	_, err := New(WithMaxErrors(-1))
	require.ErrorIs(t, err, ErrInvalidOption)

	_, err = New(WithTagName(""))
	require.ErrorIs(t, err, ErrInvalidOption)

	assert.Panics(t, func() { MustNew(WithTagName("")) })
}

func TestError(t *testing.T) {
	t.Parallel()

	var verr Error
	assert.False(t, verr.HasErrors())
	assert.Equal(t, "validation failed", verr.Error())

	verr.Add("b", "tag.required", "is required", nil)
	verr.AddError(FieldError{Path: "a", Code: "x", Message: "bad"})
	verr.AddError(&Error{Fields: []FieldError{{Path: "c", Code: "y", Message: "worse"}}})
	verr.AddError(errors.New("plain"))
	verr.AddError(nil)
	verr.Sort()

	require.Len(t, verr.Fields, 4)
	assert.Equal(t, []string{"", "a", "b", "c"}, []string{
		verr.Fields[0].Path, verr.Fields[1].Path, verr.Fields[2].Path, verr.Fields[3].Path,
	})
	assert.Equal(t, 422, verr.HTTPStatus())
	assert.Equal(t, "validation_error", verr.Code())
	assert.Equal(t, "validation failed: plain; a: bad; b: is required; c: worse", verr.Error())
}
