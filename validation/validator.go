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
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"fram.dev/router/compiler"
)

// SelfValidator is implemented by types with checks tags cannot express.
type SelfValidator interface {
	Validate() error
}

// Option configures a Validator.
type Option func(*config)

type customTag struct {
	name string
	fn   validator.Func
}

type config struct {
	tagName    string
	maxErrors  int
	customTags []customTag
	messages   map[string]string
}

// WithTagName names the struct tag used for field paths (default "json").
func WithTagName(name string) Option {
	return func(c *config) { c.tagName = name }
}

// WithMaxErrors caps the number of reported field errors. Zero means no cap.
func WithMaxErrors(n int) Option {
	return func(c *config) { c.maxErrors = n }
}

// WithCustomTag registers an additional validation tag.
func WithCustomTag(name string, fn validator.Func) Option {
	return func(c *config) { c.customTags = append(c.customTags, customTag{name: name, fn: fn}) }
}

// WithMessages overrides the message for tags, e.g. {"required": "must be set"}.
func WithMessages(messages map[string]string) Option {
	return func(c *config) {
		if c.messages == nil {
			c.messages = make(map[string]string, len(messages))
		}
		for k, v := range messages {
			c.messages[k] = v
		}
	}
}

// Validator validates structs. It is safe for concurrent use.
type Validator struct {
	cfg      *config
	validate *validator.Validate
}

// New creates a Validator.
func New(opts ...Option) (*Validator, error) {
	cfg := &config{tagName: "json"}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.maxErrors < 0 {
		return nil, fmt.Errorf("%w: max errors must be non-negative", ErrInvalidOption)
	}
	if cfg.tagName == "" {
		return nil, fmt.Errorf("%w: empty tag name", ErrInvalidOption)
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	tagName := cfg.tagName
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get(tagName), ",")
		switch name {
		case "-":
			return ""
		case "":
			return fld.Name
		}
		return name
	})

	builtins := []customTag{
		{name: "http_method", fn: isHTTPMethod},
		{name: "route_pattern", fn: isRoutePattern},
		{name: "handler", fn: isHandler},
	}
	for _, ct := range append(builtins, cfg.customTags...) {
		if err := v.RegisterValidation(ct.name, ct.fn); err != nil {
			return nil, fmt.Errorf("register tag %q: %w", ct.name, err)
		}
	}

	return &Validator{cfg: cfg, validate: v}, nil
}

// MustNew is like New but panics on error.
func MustNew(opts ...Option) *Validator {
	v, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("validation.MustNew: %v", err))
	}
	return v
}

var (
	defaultOnce      sync.Once
	defaultValidator *Validator
)

// Validate validates val with a shared default Validator.
func Validate(val any) error {
	defaultOnce.Do(func() {
		defaultValidator = MustNew()
	})
	return defaultValidator.Validate(val)
}

// Validate runs tag checks, then SelfValidator. It returns nil or an *Error.
func (v *Validator) Validate(val any) error {
	if val == nil {
		return ErrCannotValidateNilValue
	}
	rv := reflect.ValueOf(val)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return ErrCannotValidateNilValue
	}

	var result Error
	if reflect.Indirect(rv).Kind() == reflect.Struct {
		if err := v.validate.Struct(val); err != nil {
			var verrs validator.ValidationErrors
			if !errors.As(err, &verrs) {
				return fmt.Errorf("validation: %w", err)
			}
			v.addTagErrors(&result, verrs)
		}
	}

	if sv, ok := val.(SelfValidator); ok && !result.Truncated {
		result.AddError(sv.Validate())
	}

	if !result.HasErrors() {
		return nil
	}
	if v.cfg.maxErrors > 0 && len(result.Fields) > v.cfg.maxErrors {
		result.Fields = result.Fields[:v.cfg.maxErrors]
		result.Truncated = true
	}
	result.Sort()
	return &result
}

func (v *Validator) addTagErrors(result *Error, errs validator.ValidationErrors) {
	for _, e := range errs {
		path := e.Namespace()
		// drop the top-level struct name
		if _, rest, found := strings.Cut(path, "."); found {
			path = rest
		}
		path = normalizePath(path)

		result.Add(path, "tag."+e.Tag(), v.message(e), map[string]any{
			"tag":   e.Tag(),
			"param": e.Param(),
			"value": fmt.Sprint(e.Value()),
		})
		if v.cfg.maxErrors > 0 && len(result.Fields) >= v.cfg.maxErrors {
			result.Truncated = true
			return
		}
	}
}

// normalizePath turns "routes[2].pattern" into "routes.2.pattern".
func normalizePath(ns string) string {
	ns = strings.ReplaceAll(ns, "[", ".")
	return strings.ReplaceAll(ns, "]", "")
}

func (v *Validator) message(e validator.FieldError) string {
	if msg, ok := v.cfg.messages[e.Tag()]; ok {
		return msg
	}

	switch e.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be a valid URL"
	case "min":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", e.Param())
		}
		return fmt.Sprintf("must be at least %s", e.Param())
	case "max":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", e.Param())
		}
		return fmt.Sprintf("must be at most %s", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", e.Param())
	case "hostname_port":
		return "must be a host:port address"
	case "http_method":
		return "must be an HTTP method"
	case "route_pattern":
		return "must be a valid route pattern"
	case "handler":
		return `must be "Class" or "Class@method"`
	default:
		return fmt.Sprintf("failed validation (%s)", e.Tag())
	}
}

var reHandler = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.\\/]*(@[A-Za-z_][A-Za-z0-9_]*)?$`)

func isHandler(fl validator.FieldLevel) bool {
	return reHandler.MatchString(fl.Field().String())
}

func isHTTPMethod(fl validator.FieldLevel) bool {
	switch strings.ToUpper(fl.Field().String()) {
	case http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions:
		return true
	}
	return false
}

func isRoutePattern(fl validator.FieldLevel) bool {
	_, err := compiler.CompileRoute(http.MethodGet, fl.Field().String(), nil)
	return err == nil
}
