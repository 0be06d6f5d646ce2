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

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"sync"
	"time"

	"dario.cat/mergo"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cast"

	"fram.dev/config/codec"
	"fram.dev/config/source"
	"fram.dev/validation"
)

// DefaultTag is the struct tag read when binding.
const DefaultTag = "config"

// Option configures a Config.
type Option func(c *Config) error

// Config loads configuration from ordered sources. Later sources override
// earlier ones and keys are case-insensitive.
//
// Config is safe for concurrent use.
type Config struct {
	values     map[string]any
	sources    []Source
	binding    any
	tagName    string
	validators []func(map[string]any) error
	mu         sync.RWMutex
}

// WithSource adds a source.
func WithSource(src Source) Option {
	return func(c *Config) error {
		if src == nil {
			return ErrNilSource
		}
		c.sources = append(c.sources, src)
		return nil
	}
}

// WithFile loads path, picking the codec from its extension.
// Environment variables in path are expanded.
//
//	config.WithFile("${FRAM_CONFIG_DIR}/fram.yaml")
func WithFile(path string) Option {
	return func(c *Config) error {
		path = os.ExpandEnv(path)
		typ, err := codec.ForPath(path)
		if err != nil {
			return NewError("file", "detect-format", err)
		}
		return WithFileAs(path, typ)(c)
	}
}

// WithFileAs loads path with an explicit codec.
func WithFileAs(path string, typ codec.Type) Option {
	return func(c *Config) error {
		dec, err := codec.Get(typ)
		if err != nil {
			return NewError("file", "get-decoder", err)
		}
		c.sources = append(c.sources, source.NewFile(os.ExpandEnv(path), dec))
		return nil
	}
}

// WithContent decodes data with the given codec.
func WithContent(data []byte, typ codec.Type) Option {
	return func(c *Config) error {
		dec, err := codec.Get(typ)
		if err != nil {
			return NewError("content", "get-decoder", err)
		}
		c.sources = append(c.sources, source.NewContent(data, dec))
		return nil
	}
}

// WithEnv loads environment variables with prefix. A double underscore
// nests keys: FRAM_SERVER__ADDR becomes server.addr.
func WithEnv(prefix string) Option {
	return func(c *Config) error {
		c.sources = append(c.sources, source.NewEnv(prefix))
		return nil
	}
}

// WithBinding binds the loaded values into v, which must be a pointer to a
// struct. The struct is validated before it is updated.
func WithBinding(v any) Option {
	return func(c *Config) error {
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
			return fmt.Errorf("%w: got %T", ErrInvalidBinding, v)
		}
		c.binding = v
		return nil
	}
}

// WithTag sets the struct tag used for binding (default "config").
func WithTag(tagName string) Option {
	return func(c *Config) error {
		if tagName == "" {
			return fmt.Errorf("%w: empty tag name", ErrInvalidBinding)
		}
		c.tagName = tagName
		return nil
	}
}

// WithValidator adds a check over the merged values, run before binding.
func WithValidator(fn func(map[string]any) error) Option {
	return func(c *Config) error {
		if fn != nil {
			c.validators = append(c.validators, fn)
		}
		return nil
	}
}

// New creates a Config. Nothing is read until Load.
func New(options ...Option) (*Config, error) {
	c := &Config{tagName: DefaultTag}
	for _, opt := range options {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// MustNew is like New but panics on error.
func MustNew(options ...Option) *Config {
	c, err := New(options...)
	if err != nil {
		panic(fmt.Sprintf("config.MustNew: %v", err))
	}
	return c
}

// Load reads every source, merges them, runs validators and updates the
// binding. Values are replaced only when everything succeeds.
func (c *Config) Load(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context cannot be nil")
	}

	values, err := c.loadSources(ctx)
	if err != nil {
		return err
	}

	for i, fn := range c.validators {
		if err = runValidator(fn, values); err != nil {
			return NewError(fmt.Sprintf("validator[%d]", i), "validate", err)
		}
	}

	var bound reflect.Value
	if c.binding != nil {
		if bound, err = c.decode(values); err != nil {
			return err
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if bound.IsValid() {
		reflect.ValueOf(c.binding).Elem().Set(bound.Elem())
	}
	c.values = values
	return nil
}

// MustLoad is like Load but panics on error.
func (c *Config) MustLoad(ctx context.Context) {
	if err := c.Load(ctx); err != nil {
		panic(err)
	}
}

func runValidator(fn func(map[string]any) error, values map[string]any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("validator panic: %v", r)
		}
	}()
	return fn(values)
}

func (c *Config) loadSources(ctx context.Context) (map[string]any, error) {
	merged := make(map[string]any)
	for i, src := range c.sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		conf, err := src.Load(ctx)
		if err != nil {
			return nil, NewError(sourceName(i, src), "load", err)
		}
		if conf == nil {
			continue
		}
		if err = mergo.Map(&merged, normalizeMapKeys(conf), mergo.WithOverride); err != nil {
			return nil, NewError(sourceName(i, src), "merge", err)
		}
	}
	return merged, nil
}

func sourceName(i int, src Source) string {
	if s, ok := src.(fmt.Stringer); ok {
		return fmt.Sprintf("source[%d] %s", i, s)
	}
	return fmt.Sprintf("source[%d]", i)
}

// normalizeMapKeys lowercases keys recursively.
func normalizeMapKeys(m map[string]any) map[string]any {
	normalized := make(map[string]any, len(m))
	for k, v := range m {
		switch val := v.(type) {
		case map[string]any:
			v = normalizeMapKeys(val)
		case map[any]any:
			v = normalizeMapKeys(cast.ToStringMap(val))
		}
		normalized[strings.ToLower(k)] = v
	}
	return normalized
}

// decode binds values into a fresh copy of the binding type, applies
// defaults and validates it.
func (c *Config) decode(values map[string]any) (reflect.Value, error) {
	target := reflect.New(reflect.TypeOf(c.binding).Elem())

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          c.tagName,
		Squash:           true,
		WeaklyTypedInput: true,
		Result:           target.Interface(),
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
			mapstructure.StringToTimeHookFunc(time.RFC3339),
			mapstructure.StringToURLHookFunc(),
		),
	})
	if err != nil {
		return reflect.Value{}, NewError("binding", "decode", err)
	}
	if err = decoder.Decode(values); err != nil {
		return reflect.Value{}, NewError("binding", "decode", err)
	}
	if err = setDefaults(target.Elem()); err != nil {
		return reflect.Value{}, NewError("binding", "defaults", err)
	}

	v, err := validation.New(validation.WithTagName(c.tagName))
	if err != nil {
		return reflect.Value{}, NewError("binding", "validate", err)
	}
	if err = v.Validate(target.Interface()); err != nil {
		return reflect.Value{}, NewError("binding", "validate", err)
	}
	return target, nil
}

// setDefaults fills zero fields from their `default` tag, recursing into
// nested structs.
func setDefaults(val reflect.Value) error {
	typ := val.Type()
	for i := range val.NumField() {
		field := val.Field(i)
		fieldType := typ.Field(i)
		if !field.CanSet() {
			continue
		}

		if field.Kind() == reflect.Struct && field.Type() != reflect.TypeFor[time.Time]() {
			if err := setDefaults(field); err != nil {
				return err
			}
			continue
		}

		tag := fieldType.Tag.Get("default")
		if tag == "" || !field.IsZero() {
			continue
		}
		if err := setDefaultValue(field, tag); err != nil {
			return fmt.Errorf("field %s: %w", fieldType.Name, err)
		}
	}
	return nil
}

func setDefaultValue(field reflect.Value, tag string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(tag)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if field.Type() == reflect.TypeFor[time.Duration]() {
			d, err := time.ParseDuration(tag)
			if err != nil {
				return err
			}
			field.SetInt(int64(d))
			return nil
		}
		n, err := cast.ToInt64E(tag)
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := cast.ToUint64E(tag)
		if err != nil {
			return err
		}
		field.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := cast.ToFloat64E(tag)
		if err != nil {
			return err
		}
		field.SetFloat(f)
	case reflect.Bool:
		b, err := cast.ToBoolE(tag)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice type for default tag: %s", field.Type())
		}
		field.Set(reflect.ValueOf(strings.Split(tag, ",")))
	default:
		return fmt.Errorf("unsupported type for default tag: %s", field.Kind())
	}
	return nil
}

// Values returns a copy of the top-level merged values.
func (c *Config) Values() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]any, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out
}

// Encode serializes the merged values with the given codec.
func (c *Config) Encode(typ codec.Type) ([]byte, error) {
	enc, err := codec.Get(typ)
	if err != nil {
		return nil, err
	}
	return enc.Encode(c.Values())
}

// lookup walks a dotted, case-insensitive path.
func (c *Config) lookup(path string) any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.values == nil || path == "" {
		return nil
	}

	path = strings.ToLower(path)
	if v, ok := c.values[path]; ok {
		return v
	}

	current := c.values
	segments := strings.Split(path, ".")
	for i, segment := range segments {
		v, ok := current[segment]
		if !ok {
			return nil
		}
		if i == len(segments)-1 {
			return v
		}
		nested, isMap := v.(map[string]any)
		if !isMap {
			return nil
		}
		current = nested
	}
	return nil
}
