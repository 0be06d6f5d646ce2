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
	"fmt"
	"time"

	"github.com/spf13/cast"
)

// Get returns the raw value at key, or nil.
func (c *Config) Get(key string) any {
	if c == nil {
		return nil
	}
	return c.lookup(key)
}

// Has reports whether key is set.
func (c *Config) Has(key string) bool {
	return c.Get(key) != nil
}

// String returns the value at key as a string.
func (c *Config) String(key string) string {
	return cast.ToString(c.Get(key))
}

// Int returns the value at key as an int.
func (c *Config) Int(key string) int {
	return cast.ToInt(c.Get(key))
}

// Int64 returns the value at key as an int64.
func (c *Config) Int64(key string) int64 {
	return cast.ToInt64(c.Get(key))
}

// Float64 returns the value at key as a float64.
func (c *Config) Float64(key string) float64 {
	return cast.ToFloat64(c.Get(key))
}

// Bool returns the value at key as a bool.
func (c *Config) Bool(key string) bool {
	return cast.ToBool(c.Get(key))
}

// Duration returns the value at key as a time.Duration. Strings are parsed
// with time.ParseDuration; numbers are nanoseconds.
func (c *Config) Duration(key string) time.Duration {
	return cast.ToDuration(c.Get(key))
}

// StringSlice returns the value at key as a []string.
func (c *Config) StringSlice(key string) []string {
	return cast.ToStringSlice(c.Get(key))
}

// StringMap returns the value at key as a map.
func (c *Config) StringMap(key string) map[string]any {
	return cast.ToStringMap(c.Get(key))
}

// StringOr returns the value at key, or defaultVal when unset.
func (c *Config) StringOr(key, defaultVal string) string {
	return GetOr(c, key, defaultVal)
}

// IntOr returns the value at key, or defaultVal when unset or not an int.
func (c *Config) IntOr(key string, defaultVal int) int {
	return GetOr(c, key, defaultVal)
}

// BoolOr returns the value at key, or defaultVal when unset.
func (c *Config) BoolOr(key string, defaultVal bool) bool {
	return GetOr(c, key, defaultVal)
}

// DurationOr returns the value at key, or defaultVal when unset.
func (c *Config) DurationOr(key string, defaultVal time.Duration) time.Duration {
	return GetOr(c, key, defaultVal)
}

// StringSliceOr returns the value at key, or defaultVal when unset.
func (c *Config) StringSliceOr(key string, defaultVal []string) []string {
	return GetOr(c, key, defaultVal)
}

// Get returns the value at key as T, or the zero value.
//
//	port := config.Get[int](cfg, "server.port")
func Get[T any](c *Config, key string) T {
	v, _ := GetE[T](c, key)
	return v
}

// GetOr returns the value at key as T, or defaultVal when the key is unset
// or cannot be converted.
//
//	timeout := config.GetOr(cfg, "server.timeout", 30*time.Second)
func GetOr[T any](c *Config, key string, defaultVal T) T {
	v, err := GetE[T](c, key)
	if err != nil {
		return defaultVal
	}
	return v
}

// GetE returns the value at key as T. It fails with ErrKeyNotFound for a
// missing key and with a conversion error otherwise.
func GetE[T any](c *Config, key string) (T, error) {
	var zero T
	val := c.Get(key)
	if val == nil {
		return zero, fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}
	if result, ok := val.(T); ok {
		return result, nil
	}
	result, err := convert[T](val)
	if err != nil {
		return zero, fmt.Errorf("config: key %q: %w", key, err)
	}
	return result, nil
}

// convert handles the types cast knows about.
func convert[T any](val any) (T, error) {
	var (
		zero   T
		result any
		err    error
	)

	switch any(zero).(type) {
	case string:
		result, err = cast.ToStringE(val)
	case int:
		result, err = cast.ToIntE(val)
	case int64:
		result, err = cast.ToInt64E(val)
	case int32:
		result, err = cast.ToInt32E(val)
	case uint:
		result, err = cast.ToUintE(val)
	case uint64:
		result, err = cast.ToUint64E(val)
	case float64:
		result, err = cast.ToFloat64E(val)
	case float32:
		result, err = cast.ToFloat32E(val)
	case bool:
		result, err = cast.ToBoolE(val)
	case []string:
		result, err = cast.ToStringSliceE(val)
	case []int:
		result, err = cast.ToIntSliceE(val)
	case map[string]any:
		result, err = cast.ToStringMapE(val)
	case map[string]string:
		result, err = cast.ToStringMapStringE(val)
	case time.Duration:
		result, err = cast.ToDurationE(val)
	case time.Time:
		result, err = cast.ToTimeE(val)
	default:
		return zero, fmt.Errorf("cannot convert %T to %T", val, zero)
	}
	if err != nil {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("cannot convert %T to %T", val, zero)
	}
	return typed, nil
}
