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

package binding

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// String coerces v to a string. Slices and maps are rejected.
func String(v any) (string, error) {
	if err := rejectComposite(v); err != nil {
		return "", err
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedValue, err)
	}
	return s, nil
}

// Int coerces v to an int. Strings are parsed as base-10 integers.
func Int(v any) (int, error) {
	n, err := Int64(v)
	if err != nil {
		return 0, err
	}
	if int64(int(n)) != n {
		return 0, fmt.Errorf("%w: %d overflows int", ErrUnsupportedValue, n)
	}
	return int(n), nil
}

// Int64 coerces v to an int64. Strings are parsed as base-10 integers, so
// leading zeros are accepted ("007" is 7). Floats must hold a whole number.
func Int64(v any) (int64, error) {
	if err := rejectComposite(v); err != nil {
		return 0, err
	}
	switch x := v.(type) {
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not an integer", ErrUnsupportedValue, x)
		}
		return n, nil
	case json.Number:
		n, err := x.Int64()
		if err != nil {
			return 0, fmt.Errorf("%w: %s is not an integer", ErrUnsupportedValue, x)
		}
		return n, nil
	case float32:
		return wholeFloat(float64(x))
	case float64:
		return wholeFloat(x)
	}
	n, err := cast.ToInt64E(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnsupportedValue, err)
	}
	return n, nil
}

// wholeFloat rejects fractions and values outside the int64 range.
func wholeFloat(f float64) (int64, error) {
	if math.Trunc(f) != f || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("%w: %v is not an integer", ErrUnsupportedValue, f)
	}
	return int64(f), nil
}

// Float coerces v to a float64.
func Float(v any) (float64, error) {
	if err := rejectComposite(v); err != nil {
		return 0, err
	}
	if s, ok := v.(string); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", ErrUnsupportedValue, s)
		}
		return f, nil
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnsupportedValue, err)
	}
	return f, nil
}

// Bool coerces v to a bool. Besides the strconv forms it accepts the
// HTML form spellings "on"/"off" and "yes"/"no", case-insensitively.
func Bool(v any) (bool, error) {
	if err := rejectComposite(v); err != nil {
		return false, err
	}
	if s, ok := v.(string); ok {
		return parseBool(s)
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidBooleanValue, err)
	}
	return b, nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "t", "true", "on", "yes", "y":
		return true, nil
	case "0", "f", "false", "off", "no", "n", "":
		return false, nil
	}
	return false, fmt.Errorf("%w: %q", ErrInvalidBooleanValue, s)
}

func rejectComposite(v any) error {
	switch v.(type) {
	case []string, []any, map[string]any, map[any]any, *File, []*File:
		return fmt.Errorf("%w: cannot convert %T to a scalar", ErrUnsupportedValue, v)
	}
	return nil
}
