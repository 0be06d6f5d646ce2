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

package binding

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      any
		want    int
		wantErr bool
	}{
		{"int", 6, 6, false},
		{"string", "6", 6, false},
		{"leading zeros", "007", 7, false},
		{"padded", " 42 ", 42, false},
		{"json number", float64(25), 25, false},
		{"fraction", 4.7, 0, true},
		{"negative fraction", float32(-0.5), 0, true},
		{"float out of range", 1e19, 0, true},
		{"json.Number", json.Number("12"), 12, false},
		{"json.Number fraction", json.Number("1.5"), 0, true},
		{"int64", int64(9), 9, false},
		{"not a number", "titi", 0, true},
		{"slice", []string{"1"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Int(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedValue)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBool(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      any
		want    bool
		wantErr bool
	}{
		{true, true, false},
		{"on", true, false},
		{"YES", true, false},
		{"1", true, false},
		{"off", false, false},
		{"", false, false},
		{1, true, false},
		{"maybe", false, true},
	}

	for _, tt := range tests {
		got, err := Bool(tt.in)
		if tt.wantErr {
			require.ErrorIs(t, err, ErrInvalidBooleanValue, "input %v", tt.in)
			continue
		}
		require.NoError(t, err, "input %v", tt.in)
		assert.Equal(t, tt.want, got, "input %v", tt.in)
	}
}

func TestStringAndFloat(t *testing.T) {
	t.Parallel()

	s, err := String(25)
	require.NoError(t, err)
	assert.Equal(t, "25", s)

	s, err = String(nil)
	require.NoError(t, err)
	assert.Empty(t, s)

	_, err = String(map[string]any{"a": 1})
	require.ErrorIs(t, err, ErrUnsupportedValue)

	f, err := Float("1.5")
	require.NoError(t, err)
	assert.InDelta(t, 1.5, f, 1e-9)

	f, err = Float(3)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, f, 1e-9)

	_, err = Float("abc")
	require.ErrorIs(t, err, ErrUnsupportedValue)
}

func TestSourceString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "json", SourceJSON.String())
	assert.Equal(t, "multipart", SourceMultipart.String())
	assert.Equal(t, "unknown", Source(99).String())
}
