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

package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompiledRoute_Build(t *testing.T) {
	t.Parallel()

	demo := MustCompileRoute("GET", "/demo/{slug:[a-zA-Z-]+}-{id:\\d+}", nil)

	tests := []struct {
		name    string
		route   *CompiledRoute
		subs    map[string]any
		want    string
		wantErr error
	}{
		{"mixed segment", demo, map[string]any{"slug": "mon-article", "id": 42}, "/demo/mon-article-42", nil},
		{"string id", demo, map[string]any{"slug": "mon-article", "id": "42"}, "/demo/mon-article-42", nil},
		{"extra subs ignored", demo, map[string]any{"slug": "a", "id": 1, "x": "y"}, "/demo/a-1", nil},
		{"invalid id", demo, map[string]any{"slug": "mon-article", "id": "azeaze"}, "", ErrInvalidParam},
		{"missing id", demo, map[string]any{"slug": "mon-article"}, "", ErrMissingParam},
		{"nil value", demo, map[string]any{"slug": "a", "id": nil}, "", ErrMissingParam},
		{"unconvertible value", demo, map[string]any{"slug": "a", "id": []int{1}}, "", ErrInvalidParam},
		{"static", MustCompileRoute("GET", "/articles", nil), nil, "/articles", nil},
		{"escaped", MustCompileRoute("GET", "/files/{name}", nil), map[string]any{"name": "a b"}, "/files/a%20b", nil},
		{"colon", MustCompileRoute("GET", "/users/:id", nil), map[string]any{"id": 5}, "/users/5", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.route.Build(tt.subs)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBloomFilter(t *testing.T) {
	t.Parallel()

	bf := NewBloomFilter(1024, 3)
	bf.Add("GET", "/articles")
	bf.Add("POST", "/articles")

	assert.True(t, bf.Test("GET", "/articles"))
	assert.True(t, bf.Test("POST", "/articles"))
	assert.True(t, bf.TestHash(inlineHash("GET", "/articles")))
	assert.Equal(t, hashKey("GET", "/articles"), inlineHash("GET", "/articles"))

	misses := 0
	for _, p := range []string{"/a", "/b", "/c", "/users", "/posts"} {
		if !bf.Test("GET", p) {
			misses++
		}
	}
	assert.Positive(t, misses)
}

func TestIntExpression(t *testing.T) {
	t.Parallel()

	for expr, want := range map[string]bool{
		`\d+`:       true,
		`[0-9]+`:    true,
		`\d{4}`:     true,
		`\d{1,3}`:   true,
		`[a-z]+`:    false,
		`\d*`:       false,
		`[0-9a-f]+`: false,
		`-?\d+`:     false,
	} {
		assert.Equal(t, want, intExprRE.MatchString(expr), expr)
	}
}
