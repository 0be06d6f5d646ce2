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

package router

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter_GenerateURI(t *testing.T) {
	t.Parallel()

	r := MustNew()
	r.GET("route", "Demo", "/demo")
	r.GET("demo.article", "Demo@article", "/demo/{slug:[a-zA-Z-]+}-{id:\\d+}")

	tests := []struct {
		name    string
		route   string
		subs    map[string]any
		query   Query
		want    string
		wantErr bool
	}{
		{name: "static", route: "route", want: "/demo"},
		{name: "substitutes", route: "demo.article",
			subs: map[string]any{"slug": "mon-article", "id": 42},
			want: "/demo/mon-article-42"},
		{name: "substitutes and query", route: "demo.article",
			subs:  map[string]any{"slug": "mon-article", "id": 42},
			query: Query{{"p", "salut"}, {"toto", 5}},
			want:  "/demo/mon-article-42?p=salut&toto=5"},
		{name: "query order is kept", route: "route",
			query: Query{{"z", 1}, {"a", 2}},
			want:  "/demo?z=1&a=2"},
		{name: "query is escaped", route: "route",
			query: Query{{"q", "a b&c"}},
			want:  "/demo?q=a+b%26c"},
		{name: "empty query adds nothing", route: "route", query: Query{}, want: "/demo"},
		{name: "invalid substitute", route: "demo.article",
			subs:    map[string]any{"slug": "mon-article", "id": "azeaze"},
			wantErr: true},
		{name: "missing substitute", route: "demo.article",
			subs:    map[string]any{"slug": "mon-article"},
			wantErr: true},
		{name: "unknown route", route: "nope", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			uri, err := r.GenerateURI(tt.route, tt.subs, tt.query)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrURIGeneration)
				assert.Equal(t, "/fallback", r.GenerateURIOr(tt.route, tt.subs, tt.query, "/fallback"))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, uri)
			assert.Equal(t, tt.want, r.GenerateURIOr(tt.route, tt.subs, tt.query, "/fallback"))
		})
	}

	_, err := r.GenerateURI("nope", nil, nil)
	require.ErrorIs(t, err, ErrRouteNotFound)
}

func TestQuery_Encode(t *testing.T) {
	t.Parallel()

	qs, err := Query{{"tags", []string{"a", "b"}}, {"skip", nil}, {"ids", []int{1, 2}}}.Encode()
	require.NoError(t, err)
	assert.Equal(t, "tags%5B%5D=a&tags%5B%5D=b&ids%5B%5D=1&ids%5B%5D=2", qs)

	_, err = Query{{"bad", map[string]int{"x": 1}}}.Encode()
	require.Error(t, err)

	qs, err = QueryFromMap(map[string]any{"b": 2, "a": "x"}).Encode()
	require.NoError(t, err)
	assert.Equal(t, "a=x&b=2", qs)
}

func TestRouter_Redirect(t *testing.T) {
	t.Parallel()

	r := MustNew()
	r.GET("redirect", "Redirect", "/redirect")
	r.GET("redirect.show", "Redirect@show", "/redirect/{id:\\d+}")

	resp, err := r.Redirect(0).Route("redirect", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode())
	assert.Equal(t, "/redirect", resp.Header("Location"))

	resp, err = r.Redirect(0).Route("redirect.show", map[string]any{"id": 35}, nil)
	require.NoError(t, err)
	assert.Equal(t, "/redirect/35", resp.Header("Location"))

	resp, err = r.Redirect(0).Route("redirect.show", map[string]any{"id": "invalid_id"}, nil, "/")
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode())
	assert.Equal(t, "/", resp.Header("Location"))

	_, err = r.Redirect(0).Route("redirect.show", map[string]any{"id": "invalid_id"}, nil)
	require.ErrorIs(t, err, ErrURIGeneration)

	resp = r.Redirect(http.StatusMovedPermanently).URI("https://example.com/")
	assert.Equal(t, http.StatusMovedPermanently, resp.StatusCode())
	assert.Equal(t, "https://example.com/", resp.Header("Location"))

	_, err = NewRedirect(nil, 0).Route("redirect", nil, nil)
	require.ErrorIs(t, err, ErrNoRouter)
}
