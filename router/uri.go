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

package router

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/spf13/cast"
)

// QueryParam is one key/value pair of a query string.
type QueryParam struct {
	Key   string
	Value any
}

// Query is an ordered list of query parameters. Pairs are encoded in the
// given order. Slice values produce one "key[]=v" pair per element.
//
//	router.Query{{"p", "salut"}, {"toto", 5}} // p=salut&toto=5
type Query []QueryParam

// QueryFromMap builds a Query from m with keys in sorted order.
func QueryFromMap(m map[string]any) Query {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	q := make(Query, 0, len(keys))
	for _, k := range keys {
		q = append(q, QueryParam{Key: k, Value: m[k]})
	}
	return q
}

// Encode returns the URL-encoded query string without the leading '?'.
func (q Query) Encode() (string, error) {
	if len(q) == 0 {
		return "", nil
	}
	var b strings.Builder
	write := func(key string, v any) error {
		s, err := cast.ToStringE(v)
		if err != nil {
			return fmt.Errorf("query parameter %q: %w", key, err)
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(s))
		return nil
	}

	for _, p := range q {
		switch v := p.Value.(type) {
		case nil:
			continue
		case []string:
			for _, item := range v {
				if err := write(p.Key+"[]", item); err != nil {
					return "", err
				}
			}
		case []any:
			for _, item := range v {
				if err := write(p.Key+"[]", item); err != nil {
					return "", err
				}
			}
		case []int:
			for _, item := range v {
				if err := write(p.Key+"[]", item); err != nil {
					return "", err
				}
			}
		default:
			if err := write(p.Key, v); err != nil {
				return "", err
			}
		}
	}
	return b.String(), nil
}

// GenerateURI builds the URL of the named route.
//
// Placeholders are filled from substitutes and query is appended when it
// encodes to a non-empty string. Unknown routes and missing or invalid
// substitutes return an error wrapping [ErrURIGeneration].
func (r *Router) GenerateURI(name string, substitutes map[string]any, query Query) (string, error) {
	info := r.named(name)
	if info == nil {
		return "", fmt.Errorf("%w: %w: %q", ErrURIGeneration, ErrRouteNotFound, name)
	}

	path, err := r.matcher.Build(info, substitutes)
	if err != nil {
		return "", fmt.Errorf("%w: route %q: %w", ErrURIGeneration, name, err)
	}

	qs, err := query.Encode()
	if err != nil {
		return "", fmt.Errorf("%w: route %q: %w", ErrURIGeneration, name, err)
	}
	if qs != "" {
		path += "?" + qs
	}
	return path, nil
}

// GenerateURIOr is like GenerateURI but returns def when generation fails.
func (r *Router) GenerateURIOr(name string, substitutes map[string]any, query Query, def string) string {
	uri, err := r.GenerateURI(name, substitutes, query)
	if err != nil {
		r.logger.Debug("uri generation fell back to default",
			"route", name,
			"default", def,
			"error", err,
		)
		return def
	}
	return uri
}
