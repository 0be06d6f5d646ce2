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

package compiler

import (
	"fmt"
	"hash/fnv"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

const (
	// minRoutesForIndexing is the minimum number of dynamic routes required
	// before Freeze builds the first-character index.
	minRoutesForIndexing = 10
)

// ParamWriter receives the parameters captured by a match.
type ParamWriter interface {
	SetParam(name string, value any)
}

// Params is a map-backed [ParamWriter].
type Params map[string]any

// SetParam stores value under name.
func (p Params) SetParam(name string, value any) {
	p[name] = value
}

// CompiledRoute is a parsed pattern ready for matching and URL building.
type CompiledRoute struct {
	method  string
	pattern string
	hash    uint64
	data    any

	parts      []part
	paramNames []string
	groups     []int // regexp submatch index per entry of parts that is a param
	re         *regexp.Regexp

	// prefix is the literal text before the first placeholder. Paths that do
	// not start with it are rejected without running the regexp.
	prefix      string
	specificity int
	isStatic    bool
}

// CompileRoute parses pattern for method. data is an opaque payload returned
// to the caller on match.
func CompileRoute(method, pattern string, data any) (*CompiledRoute, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		pattern = "/"
	}

	parts, err := parsePattern(pattern)
	if err != nil {
		return nil, err
	}

	route := &CompiledRoute{
		method:  method,
		pattern: pattern,
		hash:    hashKey(method, pattern),
		data:    data,
		parts:   parts,
	}

	for _, p := range parts {
		if p.isParam() {
			route.paramNames = append(route.paramNames, p.param)
			continue
		}
		route.specificity += len(p.literal)
	}

	if len(route.paramNames) == 0 {
		route.isStatic = true
		route.prefix = pattern
		return route, nil
	}

	if !parts[0].isParam() {
		route.prefix = parts[0].literal
	}
	if route.re, err = buildRegexp(parts); err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidPattern, pattern, err)
	}
	route.groups = make([]int, len(route.paramNames))
	for i, name := range route.paramNames {
		route.groups[i] = route.re.SubexpIndex(name)
	}

	return route, nil
}

// MustCompileRoute is like CompileRoute but panics on error.
func MustCompileRoute(method, pattern string, data any) *CompiledRoute {
	r, err := CompileRoute(method, pattern, data)
	if err != nil {
		panic(err)
	}
	return r
}

// Method returns the HTTP method of the route.
func (r *CompiledRoute) Method() string { return r.method }

// Pattern returns the original pattern.
func (r *CompiledRoute) Pattern() string { return r.pattern }

// Data returns the payload given to CompileRoute.
func (r *CompiledRoute) Data() any { return r.data }

// ParamNames returns the placeholder names in pattern order.
func (r *CompiledRoute) ParamNames() []string {
	return append([]string(nil), r.paramNames...)
}

// IsStatic reports whether the pattern has no placeholders.
func (r *CompiledRoute) IsStatic() bool { return r.isStatic }

// match runs the route against path and reports captures to w.
// Integer placeholders that overflow int do not match.
func (r *CompiledRoute) match(path string, w ParamWriter) bool {
	if !strings.HasPrefix(path, r.prefix) {
		return false
	}
	m := r.re.FindStringSubmatch(path)
	if m == nil {
		return false
	}

	values := make([]any, len(r.paramNames))
	i := 0
	for _, p := range r.parts {
		if !p.isParam() {
			continue
		}
		raw := m[r.groups[i]]
		if p.isInt {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return false
			}
			values[i] = n
		} else {
			values[i] = raw
		}
		i++
	}

	if w != nil {
		for i, name := range r.paramNames {
			w.SetParam(name, values[i])
		}
	}
	return true
}

// RouteCompiler holds compiled routes for lookup.
type RouteCompiler struct {
	// Static route table: method+path hash -> route
	staticRoutes map[uint64]*CompiledRoute
	staticBloom  *BloomFilter
	hasStatic    bool

	// Dynamic routes ordered by specificity, registration order within ties
	dynamicRoutes []*CompiledRoute

	// First-character index, built on Freeze. Each bucket holds the routes
	// whose pattern starts with that ASCII character after '/', plus every
	// route whose first segment starts with a placeholder.
	firstCharIndex    [128][]*CompiledRoute
	hasFirstCharIndex bool

	// all routes in registration order
	routes []*CompiledRoute

	frozen atomic.Bool
	mu     sync.RWMutex
}

// NewRouteCompiler creates a route compiler whose static bloom filter has
// bloomSize bits and numHashFuncs hash functions.
func NewRouteCompiler(bloomSize uint64, numHashFuncs int) *RouteCompiler {
	if bloomSize == 0 {
		bloomSize = 1000
	}
	if numHashFuncs <= 0 {
		numHashFuncs = 3
	}
	return &RouteCompiler{
		staticRoutes:  make(map[uint64]*CompiledRoute, 64),
		dynamicRoutes: make([]*CompiledRoute, 0, 32),
		staticBloom:   NewBloomFilter(bloomSize, numHashFuncs),
	}
}

// AddRoute registers a compiled route.
func (rc *RouteCompiler) AddRoute(route *CompiledRoute) error {
	if rc.frozen.Load() {
		return ErrFrozen
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()

	for _, existing := range rc.routes {
		if existing.method == route.method && existing.pattern == route.pattern {
			return fmt.Errorf("%w: %s %s", ErrDuplicateRoute, route.method, route.pattern)
		}
	}

	rc.routes = append(rc.routes, route)
	if route.isStatic {
		rc.staticRoutes[route.hash] = route
		rc.staticBloom.Add(route.method, route.pattern)
		return nil
	}

	rc.dynamicRoutes = append(rc.dynamicRoutes, route)
	rc.sortRoutesBySpecificity()
	return nil
}

// Routes returns every route in registration order.
func (rc *RouteCompiler) Routes() []*CompiledRoute {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return append([]*CompiledRoute(nil), rc.routes...)
}

// Freeze makes the compiler immutable and builds lookup indexes.
// Calling Freeze more than once is a no-op.
func (rc *RouteCompiler) Freeze() {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if rc.frozen.Load() {
		return
	}
	rc.hasStatic = len(rc.staticRoutes) > 0
	if len(rc.dynamicRoutes) > minRoutesForIndexing {
		rc.buildFirstCharIndex()
	}
	rc.frozen.Store(true)
}

// IsFrozen reports whether Freeze has been called.
func (rc *RouteCompiler) IsFrozen() bool {
	return rc.frozen.Load()
}

// Match looks up a route for method and path, static routes first.
func (rc *RouteCompiler) Match(method, path string, w ParamWriter) *CompiledRoute {
	if r := rc.LookupStatic(method, path); r != nil {
		return r
	}
	return rc.MatchDynamic(method, path, w)
}

// sortRoutesBySpecificity orders dynamic routes by literal length, longest
// first. The insertion sort is stable so equal routes keep registration order.
func (rc *RouteCompiler) sortRoutesBySpecificity() {
	routes := rc.dynamicRoutes
	for i := 1; i < len(routes); i++ {
		key := routes[i]
		j := i - 1
		for j >= 0 && routes[j].specificity < key.specificity {
			routes[j+1] = routes[j]
			j--
		}
		routes[j+1] = key
	}
}

func hashKey(method, path string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(method))
	_, _ = h.Write([]byte(path))
	return h.Sum64()
}
