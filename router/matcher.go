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

	"fram.dev/router/compiler"
)

// Matcher is the pattern engine behind a Router.
//
// Add is called once per registration before Freeze. Match and Build may be
// called concurrently after Freeze.
type Matcher interface {
	// Add registers info.
	Add(info *RouteInfo) error

	// Match returns the route registered for method whose pattern matches
	// path, with its captured parameters, or nil.
	Match(method, path string) (*RouteInfo, map[string]any)

	// Build substitutes subs into the pattern of info.
	Build(info *RouteInfo, subs map[string]any) (string, error)

	// Freeze is called once registration is complete.
	Freeze()
}

// compilerMatcher is the default Matcher, backed by compiler.RouteCompiler.
type compilerMatcher struct {
	rc       *compiler.RouteCompiler
	compiled map[*RouteInfo]*compiler.CompiledRoute
}

// NewCompilerMatcher returns the default Matcher with the given bloom filter sizing.
func NewCompilerMatcher(bloomSize uint64, hashFuncs int) Matcher {
	return &compilerMatcher{
		rc:       compiler.NewRouteCompiler(bloomSize, hashFuncs),
		compiled: make(map[*RouteInfo]*compiler.CompiledRoute),
	}
}

func (m *compilerMatcher) Add(info *RouteInfo) error {
	cr, err := compiler.CompileRoute(info.Method, info.Pattern, info)
	if err != nil {
		return err
	}
	if err = m.rc.AddRoute(cr); err != nil {
		return err
	}
	m.compiled[info] = cr
	return nil
}

func (m *compilerMatcher) Match(method, path string) (*RouteInfo, map[string]any) {
	params := compiler.Params{}
	cr := m.rc.Match(method, path, params)
	if cr == nil {
		return nil, nil
	}
	info, ok := cr.Data().(*RouteInfo)
	if !ok {
		return nil, nil
	}
	return info, params
}

func (m *compilerMatcher) Build(info *RouteInfo, subs map[string]any) (string, error) {
	cr, ok := m.compiled[info]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrRouteNotFound, info.Name)
	}
	return cr.Build(subs)
}

func (m *compilerMatcher) Freeze() {
	m.rc.Freeze()
}
