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
	"strings"

	"fram.dev/middleware"
)

// AddGroupMiddleware appends mws to the group. Order of registration is
// preserved. It panics after Freeze.
func (r *Router) AddGroupMiddleware(group string, mws ...middleware.Middleware) {
	if r.frozen.Load() {
		panic(fmt.Errorf("%w: cannot add middleware to group %q", ErrRouterFrozen, group))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.groups[group] = append(r.groups[group], mws...)
}

// MiddlewareChain returns a new chain holding the group middleware of the
// named route, outer groups first. The chain has no final handler.
func (r *Router) MiddlewareChain(routeName string) *middleware.Chain {
	if r.frozen.Load() {
		if flat, ok := r.flattened[routeName]; ok {
			return middleware.NewChain(flat...)
		}
		return middleware.NewChain(r.collectGroupMiddleware(routeName)...)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return middleware.NewChain(r.collectGroupMiddleware(routeName)...)
}

// collectGroupMiddleware walks the dotted prefixes of name ("a", "a.b",
// "a.b.c") and concatenates their middleware. The caller must hold r.mu or
// the router must be frozen.
func (r *Router) collectGroupMiddleware(name string) []middleware.Middleware {
	if len(r.groups) == 0 || name == "" {
		return nil
	}

	var (
		out    []middleware.Middleware
		prefix strings.Builder
	)
	for i, segment := range strings.Split(name, ".") {
		if i > 0 {
			prefix.WriteByte('.')
		}
		prefix.WriteString(segment)
		out = append(out, r.groups[prefix.String()]...)
	}
	return out
}
