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

// MatchDynamic tries dynamic routes for method in specificity order and
// reports the captures of the first match to w.
func (rc *RouteCompiler) MatchDynamic(method, path string, w ParamWriter) *CompiledRoute {
	if !rc.frozen.Load() {
		rc.mu.RLock()
		defer rc.mu.RUnlock()
	}

	candidates := rc.dynamicRoutes
	if rc.hasFirstCharIndex && len(path) > 1 && path[1] < 128 {
		candidates = rc.firstCharIndex[path[1]]
	}

	for _, route := range candidates {
		if route.method == method && route.match(path, w) {
			return route
		}
	}
	return nil
}

// buildFirstCharIndex fills the first-character jump table. Paths whose
// second byte is not ASCII fall back to scanning every route.
// The caller must hold rc.mu.
func (rc *RouteCompiler) buildFirstCharIndex() {
	for i := range rc.firstCharIndex {
		rc.firstCharIndex[i] = nil
	}

	for _, route := range rc.dynamicRoutes {
		first, ok := route.firstChar()
		if !ok {
			// Placeholder-led routes may match any first character.
			for c := range rc.firstCharIndex {
				rc.firstCharIndex[c] = append(rc.firstCharIndex[c], route)
			}
			continue
		}
		if first < 128 {
			rc.firstCharIndex[first] = append(rc.firstCharIndex[first], route)
		}
	}
	rc.hasFirstCharIndex = true
}

// firstChar returns the literal character following the leading '/', if any.
func (r *CompiledRoute) firstChar() (byte, bool) {
	if len(r.prefix) > 1 {
		return r.prefix[1], true
	}
	return 0, false
}
