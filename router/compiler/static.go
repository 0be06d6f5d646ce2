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

// FNV-1a 64-bit constants. Hashing is done inline over method then path,
// which equals fnv.New64a over their concatenation without allocating.
const (
	fnvOffsetBasis = 14695981039346656037
	fnvPrime       = 1099511628211
)

func inlineHash(method, path string) uint64 {
	hash := uint64(fnvOffsetBasis)
	for i := range len(method) {
		hash ^= uint64(method[i])
		hash *= fnvPrime
	}
	for i := range len(path) {
		hash ^= uint64(path[i])
		hash *= fnvPrime
	}
	return hash
}

// LookupStatic finds a static route by exact method and path.
// After Freeze the lookup does not take the mutex.
func (rc *RouteCompiler) LookupStatic(method, path string) *CompiledRoute {
	frozen := rc.frozen.Load()
	if !frozen {
		rc.mu.RLock()
		defer rc.mu.RUnlock()
	}

	if frozen {
		if !rc.hasStatic {
			return nil
		}
	} else if len(rc.staticRoutes) == 0 {
		return nil
	}

	hash := inlineHash(method, path)

	// Below ten routes the map lookup is cheaper than the filter.
	if len(rc.staticRoutes) >= 10 && !rc.staticBloom.TestHash(hash) {
		return nil
	}

	route := rc.staticRoutes[hash]
	if route == nil || route.method != method || route.pattern != path {
		return nil
	}
	return route
}
