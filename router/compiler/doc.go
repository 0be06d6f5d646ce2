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

// Package compiler turns route patterns into matchers and reverse builders.
//
// A pattern is a path whose segments mix literal text with placeholders:
//
//	/articles
//	/test/{id:\d+}
//	/demo/{slug:[a-zA-Z-]+}-{id:\d+}
//	/users/:id
//
// "{name}" and ":name" (a whole segment) match any run of characters except
// "/". "{name:regex}" restricts the capture to regex. Placeholders whose
// expression is an integer class (\d+, [0-9]+ and their bounded forms) yield
// int values instead of strings.
//
// # Matching
//
// The [RouteCompiler] keeps two tables:
//
//  1. Static routes (no placeholders) in a hash table guarded by a bloom filter
//  2. Dynamic routes as anchored regular expressions, ordered by the number of
//     literal characters they contain so more specific patterns are tried first
//
// Once [RouteCompiler.Freeze] is called the tables are immutable, lookups skip
// the mutex, and dynamic routes are narrowed through a first-character index.
//
//	rc := compiler.NewRouteCompiler(1000, 3)
//	route, err := compiler.CompileRoute("GET", "/test/{id:\\d+}", nil)
//	if err != nil {
//	    return err
//	}
//	_ = rc.AddRoute(route)
//	rc.Freeze()
//
//	params := compiler.Params{}
//	if r := rc.Match("GET", "/test/25", params); r != nil {
//	    // params["id"] == 25
//	}
//
// # Reverse routing
//
// [CompiledRoute.Build] substitutes values into the pattern. Every value must
// satisfy its placeholder expression, otherwise [ErrInvalidParam] is returned.
package compiler
