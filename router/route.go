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

import "maps"

// Route is the immutable result of a match attempt.
type Route struct {
	name    string
	handler string
	method  string
	pattern string
	params  map[string]any
}

// NotFound returns the failure route.
func NotFound() Route {
	return Route{}
}

// Name returns the route name, or "" for the failure route.
func (r Route) Name() string { return r.name }

// Handler returns the handler descriptor, or "" for the failure route.
func (r Route) Handler() string { return r.handler }

// Method returns the method the route was registered for.
func (r Route) Method() string { return r.method }

// Pattern returns the path pattern of the route.
func (r Route) Pattern() string { return r.pattern }

// Params returns a copy of the captured path parameters. Integer
// placeholders yield int values, all others strings.
func (r Route) Params() map[string]any {
	out := make(map[string]any, len(r.params))
	maps.Copy(out, r.params)
	return out
}

// IsFailure reports whether the match attempt failed.
func (r Route) IsFailure() bool { return r.name == "" }

// RouteInfo describes a registered route.
type RouteInfo struct {
	Method  string
	Name    string
	Handler string
	Pattern string
}

func (info *RouteInfo) route(params map[string]any) Route {
	if params == nil {
		params = map[string]any{}
	}
	return Route{
		name:    info.Name,
		handler: info.Handler,
		method:  info.Method,
		pattern: info.Pattern,
		params:  params,
	}
}
