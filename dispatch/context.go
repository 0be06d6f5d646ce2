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

package dispatch

import (
	"context"

	"fram.dev/message"
	"fram.dev/router"
)

type routeKey struct{}

// WithRoute returns a copy of ctx carrying the matched route.
func WithRoute(ctx context.Context, route router.Route) context.Context {
	return context.WithValue(ctx, routeKey{}, route)
}

// RouteFrom returns the matched route stored in ctx.
func RouteFrom(ctx context.Context) (router.Route, bool) {
	route, ok := ctx.Value(routeKey{}).(router.Route)
	return route, ok
}

// CurrentRoute returns the route matched for req by Dispatch, if any.
// Middleware running in a group chain can use it to read the route name.
func CurrentRoute(req *message.Request) (router.Route, bool) {
	return RouteFrom(req.Context())
}
