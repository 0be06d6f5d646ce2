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

// Package router maps requests to named routes, builds URLs from route names
// and assembles the middleware pipeline of hierarchical route groups.
//
// # Routes
//
// Every route has a dotted name, an opaque handler descriptor and a pattern:
//
//	r := router.MustNew()
//	r.GET("blog.index", "Blog@index", "/blog")
//	r.GET("blog.show", "Blog@show", "/blog/{slug:[a-z0-9-]+}-{id:\\d+}")
//	r.POST("contact", "Contact", "/contact")
//
// Registering a second route under an existing name keeps both routes
// matchable; URL generation uses the most recent one.
//
// # Groups
//
// Middleware registered on a group applies to every route whose name starts
// with the group's dotted prefix. For the route "admin.users.edit" the chain is
// the middleware of "admin", then "admin.users", then "admin.users.edit":
//
//	r.AddGroupMiddleware("admin", authMiddleware)
//	r.AddGroupMiddleware("admin.users", auditMiddleware)
//	chain := r.MiddlewareChain("admin.users.edit") // auth, audit
//
// # Lifecycle
//
// Routes and group middleware are registered at startup. [Router.Freeze]
// makes the tables immutable and precomputes the group chain of every route;
// after that, lookups take no locks.
//
// # URL generation
//
//	uri, err := r.GenerateURI("blog.show",
//	    map[string]any{"slug": "hello", "id": 42},
//	    router.Query{{"page", 2}},
//	) // /blog/hello-42?page=2
package router
