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

// Package app hosts the dispatcher behind net/http.
//
// An [App] owns a router, a handler registry, a service container and a
// renderer. It runs a global middleware pipeline whose final handler is the
// dispatcher, and turns fatal errors into problem responses:
//
//	a := app.MustNew(app.WithServiceName("blog"))
//	a.Router().GET("post.show", "Posts@show", "/posts/{slug}-{id:\\d+}")
//	a.Registry().MustRegister("Posts", dispatch.NewMethod("show", show,
//	    dispatch.Param{Name: "slug", Kind: dispatch.KindString},
//	    dispatch.Param{Name: "id", Kind: dispatch.KindInt},
//	))
//	a.Services().Set("Posts", &Posts{})
//
//	if err := a.Pipe(realip.MustNew(), trailingslash.New()); err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//	if err := a.Run(ctx, ":8080"); err != nil {
//	    log.Fatal(err)
//	}
//
// [App.Handler] wraps the application in a chi mux that also serves the
// liveness and readiness probes and, when metrics are configured, the
// Prometheus endpoint.
//
// # Configuration
//
// [LoadConfig] reads a YAML, JSON or TOML file plus FRAM_ environment
// variables into a [Config]. [NewFromConfig] builds the application from it
// and [App.LoadRoutes] registers the declared routes and group middleware.
//
// # Modules
//
// A [Module] bundles routes, handlers and services. [App.AddModule] calls
// its Register method once.
package app
