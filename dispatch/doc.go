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

// Package dispatch invokes the handler of a matched route.
//
// The [Dispatcher] matches the request, attaches the captured path
// parameters as request attributes, runs the route's group middleware and
// finally calls the handler named by the route's descriptor:
//
//	"Pages"        -> method "Invoke" of the service "Pages"
//	"Pages@show"   -> method "show" of the service "Pages"
//
// Handlers are plain Go values fetched from the container. Their callable
// methods are declared up front in a [Registry], together with the formal
// parameters the dispatcher has to bind:
//
//	reg := dispatch.NewRegistry()
//	reg.MustRegister("Pages",
//	    dispatch.NewMethod("show", func(target any, args dispatch.Args) (any, error) {
//	        return target.(*Pages).Show(args.String(0), args.Int(1))
//	    }, dispatch.Param{Name: "slug", Kind: dispatch.KindString},
//	       dispatch.Param{Name: "id", Kind: dispatch.KindInt}),
//	)
//
// # Parameter binding
//
// Each parameter is bound from the first source that can supply it:
//
//  1. request attributes (path parameters included) merged with the query
//     string; attributes win on equal names
//  2. the request itself, for KindRequest parameters
//  3. the container, for KindContainer parameters
//  4. the parsed body merged with uploaded files; files win on equal names
//  5. nil, for nullable parameters
//
// Otherwise dispatch fails with a [*MissingParameterError]. Bound values are
// coerced to the parameter kind.
//
// # Return values
//
// A handler returns a string (sent as a 200 response), a *message.Response,
// or an error. Anything else fails with [ErrInvalidHandlerReturn].
package dispatch
