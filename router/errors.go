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

import "errors"

var (
	// ErrURIGeneration indicates that a URL could not be built for a route.
	// It wraps the underlying cause.
	ErrURIGeneration = errors.New("uri generation failed")

	// ErrRouteNotFound indicates that no route is registered under a name.
	ErrRouteNotFound = errors.New("route not found")

	// ErrRouterFrozen indicates a registration after Freeze.
	ErrRouterFrozen = errors.New("router is frozen")

	// ErrEmptyRouteName indicates a route registered without a name.
	ErrEmptyRouteName = errors.New("route name is empty")

	// ErrEmptyHandler indicates a route registered without a handler descriptor.
	ErrEmptyHandler = errors.New("route handler is empty")

	// ErrNoRouter indicates a redirect to a named route without a router.
	ErrNoRouter = errors.New("cannot redirect to a route without a router")

	// ErrBloomFilterSizeZero indicates that the bloom filter size must be greater than zero.
	ErrBloomFilterSizeZero = errors.New("bloom filter size must be non-zero")

	// ErrBloomHashFunctionsInvalid indicates that the number of bloom hash functions must be positive.
	ErrBloomHashFunctionsInvalid = errors.New("bloom hash functions must be positive")
)
