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

import "errors"

// Static errors for route compilation, registration and building.
var (
	// ErrInvalidPattern is returned when a pattern cannot be parsed.
	ErrInvalidPattern = errors.New("invalid route pattern")

	// ErrDuplicateParam is returned when a pattern names a placeholder twice.
	ErrDuplicateParam = errors.New("duplicate route parameter")

	// ErrDuplicateRoute is returned when the same method and pattern are registered twice.
	ErrDuplicateRoute = errors.New("duplicate route")

	// ErrFrozen is returned when a route is added after Freeze.
	ErrFrozen = errors.New("route compiler is frozen")

	// ErrMissingParam is returned by Build when a placeholder has no value.
	ErrMissingParam = errors.New("missing route parameter")

	// ErrInvalidParam is returned by Build when a value does not satisfy its placeholder.
	ErrInvalidParam = errors.New("invalid route parameter")
)
