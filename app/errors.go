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

package app

import "errors"

var (
	// ErrInvalidMiddleware is returned when a piped value is nil or a
	// container entry is not a middleware.Middleware.
	ErrInvalidMiddleware = errors.New("invalid middleware")

	// ErrFrozen is returned when the application is changed after it
	// started serving.
	ErrFrozen = errors.New("application already serving")

	// ErrInvalidConfig wraps option and configuration failures.
	ErrInvalidConfig = errors.New("invalid application configuration")
)
