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

// Package errors formats fatal dispatch errors as HTTP responses.
//
// A [Formatter] turns an error into a [Response] that the host writes back
// to the client:
//   - RFC9457: RFC 9457 Problem Details (application/problem+json)
//   - Simple: a flat JSON object (application/json)
//
// Errors can implement optional interfaces to steer the output:
// [ErrorType] declares the HTTP status, [ErrorCode] a machine-readable code
// and [ErrorDetails] structured details. Without a declared status,
// [DefaultStatus] maps the framework's own sentinel errors and falls back
// to 500.
//
// For 5xx responses the error message is replaced with the status text so
// that no internal detail reaches the client:
//
//	formatter := errors.NewRFC9457("https://fram.dev/problems")
//	resp, err := formatter.Format(req, dispatchErr).Message()
//
// The error_id extension correlates the response with the server log line.
package errors
