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

// Package trailingslash canonicalizes trailing slashes before routing.
//
// By default a request for "/posts/" is answered with a 301 redirect to
// "/posts". The query string is preserved and the root path is never touched.
//
//	application.Pipe(trailingslash.New())
//
// PolicyAdd redirects the other way, and PolicyStrict leaves paths unchanged
// so mismatches fall through to the not-found view.
package trailingslash
