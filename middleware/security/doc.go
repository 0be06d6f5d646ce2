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

// Package security adds browser security headers to responses.
//
//	application.Pipe(security.New())
//
// Defaults: X-Frame-Options DENY, X-Content-Type-Options nosniff,
// Content-Security-Policy "default-src 'self'" and Referrer-Policy
// strict-origin-when-cross-origin. Strict-Transport-Security is only sent
// on HTTPS requests, either direct TLS or X-Forwarded-Proto https.
//
// A header the handler already set is left alone, so a single view can
// relax its own Content-Security-Policy.
package security
