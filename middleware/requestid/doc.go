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

// Package requestid assigns every request an identifier.
//
// The identifier is taken from the X-Request-ID header when the client sent
// a well-formed one, otherwise generated. It is stored as the
// middleware.AttrRequestID attribute, added to the request context for
// fram.dev/logging, and echoed in the response header.
//
// UUID v7 is the default format. ULIDs are shorter:
//
//	app.Pipe(requestid.New(requestid.WithULID()))
//
// Handlers read it back with [Get]:
//
//	id := requestid.Get(req)
package requestid
