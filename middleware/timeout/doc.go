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

// Package timeout bounds how long a request may take.
//
//	application.Pipe(timeout.New(timeout.WithDuration(5 * time.Second)))
//
// The request context gets a deadline. When it passes before the handler
// returns, the middleware answers with a 408 error at once and logs a
// warning. The handler keeps running in the background until it notices
// the canceled context, so long operations should watch req.Context().
//
// This is the only component that runs part of a dispatch on another
// goroutine. The rest of the chain after timeout, including the route's
// chain and handler, runs there and is owned by that goroutine alone.
// Whatever it produces after the deadline, response or error, is
// discarded.
//
// A panic raised by the handler is re-raised on the calling goroutine so
// recovery middleware placed outside timeout still sees it.
package timeout
