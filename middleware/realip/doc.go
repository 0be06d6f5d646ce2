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

// Package realip stores the client IP address as the
// middleware.AttrIPAddress request attribute.
//
// Without trusted proxies the address is the host of the connection's
// remote address. Forwarding headers are only read when the connection
// comes from a trusted proxy:
//
//	mw, err := realip.New(
//	    realip.WithTrustedProxies("10.0.0.0/8", "127.0.0.1/32"),
//	    realip.WithHeaders(realip.HeaderXFF, realip.HeaderXRealIP),
//	)
//
// X-Forwarded-For is walked from the right, skipping trusted hops, and the
// first untrusted address wins.
package realip
