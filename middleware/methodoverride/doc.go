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

// Package methodoverride lets HTML forms issue PUT, PATCH and DELETE.
//
// A POST request carrying a "_method" body field, an X-HTTP-Method-Override
// header or a "_method" query parameter is rewritten to that method before
// routing. Only methods on the allow-list are honored. The original method
// is kept in the middleware.AttrOriginalMethod attribute.
//
//	<form method="post" action="/posts/42">
//	    <input type="hidden" name="_method" value="DELETE">
//	</form>
//
// The middleware must run before the dispatcher matches routes, so pipe it
// on the application rather than on a route group.
package methodoverride
