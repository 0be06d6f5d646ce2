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

import (
	"net/http"

	"fram.dev/message"
)

// Redirect builds redirect responses, optionally to named routes.
type Redirect struct {
	router *Router
	status int
}

// NewRedirect creates a redirect builder. A nil router limits it to [Redirect.URI].
// A status of 0 means 302 Found.
func NewRedirect(r *Router, status int) *Redirect {
	if status == 0 {
		status = http.StatusFound
	}
	return &Redirect{router: r, status: status}
}

// Redirect returns a redirect builder bound to r.
//
//	resp, err := r.Redirect(http.StatusSeeOther).Route("blog.show", subs, nil)
func (r *Router) Redirect(status int) *Redirect {
	return NewRedirect(r, status)
}

// Route redirects to the named route. When def is given it is used as the
// location if the URL cannot be generated.
func (rd *Redirect) Route(name string, substitutes map[string]any, query Query, def ...string) (*message.Response, error) {
	if rd.router == nil {
		return nil, ErrNoRouter
	}
	if len(def) > 0 {
		return rd.URI(rd.router.GenerateURIOr(name, substitutes, query, def[0])), nil
	}
	uri, err := rd.router.GenerateURI(name, substitutes, query)
	if err != nil {
		return nil, err
	}
	return rd.URI(uri), nil
}

// URI redirects to uri.
func (rd *Redirect) URI(uri string) *message.Response {
	return message.Redirect(uri, rd.status)
}
