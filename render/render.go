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

// Package render turns view names into response bodies.
//
// [Templates] renders html/template files from one or more fs.FS roots.
// View names are slash-separated paths without extension. A leading
// "@namespace/" selects a root added with [Templates.AddPath]:
//
//	views := render.NewTemplates(os.DirFS("views"))
//	views.AddPath("blog", os.DirFS("modules/blog/views"))
//	views.AddGlobal("siteName", "fram")
//
//	body, err := views.Render("errors/404", nil)        // views/errors/404.html
//	body, err = views.Render("@blog/show", data)        // modules/blog/views/show.html
//
// [Static] serves fixed bodies and is useful in tests and as a fallback.
package render

import (
	"errors"
	"fmt"
)

// ErrViewNotFound is returned when a view does not exist.
var ErrViewNotFound = errors.New("view not found")

// Renderer renders a named view with data.
type Renderer interface {
	Render(view string, data map[string]any) (string, error)
}

// Static is a Renderer backed by fixed bodies. Data is ignored.
type Static map[string]string

// Render returns the body registered for view.
func (s Static) Render(view string, _ map[string]any) (string, error) {
	body, ok := s[view]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrViewNotFound, view)
	}
	return body, nil
}
