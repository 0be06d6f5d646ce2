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

package render

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"maps"
	"path"
	"strings"
	"sync"
)

const defaultNamespace = ""

// Option configures Templates.
type Option func(*Templates)

// WithExtension sets the file extension appended to view names. Default ".html".
func WithExtension(ext string) Option {
	return func(t *Templates) {
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		t.ext = ext
	}
}

// WithFuncs adds template functions available to every view.
func WithFuncs(funcs template.FuncMap) Option {
	return func(t *Templates) {
		maps.Copy(t.funcs, funcs)
	}
}

// Templates renders html/template views from fs.FS roots.
// It is safe for concurrent use. Parsed templates are cached per file.
type Templates struct {
	mu      sync.RWMutex
	roots   map[string]fs.FS
	globals map[string]any
	funcs   template.FuncMap
	ext     string
	cache   map[string]*template.Template
}

var _ Renderer = (*Templates)(nil)

// NewTemplates creates a renderer whose default root is root.
func NewTemplates(root fs.FS, opts ...Option) *Templates {
	t := &Templates{
		roots:   map[string]fs.FS{defaultNamespace: root},
		globals: make(map[string]any),
		funcs:   make(template.FuncMap),
		ext:     ".html",
		cache:   make(map[string]*template.Template),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// AddPath registers root under namespace, addressed as "@namespace/view".
func (t *Templates) AddPath(namespace string, root fs.FS) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.roots[namespace] = root
	for k := range t.cache {
		if strings.HasPrefix(k, namespace+":") {
			delete(t.cache, k)
		}
	}
}

// AddGlobal makes value available to every view under key. Data passed to
// Render takes precedence over globals with the same key.
func (t *Templates) AddGlobal(key string, value any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.globals[key] = value
}

// Render executes view with the globals merged with data.
func (t *Templates) Render(view string, data map[string]any) (string, error) {
	tmpl, err := t.lookup(view)
	if err != nil {
		return "", err
	}

	t.mu.RLock()
	vars := make(map[string]any, len(t.globals)+len(data))
	maps.Copy(vars, t.globals)
	t.mu.RUnlock()
	maps.Copy(vars, data)

	var buf bytes.Buffer
	if err = tmpl.Execute(&buf, vars); err != nil {
		return "", fmt.Errorf("render: execute %q: %w", view, err)
	}
	return buf.String(), nil
}

func (t *Templates) lookup(view string) (*template.Template, error) {
	namespace, name, err := splitView(view)
	if err != nil {
		return nil, err
	}
	file := name + t.ext
	key := namespace + ":" + file

	t.mu.RLock()
	tmpl, ok := t.cache[key]
	root, hasRoot := t.roots[namespace]
	t.mu.RUnlock()
	if ok {
		return tmpl, nil
	}
	if !hasRoot {
		return nil, fmt.Errorf("%w: %q: unknown namespace %q", ErrViewNotFound, view, namespace)
	}

	src, err := fs.ReadFile(root, file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrViewNotFound, view)
		}
		return nil, fmt.Errorf("render: read %q: %w", view, err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	tmpl, err = template.New(path.Base(file)).Funcs(t.funcs).Parse(string(src))
	if err != nil {
		return nil, fmt.Errorf("render: parse %q: %w", view, err)
	}
	t.cache[key] = tmpl
	return tmpl, nil
}

// splitView separates "@ns/rest" into ("ns", "rest").
func splitView(view string) (namespace, name string, err error) {
	if !strings.HasPrefix(view, "@") {
		name = view
	} else {
		var ok bool
		namespace, name, ok = strings.Cut(view[1:], "/")
		if !ok || namespace == "" {
			return "", "", fmt.Errorf("%w: %q: malformed namespace", ErrViewNotFound, view)
		}
	}
	name = path.Clean(strings.TrimPrefix(name, "/"))
	if name == "." || !fs.ValidPath(name) {
		return "", "", fmt.Errorf("%w: %q: invalid view name", ErrViewNotFound, view)
	}
	return namespace, name, nil
}
