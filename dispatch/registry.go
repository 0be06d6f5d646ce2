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

package dispatch

import (
	"fmt"
	"sort"
	"sync"
)

// Resolver returns the method descriptor a handler target refers to.
type Resolver interface {
	Resolve(class, method string) (*Method, error)
}

// Registry is the explicit handler method table. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	classes map[string]map[string]*Method
}

var _ Resolver = (*Registry)(nil)

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{classes: make(map[string]map[string]*Method)}
}

// Register declares methods of class.
func (r *Registry) Register(class string, methods ...*Method) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	table, ok := r.classes[class]
	if !ok {
		table = make(map[string]*Method, len(methods))
		r.classes[class] = table
	}
	for _, m := range methods {
		if m == nil || m.Call == nil || m.Name == "" {
			return fmt.Errorf("dispatch: register %s: method needs a name and a call", class)
		}
		if _, dup := table[m.Name]; dup {
			return fmt.Errorf("%w: %s@%s", ErrDuplicateMethod, class, m.Name)
		}
		table[m.Name] = m
	}
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(class string, methods ...*Method) *Registry {
	if err := r.Register(class, methods...); err != nil {
		panic(err)
	}
	return r
}

// Resolve implements Resolver.
func (r *Registry) Resolve(class, method string) (*Method, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	table, ok := r.classes[class]
	if !ok {
		return nil, fmt.Errorf("%w: class %q", ErrHandlerNotFound, class)
	}
	m, ok := table[method]
	if !ok {
		return nil, fmt.Errorf("%w: method %s of %s", ErrHandlerNotFound, method, class)
	}
	return m, nil
}

// Classes returns the registered class names in sorted order.
func (r *Registry) Classes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.classes))
	for c := range r.classes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
