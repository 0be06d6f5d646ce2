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

// Package container provides the service container handlers and
// middleware are fetched from.
//
//	c := container.New()
//	c.Set("Pages", &PagesController{})
//	c.Factory("Mailer", func(c container.Container) (any, error) {
//	    cfg, err := container.Resolve[*Config](c, "Config")
//	    if err != nil {
//	        return nil, err
//	    }
//	    return NewMailer(cfg), nil
//	})
//
// Factories run once, on first Get, and their result is shared. A factory
// that fails is retried on the next Get. Factories must not Get their own id.
package container

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrNotFound is returned by Get for an unknown id.
var ErrNotFound = errors.New("service not found")

// Container gives access to services by id.
type Container interface {
	Get(id string) (any, error)
	Has(id string) bool
}

// FactoryFunc builds a service. It receives the container so it can fetch
// its own dependencies.
type FactoryFunc func(c Container) (any, error)

type entry struct {
	mu      sync.Mutex
	factory FactoryFunc
	value   any
	done    bool
}

// Services is the default Container. It is safe for concurrent use.
type Services struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

var _ Container = (*Services)(nil)

// New returns an empty container.
func New() *Services {
	return &Services{entries: make(map[string]*entry)}
}

// Set registers an instance under id, replacing any previous entry.
func (s *Services) Set(id string, instance any) *Services {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = &entry{value: instance, done: true}
	return s
}

// Factory registers a lazily built singleton under id.
func (s *Services) Factory(id string, f FactoryFunc) *Services {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = &entry{factory: f}
	return s
}

// Has reports whether id is registered.
func (s *Services) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.entries[id]
	return ok
}

// Get returns the service registered under id, building it if needed.
func (s *Services) Get(id string) (any, error) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.done {
		return e.value, nil
	}
	v, err := e.factory(s)
	if err != nil {
		return nil, fmt.Errorf("container: build %q: %w", id, err)
	}
	e.value, e.done = v, true
	return v, nil
}

// IDs returns the registered ids in sorted order.
func (s *Services) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.entries))
	for id := range s.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Resolve fetches id from c and asserts it to T.
func Resolve[T any](c Container, id string) (T, error) {
	var zero T
	v, err := c.Get(id)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("container: %q is %T, not %T", id, v, zero)
	}
	return t, nil
}
