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

package codec

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Type names a codec.
type Type string

// Encoder encodes a value into a document.
type Encoder interface {
	Encode(v any) ([]byte, error)
}

// Decoder decodes a document into v, usually a *map[string]any.
type Decoder interface {
	Decode(data []byte, v any) error
}

// Codec both encodes and decodes.
type Codec interface {
	Encoder
	Decoder
}

var (
	// ErrUnknownType is returned for a codec type that was never registered.
	ErrUnknownType = errors.New("unknown codec type")

	// ErrUnknownExtension is returned when no codec claims a file extension.
	ErrUnknownExtension = errors.New("cannot detect format from extension")

	// ErrEncodeUnsupported is returned by decode-only codecs.
	ErrEncodeUnsupported = errors.New("encoding not supported")
)

type registry struct {
	mu         sync.RWMutex
	codecs     map[Type]Codec
	extensions map[string]Type
}

var defaultRegistry = &registry{
	codecs:     make(map[Type]Codec),
	extensions: make(map[string]Type),
}

// Register adds c under name and associates it with the file extensions
// (including the dot). A later registration replaces an earlier one.
func Register(name Type, c Codec, extensions ...string) {
	defaultRegistry.mu.Lock()
	defer defaultRegistry.mu.Unlock()

	defaultRegistry.codecs[name] = c
	for _, ext := range extensions {
		defaultRegistry.extensions[strings.ToLower(ext)] = name
	}
}

// Get returns the codec registered under name.
func Get(name Type) (Codec, error) {
	defaultRegistry.mu.RLock()
	defer defaultRegistry.mu.RUnlock()

	c, ok := defaultRegistry.codecs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, name)
	}
	return c, nil
}

// ForPath returns the codec type registered for the extension of path.
func ForPath(path string) (Type, error) {
	ext := strings.ToLower(filepath.Ext(path))

	defaultRegistry.mu.RLock()
	defer defaultRegistry.mu.RUnlock()

	t, ok := defaultRegistry.extensions[ext]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownExtension, ext)
	}
	return t, nil
}

// Types returns the registered codec types in sorted order.
func Types() []Type {
	defaultRegistry.mu.RLock()
	defer defaultRegistry.mu.RUnlock()

	out := make([]Type, 0, len(defaultRegistry.codecs))
	for t := range defaultRegistry.codecs {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
