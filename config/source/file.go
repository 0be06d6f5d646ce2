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

package source

import (
	"context"
	"fmt"
	"os"

	"fram.dev/config/codec"
)

// File loads a document from disk or from memory.
type File struct {
	path    string
	data    []byte
	decoder codec.Decoder
}

// NewFile reads path on every Load.
func NewFile(path string, decoder codec.Decoder) *File {
	return &File{path: path, decoder: decoder}
}

// NewContent decodes data on every Load.
func NewContent(data []byte, decoder codec.Decoder) *File {
	return &File{data: data, decoder: decoder}
}

// Load implements config.Source.
func (f *File) Load(ctx context.Context) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := f.data
	if f.path != "" {
		var err error
		data, err = os.ReadFile(f.path)
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
	}

	var values map[string]any
	if err := f.decoder.Decode(data, &values); err != nil {
		name := f.path
		if name == "" {
			name = "content"
		}
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return values, nil
}

// String describes the source.
func (f *File) String() string {
	if f.path != "" {
		return "file:" + f.path
	}
	return "content"
}
