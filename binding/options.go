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

package binding

import "strings"

const (
	// DefaultMaxBodySize is the default maximum request body size (10 MiB).
	DefaultMaxBodySize = 10 << 20

	// DefaultMaxMemory is the default amount of multipart data kept in memory
	// before spilling uploaded files to disk (32 MiB).
	DefaultMaxMemory = 32 << 20
)

// Decoder turns a raw request body into a field map.
type Decoder interface {
	Decode(data []byte) (map[string]any, error)
}

// DecoderFunc adapts a function to the [Decoder] interface.
type DecoderFunc func(data []byte) (map[string]any, error)

// Decode calls f(data).
func (f DecoderFunc) Decode(data []byte) (map[string]any, error) {
	return f(data)
}

type config struct {
	maxBodySize int64
	maxMemory   int64
	decoders    map[string]Decoder
	strict      bool
}

// Option configures body decoding.
type Option func(*config)

// WithMaxBodySize limits the number of body bytes read. A value <= 0 disables the limit.
func WithMaxBodySize(n int64) Option {
	return func(c *config) {
		c.maxBodySize = n
	}
}

// WithMaxMemory sets the multipart memory threshold.
func WithMaxMemory(n int64) Option {
	return func(c *config) {
		if n > 0 {
			c.maxMemory = n
		}
	}
}

// WithDecoder registers a decoder for a media type, replacing any built-in
// decoder for the same type. The media type is matched case-insensitively
// and without parameters.
//
// Example:
//
//	binding.Decode(r, binding.WithDecoder("application/vnd.api+json", binding.JSONDecoder))
func WithDecoder(mediaType string, d Decoder) Option {
	return func(c *config) {
		if c.decoders == nil {
			c.decoders = make(map[string]Decoder)
		}
		c.decoders[strings.ToLower(mediaType)] = d
	}
}

// WithStrictContentType makes [Decode] fail with [ErrUnsupportedContentType]
// when a request carries a body in a media type that has no decoder.
func WithStrictContentType() Option {
	return func(c *config) {
		c.strict = true
	}
}

func newConfig(opts []Option) *config {
	c := &config{
		maxBodySize: DefaultMaxBodySize,
		maxMemory:   DefaultMaxMemory,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
