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

import (
	"errors"
	"fmt"
)

// Source identifies where a decoded value came from.
type Source int

const (
	// SourceUnknown is an unspecified source.
	SourceUnknown Source = iota

	// SourceForm represents urlencoded form data.
	SourceForm

	// SourceMultipart represents multipart form data.
	SourceMultipart

	// SourceJSON represents a JSON body.
	SourceJSON

	// SourceYAML represents a YAML body.
	SourceYAML

	// SourceTOML represents a TOML body.
	SourceTOML

	// SourceMsgPack represents a MessagePack body.
	SourceMsgPack
)

// String returns the string representation of the source.
func (s Source) String() string {
	switch s {
	case SourceForm:
		return "form"
	case SourceMultipart:
		return "multipart"
	case SourceJSON:
		return "json"
	case SourceYAML:
		return "yaml"
	case SourceTOML:
		return "toml"
	case SourceMsgPack:
		return "msgpack"
	default:
		return "unknown"
	}
}

// Static errors for binding operations.
var (
	ErrUnsupportedContentType = errors.New("unsupported content type")
	ErrBodyTooLarge           = errors.New("request body too large")
	ErrBodyNotObject          = errors.New("request body is not an object")
	ErrFileNotFound           = errors.New("file not found")
	ErrInvalidBooleanValue    = errors.New("invalid boolean value")
	ErrUnsupportedValue       = errors.New("unsupported value")
)

// DecodeError reports a body that could not be decoded from its source.
type DecodeError struct {
	Source Source
	Err    error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("binding: decode %s body: %v", e.Source, e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Code returns a machine-readable error code.
func (e *DecodeError) Code() string {
	return "invalid_" + e.Source.String() + "_body"
}
