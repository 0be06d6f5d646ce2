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
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Built-in decoders. Each one requires the body to decode into an object.
var (
	// JSONDecoder decodes JSON objects. Numbers decode as float64.
	JSONDecoder Decoder = DecoderFunc(decodeJSON)

	// YAMLDecoder decodes YAML mappings using gopkg.in/yaml.v3.
	YAMLDecoder Decoder = DecoderFunc(decodeYAML)

	// TOMLDecoder decodes TOML documents using github.com/BurntSushi/toml.
	TOMLDecoder Decoder = DecoderFunc(decodeTOML)

	// MsgPackDecoder decodes MessagePack maps using github.com/vmihailenco/msgpack/v5.
	MsgPackDecoder Decoder = DecoderFunc(decodeMsgPack)
)

type builtin struct {
	source  Source
	decoder Decoder
}

var builtins = map[string]builtin{
	"application/json":      {SourceJSON, JSONDecoder},
	"application/yaml":      {SourceYAML, YAMLDecoder},
	"application/x-yaml":    {SourceYAML, YAMLDecoder},
	"text/yaml":             {SourceYAML, YAMLDecoder},
	"application/toml":      {SourceTOML, TOMLDecoder},
	"application/msgpack":   {SourceMsgPack, MsgPackDecoder},
	"application/x-msgpack": {SourceMsgPack, MsgPackDecoder},
}

func decodeJSON(data []byte) (map[string]any, error) {
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return asObject(out)
}

func decodeYAML(data []byte) (map[string]any, error) {
	var out any
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	if out == nil {
		return map[string]any{}, nil
	}
	return asObject(out)
}

func decodeTOML(data []byte) (map[string]any, error) {
	out := make(map[string]any)
	if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeMsgPack(data []byte) (map[string]any, error) {
	var out any
	if err := msgpack.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return asObject(out)
}

func asObject(v any) (map[string]any, error) {
	switch m := v.(type) {
	case map[string]any:
		return m, nil
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: got %T", ErrBodyNotObject, v)
	}
}
