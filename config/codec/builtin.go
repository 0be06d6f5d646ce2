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
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
)

const (
	TypeJSON   Type = "json"
	TypeYAML   Type = "yaml"
	TypeTOML   Type = "toml"
	TypeEnvVar Type = "env_var"
)

func init() {
	Register(TypeJSON, JSON{}, ".json")
	Register(TypeYAML, YAML{}, ".yaml", ".yml")
	Register(TypeTOML, TOML{}, ".toml")
	Register(TypeEnvVar, EnvVar{})
}

// JSON is the encoding/json codec.
type JSON struct{}

func (JSON) Encode(v any) ([]byte, error)    { return json.MarshalIndent(v, "", "  ") }
func (JSON) Decode(data []byte, v any) error { return json.Unmarshal(data, v) }

// YAML is the goccy/go-yaml codec.
type YAML struct{}

func (YAML) Encode(v any) ([]byte, error)    { return yaml.Marshal(v) }
func (YAML) Decode(data []byte, v any) error { return yaml.Unmarshal(data, v) }

// TOML is the BurntSushi/toml codec.
type TOML struct{}

func (TOML) Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (TOML) Decode(data []byte, v any) error {
	_, err := toml.Decode(string(data), v)
	return err
}

// EnvVar decodes KEY=value lines into a nested map. Keys are lowercased.
// A double underscore nests ("SERVER__READ_TIMEOUT" is
// server.read_timeout); a single underscore is kept in the key.
type EnvVar struct{}

// Encode is not supported.
func (EnvVar) Encode(any) ([]byte, error) {
	return nil, fmt.Errorf("%w: env_var", ErrEncodeUnsupported)
}

// Decode expects v to be a *map[string]any.
func (EnvVar) Decode(data []byte, v any) error {
	ptr, ok := v.(*map[string]any)
	if !ok {
		return fmt.Errorf("codec: env_var: expected *map[string]any, got %T", v)
	}

	conf := make(map[string]any)
	for _, line := range strings.Split(string(data), "\n") {
		key, value, found := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		if !found || key == "" {
			continue
		}

		var parts []string
		for _, p := range strings.Split(strings.ToLower(key), "__") {
			if p = strings.Trim(p, "_"); p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) == 0 {
			continue
		}

		current := conf
		for _, part := range parts[:len(parts)-1] {
			next, ok := current[part].(map[string]any)
			if !ok {
				next = make(map[string]any)
				current[part] = next
			}
			current = next
		}
		current[parts[len(parts)-1]] = strings.TrimSpace(value)
	}

	*ptr = conf
	return nil
}
