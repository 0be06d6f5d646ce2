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
	"strings"

	"fram.dev/config/codec"
)

// Env loads environment variables starting with a prefix. The prefix is
// stripped and the rest decoded by codec.EnvVar:
//
//	FRAM_SERVER__ADDR=:8080  -> server.addr = ":8080"
//	FRAM_DEBUG=true          -> debug = "true"
type Env struct {
	prefix  string
	environ func() []string
}

// NewEnv reads os.Environ with the given prefix.
func NewEnv(prefix string) *Env {
	return &Env{prefix: prefix, environ: os.Environ}
}

// Load implements config.Source.
func (e *Env) Load(_ context.Context) (map[string]any, error) {
	var lines []string
	for _, kv := range e.environ() {
		if rest, ok := strings.CutPrefix(kv, e.prefix); ok {
			lines = append(lines, rest)
		}
	}

	var values map[string]any
	if err := (codec.EnvVar{}).Decode([]byte(strings.Join(lines, "\n")), &values); err != nil {
		return nil, fmt.Errorf("failed to decode environment variables: %w", err)
	}
	return values, nil
}

// String describes the source.
func (e *Env) String() string {
	return "env:" + e.prefix
}
