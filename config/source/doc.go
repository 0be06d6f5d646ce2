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

// Package source provides configuration sources.
//
//   - File: a file on disk, format detected from the extension or forced
//   - Content: an in-memory document
//   - Env: process environment variables sharing a prefix
//
// Each source returns a map[string]any from Load:
//
//	yamlCodec, _ := codec.Get(codec.TypeYAML)
//	values, err := source.NewFile("fram.yaml", yamlCodec).Load(ctx)
package source
