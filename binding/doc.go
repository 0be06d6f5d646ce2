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

// Package binding decodes HTTP request bodies into generic field maps and
// coerces loosely typed request values into the scalar kinds handlers declare.
//
// Body decoding is selected by the request Content-Type:
//
//	application/json                   -> encoding/json
//	application/x-www-form-urlencoded  -> url.Values
//	multipart/form-data                -> url.Values plus uploaded files
//	application/yaml, application/x-yaml, text/yaml -> gopkg.in/yaml.v3
//	application/toml                   -> github.com/BurntSushi/toml
//	application/msgpack, application/x-msgpack -> github.com/vmihailenco/msgpack/v5
//
// Example:
//
//	body, err := binding.Decode(r,
//	    binding.WithMaxBodySize(1<<20),
//	)
//	if err != nil {
//	    return err
//	}
//	name, _ := binding.String(body.Fields["name"])
//
// Additional media types can be registered per call with [WithDecoder].
package binding
