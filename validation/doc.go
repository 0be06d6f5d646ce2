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

// Package validation checks configuration structs with go-playground
// struct tags and reports failures as a list of field errors.
//
//	type Route struct {
//	    Name    string `json:"name" validate:"required"`
//	    Method  string `json:"method" validate:"required,http_method"`
//	    Pattern string `json:"pattern" validate:"required,route_pattern"`
//	    Handler string `json:"handler" validate:"required,handler"`
//	}
//
//	if err := validation.Validate(&route); err != nil {
//	    var verr *validation.Error
//	    errors.As(err, &verr) // verr.Fields lists each failing field
//	}
//
// Besides the go-playground built-ins, three tags are registered:
//
//   - http_method: GET, HEAD, POST, PUT, PATCH, DELETE or OPTIONS
//   - route_pattern: a pattern the router compiles
//   - handler: a handler descriptor, "Class" or "Class@method"
//
// Field paths use the json tag, or the tag set with [WithTagName]. Types
// implementing [SelfValidator] are checked after their tags.
package validation
