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

// Package config loads configuration from files, environment variables and
// raw content.
//
// Sources are merged in order, later sources overriding earlier ones. Keys
// are case-insensitive and nested maps are addressed with dots:
//
//	cfg := config.MustNew(
//	    config.WithFile("fram.yaml"),
//	    config.WithEnv("FRAM_"),
//	)
//	if err := cfg.Load(ctx); err != nil {
//	    return err
//	}
//	addr := cfg.StringOr("server.addr", ":8080")
//
// # Formats
//
// WithFile picks a codec from the file extension (.json, .yaml, .yml,
// .toml). WithFileAs and WithContent take an explicit [codec.Type].
// Environment variables use a double underscore for nesting, so
// FRAM_SERVER__ADDR sets server.addr.
//
// # Binding
//
// WithBinding decodes the merged values into a struct using the "config"
// tag. Strings are converted weakly ("30s" to time.Duration, "a,b" to
// []string). Zero fields take their `default` tag. The struct is then
// checked with fram.dev/validation using its `validate` tags:
//
//	type Server struct {
//	    Addr         string        `config:"addr" default:":8080" validate:"hostname_port"`
//	    ReadTimeout  time.Duration `config:"read_timeout" default:"5s"`
//	}
//
// The bound struct and the values are only replaced when every step
// succeeds, so a failed Load leaves the previous configuration in place.
package config
