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

// Command fram serves and inspects a fram application described by a
// configuration file.
//
//	fram serve --config fram.yaml
//	fram routes --config fram.yaml
//	fram uri post.show slug=hello id=42 --query page=2
//	fram config --format toml
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "fram",
		Short: "Serve and inspect fram applications",
		Long: `fram runs a request-dispatch application defined by a YAML, JSON or
TOML configuration file. Values may be overridden with FRAM_ environment
variables, using a double underscore for nesting (FRAM_SERVER__ADDR).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "configuration file")

	root.AddCommand(
		serveCmd(&configPath),
		routesCmd(&configPath),
		uriCmd(&configPath),
		configCmd(&configPath),
		versionCmd(),
	)
	return root
}
