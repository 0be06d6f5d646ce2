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

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fram.dev/app"
	"fram.dev/config/codec"
)

func configCmd(configPath *string) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the merged configuration",
		Long: `Print the configuration after merging the file and FRAM_ environment
variables. Defaults that only live in struct tags are not shown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch codec.Type(format) {
			case codec.TypeYAML, codec.TypeJSON, codec.TypeTOML:
			default:
				return fmt.Errorf("unsupported format %q (want yaml, json or toml)", format)
			}

			_, raw, err := app.LoadConfig(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			out, err := raw.Encode(codec.Type(format))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format: yaml, json or toml")
	return cmd
}
