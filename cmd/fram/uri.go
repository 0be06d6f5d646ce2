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
	"strings"

	"github.com/spf13/cobra"

	"fram.dev/router"
)

func uriCmd(configPath *string) *cobra.Command {
	var query []string

	cmd := &cobra.Command{
		Use:   "uri NAME [key=value...]",
		Short: "Generate the URI of a named route",
		Example: `  fram uri post.show slug=hello id=42
  fram uri post.list --query page=2 --query tag=go`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			subs, err := parsePairs(args[1:])
			if err != nil {
				return err
			}
			q, err := parsePairs(query)
			if err != nil {
				return err
			}

			a, _, _, err := loadApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			uri, err := a.Router().GenerateURI(args[0], subs, router.QueryFromMap(q))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), uri)
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&query, "query", "q", nil, "query parameter as key=value (repeatable)")
	return cmd
}

func parsePairs(pairs []string) (map[string]any, error) {
	out := make(map[string]any, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid pair %q, want key=value", p)
		}
		out[k] = v
	}
	return out, nil
}
