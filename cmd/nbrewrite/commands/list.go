// Copyright 2025 walteh LLC
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

package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/nbrewrite/cmd/nbrewrite/opts"
	"github.com/walteh/nbrewrite/pkg/operation"
)

// NewListCmd creates the list command
func NewListCmd(o *opts.RootOpts) *cobra.Command {
	var withSources bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the markdown files a rewrite would touch",
		Long: `List discovers notebooks the same way a rewrite does and prints the
derived markdown path of each one. Nothing is read or written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := o.Load(ctx)
			if err != nil {
				return err
			}

			op, err := operation.NewListOperation(operation.Options{Config: cfg}, cmd.OutOrStdout(), withSources)
			if err != nil {
				return err
			}
			return op.Execute(ctx)
		},
	}

	cmd.Flags().BoolVarP(&withSources, "sources", "s", false, "print the notebook path before each target")

	return cmd
}
