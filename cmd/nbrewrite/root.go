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

package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/nbrewrite/cmd/nbrewrite/commands"
	"github.com/walteh/nbrewrite/cmd/nbrewrite/opts"
	"github.com/walteh/nbrewrite/pkg/operation"
	"github.com/walteh/nbrewrite/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// newRootCmd builds the command tree. Running it without a subcommand
// rewrites every markdown export under the root.
func newRootCmd() *cobra.Command {
	o := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:   "nbrewrite",
		Short: "Quote HTML attributes in markdown exported from notebooks",
		Long: `nbrewrite finds every notebook under a directory, takes the markdown
file exported next to it and rewrites bare table attributes in place:

  class=x     -> class="x"
  scope=row   -> scope="row"
  <table>     -> <table class="table-responsive table-striped">

Files are replaced atomically and left alone when nothing changes. Nothing
is printed unless --verbose is set; errors go to stderr.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(setupLogging(cmd, o.Debug))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRewrite(cmd, o)
		},
	}

	addRootFlags(cmd, o)

	cmd.AddCommand(
		commands.NewListCmd(o),
		commands.NewVersionCmd(),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", "", "config file path (default: .nbrewrite.{yaml,yml,json,hcl} in the root)")
	cmd.PersistentFlags().StringVarP(&o.Root, "root", "r", "", "directory to search (default: working directory)")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&o.DryRun, "dry-run", false, "report changes without writing files")
	cmd.PersistentFlags().BoolVarP(&o.Verbose, "verbose", "v", false, "print per-file results and a summary")
}

func runRewrite(cmd *cobra.Command, o *opts.RootOpts) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	cfg, err := o.Load(ctx)
	if err != nil {
		return err
	}

	console := o.Console(ctx, cmd.OutOrStdout())
	console.Header("rewriting notebook exports")

	op, err := operation.NewRewriteOperation(operation.Options{
		Config:    cfg,
		StatusMgr: status.New(nil),
		Console:   console,
	})
	if err != nil {
		return errors.Errorf("creating rewrite operation: %w", err)
	}

	runErr := operation.NewRunner(logger).Run(ctx, op)

	summary := op.Summary(ctx)

	// the summary covers whatever ran before a failure
	if err := console.Summary(summary); err != nil {
		logger.Warn().Err(err).Msg("rendering summary")
	}

	if runErr != nil {
		console.Errorf("rewrite stopped after %d of %d files", summary.Modified+summary.Unchanged+summary.Skipped, summary.Notebooks)
		return runErr
	}

	console.Successf("%d of %d files rewritten", summary.Modified, summary.Notebooks)
	return nil
}
