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

package opts

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/walteh/nbrewrite/pkg/config"
	"github.com/walteh/nbrewrite/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigFile string // explicit config file, searched for in Root when empty
	Root       string // overrides the configured root
	Debug      bool
	DryRun     bool
	Verbose    bool
}

// 🔧 Load finds the config and applies flag overrides on top of it
func (o *RootOpts) Load(ctx context.Context) (*config.Config, error) {
	dir := o.Root
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Errorf("getting working directory: %w", err)
		}
		dir = wd
	}

	cfg, err := config.Find(ctx, dir, o.ConfigFile)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}

	if o.Root != "" {
		cfg.Root = o.Root
	}
	if o.DryRun {
		cfg.DryRun = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("config", cfg.String()).Bool("dry_run", cfg.DryRun).Msg("configuration loaded")
	return cfg, nil
}

// 🖥️ Console returns the user-facing logger, silent unless Verbose is set
func (o *RootOpts) Console(ctx context.Context, out io.Writer) *log.Logger {
	if !o.Verbose {
		out = io.Discard
	}
	return log.New(out, *zerolog.Ctx(ctx))
}
