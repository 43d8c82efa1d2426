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

package operation

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/walteh/nbrewrite/pkg/config"
	"github.com/walteh/nbrewrite/pkg/discover"
	"github.com/walteh/nbrewrite/pkg/log"
	"github.com/walteh/nbrewrite/pkg/status"
	"github.com/walteh/nbrewrite/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation is a unit of work run by the OperationRunner
type Operation interface {
	Execute(ctx context.Context) error
}

// 🔍 Finder produces the files an operation works on
type Finder interface {
	Find(ctx context.Context) ([]discover.Match, error)
}

// 🔧 Options contains what every operation needs
type Options struct {
	// Config is the nbrewrite configuration
	Config *config.Config
	// Finder overrides discovery, built from Config when nil
	Finder Finder
	// Rules are the substitution rules, text.DefaultRules when nil
	Rules *text.Rules
	// StatusMgr tracks per-file outcomes
	StatusMgr *status.Manager
	// Console prints user-facing progress
	Console *log.Logger
}

// 📦 BaseOperation holds the shared, validated dependencies
type BaseOperation struct {
	Config    *config.Config
	Finder    Finder
	Rules     *text.Rules
	StatusMgr *status.Manager
	Console   *log.Logger
}

// 🏭 NewBaseOperation validates options and fills in defaults
func NewBaseOperation(opts Options) (BaseOperation, error) {
	if opts.Config == nil {
		return BaseOperation{}, errors.Errorf("config is required")
	}

	finder := opts.Finder
	if finder == nil {
		d, err := NewDiscoverer(opts.Config)
		if err != nil {
			return BaseOperation{}, err
		}
		finder = d
	}

	rules := opts.Rules
	if rules == nil {
		rules = text.DefaultRules()
	}

	statusMgr := opts.StatusMgr
	if statusMgr == nil {
		statusMgr = status.New(nil)
	}

	console := opts.Console
	if console == nil {
		console = log.New(io.Discard, zerolog.Nop())
	}

	return BaseOperation{
		Config:    opts.Config,
		Finder:    finder,
		Rules:     rules,
		StatusMgr: statusMgr,
		Console:   console,
	}, nil
}

// NewDiscoverer builds the notebook discoverer described by cfg
func NewDiscoverer(cfg *config.Config) (*discover.Discoverer, error) {
	d, err := discover.New(discover.Options{
		Root:              cfg.Root,
		SourceExt:         cfg.SourceExt,
		TargetExt:         cfg.TargetExt,
		Exclude:           cfg.Exclude,
		LegacyPathRewrite: cfg.LegacyPathRewrite,
	})
	if err != nil {
		return nil, errors.Errorf("creating discoverer: %w", err)
	}
	return d, nil
}
