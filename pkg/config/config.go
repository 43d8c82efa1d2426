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

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

const (
	DefaultSourceExt = ".ipynb"
	DefaultTargetExt = ".md"
)

// DefaultFiles are looked up in the working directory, in order, when no
// config path is given.
var DefaultFiles = []string{".nbrewrite.yaml", ".nbrewrite.yml", ".nbrewrite.json", ".nbrewrite.hcl"}

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config represents the complete configuration
type Config struct {
	// Root is the directory searched for notebooks, the working directory if empty
	Root string `json:"root,omitempty" yaml:"root,omitempty" hcl:"root,optional"`
	// SourceExt is the notebook extension that is searched for
	SourceExt string `json:"source_ext,omitempty" yaml:"source_ext,omitempty" hcl:"source_ext,optional"`
	// TargetExt replaces SourceExt to locate the file that is rewritten
	TargetExt string `json:"target_ext,omitempty" yaml:"target_ext,omitempty" hcl:"target_ext,optional"`
	// Exclude holds doublestar patterns, relative to Root, of notebooks to skip
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty" hcl:"exclude,optional"`
	// LegacyPathRewrite replaces the extension name anywhere in the path
	LegacyPathRewrite bool `json:"legacy_path_rewrite,omitempty" yaml:"legacy_path_rewrite,omitempty" hcl:"legacy_path_rewrite,optional"`
	// SkipMissing reports missing target files instead of failing the run
	SkipMissing bool `json:"skip_missing,omitempty" yaml:"skip_missing,omitempty" hcl:"skip_missing,optional"`
	// DryRun computes the rewrite without touching any file
	DryRun bool `json:"dry_run,omitempty" yaml:"dry_run,omitempty" hcl:"dry_run,optional"`
}

// 🏭 Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		SourceExt: DefaultSourceExt,
		TargetExt: DefaultTargetExt,
		Exclude:   []string{"**/.ipynb_checkpoints/**"},
	}
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	// relative roots are resolved against the config file, not the caller
	if cfg.Root != "" && !filepath.IsAbs(cfg.Root) {
		cfg.Root = filepath.Join(filepath.Dir(path), cfg.Root)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔍 Find loads the config at path, or the first default file present in
// dir. With nothing to load it returns Default.
func Find(ctx context.Context, dir, path string) (*Config, error) {
	if path != "" {
		return Load(ctx, path)
	}

	for _, name := range DefaultFiles {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return Load(ctx, candidate)
		} else if !os.IsNotExist(err) {
			return nil, errors.Errorf("checking %s: %w", candidate, err)
		}
	}

	zerolog.Ctx(ctx).Debug().Str("dir", dir).Msg("no config file found, using defaults")
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating default config: %w", err)
	}
	return cfg, nil
}

// 🔍 Validate checks the configuration and fills in defaults
func (cfg *Config) Validate() error {
	if cfg.SourceExt == "" {
		cfg.SourceExt = DefaultSourceExt
	}
	if cfg.TargetExt == "" {
		cfg.TargetExt = DefaultTargetExt
	}

	for name, ext := range map[string]string{"source_ext": cfg.SourceExt, "target_ext": cfg.TargetExt} {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return errors.Errorf("%s %q must start with a dot", name, ext)
		}
		if strings.ContainsAny(ext, `/\*?[]{}`) {
			return errors.Errorf("%s %q must be a plain extension", name, ext)
		}
	}
	if cfg.SourceExt == cfg.TargetExt {
		return errors.Errorf("source_ext and target_ext must differ")
	}

	for i, pattern := range cfg.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("exclude %d: invalid pattern %q", i, pattern)
		}
	}

	if cfg.Root != "" {
		cfg.Root = filepath.Clean(cfg.Root)
	}

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	root := cfg.Root
	if root == "" {
		root = "."
	}
	return fmt.Sprintf("%s/**/*%s -> *%s", root, cfg.SourceExt, cfg.TargetExt)
}
