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
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		config      string
		errContains string
		check       func(t *testing.T, dir string, cfg *Config)
	}{
		{
			name:     "yaml_config",
			filename: ".nbrewrite.yaml",
			config: `
root: docs
exclude:
  - "drafts/**"
skip_missing: true
dry_run: true
`,
			check: func(t *testing.T, dir string, cfg *Config) {
				assert.Equal(t, filepath.Join(dir, "docs"), cfg.Root, "root should resolve against config dir")
				assert.Equal(t, []string{"drafts/**"}, cfg.Exclude, "exclude should replace defaults")
				assert.Equal(t, DefaultSourceExt, cfg.SourceExt, "source ext should default")
				assert.Equal(t, DefaultTargetExt, cfg.TargetExt, "target ext should default")
				assert.True(t, cfg.SkipMissing)
				assert.True(t, cfg.DryRun)
				assert.False(t, cfg.LegacyPathRewrite)
			},
		},
		{
			name:     "empty_yaml_uses_defaults",
			filename: "config.yml",
			config:   "",
			check: func(t *testing.T, dir string, cfg *Config) {
				assert.Equal(t, Default().Exclude, cfg.Exclude)
				assert.Empty(t, cfg.Root)
			},
		},
		{
			name:     "json_config",
			filename: ".nbrewrite.json",
			config:   `{"source_ext": ".nb", "target_ext": ".markdown", "legacy_path_rewrite": true}`,
			check: func(t *testing.T, dir string, cfg *Config) {
				assert.Equal(t, ".nb", cfg.SourceExt)
				assert.Equal(t, ".markdown", cfg.TargetExt)
				assert.True(t, cfg.LegacyPathRewrite)
			},
		},
		{
			name:     "hcl_config",
			filename: ".nbrewrite.hcl",
			config: `
root    = "/abs/notebooks"
exclude = ["**/scratch/**", "old/*.ipynb"]
dry_run = true
`,
			check: func(t *testing.T, dir string, cfg *Config) {
				assert.Equal(t, "/abs/notebooks", cfg.Root)
				assert.Equal(t, []string{"**/scratch/**", "old/*.ipynb"}, cfg.Exclude)
				assert.True(t, cfg.DryRun)
				assert.Equal(t, DefaultTargetExt, cfg.TargetExt)
			},
		},
		{
			name:     "hcl_cwd_variable",
			filename: "nb.hcl",
			config:   `root = "${cwd}/site"`,
			check: func(t *testing.T, dir string, cfg *Config) {
				cwd, err := os.Getwd()
				require.NoError(t, err)
				assert.Equal(t, filepath.Join(cwd, "site"), cfg.Root)
			},
		},
		{
			name:        "unknown_yaml_field",
			filename:    ".nbrewrite.yaml",
			config:      "rules: []\n",
			errContains: "parsing YAML",
		},
		{
			name:        "unknown_json_field",
			filename:    ".nbrewrite.json",
			config:      `{"rules": []}`,
			errContains: "parsing JSON",
		},
		{
			name:        "invalid_hcl",
			filename:    ".nbrewrite.hcl",
			config:      `root = `,
			errContains: "parsing HCL",
		},
		{
			name:        "unknown_hcl_attribute",
			filename:    ".nbrewrite.hcl",
			config:      `rules = []`,
			errContains: "decoding HCL",
		},
		{
			name:        "unsupported_extension",
			filename:    "config.toml",
			config:      `root = "x"`,
			errContains: "no parser found",
		},
		{
			name:        "extension_without_dot",
			filename:    ".nbrewrite.yaml",
			config:      "target_ext: md\n",
			errContains: "must start with a dot",
		},
		{
			name:        "same_extensions",
			filename:    ".nbrewrite.yaml",
			config:      "source_ext: .md\n",
			errContains: "must differ",
		},
		{
			name:        "invalid_exclude_pattern",
			filename:    ".nbrewrite.yaml",
			config:      "exclude: [\"[\"]\n",
			errContains: "invalid pattern",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, tt.filename)
			require.NoError(t, os.WriteFile(path, []byte(tt.config), 0644))

			ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
			cfg, err := Load(ctx, path)

			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)
			tt.check(t, dir, cfg)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestFind(t *testing.T) {
	t.Run("defaults_without_file", func(t *testing.T) {
		cfg, err := Find(context.Background(), t.TempDir(), "")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("first_default_file_wins", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".nbrewrite.yml"), []byte("dry_run: true\n"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".nbrewrite.hcl"), []byte("skip_missing = true\n"), 0644))

		cfg, err := Find(context.Background(), dir, "")
		require.NoError(t, err)
		assert.True(t, cfg.DryRun)
		assert.False(t, cfg.SkipMissing)
	})

	t.Run("explicit_path", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "custom.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"skip_missing": true}`), 0644))

		cfg, err := Find(context.Background(), t.TempDir(), path)
		require.NoError(t, err)
		assert.True(t, cfg.SkipMissing)
	})
}

func TestConfigString(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "./**/*.ipynb -> *.md", cfg.String())

	cfg.Root = "/tmp/nb"
	assert.Equal(t, "/tmp/nb/**/*.ipynb -> *.md", cfg.String())
}
