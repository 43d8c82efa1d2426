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

// Package discover finds exported notebooks under a directory and maps
// each one to the markdown file that sits next to it.
package discover

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Match is one discovered notebook and the file derived from it
type Match struct {
	Source string // absolute notebook path
	Target string // absolute path of the file to rewrite
}

// Options controls discovery
type Options struct {
	Root              string   // directory to search, working directory if empty
	SourceExt         string   // e.g. ".ipynb"
	TargetExt         string   // e.g. ".md"
	Exclude           []string // doublestar patterns relative to Root
	LegacyPathRewrite bool     // replace the extension name anywhere in the path
}

// 🔍 Discoverer walks a directory tree for notebooks
type Discoverer struct {
	opts Options
}

// 🏭 New creates a Discoverer
func New(opts Options) (*Discoverer, error) {
	if opts.SourceExt == "" || opts.TargetExt == "" {
		return nil, errors.Errorf("source and target extensions are required")
	}
	for _, pattern := range opts.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid exclude pattern %q", pattern)
		}
	}
	return &Discoverer{opts: opts}, nil
}

// Find returns every match under the root, sorted by target path. The
// target files are not checked for existence.
func (d *Discoverer) Find(ctx context.Context) ([]Match, error) {
	logger := zerolog.Ctx(ctx)

	root, err := d.root()
	if err != nil {
		return nil, err
	}

	// doublestar skips unreadable directories on its own, the root must fail loudly
	if _, err := os.ReadDir(root); err != nil {
		return nil, errors.Errorf("reading root directory: %w", err)
	}

	pattern := "**/*" + d.opts.SourceExt
	logger.Debug().Str("root", root).Str("pattern", pattern).Msg("discovering notebooks")

	var matches []Match
	err = doublestar.GlobWalk(os.DirFS(root), pattern, func(rel string, entry fs.DirEntry) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		if d.excluded(rel) {
			logger.Debug().Str("path", rel).Msg("notebook excluded")
			return nil
		}

		source := filepath.Join(root, filepath.FromSlash(rel))
		matches = append(matches, Match{
			Source: source,
			Target: d.TargetPath(source),
		})
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("walking %s: %w", root, err)
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].Target < matches[j].Target })

	logger.Debug().Int("count", len(matches)).Msg("discovery complete")
	return matches, nil
}

// TargetPath derives the file to rewrite from a notebook path
func (d *Discoverer) TargetPath(source string) string {
	if d.opts.LegacyPathRewrite {
		return strings.ReplaceAll(source,
			strings.TrimPrefix(d.opts.SourceExt, "."),
			strings.TrimPrefix(d.opts.TargetExt, "."))
	}
	return strings.TrimSuffix(source, d.opts.SourceExt) + d.opts.TargetExt
}

func (d *Discoverer) excluded(rel string) bool {
	for _, pattern := range d.opts.Exclude {
		// patterns were validated in New
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

func (d *Discoverer) root() (string, error) {
	root := d.opts.Root
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", errors.Errorf("getting working directory: %w", err)
		}
		root = wd
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", errors.Errorf("resolving root %s: %w", root, err)
	}
	return abs, nil
}
