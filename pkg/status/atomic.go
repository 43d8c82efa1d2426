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

package status

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Transform streams src into dst and reports whether dst differs from src
type Transform func(ctx context.Context, src io.Reader, dst io.Writer) (bool, error)

// ReplaceOptions controls ReplaceFile
type ReplaceOptions struct {
	// DryRun runs the transform but never renames the result into place
	DryRun bool
}

// 💾 ReplaceFile streams path through transform into a temp file in the same
// directory and renames it over path. The original is only replaced once the
// new content is fully written and synced, and is left untouched when the
// transform reports no change.
func ReplaceFile(ctx context.Context, path string, transform Transform, opts ReplaceOptions) (changed bool, err error) {
	logger := zerolog.Ctx(ctx)

	src, err := os.Open(path)
	if err != nil {
		return false, errors.Errorf("opening source file: %w", err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return false, errors.Errorf("stating source file: %w", err)
	}
	if info.IsDir() {
		return false, errors.Errorf("%s is a directory", path)
	}

	dir, base := filepath.Split(path)
	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return false, errors.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	renamed := false
	defer func() {
		if renamed {
			return
		}
		tmp.Close()
		if rmErr := os.Remove(tmpPath); rmErr != nil && !os.IsNotExist(rmErr) {
			logger.Warn().Err(rmErr).Str("path", tmpPath).Msg("removing temp file")
		}
	}()

	changed, err = transform(ctx, src, tmp)
	if err != nil {
		return false, errors.Errorf("transforming %s: %w", path, err)
	}

	if !changed {
		logger.Debug().Str("path", path).Msg("content unchanged, keeping original")
		return false, nil
	}
	if opts.DryRun {
		logger.Debug().Str("path", path).Msg("dry run, keeping original")
		return true, nil
	}

	if err := tmp.Chmod(info.Mode().Perm()); err != nil {
		return false, errors.Errorf("setting temp file mode: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return false, errors.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return false, errors.Errorf("closing temp file: %w", err)
	}
	// windows refuses to rename over an open file
	src.Close()

	// Rename temp file to target (atomic operation)
	if err := os.Rename(tmpPath, path); err != nil {
		return false, errors.Errorf("renaming temp file: %w", err)
	}
	renamed = true

	logger.Debug().Str("path", path).Msg("file replaced")
	return true, nil
}
