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
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func upper(ctx context.Context, src io.Reader, dst io.Writer) (bool, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return false, err
	}
	out := strings.ToUpper(string(data))
	if _, err := io.WriteString(dst, out); err != nil {
		return false, err
	}
	return out != string(data), nil
}

func tempFiles(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, ".*.tmp"))
	require.NoError(t, err)
	return matches
}

func TestReplaceFile(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		transform   Transform
		opts        ReplaceOptions
		want        string
		wantChanged bool
		errContains string
	}{
		{
			name:        "rewrites_file",
			content:     "hello\n",
			transform:   upper,
			want:        "HELLO\n",
			wantChanged: true,
		},
		{
			name:      "unchanged_keeps_original",
			content:   "HELLO\n",
			transform: upper,
			want:      "HELLO\n",
		},
		{
			name:        "dry_run_keeps_original",
			content:     "hello\n",
			transform:   upper,
			opts:        ReplaceOptions{DryRun: true},
			want:        "hello\n",
			wantChanged: true,
		},
		{
			name:    "transform_error_keeps_original",
			content: "hello\n",
			transform: func(ctx context.Context, src io.Reader, dst io.Writer) (bool, error) {
				_, _ = io.WriteString(dst, "partial")
				return false, errors.New("disk full")
			},
			want:        "hello\n",
			errContains: "disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "notes.md")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0640))

			ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
			changed, err := ReplaceFile(ctx, path, tt.transform, tt.opts)

			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantChanged, changed, "changed flag should match")
			}

			got, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got), "file content should match")
			assert.Empty(t, tempFiles(t, dir), "temp files should be cleaned up")

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0640), info.Mode().Perm(), "file mode should be preserved")
		})
	}
}

func TestReplaceFileMissing(t *testing.T) {
	_, err := ReplaceFile(context.Background(), filepath.Join(t.TempDir(), "missing.md"), upper, ReplaceOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist), "error should wrap not-exist")
}

func TestReplaceFileDirectory(t *testing.T) {
	dir := t.TempDir()
	_, err := ReplaceFile(context.Background(), dir, upper, ReplaceOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
}

func TestManager(t *testing.T) {
	ctx := zerolog.New(io.Discard).WithContext(context.Background())
	mgr := New(nil)

	mgr.StartOperation(ctx, 3)
	mgr.TrackFile(ctx, FileInfo{Path: "/b.md", Status: StatusModified, LinesChanged: 2, Replacements: 3})
	mgr.UpdateProgress(ctx, 1)
	mgr.TrackFile(ctx, FileInfo{Path: "/a.md", Status: StatusUnchanged})
	mgr.UpdateProgress(ctx, 2)
	mgr.TrackFile(ctx, FileInfo{Path: "/c.md", Status: StatusFailed, Error: errors.New("boom")})
	mgr.UpdateProgress(ctx, 3)
	mgr.FinishOperation(ctx)

	files := mgr.ListFiles(ctx)
	require.Len(t, files, 3)
	assert.Equal(t, []string{"/a.md", "/b.md", "/c.md"}, []string{files[0].Path, files[1].Path, files[2].Path})

	assert.Equal(t, 3, files[1].Replacements)
	assert.Equal(t, "boom", files[2].Error.Error())

	assert.Equal(t, map[FileStatus]int{StatusModified: 1, StatusUnchanged: 1, StatusFailed: 1}, mgr.Counts())

	processed, total := mgr.Progress()
	assert.Equal(t, 3, processed)
	assert.Equal(t, 3, total)
}

func TestFileStatusString(t *testing.T) {
	assert.Equal(t, "modified", StatusModified.String())
	assert.Equal(t, "unchanged", StatusUnchanged.String())
	assert.Equal(t, "skipped", StatusSkipped.String())
	assert.Equal(t, "failed", StatusFailed.String())
	assert.Equal(t, "unknown", StatusUnknown.String())
}

func TestDefaultFileFormatter(t *testing.T) {
	f := NewDefaultFileFormatter()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"modified", f.FormatFileOperation("a.md", StatusModified), "📝 Rewrote a.md"},
		{"unchanged", f.FormatFileOperation("a.md", StatusUnchanged), "👍 Unchanged a.md"},
		{"skipped", f.FormatFileOperation("a.md", StatusSkipped), "⏭️  Skipped a.md"},
		{"failed", f.FormatFileOperation("a.md", StatusFailed), "❌ Failed a.md"},
		{"progress_partial", f.FormatProgress(1, 4), "⏳ Progress: 1/4 (25%)"},
		{"progress_done", f.FormatProgress(4, 4), "✅ Progress: 4/4 (100%)"},
		{"progress_empty", f.FormatProgress(0, 0), "✅ Progress: 0/0 (0%)"},
		{"error", f.FormatError(errors.New("boom")), "❌ Error: boom"},
		{"nil_error", f.FormatError(nil), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}
