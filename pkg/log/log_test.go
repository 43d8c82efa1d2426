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

package log

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "log_file_operation",
			op: func(t *testing.T, logger *Logger) {
				logger.LogFileOperation(context.Background(), FileOperation{
					Path:         "notes.md",
					Status:       "modified",
					IsModified:   true,
					Lines:        2,
					Replacements: 3,
				})
			},
			wantLogs: []string{
				"⟳ notes.md                            2 lines         modified",
			},
		},
		{
			name: "log_run",
			op: func(t *testing.T, logger *Logger) {
				logger.StartRun(context.Background(), RunOperation{
					Root:      "/tmp/site",
					Pattern:   "**/*.ipynb",
					Notebooks: 3,
				})
			},
			wantLogs: []string{
				"[rewriting /tmp/site]",
				"◆ **/*.ipynb • write",
			},
		},
		{
			name: "log_dry_run",
			op: func(t *testing.T, logger *Logger) {
				logger.StartRun(context.Background(), RunOperation{
					Root:    "/tmp/site",
					Pattern: "**/*.ipynb",
					DryRun:  true,
				})
			},
			wantLogs: []string{
				"[rewriting /tmp/site]",
				"◆ **/*.ipynb • dry run",
			},
		},
		{
			name: "relative_paths_inside_run",
			op: func(t *testing.T, logger *Logger) {
				logger.StartRun(context.Background(), RunOperation{Root: "/tmp/site", Pattern: "**/*.ipynb"})
				logger.LogFileOperation(context.Background(), FileOperation{
					Path:   "/tmp/site/sub/a.md",
					Status: "unchanged",
				})
			},
			wantLogs: []string{
				"[rewriting /tmp/site]",
				"◆ **/*.ipynb • write",
				"• sub/a.md                            0 lines         unchanged",
			},
		},
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("info message")
				logger.Warning("warning message")
				logger.Error("error message")
				logger.Success("success message")
			},
			wantLogs: []string{
				"ℹ️  info message",
				"⚠️  warning message",
				"❌ error message",
				"✅ success message",
			},
		},
		{
			name: "log_formatted_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Infof("info %s", "test")
				logger.Warningf("warning %s", "test")
				logger.Errorf("error %s", "test")
				logger.Successf("success %s", "test")
			},
			wantLogs: []string{
				"ℹ️  info test",
				"⚠️  warning test",
				"❌ error test",
				"✅ success test",
			},
		},
		{
			name: "log_header",
			op: func(t *testing.T, logger *Logger) {
				logger.Header("rewriting notebooks")
			},
			wantLogs: []string{
				"nbrewrite • rewriting notebooks",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.New(io.Discard))

			tt.op(t, logger)

			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Equal(t, want, strings.TrimSpace(lines[i]), "log line %d should match", i)
			}
		})
	}
}

func TestFileOperationFormatting(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name string
		op   FileOperation
		want string
	}{
		{
			name: "modified_file",
			op:   FileOperation{Path: "a.md", Status: "modified", IsModified: true, Lines: 4},
			want: "    ⟳ a.md                                4 lines         modified       ",
		},
		{
			name: "dry_run_file",
			op:   FileOperation{Path: "a.md", Status: "modified", IsModified: true, IsDryRun: true, Lines: 1},
			want: "    ⟳ a.md                                1 lines (dry)   modified       ",
		},
		{
			name: "skipped_file",
			op:   FileOperation{Path: "a.md", Status: "skipped", IsSkipped: true},
			want: "    - a.md                                0 lines         skipped        ",
		},
		{
			name: "failed_file",
			op:   FileOperation{Path: "a.md", Status: "failed", IsFailed: true},
			want: "    ✗ a.md                                0 lines         failed         ",
		},
		{
			name: "unchanged_file",
			op:   FileOperation{Path: "a.md", Status: "unchanged"},
			want: "    • a.md                                0 lines         unchanged      ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(io.Discard, zerolog.Nop())
			assert.Equal(t, tt.want, logger.formatFileOperation(tt.op), "formatted output should match")
		})
	}
}

func TestLoggerOperations(t *testing.T) {
	logger := New(io.Discard, zerolog.Nop())
	ctx := context.Background()

	logger.StartRun(ctx, RunOperation{Root: "/r"})
	logger.LogFileOperation(ctx, FileOperation{Path: "/r/a.md"})
	logger.LogFileOperation(ctx, FileOperation{Path: "/r/b.md"})
	logger.EndRun(ctx)

	ops := logger.Operations()
	require.Len(t, ops, 2, "operations should survive the end of the run")
	assert.Equal(t, "a.md", ops[0].Path)

	// ending twice is a no-op
	logger.EndRun(ctx)
}

func TestSummary(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	tests := []struct {
		name    string
		summary Summary
		want    []string
	}{
		{
			name:    "write_run",
			summary: Summary{Notebooks: 3, Modified: 2, Unchanged: 1, Lines: 5, Replacements: 7},
			want:    []string{"notebooks", "rewritten", "unchanged", "replacements", "7"},
		},
		{
			name:    "dry_run",
			summary: Summary{Notebooks: 1, Modified: 1, DryRun: true},
			want:    []string{"would rewrite"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.Nop())

			require.NoError(t, logger.Summary(tt.summary))
			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}
