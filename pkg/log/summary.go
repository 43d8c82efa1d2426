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
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"gitlab.com/tozd/go/errors"
)

// 📊 Summary aggregates a finished run
type Summary struct {
	Notebooks    int
	Modified     int
	Unchanged    int
	Skipped      int
	Failed       int
	Lines        int
	Replacements int
	DryRun       bool
}

// RenderSummary renders the summary as a table
func RenderSummary(s Summary) (string, error) {
	modified := "rewritten"
	if s.DryRun {
		modified = "would rewrite"
	}

	data := pterm.TableData{
		{"notebooks", modified, "unchanged", "skipped", "failed", "lines", "replacements"},
		{
			strconv.Itoa(s.Notebooks),
			strconv.Itoa(s.Modified),
			strconv.Itoa(s.Unchanged),
			strconv.Itoa(s.Skipped),
			strconv.Itoa(s.Failed),
			strconv.Itoa(s.Lines),
			strconv.Itoa(s.Replacements),
		},
	}

	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", errors.Errorf("rendering summary: %w", err)
	}
	return out, nil
}

// 📝 Summary prints the run summary table
func (l *Logger) Summary(s Summary) error {
	table, err := RenderSummary(s)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, table)
	l.zlog.Info().
		Int("notebooks", s.Notebooks).
		Int("modified", s.Modified).
		Int("unchanged", s.Unchanged).
		Int("skipped", s.Skipped).
		Int("failed", s.Failed).
		Int("lines", s.Lines).
		Int("replacements", s.Replacements).
		Bool("dry_run", s.DryRun).
		Msg("summary")
	return nil
}
