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

package text

import (
	"bufio"
	"context"
	"io"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ReplacementResult summarizes a streamed rewrite
type ReplacementResult struct {
	LinesRead        int
	LinesChanged     int
	ReplacementCount int
	WasModified      bool
}

// 🔄 LineReplacer streams content line by line through a fixed rule set
type LineReplacer struct {
	rules *Rules
}

// NewLineReplacer creates a LineReplacer for the given rules
func NewLineReplacer(rules *Rules) *LineReplacer {
	return &LineReplacer{rules: rules}
}

// ReplaceLines reads src to EOF and writes every line, rewritten or not, to dst
func (r *LineReplacer) ReplaceLines(ctx context.Context, src io.Reader, dst io.Writer) (*ReplacementResult, error) {
	logger := zerolog.Ctx(ctx)

	in := bufio.NewReader(src)
	out := bufio.NewWriter(dst)
	result := &ReplacementResult{}

	for {
		line, readErr := in.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, errors.Errorf("reading line %d: %w", result.LinesRead+1, readErr)
		}
		if line == "" && readErr == io.EOF {
			break
		}
		result.LinesRead++

		lr := r.rules.RewriteLine(line)
		if lr.Changed() {
			result.LinesChanged++
			result.ReplacementCount += lr.Substitutions
			logger.Trace().
				Int("line", result.LinesRead).
				Str("set", lr.Set).
				Int("substitutions", lr.Substitutions).
				Msg("line rewritten")
		}

		if _, err := out.WriteString(lr.Line); err != nil {
			return nil, errors.Errorf("writing line %d: %w", result.LinesRead, err)
		}

		if readErr == io.EOF {
			break
		}
	}

	if err := out.Flush(); err != nil {
		return nil, errors.Errorf("flushing output: %w", err)
	}

	result.WasModified = result.LinesChanged > 0
	return result, nil
}
