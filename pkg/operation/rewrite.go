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
	"os"

	"github.com/rs/zerolog"
	"github.com/walteh/nbrewrite/pkg/discover"
	"github.com/walteh/nbrewrite/pkg/log"
	"github.com/walteh/nbrewrite/pkg/status"
	"github.com/walteh/nbrewrite/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 📝 RewriteOperation rewrites the markdown export of every discovered notebook
type RewriteOperation struct {
	BaseOperation
	replacer *text.LineReplacer
}

// 🏭 NewRewriteOperation creates a new rewrite operation
func NewRewriteOperation(opts Options) (*RewriteOperation, error) {
	base, err := NewBaseOperation(opts)
	if err != nil {
		return nil, err
	}
	return &RewriteOperation{
		BaseOperation: base,
		replacer:      text.NewLineReplacer(base.Rules),
	}, nil
}

// 🏃 Execute discovers notebooks and rewrites each target in turn. The first
// failure stops the run; files already rewritten stay rewritten.
func (op *RewriteOperation) Execute(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	matches, err := op.Finder.Find(ctx)
	if err != nil {
		return errors.Errorf("discovering notebooks: %w", err)
	}

	root := op.Config.Root
	if root == "" {
		if wd, err := os.Getwd(); err == nil {
			root = wd
		}
	}

	op.Console.StartRun(ctx, log.RunOperation{
		Root:      root,
		Pattern:   "**/*" + op.Config.SourceExt,
		Notebooks: len(matches),
		DryRun:    op.Config.DryRun,
	})
	defer op.Console.EndRun(ctx)

	op.StatusMgr.StartOperation(ctx, len(matches))
	defer op.StatusMgr.FinishOperation(ctx)

	if len(matches) == 0 {
		logger.Debug().Msg("no notebooks found")
		op.Console.Infof("no %s files found", op.Config.SourceExt)
		return nil
	}

	for i, m := range matches {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("rewrite cancelled: %w", err)
		}
		if err := op.processFile(ctx, m); err != nil {
			return errors.Errorf("processing %s: %w", m.Target, err)
		}
		op.StatusMgr.UpdateProgress(ctx, i+1)
	}

	return nil
}

// 📄 processFile rewrites a single target file
func (op *RewriteOperation) processFile(ctx context.Context, m discover.Match) error {
	logger := zerolog.Ctx(ctx).With().Str("target", m.Target).Logger()
	ctx = logger.WithContext(ctx)

	info := status.FileInfo{
		Path:   m.Target,
		Source: m.Source,
		DryRun: op.Config.DryRun,
	}

	var result *text.ReplacementResult
	transform := func(ctx context.Context, src io.Reader, dst io.Writer) (bool, error) {
		r, err := op.replacer.ReplaceLines(ctx, src, dst)
		if err != nil {
			return false, err
		}
		result = r
		return r.WasModified, nil
	}

	changed, err := status.ReplaceFile(ctx, m.Target, transform, status.ReplaceOptions{DryRun: op.Config.DryRun})
	switch {
	case err != nil && op.Config.SkipMissing && errors.Is(err, os.ErrNotExist):
		info.Status = status.StatusSkipped
		op.Console.Warningf("%s has no %s export, skipping", m.Source, op.Config.TargetExt)
	case err != nil:
		info.Status = status.StatusFailed
		info.Error = err
		op.track(ctx, info)
		return err
	case changed:
		info.Status = status.StatusModified
	default:
		info.Status = status.StatusUnchanged
	}

	if result != nil {
		info.LinesRead = result.LinesRead
		info.LinesChanged = result.LinesChanged
		info.Replacements = result.ReplacementCount
	}

	op.track(ctx, info)
	return nil
}

func (op *RewriteOperation) track(ctx context.Context, info status.FileInfo) {
	op.StatusMgr.TrackFile(ctx, info)
	op.Console.LogFileOperation(ctx, log.FileOperation{
		Path:         info.Path,
		Status:       info.Status.String(),
		IsModified:   info.Status == status.StatusModified,
		IsSkipped:    info.Status == status.StatusSkipped,
		IsFailed:     info.Status == status.StatusFailed,
		IsDryRun:     info.DryRun,
		Lines:        info.LinesChanged,
		Replacements: info.Replacements,
	})
}

// 📊 Summary aggregates the tracked outcomes of the run
func (op *RewriteOperation) Summary(ctx context.Context) log.Summary {
	_, total := op.StatusMgr.Progress()
	counts := op.StatusMgr.Counts()

	s := log.Summary{
		Notebooks: total,
		Modified:  counts[status.StatusModified],
		Unchanged: counts[status.StatusUnchanged],
		Skipped:   counts[status.StatusSkipped],
		Failed:    counts[status.StatusFailed],
		DryRun:    op.Config.DryRun,
	}
	for _, f := range op.StatusMgr.ListFiles(ctx) {
		s.Lines += f.LinesChanged
		s.Replacements += f.Replacements
	}
	return s
}
