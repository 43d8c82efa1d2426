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
	"fmt"
	"io"

	"gitlab.com/tozd/go/errors"
)

// 📋 ListOperation prints the files a rewrite would touch, one per line
type ListOperation struct {
	BaseOperation
	out         io.Writer
	withSources bool
}

// 🏭 NewListOperation creates a list operation writing to out
func NewListOperation(opts Options, out io.Writer, withSources bool) (*ListOperation, error) {
	base, err := NewBaseOperation(opts)
	if err != nil {
		return nil, err
	}
	return &ListOperation{BaseOperation: base, out: out, withSources: withSources}, nil
}

// 🏃 Execute runs discovery without reading or writing any target
func (op *ListOperation) Execute(ctx context.Context) error {
	matches, err := op.Finder.Find(ctx)
	if err != nil {
		return errors.Errorf("discovering notebooks: %w", err)
	}

	for _, m := range matches {
		line := m.Target
		if op.withSources {
			line = m.Source + "\t" + m.Target
		}
		if _, err := fmt.Fprintln(op.out, line); err != nil {
			return errors.Errorf("writing listing: %w", err)
		}
	}
	return nil
}
