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

package orchestrator

import (
	"context"
	"fmt"
	"path/filepath"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/fileorc/pkg/prompt"
	"github.com/walteh/fileorc/pkg/text"
)

// 🔄 BulkReplace replaces search in every sibling of file. It returns the
// number of occurrences replaced and the per-file results.
func (o *Orchestrator) BulkReplace(ctx context.Context, file, search string) (int, []text.FileResult, error) {
	// the active file and the search text are checked before the extension list prompt
	if _, err := o.activeFile(ctx, file); err != nil {
		o.logger.Error("No active file to bulk replace")
		return 0, nil, errors.Errorf("%w to bulk replace: %w", ErrNoActiveFile, err)
	}
	if search == "" {
		o.logger.Error("Please select text to replace")
		return 0, nil, ErrNoSearchText
	}

	a, err := o.prepare(ctx, "bulk replace", file, true)
	if err != nil {
		return 0, nil, err
	}

	replace, err := o.prompter.Ask(ctx, prompt.Input{
		Key:    prompt.KeyReplace,
		Prompt: fmt.Sprintf("Enter replace pattern for %q", search),
		Value:  search,
		Raw:    true,
	})
	if err != nil {
		return 0, nil, err
	}

	files, err := o.siblings(ctx, a)
	if err != nil {
		return 0, nil, err
	}

	var replacer text.TextReplacer
	if o.literal {
		replacer = text.NewLiteralReplacer()
	}

	total, results, err := text.NewBulkReplacer(o.fs, replacer).Replace(ctx, a.dir, files, search, replace)
	if err != nil {
		return total, results, err
	}

	for _, r := range results {
		if r.Err != nil {
			o.logger.Errorf("Failed to replace in file %s: %v", filepath.Base(r.Path), r.Err)
		}
	}

	o.logger.Infof("Bulk replace completed. %d occurrences replaced.", total)

	return total, results, nil
}
