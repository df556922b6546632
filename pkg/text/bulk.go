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
	"bytes"
	"context"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/fileorc/pkg/filesystem"
	"gitlab.com/tozd/go/errors"
)

// 📄 FileResult is the replace outcome of one sibling file
type FileResult struct {
	Path    string
	Count   int
	Written bool
	Err     error
}

// 🔄 BulkReplacer applies one search/replace to every file of a sibling set
type BulkReplacer struct {
	FS       filesystem.FileSystem
	Replacer TextReplacer
}

// 🏭 NewBulkReplacer creates a bulk replacer. A nil replacer means regex mode.
func NewBulkReplacer(fs filesystem.FileSystem, replacer TextReplacer) *BulkReplacer {
	if replacer == nil {
		replacer = NewRegexpReplacer()
	}
	return &BulkReplacer{FS: fs, Replacer: replacer}
}

// 🔄 Replace substitutes search with replace in each file of dir, one file
// at a time. Files without a match are never rewritten. The returned total
// sums the substitutions that were written. An invalid search pattern fails
// before any file is read; a file that cannot be read or written is
// recorded in its FileResult and the rest continue.
func (b *BulkReplacer) Replace(ctx context.Context, dir string, files []string, search, replace string) (int, []FileResult, error) {
	rules := []ReplacementRule{{Pattern: search, Replacement: replace}}
	if err := b.Replacer.ValidateRules(rules); err != nil {
		return 0, nil, errors.Errorf("validating search pattern: %w", err)
	}

	logger := zerolog.Ctx(ctx)
	total := 0
	results := make([]FileResult, 0, len(files))

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return total, results, errors.Errorf("bulk replace interrupted: %w", err)
		}

		res := b.replaceInFile(ctx, filepath.Join(dir, file), rules)
		if res.Err != nil {
			logger.Debug().Err(res.Err).Str("file", res.Path).Msg("bulk replace failed for file")
		} else {
			total += res.Count
		}
		results = append(results, res)
	}

	logger.Debug().Int("total", total).Int("files", len(files)).Msg("bulk replace finished")

	return total, results, nil
}

func (b *BulkReplacer) replaceInFile(ctx context.Context, path string, rules []ReplacementRule) FileResult {
	res := FileResult{Path: path}

	content, err := b.FS.ReadFile(ctx, path)
	if err != nil {
		res.Err = err
		return res
	}

	result, err := b.Replacer.ReplaceText(ctx, bytes.NewReader(content), rules)
	if err != nil {
		res.Err = errors.Errorf("replacing text: %w", err)
		return res
	}

	if result.ReplacementCount == 0 {
		return res
	}

	if err := b.FS.WriteFile(ctx, path, result.ModifiedContent); err != nil {
		res.Err = errors.Errorf("writing %s: %w", filepath.Base(path), err)
		return res
	}

	res.Count = result.ReplacementCount
	res.Written = true
	return res
}
