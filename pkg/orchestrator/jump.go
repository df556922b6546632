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
	"path/filepath"

	"github.com/walteh/fileorc/pkg/extension"
	"github.com/walteh/fileorc/pkg/prompt"
)

// 🦘 Jump lets the user pick one sibling of file and returns its path.
// An empty path with a nil error means there was nothing to pick.
func (o *Orchestrator) Jump(ctx context.Context, file string) (string, error) {
	a, err := o.prepare(ctx, "jump to", file, true)
	if err != nil {
		return "", err
	}

	files, err := o.siblings(ctx, a)
	if err != nil {
		return "", err
	}

	if len(files) == 0 {
		o.logger.Info("No related files found.")
		return "", nil
	}

	items := make([]prompt.Item, len(files))
	for i, f := range files {
		items[i] = prompt.Item{
			Label:       f,
			Description: extension.Ext(f),
			Detail:      o.relative(filepath.Join(a.dir, f)),
		}
	}

	idx, err := o.prompter.Choose(ctx, prompt.Choice{
		Key:         prompt.KeyPick,
		Placeholder: "Select a file to jump to (from " + o.relative(a.file) + ")",
		Items:       items,
	})
	if err != nil {
		return "", err
	}

	return filepath.Join(a.dir, files[idx]), nil
}
