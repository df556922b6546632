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

	"github.com/walteh/fileorc/pkg/keybinding"
)

// ⌨️ UpdateShortcut writes the configured jump shortcut into the keybindings
// file at path, or the editor's default file when path is empty
func (o *Orchestrator) UpdateShortcut(ctx context.Context, path string) (*keybinding.Result, error) {
	if path == "" {
		p, err := keybinding.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	res, err := keybinding.UpdateShortcut(ctx, o.fs, path, o.shortcut)
	if err != nil {
		return nil, err
	}

	switch {
	case res.Added:
		o.logger.Successf("Added %s for %s in %s", res.Key, keybinding.JumpCommand, res.Path)
	case res.Changed:
		o.logger.Successf("Changed %s shortcut from %s to %s in %s", keybinding.JumpCommand, res.Previous, res.Key, res.Path)
	default:
		o.logger.Infof("Shortcut for %s is already %s", keybinding.JumpCommand, res.Key)
	}

	return res, nil
}
