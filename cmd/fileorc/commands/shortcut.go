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

package commands

import (
	"github.com/spf13/cobra"

	"github.com/walteh/fileorc/cmd/fileorc/opts"
)

// NewShortcutCmd creates the command that writes the jump shortcut into keybindings.json
func NewShortcutCmd(opts *opts.RootOpts) *cobra.Command {
	var keybindings string

	cmd := &cobra.Command{
		Use:     "shortcut",
		Aliases: []string{"updateJumpToRelatedFileShortcut"},
		Short:   "Bind jumpToRelatedFileShortcut in the editor keybindings",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			orc, err := opts.Orchestrator(ctx, nil, false)
			if err != nil {
				return err
			}

			_, err = orc.UpdateShortcut(ctx, keybindings)
			return err
		},
	}

	cmd.Flags().StringVar(&keybindings, "keybindings", "", "keybindings.json to update (default: the VS Code user keybindings)")

	return cmd
}
