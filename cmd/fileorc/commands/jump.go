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
	"fmt"
	"os"
	"os/exec"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/fileorc/cmd/fileorc/opts"
	"github.com/walteh/fileorc/pkg/prompt"
)

// NewJumpCmd creates the jump command
func NewJumpCmd(opts *opts.RootOpts) *cobra.Command {
	var edit bool

	cmd := &cobra.Command{
		Use:     "jump <file>",
		Aliases: []string{"jumpToRelatedFile"},
		Short:   "Pick a sibling of a file and print its path",
		Long: `Jump lists the siblings of a file and prints the path of the one picked.
With --edit the picked file is opened in $EDITOR instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			orc, err := opts.Orchestrator(ctx, presets(cmd, prompt.KeyGroup, prompt.KeyPick), false)
			if err != nil {
				return err
			}

			path, err := orc.Jump(ctx, fileArg(args))
			if err != nil || path == "" {
				return err
			}

			if !edit {
				fmt.Fprintln(opts.Out, path)
				return nil
			}

			editor := os.Getenv("EDITOR")
			if editor == "" {
				return errors.New("EDITOR is not set")
			}

			zerolog.Ctx(ctx).Debug().Str("editor", editor).Str("file", path).Msg("opening file")

			c := exec.CommandContext(ctx, editor, path)
			c.Stdin = os.Stdin
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			if err := c.Run(); err != nil {
				return errors.Errorf("running %s: %w", editor, err)
			}
			return nil
		},
	}

	addGroupFlag(cmd)
	cmd.Flags().String(string(prompt.KeyPick), "", "file name to jump to, skips the file prompt")
	cmd.Flags().BoolVarP(&edit, "edit", "e", false, "open the picked file in $EDITOR")

	return cmd
}
