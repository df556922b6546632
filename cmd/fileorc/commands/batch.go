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
	"context"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/fileorc/cmd/fileorc/opts"
	"github.com/walteh/fileorc/pkg/operation"
	"github.com/walteh/fileorc/pkg/orchestrator"
	"github.com/walteh/fileorc/pkg/prompt"
)

// ErrFailures means at least one file of a batch failed. Each failure was already printed.
var ErrFailures = errors.Base("some files failed")

type batchFunc func(o *orchestrator.Orchestrator, ctx context.Context, file string) ([]operation.Outcome, error)

// NewRenameCmd creates the rename command
func NewRenameCmd(opts *opts.RootOpts) *cobra.Command {
	return newBatchCmd(opts, operation.Rename, "renameFile",
		"Rename a file and its siblings",
		(*orchestrator.Orchestrator).Rename)
}

// NewCopyCmd creates the copy command
func NewCopyCmd(opts *opts.RootOpts) *cobra.Command {
	return newBatchCmd(opts, operation.Copy, "copyFile",
		"Copy a file and its siblings under a new name, never overwriting",
		(*orchestrator.Orchestrator).Copy)
}

// NewMoveCmd creates the move command
func NewMoveCmd(opts *opts.RootOpts) *cobra.Command {
	return newBatchCmd(opts, operation.Move, "moveFile",
		"Move a file and its siblings to another directory",
		(*orchestrator.Orchestrator).Move)
}

// NewDeleteCmd creates the delete command
func NewDeleteCmd(opts *opts.RootOpts) *cobra.Command {
	return newBatchCmd(opts, operation.Delete, "deleteFile",
		"Permanently delete a file and its siblings",
		(*orchestrator.Orchestrator).Delete)
}

func newBatchCmd(opts *opts.RootOpts, action operation.Action, id, short string, run batchFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:     string(action) + " <file>",
		Aliases: []string{id},
		Short:   short,
		Long: short + `.

Siblings are the files in the same directory that share the file's base
name and whose extension is in the chosen extension list. Files are
processed one at a time; a failing file is reported and the rest continue.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			orc, err := opts.Orchestrator(ctx, presets(cmd, prompt.KeyGroup, prompt.KeyName, prompt.KeyTargetDir), false)
			if err != nil {
				return err
			}

			outcomes, err := run(orc, ctx, fileArg(args))
			if err != nil {
				return err
			}

			return checkOutcomes(outcomes)
		},
	}

	addGroupFlag(cmd)
	if action.HasTarget() {
		cmd.Flags().String(string(prompt.KeyName), "", "new base name, skips the name prompt")
	}
	if action == operation.Move {
		cmd.Flags().String(string(prompt.KeyTargetDir), "", "target directory, relative to the workspace, skips the directory prompt")
	}

	return cmd
}

// NewCreateCmd creates the create command
func NewCreateCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "create",
		Aliases: []string{"createFile"},
		Short:   "Create one empty file per extension of an extension list",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			orc, err := opts.Orchestrator(ctx, presets(cmd, prompt.KeyGroup, prompt.KeyName, prompt.KeyTargetDir), false)
			if err != nil {
				return err
			}

			outcomes, err := orc.Create(ctx)
			if err != nil {
				return err
			}

			return checkOutcomes(outcomes)
		},
	}

	addGroupFlag(cmd)
	cmd.Flags().String(string(prompt.KeyName), "", "base name of the new files, skips the name prompt")
	cmd.Flags().String(string(prompt.KeyTargetDir), "", "target directory, relative to the workspace, skips the directory prompt")

	return cmd
}

func addGroupFlag(cmd *cobra.Command) {
	cmd.Flags().StringP(string(prompt.KeyGroup), "g", "", "extension list to use, skips the list prompt")
}

// presets turns the answer flags set on the command line into prompt answers.
// Flags are named after their key. An unset flag leaves its question to the
// prompter, while a flag set to "" answers it with an empty string.
func presets(cmd *cobra.Command, keys ...prompt.Key) map[prompt.Key]string {
	answers := make(map[prompt.Key]string, len(keys))
	for _, k := range keys {
		f := cmd.Flags().Lookup(string(k))
		if f == nil || !f.Changed {
			continue
		}
		answers[k] = f.Value.String()
	}
	return answers
}

func fileArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func checkOutcomes(outcomes []operation.Outcome) error {
	if failed := operation.Failed(outcomes); failed > 0 {
		return errors.Errorf("%w: %d of %d", ErrFailures, failed, len(outcomes))
	}
	return nil
}
