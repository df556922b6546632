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

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/fileorc/cmd/fileorc/commands"
	"github.com/walteh/fileorc/cmd/fileorc/opts"
	"github.com/walteh/fileorc/pkg/log"
	"github.com/walteh/fileorc/pkg/orchestrator"
	"github.com/walteh/fileorc/pkg/prompt"
)

// newRootCmd builds the command tree around shared options
func newRootCmd(o *opts.RootOpts, stderr io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fileorc",
		Short: "Rename, copy, move, delete and create related files together",
		Long: `fileorc works on sibling files: files in one directory that share a base
name and differ only in extension, such as Button.tsx, Button.css and
Button.test.tsx. Extension lists from the config decide which siblings a
command touches.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd.Context(), o, stderr)
			cmd.SetContext(ctx)

			if o.Workspace == "" {
				wd, err := os.Getwd()
				if err != nil {
					return errors.Errorf("getting working directory: %w", err)
				}
				o.Workspace = wd
			}
			return nil
		},
	}

	addRootFlags(rootCmd, o)

	rootCmd.AddCommand(
		commands.NewRenameCmd(o),
		commands.NewCopyCmd(o),
		commands.NewMoveCmd(o),
		commands.NewDeleteCmd(o),
		commands.NewCreateCmd(o),
		commands.NewJumpCmd(o),
		commands.NewReplaceCmd(o),
		commands.NewShortcutCmd(o),
		newVersionCmd(o),
	)

	return rootCmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", "", "config file path (default: discovered in the workspace)")
	cmd.PersistentFlags().StringVarP(&o.Workspace, "workspace", "w", "", "workspace root (default: current directory)")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&o.NoInput, "no-input", false, "never prompt; unanswered questions cancel the command")
}

// setupLogging configures zerolog and the user logger based on flags
func setupLogging(ctx context.Context, o *opts.RootOpts, stderr io.Writer) context.Context {
	level := zerolog.WarnLevel
	if o.Debug {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: true}).Level(level).With().Timestamp().Logger()

	// the user logger mirrors every message to zerolog, which is only useful when debugging
	mirror := zerolog.Nop()
	if o.Debug {
		mirror = logger
	}
	o.Logger = log.New(stderr, mirror)

	ctx = logger.WithContext(ctx)
	return log.NewContext(ctx, o.Logger)
}

// run executes the CLI and returns the process exit code. Cancelled prompts
// exit 0; failed preconditions and batches with failed files exit 1.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	return runWith(ctx, args, stdout, stderr, nil)
}

func runWith(ctx context.Context, args []string, stdout, stderr io.Writer, p prompt.Prompter) int {
	o := &opts.RootOpts{Out: stdout, Prompter: p}

	rootCmd := newRootCmd(o, stderr)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, prompt.ErrCancelled):
		return 0
	case orchestrator.Reported(err), errors.Is(err, commands.ErrFailures):
		return 1
	}

	if o.Logger != nil {
		o.Logger.Error(err.Error())
	} else {
		// flag parsing failed before logging was set up
		fmt.Fprintf(stderr, "❌ %s\n", err)
	}
	return 1
}
