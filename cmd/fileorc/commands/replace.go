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
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/fileorc/cmd/fileorc/opts"
	"github.com/walteh/fileorc/pkg/prompt"
)

// NewReplaceCmd creates the bulk replace command
func NewReplaceCmd(opts *opts.RootOpts) *cobra.Command {
	var search string
	var literal bool

	cmd := &cobra.Command{
		Use:     "replace <file> --search <pattern>",
		Aliases: []string{"bulkReplace"},
		Short:   "Replace a pattern in a file and all of its siblings",
		Long: `Replace treats --search as a regular expression and replaces every match
in each sibling. In the replacement, $& is the whole match, $1 or $<name>
a capture group and $$ a literal dollar sign. Files without a match are
left untouched.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			orc, err := opts.Orchestrator(ctx, presets(cmd, prompt.KeyGroup, prompt.KeyReplace), literal)
			if err != nil {
				return err
			}

			_, results, err := orc.BulkReplace(ctx, fileArg(args), search)
			if err != nil {
				return err
			}

			failed := 0
			for _, r := range results {
				if r.Err != nil {
					failed++
				}
			}
			if failed > 0 {
				return errors.Errorf("%w: %d of %d", ErrFailures, failed, len(results))
			}
			return nil
		},
	}

	addGroupFlag(cmd)
	cmd.Flags().StringVarP(&search, "search", "s", "", "pattern to search for")
	cmd.Flags().StringP(string(prompt.KeyReplace), "r", "", "replacement, skips the replacement prompt; may be empty")
	cmd.Flags().BoolVar(&literal, "literal", false, "treat the search pattern as plain text")

	return cmd
}
