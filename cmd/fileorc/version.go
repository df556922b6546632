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
	"encoding/json"
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/fileorc/cmd/fileorc/opts"
)

// BuildInfo describes the running fileorc binary. The json form is what
// `fileorc version --json` prints.
type BuildInfo struct {
	Version  string `json:"version"`
	Commit   string `json:"commit,omitempty"`
	Built    string `json:"built,omitempty"`
	Dirty    bool   `json:"dirty"`
	Go       string `json:"go"`
	Platform string `json:"platform"`
}

func readBuildInfo() *BuildInfo {
	info := &BuildInfo{
		Version:  "dev",
		Go:       runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if v := bi.Main.Version; v != "" && v != "(devel)" {
		info.Version = v
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.Commit = s.Value
		case "vcs.time":
			info.Built = s.Value
		case "vcs.modified":
			info.Dirty = s.Value == "true"
		}
	}
	return info
}

// String renders the info for a terminal, one field per line
func (b *BuildInfo) String() string {
	commit := b.Commit
	if commit == "" {
		commit = "unknown"
	}
	if b.Dirty {
		commit += " (dirty)"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🚀 fileorc %s\n", b.Version)
	fmt.Fprintf(&sb, "  commit:   %s\n", commit)
	if b.Built != "" {
		fmt.Fprintf(&sb, "  built:    %s\n", b.Built)
	}
	fmt.Fprintf(&sb, "  go:       %s\n", b.Go)
	fmt.Fprintf(&sb, "  platform: %s\n", b.Platform)
	return sb.String()
}

func newVersionCmd(o *opts.RootOpts) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := readBuildInfo()
			if !asJSON {
				fmt.Fprint(o.Out, info.String())
				return nil
			}

			enc := json.NewEncoder(o.Out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(info); err != nil {
				return errors.Errorf("encoding build info: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print build information as JSON")

	return cmd
}
