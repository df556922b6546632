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

package opts

import (
	"context"
	"io"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/fileorc/pkg/config"
	"github.com/walteh/fileorc/pkg/filesystem"
	"github.com/walteh/fileorc/pkg/log"
	"github.com/walteh/fileorc/pkg/orchestrator"
	"github.com/walteh/fileorc/pkg/prompt"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigFile string
	Workspace  string
	Debug      bool
	NoInput    bool

	// Out receives command results such as the jumped-to path
	Out io.Writer
	// Logger prints user-facing messages
	Logger *log.Logger
	// Prompter answers questions that were not given as flags; nil means the terminal
	Prompter prompt.Prompter
}

// 🎼 Orchestrator loads a fresh config snapshot and builds an orchestrator
// that answers from answers first
func (o *RootOpts) Orchestrator(ctx context.Context, answers map[prompt.Key]string, literal bool) (*orchestrator.Orchestrator, error) {
	cfg, err := config.Discover(ctx, o.Workspace, o.ConfigFile)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}

	var fallback prompt.Prompter
	if !o.NoInput {
		fallback = o.Prompter
		if fallback == nil {
			fallback = prompt.NewTerminal()
		}
	}

	return orchestrator.New(orchestrator.Options{
		Config:    cfg,
		FS:        filesystem.NewOS(),
		Prompter:  prompt.NewScripted(answers, fallback),
		Logger:    o.Logger,
		Workspace: o.Workspace,
		Literal:   literal,
	})
}
