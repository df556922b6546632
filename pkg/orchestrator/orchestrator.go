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

// Package orchestrator runs one command end to end: preconditions, the
// extension list choice, the remaining prompts, the sibling lookup and the
// batch itself. Every prompt is answered before anything on disk changes.
package orchestrator

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/fileorc/pkg/config"
	"github.com/walteh/fileorc/pkg/extension"
	"github.com/walteh/fileorc/pkg/filesystem"
	"github.com/walteh/fileorc/pkg/log"
	"github.com/walteh/fileorc/pkg/operation"
	"github.com/walteh/fileorc/pkg/prompt"
	"github.com/walteh/fileorc/pkg/sibling"
)

var (
	ErrNoActiveFile = errors.Base("no active file")
	ErrNoWorkspace  = errors.Base("no workspace folder found")
	ErrNoSearchText = errors.Base("no search text")
)

// Reported tells whether err was already shown to the user by the orchestrator
func Reported(err error) bool {
	return errors.Is(err, ErrNoActiveFile) ||
		errors.Is(err, ErrNoWorkspace) ||
		errors.Is(err, ErrNoSearchText) ||
		errors.Is(err, extension.ErrNoMatchingGroup)
}

// 📋 Options configures an Orchestrator
type Options struct {
	Config   *config.Config
	FS       filesystem.FileSystem
	Prompter prompt.Prompter
	Logger   *log.Logger
	// Workspace is the root folder; targets are shown relative to it
	Workspace string
	// Literal makes bulk replace treat the search text as plain text
	Literal bool
}

// 🎼 Orchestrator runs the file commands
type Orchestrator struct {
	fs        filesystem.FileSystem
	prompter  prompt.Prompter
	logger    *log.Logger
	workspace string
	literal   bool
	shortcut  string
	groups    extension.Groups
	finder    *sibling.Finder
	runner    *operation.Runner
}

// 🏗️ New creates an orchestrator from one config snapshot
func New(opts Options) (*Orchestrator, error) {
	if opts.Prompter == nil {
		return nil, errors.New("prompter is required")
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, zerolog.Nop())
	}

	workspace := opts.Workspace
	if workspace != "" {
		abs, err := filepath.Abs(workspace)
		if err != nil {
			return nil, errors.Errorf("resolving workspace: %w", err)
		}
		workspace = abs
	}

	finder, err := sibling.NewFinder(fsys, workspace, cfg.ExcludePatterns)
	if err != nil {
		return nil, errors.Errorf("creating finder: %w", err)
	}

	shortcut := cfg.JumpToRelatedFileShortcut
	if shortcut == "" {
		shortcut = config.DefaultShortcut
	}

	return &Orchestrator{
		fs:        fsys,
		prompter:  opts.Prompter,
		logger:    logger,
		workspace: workspace,
		literal:   opts.Literal,
		shortcut:  shortcut,
		groups:    extension.Resolve(cfg.DefaultExtensions, cfg.CustomExtensionLists),
		finder:    finder,
		runner:    operation.NewRunner(fsys, logger),
	}, nil
}

// Groups returns the resolved extension lists
func (o *Orchestrator) Groups() extension.Groups {
	return o.groups
}

// active is what every command knows once its preconditions passed
type active struct {
	// file is the absolute path of the active file, empty for create
	file  string
	dir   string
	base  string
	group extension.Group
}

// 🔍 prepare checks the preconditions of label and asks for the extension list.
// With needFile false (create) the active file is ignored and every list is offered.
func (o *Orchestrator) prepare(ctx context.Context, label, file string, needFile bool) (*active, error) {
	a := &active{}

	if needFile {
		path, err := o.activeFile(ctx, file)
		if err != nil {
			o.logger.Errorf("No active file to %s", label)
			return nil, errors.Errorf("%w to %s: %w", ErrNoActiveFile, label, err)
		}
		a.file = path
		a.dir = filepath.Dir(path)
		a.base = extension.Base(path)
	}

	if err := o.checkWorkspace(a.file); err != nil {
		o.logger.Error("No workspace folder found")
		return nil, err
	}

	candidates, err := extension.Candidates(o.groups, a.file, needFile)
	if err != nil {
		o.logger.Warningf("No extension lists found containing %s. Command aborted.", extension.Ext(a.file))
		return nil, err
	}

	group, err := extension.Select(ctx, o.prompter, candidates, label)
	if err != nil {
		return nil, err
	}
	a.group = group

	return a, nil
}

func (o *Orchestrator) activeFile(ctx context.Context, file string) (string, error) {
	if strings.TrimSpace(file) == "" {
		return "", errors.New("no file given")
	}

	path, err := filepath.Abs(file)
	if err != nil {
		return "", errors.Errorf("resolving %s: %w", file, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", errors.Errorf("checking %s: %w", file, err)
	}
	if info.IsDir() {
		return "", errors.Errorf("%s is a directory", file)
	}

	zerolog.Ctx(ctx).Debug().Str("file", path).Msg("active file")
	return path, nil
}

// checkWorkspace fails when there is no workspace or file lies outside of it
func (o *Orchestrator) checkWorkspace(file string) error {
	if o.workspace == "" {
		return errors.Errorf("%w: workspace is not set", ErrNoWorkspace)
	}

	info, err := os.Stat(o.workspace)
	if err != nil || !info.IsDir() {
		return errors.Errorf("%w: %s is not a directory", ErrNoWorkspace, o.workspace)
	}

	if file == "" {
		return nil
	}

	rel, err := filepath.Rel(o.workspace, file)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return errors.Errorf("%w: %s is outside %s", ErrNoWorkspace, file, o.workspace)
	}
	return nil
}

// askName asks for the new base name, offering current as the default
func (o *Orchestrator) askName(ctx context.Context, action operation.Action, current string) (string, error) {
	return o.prompter.Ask(ctx, prompt.Input{
		Key:    prompt.KeyName,
		Prompt: "Enter new file name to " + string(action),
		Value:  current,
		Validate: func(v string) error {
			return operation.ValidateNewName(action, current, v)
		},
	})
}

// askTargetDir asks for a directory, offering def. Relative answers are
// resolved against the workspace.
func (o *Orchestrator) askTargetDir(ctx context.Context, def string) (string, error) {
	answer, err := o.prompter.Ask(ctx, prompt.Input{
		Key:    prompt.KeyTargetDir,
		Prompt: "Enter target directory",
		Value:  o.relative(def),
		Validate: func(v string) error {
			if strings.TrimSpace(v) == "" {
				return errors.New("Please enter a target directory")
			}
			return nil
		},
	})
	if err != nil {
		return "", err
	}

	if filepath.IsAbs(answer) {
		return filepath.Clean(answer), nil
	}
	return filepath.Join(o.workspace, answer), nil
}

func (o *Orchestrator) relative(path string) string {
	rel, err := filepath.Rel(o.workspace, path)
	if err != nil {
		return path
	}
	return rel
}

// siblings lists the files of a's directory that share its base name and
// belong to the chosen list
func (o *Orchestrator) siblings(ctx context.Context, a *active) ([]string, error) {
	files, err := o.finder.Find(ctx, a.dir, a.base, a.group.Extensions)
	if err != nil {
		return nil, errors.Errorf("finding related files: %w", err)
	}
	return files, nil
}
