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

package operation

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/fileorc/pkg/filesystem"
	"gitlab.com/tozd/go/errors"
)

// 📋 Plan describes one batch
type Plan struct {
	Action Action
	// SourceDir holds the sibling files; unused for create
	SourceDir string
	// Files are sibling file names for most actions, and extensions for create
	Files []string
	// TargetDir receives moved and created files; rename and copy stay in SourceDir
	TargetDir string
	// NewBase is the new base name; unused for delete
	NewBase string
	// Workspace is the root that messages show paths relative to
	Workspace string
}

// 🔍 Validate checks that the plan has what its action needs
func (p Plan) Validate() error {
	if _, err := ParseAction(string(p.Action)); err != nil {
		return err
	}
	if p.Action.HasSource() && p.SourceDir == "" {
		return errors.Errorf("%s needs a source directory", p.Action)
	}
	if (p.Action == Move || p.Action == Create) && p.TargetDir == "" {
		return errors.Errorf("%s needs a target directory", p.Action)
	}
	if p.Action.HasTarget() && p.NewBase == "" {
		return errors.Errorf("%s needs a new file name", p.Action)
	}
	return nil
}

// paths returns the source and target path for one entry of Files
func (p Plan) paths(file string) (src, dst string) {
	switch p.Action {
	case Rename, Copy:
		return filepath.Join(p.SourceDir, file), filepath.Join(p.SourceDir, TargetName(p.NewBase, file))
	case Move:
		return filepath.Join(p.SourceDir, file), filepath.Join(p.TargetDir, TargetName(p.NewBase, file))
	case Delete:
		return filepath.Join(p.SourceDir, file), ""
	case Create:
		// for create, file is the extension itself
		return "", filepath.Join(p.TargetDir, p.NewBase+file)
	}
	return "", ""
}

// 🏃 Executor runs plans against a filesystem
type Executor struct {
	FS filesystem.FileSystem
	// OnOutcome, when set, sees each outcome as soon as its file is done
	OnOutcome func(ctx context.Context, o Outcome)
}

// 🏗️ NewExecutor creates an executor
func NewExecutor(fs filesystem.FileSystem) *Executor {
	return &Executor{FS: fs}
}

// 🏃 Execute runs the plan one file at a time. A failing file is recorded
// in its Outcome and the batch continues. The returned error covers only
// problems found before any file was touched, or a cancelled context.
func (e *Executor) Execute(ctx context.Context, plan Plan) ([]Outcome, error) {
	if err := plan.Validate(); err != nil {
		return nil, errors.Errorf("invalid plan: %w", err)
	}

	logger := zerolog.Ctx(ctx)

	if plan.Action == Move || plan.Action == Create {
		if err := e.FS.MkdirAll(ctx, plan.TargetDir); err != nil {
			return nil, errors.Errorf("preparing target directory %s: %w", plan.TargetDir, err)
		}
	}

	outcomes := make([]Outcome, 0, len(plan.Files))
	for _, file := range plan.Files {
		if err := ctx.Err(); err != nil {
			return outcomes, errors.Errorf("batch interrupted: %w", err)
		}

		src, dst := plan.paths(file)
		o := Outcome{Action: plan.Action, Source: src, Target: dst}
		o.Err = e.apply(ctx, plan.Action, src, dst)

		if o.Err != nil {
			logger.Debug().Err(o.Err).Str("source", src).Str("target", dst).Msg("file operation failed")
		}

		outcomes = append(outcomes, o)
		if e.OnOutcome != nil {
			e.OnOutcome(ctx, o)
		}
	}

	return outcomes, nil
}

func (e *Executor) apply(ctx context.Context, action Action, src, dst string) error {
	switch action {
	case Rename, Move:
		return e.FS.Rename(ctx, src, dst)
	case Copy:
		return e.FS.Copy(ctx, src, dst)
	case Delete:
		return e.FS.Remove(ctx, src)
	case Create:
		return e.FS.CreateEmpty(ctx, dst)
	}
	return errors.Errorf("unknown action %q", action)
}
