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

	"github.com/rs/zerolog"

	"github.com/walteh/fileorc/pkg/operation"
)

// Rename gives every sibling of file a new base name
func (o *Orchestrator) Rename(ctx context.Context, file string) ([]operation.Outcome, error) {
	return o.batch(ctx, operation.Rename, file)
}

// Copy duplicates every sibling of file under a new base name
func (o *Orchestrator) Copy(ctx context.Context, file string) ([]operation.Outcome, error) {
	return o.batch(ctx, operation.Copy, file)
}

// Move relocates every sibling of file, optionally renaming them
func (o *Orchestrator) Move(ctx context.Context, file string) ([]operation.Outcome, error) {
	return o.batch(ctx, operation.Move, file)
}

// Delete removes every sibling of file
func (o *Orchestrator) Delete(ctx context.Context, file string) ([]operation.Outcome, error) {
	return o.batch(ctx, operation.Delete, file)
}

func (o *Orchestrator) batch(ctx context.Context, action operation.Action, file string) ([]operation.Outcome, error) {
	a, err := o.prepare(ctx, string(action), file, true)
	if err != nil {
		return nil, err
	}

	plan := operation.Plan{
		Action:    action,
		SourceDir: a.dir,
		Workspace: o.workspace,
	}

	if action.HasTarget() {
		plan.NewBase, err = o.askName(ctx, action, a.base)
		if err != nil {
			return nil, err
		}
	}

	if action == operation.Move {
		plan.TargetDir, err = o.askTargetDir(ctx, a.dir)
		if err != nil {
			return nil, err
		}
	}

	plan.Files, err = o.siblings(ctx, a)
	if err != nil {
		return nil, err
	}

	if len(plan.Files) == 0 {
		zerolog.Ctx(ctx).Debug().Str("file", a.file).Str("group", a.group.Name).Msg("no siblings to process")
	}

	return o.runner.Run(ctx, plan, a.group.Name)
}

// 📄 Create makes one empty file per extension of the chosen list
func (o *Orchestrator) Create(ctx context.Context) ([]operation.Outcome, error) {
	a, err := o.prepare(ctx, string(operation.Create), "", false)
	if err != nil {
		return nil, err
	}

	name, err := o.askName(ctx, operation.Create, "NewFile")
	if err != nil {
		return nil, err
	}

	dir, err := o.askTargetDir(ctx, o.workspace)
	if err != nil {
		return nil, err
	}

	return o.runner.Run(ctx, operation.Plan{
		Action:    operation.Create,
		Files:     a.group.Extensions,
		TargetDir: dir,
		NewBase:   name,
		Workspace: o.workspace,
	}, a.group.Name)
}
