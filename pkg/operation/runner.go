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

	"github.com/walteh/fileorc/pkg/filesystem"
	"github.com/walteh/fileorc/pkg/log"
)

// 🏃 Runner executes plans and reports every outcome to the user
type Runner struct {
	executor *Executor
	logger   *log.Logger
}

// 🏗️ NewRunner creates a new runner
func NewRunner(fs filesystem.FileSystem, logger *log.Logger) *Runner {
	return &Runner{
		executor: NewExecutor(fs),
		logger:   logger,
	}
}

// 🏃 Run executes the plan, printing each file's outcome as it completes
func (r *Runner) Run(ctx context.Context, plan Plan, group string) ([]Outcome, error) {
	r.logger.StartBatch(ctx, log.BatchOperation{
		Action: string(plan.Action),
		Group:  group,
		Dir:    plan.SourceDir,
		Files:  len(plan.Files),
	})
	defer r.logger.EndBatch(ctx)

	exec := *r.executor
	exec.OnOutcome = func(ctx context.Context, o Outcome) {
		r.logger.LogFileOperation(ctx, toFileOperation(o, plan.Workspace))
	}

	return exec.Execute(ctx, plan)
}

func toFileOperation(o Outcome, workspace string) log.FileOperation {
	op := log.FileOperation{
		Action:  string(o.Action),
		Message: o.Message(workspace),
		Failed:  !o.Succeeded(),
	}
	if o.Source != "" {
		op.Source = relative(workspace, o.Source)
	}
	if o.Target != "" {
		op.Target = relative(workspace, o.Target)
	}
	return op
}
