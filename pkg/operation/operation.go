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
	"fmt"
	"path/filepath"

	"github.com/walteh/fileorc/pkg/extension"
	"gitlab.com/tozd/go/errors"
)

// 🎬 Action is the kind of batch operation
type Action string

const (
	Rename Action = "rename"
	Copy   Action = "copy"
	Move   Action = "move"
	Delete Action = "delete"
	Create Action = "create"
)

// Actions lists every action in display order
var Actions = []Action{Rename, Copy, Move, Delete, Create}

// 🔍 ParseAction maps a name to an Action
func ParseAction(name string) (Action, error) {
	for _, a := range Actions {
		if string(a) == name {
			return a, nil
		}
	}
	return "", errors.Errorf("unknown action %q", name)
}

// PastTense is the verb used in outcome messages
func (a Action) PastTense() string {
	if a == Copy {
		return "copied"
	}
	return string(a) + "d"
}

// HasSource reports whether the action works on existing files
func (a Action) HasSource() bool {
	return a != Create
}

// HasTarget reports whether the action produces a new path
func (a Action) HasTarget() bool {
	return a != Delete
}

// 🏷️ TargetName names the target of file: the new base name plus the file's own extension
func TargetName(newBase, file string) string {
	return newBase + extension.Ext(file)
}

// ✅ ValidateNewName checks the base name typed by the user.
// Rename and copy need a name different from the current one; move and
// create may keep it because they change directory.
func ValidateNewName(action Action, current, value string) error {
	if value == "" || (action != Move && action != Create && value == current) {
		return errors.Errorf("Please enter a new file name to %s", action)
	}
	return nil
}

// 📊 Outcome is the result of one file's operation
type Outcome struct {
	Action Action
	// Source is the absolute source path, empty for create
	Source string
	// Target is the absolute target path, empty for delete
	Target string
	Err    error
}

// Succeeded reports whether the file's operation went through
func (o Outcome) Succeeded() bool {
	return o.Err == nil
}

// ErrorMessage is the failure text, empty on success
func (o Outcome) ErrorMessage() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

// 📝 Message renders the outcome for the user. Targets are shown relative to workspace.
func (o Outcome) Message(workspace string) string {
	var subject string
	if o.Source != "" {
		subject = filepath.Base(o.Source)
	}
	if o.Target != "" {
		arrow := "-> " + relative(workspace, o.Target)
		if subject == "" {
			subject = arrow
		} else {
			subject += " " + arrow
		}
	}

	if o.Err != nil {
		return fmt.Sprintf("Failed to %s file %s: %v", o.Action, subject, o.Err)
	}
	return fmt.Sprintf("File %s: %s", o.Action.PastTense(), subject)
}

func relative(workspace, path string) string {
	if workspace == "" {
		return path
	}
	rel, err := filepath.Rel(workspace, path)
	if err != nil {
		return path
	}
	return rel
}

// Failed counts the outcomes that did not succeed
func Failed(outcomes []Outcome) int {
	n := 0
	for _, o := range outcomes {
		if !o.Succeeded() {
			n++
		}
	}
	return n
}
