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

package prompt

import (
	"context"

	"gitlab.com/tozd/go/errors"
)

// ErrCancelled means the user dismissed a prompt. Commands abort silently on it.
var ErrCancelled = errors.Base("prompt cancelled")

// 🔑 Key names a question so it can be answered ahead of time
type Key string

const (
	KeyGroup     Key = "group"
	KeyName      Key = "name"
	KeyTargetDir Key = "target-dir"
	KeyReplace   Key = "replace"
	KeyPick      Key = "pick"
)

// 📋 Item is one entry of a choice
type Item struct {
	Label       string
	Description string
	Detail      string
}

// 🎯 Choice asks the user to pick exactly one item
type Choice struct {
	Key         Key
	Placeholder string
	Items       []Item
}

// ✏️ Input asks the user for a line of text
type Input struct {
	Key    Key
	Prompt string
	// Value is offered as the default answer
	Value string
	// Raw keeps the answer exactly as typed. It is not trimmed and an empty
	// answer stays empty instead of falling back to Value.
	Raw bool
	// Validate rejects an answer with a message to show the user
	Validate func(string) error
}

// 🙋 Prompter is the "ask the user" capability. Exactly one prompt is
// outstanding at a time; a dismissed prompt returns ErrCancelled.
type Prompter interface {
	// Choose returns the index of the chosen item
	Choose(ctx context.Context, c Choice) (int, error)
	// Ask returns the entered text
	Ask(ctx context.Context, in Input) (string, error)
}

func (in Input) validate(answer string) error {
	if in.Validate == nil {
		return nil
	}
	return in.Validate(answer)
}
