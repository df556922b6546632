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
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"gitlab.com/tozd/go/errors"
)

// 🖥️ Terminal prompts interactively on the terminal
type Terminal struct{}

var _ Prompter = Terminal{}

// 🏭 NewTerminal creates a terminal prompter
func NewTerminal() Terminal {
	return Terminal{}
}

// FormatItem renders an item as a single select option
func FormatItem(it Item) string {
	parts := []string{it.Label}
	if it.Description != "" {
		parts = append(parts, pterm.Gray(it.Description))
	}
	if it.Detail != "" {
		parts = append(parts, pterm.Gray("("+it.Detail+")"))
	}
	return strings.Join(parts, "  ")
}

func (Terminal) Choose(ctx context.Context, c Choice) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, errors.Errorf("%w: %w", ErrCancelled, err)
	}
	if len(c.Items) == 0 {
		return 0, errors.Errorf("%w: nothing to choose from", ErrCancelled)
	}

	options := make([]string, len(c.Items))
	index := make(map[string]int, len(c.Items))
	for i, it := range c.Items {
		opt := FormatItem(it)
		// duplicate labels still need distinct options
		if _, ok := index[opt]; ok {
			opt = fmt.Sprintf("%s #%d", opt, i+1)
		}
		options[i] = opt
		index[opt] = i
	}

	interrupted := false
	selected, err := pterm.DefaultInteractiveSelect.
		WithOptions(options).
		WithDefaultText(c.Placeholder).
		WithOnInterruptFunc(func() { interrupted = true }).
		Show()
	if interrupted {
		return 0, ErrCancelled
	}
	if err != nil {
		return 0, errors.Errorf("%w: %w", ErrCancelled, err)
	}

	i, ok := index[selected]
	if !ok {
		return 0, ErrCancelled
	}
	return i, nil
}

func (Terminal) Ask(ctx context.Context, in Input) (string, error) {
	text := in.Prompt
	if in.Value != "" && !in.Raw {
		text = fmt.Sprintf("%s [%s]", in.Prompt, in.Value)
	}

	for {
		if err := ctx.Err(); err != nil {
			return "", errors.Errorf("%w: %w", ErrCancelled, err)
		}

		interrupted := false
		input := pterm.DefaultInteractiveTextInput.
			WithDefaultText(text).
			WithOnInterruptFunc(func() { interrupted = true })
		if in.Raw {
			// prefilled and editable, so clearing it yields an empty answer
			input = input.WithDefaultValue(in.Value)
		}
		answer, err := input.Show()
		if interrupted {
			return "", ErrCancelled
		}
		if err != nil {
			return "", errors.Errorf("%w: %w", ErrCancelled, err)
		}

		if !in.Raw {
			answer = strings.TrimSpace(answer)
			if answer == "" {
				answer = in.Value
			}
		}

		if err := in.validate(answer); err != nil {
			pterm.Warning.Println(err.Error())
			continue
		}
		return answer, nil
	}
}
