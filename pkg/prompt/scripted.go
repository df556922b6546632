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

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📜 Scripted answers prompts from preset values, usually command line flags.
// Questions without a preset answer go to Fallback, or are cancelled when
// Fallback is nil.
type Scripted struct {
	Answers  map[Key]string
	Fallback Prompter
}

var _ Prompter = (*Scripted)(nil)

// 🏭 NewScripted creates a scripted prompter. An empty answer is still an
// answer, so leave a key out to defer it to fallback.
func NewScripted(answers map[Key]string, fallback Prompter) *Scripted {
	if answers == nil {
		answers = map[Key]string{}
	}
	return &Scripted{Answers: answers, Fallback: fallback}
}

func (s *Scripted) Choose(ctx context.Context, c Choice) (int, error) {
	answer, ok := s.Answers[c.Key]
	if !ok {
		if s.Fallback == nil {
			return 0, ErrCancelled
		}
		return s.Fallback.Choose(ctx, c)
	}

	for i, it := range c.Items {
		if it.Label == answer {
			zerolog.Ctx(ctx).Debug().Str("key", string(c.Key)).Str("answer", answer).Msg("answered from preset")
			return i, nil
		}
	}

	labels := make([]string, len(c.Items))
	for i, it := range c.Items {
		labels[i] = it.Label
	}
	return 0, errors.Errorf("%q is not one of %v", answer, labels)
}

func (s *Scripted) Ask(ctx context.Context, in Input) (string, error) {
	answer, ok := s.Answers[in.Key]
	if !ok {
		if s.Fallback == nil {
			return "", ErrCancelled
		}
		return s.Fallback.Ask(ctx, in)
	}

	if err := in.validate(answer); err != nil {
		return "", errors.Errorf("invalid %s: %w", in.Key, err)
	}

	zerolog.Ctx(ctx).Debug().Str("key", string(in.Key)).Str("answer", answer).Msg("answered from preset")
	return answer, nil
}
