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

package text

import (
	"bytes"
	"context"
	"io"
	"regexp"
	"slices"

	"gitlab.com/tozd/go/errors"
)

// RegexpReplacer implements TextReplacer treating each pattern as a global
// regular expression. Selected text is used as-is, so characters such as
// . ( * keep their regex meaning.
//
// Replacements understand $$ (a dollar), $& (the match), $` and $' (text
// before and after the match), $1..$99 and $<name>.
type RegexpReplacer struct{}

var _ TextReplacer = (*RegexpReplacer)(nil)

// NewRegexpReplacer creates a new RegexpReplacer
func NewRegexpReplacer() *RegexpReplacer {
	return &RegexpReplacer{}
}

// ReplaceText implements TextReplacer.ReplaceText
func (r *RegexpReplacer) ReplaceText(ctx context.Context, content io.Reader, rules []ReplacementRule) (*ReplacementResult, error) {
	compiled, err := compileRules(rules)
	if err != nil {
		return nil, err
	}

	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	result := &ReplacementResult{
		OriginalContent: originalContent,
		ModifiedContent: originalContent,
	}

	current := originalContent
	for i, re := range compiled {
		next, count := replaceAll(re, current, []byte(rules[i].Replacement))
		if count == 0 {
			continue
		}
		current = next
		result.ReplacementCount += count
		result.WasModified = true
	}

	result.ModifiedContent = current
	return result, nil
}

// ValidateRules implements TextReplacer.ValidateRules
func (r *RegexpReplacer) ValidateRules(rules []ReplacementRule) error {
	_, err := compileRules(rules)
	return err
}

func compileRules(rules []ReplacementRule) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, len(rules))
	for i, rule := range rules {
		if rule.Pattern == "" {
			return nil, errors.Errorf("rule %d: pattern is required", i)
		}
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return nil, errors.Errorf("rule %d: invalid pattern %q: %w", i, rule.Pattern, err)
		}
		compiled[i] = re
	}
	return compiled, nil
}

// replaceAll substitutes every non-overlapping match and returns how many there were
func replaceAll(re *regexp.Regexp, src, template []byte) ([]byte, int) {
	matches := re.FindAllSubmatchIndex(src, -1)
	if len(matches) == 0 {
		return src, 0
	}

	var out bytes.Buffer
	last := 0
	for _, m := range matches {
		out.Write(src[last:m[0]])
		expand(&out, re, src, m, template)
		last = m[1]
	}
	out.Write(src[last:])

	return out.Bytes(), len(matches)
}

func expand(out *bytes.Buffer, re *regexp.Regexp, src []byte, m []int, template []byte) {
	group := func(n int) []byte {
		if 2*n+1 >= len(m) || m[2*n] < 0 {
			return nil
		}
		return src[m[2*n]:m[2*n+1]]
	}
	groups := re.NumSubexp()
	named := slices.ContainsFunc(re.SubexpNames(), func(n string) bool { return n != "" })

	for i := 0; i < len(template); i++ {
		c := template[i]
		if c != '$' || i+1 >= len(template) {
			out.WriteByte(c)
			continue
		}

		next := template[i+1]
		switch {
		case next == '$':
			out.WriteByte('$')
			i++
		case next == '&':
			out.Write(src[m[0]:m[1]])
			i++
		case next == '`':
			out.Write(src[:m[0]])
			i++
		case next == '\'':
			out.Write(src[m[1]:])
			i++
		case isDigit(next):
			n := int(next - '0')
			width := 1
			if i+2 < len(template) && isDigit(template[i+2]) {
				if two := n*10 + int(template[i+2]-'0'); two >= 1 && two <= groups {
					n, width = two, 2
				}
			}
			if n < 1 || n > groups {
				out.WriteByte(c)
				continue
			}
			out.Write(group(n))
			i += width
		case next == '<':
			// without named groups, or without a closing '>', "$<" is literal
			end := bytes.IndexByte(template[i+2:], '>')
			if end < 0 || !named {
				out.WriteByte(c)
				continue
			}
			// an unknown name expands to nothing
			if idx := re.SubexpIndex(string(template[i+2 : i+2+end])); idx > 0 {
				out.Write(group(idx))
			}
			i += end + 2
		default:
			out.WriteByte(c)
		}
	}
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
