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

// Package extension resolves the named extension groups that decide which
// sibling files an operation touches.
package extension

import (
	"context"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/fileorc/pkg/prompt"
	"gitlab.com/tozd/go/errors"
)

// DefaultGroup is the name of the group built from the default extension list
const DefaultGroup = "Default"

// ErrNoMatchingGroup is returned when no group contains the active file's extension
var ErrNoMatchingGroup = errors.Base("no extension lists found")

// 📦 Group is a named, ordered list of extensions
type Group struct {
	Name       string
	Extensions []string
}

// 📝 Description joins the extensions for display
func (g Group) Description() string {
	return strings.Join(g.Extensions, ", ")
}

// Contains reports whether ext is one of the group's extensions
func (g Group) Contains(ext string) bool {
	return slices.Contains(g.Extensions, ext)
}

// 🗂️ Groups is the resolved lookup table, Default first
type Groups []Group

// 🎯 Resolve merges the default extensions with the custom groups.
// A custom group named Default replaces the built-in one.
func Resolve(defaults []string, custom map[string][]string) Groups {
	groups := Groups{{Name: DefaultGroup, Extensions: slices.Clone(defaults)}}

	names := make([]string, 0, len(custom))
	for name := range custom {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		g := Group{Name: name, Extensions: slices.Clone(custom[name])}
		if name == DefaultGroup {
			groups[0] = g
			continue
		}
		groups = append(groups, g)
	}

	return groups
}

// Lookup finds a group by name
func (gs Groups) Lookup(name string) (Group, bool) {
	for _, g := range gs {
		if g.Name == name {
			return g, true
		}
	}
	return Group{}, false
}

// 🔍 Containing keeps only the groups that list ext
func (gs Groups) Containing(ext string) Groups {
	var out Groups
	for _, g := range gs {
		if g.Contains(ext) {
			out = append(out, g)
		}
	}
	return out
}

// Names returns the group names in order
func (gs Groups) Names() []string {
	names := make([]string, len(gs))
	for i, g := range gs {
		names[i] = g.Name
	}
	return names
}

// Ext returns the single trailing extension of name, including the dot.
// Foo.test.ts has extension .ts and base Foo.test.
func Ext(name string) string {
	base := filepath.Base(name)
	// a leading dot alone marks a dotfile, not an extension
	if strings.LastIndexByte(base, '.') <= 0 {
		return ""
	}
	return filepath.Ext(base)
}

// Base returns name without its directory and trailing extension
func Base(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, Ext(base))
}

// 🎯 Candidates returns the groups an action may choose from.
// Creating files offers every group; every other action only offers groups
// that contain the active file's extension.
func Candidates(groups Groups, activeFile string, filter bool) (Groups, error) {
	if !filter {
		return groups, nil
	}

	ext := Ext(activeFile)
	matching := groups.Containing(ext)
	if len(matching) == 0 {
		return nil, errors.Errorf("%w containing %s", ErrNoMatchingGroup, ext)
	}
	return matching, nil
}

// 🙋 Select asks the user to pick exactly one group.
// A dismissed prompt returns prompt.ErrCancelled.
func Select(ctx context.Context, p prompt.Prompter, groups Groups, action string) (Group, error) {
	items := make([]prompt.Item, len(groups))
	for i, g := range groups {
		items[i] = prompt.Item{Label: g.Name, Description: g.Description()}
	}

	idx, err := p.Choose(ctx, prompt.Choice{
		Key:         prompt.KeyGroup,
		Placeholder: "Select extension list to " + action,
		Items:       items,
	})
	if err != nil {
		return Group{}, err
	}

	zerolog.Ctx(ctx).Debug().Str("group", groups[idx].Name).Strs("extensions", groups[idx].Extensions).Msg("extension list selected")

	return groups[idx], nil
}
