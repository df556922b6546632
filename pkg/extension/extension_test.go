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

package extension

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/fileorc/pkg/prompt"
	"gitlab.com/tozd/go/errors"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		defaults []string
		custom   map[string][]string
		want     Groups
	}{
		{
			name:     "defaults_only",
			defaults: []string{".ts", ".css"},
			want:     Groups{{Name: "Default", Extensions: []string{".ts", ".css"}}},
		},
		{
			name: "empty_default_is_kept",
			want: Groups{{Name: "Default", Extensions: nil}},
		},
		{
			name:     "custom_groups_sorted_after_default",
			defaults: []string{".go"},
			custom: map[string][]string{
				"web":  {".ts", ".html"},
				"docs": {".md"},
			},
			want: Groups{
				{Name: "Default", Extensions: []string{".go"}},
				{Name: "docs", Extensions: []string{".md"}},
				{Name: "web", Extensions: []string{".ts", ".html"}},
			},
		},
		{
			name:     "custom_default_overrides_builtin",
			defaults: []string{".go"},
			custom: map[string][]string{
				"Default": {".rs"},
				"a":       {".c"},
			},
			want: Groups{
				{Name: "Default", Extensions: []string{".rs"}},
				{Name: "a", Extensions: []string{".c"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.defaults, tt.custom)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.Equal(t, tt.want[i].Name, got[i].Name)
				assert.ElementsMatch(t, tt.want[i].Extensions, got[i].Extensions)
			}
		})
	}
}

func TestResolve_DoesNotAliasInput(t *testing.T) {
	defaults := []string{".ts"}
	groups := Resolve(defaults, nil)
	groups[0].Extensions[0] = ".js"
	assert.Equal(t, ".ts", defaults[0])
}

func TestExtAndBase(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		wantExt  string
		wantBase string
	}{
		{name: "simple", file: "Foo.ts", wantExt: ".ts", wantBase: "Foo"},
		{name: "multi_dot", file: "Foo.test.ts", wantExt: ".ts", wantBase: "Foo.test"},
		{name: "with_dir", file: "/src/app/Foo.css", wantExt: ".css", wantBase: "Foo"},
		{name: "no_extension", file: "Makefile", wantExt: "", wantBase: "Makefile"},
		{name: "dotfile", file: ".gitignore", wantExt: "", wantBase: ".gitignore"},
		{name: "dotfile_with_extension", file: ".env.local", wantExt: ".local", wantBase: ".env"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantExt, Ext(tt.file))
			assert.Equal(t, tt.wantBase, Base(tt.file))
		})
	}
}

func TestCandidates(t *testing.T) {
	groups := Resolve([]string{".ts", ".css"}, map[string][]string{
		"web":  {".ts", ".html"},
		"docs": {".md"},
	})

	t.Run("filters_by_active_extension", func(t *testing.T) {
		got, err := Candidates(groups, "/ws/Foo.ts", true)
		require.NoError(t, err)
		assert.Equal(t, []string{"Default", "web"}, got.Names())
	})

	t.Run("no_match_fails_fast", func(t *testing.T) {
		_, err := Candidates(groups, "/ws/Foo.py", true)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNoMatchingGroup))
		assert.Contains(t, err.Error(), ".py")
	})

	t.Run("create_offers_everything", func(t *testing.T) {
		got, err := Candidates(groups, "", false)
		require.NoError(t, err)
		assert.Equal(t, []string{"Default", "docs", "web"}, got.Names())
	})
}

func TestSelect(t *testing.T) {
	groups := Resolve([]string{".ts", ".css"}, map[string][]string{"web": {".ts", ".html"}})
	ctx := context.Background()

	t.Run("picks_group", func(t *testing.T) {
		p := prompt.NewScripted(map[prompt.Key]string{prompt.KeyGroup: "web"}, nil)
		g, err := Select(ctx, p, groups, "rename")
		require.NoError(t, err)
		assert.Equal(t, "web", g.Name)
		assert.Equal(t, ".ts, .html", g.Description())
	})

	t.Run("cancelled", func(t *testing.T) {
		p := prompt.NewScripted(nil, nil)
		_, err := Select(ctx, p, groups, "rename")
		assert.True(t, errors.Is(err, prompt.ErrCancelled))
	})
}

func TestGroups_Lookup(t *testing.T) {
	groups := Resolve(nil, map[string][]string{"web": {".ts"}})
	g, ok := groups.Lookup("web")
	require.True(t, ok)
	assert.True(t, g.Contains(".ts"))
	assert.False(t, g.Contains("ts"))

	_, ok = groups.Lookup("missing")
	assert.False(t, ok)
}
