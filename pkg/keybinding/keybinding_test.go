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

package keybinding

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/fileorc/pkg/filesystem"
)

func readBindings(t *testing.T, path string) []map[string]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err, "reading keybindings should succeed")
	var out []map[string]string
	require.NoError(t, json.Unmarshal(data, &out), "keybindings should be valid JSON")
	return out
}

func TestUpdateShortcut(t *testing.T) {
	tests := []struct {
		name        string
		existing    *string
		key         string
		wantAdded   bool
		wantChanged bool
		wantPrev    string
		check       func(t *testing.T, bindings []map[string]string)
	}{
		{
			name:        "missing_file_is_created",
			existing:    nil,
			key:         "alt+p",
			wantAdded:   true,
			wantChanged: true,
			check: func(t *testing.T, bindings []map[string]string) {
				require.Len(t, bindings, 1, "should have one binding")
				assert.Equal(t, "alt+p", bindings[0]["key"], "key should match")
				assert.Equal(t, JumpCommand, bindings[0]["command"], "command should match")
				assert.Equal(t, DefaultWhen, bindings[0]["when"], "when should match")
			},
		},
		{
			name: "appends_to_existing_with_comments",
			existing: ptr(`// Place your key bindings in this file
[
	{ "key": "ctrl+k", "command": "editor.action.foo" }, // trailing
]`),
			key:         "alt+p",
			wantAdded:   true,
			wantChanged: true,
			check: func(t *testing.T, bindings []map[string]string) {
				require.Len(t, bindings, 2, "should keep the other binding")
				assert.Equal(t, "editor.action.foo", bindings[0]["command"], "first binding should be kept")
				assert.Equal(t, JumpCommand, bindings[1]["command"], "new binding should be appended")
			},
		},
		{
			name:        "updates_existing_entry",
			existing:    ptr(`[{"key": "alt+p", "command": "file-orchestrator.jumpToRelatedFile", "when": "editorFocus"}]`),
			key:         "ctrl+alt+j",
			wantChanged: true,
			wantPrev:    "alt+p",
			check: func(t *testing.T, bindings []map[string]string) {
				require.Len(t, bindings, 1, "should not append")
				assert.Equal(t, "ctrl+alt+j", bindings[0]["key"], "key should be updated")
				assert.Equal(t, "editorFocus", bindings[0]["when"], "when should be kept")
			},
		},
		{
			name:     "already_up_to_date",
			existing: ptr(`[{"key": "alt+p", "command": "file-orchestrator.jumpToRelatedFile"}]`),
			key:      "alt+p",
			wantPrev: "alt+p",
			check: func(t *testing.T, bindings []map[string]string) {
				require.Len(t, bindings, 1, "should not append")
			},
		},
		{
			name:        "empty_file",
			existing:    ptr(""),
			key:         "alt+p",
			wantAdded:   true,
			wantChanged: true,
			check: func(t *testing.T, bindings []map[string]string) {
				require.Len(t, bindings, 1, "should have one binding")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
			path := filepath.Join(t.TempDir(), "User", "keybindings.json")
			if tt.existing != nil {
				require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755), "creating dir should succeed")
				require.NoError(t, os.WriteFile(path, []byte(*tt.existing), 0644), "writing file should succeed")
			}

			res, err := UpdateShortcut(ctx, filesystem.NewOS(), path, tt.key)
			require.NoError(t, err, "update should succeed")
			assert.Equal(t, tt.wantAdded, res.Added, "added should match")
			assert.Equal(t, tt.wantChanged, res.Changed, "changed should match")
			assert.Equal(t, tt.wantPrev, res.Previous, "previous key should match")
			assert.Equal(t, tt.key, res.Key, "key should match")

			tt.check(t, readBindings(t, path))
		})
	}
}

func TestUpdateShortcut_Invalid(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "keybindings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not": "an array"}`), 0644), "writing file should succeed")

	_, err := UpdateShortcut(ctx, filesystem.NewOS(), path, "alt+p")
	require.Error(t, err, "object root should fail")
	assert.Contains(t, err.Error(), "parsing keybindings", "error should mention parsing")

	_, err = UpdateShortcut(ctx, filesystem.NewOS(), path, "  ")
	require.Error(t, err, "empty shortcut should fail")
}

func TestUpdateShortcut_RawContent(t *testing.T) {
	tests := []struct {
		name     string
		existing string
		key      string
		check    func(t *testing.T, content string)
	}{
		{
			name:     "when_clause_operators_are_not_escaped",
			existing: `[{"key": "f5", "command": "workbench.action.debug.start", "when": "editorTextFocus && !inDebugRepl"}]`,
			key:      "alt+p",
			check: func(t *testing.T, content string) {
				assert.Contains(t, content, `"editorTextFocus && !inDebugRepl"`, "operators should be written as is")
				assert.NotContains(t, content, `\u0026`, "ampersands should not be escaped")
			},
		},
		{
			name:     "updated_entry_keeps_field_order",
			existing: `[{"key": "alt+p", "command": "file-orchestrator.jumpToRelatedFile", "when": "editorFocus && !isLinux"}]`,
			key:      "ctrl+alt+j",
			check: func(t *testing.T, content string) {
				key := strings.Index(content, `"key"`)
				command := strings.Index(content, `"command"`)
				when := strings.Index(content, `"when"`)
				require.True(t, key >= 0 && command >= 0 && when >= 0, "all fields should be written")
				assert.Less(t, key, command, "key should stay before command")
				assert.Less(t, command, when, "command should stay before when")
				assert.Contains(t, content, `"editorFocus && !isLinux"`, "when should not be escaped")
				assert.Contains(t, content, `"ctrl+alt+j"`, "key should be updated")
			},
		},
		{
			name:     "added_entry_has_key_first",
			existing: `[]`,
			key:      "alt+p",
			check: func(t *testing.T, content string) {
				assert.Less(t, strings.Index(content, `"key"`), strings.Index(content, `"command"`), "key should come before command")
				assert.Less(t, strings.Index(content, `"command"`), strings.Index(content, `"when"`), "command should come before when")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
			path := filepath.Join(t.TempDir(), "keybindings.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.existing), 0644), "writing file should succeed")

			_, err := UpdateShortcut(ctx, filesystem.NewOS(), path, tt.key)
			require.NoError(t, err, "update should succeed")

			data, err := os.ReadFile(path)
			require.NoError(t, err, "reading keybindings should succeed")
			tt.check(t, string(data))
		})
	}
}

func ptr(s string) *string {
	return &s
}
