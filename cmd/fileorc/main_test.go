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

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
defaultExtensions: [".md"]
customExtensionLists:
  web: [".ts", ".css"]
`

func setupWorkspace(t *testing.T, files map[string]string) string {
	t.Helper()
	ws := t.TempDir()
	files[".fileorc.yaml"] = testConfig
	for rel, content := range files {
		path := filepath.Join(ws, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755), "creating dir should succeed")
		require.NoError(t, os.WriteFile(path, []byte(content), 0644), "writing file should succeed")
	}
	return ws
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestRun(t *testing.T) {
	tests := []struct {
		name       string
		files      map[string]string
		args       func(ws string) []string
		wantCode   int
		wantStdout string
		wantStderr string
		check      func(t *testing.T, ws string)
	}{
		{
			name:  "rename_sibling_set",
			files: map[string]string{"Foo.ts": "ts", "Foo.css": "css", "Bar.ts": "bar"},
			args: func(ws string) []string {
				return []string{"rename", filepath.Join(ws, "Foo.ts"), "-w", ws, "--no-input", "--group", "web", "--name", "Baz"}
			},
			wantCode:   0,
			wantStderr: "File renamed: Foo.ts -> Baz.ts",
			check: func(t *testing.T, ws string) {
				assert.True(t, fileExists(filepath.Join(ws, "Baz.ts")), "Baz.ts should exist")
				assert.True(t, fileExists(filepath.Join(ws, "Baz.css")), "Baz.css should exist")
				assert.True(t, fileExists(filepath.Join(ws, "Bar.ts")), "Bar.ts should be untouched")
			},
		},
		{
			name:  "command_id_alias",
			files: map[string]string{"Foo.ts": "ts"},
			args: func(ws string) []string {
				return []string{"deleteFile", filepath.Join(ws, "Foo.ts"), "-w", ws, "--no-input", "--group", "web"}
			},
			wantCode:   0,
			wantStderr: "File deleted: Foo.ts",
			check: func(t *testing.T, ws string) {
				assert.False(t, fileExists(filepath.Join(ws, "Foo.ts")), "Foo.ts should be deleted")
			},
		},
		{
			name:  "no_active_file",
			files: map[string]string{},
			args: func(ws string) []string {
				return []string{"delete", "-w", ws, "--no-input"}
			},
			wantCode:   1,
			wantStderr: "No active file to delete",
		},
		{
			name:  "no_matching_group",
			files: map[string]string{"main.go": "package main"},
			args: func(ws string) []string {
				return []string{"rename", filepath.Join(ws, "main.go"), "-w", ws, "--no-input"}
			},
			wantCode:   1,
			wantStderr: "No extension lists found containing .go. Command aborted.",
		},
		{
			name:  "unanswered_prompt_cancels_quietly",
			files: map[string]string{"Foo.ts": "ts"},
			args: func(ws string) []string {
				return []string{"rename", filepath.Join(ws, "Foo.ts"), "-w", ws, "--no-input", "--group", "web"}
			},
			wantCode: 0,
			check: func(t *testing.T, ws string) {
				assert.True(t, fileExists(filepath.Join(ws, "Foo.ts")), "Foo.ts should be untouched")
			},
		},
		{
			name:  "copy_collision_exits_nonzero",
			files: map[string]string{"Foo.ts": "ts", "Foo.css": "css", "Baz.ts": "keep"},
			args: func(ws string) []string {
				return []string{"copy", filepath.Join(ws, "Foo.ts"), "-w", ws, "--no-input", "-g", "web", "--name", "Baz"}
			},
			wantCode:   1,
			wantStderr: "Failed to copy file Foo.ts",
			check: func(t *testing.T, ws string) {
				assert.True(t, fileExists(filepath.Join(ws, "Baz.css")), "the other sibling should still be copied")
			},
		},
		{
			name:  "create_files",
			files: map[string]string{},
			args: func(ws string) []string {
				return []string{"create", "-w", ws, "--no-input", "--group", "web", "--name", "Widget", "--target-dir", "src"}
			},
			wantCode: 0,
			check: func(t *testing.T, ws string) {
				assert.True(t, fileExists(filepath.Join(ws, "src", "Widget.ts")), "Widget.ts should exist")
				assert.True(t, fileExists(filepath.Join(ws, "src", "Widget.css")), "Widget.css should exist")
			},
		},
		{
			name:  "jump_prints_path",
			files: map[string]string{"Foo.ts": "ts", "Foo.css": "css"},
			args: func(ws string) []string {
				return []string{"jump", filepath.Join(ws, "Foo.ts"), "-w", ws, "--no-input", "--group", "web", "--pick", "Foo.css"}
			},
			wantCode:   0,
			wantStdout: "Foo.css",
		},
		{
			name:  "bulk_replace",
			files: map[string]string{"Foo.ts": "useFoo()", "Foo.css": ".Foo {}"},
			args: func(ws string) []string {
				return []string{"replace", filepath.Join(ws, "Foo.ts"), "-w", ws, "--no-input", "--group", "web", "--search", "Foo", "--replace", "Bar"}
			},
			wantCode:   0,
			wantStderr: "Bulk replace completed. 2 occurrences replaced.",
		},
		{
			name:  "bulk_replace_with_empty_replacement",
			files: map[string]string{"Foo.ts": "useFooX()", "Foo.css": ".Foo {}"},
			args: func(ws string) []string {
				return []string{"replace", filepath.Join(ws, "Foo.ts"), "-w", ws, "--no-input", "--group", "web", "--search", "X", "--replace", ""}
			},
			wantCode:   0,
			wantStderr: "Bulk replace completed. 1 occurrences replaced.",
			check: func(t *testing.T, ws string) {
				content, err := os.ReadFile(filepath.Join(ws, "Foo.ts"))
				require.NoError(t, err, "reading Foo.ts should succeed")
				assert.Equal(t, "useFoo()", string(content), "match should be removed")
			},
		},
		{
			name:  "bulk_replace_without_search",
			files: map[string]string{"Foo.ts": "useFoo()"},
			args: func(ws string) []string {
				return []string{"bulkReplace", filepath.Join(ws, "Foo.ts"), "-w", ws, "--no-input"}
			},
			wantCode:   1,
			wantStderr: "Please select text to replace",
		},
		{
			name:  "invalid_config",
			files: map[string]string{"Foo.ts": "ts", "broken.yaml": "defaultExtensions: ["},
			args: func(ws string) []string {
				return []string{"rename", filepath.Join(ws, "Foo.ts"), "-w", ws, "-c", filepath.Join(ws, "broken.yaml"), "--no-input"}
			},
			wantCode:   1,
			wantStderr: "loading config",
		},
		{
			name:  "version",
			files: map[string]string{},
			args: func(ws string) []string {
				return []string{"version"}
			},
			wantCode:   0,
			wantStdout: "🚀 fileorc ",
		},
		{
			name:  "version_json",
			files: map[string]string{},
			args: func(ws string) []string {
				return []string{"version", "--json"}
			},
			wantCode:   0,
			wantStdout: `"platform": "` + runtime.GOOS + "/" + runtime.GOARCH + `"`,
		},
		{
			name:  "unknown_command",
			files: map[string]string{},
			args: func(ws string) []string {
				return []string{"frobnicate"}
			},
			wantCode:   1,
			wantStderr: "unknown command",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := setupWorkspace(t, tt.files)

			var stdout, stderr bytes.Buffer
			code := runWith(context.Background(), tt.args(ws), &stdout, &stderr, nil)

			assert.Equal(t, tt.wantCode, code, "exit code should match; stderr: %s", stderr.String())
			if tt.wantStdout != "" {
				assert.Contains(t, stdout.String(), tt.wantStdout, "stdout should match")
			}
			if tt.wantStderr != "" {
				assert.Contains(t, stderr.String(), tt.wantStderr, "stderr should match")
			}
			if tt.check != nil {
				tt.check(t, ws)
			}
		})
	}
}

func TestShortcutCommand(t *testing.T) {
	ws := setupWorkspace(t, map[string]string{})
	keybindings := filepath.Join(ws, "keybindings.json")

	var stdout, stderr bytes.Buffer
	code := runWith(context.Background(), []string{"shortcut", "-w", ws, "--keybindings", keybindings}, &stdout, &stderr, nil)
	require.Equal(t, 0, code, "exit code should be 0; stderr: %s", stderr.String())

	content, err := os.ReadFile(keybindings)
	require.NoError(t, err, "keybindings should be written")
	assert.Contains(t, string(content), `"alt+p"`, "default shortcut should be bound")
	assert.Contains(t, string(content), "file-orchestrator.jumpToRelatedFile", "command should be bound")
}

func TestBuildInfo_String(t *testing.T) {
	tests := []struct {
		name     string
		info     BuildInfo
		want     []string
		wantNone []string
	}{
		{
			name: "release_build",
			info: BuildInfo{Version: "v1.2.3", Commit: "abc", Built: "2025-01-02T03:04:05Z", Go: "go1.23.5", Platform: "linux/amd64"},
			want: []string{"🚀 fileorc v1.2.3", "commit:   abc\n", "built:    2025-01-02T03:04:05Z", "platform: linux/amd64"},
		},
		{
			name:     "dirty_build_without_vcs_time",
			info:     BuildInfo{Version: "dev", Commit: "abc", Dirty: true, Go: "go1.23.5", Platform: "darwin/arm64"},
			want:     []string{"commit:   abc (dirty)"},
			wantNone: []string{"built:"},
		},
		{
			name: "no_vcs_info",
			info: BuildInfo{Version: "dev", Go: "go1.23.5", Platform: "linux/amd64"},
			want: []string{"commit:   unknown"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.info.String()
			for _, w := range tt.want {
				assert.Contains(t, out, w, "output should contain %q", w)
			}
			for _, w := range tt.wantNone {
				assert.NotContains(t, out, w, "output should not contain %q", w)
			}
		})
	}
}
