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

// Package keybinding writes the jump shortcut into an editor keybindings.json.
//
// The file is a JSON array with comments allowed. Comments and trailing
// commas are accepted on read but are not preserved on write.
package keybinding

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/tidwall/jsonc"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/fileorc/pkg/filesystem"
)

const (
	// JumpCommand is the command id bound by UpdateShortcut
	JumpCommand = "file-orchestrator.jumpToRelatedFile"
	// DefaultWhen is the context clause of a newly added binding
	DefaultWhen = "editorTextFocus"
)

// Result reports what UpdateShortcut did
type Result struct {
	Path     string
	Key      string
	Previous string
	Added    bool
	Changed  bool
}

// 🔍 DefaultPath returns the user keybindings file of VS Code for this OS
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Errorf("locating user config dir: %w", err)
	}
	return filepath.Join(dir, "Code", "User", "keybindings.json"), nil
}

type binding struct {
	Key     string `json:"key"`
	Command string `json:"command"`
}

// 🎯 UpdateShortcut binds key to JumpCommand in the keybindings file at path.
// An existing entry for the command gets the new key, otherwise a new entry
// is appended. A missing file is created.
func UpdateShortcut(ctx context.Context, fsys filesystem.FileSystem, path, key string) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	key = strings.TrimSpace(key)
	if key == "" {
		return nil, errors.New("shortcut is required")
	}

	exists, err := fsys.Exists(ctx, path)
	if err != nil {
		return nil, err
	}

	var entries []json.RawMessage
	if exists {
		data, err := fsys.ReadFile(ctx, path)
		if err != nil {
			return nil, err
		}
		if len(bytes.TrimSpace(jsonc.ToJSON(data))) > 0 {
			if err := json.Unmarshal(jsonc.ToJSON(data), &entries); err != nil {
				return nil, errors.Errorf("parsing keybindings: %w", err)
			}
		}
	}

	res := &Result{Path: path, Key: key}

	found := false
	for i, raw := range entries {
		var b binding
		if err := json.Unmarshal(raw, &b); err != nil {
			// not an object, leave it alone
			continue
		}
		if b.Command != JumpCommand {
			continue
		}
		found = true
		res.Previous = b.Key
		if b.Key == key {
			break
		}

		updated, err := setField(raw, "key", key)
		if err != nil {
			return nil, errors.Errorf("updating keybinding %d: %w", i, err)
		}
		entries[i] = updated
		res.Changed = true
		break
	}

	if !found {
		added, err := marshal(entry{Key: key, Command: JumpCommand, When: DefaultWhen})
		if err != nil {
			return nil, errors.Errorf("encoding keybinding: %w", err)
		}
		entries = append(entries, added)
		res.Added = true
		res.Changed = true
	}

	if !res.Changed {
		logger.Debug().Str("path", path).Str("key", key).Msg("shortcut already up to date")
		return res, nil
	}

	content, err := encode(entries)
	if err != nil {
		return nil, err
	}

	if !exists {
		if err := fsys.MkdirAll(ctx, filepath.Dir(path)); err != nil {
			return nil, err
		}
		if err := fsys.CreateEmpty(ctx, path); err != nil {
			return nil, err
		}
	}

	if err := fsys.WriteFile(ctx, path, content); err != nil {
		return nil, err
	}

	logger.Debug().Str("path", path).Str("key", key).Bool("added", res.Added).Msg("shortcut updated")
	return res, nil
}

type entry struct {
	Key     string `json:"key"`
	Command string `json:"command"`
	When    string `json:"when,omitempty"`
}

// marshal encodes v without escaping &, < and >, which appear in "when" clauses
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// setField replaces the value of name in the object raw, keeping the order
// and the bytes of every other field
func setField(raw json.RawMessage, name string, value any) (json.RawMessage, error) {
	encoded, err := marshal(value)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return nil, errors.New("keybinding is not an object")
	}

	var out bytes.Buffer
	out.WriteByte('{')
	replaced := false
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		field, ok := tok.(string)
		if !ok {
			return nil, errors.Errorf("unexpected token %v", tok)
		}

		var val json.RawMessage
		if err := dec.Decode(&val); err != nil {
			return nil, err
		}
		if field == name {
			val = encoded
			replaced = true
		}

		if out.Len() > 1 {
			out.WriteByte(',')
		}
		fieldName, err := marshal(field)
		if err != nil {
			return nil, err
		}
		out.Write(fieldName)
		out.WriteByte(':')
		out.Write(val)
	}

	if !replaced {
		if out.Len() > 1 {
			out.WriteByte(',')
		}
		fieldName, err := marshal(name)
		if err != nil {
			return nil, err
		}
		out.Write(fieldName)
		out.WriteByte(':')
		out.Write(encoded)
	}
	out.WriteByte('}')

	return out.Bytes(), nil
}

func encode(entries []json.RawMessage) ([]byte, error) {
	if entries == nil {
		entries = []json.RawMessage{}
	}
	raw, err := marshal(entries)
	if err != nil {
		return nil, errors.Errorf("encoding keybindings: %w", err)
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "\t"); err != nil {
		return nil, errors.Errorf("formatting keybindings: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}
