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

package config

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/tidwall/jsonc"
	"gitlab.com/tozd/go/errors"
)

// SettingsSection is the VS Code settings namespace of the extension
const SettingsSection = "fileOrchestrator"

// 🔧 JSONParser implements the Parser interface for JSON with comments.
// It understands VS Code settings.json, where keys are flattened
// ("fileOrchestrator.defaultExtensions") or nested under the section,
// as well as plain files with top level keys. Unrelated keys are ignored.
type JSONParser struct{}

func init() {
	Register(&JSONParser{})
}

// 🔍 CanParse checks if this parser can handle the given file
func (p *JSONParser) CanParse(filename string) bool {
	name := strings.ToLower(strings.TrimSpace(filename))
	return strings.HasSuffix(name, ".json") || strings.HasSuffix(name, ".jsonc")
}

// 📝 Parse parses the config from JSON bytes
func (p *JSONParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(jsonc.ToJSON(data), &raw); err != nil {
		return nil, errors.Errorf("parsing JSON: %w", err)
	}

	values := map[string]json.RawMessage{}
	if nested, ok := raw[SettingsSection]; ok {
		var section map[string]json.RawMessage
		if err := json.Unmarshal(nested, &section); err != nil {
			return nil, errors.Errorf("parsing %s section: %w", SettingsSection, err)
		}
		for k, v := range section {
			values[k] = v
		}
	}
	for k, v := range raw {
		if key, ok := strings.CutPrefix(k, SettingsSection+"."); ok {
			values[key] = v
			continue
		}
		if _, known := jsonFields[k]; known {
			values[k] = v
		}
	}

	cfg := &Config{}
	for key, v := range values {
		field, ok := jsonFields[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(v, field(cfg)); err != nil {
			return nil, errors.Errorf("parsing %s: %w", key, err)
		}
	}

	return cfg, nil
}

var jsonFields = map[string]func(*Config) any{
	"defaultExtensions":         func(c *Config) any { return &c.DefaultExtensions },
	"customExtensionLists":      func(c *Config) any { return &c.CustomExtensionLists },
	"jumpToRelatedFileShortcut": func(c *Config) any { return &c.JumpToRelatedFileShortcut },
	"excludePatterns":           func(c *Config) any { return &c.ExcludePatterns },
}
