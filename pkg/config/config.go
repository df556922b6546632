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
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DefaultShortcut is the keybinding used when none is configured
const DefaultShortcut = "alt+p"

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config is one invocation's view of the settings
type Config struct {
	DefaultExtensions         []string            `json:"defaultExtensions" yaml:"defaultExtensions"`
	CustomExtensionLists      map[string][]string `json:"customExtensionLists" yaml:"customExtensionLists"`
	JumpToRelatedFileShortcut string              `json:"jumpToRelatedFileShortcut" yaml:"jumpToRelatedFileShortcut"`
	ExcludePatterns           []string            `json:"excludePatterns" yaml:"excludePatterns"`

	// location is the file the config was read from, empty for defaults
	location string
}

// 🏭 Default returns the config used when no file is found
func Default() *Config {
	return &Config{
		JumpToRelatedFileShortcut: DefaultShortcut,
	}
}

// Location is the file the config was read from, empty when defaults were used
func (cfg *Config) Location() string {
	return cfg.location
}

// 🔍 Validate checks if the configuration is valid and fills defaults
func (cfg *Config) Validate() error {
	if err := validateExtensions("defaultExtensions", cfg.DefaultExtensions); err != nil {
		return err
	}

	for name, exts := range cfg.CustomExtensionLists {
		if strings.TrimSpace(name) == "" {
			return errors.Errorf("customExtensionLists: group name is required")
		}
		if err := validateExtensions("customExtensionLists."+name, exts); err != nil {
			return err
		}
	}

	if cfg.JumpToRelatedFileShortcut == "" {
		cfg.JumpToRelatedFileShortcut = DefaultShortcut
	}

	return nil
}

func validateExtensions(field string, exts []string) error {
	for i, ext := range exts {
		if ext == "" {
			return errors.Errorf("%s[%d]: extension must not be empty", field, i)
		}
	}
	return nil
}

// Warnings lists extensions that do not start with a dot. They are kept
// as written but will never match a file.
func (cfg *Config) Warnings() []string {
	var out []string
	check := func(field string, exts []string) {
		for _, ext := range exts {
			if !strings.HasPrefix(ext, ".") {
				out = append(out, fmt.Sprintf("%s: extension %q does not start with '.'", field, ext))
			}
		}
	}

	check("defaultExtensions", cfg.DefaultExtensions)
	names := make([]string, 0, len(cfg.CustomExtensionLists))
	for name := range cfg.CustomExtensionLists {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		check("customExtensionLists."+name, cfg.CustomExtensionLists[name])
	}
	return out
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	src := cfg.location
	if src == "" {
		src = "defaults"
	}
	return fmt.Sprintf("%d default extensions, %d custom lists (%s)", len(cfg.DefaultExtensions), len(cfg.CustomExtensionLists), src)
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	cfg.location = path

	for _, w := range cfg.Warnings() {
		logger.Warn().Str("path", path).Msg(w)
	}

	return cfg, nil
}

// SearchPaths are tried in order, relative to the workspace, when no config file is given
var SearchPaths = []string{
	".fileorc.yaml",
	".fileorc.yml",
	".fileorc.hcl",
	".fileorc.json",
	filepath.Join(".vscode", "settings.json"),
}

// 🔍 Discover loads the explicit path when given, otherwise the first
// existing file from SearchPaths under workspace. With nothing found it
// returns Default.
func Discover(ctx context.Context, workspace, explicit string) (*Config, error) {
	if explicit != "" {
		return Load(ctx, explicit)
	}

	for _, rel := range SearchPaths {
		path := filepath.Join(workspace, rel)
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, errors.Errorf("checking %s: %w", path, err)
		}
		return Load(ctx, path)
	}

	zerolog.Ctx(ctx).Debug().Str("workspace", workspace).Msg("no config file found, using defaults")
	return Default(), nil
}
