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

// Package sibling finds the files in a directory that share a base name.
package sibling

import (
	"context"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/fileorc/pkg/extension"
	"github.com/walteh/fileorc/pkg/filesystem"
	"gitlab.com/tozd/go/errors"
)

// 🔍 Find lists the files in dir whose base name is base and whose
// extension is one of extensions. Only dir itself is read, and the
// filesystem's enumeration order is kept.
func Find(ctx context.Context, fs filesystem.FileSystem, dir, base string, extensions []string) ([]string, error) {
	return (&Finder{FS: fs}).Find(ctx, dir, base, extensions)
}

// 🔍 Finder finds siblings, skipping files that match an exclude pattern
type Finder struct {
	FS filesystem.FileSystem
	// Root is what exclude patterns are matched relative to
	Root string
	// Exclude holds doublestar patterns such as **/node_modules/**
	Exclude []string
}

// 🏭 NewFinder validates the exclude patterns and creates a finder
func NewFinder(fs filesystem.FileSystem, root string, exclude []string) (*Finder, error) {
	for _, pattern := range exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid exclude pattern %q", pattern)
		}
	}
	return &Finder{FS: fs, Root: root, Exclude: exclude}, nil
}

func (f *Finder) Find(ctx context.Context, dir, base string, extensions []string) ([]string, error) {
	entries, err := f.FS.ReadDir(ctx, dir)
	if err != nil {
		return nil, errors.Errorf("listing %s: %w", dir, err)
	}

	logger := zerolog.Ctx(ctx)
	files := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if extension.Base(name) != base || !slices.Contains(extensions, extension.Ext(name)) {
			continue
		}

		if f.excluded(filepath.Join(dir, name)) {
			logger.Debug().Str("file", name).Msg("skipping excluded sibling")
			continue
		}

		files = append(files, name)
	}

	logger.Debug().Str("dir", dir).Str("base", base).Strs("siblings", files).Msg("found siblings")

	return files, nil
}

func (f *Finder) excluded(path string) bool {
	if len(f.Exclude) == 0 {
		return false
	}

	rel := path
	if f.Root != "" {
		if r, err := filepath.Rel(f.Root, path); err == nil {
			rel = r
		}
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range f.Exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}
