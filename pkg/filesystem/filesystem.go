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

package filesystem

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrTargetExists is returned when a rename, copy or create would replace an existing file
var ErrTargetExists = errors.Base("target already exists")

// 💾 FileSystem is the capability every file operation goes through
type FileSystem interface {
	// ReadDir lists a single directory in enumeration order
	ReadDir(ctx context.Context, dir string) ([]fs.DirEntry, error)
	ReadFile(ctx context.Context, path string) ([]byte, error)
	// WriteFile replaces the content of an existing file, keeping its mode
	WriteFile(ctx context.Context, path string, content []byte) error

	// Rename moves src to dst and fails when dst exists
	Rename(ctx context.Context, src, dst string) error
	// Copy copies src to dst and fails when dst exists
	Copy(ctx context.Context, src, dst string) error
	// Remove deletes a file permanently
	Remove(ctx context.Context, path string) error
	// CreateEmpty creates a new empty file and fails when path exists
	CreateEmpty(ctx context.Context, path string) error

	MkdirAll(ctx context.Context, dir string) error
	Exists(ctx context.Context, path string) (bool, error)
}

// 🔧 OS implements FileSystem on the host filesystem
type OS struct{}

var _ FileSystem = OS{}

// 🏭 NewOS returns the host filesystem
func NewOS() OS {
	return OS{}
}

func (OS) ReadDir(ctx context.Context, dir string) ([]fs.DirEntry, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, errors.Errorf("opening directory: %w", err)
	}
	defer f.Close()

	// os.ReadDir sorts by name; enumeration order is kept here
	entries, err := f.ReadDir(-1)
	if err != nil {
		return nil, errors.Errorf("reading directory: %w", err)
	}
	return entries, nil
}

func (OS) ReadFile(ctx context.Context, path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	return content, nil
}

func (OS) WriteFile(ctx context.Context, path string, content []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Errorf("checking file: %w", err)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, content, info.Mode().Perm()); err != nil {
		return errors.Errorf("writing temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}

func (o OS) Rename(ctx context.Context, src, dst string) error {
	if err := ensureAbsent(dst); err != nil {
		return err
	}

	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}

	if !errors.Is(err, syscall.EXDEV) {
		return errors.Errorf("renaming file: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("src", src).Str("dst", dst).Msg("cross-device rename, copying instead")

	if err := o.Copy(ctx, src, dst); err != nil {
		return err
	}
	if err := os.Remove(src); err != nil {
		return errors.Errorf("removing source after copy: %w", err)
	}
	return nil
}

func (OS) Copy(ctx context.Context, src, dst string) error {
	source, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source file: %w", err)
	}
	defer source.Close()

	info, err := source.Stat()
	if err != nil {
		return errors.Errorf("checking source file: %w", err)
	}

	destination, err := createExclusive(dst, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(destination, source); err != nil {
		destination.Close()
		os.Remove(dst)
		return errors.Errorf("copying file: %w", err)
	}

	if err := destination.Close(); err != nil {
		return errors.Errorf("closing destination file: %w", err)
	}

	return nil
}

func (OS) Remove(ctx context.Context, path string) error {
	if err := os.Remove(path); err != nil {
		return errors.Errorf("deleting file: %w", err)
	}
	return nil
}

func (OS) CreateEmpty(ctx context.Context, path string) error {
	f, err := createExclusive(path, 0o644)
	if err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Errorf("closing new file: %w", err)
	}
	return nil
}

func (OS) MkdirAll(ctx context.Context, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Errorf("creating directory: %w", err)
	}
	return nil
}

func (OS) Exists(ctx context.Context, path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Errorf("checking file existence: %w", err)
}

func ensureAbsent(path string) error {
	_, err := os.Lstat(path)
	if err == nil {
		return errors.Errorf("%w: %s", ErrTargetExists, path)
	}
	if !os.IsNotExist(err) {
		return errors.Errorf("checking target: %w", err)
	}
	return nil
}

func createExclusive(path string, perm os.FileMode) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err == nil {
		return f, nil
	}
	if os.IsExist(err) {
		return nil, errors.Errorf("%w: %s", ErrTargetExists, filepath.Clean(path))
	}
	return nil, errors.Errorf("creating file: %w", err)
}
