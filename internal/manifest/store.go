// SPDX-FileCopyrightText: 2026 The Nixdex Authors
// SPDX-License-Identifier: EUPL-1.2

package manifest

import (
	"fmt"
	"os"
	"path/filepath"
)

// File names inside the managed packages directory.
const (
	PackagesFile = "packages.nix"
	FlakeFile    = "flake.nix"
)

// Store persists the managed manifest on disk. Every mutation re-reads the
// file so edits always see the latest on-disk state, and the whole file is
// rewritten on success. The store keeps no cache across calls.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir (typically
// $XDG_DATA_HOME/nixdex/managed-packages).
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the managed packages directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the packages.nix location.
func (s *Store) Path() string {
	return filepath.Join(s.dir, PackagesFile)
}

// EnsureExists creates the directory, packages.nix skeleton, and flake.nix
// build descriptor when absent. Existing files are left untouched.
func (s *Store) EnsureExists() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create managed packages directory: %w", err)
	}

	if err := writeIfMissing(s.Path(), Skeleton); err != nil {
		return err
	}

	return writeIfMissing(filepath.Join(s.dir, FlakeFile), FlakeSkeleton)
}

// Add appends identifier to category, creating the skeleton first if needed.
// The file is only rewritten when the entry was actually added.
func (s *Store) Add(category, identifier string) (bool, error) {
	if err := s.EnsureExists(); err != nil {
		return false, err
	}

	content, err := os.ReadFile(s.Path())
	if err != nil {
		return false, fmt.Errorf("failed to read manifest: %w", err)
	}

	newText, added, err := AddEntry(string(content), category, identifier)
	if err != nil {
		return false, err
	}

	if !added {
		return false, nil
	}

	if err := os.WriteFile(s.Path(), []byte(newText), 0o644); err != nil {
		return false, fmt.Errorf("failed to write manifest: %w", err)
	}

	return true, nil
}

// Read returns the current manifest contents, creating the skeleton if the
// file does not exist yet.
func (s *Store) Read() (string, error) {
	if err := s.EnsureExists(); err != nil {
		return "", err
	}

	content, err := os.ReadFile(s.Path())
	if err != nil {
		return "", fmt.Errorf("failed to read manifest: %w", err)
	}

	return string(content), nil
}

func writeIfMissing(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}

	return nil
}
