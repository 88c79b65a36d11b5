// SPDX-FileCopyrightText: 2026 The Nixdex Authors
// SPDX-License-Identifier: EUPL-1.2

// Package config loads the nixdex TOML configuration and resolves per-user
// file locations.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/nixdex/nixdex/internal/manifest"
	"github.com/nixdex/nixdex/internal/nixsearch"
)

// appDir is the directory name used under the XDG config and data homes.
const appDir = "nixdex"

// Config holds user-tunable settings. Zero values fall back to defaults on
// load, so a partial config file is fine.
type Config struct {
	// SearchURL is the NixOS search backend endpoint.
	SearchURL string `toml:"search_url"`
	// TimeoutSeconds bounds a single search request.
	TimeoutSeconds int `toml:"timeout_seconds"`
	// DefaultCategory receives packages added without an explicit category.
	DefaultCategory string `toml:"default_category"`
	// ManagedDir overrides where the managed manifest lives.
	ManagedDir string `toml:"managed_dir"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		SearchURL:       nixsearch.DefaultURL,
		TimeoutSeconds:  int(nixsearch.DefaultTimeout / time.Second),
		DefaultCategory: manifest.DefaultCategory,
		ManagedDir:      DefaultManagedDir(),
	}
}

// Load reads the config file at Path, falling back to defaults when the file
// is absent. A present but unparsable file is an error.
func Load() (Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads a config file from an explicit location, for testing.
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	var loaded Config
	if err := toml.Unmarshal(content, &loaded); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	if loaded.SearchURL != "" {
		cfg.SearchURL = loaded.SearchURL
	}

	if loaded.TimeoutSeconds > 0 {
		cfg.TimeoutSeconds = loaded.TimeoutSeconds
	}

	if loaded.DefaultCategory != "" {
		if !manifest.ValidCategory(loaded.DefaultCategory) {
			return cfg, fmt.Errorf("%w: %s", manifest.ErrUnknownCategory, loaded.DefaultCategory)
		}

		cfg.DefaultCategory = loaded.DefaultCategory
	}

	if loaded.ManagedDir != "" {
		cfg.ManagedDir = loaded.ManagedDir
	}

	return cfg, nil
}

// Timeout returns the request timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Path returns the config file location under the XDG config home.
func Path() string {
	return filepath.Join(GetXDGConfigHome(), appDir, "config.toml")
}

// DefaultManagedDir returns where the managed manifest lives by default.
func DefaultManagedDir() string {
	return filepath.Join(GetXDGDataHome(), appDir, "managed-packages")
}
