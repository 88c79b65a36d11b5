// SPDX-FileCopyrightText: 2026 The Nixdex Authors
// SPDX-License-Identifier: EUPL-1.2

package config

import (
	"os"
	"path/filepath"
)

// GetXDGConfigHome returns the XDG config directory.
func GetXDGConfigHome() string {
	return GetXDGConfigHomeWithEnv(os.Getenv("XDG_CONFIG_HOME"))
}

// GetXDGConfigHomeWithEnv returns the XDG config directory with a custom
// environment override for testing.
func GetXDGConfigHomeWithEnv(xdgConfigHome string) string {
	if xdgConfigHome != "" {
		return xdgConfigHome
	}

	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config")
	}

	return ""
}

// GetXDGDataHome returns the XDG data directory.
func GetXDGDataHome() string {
	return GetXDGDataHomeWithEnv(os.Getenv("XDG_DATA_HOME"))
}

// GetXDGDataHomeWithEnv returns the XDG data directory with a custom
// environment override for testing.
func GetXDGDataHomeWithEnv(xdgDataHome string) string {
	if xdgDataHome != "" {
		return xdgDataHome
	}

	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share")
	}

	return ""
}
