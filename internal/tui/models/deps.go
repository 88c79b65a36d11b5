// SPDX-FileCopyrightText: 2026 The Nixdex Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"context"

	"github.com/nixdex/nixdex/internal/nixsearch"
)

// Searcher queries the package search backend.
type Searcher interface {
	Search(ctx context.Context, text string) ([]nixsearch.Record, error)
}

// ManifestStore appends packages to the managed manifest.
type ManifestStore interface {
	Add(category, identifier string) (bool, error)
	Dir() string
}

// PackageInstaller installs a package by attribute name.
type PackageInstaller interface {
	Install(ctx context.Context, attrName string) error
}

// ClipboardWriter copies text to the system clipboard.
type ClipboardWriter interface {
	Copy(ctx context.Context, text string) error
}

// Deps bundles the external collaborators every screen model may need.
// Models receive state as parameters instead of reaching for globals, which
// keeps them testable with fakes.
type Deps struct {
	Searcher        Searcher
	Store           ManifestStore
	Installer       PackageInstaller
	Clipboard       ClipboardWriter
	DefaultCategory string
}
