// SPDX-FileCopyrightText: 2026 The Nixdex Authors
// SPDX-License-Identifier: EUPL-1.2

// Package nix drives the external nix tooling: profile installs and flake
// snippet composition.
package nix

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nixdex/nixdex/internal/platform"
)

// diagnosticLimit caps how much captured stderr is surfaced to the user.
const diagnosticLimit = 200

var (
	// ErrNixMissing is reported when the nix executable is not installed.
	ErrNixMissing = errors.New("nix not found, ensure Nix is installed")
	// ErrInstallFailed wraps a nonzero nix exit with its diagnostic text.
	ErrInstallFailed = errors.New("installation failed")
)

// Installer installs packages into the user profile via nix.
type Installer struct {
	runner platform.Runner
}

// NewInstaller creates an installer using the given command runner.
func NewInstaller(runner platform.Runner) *Installer {
	return &Installer{runner: runner}
}

// Install runs `nix profile install nixpkgs#<attr>`. A nonzero exit surfaces
// the first part of stderr; a missing nix binary is reported distinctly.
func (i *Installer) Install(ctx context.Context, attrName string) error {
	_, stderr, err := i.runner.Run(ctx, "nix", "profile", "install", "nixpkgs#"+attrName)
	if err == nil {
		return nil
	}

	if platform.IsNotFound(err) {
		return ErrNixMissing
	}

	diagnostic := strings.TrimSpace(stderr)
	if diagnostic == "" {
		diagnostic = err.Error()
	}

	if len(diagnostic) > diagnosticLimit {
		diagnostic = diagnostic[:diagnosticLimit]
	}

	return fmt.Errorf("%w: %s", ErrInstallFailed, diagnostic)
}

// FlakeSnippet composes the systemPackages line for a package, with the
// description (cut to 50 characters) as a trailing comment.
func FlakeSnippet(pkgsName, description string) string {
	if len(description) > 50 {
		description = description[:50]
	}

	return fmt.Sprintf("    pkgs.%s  # %s", pkgsName, description)
}
