// SPDX-FileCopyrightText: 2026 The Nixdex Authors
// SPDX-License-Identifier: EUPL-1.2

// Package main provides the CLI entry point for nixdex.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/nixdex/nixdex/internal/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	// One instance at a time: concurrent writers would race on packages.nix.
	lockPath := filepath.Join(os.TempDir(), "nixdex.lock")
	lock := flock.New(lockPath)

	locked, err := lock.TryLock()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to acquire process lock: %v\n", err)

		return cli.ExitSystemError
	}

	if !locked {
		fmt.Fprintf(os.Stderr, "Another nixdex instance is already running\n")

		return cli.ExitGeneralError
	}

	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to release process lock: %v\n", unlockErr)
		}
	}()

	app := cli.NewCLI()

	if err := app.Run(context.Background(), os.Args); err != nil {
		exitErr := &cli.ExitError{}
		if errors.As(err, &exitErr) {
			fmt.Fprintf(os.Stderr, "%s\n", exitErr.Message)

			return exitErr.Code
		}

		fmt.Fprintf(os.Stderr, "Unexpected error: %v\n", err)

		return cli.ExitGeneralError
	}

	return cli.ExitSuccess
}
