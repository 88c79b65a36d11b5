// SPDX-FileCopyrightText: 2026 The Nixdex Authors
// SPDX-License-Identifier: EUPL-1.2

// Package cli provides the command-line interface: the interactive TUI as the
// default action plus headless subcommands for scripting.
package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/nixdex/nixdex/internal/config"
	"github.com/nixdex/nixdex/internal/console"
	"github.com/nixdex/nixdex/internal/manifest"
	"github.com/nixdex/nixdex/internal/nix"
	"github.com/nixdex/nixdex/internal/nixsearch"
	"github.com/nixdex/nixdex/internal/platform"
	"github.com/nixdex/nixdex/internal/tui"
	"github.com/nixdex/nixdex/internal/tui/models"
)

// Exit codes follow standard Unix conventions for better scripting support.
const (
	ExitSuccess         = 0  // Operation completed successfully
	ExitGeneralError    = 1  // Generic failure (catch-all)
	ExitUsageError      = 2  // Invalid command line usage
	ExitConfigError     = 3  // Configuration file error
	ExitNotFoundError   = 5  // Requested package not found
	ExitDependencyError = 10 // Missing dependency (nix, clipboard tool)
	ExitNetworkError    = 11 // Search backend unreachable
	ExitSystemError     = 12 // Filesystem failure
)

// Version is set at build time via ldflags.
var Version = "dev"

// ErrNoQuery is returned when the search subcommand gets no query text.
var ErrNoQuery = errors.New("no search query specified")

// ErrNoPackage is returned when add or install gets no package argument.
var ErrNoPackage = errors.New("no package specified")

// CLI wires configuration and collaborators into a urfave command tree.
type CLI struct {
	app     *cli.Command
	cfg     config.Config
	verbose bool
	json    bool
	timeout time.Duration
}

// NewCLI creates the nixdex command-line interface.
func NewCLI() *CLI {
	app := &CLI{cfg: config.Default()}

	app.app = &cli.Command{
		Name:    "nixdex",
		Usage:   "Search, inspect, and install Nix packages",
		Version: Version,
		Suggest: true,
		Description: `Interactive package discovery for Nix, backed by the search.nixos.org index.

Running nixdex without a subcommand opens the interactive interface.

Examples:
  nixdex                           # Interactive search
  nixdex search ripgrep            # Headless search
  nixdex search ripgrep --json     # Machine-readable results
  nixdex add ripgrep -c utilities  # Add to the managed manifest
  nixdex install ripgrep           # Install into the user profile`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "verbose",
				Usage:       "show progress messages to stderr",
				Aliases:     []string{"v"},
				Destination: &app.verbose,
			},
			&cli.DurationFlag{
				Name:        "timeout",
				Usage:       "timeout for search requests (0 = use configured value)",
				Destination: &app.timeout,
			},
		},
		Before: func(ctx context.Context, _ *cli.Command) (context.Context, error) {
			console.DefaultOutput.SetMode(app.verbose, false)

			return ctx, app.initConfig()
		},
		Action: app.runTUI,
		Commands: []*cli.Command{
			app.createSearchCommand(),
			app.createAddCommand(),
			app.createInstallCommand(),
			app.createInitCommand(),
			app.createVersionCommand(),
		},
	}

	return app
}

// Run executes the CLI application.
func (app *CLI) Run(ctx context.Context, args []string) error {
	return app.app.Run(ctx, args)
}

// initConfig loads the user configuration and applies flag overrides.
func (app *CLI) initConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return &ExitError{Code: ExitConfigError, Message: fmt.Sprintf("invalid configuration: %v", err), Err: err}
	}

	app.cfg = cfg

	if app.timeout > 0 {
		app.cfg.TimeoutSeconds = int(app.timeout / time.Second)
	}

	return nil
}

// deps assembles the collaborators shared by the TUI and the headless
// subcommands.
func (app *CLI) deps() (*models.Deps, error) {
	runner := platform.NewExecRunner()

	store := manifest.NewStore(app.cfg.ManagedDir)
	if err := store.EnsureExists(); err != nil {
		return nil, &ExitError{Code: ExitSystemError, Message: fmt.Sprintf("managed package setup failed: %v", err), Err: err}
	}

	return &models.Deps{
		Searcher:        nixsearch.NewClient(app.cfg.SearchURL, app.cfg.Timeout()),
		Store:           store,
		Installer:       nix.NewInstaller(runner),
		Clipboard:       nix.NewClipboard(runner),
		DefaultCategory: app.cfg.DefaultCategory,
	}, nil
}

func (app *CLI) runTUI(ctx context.Context, _ *cli.Command) error {
	deps, err := app.deps()
	if err != nil {
		return err
	}

	if err := tui.Launch(ctx, deps); err != nil {
		if errors.Is(err, tui.ErrNoTerminal) {
			return &ExitError{
				Code:    ExitUsageError,
				Message: "nixdex needs a terminal; use the search/add/install subcommands in scripts",
				Err:     err,
			}
		}

		return &ExitError{Code: ExitGeneralError, Message: err.Error(), Err: err}
	}

	return nil
}

func (app *CLI) createVersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show version information",
		Action: func(_ context.Context, _ *cli.Command) error {
			console.DefaultOutput.Resultf("nixdex %s", Version)

			return nil
		},
	}
}

func (app *CLI) createInitCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Create the managed package manifest and flake",
		Description: `Creates the managed package directory with an empty packages.nix manifest
and a flake.nix that exposes the categories as buildable environments.

Existing files are left untouched.`,
		Action: func(_ context.Context, _ *cli.Command) error {
			store := manifest.NewStore(app.cfg.ManagedDir)
			if err := store.EnsureExists(); err != nil {
				return &ExitError{Code: ExitSystemError, Message: fmt.Sprintf("init failed: %v", err), Err: err}
			}

			console.DefaultOutput.Successf("Managed packages initialized in %s", store.Dir())

			return nil
		},
	}
}

func joinArgs(cmd *cli.Command) string {
	return strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))
}
