// SPDX-FileCopyrightText: 2026 The Nixdex Authors
// SPDX-License-Identifier: EUPL-1.2

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/nixdex/nixdex/internal/console"
	"github.com/nixdex/nixdex/internal/manifest"
	"github.com/nixdex/nixdex/internal/nix"
	"github.com/nixdex/nixdex/internal/nixsearch"
	"github.com/nixdex/nixdex/internal/platform"
)

// searchResult is the JSON shape of one headless search hit.
type searchResult struct {
	AttrName    string `json:"attr_name"`
	PkgsName    string `json:"pkgs_name"`
	Version     string `json:"version"`
	Description string `json:"description"`
}

func (app *CLI) createSearchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search Nix packages from the terminal",
		ArgsUsage: "<query>",
		Description: `Queries the search.nixos.org index and prints matching packages.

Examples:
  nixdex search ripgrep
  nixdex search "http server" --json`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "json",
				Aliases: []string{"j"},
				Usage:   "output results as JSON",
			},
		},
		Action: app.handleSearch,
	}
}

func (app *CLI) handleSearch(ctx context.Context, cmd *cli.Command) error {
	query := joinArgs(cmd)
	if query == "" {
		return &ExitError{Code: ExitUsageError, Message: "usage: nixdex search <query>", Err: ErrNoQuery}
	}

	console.DefaultOutput.SetMode(app.verbose, cmd.Bool("json"))
	console.DefaultOutput.Progressf("searching %s for %q", app.cfg.SearchURL, query)

	client := nixsearch.NewClient(app.cfg.SearchURL, app.cfg.Timeout())

	records, err := client.Search(ctx, query)

	switch {
	case errors.Is(err, nixsearch.ErrNoResults):
		return &ExitError{Code: ExitNotFoundError, Message: fmt.Sprintf("no packages found for %q", query), Err: err}
	case err != nil:
		return &ExitError{Code: ExitNetworkError, Message: fmt.Sprintf("search failed: %v", err), Err: err}
	}

	if cmd.Bool("json") {
		return printJSONResults(records)
	}

	printTextResults(records)

	return nil
}

func printJSONResults(records []nixsearch.Record) error {
	results := make([]searchResult, 0, len(records))

	for _, record := range records {
		row := record.Summary()
		results = append(results, searchResult{
			AttrName:    row.Name,
			PkgsName:    record.PkgsName(),
			Version:     row.Version,
			Description: record.Description(),
		})
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(results); err != nil {
		return &ExitError{Code: ExitGeneralError, Message: fmt.Sprintf("encoding results: %v", err), Err: err}
	}

	return nil
}

func printTextResults(records []nixsearch.Record) {
	for _, record := range records {
		row := record.Summary()
		console.DefaultOutput.Resultf("%-40s %-14s %s", row.Name, row.Version, row.Description)
	}
}

func (app *CLI) createAddCommand() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Add a package to the managed manifest",
		ArgsUsage: "<package>",
		Description: `Adds a package to a category of the managed packages.nix manifest.

When no category is given and the session is interactive, a picker is shown;
otherwise the configured default category is used.

Examples:
  nixdex add ripgrep
  nixdex add ripgrep --category utilities`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "category",
				Aliases: []string{"c"},
				Usage:   "manifest category (development, productivity, media, utilities, custom)",
			},
		},
		Action: app.handleAdd,
	}
}

func (app *CLI) handleAdd(_ context.Context, cmd *cli.Command) error {
	identifier := joinArgs(cmd)
	if identifier == "" {
		return &ExitError{Code: ExitUsageError, Message: "usage: nixdex add <package>", Err: ErrNoPackage}
	}

	category, err := app.resolveCategory(cmd.String("category"))
	if err != nil {
		return err
	}

	store := manifest.NewStore(app.cfg.ManagedDir)
	if err := store.EnsureExists(); err != nil {
		return &ExitError{Code: ExitSystemError, Message: fmt.Sprintf("managed package setup failed: %v", err), Err: err}
	}

	added, err := store.Add(category, identifier)

	switch {
	case errors.Is(err, manifest.ErrDuplicateEntry) || (err == nil && !added):
		console.DefaultOutput.Warningf("%s already exists in %s", identifier, category)

		return nil
	case err != nil:
		return &ExitError{Code: ExitSystemError, Message: fmt.Sprintf("failed to add %s: %v", identifier, err), Err: err}
	}

	console.DefaultOutput.Successf("Added %s to %s (%s)", identifier, category, store.Path())

	return nil
}

// resolveCategory validates the flag value, or picks one interactively when
// the flag is absent and stdin is a terminal.
func (app *CLI) resolveCategory(flagValue string) (string, error) {
	if flagValue != "" {
		if !manifest.ValidCategory(flagValue) {
			return "", &ExitError{
				Code:    ExitUsageError,
				Message: fmt.Sprintf("unknown category %q (valid: %v)", flagValue, manifest.Categories),
				Err:     manifest.ErrUnknownCategory,
			}
		}

		return flagValue, nil
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return app.cfg.DefaultCategory, nil
	}

	category := app.cfg.DefaultCategory

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Choose a category").
				Description("Where the package goes in packages.nix").
				Options(huh.NewOptions(manifest.Categories...)...).
				Value(&category),
		),
	)

	if err := form.Run(); err != nil {
		return "", &ExitError{Code: ExitGeneralError, Message: fmt.Sprintf("category selection failed: %v", err), Err: err}
	}

	return category, nil
}

func (app *CLI) createInstallCommand() *cli.Command {
	return &cli.Command{
		Name:      "install",
		Usage:     "Install a package into the user profile",
		ArgsUsage: "<package>",
		Description: `Runs nix profile install nixpkgs#<package>.

Examples:
  nixdex install ripgrep
  nixdex install python3Packages.pytest`,
		Action: app.handleInstall,
	}
}

func (app *CLI) handleInstall(ctx context.Context, cmd *cli.Command) error {
	attrName := joinArgs(cmd)
	if attrName == "" {
		return &ExitError{Code: ExitUsageError, Message: "usage: nixdex install <package>", Err: ErrNoPackage}
	}

	console.DefaultOutput.Progressf("installing nixpkgs#%s", attrName)

	installer := nix.NewInstaller(platform.NewExecRunner())

	err := installer.Install(ctx, attrName)

	switch {
	case errors.Is(err, nix.ErrNixMissing):
		return &ExitError{Code: ExitDependencyError, Message: "nix command not found; install Nix first", Err: err}
	case err != nil:
		return &ExitError{Code: ExitGeneralError, Message: err.Error(), Err: err}
	}

	console.DefaultOutput.Successf("Successfully installed %s", attrName)

	return nil
}
