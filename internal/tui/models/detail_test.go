// SPDX-FileCopyrightText: 2026 The Nixdex Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nixdex/nixdex/internal/nixsearch"
	"github.com/nixdex/nixdex/internal/tui/styles"
)

func newTestDetailModel(t *testing.T, record nixsearch.Record) *DetailModel {
	t.Helper()

	deps, _, _, _, _ := newTestDeps()
	model := NewDetail(context.Background(), styles.New(), deps, record)
	model.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	return model
}

func TestDetailModel_RendersPackageFields(t *testing.T) {
	t.Parallel()

	record := nixsearch.Record{
		"package_attr_name":   "ripgrep",
		"package_pname":       "ripgrep",
		"package_pversion":    "14.1.0",
		"package_description": "Line-oriented search tool",
		"package_homepage":    []any{"https://github.com/BurntSushi/ripgrep"},
		"package_programs":    []any{"rg"},
	}

	model := newTestDetailModel(t, record)
	view := model.View()

	for _, want := range []string{"ripgrep", "14.1.0", "Line-oriented search tool", "rg"} {
		if !strings.Contains(view, want) {
			t.Errorf("detail view should contain %q", want)
		}
	}
}

func TestDetailModel_RendersInstallCommands(t *testing.T) {
	t.Parallel()

	record := nixsearch.Record{"package_attr_name": "python3Packages.pytest"}
	model := newTestDetailModel(t, record)
	view := model.View()

	if !strings.Contains(view, "nix profile install nixpkgs#python3Packages.pytest") {
		t.Error("detail view should show the direct install command")
	}

	if !strings.Contains(view, "pkgs.pytest") {
		t.Error("flake usage should use the trailing attribute segment")
	}
}

func TestDetailModel_MissingFieldsUseFallbacks(t *testing.T) {
	t.Parallel()

	record := nixsearch.Record{"package_attr_name": "mystery"}
	model := newTestDetailModel(t, record)
	view := model.View()

	if !strings.Contains(view, "N/A") {
		t.Error("missing scalar fields should render as N/A")
	}

	if !strings.Contains(view, "All platforms") {
		t.Error("missing platforms should render as All platforms")
	}
}

func TestDetailModel_EscReturnsToSearch(t *testing.T) {
	t.Parallel()

	model := newTestDetailModel(t, nixsearch.Record{"package_attr_name": "ripgrep"})

	for _, keyType := range []tea.KeyType{tea.KeyEsc, tea.KeyBackspace} {
		_, cmd := model.Update(tea.KeyMsg{Type: keyType})
		if cmd == nil {
			t.Fatalf("%v should produce a navigation command", keyType)
		}

		nav, ok := cmd().(NavigateMsg)
		if !ok || nav.Screen != SearchScreen {
			t.Errorf("%v should navigate back to the search screen", keyType)
		}
	}
}
