// SPDX-FileCopyrightText: 2026 The Nixdex Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nixdex/nixdex/internal/nix"
	"github.com/nixdex/nixdex/internal/nixsearch"
	"github.com/nixdex/nixdex/internal/tui/styles"
)

// Fake collaborators so models run without network, disk, or subprocesses.

type fakeSearcher struct {
	records []nixsearch.Record
	err     error
	queries []string
}

func (f *fakeSearcher) Search(_ context.Context, text string) ([]nixsearch.Record, error) {
	f.queries = append(f.queries, text)

	return f.records, f.err
}

type fakeStore struct {
	added [][2]string
	err   error
}

func (f *fakeStore) Add(category, identifier string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}

	f.added = append(f.added, [2]string{category, identifier})

	return true, nil
}

func (f *fakeStore) Dir() string { return "/tmp/managed" }

type fakeInstaller struct {
	installed []string
	err       error
}

func (f *fakeInstaller) Install(_ context.Context, attrName string) error {
	f.installed = append(f.installed, attrName)

	return f.err
}

type fakeClipboard struct {
	copied []string
	err    error
}

func (f *fakeClipboard) Copy(_ context.Context, text string) error {
	if f.err != nil {
		return f.err
	}

	f.copied = append(f.copied, text)

	return nil
}

func newTestDeps() (*Deps, *fakeSearcher, *fakeStore, *fakeInstaller, *fakeClipboard) {
	searcher := &fakeSearcher{}
	store := &fakeStore{}
	installer := &fakeInstaller{}
	clipboard := &fakeClipboard{}

	deps := &Deps{
		Searcher:        searcher,
		Store:           store,
		Installer:       installer,
		Clipboard:       clipboard,
		DefaultCategory: "custom",
	}

	return deps, searcher, store, installer, clipboard
}

func newTestSearchModel(t *testing.T, deps *Deps) *SearchModel {
	t.Helper()

	model := NewSearch(context.Background(), styles.New(), deps)
	model.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	return model
}

// runCmd executes a command tree and returns all produced messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, sub := range batch {
			msgs = append(msgs, runCmd(sub)...)
		}

		return msgs
	}

	return []tea.Msg{msg}
}

func findNotification(msgs []tea.Msg) *Notification {
	for _, msg := range msgs {
		if notify, ok := msg.(NotifyMsg); ok {
			return &notify.Notification
		}
	}

	return nil
}

func testRecords() []nixsearch.Record {
	return []nixsearch.Record{
		{"package_attr_name": "ripgrep", "package_pversion": "14.1.0", "package_description": "Line-oriented search"},
		{"package_attr_name": "ripgrep-all", "package_pversion": "0.10.6"},
		{"package_attr_name": "python3Packages.pytest", "package_pversion": "7.4.0"},
	}
}

func TestSearchModel_SubmitAndResults(t *testing.T) {
	t.Parallel()

	deps, searcher, _, _, _ := newTestDeps()
	searcher.records = testRecords()
	model := newTestSearchModel(t, deps)

	model.query = "ripgrep"
	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if !model.Searching() {
		t.Fatal("model should be searching after submit")
	}

	msgs := runCmd(cmd)

	var results *SearchResultsMsg

	for _, msg := range msgs {
		if resultsMsg, ok := msg.(SearchResultsMsg); ok {
			results = &resultsMsg
		}
	}

	if results == nil {
		t.Fatal("expected SearchResultsMsg from search command")
	}

	model.Update(*results)

	if model.Searching() {
		t.Error("search should be complete")
	}

	if len(model.Records()) != 3 {
		t.Errorf("expected 3 records, got %d", len(model.Records()))
	}

	if model.Selected().AttrName() != "ripgrep" {
		t.Errorf("cursor should start on first record, got %s", model.Selected().AttrName())
	}
}

func TestSearchModel_SingleRequestInFlight(t *testing.T) {
	t.Parallel()

	deps, _, _, _, _ := newTestDeps()
	model := newTestSearchModel(t, deps)

	model.query = "git"
	model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	// Second submit while the first search is outstanding is refused.
	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	notification := findNotification(runCmd(cmd))
	if notification == nil || notification.Severity != SeverityInfo {
		t.Error("duplicate submit should produce an informational notice")
	}
}

func TestSearchModel_NoResultsIsAWarning(t *testing.T) {
	t.Parallel()

	deps, _, _, _, _ := newTestDeps()
	model := newTestSearchModel(t, deps)

	_, cmd := model.Update(SearchFailedMsg{Query: "xyz", Err: nixsearch.ErrNoResults})

	notification := findNotification(runCmd(cmd))
	if notification == nil || notification.Severity != SeverityWarning {
		t.Fatal("empty result set should surface as a warning, not an error")
	}
}

func TestSearchModel_TransportFailureIsAnError(t *testing.T) {
	t.Parallel()

	deps, _, _, _, _ := newTestDeps()
	model := newTestSearchModel(t, deps)

	_, cmd := model.Update(SearchFailedMsg{Query: "xyz", Err: errors.New("connection refused")})

	notification := findNotification(runCmd(cmd))
	if notification == nil || notification.Severity != SeverityError {
		t.Fatal("transport failure should surface as an error notification")
	}
}

func TestSearchModel_InstallSelected(t *testing.T) {
	t.Parallel()

	deps, _, _, installer, _ := newTestDeps()
	model := newTestSearchModel(t, deps)
	model.Update(SearchResultsMsg{Query: "ripgrep", Records: testRecords()})

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("i")})
	msgs := runCmd(cmd)

	if len(installer.installed) != 1 || installer.installed[0] != "ripgrep" {
		t.Fatalf("expected install of ripgrep, got %v", installer.installed)
	}

	notification := findNotification(msgs)
	if notification == nil {
		t.Fatal("install should produce a notification")
	}
}

func TestSearchModel_InstallWithoutSelection(t *testing.T) {
	t.Parallel()

	deps, _, _, installer, _ := newTestDeps()
	model := newTestSearchModel(t, deps)
	model.inputFocus = false

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("i")})

	notification := findNotification(runCmd(cmd))
	if notification == nil || notification.Severity != SeverityWarning {
		t.Error("install without a selection should warn")
	}

	if len(installer.installed) != 0 {
		t.Error("nothing should be installed without a selection")
	}
}

func TestSearchModel_AddToManaged_UsesPkgsName(t *testing.T) {
	t.Parallel()

	deps, _, store, _, _ := newTestDeps()
	model := newTestSearchModel(t, deps)
	model.Update(SearchResultsMsg{Query: "pytest", Records: testRecords()})

	// Move to the dotted attribute record.
	model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	runCmd(cmd)

	if len(store.added) != 1 {
		t.Fatalf("expected one manifest add, got %d", len(store.added))
	}

	if store.added[0] != [2]string{"custom", "pytest"} {
		t.Errorf("expected custom/pytest, got %v", store.added[0])
	}
}

func TestSearchModel_CategoryCycling(t *testing.T) {
	t.Parallel()

	deps, _, _, _, _ := newTestDeps()
	model := newTestSearchModel(t, deps)
	model.Update(SearchResultsMsg{Query: "git", Records: testRecords()})

	if model.Category() != "custom" {
		t.Fatalf("default category should be custom, got %s", model.Category())
	}

	model.Update(tea.KeyMsg{Type: tea.KeyTab})

	if model.Category() != "development" {
		t.Errorf("tab should wrap to the first category, got %s", model.Category())
	}
}

func TestSearchModel_CopyFlake_NoToolShowsText(t *testing.T) {
	t.Parallel()

	deps, _, _, _, clipboard := newTestDeps()
	clipboard.err = nix.ErrNoClipboardTool

	model := newTestSearchModel(t, deps)
	model.Update(SearchResultsMsg{Query: "ripgrep", Records: testRecords()})

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})

	notification := findNotification(runCmd(cmd))
	if notification == nil || notification.Severity != SeverityInfo {
		t.Fatal("missing clipboard tool should surface the snippet as info")
	}

	if want := "pkgs.ripgrep"; !strings.Contains(notification.Text, want) {
		t.Errorf("notification should include the snippet, got %q", notification.Text)
	}
}

func TestSearchModel_FuzzyFilter(t *testing.T) {
	t.Parallel()

	deps, _, _, _, _ := newTestDeps()
	model := newTestSearchModel(t, deps)
	model.Update(SearchResultsMsg{Query: "rip", Records: testRecords()})

	model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})

	if !model.TypingActive() {
		t.Fatal("slash should activate the filter input")
	}

	model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("pytest")})

	if len(model.visible) != 1 {
		t.Fatalf("expected 1 visible result, got %d", len(model.visible))
	}

	if model.Selected().AttrName() != "python3Packages.pytest" {
		t.Errorf("unexpected filtered selection %s", model.Selected().AttrName())
	}

	// Esc clears the filter and restores all rows.
	model.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if len(model.visible) != 3 {
		t.Errorf("esc should clear the filter, got %d visible", len(model.visible))
	}
}

func TestSearchModel_SelectNavigatesToDetail(t *testing.T) {
	t.Parallel()

	deps, _, _, _, _ := newTestDeps()
	model := newTestSearchModel(t, deps)
	model.Update(SearchResultsMsg{Query: "ripgrep", Records: testRecords()})

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	var navigate *NavigateMsg

	for _, msg := range runCmd(cmd) {
		if nav, ok := msg.(NavigateMsg); ok {
			navigate = &nav
		}
	}

	if navigate == nil || navigate.Screen != DetailScreen {
		t.Fatal("enter on a result should navigate to the detail screen")
	}

	data, ok := navigate.Data.(DetailData)
	if !ok || data.Record.AttrName() != "ripgrep" {
		t.Error("navigation should carry the selected record")
	}
}

func TestSearchModel_RefreshWithoutQuery(t *testing.T) {
	t.Parallel()

	deps, _, _, _, _ := newTestDeps()
	model := newTestSearchModel(t, deps)
	model.inputFocus = false

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})

	notification := findNotification(runCmd(cmd))
	if notification == nil || notification.Severity != SeverityInfo {
		t.Error("refresh with no prior query should ask for one")
	}
}
