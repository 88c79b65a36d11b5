// SPDX-FileCopyrightText: 2026 The Nixdex Authors
// SPDX-License-Identifier: EUPL-1.2

// Package models implements TUI screen models using Bubble Tea.
package models

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nixdex/nixdex/internal/manifest"
	"github.com/nixdex/nixdex/internal/nix"
	"github.com/nixdex/nixdex/internal/nixsearch"
	"github.com/nixdex/nixdex/internal/tui/styles"
)

// Column widths for the results table.
const (
	nameColumnWidth    = 34
	versionColumnWidth = 14
	descColumnWidth    = 62
)

// minViewportHeight keeps the results area usable on tiny terminals.
const minViewportHeight = 3

// SearchKeyMap defines key bindings for the search screen.
type SearchKeyMap struct {
	FocusSearch key.Binding
	Filter      key.Binding
	Up          key.Binding
	Down        key.Binding
	Select      key.Binding
	Install     key.Binding
	AddManaged  key.Binding
	CopyFlake   key.Binding
	Refresh     key.Binding
	Category    key.Binding
	Help        key.Binding
}

// DefaultSearchKeyMap returns the default key bindings.
func DefaultSearchKeyMap() SearchKeyMap {
	return SearchKeyMap{
		FocusSearch: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "search")),
		Filter:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Install:     key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "install")),
		AddManaged:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add to managed")),
		CopyFlake:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy flake")),
		Refresh:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Category:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "category")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	}
}

// SearchModel implements the package search screen: query input, results
// table, and the install/add/copy actions.
//
//nolint:containedctx // TUI models require context for proper cancellation propagation
type SearchModel struct {
	styles *styles.Styles
	deps   *Deps
	ctx    context.Context //nolint:containedctx

	width  int
	height int
	ready  bool

	// Query input state
	query      string
	inputFocus bool

	// Result state, owned here and passed to the projector as needed
	records   []nixsearch.Record
	visible   []int // indices into records after fuzzy filtering
	cursor    int   // index into visible
	lastQuery string
	searching bool

	// Fuzzy filter over fetched results
	filterActive bool
	filterQuery  string

	category int // index into manifest.Categories

	viewport viewport.Model
	spinner  spinner.Model
	notifier notifier
	keyMap   SearchKeyMap
}

// NewSearch creates the search screen model.
func NewSearch(ctx context.Context, styleConfig *styles.Styles, deps *Deps) *SearchModel {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(styleConfig.Primary)

	categoryIndex := 0

	for i, name := range manifest.Categories {
		if name == deps.DefaultCategory {
			categoryIndex = i

			break
		}
	}

	return &SearchModel{
		styles:     styleConfig,
		deps:       deps,
		ctx:        ctx,
		inputFocus: true,
		category:   categoryIndex,
		spinner:    spin,
		keyMap:     DefaultSearchKeyMap(),
	}
}

// Init implements tea.Model.
func (m *SearchModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

		return m, nil

	case SearchResultsMsg:
		return m.handleResults(msg)

	case SearchFailedMsg:
		return m.handleFailure(msg)

	case NotifyMsg:
		return m, m.notifier.show(msg.Notification)

	case notificationExpiredMsg:
		m.notifier.expire(msg)
		m.refreshContent()

		return m, nil

	case spinner.TickMsg:
		if !m.searching {
			return m, nil
		}

		var cmd tea.Cmd

		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m *SearchModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	sections := []string{
		m.renderHeader(),
		m.renderTableHeader(),
		m.viewport.View(),
		m.renderStatusBar(),
		m.renderFooter(),
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Records returns the current result records (for testing).
func (m *SearchModel) Records() []nixsearch.Record {
	return m.records
}

// Selected returns the record under the cursor, or nil when there are no
// results.
func (m *SearchModel) Selected() nixsearch.Record {
	if len(m.visible) == 0 || m.cursor < 0 || m.cursor >= len(m.visible) {
		return nil
	}

	return m.records[m.visible[m.cursor]]
}

// Searching reports whether a search request is in flight (for testing).
func (m *SearchModel) Searching() bool {
	return m.searching
}

// TypingActive reports whether the model currently owns text input, so
// global single-letter shortcuts must not fire.
func (m *SearchModel) TypingActive() bool {
	return m.inputFocus || m.filterActive
}

// Category returns the currently selected manifest category.
func (m *SearchModel) Category() string {
	return manifest.Categories[m.category]
}

// Key handling

func (m *SearchModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.inputFocus {
		return m.handleInputKey(msg)
	}

	if m.filterActive {
		return m.handleFilterKey(msg)
	}

	return m.handleResultsKey(msg)
}

func (m *SearchModel) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyEnter:
		return m, m.submitSearch(m.query)

	case KeyEsc:
		if len(m.records) > 0 {
			m.inputFocus = false
		}

		return m, nil

	case "backspace":
		if m.query != "" {
			m.query = m.query[:len(m.query)-1]
		}

		return m, nil

	default:
		if msg.Type == tea.KeyRunes || msg.String() == " " {
			m.query += string(msg.Runes)
		}

		return m, nil
	}
}

func (m *SearchModel) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyEsc:
		m.filterActive = false
		m.filterQuery = ""
		m.applyFilter()

		return m, nil

	case KeyEnter:
		m.filterActive = false

		return m, nil

	case "backspace":
		if m.filterQuery != "" {
			m.filterQuery = m.filterQuery[:len(m.filterQuery)-1]
			m.applyFilter()
		}

		return m, nil

	default:
		if msg.Type == tea.KeyRunes {
			m.filterQuery += string(msg.Runes)
			m.applyFilter()
		}

		return m, nil
	}
}

//nolint:ireturn // Bubble Tea framework requires returning tea.Model interface
func (m *SearchModel) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.FocusSearch):
		m.inputFocus = true

		return m, nil

	case key.Matches(msg, m.keyMap.Filter):
		if len(m.records) > 0 {
			m.filterActive = true
		}

		return m, nil

	case key.Matches(msg, m.keyMap.Up):
		m.moveCursor(-1)

		return m, nil

	case key.Matches(msg, m.keyMap.Down):
		m.moveCursor(1)

		return m, nil

	case key.Matches(msg, m.keyMap.Select):
		if record := m.Selected(); record != nil {
			return m, func() tea.Msg {
				return NavigateMsg{Screen: DetailScreen, Data: DetailData{Record: record}}
			}
		}

		return m, nil

	case key.Matches(msg, m.keyMap.Install):
		return m, m.installSelected()

	case key.Matches(msg, m.keyMap.AddManaged):
		return m, m.addSelectedToManaged()

	case key.Matches(msg, m.keyMap.CopyFlake):
		return m, m.copySelectedSnippet()

	case key.Matches(msg, m.keyMap.Refresh):
		if m.lastQuery == "" {
			return m, Notify(SeverityInfo, "Enter a search query first")
		}

		return m, m.submitSearch(m.lastQuery)

	case key.Matches(msg, m.keyMap.Category):
		m.category = (m.category + 1) % len(manifest.Categories)
		m.refreshContent()

		return m, nil

	case key.Matches(msg, m.keyMap.Help):
		return m, func() tea.Msg {
			return NavigateMsg{Screen: HelpScreen}
		}
	}

	return m, nil
}

// Search flow

// submitSearch starts a search for text. Only one request is allowed in
// flight; a submit while searching is ignored rather than queued.
func (m *SearchModel) submitSearch(text string) tea.Cmd {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	if m.searching {
		return Notify(SeverityInfo, "Search already in progress")
	}

	m.searching = true
	m.lastQuery = text
	m.refreshContent()

	searcher := m.deps.Searcher
	ctx := m.ctx

	searchCmd := func() tea.Msg {
		records, err := searcher.Search(ctx, text)
		if err != nil {
			return SearchFailedMsg{Query: text, Err: err}
		}

		return SearchResultsMsg{Query: text, Records: records}
	}

	return tea.Batch(m.spinner.Tick, searchCmd)
}

//nolint:ireturn // Bubble Tea framework requires returning tea.Model interface
func (m *SearchModel) handleResults(msg SearchResultsMsg) (tea.Model, tea.Cmd) {
	m.searching = false
	m.records = msg.Records
	m.filterQuery = ""
	m.filterActive = false
	m.cursor = 0
	m.inputFocus = false
	m.applyFilter()

	return m, Notify(SeveritySuccess, fmt.Sprintf("Found %d packages", len(msg.Records)))
}

//nolint:ireturn // Bubble Tea framework requires returning tea.Model interface
func (m *SearchModel) handleFailure(msg SearchFailedMsg) (tea.Model, tea.Cmd) {
	m.searching = false
	m.records = nil
	m.visible = nil
	m.cursor = 0
	m.refreshContent()

	if errors.Is(msg.Err, nixsearch.ErrNoResults) {
		return m, Notify(SeverityWarning, "No packages found")
	}

	return m, Notify(SeverityError, fmt.Sprintf("Search failed: %v", msg.Err))
}

// Actions

func (m *SearchModel) installSelected() tea.Cmd {
	record := m.Selected()
	if record == nil {
		return Notify(SeverityWarning, "Select a package first")
	}

	attrName := record.AttrName()
	installer := m.deps.Installer
	ctx := m.ctx

	install := func() tea.Msg {
		if err := installer.Install(ctx, attrName); err != nil {
			return NotifyMsg{Notification: Notification{Severity: SeverityError, Text: err.Error()}}
		}

		return NotifyMsg{Notification: Notification{
			Severity: SeveritySuccess,
			Text:     fmt.Sprintf("Successfully installed %s", attrName),
		}}
	}

	return tea.Batch(Notify(SeverityInfo, fmt.Sprintf("Installing %s...", attrName)), install)
}

func (m *SearchModel) addSelectedToManaged() tea.Cmd {
	record := m.Selected()
	if record == nil {
		return Notify(SeverityWarning, "Select a package first")
	}

	pkgsName := record.PkgsName()
	category := m.Category()
	store := m.deps.Store

	return func() tea.Msg {
		added, err := store.Add(category, pkgsName)

		switch {
		case errors.Is(err, manifest.ErrDuplicateEntry):
			return NotifyMsg{Notification: Notification{
				Severity: SeverityWarning,
				Text:     fmt.Sprintf("%s already exists in %s", pkgsName, category),
			}}
		case err != nil:
			return NotifyMsg{Notification: Notification{
				Severity: SeverityError,
				Text:     fmt.Sprintf("Failed to add %s: %v", pkgsName, err),
			}}
		case !added:
			return NotifyMsg{Notification: Notification{
				Severity: SeverityWarning,
				Text:     fmt.Sprintf("%s already exists in %s", pkgsName, category),
			}}
		default:
			return NotifyMsg{Notification: Notification{
				Severity: SeveritySuccess,
				Text:     fmt.Sprintf("Added %s to %s (%s)", pkgsName, category, store.Dir()),
			}}
		}
	}
}

func (m *SearchModel) copySelectedSnippet() tea.Cmd {
	record := m.Selected()
	if record == nil {
		return Notify(SeverityWarning, "Select a package first")
	}

	snippet := nix.FlakeSnippet(record.PkgsName(), record.Description())
	clipboard := m.deps.Clipboard
	ctx := m.ctx

	return func() tea.Msg {
		err := clipboard.Copy(ctx, snippet)

		switch {
		case errors.Is(err, nix.ErrNoClipboardTool):
			// No tool installed: surface the text instead of copying.
			return NotifyMsg{Notification: Notification{
				Severity: SeverityInfo,
				Text:     fmt.Sprintf("Flake entry: %s", strings.TrimSpace(snippet)),
			}}
		case err != nil:
			return NotifyMsg{Notification: Notification{
				Severity: SeverityError,
				Text:     fmt.Sprintf("Clipboard copy failed: %v", err),
			}}
		default:
			return NotifyMsg{Notification: Notification{
				Severity: SeveritySuccess,
				Text:     "Copied flake entry to clipboard",
			}}
		}
	}
}

// Result filtering

// applyFilter recomputes the visible rows from the fuzzy filter query.
func (m *SearchModel) applyFilter() {
	if m.filterQuery == "" {
		m.visible = make([]int, len(m.records))
		for i := range m.records {
			m.visible[i] = i
		}
	} else {
		names := make([]string, len(m.records))
		for i, record := range m.records {
			names[i] = record.AttrName()
		}

		matches := fuzzy.Find(m.filterQuery, names)

		m.visible = make([]int, len(matches))
		for i, match := range matches {
			m.visible[i] = match.Index
		}
	}

	if m.cursor >= len(m.visible) {
		m.cursor = 0
	}

	m.refreshContent()
}

func (m *SearchModel) moveCursor(delta int) {
	if len(m.visible) == 0 {
		return
	}

	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}

	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}

	m.refreshContent()
	m.scrollToCursor()
}

// scrollToCursor keeps the cursor line inside the viewport.
func (m *SearchModel) scrollToCursor() {
	if !m.ready {
		return
	}

	if m.cursor < m.viewport.YOffset {
		m.viewport.SetYOffset(m.cursor)
	}

	if m.cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

// Rendering

func (m *SearchModel) resize(width, height int) {
	m.width = width
	m.height = height

	chromeHeight := lipgloss.Height(m.renderHeader()) +
		lipgloss.Height(m.renderTableHeader()) +
		lipgloss.Height(m.renderStatusBar()) +
		lipgloss.Height(m.renderFooter())

	viewportHeight := height - chromeHeight
	if viewportHeight < minViewportHeight {
		viewportHeight = minViewportHeight
	}

	if !m.ready {
		m.viewport = viewport.New(width, viewportHeight)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = viewportHeight
	}

	m.refreshContent()
}

func (m *SearchModel) renderHeader() string {
	title := m.styles.Title.Render("nixdex") +
		m.styles.MutedText.Render("  package discovery for Nix")

	var input string

	prompt := "Search: "
	if m.filterActive {
		prompt = "Filter: "
		input = m.filterQuery
	} else {
		input = m.query
	}

	line := m.styles.PrimaryText.Render(prompt) + input
	if m.inputFocus || m.filterActive {
		line += m.styles.PrimaryText.Render("█")
	}

	if m.searching {
		line += "  " + m.spinner.View() + m.styles.MutedText.Render(" searching...")
	}

	inputBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.borderColor()).
		Padding(0, 1).
		Width(max(m.width-2, 20)).
		Render(line)

	return lipgloss.JoinVertical(lipgloss.Left, title, inputBox)
}

func (m *SearchModel) borderColor() lipgloss.Color {
	if m.inputFocus || m.filterActive {
		return m.styles.Success
	}

	return m.styles.Primary
}

func (m *SearchModel) renderTableHeader() string {
	header := fmt.Sprintf("%-*s %-*s %s",
		nameColumnWidth, "Package",
		versionColumnWidth, "Version",
		"Description")

	return m.styles.TableHeader.Width(max(m.width, 20)).Render(header)
}

// refreshContent re-renders the visible rows into the viewport.
func (m *SearchModel) refreshContent() {
	if !m.ready {
		return
	}

	if len(m.visible) == 0 {
		placeholder := "Type a query and press Enter to search packages"
		if m.lastQuery != "" && !m.searching {
			placeholder = "No results to show"
		}

		m.viewport.SetContent(m.styles.MutedText.Render(placeholder))

		return
	}

	rows := make([]string, 0, len(m.visible))

	for i, recordIndex := range m.visible {
		row := m.records[recordIndex].Summary()
		line := fmt.Sprintf("%-*s %-*s %s",
			nameColumnWidth, truncateCell(row.Name, nameColumnWidth),
			versionColumnWidth, truncateCell(row.Version, versionColumnWidth),
			row.Description)

		if i == m.cursor {
			line = m.styles.TableCursor.Render(line)
		} else {
			line = m.styles.TableRow.Render(line)
		}

		rows = append(rows, line)
	}

	m.viewport.SetContent(strings.Join(rows, "\n"))
}

func (m *SearchModel) renderStatusBar() string {
	titleCaser := cases.Title(language.English)

	parts := []string{
		m.styles.PrimaryText.Render("●") + m.styles.MutedText.Render(" NixOS search"),
	}

	if m.lastQuery != "" {
		parts = append(parts, m.styles.MutedText.Render("Query: ")+m.lastQuery)
	}

	if len(m.records) > 0 {
		count := fmt.Sprintf("%d", len(m.visible))
		if len(m.visible) != len(m.records) {
			count = fmt.Sprintf("%d/%d", len(m.visible), len(m.records))
		}

		parts = append(parts, m.styles.MutedText.Render("Results: ")+m.styles.SuccessText.Render(count))
	}

	parts = append(parts,
		m.styles.MutedText.Render("Category: ")+titleCaser.String(m.Category()))

	statusLine := strings.Join(parts, m.styles.MutedText.Render("  │  "))

	if notification := m.notifier.render(m.styles); notification != "" {
		statusLine = notification
	}

	return lipgloss.NewStyle().Padding(0, 1).Render(statusLine)
}

func (m *SearchModel) renderFooter() string {
	actions := []FooterAction{
		{Key: "s", Action: "Search"},
		{Key: "/", Action: "Filter"},
		{Key: "enter", Action: "Details"},
		{Key: "i", Action: "Install"},
		{Key: "a", Action: "Add"},
		{Key: "c", Action: "Copy"},
		{Key: "tab", Action: "Category"},
		{Key: "q", Action: "Quit"},
	}

	return RenderFooter(m.styles, max(m.width, 20), actions, true)
}

func truncateCell(value string, width int) string {
	if len(value) <= width {
		return value
	}

	if width <= 1 {
		return value[:width]
	}

	return value[:width-1] + "…"
}
