// SPDX-FileCopyrightText: 2026 The Nixdex Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nixdex/nixdex/internal/nixsearch"
	"github.com/nixdex/nixdex/internal/tui/styles"
)

// DetailModel shows the full metadata of one package plus install hints.
//
//nolint:containedctx // TUI models require context for proper cancellation propagation
type DetailModel struct {
	styles *styles.Styles
	deps   *Deps
	ctx    context.Context //nolint:containedctx

	record nixsearch.Record
	fields nixsearch.DetailFields

	width    int
	height   int
	viewport viewport.Model
	ready    bool
	notifier notifier
}

// NewDetail creates a detail screen for record.
func NewDetail(ctx context.Context, styleConfig *styles.Styles, deps *Deps, record nixsearch.Record) *DetailModel {
	return &DetailModel{
		styles: styleConfig,
		deps:   deps,
		ctx:    ctx,
		record: record,
		fields: record.Detail(),
	}
}

// Init implements tea.Model.
func (m *DetailModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

		return m, nil

	case NotifyMsg:
		return m, m.notifier.show(msg.Notification)

	case notificationExpiredMsg:
		m.notifier.expire(msg)

		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m *DetailModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	sections := []string{
		m.viewport.View(),
		m.renderStatusLine(),
		m.renderFooter(),
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Record returns the displayed record (for testing).
func (m *DetailModel) Record() nixsearch.Record {
	return m.record
}

//nolint:ireturn // Bubble Tea framework requires returning tea.Model interface
func (m *DetailModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyEsc, "backspace":
		return m, func() tea.Msg {
			return NavigateMsg{Screen: SearchScreen}
		}

	case "up", "k":
		m.viewport.ScrollUp(1)

		return m, nil

	case "down", "j":
		m.viewport.ScrollDown(1)

		return m, nil
	}

	return m, nil
}

func (m *DetailModel) resize(width, height int) {
	m.width = width
	m.height = height

	chromeHeight := lipgloss.Height(m.renderStatusLine()) + lipgloss.Height(m.renderFooter())

	viewportHeight := height - chromeHeight
	if viewportHeight < minViewportHeight {
		viewportHeight = minViewportHeight
	}

	if !m.ready {
		m.viewport = viewport.New(width, viewportHeight)
		m.viewport.Style = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(m.styles.Primary).
			Padding(0, 1)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = viewportHeight
	}

	m.viewport.SetContent(m.renderDetails())
}

// renderDetails builds the detail body from the projected fields.
func (m *DetailModel) renderDetails() string {
	label := func(text string) string {
		return m.styles.PrimaryText.Bold(true).Render(fmt.Sprintf("%-12s", text))
	}

	lines := []string{
		m.styles.Title.Render("Package Information"),
		label("Package") + m.fields.Name,
		label("Version") + m.styles.SuccessText.Render(m.fields.Version),
		"",
		label("Description"),
		"  " + m.fields.Description,
		"",
		label("Programs") + m.fields.Programs,
		label("License") + m.fields.License,
		label("Platforms") + m.fields.Platforms,
		label("Homepage") + m.fields.Homepage,
		"",
		m.styles.Title.Render("Installation"),
		m.styles.WarningText.Render("Direct install:"),
		"  $ nix profile install nixpkgs#" + m.fields.Name,
		"",
		m.styles.WarningText.Render("Flake usage:"),
		"  environment.systemPackages = [ pkgs." + m.record.PkgsName() + " ];",
		"",
		m.styles.WarningText.Render("Shell environment:"),
		"  $ nix shell nixpkgs#" + m.fields.Name,
	}

	return strings.Join(lines, "\n")
}

func (m *DetailModel) renderStatusLine() string {
	if notification := m.notifier.render(m.styles); notification != "" {
		return lipgloss.NewStyle().Padding(0, 1).Render(notification)
	}

	return lipgloss.NewStyle().Padding(0, 1).Render(
		m.styles.MutedText.Render(m.fields.Name))
}

func (m *DetailModel) renderFooter() string {
	actions := []FooterAction{
		{Key: "esc", Action: "Back"},
		{Key: "j/k", Action: "Scroll"},
		{Key: "q", Action: "Quit"},
	}

	return RenderFooter(m.styles, max(m.width, 20), actions, false)
}
