// SPDX-FileCopyrightText: 2026 The Nixdex Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/nixdex/nixdex/internal/tui/styles"
)

const helpContent = `# nixdex

Search, inspect, and install packages from nixpkgs.

## Keyboard Shortcuts

| Key | Action |
|-----|--------|
| s | Focus the search input |
| enter | Run the search / open details |
| / | Fuzzy-filter the fetched results |
| j / k | Move through results |
| i | Install the selected package (nix profile) |
| a | Add the selected package to the managed manifest |
| c | Copy a flake entry to the clipboard |
| tab | Cycle the target category |
| r | Re-run the last search |
| esc | Back |
| q | Quit |

## Managed packages

Packages added with **a** land in ` + "`packages.nix`" + ` under one of five
categories: development, productivity, media, utilities, custom. The file
lives next to a generated ` + "`flake.nix`" + ` so the whole set can be built
with ` + "`nix build`" + `.

## Headless usage

` + "```bash" + `
nixdex search ripgrep          # print matching packages
nixdex add ripgrep             # append to the managed manifest
nixdex install ripgrep         # nix profile install nixpkgs#ripgrep
nixdex init                    # write the manifest skeleton
` + "```" + `
`

// Help represents the help screen model.
type Help struct {
	styles   *styles.Styles
	width    int
	height   int
	viewport viewport.Model
	ready    bool
	rendered string
}

// NewHelp creates a new help screen with pre-rendered markdown content.
func NewHelp(styleConfig *styles.Styles) *Help {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		renderer, _ = glamour.NewTermRenderer()
	}

	rendered := helpContent

	if renderer != nil {
		if out, renderErr := renderer.Render(helpContent); renderErr == nil {
			rendered = out
		}
	}

	return &Help{
		styles:   styleConfig,
		rendered: rendered,
	}
}

// Init implements tea.Model.
func (m *Help) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Help) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case KeyEsc, "backspace", "?":
			return m, func() tea.Msg {
				return NavigateMsg{Screen: SearchScreen}
			}
		case "up", "k":
			m.viewport.ScrollUp(1)
		case "down", "j":
			m.viewport.ScrollDown(1)
		}

		return m, nil

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m *Help) View() string {
	if !m.ready {
		return "Loading..."
	}

	footer := RenderFooter(m.styles, max(m.width, 20), []FooterAction{
		{Key: "esc", Action: "Back"},
		{Key: "j/k", Action: "Scroll"},
	}, false)

	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), footer)
}

func (m *Help) resize(width, height int) {
	m.width = width
	m.height = height

	viewportHeight := height - 2
	if viewportHeight < minViewportHeight {
		viewportHeight = minViewportHeight
	}

	if !m.ready {
		m.viewport = viewport.New(width, viewportHeight)
		m.viewport.Style = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(m.styles.Primary).
			Padding(1)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = viewportHeight
	}

	m.viewport.SetContent(m.rendered)
}
