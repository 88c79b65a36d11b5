// SPDX-FileCopyrightText: 2026 The Nixdex Authors
// SPDX-License-Identifier: EUPL-1.2

// Package styles defines consistent visual styling for TUI components.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the styles used in the TUI.
type Styles struct {
	// Color palette
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Info      lipgloss.Color
	Muted     lipgloss.Color

	// Component styles
	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Border     lipgloss.Style

	// Text styles (cached for performance)
	MutedText   lipgloss.Style
	PrimaryText lipgloss.Style
	SuccessText lipgloss.Style
	ErrorText   lipgloss.Style
	WarningText lipgloss.Style

	// Table styles
	TableHeader lipgloss.Style
	TableRow    lipgloss.Style
	TableCursor lipgloss.Style
}

// New creates a new Styles instance with the default Tokyo Night palette.
func New() *Styles {
	primary := lipgloss.Color("#7aa2f7")    // Blue
	secondary := lipgloss.Color("#bb9af7")  // Purple
	success := lipgloss.Color("#9ece6a")    // Green
	warning := lipgloss.Color("#e0af68")    // Yellow
	errorColor := lipgloss.Color("#f7768e") // Red
	info := lipgloss.Color("#7dcfff")       // Cyan
	muted := lipgloss.Color("#565f89")      // Gray

	background := lipgloss.Color("#1a1b26") // Dark background
	foreground := lipgloss.Color("#c0caf5") // Light foreground

	return &Styles{
		Primary:   primary,
		Secondary: secondary,
		Success:   success,
		Warning:   warning,
		Error:     errorColor,
		Info:      info,
		Muted:     muted,

		Title: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			MarginBottom(1),

		Subtitle: lipgloss.NewStyle().
			Foreground(secondary).
			Italic(true),

		Selected: lipgloss.NewStyle().
			Background(primary).
			Foreground(background).
			Padding(0, 1),

		Unselected: lipgloss.NewStyle().
			Foreground(foreground).
			Padding(0, 1),

		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary),

		MutedText: lipgloss.NewStyle().
			Foreground(muted),

		PrimaryText: lipgloss.NewStyle().
			Foreground(primary),

		SuccessText: lipgloss.NewStyle().
			Foreground(success),

		ErrorText: lipgloss.NewStyle().
			Foreground(errorColor),

		WarningText: lipgloss.NewStyle().
			Foreground(warning),

		TableHeader: lipgloss.NewStyle().
			Background(primary).
			Foreground(background).
			Bold(true).
			Padding(0, 1),

		TableRow: lipgloss.NewStyle().
			Foreground(foreground).
			Padding(0, 1),

		TableCursor: lipgloss.NewStyle().
			Background(primary).
			Foreground(background).
			Padding(0, 1),
	}
}

// Logo returns the styled nixdex ASCII logo.
func (s *Styles) Logo() string {
	logo := `
  ███╗   ██╗██╗██╗  ██╗██████╗ ███████╗██╗  ██╗
  ████╗  ██║██║╚██╗██╔╝██╔══██╗██╔════╝╚██╗██╔╝
  ██╔██╗ ██║██║ ╚███╔╝ ██║  ██║█████╗   ╚███╔╝
  ██║╚██╗██║██║ ██╔██╗ ██║  ██║██╔══╝   ██╔██╗
  ██║ ╚████║██║██╔╝ ██╗██████╔╝███████╗██╔╝ ██╗
  ╚═╝  ╚═══╝╚═╝╚═╝  ╚═╝╚═════╝ ╚══════╝╚═╝  ╚═╝`

	return s.Title.Render(logo)
}

// SeverityIcon returns a styled icon for a notification severity.
func (s *Styles) SeverityIcon(severity string) string {
	style := s.Unselected

	var icon string

	switch severity {
	case "success":
		style = lipgloss.NewStyle().Foreground(s.Success)
		icon = "✓"
	case "error":
		style = lipgloss.NewStyle().Foreground(s.Error)
		icon = "✗"
	case "warning":
		style = lipgloss.NewStyle().Foreground(s.Warning)
		icon = "!"
	case "info":
		style = lipgloss.NewStyle().Foreground(s.Info)
		icon = "i"
	default:
		icon = "•"
	}

	return style.Render(icon)
}

// Keybinding returns styled keybinding text.
func (s *Styles) Keybinding(key, desc string) string {
	keyStyle := lipgloss.NewStyle().
		Foreground(s.Primary).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(s.Muted)

	return keyStyle.Render("["+key+"]") + " " + descStyle.Render(desc)
}
