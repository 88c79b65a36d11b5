// SPDX-FileCopyrightText: 2026 The Nixdex Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import "github.com/nixdex/nixdex/internal/nixsearch"

// NavigateMsg is a message sent to request navigation to a specific screen.
type NavigateMsg struct {
	Screen int
	Data   any // Optional data to pass to the new screen
}

// Screen constants for navigation.
const (
	SearchScreen = iota
	DetailScreen
	HelpScreen
)

// Key constants for common key inputs.
const (
	KeyCtrlC = "ctrl+c"
	KeyEnter = "enter"
	KeyEsc   = "esc"
)

// GoodbyeMessage is printed when the user quits.
const GoodbyeMessage = "Goodbye!\n"

// SearchResultsMsg carries a completed search's result records.
type SearchResultsMsg struct {
	Query   string
	Records []nixsearch.Record
}

// SearchFailedMsg carries a failed or empty search outcome.
type SearchFailedMsg struct {
	Query string
	Err   error
}

// DetailData is the navigation payload for the detail screen.
type DetailData struct {
	Record nixsearch.Record
}
