// SPDX-FileCopyrightText: 2026 The Nixdex Authors
// SPDX-License-Identifier: EUPL-1.2

// Package tui wires the Bubble Tea screens into one application.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/nixdex/nixdex/internal/tui/models"
	"github.com/nixdex/nixdex/internal/tui/styles"
)

// ErrNoTerminal is returned when the TUI is launched in a non-terminal environment.
var ErrNoTerminal = errors.New("TUI requires a terminal environment")

// Screen represents different TUI screens.
type Screen int

// Screen constants (aliases of the models constants).
const (
	SearchScreen Screen = Screen(models.SearchScreen)
	DetailScreen Screen = Screen(models.DetailScreen)
	HelpScreen   Screen = Screen(models.HelpScreen)
)

// App is the main TUI application following the tree-of-models pattern: it
// handles global keys and navigation, and delegates content to screen models.
//
//nolint:containedctx // TUI models require context for proper cancellation propagation
type App struct {
	width         int
	height        int
	styles        *styles.Styles
	deps          *models.Deps
	currentScreen Screen
	contentModel  tea.Model
	screens       map[Screen]tea.Model // Cache of initialized models
	ctx           context.Context      //nolint:containedctx

	quitting bool
}

// NewApp creates the TUI application with its external collaborators.
func NewApp(ctx context.Context, deps *models.Deps) *App {
	app := &App{
		styles:        styles.New(),
		deps:          deps,
		ctx:           ctx,
		currentScreen: SearchScreen,
		screens:       make(map[Screen]tea.Model),
	}

	searchModel := models.NewSearch(ctx, app.styles, deps)
	app.contentModel = searchModel
	app.screens[SearchScreen] = searchModel

	return app
}

// Run starts the TUI application.
func (a *App) Run(ctx context.Context) error {
	program := tea.NewProgram(
		a,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("TUI application failed: %w", err)
	}

	return nil
}

// Launch starts the interactive interface after a terminal check.
func Launch(ctx context.Context, deps *models.Deps) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("terminal check failed: %w", ErrNoTerminal)
	}

	return NewApp(ctx, deps).Run(ctx)
}

// Init implements the tea.Model interface.
func (a *App) Init() tea.Cmd {
	return a.contentModel.Init()
}

// Update implements the tea.Model interface with global navigation handling.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

		var cmd tea.Cmd

		a.contentModel, cmd = a.contentModel.Update(msg)
		a.screens[a.currentScreen] = a.contentModel

		return a, cmd

	case models.NavigateMsg:
		return a.navigateToScreen(Screen(msg.Screen), msg.Data)

	case tea.KeyMsg:
		return a.handleKeyMessage(msg)

	default:
		var cmd tea.Cmd

		a.contentModel, cmd = a.contentModel.Update(msg)
		a.screens[a.currentScreen] = a.contentModel

		return a, cmd
	}
}

// View implements the tea.Model interface.
func (a *App) View() string {
	if a.quitting {
		return models.GoodbyeMessage
	}

	return a.contentModel.View()
}

// CurrentScreen returns the current screen (for testing).
func (a *App) CurrentScreen() Screen {
	return a.currentScreen
}

// ContentModel returns the current content model (for testing).
func (a *App) ContentModel() tea.Model {
	return a.contentModel
}

//nolint:ireturn // Bubble Tea framework requires returning tea.Model interface
func (a *App) handleKeyMessage(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		a.quitting = true

		return a, tea.Quit

	case "q":
		// "q" quits everywhere except while typing into an input.
		if !a.typingInSearch() {
			a.quitting = true

			return a, tea.Quit
		}
	}

	var cmd tea.Cmd

	a.contentModel, cmd = a.contentModel.Update(msg)
	a.screens[a.currentScreen] = a.contentModel

	return a, cmd
}

// typingInSearch reports whether the search screen currently owns text input,
// in which case plain keys must reach the input instead of acting globally.
func (a *App) typingInSearch() bool {
	searchModel, ok := a.contentModel.(*models.SearchModel)
	if !ok {
		return false
	}

	return searchModel.TypingActive()
}

//nolint:ireturn // Bubble Tea framework requires returning tea.Model interface
func (a *App) navigateToScreen(targetScreen Screen, data any) (tea.Model, tea.Cmd) {
	// Detail screens are always created fresh for the selected record.
	if targetScreen == DetailScreen {
		delete(a.screens, targetScreen)
	}

	model, cached := a.screens[targetScreen]
	if !cached {
		model = a.createModelForScreen(targetScreen, data)
		a.screens[targetScreen] = model
	}

	a.currentScreen = targetScreen
	a.contentModel = model

	cmds := []tea.Cmd{}

	if !cached {
		if initCmd := model.Init(); initCmd != nil {
			cmds = append(cmds, initCmd)
		}
	}

	if a.width > 0 && a.height > 0 {
		updatedModel, resizeCmd := a.contentModel.Update(tea.WindowSizeMsg{
			Width:  a.width,
			Height: a.height,
		})
		a.contentModel = updatedModel
		a.screens[targetScreen] = updatedModel

		if resizeCmd != nil {
			cmds = append(cmds, resizeCmd)
		}
	}

	if len(cmds) > 0 {
		return a, tea.Batch(cmds...)
	}

	return a, nil
}

//nolint:ireturn // Bubble Tea framework requires returning tea.Model interface
func (a *App) createModelForScreen(screen Screen, data any) tea.Model {
	switch screen {
	case SearchScreen:
		return models.NewSearch(a.ctx, a.styles, a.deps)
	case DetailScreen:
		if detailData, ok := data.(models.DetailData); ok {
			return models.NewDetail(a.ctx, a.styles, a.deps, detailData.Record)
		}

		return models.NewSearch(a.ctx, a.styles, a.deps)
	case HelpScreen:
		return models.NewHelp(a.styles)
	default:
		return models.NewSearch(a.ctx, a.styles, a.deps)
	}
}
