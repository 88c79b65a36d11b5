// SPDX-FileCopyrightText: 2026 The Nixdex Authors
// SPDX-License-Identifier: EUPL-1.2

package nix

import (
	"context"
	"errors"
	"fmt"

	"github.com/nixdex/nixdex/internal/platform"
)

// ErrNoClipboardTool is reported when no candidate clipboard tool is
// installed; callers should surface the text instead.
var ErrNoClipboardTool = errors.New("no clipboard tool available, install xclip or wl-clipboard")

// clipboardTool is one candidate strategy for reaching the system clipboard.
type clipboardTool struct {
	name string
	args []string
}

// defaultClipboardTools are tried in order: xclip for X11, wl-copy for
// Wayland. First available wins.
var defaultClipboardTools = []clipboardTool{
	{name: "xclip", args: []string{"-selection", "clipboard"}},
	{name: "wl-copy"},
}

// Clipboard copies text to the system clipboard through the first available
// external tool.
type Clipboard struct {
	runner platform.Runner
	tools  []clipboardTool
}

// NewClipboard creates a clipboard using the default tool chain.
func NewClipboard(runner platform.Runner) *Clipboard {
	return &Clipboard{runner: runner, tools: defaultClipboardTools}
}

// Copy pipes text to the first installed clipboard tool. ErrNoClipboardTool
// is returned when none of the candidates exist.
func (c *Clipboard) Copy(ctx context.Context, text string) error {
	for _, tool := range c.tools {
		if !c.runner.CommandExists(tool.name) {
			continue
		}

		if err := c.runner.RunWithInput(ctx, text, tool.name, tool.args...); err != nil {
			return fmt.Errorf("%s failed: %w", tool.name, err)
		}

		return nil
	}

	return ErrNoClipboardTool
}
