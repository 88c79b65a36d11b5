// SPDX-FileCopyrightText: 2026 The Nixdex Authors
// SPDX-License-Identifier: EUPL-1.2

package platform

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockRunner_CannedResults(t *testing.T) {
	t.Parallel()

	runner := NewMockRunner()
	runner.Results["nix profile install nixpkgs#hello"] = MockResult{
		Stderr: "error: build failed",
		Err:    errors.New("exit status 1"),
	}

	stdout, stderr, err := runner.Run(context.Background(), "nix", "profile", "install", "nixpkgs#hello")
	require.Error(t, err)
	assert.Empty(t, stdout)
	assert.Equal(t, "error: build failed", stderr)
	assert.Equal(t, []string{"nix profile install nixpkgs#hello"}, runner.Calls)
}

func TestMockRunner_RecordsInput(t *testing.T) {
	t.Parallel()

	runner := NewMockRunner()
	require.NoError(t, runner.RunWithInput(context.Background(), "pkgs.hello", "xclip", "-selection", "clipboard"))
	assert.Equal(t, "pkgs.hello", runner.Inputs["xclip -selection clipboard"])
}

func TestMockRunner_CommandExists(t *testing.T) {
	t.Parallel()

	runner := NewMockRunner()
	assert.True(t, runner.CommandExists("anything"), "nil map means everything exists")

	runner.Existing = map[string]bool{"xclip": true}
	assert.True(t, runner.CommandExists("xclip"))
	assert.False(t, runner.CommandExists("wl-copy"))
}

func TestExecRunner_CapturesOutput(t *testing.T) {
	t.Parallel()

	runner := NewExecRunner()

	stdout, stderr, err := runner.Run(context.Background(), "sh", "-c", "echo out; echo err >&2")
	require.NoError(t, err)
	assert.Equal(t, "out\n", stdout)
	assert.Equal(t, "err\n", stderr)
}

func TestExecRunner_NotFound(t *testing.T) {
	t.Parallel()

	runner := NewExecRunner()

	_, _, err := runner.Run(context.Background(), "nixdex-no-such-binary-xyz")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestExecRunner_CommandExists(t *testing.T) {
	t.Parallel()

	runner := NewExecRunner()
	assert.True(t, runner.CommandExists("sh"))
	assert.False(t, runner.CommandExists("nixdex-no-such-binary-xyz"))
}
