// SPDX-FileCopyrightText: 2026 The Nixdex Authors
// SPDX-License-Identifier: EUPL-1.2

package nix

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nixdex/nixdex/internal/platform"
)

func TestInstaller_Install_Success(t *testing.T) {
	t.Parallel()

	runner := platform.NewMockRunner()
	installer := NewInstaller(runner)

	require.NoError(t, installer.Install(context.Background(), "ripgrep"))
	assert.Equal(t, []string{"nix profile install nixpkgs#ripgrep"}, runner.Calls)
}

func TestInstaller_Install_FailureSurfacesStderr(t *testing.T) {
	t.Parallel()

	runner := platform.NewMockRunner()
	runner.Results["nix profile install nixpkgs#broken"] = platform.MockResult{
		Stderr: "error: flake output attribute 'broken' not found",
		Err:    errors.New("exit status 1"),
	}

	err := NewInstaller(runner).Install(context.Background(), "broken")
	require.ErrorIs(t, err, ErrInstallFailed)
	assert.Contains(t, err.Error(), "flake output attribute 'broken' not found")
}

func TestInstaller_Install_DiagnosticTruncated(t *testing.T) {
	t.Parallel()

	runner := platform.NewMockRunner()
	runner.Results["nix profile install nixpkgs#noisy"] = platform.MockResult{
		Stderr: strings.Repeat("e", 500),
		Err:    errors.New("exit status 1"),
	}

	err := NewInstaller(runner).Install(context.Background(), "noisy")
	require.ErrorIs(t, err, ErrInstallFailed)
	// "installation failed: " prefix plus at most 200 characters of stderr.
	assert.LessOrEqual(t, len(err.Error()), len(ErrInstallFailed.Error())+2+200)
}

func TestInstaller_Install_NixMissing(t *testing.T) {
	t.Parallel()

	runner := platform.NewMockRunner()
	runner.Results["nix profile install nixpkgs#hello"] = platform.MockResult{
		Err: &exec.Error{Name: "nix", Err: exec.ErrNotFound},
	}

	err := NewInstaller(runner).Install(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrNixMissing)
}

func TestFlakeSnippet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		pkg         string
		description string
		want        string
	}{
		{
			name:        "short description",
			pkg:         "ripgrep",
			description: "Fast line-oriented search tool",
			want:        "    pkgs.ripgrep  # Fast line-oriented search tool",
		},
		{
			name:        "long description cut at 50",
			pkg:         "ffmpeg",
			description: strings.Repeat("d", 80),
			want:        "    pkgs.ffmpeg  # " + strings.Repeat("d", 50),
		},
		{
			name:        "empty description",
			pkg:         "hello",
			description: "",
			want:        "    pkgs.hello  # ",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.want, FlakeSnippet(testCase.pkg, testCase.description))
		})
	}
}
