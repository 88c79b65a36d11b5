// SPDX-FileCopyrightText: 2026 The Nixdex Authors
// SPDX-License-Identifier: EUPL-1.2

package console

import (
	"bytes"
	"strings"
	"testing"
)

func TestProgressf_OnlyWhenVerbose(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer

	output := &OutputState{Stderr: &stderr}
	output.Progressf("querying %s", "backend")

	if stderr.Len() != 0 {
		t.Error("progress should be silent without verbose")
	}

	output.Verbose = true
	output.Progressf("querying %s", "backend")

	if !strings.Contains(stderr.String(), "querying backend") {
		t.Errorf("expected progress message, got %q", stderr.String())
	}
}

func TestMessages_SuppressedInJSONMode(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer

	output := &OutputState{JSON: true, Verbose: true, Stderr: &stderr}
	output.Progressf("working")
	output.Successf("done")

	if stderr.Len() != 0 {
		t.Errorf("JSON mode must keep stderr free of decoration, got %q", stderr.String())
	}

	// Errors still surface.
	output.Errorf("failed")

	if !strings.Contains(stderr.String(), "failed") {
		t.Error("errors must always be visible")
	}
}

func TestResultf_GoesToStdout(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer

	output := &OutputState{Stdout: &stdout, Stderr: &stderr}
	output.Resultf("%-10s %s", "ripgrep", "14.1.0")

	if !strings.Contains(stdout.String(), "ripgrep") {
		t.Error("results belong on stdout")
	}

	if stderr.Len() != 0 {
		t.Error("results must not leak to stderr")
	}
}
