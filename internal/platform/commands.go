// SPDX-FileCopyrightText: 2026 The Nixdex Authors
// SPDX-License-Identifier: EUPL-1.2

// Package platform provides subprocess execution behind a small port so the
// core logic stays testable without spawning real processes.
package platform

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
)

// Runner executes external commands. The real implementation shells out;
// tests swap in a MockRunner.
type Runner interface {
	// Run executes a command and returns captured stdout and stderr.
	// A nonzero exit reports the error alongside whatever was captured.
	Run(ctx context.Context, name string, args ...string) (stdout, stderr string, err error)

	// RunWithInput executes a command with input piped to stdin.
	RunWithInput(ctx context.Context, input, name string, args ...string) error

	// CommandExists checks if a command is available on the system.
	CommandExists(name string) bool
}

// ExecRunner implements Runner with real subprocesses.
type ExecRunner struct{}

// NewExecRunner creates a runner backed by os/exec.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes the command with output captured so the TUI stays in control
// of the terminal.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	return stdout.String(), stderr.String(), err
}

// RunWithInput executes the command with input on stdin, discarding output.
func (r *ExecRunner) RunWithInput(ctx context.Context, input, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(input)

	return cmd.Run()
}

// CommandExists checks if a command is available on the system.
func (r *ExecRunner) CommandExists(name string) bool {
	_, err := exec.LookPath(name)

	return err == nil
}

// IsNotFound reports whether err indicates the executable itself was absent,
// as opposed to the command running and failing.
func IsNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound)
}

// MockRunner implements Runner for testing without real subprocesses.
type MockRunner struct {
	// Existing lists command names LookPath should find. A nil map means
	// every command exists.
	Existing map[string]bool

	// Results maps "name arg1 arg2..." to a canned outcome.
	Results map[string]MockResult

	// Calls records every invocation in order.
	Calls []string

	// Inputs records stdin content passed to RunWithInput, keyed by command.
	Inputs map[string]string
}

// MockResult is a canned command outcome.
type MockResult struct {
	Stdout string
	Stderr string
	Err    error
}

// NewMockRunner creates an empty mock runner where every command succeeds.
func NewMockRunner() *MockRunner {
	return &MockRunner{
		Results: make(map[string]MockResult),
		Inputs:  make(map[string]string),
	}
}

// Run returns the canned result for the command, or success.
func (r *MockRunner) Run(_ context.Context, name string, args ...string) (string, string, error) {
	call := commandLine(name, args)
	r.Calls = append(r.Calls, call)

	if result, ok := r.Results[call]; ok {
		return result.Stdout, result.Stderr, result.Err
	}

	return "", "", nil
}

// RunWithInput records the input and returns the canned result's error.
func (r *MockRunner) RunWithInput(_ context.Context, input, name string, args ...string) error {
	call := commandLine(name, args)
	r.Calls = append(r.Calls, call)
	r.Inputs[call] = input

	if result, ok := r.Results[call]; ok {
		return result.Err
	}

	return nil
}

// CommandExists consults the Existing map, defaulting to true.
func (r *MockRunner) CommandExists(name string) bool {
	if r.Existing == nil {
		return true
	}

	return r.Existing[name]
}

func commandLine(name string, args []string) string {
	if len(args) == 0 {
		return name
	}

	return name + " " + strings.Join(args, " ")
}
