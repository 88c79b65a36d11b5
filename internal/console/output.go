// SPDX-FileCopyrightText: 2026 The Nixdex Authors
// SPDX-License-Identifier: EUPL-1.2

// Package console formats headless command output: results to stdout,
// messages to stderr.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// OutputState holds global output configuration.
type OutputState struct {
	Verbose bool
	JSON    bool

	// Overridable for testing; nil means os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultOutput provides output formatting utilities.
var DefaultOutput = &OutputState{} //nolint:gochecknoglobals

// SetMode configures output mode.
func (o *OutputState) SetMode(verbose, json bool) {
	o.Verbose = verbose
	o.JSON = json
}

// IsTTY checks if output is going to a terminal (not piped/redirected).
func (o *OutputState) IsTTY(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

// Bold formats text with bold when in TTY, uppercase when piped.
func (o *OutputState) Bold(text string) string {
	if o.JSON {
		return text
	}

	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return text
	}

	if o.IsTTY(os.Stdout.Fd()) {
		return "\033[1m" + text + "\033[0m"
	}

	return strings.ToUpper(text)
}

// Progressf writes progress messages to stderr, only when verbose and not
// emitting JSON.
func (o *OutputState) Progressf(format string, args ...any) {
	if o.Verbose && !o.JSON {
		fmt.Fprintf(o.stderr(), format+"\n", args...)
	}
}

// Successf writes success messages to stderr, suppressed in JSON mode.
func (o *OutputState) Successf(format string, args ...any) {
	if !o.JSON {
		fmt.Fprintf(o.stderr(), "✓ "+format+"\n", args...)
	}
}

// Warningf writes warning messages to stderr.
func (o *OutputState) Warningf(format string, args ...any) {
	fmt.Fprintf(o.stderr(), "⚠ "+format+"\n", args...)
}

// Errorf writes error messages to stderr.
func (o *OutputState) Errorf(format string, args ...any) {
	fmt.Fprintf(o.stderr(), "✗ "+format+"\n", args...)
}

// Resultf writes primary command output to stdout.
func (o *OutputState) Resultf(format string, args ...any) {
	fmt.Fprintf(o.stdout(), format+"\n", args...)
}

func (o *OutputState) stdout() io.Writer {
	if o.Stdout != nil {
		return o.Stdout
	}

	return os.Stdout
}

func (o *OutputState) stderr() io.Writer {
	if o.Stderr != nil {
		return o.Stderr
	}

	return os.Stderr
}
