// SPDX-FileCopyrightText: 2026 The Nixdex Authors
// SPDX-License-Identifier: EUPL-1.2

// Package manifest edits the user-managed packages.nix category file.
package manifest

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Categories are the fixed section names of the managed manifest, in file order.
var Categories = []string{"development", "productivity", "media", "utilities", "custom"}

// DefaultCategory is used when the user does not pick a category.
const DefaultCategory = "custom"

var (
	// ErrSectionNotFound is returned when a category section is absent or malformed.
	ErrSectionNotFound = errors.New("category section not found in manifest")
	// ErrDuplicateEntry is returned when the identifier is already listed in the category.
	ErrDuplicateEntry = errors.New("package already present in category")
	// ErrEmptyIdentifier is returned when the identifier is blank.
	ErrEmptyIdentifier = errors.New("empty package identifier")
	// ErrUnknownCategory is returned for a category outside the fixed five.
	ErrUnknownCategory = errors.New("unknown category")
)

// ValidCategory reports whether name is one of the five fixed categories.
func ValidCategory(name string) bool {
	for _, category := range Categories {
		if category == name {
			return true
		}
	}

	return false
}

// sectionPattern matches one category block: `<category> = with pkgs; [ ... ];`
// with a non-greedy body capture across newlines.
func sectionPattern(category string) *regexp.Regexp {
	return regexp.MustCompile(`(?s)(` + regexp.QuoteMeta(category) + `\s*=\s*with pkgs;\s*\[)(.*?)(\];)`)
}

// AddEntry appends identifier to the named category of manifestText.
//
// The transform is pure: callers persist the result. Comments and existing
// entries are preserved verbatim; the identifier is inserted as its own
// indented line before the closing bracket. The duplicate check compares
// whole tokens, so an identifier that is a substring of an existing entry
// (for example "rg" alongside "ripgrep") is still accepted.
func AddEntry(manifestText, category, identifier string) (string, bool, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return manifestText, false, ErrEmptyIdentifier
	}

	if !ValidCategory(category) {
		return manifestText, false, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}

	match := sectionPattern(category).FindStringSubmatchIndex(manifestText)
	if match == nil {
		return manifestText, false, fmt.Errorf("%w: %s", ErrSectionNotFound, category)
	}

	bodyStart, bodyEnd := match[4], match[5]
	body := manifestText[bodyStart:bodyEnd]

	if containsToken(body, identifier) {
		return manifestText, false, fmt.Errorf("%w: %s in %s", ErrDuplicateEntry, identifier, category)
	}

	newBody := strings.TrimRight(body, " \t\n") + "\n    " + identifier + "\n  "
	newText := manifestText[:bodyStart] + newBody + manifestText[bodyEnd:]

	return newText, true, nil
}

// containsToken reports whether identifier appears as a whole entry inside a
// category body. Comment lines are skipped so a mention in a comment does not
// count as an existing entry.
func containsToken(body, identifier string) bool {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			continue
		}

		for _, token := range strings.FieldsFunc(line, func(r rune) bool {
			return r == ' ' || r == '\t' || r == ','
		}) {
			if token == identifier {
				return true
			}
		}
	}

	return false
}

// Entries returns the package identifiers currently listed in a category.
func Entries(manifestText, category string) ([]string, error) {
	match := sectionPattern(category).FindStringSubmatch(manifestText)
	if match == nil {
		return nil, fmt.Errorf("%w: %s", ErrSectionNotFound, category)
	}

	var entries []string

	for _, line := range strings.Split(match[2], "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entries = append(entries, strings.Fields(line)...)
	}

	return entries, nil
}
