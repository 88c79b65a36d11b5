// SPDX-FileCopyrightText: 2026 The Nixdex Authors
// SPDX-License-Identifier: EUPL-1.2

// Package nixsearch queries the NixOS package search service and projects
// its result records into displayable form.
package nixsearch

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Display fallbacks for absent record fields.
const (
	valueNotAvailable = "N/A"
	valueNone         = "None"
	valueAllPlatforms = "All platforms"
)

// Summary row truncation: descriptions longer than the budget are cut at
// width 57 so the three-character ellipsis still fits within the budget.
const (
	descriptionBudget   = 60
	descriptionEllipsis = "..."
)

// Overflow limits for the joined detail fields.
const (
	maxPrograms  = 5
	maxPlatforms = 5
	maxLicenses  = 3
)

// Record is one search hit's metadata. No field is guaranteed present, so
// every accessor has a defined fallback.
type Record map[string]any

// AttrName returns the dotted package attribute name.
func (r Record) AttrName() string {
	return r.str("package_attr_name", valueNotAvailable)
}

// Version returns the package version.
func (r Record) Version() string {
	return r.str("package_pversion", valueNotAvailable)
}

// Description returns the package description, empty when absent.
func (r Record) Description() string {
	return r.str("package_description", "")
}

// PkgsName returns the last segment of the attribute name, the form used
// inside `with pkgs; [ ... ]` lists.
func (r Record) PkgsName() string {
	name := r.AttrName()
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		return name[idx+1:]
	}

	return name
}

// SummaryRow is the three-column reduced view shown in the results table.
type SummaryRow struct {
	Name        string
	Version     string
	Description string
}

// Summary projects a record into its results-table row. The description is
// truncated for display width so the row never exceeds the column budget.
func (r Record) Summary() SummaryRow {
	description := r.Description()
	if runewidth.StringWidth(description) > descriptionBudget {
		description = runewidth.Truncate(description, descriptionBudget, descriptionEllipsis)
	}

	return SummaryRow{
		Name:        r.AttrName(),
		Version:     r.Version(),
		Description: description,
	}
}

// DetailFields is the multi-field view shown on the details screen.
type DetailFields struct {
	Name        string
	Version     string
	Description string
	Programs    string
	License     string
	Platforms   string
	Homepage    string
}

// Detail projects a record into its detail view.
func (r Record) Detail() DetailFields {
	description := r.Description()
	if description == "" {
		description = "No description available"
	}

	return DetailFields{
		Name:        r.AttrName(),
		Version:     r.Version(),
		Description: description,
		Programs:    joinWithOverflow(r.strs("package_programs"), maxPrograms, valueNone),
		License:     joinWithOverflow(r.licenseNames(), maxLicenses, valueNotAvailable),
		Platforms:   joinWithOverflow(r.strs("package_platforms"), maxPlatforms, valueAllPlatforms),
		Homepage:    r.homepage(),
	}
}

// joinWithOverflow joins the first limit values with ", " and appends an
// " (+N more)" suffix for the omitted remainder.
func joinWithOverflow(values []string, limit int, empty string) string {
	if len(values) == 0 {
		return empty
	}

	if len(values) <= limit {
		return strings.Join(values, ", ")
	}

	return fmt.Sprintf("%s (+%d more)", strings.Join(values[:limit], ", "), len(values)-limit)
}

func (r Record) homepage() string {
	pages := r.strs("package_homepage")
	if len(pages) == 0 {
		return valueNotAvailable
	}

	return pages[0]
}

func (r Record) licenseNames() []string {
	raw, ok := r["package_license"].([]any)
	if !ok {
		return nil
	}

	var names []string

	for _, item := range raw {
		license, ok := item.(map[string]any)
		if !ok {
			continue
		}

		if name, ok := license["fullName"].(string); ok {
			names = append(names, name)
		} else {
			names = append(names, "Unknown")
		}
	}

	return names
}

func (r Record) str(key, fallback string) string {
	if value, ok := r[key].(string); ok && value != "" {
		return value
	}

	return fallback
}

func (r Record) strs(key string) []string {
	switch raw := r[key].(type) {
	case []string:
		return raw
	case []any:
		var values []string

		for _, item := range raw {
			if value, ok := item.(string); ok {
				values = append(values, value)
			}
		}

		return values
	default:
		return nil
	}
}
