// Zaparoo Retroplay
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Zaparoo Retroplay.
//
// Zaparoo Retroplay is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zaparoo Retroplay is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zaparoo Retroplay.  If not, see <http://www.gnu.org/licenses/>.

package roms

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"unicode"

	"github.com/ZaparooProject/retroplay/pkg/helpers"
	"github.com/rs/zerolog/log"
)

// SortKey selects what the candidate list is sorted by.
type SortKey int

const (
	SortNone SortKey = iota
	SortPath
	SortName
	SortExt
)

// Validity selects which entries the validity filter keeps.
type Validity int

const (
	ValidityAny Validity = iota
	ValidityValid
	ValidityInvalid
)

// CoreMatcher finds the core identifier for a content path.
type CoreMatcher interface {
	MatchCore(path string) (string, bool)
}

// TransformOptions are the list transforms to run. Zero values skip the
// stage.
type TransformOptions struct {
	ExtFilters  []string
	NameFilters []string
	PathFilters []string
	Sort        SortKey
	Validity    Validity
	Unique      bool
}

// Transform runs the list transforms in their fixed order: uniqueness,
// extension filters, name filters, path filters, sort and validity. Each
// filter pattern narrows the result of the previous one. An empty list is
// returned as-is. Returns an error if a filter pattern is an invalid regular
// expression.
func Transform(list []string, opts TransformOptions, matcher CoreMatcher) ([]string, error) {
	if len(list) == 0 {
		return list, nil
	}

	if opts.Unique {
		list = Unique(list)
	}

	stages := []struct {
		field    func(string) string
		name     string
		patterns []string
	}{
		{name: "extension", field: extField, patterns: opts.ExtFilters},
		{name: "name", field: nameField, patterns: opts.NameFilters},
		{name: "path", field: pathField, patterns: opts.PathFilters},
	}
	for _, stage := range stages {
		for _, pattern := range stage.patterns {
			filtered, err := Filter(list, pattern, stage.field)
			if err != nil {
				return nil, err
			}
			log.Debug().
				Str("filter", stage.name).
				Str("pattern", pattern).
				Int("before", len(list)).
				Int("after", len(filtered)).
				Msg("filtered content list")
			list = filtered
		}
	}

	if opts.Sort != SortNone {
		list = Sort(list, opts.Sort)
	}

	if opts.Validity != ValidityAny {
		list = FilterValid(list, matcher, opts.Validity)
	}

	return list, nil
}

// Unique drops repeated entries, keeping the first occurrence.
func Unique(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, p := range list {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

func extField(path string) string {
	return strings.ToLower(strings.TrimPrefix(helpers.GetPathInfo(path).Extension, "."))
}

func nameField(path string) string {
	return strings.ToLower(helpers.GetPathInfo(path).Name)
}

func pathField(path string) string {
	return strings.ToLower(path)
}

func isAlnum(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Filter keeps entries whose field value matches pattern. A purely
// alphanumeric pattern is a case-insensitive substring match, anything else
// is a case-insensitive regular expression search.
func Filter(list []string, pattern string, field func(string) string) ([]string, error) {
	var match func(string) bool
	if isAlnum(pattern) {
		lp := strings.ToLower(pattern)
		match = func(s string) bool {
			return strings.Contains(s, lp)
		}
	} else {
		re, err := helpers.CachedCompileFold(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid filter pattern: %w", err)
		}
		match = re.MatchString
	}

	out := make([]string, 0, len(list))
	for _, p := range list {
		if match(field(p)) {
			out = append(out, p)
		}
	}
	return out, nil
}

// Sort returns a copy of list stably sorted by the lowercased key.
func Sort(list []string, key SortKey) []string {
	var field func(string) string
	switch key {
	case SortExt:
		field = func(p string) string {
			return strings.ToLower(helpers.GetPathInfo(p).Extension)
		}
	case SortName:
		field = nameField
	case SortPath:
		field = pathField
	case SortNone:
		return list
	default:
		return list
	}

	out := slices.Clone(list)
	slices.SortStableFunc(out, func(a, b string) int {
		return strings.Compare(field(a), field(b))
	})
	return out
}

// IsValid reports whether a resolved content path exists on disk and
// matches a filetype rule with a non-empty core identifier.
func IsValid(path string, matcher CoreMatcher) bool {
	if matcher == nil {
		return false
	}
	coreID, ok := matcher.MatchCore(path)
	if !ok || coreID == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// FilterValid resolves every entry and keeps the valid ones, or with
// ValidityInvalid exactly the others. Kept entries are in resolved form when
// they could be resolved.
func FilterValid(list []string, matcher CoreMatcher, mode Validity) []string {
	if mode == ValidityAny {
		return list
	}

	out := make([]string, 0, len(list))
	for _, p := range list {
		entry := p
		valid := false
		if resolved, ok := helpers.ResolvePath(p); ok {
			entry = resolved
			valid = IsValid(resolved, matcher)
		}

		if (mode == ValidityValid) == valid {
			out = append(out, entry)
		}
	}

	log.Debug().
		Int("before", len(list)).
		Int("after", len(out)).
		Bool("invalid", mode == ValidityInvalid).
		Msg("validity filtered content list")
	return out
}
