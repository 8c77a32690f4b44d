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

// Package record builds the output path for RetroArch session recordings.
//
// A recording template may contain macros:
//
//	=   the content path with a .mkv extension, nothing else is expanded
//	#   the current local time as YYYYMMDDHHMMSS
//	@   the content filename without extension
//	%   as the first character, the directory of the content
//
// The extension of the result is always forced to .mkv.
package record

import (
	"path/filepath"
	"strings"

	"github.com/ZaparooProject/retroplay/pkg/helpers"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

const (
	Ext             = ".mkv"
	TimestampFormat = "20060102150405"

	MacroSameName  = "="
	MacroTimestamp = "#"
	MacroName      = "@"
	MacroDir       = "%"
)

// Builder expands recording templates.
type Builder struct {
	clock clockwork.Clock
}

// NewBuilder returns a Builder using clock for the timestamp macro. A nil
// clock uses the real clock.
func NewBuilder(clock clockwork.Clock) *Builder {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Builder{clock: clock}
}

// Expand applies the template macros for content without resolving the
// result.
func (b *Builder) Expand(template, content string) string {
	if template == MacroSameName {
		return helpers.WithExtension(content, Ext)
	}

	path := template
	if strings.Contains(path, MacroTimestamp) {
		ts := b.clock.Now().Local().Format(TimestampFormat)
		path = strings.ReplaceAll(path, MacroTimestamp, ts)
	}
	if strings.Contains(path, MacroName) {
		path = strings.ReplaceAll(path, MacroName, helpers.GetPathInfo(content).Name)
	}
	if rest, ok := strings.CutPrefix(path, MacroDir); ok {
		if rest == "" {
			path = content
		} else {
			path = filepath.Join(filepath.Dir(content), rest)
		}
	}

	return helpers.WithExtension(path, Ext)
}

// Path returns the resolved recording path. With macros disabled the
// template is resolved as a literal path. Returns false when the path can't
// be resolved, or when macros need content and there is none.
func (b *Builder) Path(template, content string, disableMacros bool) (string, bool) {
	if template == "" {
		return "", false
	}

	if disableMacros {
		return helpers.ResolvePath(template)
	}

	if content == "" {
		log.Debug().Str("template", template).Msg("no content for recording macros")
		return "", false
	}

	path, ok := helpers.ResolvePath(b.Expand(template, content))
	if ok {
		log.Debug().Str("template", template).Str("path", path).Msg("built record path")
	}
	return path, ok
}
