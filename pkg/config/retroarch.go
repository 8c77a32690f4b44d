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

package config

import (
	"bufio"
	"bytes"
	"regexp"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	VarLibretroDirectory    = "libretro_directory"
	VarPlaylistDirectory    = "playlist_directory"
	VarContentHistoryPath   = "content_history_path"
	VarContentFavoritesPath = "content_favorites_path"
)

// RetroArchVarNames are the retroarch.cfg variables used by the launcher.
var RetroArchVarNames = []string{
	VarLibretroDirectory,
	VarPlaylistDirectory,
	VarContentHistoryPath,
	VarContentFavoritesPath,
}

var raVarRe = regexp.MustCompile(`^([A-Za-z0-9_]+)\s*=\s*"(.+)"`)

// ReadRetroArchVars extracts the named variables from a retroarch.cfg file
// made of `key = "value"` lines. A missing or unreadable file gives an empty
// map.
func ReadRetroArchVars(fs afero.Fs, path string, names []string) map[string]string {
	vars := make(map[string]string)

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("failed to read retroarch config")
		return vars
	}

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[name] = true
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		m := raVarRe.FindStringSubmatch(scanner.Text())
		if m == nil || !wanted[m[1]] {
			continue
		}
		vars[m[1]] = m[2]
	}
	if err := scanner.Err(); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("error scanning retroarch config")
	}

	return vars
}
