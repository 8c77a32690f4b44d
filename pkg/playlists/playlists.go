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

// Package playlists reads RetroArch playlists (.lpl JSON files).
package playlists

import (
	"path/filepath"
	"strings"

	"github.com/ZaparooProject/retroplay/pkg/config"
	"github.com/ZaparooProject/retroplay/pkg/helpers"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
)

const (
	Ext       = ".lpl"
	History   = "history"
	Favorites = "favorites"
)

// ResolveFile finds the playlist file for a --playlist value. "history" and
// "favorites" map to RetroArch's configured playlists, a value containing a
// path separator is used as a path and anything else is a playlist name in
// RetroArch's playlist directory.
func ResolveFile(name string, raVars map[string]string) (string, bool) {
	switch {
	case name == "":
		return "", false
	case name == History:
		return resolveVar(raVars, config.VarContentHistoryPath)
	case name == Favorites:
		return resolveVar(raVars, config.VarContentFavoritesPath)
	case strings.Contains(name, "/"):
		return helpers.ResolvePath(name)
	default:
		dir, ok := raVars[config.VarPlaylistDirectory]
		if !ok {
			log.Debug().Msg("retroarch playlist directory not set")
			return "", false
		}
		return helpers.ResolvePath(filepath.Join(dir, helpers.WithExtension(name, Ext)))
	}
}

func resolveVar(raVars map[string]string, name string) (string, bool) {
	v, ok := raVars[name]
	if !ok {
		log.Debug().Str("var", name).Msg("retroarch playlist variable not set")
		return "", false
	}
	return helpers.ResolvePath(v)
}

// ItemPaths returns the "path" field of every entry in the playlist's "items"
// array, in order. Missing files, invalid JSON and a missing "items" array
// all give an empty list. Entries without a path are skipped.
func ItemPaths(fs afero.Fs, path string) []string {
	if path == "" {
		return nil
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("failed to read playlist")
		return nil
	}

	if !gjson.ValidBytes(data) {
		log.Warn().Str("path", path).Msg("playlist is not valid json")
		return nil
	}

	items := gjson.GetBytes(data, "items")
	if !items.IsArray() {
		log.Debug().Str("path", path).Msg("playlist has no items array")
		return nil
	}

	paths := make([]string, 0, len(items.Array()))
	items.ForEach(func(_, item gjson.Result) bool {
		p := item.Get("path")
		if p.Exists() && p.Type == gjson.String {
			paths = append(paths, p.String())
		}
		return true
	})

	log.Debug().Str("path", path).Int("items", len(paths)).Msg("read playlist")
	return paths
}
