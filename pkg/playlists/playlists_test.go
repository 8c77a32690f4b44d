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

package playlists

import (
	"testing"

	"github.com/ZaparooProject/retroplay/pkg/config"
	"github.com/ZaparooProject/retroplay/pkg/testing/helpers"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFile(t *testing.T) {
	t.Parallel()

	vars := map[string]string{
		config.VarPlaylistDirectory:    "/ra/playlists",
		config.VarContentHistoryPath:   "/ra/playlists/builtin/content_history.lpl",
		config.VarContentFavoritesPath: "/ra/content_favorites.lpl",
	}

	tests := []struct {
		name   string
		value  string
		want   string
		wantOK bool
	}{
		{name: "history", value: "history", want: "/ra/playlists/builtin/content_history.lpl", wantOK: true},
		{name: "favorites", value: "favorites", want: "/ra/content_favorites.lpl", wantOK: true},
		{name: "path", value: "/other/list.lpl", want: "/other/list.lpl", wantOK: true},
		{name: "name", value: "Nintendo - SNES", want: "/ra/playlists/Nintendo - SNES.lpl", wantOK: true},
		{name: "name_extension_replaced", value: "snes.json", want: "/ra/playlists/snes.lpl", wantOK: true},
		{name: "empty", value: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ResolveFile(tt.value, vars)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveFileMissingVars(t *testing.T) {
	t.Parallel()

	_, ok := ResolveFile(History, map[string]string{})
	assert.False(t, ok)
	_, ok = ResolveFile(Favorites, nil)
	assert.False(t, ok)
	_, ok = ResolveFile("snes", nil)
	assert.False(t, ok)
}

func TestItemPaths(t *testing.T) {
	t.Parallel()

	h := helpers.NewMemoryFS()
	require.NoError(t, h.WritePlaylist("/pl/good.lpl", []string{"/games/a.sfc", "/games/b.md"}))
	require.NoError(t, h.WriteFile("/pl/bad.lpl", []byte(`{"items": [`)))
	require.NoError(t, h.WriteFile("/pl/noitems.lpl", []byte(`{"version": "1.5"}`)))
	require.NoError(t, h.WriteFile("/pl/itemsobj.lpl", []byte(`{"items": {"path": "/games/a.sfc"}}`)))
	require.NoError(t, h.WriteFile("/pl/mixed.lpl", []byte(`{"items": [
		{"path": "/games/a.sfc"},
		{"label": "no path"},
		{"path": 42},
		{"path": "/games/c.gba"}
	]}`)))

	tests := []struct {
		name string
		path string
		want []string
	}{
		{name: "good", path: "/pl/good.lpl", want: []string{"/games/a.sfc", "/games/b.md"}},
		{name: "malformed_json", path: "/pl/bad.lpl", want: nil},
		{name: "no_items", path: "/pl/noitems.lpl", want: nil},
		{name: "items_not_array", path: "/pl/itemsobj.lpl", want: nil},
		{name: "skips_entries_without_path", path: "/pl/mixed.lpl", want: []string{"/games/a.sfc", "/games/c.gba"}},
		{name: "missing_file", path: "/pl/missing.lpl", want: nil},
		{name: "no_file", path: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ItemPaths(h.Fs, tt.path)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestItemPathsEmptyItems(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/empty.lpl", []byte(`{"items": []}`), 0o600))
	assert.Empty(t, ItemPaths(fs, "/empty.lpl"))
}
