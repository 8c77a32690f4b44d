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

package cores

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZaparooProject/retroplay/pkg/config"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCores(t *testing.T) (*config.Instance, string) {
	t.Helper()

	coreDir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	for _, name := range []string{"snes9x_libretro.so", "genesis_plus_gx_libretro.so", "mgba_libretro.so"} {
		require.NoError(t, os.WriteFile(filepath.Join(coreDir, name), []byte{0x7f, 'E', 'L', 'F'}, 0o600))
	}

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/settings.ini", []byte(`[retroarch]
bin = retroarch

[core]
snes = snes9x
md = genesis_plus_gx
n64 = mupen64plus_next

[filetype]
*.sfc = snes
*.md = md
*.z64 = n64
`), 0o600))

	cfg, err := config.NewConfig(fs, "/settings.ini")
	require.NoError(t, err)
	return cfg, coreDir
}

func TestMatch(t *testing.T) {
	t.Parallel()

	cfg, coreDir := setupCores(t)

	tests := []struct {
		name string
		req  Request
		want Result
	}{
		{
			name: "filetype_rule",
			req:  Request{Path: "rom.sfc", CoreDir: coreDir},
			want: Result{CoreID: "snes", CorePath: filepath.Join(coreDir, "snes9x_libretro.so")},
		},
		{
			name: "core_id_override",
			req:  Request{Path: "rom.sfc", CoreID: "md", CoreDir: coreDir},
			want: Result{CoreID: "md", CorePath: filepath.Join(coreDir, "genesis_plus_gx_libretro.so")},
		},
		{
			name: "libretro_filename",
			req:  Request{Path: "rom.sfc", Libretro: "mgba", CoreDir: coreDir},
			want: Result{CorePath: filepath.Join(coreDir, "mgba_libretro.so")},
		},
		{
			name: "libretro_full_filename",
			req:  Request{Path: "rom.sfc", Libretro: "mgba_libretro.so", CoreDir: coreDir},
			want: Result{CorePath: filepath.Join(coreDir, "mgba_libretro.so")},
		},
		{
			name: "libretro_path_beats_core_id",
			req: Request{
				Path:     "rom.sfc",
				Libretro: filepath.Join(coreDir, "mgba_libretro.so"),
				CoreID:   "md",
				CoreDir:  "/elsewhere",
			},
			want: Result{CorePath: filepath.Join(coreDir, "mgba_libretro.so")},
		},
		{
			name: "no_rule",
			req:  Request{Path: "rom.gba", CoreDir: coreDir},
			want: Result{},
		},
		{
			name: "unknown_core_id",
			req:  Request{Path: "rom.sfc", CoreID: "psx", CoreDir: coreDir},
			want: Result{CoreID: "psx"},
		},
		{
			name: "core_file_resolved_even_if_missing",
			req:  Request{Path: "rom.z64", CoreDir: coreDir},
			want: Result{CoreID: "n64", CorePath: filepath.Join(coreDir, "mupen64plus_next_libretro.so")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Match(cfg, tt.req))
		})
	}
}

func TestMatchNilRules(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Result{}, Match(nil, Request{Path: "rom.sfc"}))
	assert.Equal(t, Result{CoreID: "snes"}, Match(nil, Request{Path: "rom.sfc", CoreID: "snes"}))
}
