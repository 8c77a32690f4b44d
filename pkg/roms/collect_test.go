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
	"io"
	"strings"
	"testing"

	"github.com/ZaparooProject/retroplay/pkg/testing/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStdin struct {
	io.Reader
	ready bool
	reads int
}

func (f *fakeStdin) Ready() bool {
	return f.ready
}

func (f *fakeStdin) Read(p []byte) (int, error) {
	f.reads++
	//nolint:wrapcheck // test double
	return f.Reader.Read(p)
}

func TestCollectOrder(t *testing.T) {
	t.Parallel()

	stdin := &fakeStdin{Reader: strings.NewReader("/piped/one.sfc\n\n/piped/two.md\n"), ready: true}
	got := Collect(Sources{
		Args:     []string{"/args/a.sfc", "/args/b.sfc"},
		Games:    []string{"/game/c.sfc"},
		Playlist: []string{"/pl/d.sfc"},
		DirFiles: []string{"/dir/e.sfc"},
		Stdin:    stdin,
	})

	assert.Equal(t, []string{
		"/args/a.sfc",
		"/args/b.sfc",
		"/game/c.sfc",
		"/pl/d.sfc",
		"/dir/e.sfc",
		"/piped/one.sfc",
		"/piped/two.md",
	}, got)
}

func TestCollectStdin(t *testing.T) {
	t.Parallel()

	t.Run("ignored_with_flag", func(t *testing.T) {
		t.Parallel()
		stdin := &fakeStdin{Reader: strings.NewReader("/piped/one.sfc\n"), ready: true}
		got := Collect(Sources{Args: []string{"/a.sfc"}, Stdin: stdin, IgnoreStdin: true})
		assert.Equal(t, []string{"/a.sfc"}, got)
		assert.Zero(t, stdin.reads)
	})

	t.Run("not_ready_is_not_read", func(t *testing.T) {
		t.Parallel()
		stdin := &fakeStdin{Reader: strings.NewReader("/piped/one.sfc\n"), ready: false}
		got := Collect(Sources{Stdin: stdin})
		assert.Empty(t, got)
		assert.Zero(t, stdin.reads)
	})

	t.Run("nil_stdin", func(t *testing.T) {
		t.Parallel()
		got := Collect(Sources{Games: []string{"/g.sfc"}})
		assert.Equal(t, []string{"/g.sfc"}, got)
	})

	t.Run("crlf_and_no_trailing_newline", func(t *testing.T) {
		t.Parallel()
		stdin := &fakeStdin{Reader: strings.NewReader("/a b.sfc\r\n/c.sfc"), ready: true}
		got := Collect(Sources{Stdin: stdin})
		assert.Equal(t, []string{"/a b.sfc", "/c.sfc"}, got)
	})
}

func TestScanDirs(t *testing.T) {
	t.Parallel()

	h := helpers.NewMemoryFS()
	require.NoError(t, h.CreateDirectoryStructure("/", map[string]any{
		"games": map[string]any{
			"b.sfc":        helpers.ROMData,
			"a.md":         helpers.ROMData,
			"noextension":  helpers.ROMData,
			"sub.dir":      map[string]any{"nested.sfc": helpers.ROMData},
			"[US] f1.sfc":  helpers.ROMData,
			"readme.txt":   "text",
			"empty folder": nil,
		},
		"other": map[string]any{
			"c.gba": helpers.ROMData,
		},
	}))
	require.NoError(t, h.WriteFile("/file.sfc", helpers.ROMData))

	got := ScanDirs(h.Fs, []string{"/games", "/missing", "/file.sfc", "/other"})
	assert.Equal(t, []string{
		"/games/[US] f1.sfc",
		"/games/a.md",
		"/games/b.sfc",
		"/games/readme.txt",
		"/other/c.gba",
	}, got)
}

func TestScanDirsEmpty(t *testing.T) {
	t.Parallel()
	assert.Empty(t, ScanDirs(helpers.NewMemoryFS().Fs, nil))
}
