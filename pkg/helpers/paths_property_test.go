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

package helpers

import (
	"path/filepath"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

// TestPropertyGetPathInfoRebuildsFilename verifies name plus extension is
// always the filename.
func TestPropertyGetPathInfoRebuildsFilename(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		path := rapid.StringMatching(`(/[a-zA-Z0-9_\- .]{1,12}){1,4}`).Draw(t, "path")

		info := GetPathInfo(path)

		if info.Name+info.Extension != info.Filename {
			t.Fatalf("name %q + ext %q != filename %q", info.Name, info.Extension, info.Filename)
		}
		if info.Filename != filepath.Base(path) {
			t.Fatalf("filename %q != base %q", info.Filename, filepath.Base(path))
		}
	})
}

// TestPropertyExtensionHasNoDots verifies an extension is a single suffix.
func TestPropertyExtensionHasNoDots(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		name := rapid.StringMatching(`[a-z.]{1,20}`).Draw(t, "name")

		ext := GetPathInfo("/games/" + name).Extension
		if ext == "" {
			return
		}
		if !strings.HasPrefix(ext, ".") || strings.Count(ext, ".") != 1 || len(ext) < 2 {
			t.Fatalf("bad extension %q for %q", ext, name)
		}
	})
}

// TestPropertyWithExtensionIdempotent verifies replacing an extension twice
// gives the same result.
func TestPropertyWithExtensionIdempotent(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		path := rapid.StringMatching(`/[a-z]{1,8}/[a-z.]{1,12}`).Draw(t, "path")

		once := WithExtension(path, ".mkv")
		twice := WithExtension(once, ".mkv")
		if once != twice {
			t.Fatalf("not idempotent: %q vs %q", once, twice)
		}
		if !strings.HasSuffix(once, ".mkv") {
			t.Fatalf("missing extension: %q", once)
		}
	})
}

// TestPropertyMatchPatternStar verifies "*" followed by a literal suffix
// matches any name ending in it.
func TestPropertyMatchPatternStar(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		prefix := rapid.StringMatching(`[a-z0-9/ _]{0,20}`).Draw(t, "prefix")
		ext := rapid.StringMatching(`[a-z0-9]{1,5}`).Draw(t, "ext")

		if !MatchPattern("*."+ext, prefix+"."+ext) {
			t.Fatalf("*.%s should match %q", ext, prefix+"."+ext)
		}
	})
}
