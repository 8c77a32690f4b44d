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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchPattern(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
		path    string
		want    bool
	}{
		{name: "extension", pattern: "*.sfc", path: "/games/mario.sfc", want: true},
		{name: "extension_mismatch", pattern: "*.sfc", path: "/games/mario.smc", want: false},
		{name: "multi_suffix", pattern: "*.wide.md", path: "/games/sonic.wide.md", want: true},
		{name: "multi_suffix_mismatch", pattern: "*.wide.md", path: "/games/sonic.md", want: false},
		{name: "star_crosses_separator", pattern: "/games/snes/*", path: "/games/snes/sub/mario.sfc", want: true},
		{name: "dir_prefix_mismatch", pattern: "/games/snes/*", path: "/games/nes/mario.nes", want: false},
		{name: "question_mark", pattern: "*.g?", path: "/games/tetris.gb", want: true},
		{name: "character_class", pattern: "*.[sz]64", path: "/games/mario.z64", want: true},
		{name: "case_sensitive", pattern: "*.sfc", path: "/games/MARIO.SFC", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, MatchPattern(tt.pattern, tt.path))
		})
	}
}

func TestGlobCache(t *testing.T) {
	t.Parallel()
	cache := NewGlobCache()

	g1, err := cache.Compile("*.wide.md")
	require.NoError(t, err)
	g2, err := cache.Compile("*.wide.md")
	require.NoError(t, err)
	assert.Len(t, cache.cache, 1, "expected one cached glob")
	assert.True(t, g1.Match("/games/sonic.wide.md"))
	assert.True(t, g2.Match("/games/sonic.wide.md"))

	_, err = cache.Compile("[unclosed")
	require.Error(t, err)
	assert.NotContains(t, cache.cache, "[unclosed")
}

func TestMatchPatternInvalid(t *testing.T) {
	t.Parallel()

	assert.False(t, MatchPattern("[unclosed", "[unclosed"))
}
