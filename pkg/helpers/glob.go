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
	"fmt"
	"sync"

	"github.com/gobwas/glob"
	"github.com/rs/zerolog/log"
)

// GlobCache keeps compiled wildcard patterns so filetype rules are compiled
// once per run instead of once per candidate path.
type GlobCache struct {
	cache map[string]glob.Glob
	mu    sync.RWMutex
}

// GlobalGlobCache is used by MatchPattern.
var GlobalGlobCache = NewGlobCache()

func NewGlobCache() *GlobCache {
	return &GlobCache{
		cache: make(map[string]glob.Glob),
	}
}

// Compile returns the cached glob for pattern, compiling it on first use.
// Invalid patterns are not cached.
func (gc *GlobCache) Compile(pattern string) (glob.Glob, error) {
	gc.mu.RLock()
	if g, exists := gc.cache[pattern]; exists {
		gc.mu.RUnlock()
		return g, nil
	}
	gc.mu.RUnlock()

	gc.mu.Lock()
	defer gc.mu.Unlock()

	if g, exists := gc.cache[pattern]; exists {
		return g, nil
	}

	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to compile wildcard pattern %q: %w", pattern, err)
	}

	gc.cache[pattern] = g
	return g, nil
}

// MatchPattern reports whether name matches the shell wildcard pattern. No
// separators are declared so "*" also matches across directories, which lets
// a bare "*.sfc" pattern match a full path.
func MatchPattern(pattern, name string) bool {
	g, err := GlobalGlobCache.Compile(pattern)
	if err != nil {
		log.Debug().Err(err).Msg("invalid wildcard pattern")
		return false
	}
	return g.Match(name)
}
