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

// Package cores decides which libretro core runs a piece of content.
package cores

import (
	"strings"

	"github.com/ZaparooProject/retroplay/pkg/config"
	"github.com/ZaparooProject/retroplay/pkg/helpers"
	"github.com/rs/zerolog/log"
)

// RuleTable maps content paths to core identifiers and core identifiers to
// core binaries.
type RuleTable interface {
	MatchCore(path string) (string, bool)
	ResolveCore(coreID, coreDir string) (string, bool)
}

// Request describes the content to find a core for and any overrides.
type Request struct {
	// Path is the selected content path.
	Path string
	// Libretro is an explicit core binary, either a path or a core filename
	// looked up in CoreDir.
	Libretro string
	// CoreID overrides filetype rule matching.
	CoreID  string
	CoreDir string
}

// Result is the matched core. CorePath is empty when no core binary could
// be resolved, CoreID is empty when an explicit binary was given.
type Result struct {
	CoreID   string
	CorePath string
}

// Match resolves the core for a request. An explicit core binary bypasses
// the rule table entirely. Otherwise the core identifier comes from the
// request or from the filetype rules and is resolved through the core
// rules.
func Match(rules RuleTable, req Request) Result {
	if req.Libretro != "" {
		var corePath string
		var ok bool
		if strings.Contains(req.Libretro, "/") {
			corePath, ok = helpers.ResolvePath(req.Libretro)
		} else {
			corePath, ok = config.CorePath(req.Libretro, req.CoreDir)
		}
		if !ok {
			log.Debug().Str("libretro", req.Libretro).Msg("could not resolve core binary")
			return Result{}
		}
		log.Debug().Str("core_path", corePath).Msg("using explicit core binary")
		return Result{CorePath: corePath}
	}

	coreID := req.CoreID
	if coreID == "" && rules != nil {
		coreID, _ = rules.MatchCore(req.Path)
	}
	if coreID == "" {
		log.Debug().Str("path", req.Path).Msg("no core identifier for content")
		return Result{}
	}

	res := Result{CoreID: coreID}
	if rules == nil {
		return res
	}
	if corePath, ok := rules.ResolveCore(coreID, req.CoreDir); ok {
		res.CorePath = corePath
	}

	log.Debug().
		Str("path", req.Path).
		Str("core", res.CoreID).
		Str("core_path", res.CorePath).
		Msg("matched core")
	return res
}
