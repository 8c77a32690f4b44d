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
	"context"
	"strings"

	"github.com/ZaparooProject/retroplay/pkg/helpers/command"
	"github.com/rs/zerolog/log"
)

// MenuKind names an external interactive chooser.
type MenuKind string

const (
	MenuNone  MenuKind = ""
	MenuDmenu MenuKind = "dmenu"
	MenuRofi  MenuKind = "rofi"
)

var menuCommands = map[MenuKind][]string{
	MenuDmenu: {"dmenu", "-i", "-l", "15"},
	MenuRofi:  {"rofi", "-dmenu", "-i"},
}

// MenuCommand returns the command line used to run a chooser.
func MenuCommand(kind MenuKind) ([]string, bool) {
	cmd, ok := menuCommands[kind]
	return cmd, ok
}

// SelectByIndex picks an entry by 1-based index. Index 0 is the last entry
// and negative indexes count from the end, so -1 is the second to last.
func SelectByIndex(list []string, index int) (string, bool) {
	if index == 0 {
		index = len(list)
	}
	i := index - 1
	if i < 0 {
		i += len(list)
	}
	if i < 0 || i >= len(list) {
		return "", false
	}
	return list[i], true
}

// SelectByMenu pipes the list, one entry per line, to an external chooser
// and returns its choice. A missing chooser, a non-zero exit or an empty
// choice all mean nothing was selected.
func SelectByMenu(ctx context.Context, exec command.Executor, list []string, kind MenuKind) (string, bool) {
	cmd, ok := MenuCommand(kind)
	if !ok {
		log.Warn().Str("menu", string(kind)).Msg("unknown menu")
		return "", false
	}

	out, err := exec.OutputWithInput(ctx, strings.Join(list, "\n"), cmd[0], cmd[1:]...)
	if err != nil {
		log.Debug().Err(err).Str("menu", cmd[0]).Msg("menu returned no selection")
		return "", false
	}

	selection := strings.TrimSuffix(string(out), "\n")
	if selection == "" {
		return "", false
	}

	log.Debug().Str("menu", cmd[0]).Str("selection", selection).Msg("menu selection")
	return selection, true
}

// Select picks an entry from list, by menu when kind is set, otherwise by
// index.
func Select(ctx context.Context, exec command.Executor, list []string, kind MenuKind, index int) (string, bool) {
	if kind != MenuNone {
		return SelectByMenu(ctx, exec, list, kind)
	}
	return SelectByIndex(list, index)
}
