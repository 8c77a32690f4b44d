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

package cli

import (
	"fmt"
	"strings"

	"github.com/ZaparooProject/retroplay/pkg/config"
	"github.com/ZaparooProject/retroplay/pkg/roms"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
)

const (
	DefaultPlaylist = "history"
	DefaultMenu     = string(roms.MenuDmenu)
)

// Flags are all command line options.
type Flags struct {
	Libretro    string
	CoreID      string
	Patch       string
	Playlist    string
	Menu        string `validate:"omitempty,oneof=dmenu rofi"`
	Record      string
	AddFiletype string
	AddCore     string
	Config      string
	Games       []string
	Dirs        []string
	Filters     []string
	NameFilters []string
	ExtFilters  []string
	App         []string
	Index       int

	NoPatch             bool
	NoStdin             bool
	Ls                  bool
	What                bool
	Which               bool
	Validate            bool
	Invalidate          bool
	Unique              bool
	Sort                bool
	SortNames           bool
	SortExt             bool
	Fullscreen          bool
	NoRun               bool
	Quiet               bool
	RecordDisableMacros bool
	Version             bool
	ShowConfig          bool
	Verbose             bool
}

// SetupFlags defines all command line flags on fs. Arguments must go through
// ExpandArgs before parsing so multi-value flags get all their values.
func SetupFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{}

	fs.StringArrayVarP(&f.Games, "game", "g", nil,
		"add game files to the list of candidates")
	fs.StringVarP(&f.Libretro, "libretro", "L", "",
		"core to run, a path or a filename in the libretro directory")
	fs.StringVarP(&f.CoreID, "core", "C", "",
		"core identifier to use instead of filetype matching")
	fs.StringVarP(&f.Patch, "patch", "p", "",
		"soft-patch file in ups, bps or ips format")
	fs.BoolVarP(&f.NoPatch, "nopatch", "P", false,
		"ignore --patch")
	fs.BoolVarP(&f.NoStdin, "nostdin", "Z", false,
		"don't read content paths from stdin")
	fs.StringVarP(&f.Playlist, "playlist", "l", "",
		`RetroArch playlist to add candidates from, "history", "favorites", a name or a path`)
	fs.Lookup("playlist").NoOptDefVal = DefaultPlaylist
	fs.StringArrayVarP(&f.Dirs, "dir", "d", nil,
		"add all files in directories to the candidates")
	fs.BoolVarP(&f.Ls, "ls", "o", false,
		"print the candidate list after filters and sorting")
	fs.BoolVarP(&f.What, "what", "w", false,
		"print the content path that was run")
	fs.BoolVarP(&f.Which, "which", "W", false,
		"print the core path that was run")
	fs.IntVarP(&f.Index, "index", "i", 1,
		"select candidate by position, 0 is the last, negative counts from the end")
	fs.StringVarP(&f.Menu, "menu", "m", "",
		`select candidate with an interactive menu, "dmenu" or "rofi"`)
	fs.Lookup("menu").NoOptDefVal = DefaultMenu
	fs.StringArrayVarP(&f.Filters, "filter", "F", nil,
		"keep candidates whose full path matches every pattern")
	fs.StringArrayVarP(&f.NameFilters, "filter-names", "N", nil,
		"keep candidates whose name matches every pattern")
	fs.StringArrayVarP(&f.ExtFilters, "filter-ext", "E", nil,
		"keep candidates whose extension matches every pattern")
	fs.BoolVarP(&f.Validate, "validate", "v", false,
		"keep candidates that exist and have a matching core")
	fs.BoolVar(&f.Validate, "verify", false, "alias of --validate")
	_ = fs.MarkHidden("verify")
	fs.BoolVarP(&f.Invalidate, "invalidate", "V", false,
		"keep candidates that --validate would drop")
	fs.BoolVarP(&f.Unique, "uniq", "U", false,
		"remove duplicate candidates")
	fs.BoolVarP(&f.Sort, "sort", "s", false,
		"sort candidates by full path")
	fs.BoolVarP(&f.SortNames, "sort-names", "n", false,
		"sort candidates by name")
	fs.BoolVarP(&f.SortExt, "sort-ext", "e", false,
		"sort candidates by extension")
	fs.BoolVarP(&f.Fullscreen, "fullscreen", "f", false,
		"run RetroArch in fullscreen")
	fs.BoolVarP(&f.NoRun, "norun", "X", false,
		"don't run RetroArch")
	fs.BoolVarP(&f.Quiet, "quiet", "Q", false,
		"don't print error messages")
	fs.StringVarP(&f.Record, "record", "r", "",
		`record the session to an MKV file, macros: "=" "#" "@" "%"`)
	fs.BoolVarP(&f.RecordDisableMacros, "record-disable-macros", "R", false,
		"use the --record path literally")
	fs.StringVar(&f.AddFiletype, "addfiletype", "",
		"add a PATTERN=CORE_ID filetype rule to the settings file")
	fs.StringVar(&f.AddCore, "addcore", "",
		"add a CORE_ID=CORE_NAME core rule to the settings file")
	fs.StringVarP(&f.Config, "config", "c", "",
		"settings file to use")
	fs.BoolVar(&f.Version, "version", false,
		"print version and exit")
	fs.StringSliceVar(&f.App, "app", nil,
		"print program information for each KEY and continue, keys: "+strings.Join(config.MetaKeys, ", "))
	fs.BoolVar(&f.ShowConfig, "showconfig", false,
		"print the active configuration and exit")
	fs.BoolVar(&f.Verbose, "verbose", false,
		"print debug logs to stderr")

	return f
}

var validate = validator.New()

// Check validates flag values.
func (f *Flags) Check() error {
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}

// SortKey returns the requested sort. Extension beats name beats path.
func (f *Flags) SortKey() roms.SortKey {
	switch {
	case f.SortExt:
		return roms.SortExt
	case f.SortNames:
		return roms.SortName
	case f.Sort:
		return roms.SortPath
	default:
		return roms.SortNone
	}
}

// Validity returns the requested validity filter. --invalidate wins over
// --validate.
func (f *Flags) Validity() roms.Validity {
	switch {
	case f.Invalidate:
		return roms.ValidityInvalid
	case f.Validate:
		return roms.ValidityValid
	default:
		return roms.ValidityAny
	}
}

// TransformOptions returns the list transforms requested by the flags.
func (f *Flags) TransformOptions() roms.TransformOptions {
	return roms.TransformOptions{
		Unique:      f.Unique,
		ExtFilters:  f.ExtFilters,
		NameFilters: f.NameFilters,
		PathFilters: f.Filters,
		Sort:        f.SortKey(),
		Validity:    f.Validity(),
	}
}
