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

// Package launch assembles and runs the RetroArch command line.
package launch

import (
	"context"
	"fmt"

	"github.com/ZaparooProject/retroplay/pkg/helpers/command"
	"github.com/ZaparooProject/retroplay/pkg/patch"
	"github.com/rs/zerolog/log"
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitEnvironment = 2
	ExitBadPatch    = 3
)

// ExitError is a fatal condition which ends the program with a specific
// exit code. Msg is shown to the user unless output is quiet.
type ExitError struct {
	Msg  string
	Code int
}

func (e *ExitError) Error() string {
	return e.Msg
}

// Fail returns an ExitError with a formatted message.
func Fail(code int, format string, args ...any) *ExitError {
	return &ExitError{Code: code, Msg: fmt.Sprintf(format, args...)}
}

const (
	FlagConfig     = "--config"
	FlagLibretro   = "--libretro"
	FlagRecord     = "--record"
	FlagFullscreen = "--fullscreen"
)

// Command is a RetroArch invocation.
type Command struct {
	Binary      string
	ConfigPath  string
	CorePath    string
	ContentPath string
	RecordPath  string
	PatchFile   string
	PatchFormat patch.Format
	Fullscreen  bool
}

// Argv returns the full argument vector, starting with the binary.
func (c Command) Argv() []string {
	argv := []string{
		c.Binary,
		FlagConfig, c.ConfigPath,
		FlagLibretro, c.CorePath,
	}
	if c.RecordPath != "" {
		argv = append(argv, FlagRecord, c.RecordPath)
	}
	if c.PatchFile != "" && c.PatchFormat != patch.FormatNone {
		argv = append(argv, c.PatchFormat.Flag(), c.PatchFile)
	}
	if c.Fullscreen {
		argv = append(argv, FlagFullscreen)
	}
	return append(argv, c.ContentPath)
}

// Run runs RetroArch and waits for it to exit.
func (c Command) Run(ctx context.Context, exec command.Executor) error {
	argv := c.Argv()
	log.Info().Strs("argv", argv).Msg("launching retroarch")

	if err := exec.Run(ctx, argv[0], argv[1:]...); err != nil {
		return fmt.Errorf("retroarch exited with error: %w", err)
	}
	return nil
}
