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

package launch

import (
	"context"
	"errors"
	"testing"

	"github.com/ZaparooProject/retroplay/pkg/patch"
	"github.com/ZaparooProject/retroplay/pkg/testing/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestArgv(t *testing.T) {
	t.Parallel()

	base := Command{
		Binary:      "retroarch",
		ConfigPath:  "/ra/retroarch.cfg",
		CorePath:    "/ra/cores/snes9x_libretro.so",
		ContentPath: "/games/mario.sfc",
	}

	tests := []struct {
		name string
		cmd  func(Command) Command
		want []string
	}{
		{
			name: "minimal",
			cmd:  func(c Command) Command { return c },
			want: []string{
				"retroarch", "--config", "/ra/retroarch.cfg",
				"--libretro", "/ra/cores/snes9x_libretro.so", "/games/mario.sfc",
			},
		},
		{
			name: "everything",
			cmd: func(c Command) Command {
				c.RecordPath = "/videos/mario.mkv"
				c.PatchFile = "/patches/fix.ups"
				c.PatchFormat = patch.FormatUPS
				c.Fullscreen = true
				c.ContentPath = "/tmp/retroplay_1/fix.ups_mario.sfc"
				return c
			},
			want: []string{
				"retroarch", "--config", "/ra/retroarch.cfg",
				"--libretro", "/ra/cores/snes9x_libretro.so",
				"--record", "/videos/mario.mkv",
				"--ups", "/patches/fix.ups",
				"--fullscreen",
				"/tmp/retroplay_1/fix.ups_mario.sfc",
			},
		},
		{
			name: "patch_without_format_ignored",
			cmd: func(c Command) Command {
				c.PatchFile = "/patches/fix.xdelta"
				return c
			},
			want: []string{
				"retroarch", "--config", "/ra/retroarch.cfg",
				"--libretro", "/ra/cores/snes9x_libretro.so", "/games/mario.sfc",
			},
		},
		{
			name: "bps_and_fullscreen",
			cmd: func(c Command) Command {
				c.PatchFile = "/patches/fix.bps"
				c.PatchFormat = patch.FormatBPS
				c.Fullscreen = true
				return c
			},
			want: []string{
				"retroarch", "--config", "/ra/retroarch.cfg",
				"--libretro", "/ra/cores/snes9x_libretro.so",
				"--bps", "/patches/fix.bps", "--fullscreen", "/games/mario.sfc",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.cmd(base).Argv())
		})
	}
}

func TestRun(t *testing.T) {
	t.Parallel()

	cmd := Command{
		Binary:      "retroarch",
		ConfigPath:  "/ra/retroarch.cfg",
		CorePath:    "/ra/cores/snes9x_libretro.so",
		ContentPath: "/games/mario.sfc",
	}

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		exec := &mocks.MockCommandExecutor{}
		exec.On("Run", mock.Anything, "retroarch", cmd.Argv()[1:]).Return(nil)

		require.NoError(t, cmd.Run(context.Background(), exec))
		exec.AssertExpectations(t)
	})

	t.Run("failure", func(t *testing.T) {
		t.Parallel()
		exec := &mocks.MockCommandExecutor{}
		exec.On("Run", mock.Anything, "retroarch", mock.Anything).Return(errors.New("exit status 1"))

		err := cmd.Run(context.Background(), exec)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exit status 1")
	})
}

func TestExitError(t *testing.T) {
	t.Parallel()

	err := Fail(ExitBadPatch, "Unsupported patch format: %q", "/p/fix.xdelta")
	assert.Equal(t, ExitBadPatch, err.Code)
	assert.Equal(t, `Unsupported patch format: "/p/fix.xdelta"`, err.Error())

	var exitErr *ExitError
	wrapped := errors.Join(errors.New("context"), err)
	require.ErrorAs(t, wrapped, &exitErr)
	assert.Equal(t, 3, exitErr.Code)
}
