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

package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/ZaparooProject/retroplay/pkg/cli"
	"github.com/ZaparooProject/retroplay/pkg/config"
	"github.com/ZaparooProject/retroplay/pkg/launch"
	"github.com/stretchr/testify/assert"
)

func TestRunWithoutArgsPrintsUsage(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), nil, &stdout, &stderr)

	assert.Equal(t, launch.ExitOK, code)
	assert.Equal(t, usage+"\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRunInvalidFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		args      []string
		wantQuiet bool
	}{
		{name: "unknown_flag", args: []string{"--bogus", "mario.sfc"}},
		{name: "bad_index", args: []string{"--index", "first", "mario.sfc"}},
		{name: "quiet", args: []string{"-Q", "--bogus"}, wantQuiet: true},
		{name: "game_without_value", args: []string{"mario.sfc", "-g"}},
		{name: "dir_followed_by_flag", args: []string{"mario.sfc", "-d", "-X"}},
		{name: "quiet_missing_value", args: []string{"-Q", "-E"}, wantQuiet: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var stdout, stderr bytes.Buffer
			code := run(context.Background(), tt.args, &stdout, &stderr)

			assert.Equal(t, launch.ExitEnvironment, code)
			assert.Empty(t, stdout.String())
			if tt.wantQuiet {
				assert.Empty(t, stderr.String())
			} else {
				assert.NotEmpty(t, stderr.String())
			}
		})
	}
}

func TestHelpListsFlags(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	root := newRootCmd(cli.Env{Stdout: &stdout})
	root.SetArgs([]string{"--help"})
	assert.NoError(t, root.Execute())

	out := stdout.String()
	assert.Contains(t, out, usage)
	for _, flag := range []string{"--libretro", "--playlist", "--filter-ext", "--record-disable-macros"} {
		assert.Contains(t, out, flag)
	}
	assert.NotContains(t, out, "--verify")
	assert.Contains(t, out, strings.Join(config.MetaKeys, ", "), "--app lists its keys")
}
