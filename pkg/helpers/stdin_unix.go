//go:build !windows

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
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/sys/unix"
)

// StdinReady reports whether f has data (or EOF) available to read right now.
// It polls with a zero timeout and never blocks. A terminal is never ready.
func StdinReady(f *os.File) bool {
	if f == nil {
		return false
	}

	fd := f.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return false
	}

	fds := []unix.PollFd{{
		Fd:     int32(fd), //nolint:gosec // file descriptors fit in int32
		Events: unix.POLLIN,
	}}
	n, err := unix.Poll(fds, 0)
	if err != nil || n <= 0 {
		return false
	}

	return fds[0].Revents&(unix.POLLIN|unix.POLLHUP) != 0
}
