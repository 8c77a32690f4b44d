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

// Package roms gathers candidate content paths, narrows them down and picks
// the one to launch.
package roms

import (
	"bufio"
	"io"
	"path/filepath"
	"strings"

	"github.com/ZaparooProject/retroplay/pkg/helpers"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Stdin is a source of piped content paths, one per line.
type Stdin interface {
	io.Reader
	// Ready reports whether data is available without blocking.
	Ready() bool
}

// Sources are the inputs content paths are collected from.
type Sources struct {
	Stdin       Stdin
	Args        []string
	Games       []string
	Playlist    []string
	DirFiles    []string
	IgnoreStdin bool
}

// Collect concatenates all sources in order: positional arguments, --game
// arguments, playlist entries, directory files, then stdin lines. Stdin is
// only read when it has data immediately available. Paths are returned as
// given, they're resolved later.
func Collect(src Sources) []string {
	list := make([]string, 0, len(src.Args)+len(src.Games)+len(src.Playlist)+len(src.DirFiles))
	list = append(list, src.Args...)
	list = append(list, src.Games...)
	list = append(list, src.Playlist...)
	list = append(list, src.DirFiles...)

	if !src.IgnoreStdin && src.Stdin != nil && src.Stdin.Ready() {
		lines := readLines(src.Stdin)
		log.Debug().Int("lines", len(lines)).Msg("read content paths from stdin")
		list = append(list, lines...)
	}

	log.Debug().
		Int("args", len(src.Args)).
		Int("games", len(src.Games)).
		Int("playlist", len(src.Playlist)).
		Int("dirs", len(src.DirFiles)).
		Int("total", len(list)).
		Msg("collected content paths")

	return list
}

func readLines(r io.Reader) []string {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		log.Warn().Err(err).Msg("error reading stdin")
	}
	return lines
}

// ScanDirs lists the regular files directly inside each directory whose
// name has an extension ("*.*"). Directories that can't be resolved or
// aren't directories are skipped.
func ScanDirs(fs afero.Fs, dirs []string) []string {
	var files []string
	for _, d := range dirs {
		dir, ok := helpers.ResolvePath(d)
		if !ok {
			continue
		}

		isDir, err := afero.IsDir(fs, dir)
		if err != nil || !isDir {
			log.Debug().Err(err).Str("dir", dir).Msg("skipping non-directory")
			continue
		}

		escaped := strings.NewReplacer("[", `\[`, "]", `\]`, "*", `\*`, "?", `\?`).Replace(dir)
		matches, err := afero.Glob(fs, filepath.Join(escaped, "*.*"))
		if err != nil {
			log.Warn().Err(err).Str("dir", dir).Msg("failed to list directory")
			continue
		}

		for _, m := range matches {
			info, err := fs.Stat(m)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
			files = append(files, m)
		}
	}
	return files
}
