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
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"
)

const fileScheme = "file://"

// ExpandPath strips a file:// scheme, expands environment variable references
// and a leading home directory marker. Returns false if a referenced
// environment variable is not set or the home directory is unknown.
func ExpandPath(path string) (string, bool) {
	path = strings.TrimPrefix(path, fileScheme)

	missing := ""
	expanded := os.Expand(path, func(key string) string {
		v, ok := os.LookupEnv(key)
		if !ok && missing == "" {
			missing = key
		}
		return v
	})
	if missing != "" {
		if _, err := os.Lstat(path); err == nil {
			log.Debug().Str("path", path).Str("var", missing).
				Msg("undefined environment variable in path, a file with this literal name exists " +
					"but $ always starts a variable reference")
		} else {
			log.Debug().Str("path", path).Str("var", missing).Msg("undefined environment variable in path")
		}
		return "", false
	}

	if expanded == "~" || strings.HasPrefix(expanded, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Debug().Err(err).Msg("failed to get home directory")
			return "", false
		}
		expanded = filepath.Join(home, strings.TrimPrefix(expanded, "~"))
	}

	return expanded, true
}

// ResolvePath expands the given path and returns its canonical absolute form
// with symlinks, "." and ".." resolved. The path does not need to exist:
// missing trailing components are kept as-is under the resolved parent.
func ResolvePath(path string) (string, bool) {
	expanded, ok := ExpandPath(path)
	if !ok {
		return "", false
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("failed to make path absolute")
		return "", false
	}

	resolved, err := evalSymlinksLenient(abs)
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("failed to resolve path")
		return "", false
	}

	return resolved, true
}

// ResolveGlob expands the given path and treats it as a wildcard pattern,
// returning the absolute path of the first match. Square brackets are matched
// literally.
func ResolveGlob(path string) (string, bool) {
	expanded, ok := ExpandPath(path)
	if !ok {
		return "", false
	}

	escaped := strings.NewReplacer("[", `\[`, "]", `\]`).Replace(expanded)
	matches, err := filepath.Glob(escaped)
	if err != nil || len(matches) == 0 {
		log.Debug().Err(err).Str("pattern", escaped).Msg("glob has no matches")
		return "", false
	}

	abs, err := filepath.Abs(matches[0])
	if err != nil {
		return "", false
	}
	return abs, true
}

func evalSymlinksLenient(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err == nil {
		return resolved, nil
	}
	if !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, syscall.ENOTDIR) {
		//nolint:wrapcheck // caller logs the failed path
		return "", err
	}

	parent := filepath.Dir(path)
	if parent == path {
		return path, nil
	}

	resolvedParent, err := evalSymlinksLenient(parent)
	if err != nil {
		return "", err
	}
	return filepath.Join(resolvedParent, filepath.Base(path)), nil
}

// PathInfo holds the parts of a content path used for matching and sorting.
type PathInfo struct {
	Path      string
	Dir       string
	Filename  string
	Extension string
	Name      string
}

// GetPathInfo splits a path into its directory, filename, extension (with
// the leading dot) and name (filename without extension). A leading or
// trailing dot in the filename is not an extension.
func GetPathInfo(path string) PathInfo {
	info := PathInfo{
		Path:     path,
		Dir:      filepath.Dir(path),
		Filename: filepath.Base(path),
	}
	if path == "" {
		info.Filename = ""
	}

	info.Extension = getPathExt(info.Filename)
	info.Name = strings.TrimSuffix(info.Filename, info.Extension)
	return info
}

// getPathExt returns the last dot-delimited suffix of a filename.
func getPathExt(filename string) string {
	lastDot := strings.LastIndex(filename, ".")
	if lastDot <= 0 || lastDot == len(filename)-1 {
		return ""
	}
	return filename[lastDot:]
}

// WithExtension replaces the extension of path with ext, or appends ext if
// the path has none.
func WithExtension(path, ext string) string {
	info := GetPathInfo(path)
	return strings.TrimSuffix(path, info.Extension) + ext
}
