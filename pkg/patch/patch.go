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

// Package patch prepares soft-patched content for RetroArch. The content is
// aliased under a patch-specific name in a private temporary directory so
// RetroArch picks up the patch without the original file being touched.
package patch

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ZaparooProject/retroplay/pkg/helpers"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Format is a soft-patch format supported by RetroArch.
type Format string

const (
	FormatNone Format = ""
	FormatUPS  Format = "ups"
	FormatBPS  Format = "bps"
	FormatIPS  Format = "ips"
)

const overlayPrefix = "retroplay_"

var ErrNoSymlinks = errors.New("filesystem does not support symlinks")

// ParseFormat returns the patch format of a file from its extension.
// Unsupported extensions give FormatNone.
func ParseFormat(path string) Format {
	ext := strings.ToLower(strings.TrimPrefix(helpers.GetPathInfo(path).Extension, "."))
	switch f := Format(ext); f {
	case FormatUPS, FormatBPS, FormatIPS:
		return f
	case FormatNone:
		return FormatNone
	default:
		return FormatNone
	}
}

// Flag returns the RetroArch command line flag for the format.
func (f Format) Flag() string {
	if f == FormatNone {
		return ""
	}
	return "--" + string(f)
}

// Patch is a resolved patch file.
type Patch struct {
	File   string
	Format Format
	Exists bool
}

// Supported reports whether the patch format can be passed to RetroArch.
func (p Patch) Supported() bool {
	return p.Format != FormatNone
}

// Resolve resolves a patch argument. Returns false if the path can't be
// resolved at all.
func Resolve(fs afero.Fs, arg string) (Patch, bool) {
	file, ok := helpers.ResolvePath(arg)
	if !ok {
		log.Debug().Str("patch", arg).Msg("could not resolve patch path")
		return Patch{}, false
	}

	exists, err := afero.Exists(fs, file)
	if err != nil {
		log.Debug().Err(err).Str("patch", file).Msg("could not stat patch")
	}

	return Patch{
		File:   file,
		Format: ParseFormat(file),
		Exists: exists,
	}, true
}

// OverlayDir is a private temporary directory holding overlay links. It
// must be closed to remove it and everything inside.
type OverlayDir struct {
	fs   afero.Fs
	path string
}

// NewOverlayDir creates a new overlay directory in the system temporary
// directory.
func NewOverlayDir(fs afero.Fs) (*OverlayDir, error) {
	dir, err := afero.TempDir(fs, "", overlayPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to create overlay directory: %w", err)
	}
	log.Debug().Str("dir", dir).Msg("created overlay directory")
	return &OverlayDir{fs: fs, path: dir}, nil
}

// Path returns the overlay directory path.
func (o *OverlayDir) Path() string {
	return o.path
}

// Close removes the overlay directory and all links in it.
func (o *OverlayDir) Close() error {
	if o == nil || o.path == "" {
		return nil
	}
	if err := o.fs.RemoveAll(o.path); err != nil {
		return fmt.Errorf("failed to remove overlay directory: %w", err)
	}
	log.Debug().Str("dir", o.path).Msg("removed overlay directory")
	return nil
}

// OverlayName returns the alias filename for content patched by patchFile:
// "<patch filename>_<content filename>".
func OverlayName(patchFile, content string) string {
	return filepath.Base(patchFile) + "_" + filepath.Base(content)
}

// Link creates a symbolic link in the overlay directory pointing at content
// and returns the link path.
func (o *OverlayDir) Link(patchFile, content string) (string, error) {
	linker, ok := o.fs.(afero.Linker)
	if !ok {
		return "", ErrNoSymlinks
	}

	link := filepath.Join(o.path, OverlayName(patchFile, content))
	if err := linker.SymlinkIfPossible(content, link); err != nil {
		return "", fmt.Errorf("failed to link %s: %w", content, err)
	}

	log.Debug().Str("link", link).Str("target", content).Msg("created overlay link")
	return link, nil
}

// Build links content into the overlay directory when the patch exists and
// has a supported format. The returned content path is the overlay link, or
// content unchanged when no overlay was made.
func (o *OverlayDir) Build(p Patch, content string) (string, error) {
	if content == "" || !p.Exists || !p.Supported() {
		return content, nil
	}
	return o.Link(p.File, content)
}
