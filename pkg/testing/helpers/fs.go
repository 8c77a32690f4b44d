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
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ROMData is content with a binary signature.
var ROMData = []byte{0x13, 0x37, 0x00, 0xc0, 0xde, 0x00, 0x42, 0x99}

// FSHelper provides utilities for filesystem mocking in tests
type FSHelper struct {
	Fs afero.Fs
}

// NewMemoryFS creates a new in-memory filesystem for testing
func NewMemoryFS() *FSHelper {
	return &FSHelper{
		Fs: afero.NewMemMapFs(),
	}
}

// NewOSFS creates a filesystem helper using the real filesystem (for integration tests)
func NewOSFS() *FSHelper {
	return &FSHelper{
		Fs: afero.NewOsFs(),
	}
}

// WriteFile writes content to a file, creating parent directories.
func (h *FSHelper) WriteFile(path string, content []byte) error {
	if err := h.Fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for file %s: %w", path, err)
	}
	if err := afero.WriteFile(h.Fs, path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}

// ReadFile reads a file and returns its content
func (h *FSHelper) ReadFile(path string) ([]byte, error) {
	data, err := afero.ReadFile(h.Fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return data, nil
}

// CreateDirectoryStructure creates a directory structure for testing. String
// and []byte values are files, maps are directories and nil is an empty
// directory.
func (h *FSHelper) CreateDirectoryStructure(basePath string, structure map[string]any) error {
	for name, content := range structure {
		fullPath := filepath.Join(basePath, name)

		switch v := content.(type) {
		case string:
			if err := h.WriteFile(fullPath, []byte(v)); err != nil {
				return err
			}
		case []byte:
			if err := h.WriteFile(fullPath, v); err != nil {
				return err
			}
		case map[string]any:
			if err := h.Fs.MkdirAll(fullPath, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", fullPath, err)
			}
			if err := h.CreateDirectoryStructure(fullPath, v); err != nil {
				return err
			}
		case nil:
			if err := h.Fs.MkdirAll(fullPath, 0o755); err != nil {
				return fmt.Errorf("failed to create empty directory %s: %w", fullPath, err)
			}
		}
	}
	return nil
}

// WriteRetroArchConfig writes a retroarch.cfg with the given variables, one
// `key = "value"` line each, in the given order.
func (h *FSHelper) WriteRetroArchConfig(path string, vars ...[2]string) error {
	var b strings.Builder
	b.WriteString("# generated for tests\n")
	for _, kv := range vars {
		fmt.Fprintf(&b, "%s = %q\n", kv[0], kv[1])
	}
	return h.WriteFile(path, []byte(b.String()))
}

// WritePlaylist writes a RetroArch .lpl playlist containing the given paths.
func (h *FSHelper) WritePlaylist(path string, paths []string) error {
	type item struct {
		Path     string `json:"path"`
		Label    string `json:"label"`
		CorePath string `json:"core_path"`
	}
	pl := struct {
		Version string `json:"version"`
		Items   []item `json:"items"`
	}{Version: "1.5", Items: make([]item, 0, len(paths))}
	for _, p := range paths {
		pl.Items = append(pl.Items, item{
			Path:     p,
			Label:    strings.TrimSuffix(filepath.Base(p), filepath.Ext(p)),
			CorePath: "DETECT",
		})
	}

	data, err := json.MarshalIndent(pl, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal playlist: %w", err)
	}
	return h.WriteFile(path, data)
}

// RetroArchEnv is the layout created by SetupRetroArch.
type RetroArchEnv struct {
	Root            string
	Settings        string
	RetroArchDir    string
	RetroArchConfig string
	CoreDir         string
	PlaylistDir     string
	HistoryFile     string
	GamesDir        string
}

// Game returns the path of a file in the games directory.
func (e *RetroArchEnv) Game(name string) string {
	return filepath.Join(e.GamesDir, name)
}

// Core returns the path of a file in the core directory.
func (e *RetroArchEnv) Core(name string) string {
	return filepath.Join(e.CoreDir, name)
}

// SetupRetroArch creates a complete launcher environment under root: a
// settings file, a RetroArch directory with retroarch.cfg, cores, a history
// playlist and some games.
func (h *FSHelper) SetupRetroArch(root string) (*RetroArchEnv, error) {
	env := &RetroArchEnv{
		Root:         root,
		Settings:     filepath.Join(root, "retroplay", "settings.ini"),
		RetroArchDir: filepath.Join(root, "retroarch"),
		CoreDir:      filepath.Join(root, "retroarch", "cores"),
		PlaylistDir:  filepath.Join(root, "retroarch", "playlists"),
		GamesDir:     filepath.Join(root, "games"),
	}
	env.RetroArchConfig = filepath.Join(env.RetroArchDir, "retroarch.cfg")
	env.HistoryFile = filepath.Join(env.PlaylistDir, "builtin", "content_history.lpl")

	settings := fmt.Sprintf(`[retroarch]
bin = retroarch
dir = %s
config = %s
force_fullscreen = False

[core]
snes = snes9x
md = genesis_plus_gx
mdwide = genesis_plus_gx_wide

[filetype]
*.sfc = snes
*.md = md
*.wide.md = mdwide
`, env.RetroArchDir, env.RetroArchConfig)
	if err := h.WriteFile(env.Settings, []byte(settings)); err != nil {
		return nil, err
	}

	err := h.WriteRetroArchConfig(env.RetroArchConfig,
		[2]string{"libretro_directory", env.CoreDir},
		[2]string{"playlist_directory", env.PlaylistDir},
		[2]string{"content_history_path", env.HistoryFile},
		[2]string{"content_favorites_path", filepath.Join(env.RetroArchDir, "content_favorites.lpl")},
	)
	if err != nil {
		return nil, err
	}

	err = h.CreateDirectoryStructure(root, map[string]any{
		"retroarch": map[string]any{
			"cores": map[string]any{
				"snes9x_libretro.so":          ROMData,
				"genesis_plus_gx_libretro.so": ROMData,
			},
		},
		"games": map[string]any{
			"mario.sfc":      ROMData,
			"zelda.sfc":      ROMData,
			"sonic.md":       ROMData,
			"sonic.wide.md":  ROMData,
			"readme.txt":     "not a game\n",
			"unknown.bin":    ROMData,
			"notes.sfc":      "plain text with a rom extension\n",
			"subdir/deep.md": ROMData,
		},
	})
	if err != nil {
		return nil, err
	}

	err = h.WritePlaylist(env.HistoryFile, []string{env.Game("zelda.sfc"), env.Game("sonic.md")})
	if err != nil {
		return nil, err
	}

	return env, nil
}
