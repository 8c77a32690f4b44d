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

package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ZaparooProject/retroplay/pkg/helpers/syncutil"
	"github.com/adrg/xdg"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"gopkg.in/ini.v1"
)

const (
	CfgEnv  = "RETROPLAY_CFG"
	CfgDir  = "retroplay"
	CfgFile = "settings.ini"

	SectionRetroArch = "retroarch"
	SectionCore      = "core"
	SectionFiletype  = "filetype"

	KeyBin             = "bin"
	KeyDir             = "dir"
	KeyConfig          = "config"
	KeyForceFullscreen = "force_fullscreen"

	DefaultRetroArchDir    = "$HOME/.config/retroarch"
	DefaultRetroArchConfig = "$HOME/.config/retroarch/retroarch.cfg"
)

// RetroArch holds the [retroarch] section of the settings file.
type RetroArch struct {
	Bin             string `validate:"required"`
	Dir             string `validate:"required"`
	Config          string `validate:"required"`
	ForceFullscreen bool
}

type keyValue struct {
	key   string
	value string
}

var defaultRetroArch = []keyValue{
	{KeyBin, "retroarch"},
	{KeyDir, DefaultRetroArchDir},
	{KeyConfig, DefaultRetroArchConfig},
	{KeyForceFullscreen, "False"},
}

// core identifier -> core filename
var defaultCores = []keyValue{
	{"a26", "stella"},
	{"pce", "mednafen_pce"},
	{"nes", "mesen"},
	{"snes", "snes9x"},
	{"gb", "sameboy"},
	{"gbc", "sameboy"},
	{"gba", "mgba"},
	{"n64", "mupen64plus_next"},
	{"sms", "smsplus"},
	{"gg", "smsplus"},
	{"md", "genesis_plus_gx"},
	{"mdwide", "genesis_plus_gx_wide"},
	{"32x", "picodrive"},
}

// file pattern -> core identifier, later entries take priority
var defaultFiletypes = []keyValue{
	{"~/Emulatoren/games/snes/*", "snes"},
	{"*.a26", "a26"},
	{"*.pce", "pce"},
	{"*.nes", "nes"},
	{"*.fds", "nes"},
	{"*.smc", "snes"},
	{"*.sfc", "snes"},
	{"*.gb", "gb"},
	{"*.gbc", "gbc"},
	{"*.gba", "gba"},
	{"*.z64", "n64"},
	{"*.n64", "n64"},
	{"*.sms", "sms"},
	{"*.gg", "gg"},
	{"*.md", "md"},
	{"*.smd", "md"},
	{"*.gen", "md"},
	{"*.wide.md", "mdwide"},
	{"*.32x", "32x"},
}

var loadOptions = ini.LoadOptions{
	IgnoreInlineComment:     true,
	SkipUnrecognizableLines: true,
}

// Instance is the loaded settings file. Section key order is preserved and
// is significant for filetype rules.
type Instance struct {
	fs      afero.Fs
	file    *ini.File
	cfgPath string
	// matchers caches the filetype rules prepared for matching, nil until
	// first use and after the rules change
	matchers []ruleMatcher
	mu       syncutil.RWMutex
}

// DefaultPath returns the settings file location, honouring the
// RETROPLAY_CFG environment variable.
func DefaultPath() string {
	if p := os.Getenv(CfgEnv); p != "" {
		return p
	}
	return filepath.Join(xdg.ConfigHome, CfgDir, CfgFile)
}

// DefaultSettings builds the settings written on first run.
func DefaultSettings() *ini.File {
	f := ini.Empty(loadOptions)
	addKeys(f.Section(SectionRetroArch), defaultRetroArch)
	addKeys(f.Section(SectionCore), defaultCores)
	addKeys(f.Section(SectionFiletype), defaultFiletypes)
	return f
}

func addKeys(sec *ini.Section, kvs []keyValue) {
	for _, kv := range kvs {
		// NewKey only fails on an empty name
		_, _ = sec.NewKey(kv.key, kv.value)
	}
}

// NewConfig loads the settings file at cfgPath from fs. If it doesn't exist,
// the default settings are written there first.
func NewConfig(fs afero.Fs, cfgPath string) (*Instance, error) {
	if cfgPath == "" {
		return nil, errors.New("config path not set")
	}

	cfg := &Instance{
		fs:      fs,
		cfgPath: cfgPath,
	}

	exists, err := afero.Exists(fs, cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	if !exists {
		log.Info().Str("path", cfgPath).Msg("saving new default config to disk")

		err := fs.MkdirAll(filepath.Dir(cfgPath), 0o750)
		if err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}

		cfg.file = DefaultSettings()
		err = cfg.Save()
		if err != nil {
			return nil, err
		}
		return cfg, nil
	}

	err = cfg.Load()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load reads the settings file from disk, replacing the in-memory settings.
// Missing [core] and [filetype] sections are created empty.
func (c *Instance) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := afero.ReadFile(c.fs, c.cfgPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	f, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	for _, name := range []string{SectionCore, SectionFiletype} {
		if !f.HasSection(name) {
			_, _ = f.NewSection(name)
		}
	}

	c.file = f
	c.matchers = nil
	log.Debug().
		Str("path", c.cfgPath).
		Int("cores", len(f.Section(SectionCore).Keys())).
		Int("filetypes", len(f.Section(SectionFiletype).Keys())).
		Msg("loaded settings")

	return nil
}

// Save writes the whole settings file back to disk.
func (c *Instance) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var buf bytes.Buffer
	if _, err := c.file.WriteTo(&buf); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := afero.WriteFile(c.fs, c.cfgPath, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Path returns the settings file location.
func (c *Instance) Path() string {
	return c.cfgPath
}

// Raw returns the settings file content as stored on disk.
func (c *Instance) Raw() ([]byte, error) {
	data, err := afero.ReadFile(c.fs, c.cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return data, nil
}

// RetroArch returns the [retroarch] section with fallbacks for missing keys.
// force_fullscreen is parsed as a boolean and is false if unparsable.
func (c *Instance) RetroArch() RetroArch {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ra := RetroArch{
		Dir:    DefaultRetroArchDir,
		Config: DefaultRetroArchConfig,
	}

	sec, err := c.file.GetSection(SectionRetroArch)
	if err != nil {
		return ra
	}

	ra.Bin = keyString(sec, KeyBin, ra.Bin)
	ra.Dir = keyString(sec, KeyDir, ra.Dir)
	ra.Config = keyString(sec, KeyConfig, ra.Config)
	if sec.HasKey(KeyForceFullscreen) {
		// Key() is only safe after HasKey, it creates missing keys
		fullscreen, err := sec.Key(KeyForceFullscreen).Bool()
		if err != nil {
			log.Warn().Err(err).Msg("invalid force_fullscreen value, using false")
		}
		ra.ForceFullscreen = fullscreen
	}

	return ra
}

func keyString(sec *ini.Section, name, fallback string) string {
	if !sec.HasKey(name) {
		return fallback
	}
	return sec.Key(name).String()
}

var validate = validator.New()

// Validate checks the [retroarch] section has everything needed to launch.
func (c *Instance) Validate() error {
	ra := c.RetroArch()
	if err := validate.Struct(&ra); err != nil {
		return fmt.Errorf("invalid [%s] settings: %w", SectionRetroArch, err)
	}
	return nil
}
