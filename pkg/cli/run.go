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
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ZaparooProject/retroplay/pkg/config"
	"github.com/ZaparooProject/retroplay/pkg/cores"
	"github.com/ZaparooProject/retroplay/pkg/helpers"
	"github.com/ZaparooProject/retroplay/pkg/helpers/command"
	"github.com/ZaparooProject/retroplay/pkg/launch"
	"github.com/ZaparooProject/retroplay/pkg/patch"
	"github.com/ZaparooProject/retroplay/pkg/playlists"
	"github.com/ZaparooProject/retroplay/pkg/record"
	"github.com/ZaparooProject/retroplay/pkg/roms"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Env is everything Run touches outside the process.
type Env struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  roms.Stdin
	Exec   command.Executor
	Fs     afero.Fs
	Clock  clockwork.Clock
	// IsBinary reports whether a content file has a binary signature.
	IsBinary func(path string) bool
}

func (e *Env) setDefaults() {
	if e.Stdout == nil {
		e.Stdout = io.Discard
	}
	if e.Stderr == nil {
		e.Stderr = io.Discard
	}
	if e.Exec == nil {
		e.Exec = &command.RealExecutor{}
	}
	if e.Fs == nil {
		e.Fs = afero.NewOsFs()
	}
	if e.Clock == nil {
		e.Clock = clockwork.NewRealClock()
	}
	if e.IsBinary == nil {
		e.IsBinary = helpers.IsBinaryFile
	}
}

type runner struct {
	flags *Flags
	env   Env
}

// warn reports a non-fatal problem to the user unless quiet.
func (r *runner) warn(msg string) {
	log.Warn().Msg(msg)
	if !r.flags.Quiet {
		_, _ = fmt.Fprintln(r.env.Stderr, msg)
	}
}

func (r *runner) println(s string) {
	_, _ = fmt.Fprintln(r.env.Stdout, s)
}

func (r *runner) exists(path string) bool {
	if path == "" {
		return false
	}
	ok, err := afero.Exists(r.env.Fs, path)
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("failed to stat path")
	}
	return ok
}

// LoadSettings loads the settings file from the --config flag or the
// default location.
func LoadSettings(fs afero.Fs, cfgFlag string) (*config.Instance, error) {
	cfgPath := cfgFlag
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}

	resolved, ok := helpers.ResolvePath(cfgPath)
	if !ok {
		return nil, launch.Fail(launch.ExitFailure, "Could not find settings file: %q", cfgPath)
	}

	cfg, err := config.NewConfig(fs, resolved)
	if err != nil {
		log.Error().Err(err).Str("path", resolved).Msg("failed to load settings")
		return nil, launch.Fail(launch.ExitFailure, "Could not load settings file: %q", resolved)
	}
	return cfg, nil
}

// Run executes one retroplay invocation: it builds the candidate list,
// selects content, resolves its core and runs RetroArch. Fatal conditions
// are returned as *launch.ExitError.
func Run(ctx context.Context, flags *Flags, args []string, env Env) error {
	env.setDefaults()
	r := &runner{flags: flags, env: env}

	if err := flags.Check(); err != nil {
		return launch.Fail(launch.ExitEnvironment, "%v", err)
	}

	cfg, err := LoadSettings(env.Fs, flags.Config)
	if err != nil {
		return err
	}

	if flags.Version {
		r.println(fmt.Sprintf("%s v%s", config.AppName, config.AppVersion))
		return nil
	}

	for _, key := range flags.App {
		r.println(config.MetaValue(key))
	}

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("invalid settings")
		return launch.Fail(launch.ExitFailure, "Invalid settings file: %q", cfg.Path())
	}
	ra := cfg.RetroArch()

	binPath, err := env.Exec.LookPath(ra.Bin)
	if err != nil {
		return launch.Fail(launch.ExitFailure, "Could not find RetroArch executable: %q", ra.Bin)
	}
	log.Debug().Str("bin", binPath).Msg("found retroarch")

	if err := r.addRules(cfg); err != nil {
		return err
	}

	raDir, _ := helpers.ResolvePath(ra.Dir)
	raConfig, _ := helpers.ResolvePath(ra.Config)
	raVars := config.ReadRetroArchVars(env.Fs, raConfig, config.RetroArchVarNames)

	if flags.ShowConfig {
		return r.showConfig(cfg, raDir, raConfig, raVars)
	}

	if isDir, _ := afero.IsDir(env.Fs, raDir); raDir == "" || !isDir {
		return launch.Fail(launch.ExitFailure, "Could not find RetroArch config folder: %q", raDir)
	}
	if len(raVars) == 0 {
		return launch.Fail(launch.ExitFailure, "Could not find or load RetroArch config: %q", raConfig)
	}

	var playlistFile string
	var playlistItems []string
	if flags.Playlist != "" {
		playlistFile, _ = playlists.ResolveFile(flags.Playlist, raVars)
		playlistItems = playlists.ItemPaths(env.Fs, playlistFile)
	}

	list := roms.Collect(roms.Sources{
		Args:        args,
		Games:       flags.Games,
		Playlist:    playlistItems,
		DirFiles:    roms.ScanDirs(env.Fs, flags.Dirs),
		Stdin:       env.Stdin,
		IgnoreStdin: flags.NoStdin,
	})

	list, err = roms.Transform(list, flags.TransformOptions(), cfg)
	if err != nil {
		return launch.Fail(launch.ExitEnvironment, "%v", err)
	}

	if flags.Ls {
		for _, p := range list {
			r.println(p)
		}
	}

	sel := &selection{coreDir: raVars[config.VarLibretroDirectory]}
	if len(list) > 0 {
		if choice, ok := roms.Select(ctx, env.Exec, list, roms.MenuKind(flags.Menu), flags.Index); ok {
			sel.content, _ = helpers.ResolvePath(choice)
			sel.realContent = sel.content
		}
	}

	overlay, err := r.applyPatch(sel)
	if overlay != nil {
		defer func() {
			if cerr := overlay.Close(); cerr != nil {
				log.Warn().Err(cerr).Msg("failed to clean up overlay")
			}
		}()
	}
	if err != nil {
		return err
	}

	if sel.content != "" {
		res := cores.Match(cfg, cores.Request{
			Path:     sel.content,
			Libretro: flags.Libretro,
			CoreID:   flags.CoreID,
			CoreDir:  sel.coreDir,
		})
		sel.coreID = res.CoreID
		sel.corePath = res.CorePath
	}

	if flags.Record != "" {
		builder := record.NewBuilder(env.Clock)
		sel.record, _ = builder.Path(flags.Record, sel.realContent, flags.RecordDisableMacros)
	}

	if err := r.check(sel, list, playlistFile); err != nil {
		return err
	}

	fullscreen := flags.Fullscreen || ra.ForceFullscreen
	cmd := launch.Command{
		Binary:      ra.Bin,
		ConfigPath:  raConfig,
		CorePath:    sel.corePath,
		ContentPath: sel.content,
		RecordPath:  sel.record,
		Fullscreen:  fullscreen,
	}
	if sel.patch.Supported() {
		cmd.PatchFile = sel.patch.File
		cmd.PatchFormat = sel.patch.Format
	}

	if !flags.NoRun {
		if err := cmd.Run(ctx, env.Exec); err != nil {
			log.Warn().Err(err).Msg("retroarch did not exit cleanly")
			return nil
		}
	} else {
		log.Info().Strs("argv", cmd.Argv()).Msg("not running retroarch")
	}

	if flags.What {
		r.println(sel.content)
	}
	if flags.Which {
		r.println(sel.corePath)
	}

	return nil
}

// selection is the state of the chosen content as it moves through the
// pipeline.
type selection struct {
	// content is the effective content path, which is the overlay link when
	// patched.
	content     string
	realContent string
	coreID      string
	corePath    string
	coreDir     string
	record      string
	patch       patch.Patch
	// patchFound is false when a patch was requested but didn't resolve.
	patchFound bool
}

// addRules stores --addfiletype and --addcore rules and saves the settings
// once if anything changed.
func (r *runner) addRules(cfg *config.Instance) error {
	changed := false

	if r.flags.AddFiletype != "" {
		if cfg.AddFiletypeRule(r.flags.AddFiletype) {
			changed = true
		} else {
			r.warn(fmt.Sprintf("Could not add filetype: %q", r.flags.AddFiletype))
		}
	}

	if r.flags.AddCore != "" {
		if cfg.AddCoreRule(r.flags.AddCore) {
			changed = true
		} else {
			r.warn(fmt.Sprintf("Could not add core: %q", r.flags.AddCore))
		}
	}

	if !changed {
		return nil
	}
	if err := cfg.Save(); err != nil {
		log.Error().Err(err).Msg("failed to save settings")
		return launch.Fail(launch.ExitFailure, "Could not save settings file: %q", cfg.Path())
	}
	return nil
}

// applyPatch resolves the requested patch and, for a supported format,
// replaces the selected content with an overlay link. The returned overlay
// directory must be closed by the caller.
func (r *runner) applyPatch(sel *selection) (*patch.OverlayDir, error) {
	if r.flags.NoPatch || r.flags.Patch == "" {
		return nil, nil
	}

	p, ok := patch.Resolve(r.env.Fs, r.flags.Patch)
	sel.patch = p
	sel.patchFound = ok && p.Exists
	if !sel.patchFound || !p.Supported() || sel.content == "" {
		return nil, nil
	}

	overlay, err := patch.NewOverlayDir(r.env.Fs)
	if err != nil {
		log.Error().Err(err).Msg("failed to create overlay directory")
		return nil, launch.Fail(launch.ExitEnvironment, "Could not create temporary directory")
	}

	link, err := overlay.Build(p, sel.content)
	if err != nil {
		log.Error().Err(err).Msg("failed to create overlay")
		return overlay, launch.Fail(launch.ExitFailure, "Could not create patch overlay: %q", sel.content)
	}
	sel.content = link
	return overlay, nil
}

// check applies the launch preconditions in order.
func (r *runner) check(sel *selection, list []string, playlistFile string) error {
	switch {
	case r.flags.Ls && len(list) == 0:
		return launch.Fail(launch.ExitFailure, "Could not find rom or playlist is empty: %q", playlistFile)
	case !r.exists(sel.content):
		return launch.Fail(launch.ExitFailure, "Could not find rom: %q", sel.content)
	case !r.env.IsBinary(sel.content):
		return launch.Fail(launch.ExitFailure, "Path to rom file is not in a binary format: %q", sel.content)
	case !r.exists(sel.corePath):
		if r.flags.Libretro != "" {
			return launch.Fail(launch.ExitFailure, "Could not find core path: %q", sel.corePath)
		}
		return launch.Fail(launch.ExitFailure, "Could not find core name and path: %q",
			sel.coreID+"="+sel.corePath)
	case r.flags.Patch != "" && !r.flags.NoPatch && !sel.patchFound:
		return launch.Fail(launch.ExitFailure, "Could not find patch: %q", r.flags.Patch)
	case sel.patchFound && !sel.patch.Supported():
		return launch.Fail(launch.ExitBadPatch, "Unsupported patch format: %q", sel.patch.File)
	default:
		return nil
	}
}

// IsExitError reports whether err carries a process exit code.
func IsExitError(err error) (*launch.ExitError, bool) {
	var exitErr *launch.ExitError
	if errors.As(err, &exitErr) {
		return exitErr, true
	}
	return nil, false
}

func indent(s string) string {
	lines := strings.SplitAfter(s, "\n")
	var b strings.Builder
	for _, line := range lines {
		if line == "" {
			continue
		}
		b.WriteString("\t")
		b.WriteString(line)
	}
	return b.String()
}
