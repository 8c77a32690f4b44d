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
	"fmt"
	"strings"

	"github.com/ZaparooProject/retroplay/pkg/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
)

// showConfig prints where configuration is read from and what it holds.
func (r *runner) showConfig(
	cfg *config.Instance,
	raDir string,
	raConfig string,
	raVars map[string]string,
) error {
	heading := lipgloss.NewRenderer(r.env.Stdout).NewStyle().Bold(true)

	var b strings.Builder
	b.WriteString(heading.Render("CURRENT ACTIVE CONFIG FILES") + "\n\n")
	fmt.Fprintf(&b, "\tSettings file: %q\n", cfg.Path())
	fmt.Fprintf(&b, "\tRetroArch directory: %q\n", raDir)
	fmt.Fprintf(&b, "\tRetroArch config file: %q\n", raConfig)
	b.WriteString("\n")

	b.WriteString(heading.Render("RETROARCH CONFIG (partially) CONTENT") + "\n\n")
	for _, name := range config.RetroArchVarNames {
		if v, ok := raVars[name]; ok {
			fmt.Fprintf(&b, "\t%s: %q\n", name, v)
		}
	}
	b.WriteString("\n")

	b.WriteString(heading.Render("SETTINGS FILE CONTENT") + "\n\n")
	raw, err := cfg.Raw()
	if err != nil {
		log.Warn().Err(err).Msg("failed to read settings for display")
	}
	b.WriteString(indent(string(raw)))

	_, _ = fmt.Fprint(r.env.Stdout, b.String())
	return nil
}
