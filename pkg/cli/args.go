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
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// multiValueFlags take every following word up to the next flag. "+" flags
// need at least one value, "*" flags may have none.
var multiValueFlags = map[string]string{
	"game":         "+",
	"dir":          "+",
	"filter":       "+",
	"filter-names": "+",
	"filter-ext":   "+",
	"app":          "*",
}

// ExpandArgs rewrites multi-value flags so pflag sees one flag per value:
// "-g a.sfc b.sfc" becomes "--game=a.sfc --game=b.sfc". Values of other
// flags and everything after "--" are left alone.
func ExpandArgs(fs *pflag.FlagSet, args []string) ([]string, error) {
	out := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return append(out, args[i:]...), nil
		}

		flag := lookupStandalone(fs, arg)
		if flag == nil {
			out = append(out, arg)
			continue
		}

		mode, multi := multiValueFlags[flag.Name]
		if !multi {
			out = append(out, arg)
			// keep a value that looks like a flag away from the scan
			if flag.NoOptDefVal == "" && i+1 < len(args) {
				i++
				out = append(out, args[i])
			}
			continue
		}

		var values []string
		for i+1 < len(args) && !isFlagWord(args[i+1]) {
			i++
			values = append(values, args[i])
		}
		if len(values) == 0 && mode == "+" {
			return nil, fmt.Errorf("flag needs an argument: %s", arg)
		}
		for _, v := range values {
			out = append(out, "--"+flag.Name+"="+v)
		}
	}

	return out, nil
}

// lookupStandalone returns the flag for "--name" or "-n" without an
// attached value.
func lookupStandalone(fs *pflag.FlagSet, arg string) *pflag.Flag {
	switch {
	case strings.HasPrefix(arg, "--") && len(arg) > 2:
		if strings.Contains(arg, "=") {
			return nil
		}
		return fs.Lookup(arg[2:])
	case len(arg) == 2 && arg[0] == '-' && arg[1] != '-':
		return fs.ShorthandLookup(arg[1:])
	default:
		return nil
	}
}

// isFlagWord reports whether a word starts a new flag. A lone "-" and
// negative numbers are values.
func isFlagWord(s string) bool {
	if len(s) < 2 || s[0] != '-' {
		return false
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return false
	}
	return true
}
