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

import "runtime"

var AppVersion = "0.2"

const (
	AppName    = "retroplay"
	AppDate    = "October, 2026"
	AppAuthor  = "The Zaparoo Project Contributors"
	AppLicense = "GPL-3.0-or-later"
)

// MetaKeys lists the keys accepted by MetaValue, in display order.
var MetaKeys = []string{"name", "version", "date", "author", "license", "goversion"}

// MetaValue returns program information for a key, or an empty string for
// an unknown key.
func MetaValue(key string) string {
	switch key {
	case "name":
		return AppName
	case "version":
		return AppVersion
	case "date":
		return AppDate
	case "author":
		return AppAuthor
	case "license":
		return AppLicense
	case "goversion":
		return runtime.Version()
	default:
		return ""
	}
}
