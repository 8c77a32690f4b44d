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
	"path/filepath"
	"strings"

	"github.com/ZaparooProject/retroplay/pkg/helpers"
	"github.com/rs/zerolog/log"
	"gopkg.in/ini.v1"
)

const (
	CoreSuffix = "_libretro"
	CoreExt    = ".so"
)

// FiletypeRule maps a file pattern to a core identifier. Patterns containing
// a path separator are matched against the whole path, others are extension
// patterns like "*.sfc".
type FiletypeRule struct {
	Pattern string
	CoreID  string
}

// IsPathRule reports whether the rule pattern is a full path pattern.
func (r FiletypeRule) IsPathRule() bool {
	return strings.Contains(r.Pattern, "/")
}

// CoreRule maps a core identifier to a core filename.
type CoreRule struct {
	CoreID   string
	CoreName string
}

func (c *Instance) sectionKeys(name string) []*ini.Key {
	sec, err := c.file.GetSection(name)
	if err != nil {
		return nil
	}
	return sec.Keys()
}

// FiletypeRules returns all filetype rules in declaration order.
func (c *Instance) FiletypeRules() []FiletypeRule {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filetypeRules()
}

func (c *Instance) filetypeRules() []FiletypeRule {
	keys := c.sectionKeys(SectionFiletype)
	rules := make([]FiletypeRule, 0, len(keys))
	for _, k := range keys {
		rules = append(rules, FiletypeRule{Pattern: k.Name(), CoreID: k.Value()})
	}
	return rules
}

// ruleMatcher is a filetype rule with its pattern lowercased and, for path
// rules, resolved on disk.
type ruleMatcher struct {
	rule    FiletypeRule
	pattern string
}

// prepareRules resolves path rules once. Path rules without a glob match
// are dropped.
func prepareRules(rules []FiletypeRule) []ruleMatcher {
	matchers := make([]ruleMatcher, 0, len(rules))
	for _, rule := range rules {
		pattern := rule.Pattern
		if rule.IsPathRule() {
			resolved, ok := helpers.ResolveGlob(pattern)
			if !ok {
				continue
			}
			pattern = resolved
		}
		matchers = append(matchers, ruleMatcher{rule: rule, pattern: strings.ToLower(pattern)})
	}
	return matchers
}

func matchRules(matchers []ruleMatcher, path string) (string, bool) {
	lp := strings.ToLower(path)

	for i := len(matchers) - 1; i >= 0; i-- {
		m := matchers[i]
		if helpers.MatchPattern(m.pattern, lp) {
			log.Debug().
				Str("path", path).
				Str("pattern", m.rule.Pattern).
				Str("core", m.rule.CoreID).
				Msg("matched filetype rule")
			return m.rule.CoreID, true
		}
	}

	return "", false
}

// ruleMatchers returns the prepared filetype rules, building them on first
// use.
func (c *Instance) ruleMatchers() []ruleMatcher {
	c.mu.RLock()
	matchers := c.matchers
	c.mu.RUnlock()
	if matchers != nil {
		return matchers
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.matchers == nil {
		c.matchers = prepareRules(c.filetypeRules())
	}
	return c.matchers
}

// MatchCore returns the core identifier for a content path. See
// MatchFiletypeRules. Path rules are globbed once and reused until the rules
// change.
func (c *Instance) MatchCore(path string) (string, bool) {
	return matchRules(c.ruleMatchers(), path)
}

// MatchFiletypeRules returns the core identifier of the most recently
// declared rule matching path. Matching is case-insensitive. A path rule is
// first expanded and globbed on disk, and its first match becomes the
// pattern; path rules without a match are skipped.
func MatchFiletypeRules(rules []FiletypeRule, path string) (string, bool) {
	return matchRules(prepareRules(rules), path)
}

// CoreName returns the core filename configured for a core identifier.
func (c *Instance) CoreName(coreID string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	sec, err := c.file.GetSection(SectionCore)
	if err != nil || coreID == "" || !sec.HasKey(coreID) {
		return "", false
	}
	return sec.Key(coreID).Value(), true
}

// ResolveCore looks up the core filename for a core identifier and resolves
// it under coreDir.
func (c *Instance) ResolveCore(coreID, coreDir string) (string, bool) {
	name, ok := c.CoreName(coreID)
	if !ok {
		log.Debug().Str("core", coreID).Msg("no core rule for identifier")
		return "", false
	}
	return CorePath(name, coreDir)
}

// CoreFilename completes a core name with the "_libretro" suffix and ".so"
// extension when they are missing.
func CoreFilename(name string) string {
	if !strings.Contains(name, CoreSuffix) {
		name += CoreSuffix + CoreExt
	}
	if !strings.HasSuffix(name, CoreExt) {
		name += CoreExt
	}
	return name
}

// CorePath resolves a core name to its full path inside coreDir.
func CorePath(name, coreDir string) (string, bool) {
	if name == "" {
		return "", false
	}
	return helpers.ResolvePath(filepath.Join(coreDir, CoreFilename(name)))
}

// splitRule parses "KEY=VALUE" or "KEY:VALUE".
func splitRule(rule string) (string, string, bool) {
	rule = strings.ReplaceAll(rule, ":", "=")
	parts := strings.Split(rule, "=")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// patternSuffixes returns all dot-delimited suffixes of a pattern's final
// element joined together, e.g. ".wide.md" for "*.wide.md". Leading dots
// don't start a suffix.
func patternSuffixes(pattern string) string {
	name := filepath.Base(pattern)
	if strings.HasSuffix(name, ".") {
		return ""
	}
	parts := strings.Split(strings.TrimLeft(name, "."), ".")
	if len(parts) < 2 {
		return ""
	}
	return "." + strings.Join(parts[1:], ".")
}

// ParseFiletypeRule parses "PATTERN=CORE_ID" (":" is also accepted). A
// pattern without a path separator is normalized to an extension pattern:
// "sfc", ".sfc" and "*.sfc" all become "*.sfc".
func ParseFiletypeRule(rule string) (FiletypeRule, bool) {
	pattern, coreID, ok := splitRule(rule)
	if !ok {
		return FiletypeRule{}, false
	}

	if strings.Contains(pattern, "/") {
		return FiletypeRule{Pattern: pattern, CoreID: coreID}, true
	}

	suffixes := patternSuffixes(pattern)
	if suffixes == "" {
		suffixes = pattern
		if !strings.HasPrefix(suffixes, ".") {
			suffixes = "." + suffixes
		}
	}
	if !strings.Contains(suffixes, "*") {
		suffixes = "*" + suffixes
	}

	return FiletypeRule{Pattern: suffixes, CoreID: coreID}, true
}

// ParseCoreRule parses "CORE_ID=CORE_NAME" (":" is also accepted).
func ParseCoreRule(rule string) (CoreRule, bool) {
	coreID, name, ok := splitRule(rule)
	if !ok {
		return CoreRule{}, false
	}
	return CoreRule{CoreID: coreID, CoreName: name}, true
}

// AddFiletypeRule parses and stores a filetype rule. An existing pattern
// keeps its position and gets the new core identifier. Changes are not
// saved to disk.
func (c *Instance) AddFiletypeRule(rule string) bool {
	ft, ok := ParseFiletypeRule(rule)
	if !ok {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.file.Section(SectionFiletype).NewKey(ft.Pattern, ft.CoreID); err != nil {
		log.Warn().Err(err).Str("rule", rule).Msg("failed to add filetype rule")
		return false
	}
	c.matchers = nil
	log.Info().Str("pattern", ft.Pattern).Str("core", ft.CoreID).Msg("added filetype rule")
	return true
}

// AddCoreRule parses and stores a core rule. Changes are not saved to disk.
func (c *Instance) AddCoreRule(rule string) bool {
	cr, ok := ParseCoreRule(rule)
	if !ok {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.file.Section(SectionCore).NewKey(cr.CoreID, cr.CoreName); err != nil {
		log.Warn().Err(err).Str("rule", rule).Msg("failed to add core rule")
		return false
	}
	log.Info().Str("core", cr.CoreID).Str("name", cr.CoreName).Msg("added core rule")
	return true
}
