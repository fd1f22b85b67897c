// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package resolve

import (
	"path/filepath"
	"strings"

	"github.com/petar-djukic/tsmove/pkg/types"
)

// subpathMarker prefixes package.json subpath-import keys.
const subpathMarker = "#"

// SubpathStrategy resolves "#"-prefixed specifiers through the
// subpath-imports table of the importing file's own package.
type SubpathStrategy struct {
	// Rules in manifest load order. A file's applicable set is the one
	// whose PackageRoot contains the file; when roots overlap the first
	// in load order wins. That first-match rule mirrors the discovery
	// walk and is a documented ambiguity, deliberately not resolved to
	// nearest-ancestor.
	Rules []types.SubpathImportRule
}

var _ Strategy = (*SubpathStrategy)(nil)

func (s *SubpathStrategy) Name() string { return "subpath" }

// ruleSetFor returns the subpath rules applicable to a file, keyed by the
// first loaded package root that contains it.
func (s *SubpathStrategy) ruleSetFor(fromFile string) []types.SubpathImportRule {
	var root string
	for _, r := range s.Rules {
		if hasPathPrefix(fromFile, r.PackageRoot) {
			root = r.PackageRoot
			break
		}
	}
	if root == "" {
		return nil
	}
	var set []types.SubpathImportRule
	for _, r := range s.Rules {
		if r.PackageRoot == root {
			set = append(set, r)
		}
	}
	return set
}

func (s *SubpathStrategy) Resolve(specifier, fromFile string) (string, bool) {
	if !strings.HasPrefix(specifier, subpathMarker) {
		return "", false
	}
	for _, rule := range s.ruleSetFor(fromFile) {
		if !MatchesPattern(specifier, rule.Key) {
			continue
		}
		remainder := PatternRemainder(specifier, rule.Key)
		for _, value := range rule.Values {
			target := value
			if hasWildcard(rule.Key) {
				target = strings.Replace(value, Wildcard, remainder, 1)
			}
			base := filepath.Join(rule.PackageRoot, filepath.FromSlash(target))
			if abs, ok := ProbeFile(base); ok {
				return abs, true
			}
		}
	}
	return "", false
}

// Recalculate preserves only wildcard-to-wildcard mappings. Exact-key
// entries are not re-derived across a move; they fall through to the
// relative fallback. Known gap, kept as-is.
func (s *SubpathStrategy) Recalculate(oldSpecifier, fromFile, newPath string) (string, bool) {
	if !strings.HasPrefix(oldSpecifier, subpathMarker) {
		return "", false
	}
	for _, rule := range s.ruleSetFor(fromFile) {
		if !hasWildcard(rule.Key) || !MatchesPattern(oldSpecifier, rule.Key) {
			continue
		}
		rel, ok := slashRel(rule.PackageRoot, newPath)
		if !ok || strings.HasPrefix(rel, "..") {
			continue
		}
		for _, value := range rule.Values {
			if !hasWildcard(value) {
				continue
			}
			star := strings.Index(value, Wildcard)
			prefix := strings.TrimPrefix(value[:star], "./")
			suffix := value[star+1:] // usually ".js" or ".jsx"
			if !strings.HasPrefix(NormalizePath(rel), NormalizePath(prefix)) {
				continue
			}
			remainder := rel[len(prefix):]
			remainder = StripSourceExtension(remainder)
			remainder = strings.TrimSuffix(remainder, StripSourceExtension(suffix))
			keyPrefix := strings.TrimSuffix(rule.Key, Wildcard)
			return keyPrefix + remainder, true
		}
	}
	return "", false
}

func (s *SubpathStrategy) Classify(specifier, fromFile string) (types.ImportKind, bool) {
	if !strings.HasPrefix(specifier, subpathMarker) {
		return 0, false
	}
	for _, rule := range s.ruleSetFor(fromFile) {
		if MatchesPattern(specifier, rule.Key) {
			return types.KindSubpath, true
		}
	}
	return 0, false
}
