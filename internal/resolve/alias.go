// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package resolve

import (
	"path/filepath"
	"strings"

	"github.com/petar-djukic/tsmove/pkg/types"
)

// AliasStrategy resolves specifiers through tsconfig path mappings.
// Rules keep loader order; the first rule whose substitution probes to an
// existing file wins, which matches how the compiler tries a paths
// entry's candidate targets in sequence.
type AliasStrategy struct {
	Rules []types.PathAliasRule
}

var _ Strategy = (*AliasStrategy)(nil)

func (s *AliasStrategy) Name() string { return "alias" }

func (s *AliasStrategy) Resolve(specifier, fromFile string) (string, bool) {
	for _, rule := range s.Rules {
		if !MatchesPattern(specifier, rule.RawAlias) {
			continue
		}
		target := rule.TargetPattern + PatternRemainder(specifier, rule.RawAlias)
		base := filepath.Join(rule.BasePath, filepath.FromSlash(target))
		if abs, ok := ProbeFile(base); ok {
			return abs, true
		}
	}
	return "", false
}

// Recalculate keeps the alias when the destination still lies inside the
// originally matched rule's target region. When the move left that
// region, every loaded wildcard rule is consulted, so a file moving into
// a different aliased region picks up that region's alias instead of
// falling all the way back to a relative path.
func (s *AliasStrategy) Recalculate(oldSpecifier, fromFile, newPath string) (string, bool) {
	matched := false
	for _, rule := range s.Rules {
		if !MatchesPattern(oldSpecifier, rule.RawAlias) {
			continue
		}
		matched = true
		if spec, ok := spliceAlias(rule, newPath); ok {
			return spec, true
		}
	}
	if !matched {
		return "", false
	}

	// The original region no longer contains the file; try every other
	// wildcard rule's region.
	for _, rule := range s.Rules {
		if !hasWildcard(rule.RawAlias) {
			continue
		}
		if spec, ok := spliceAlias(rule, newPath); ok {
			return spec, true
		}
	}
	return "", false
}

// spliceAlias rebuilds an aliased specifier for newPath under one rule,
// or reports that newPath is outside the rule's target region.
func spliceAlias(rule types.PathAliasRule, newPath string) (string, bool) {
	rel, ok := slashRel(rule.BasePath, newPath)
	if !ok || strings.HasPrefix(rel, "..") {
		return "", false
	}

	if !hasWildcard(rule.RawAlias) {
		// Exact alias: it still points at the file only if the target
		// pattern probes to the same path, extension aside.
		if SamePath(StripSourceExtension(rel), StripSourceExtension(rule.TargetPattern)) {
			return rule.AliasPattern, true
		}
		return "", false
	}

	if !strings.HasPrefix(NormalizePath(rel), NormalizePath(rule.TargetPattern)) {
		return "", false
	}
	remainder := rel[len(rule.TargetPattern):]
	return rule.AliasPattern + StripSourceExtension(remainder), true
}

func (s *AliasStrategy) Classify(specifier, fromFile string) (types.ImportKind, bool) {
	for _, rule := range s.Rules {
		if MatchesPattern(specifier, rule.RawAlias) {
			return types.KindAlias, true
		}
	}
	return 0, false
}
