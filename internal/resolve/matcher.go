// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package resolve

import "strings"

// Wildcard is the pattern marker used by tsconfig paths keys and
// package.json subpath-import keys.
const Wildcard = "*"

// MatchesPattern reports whether a specifier matches a raw alias/subpath
// pattern. A pattern ending in the wildcard matches any specifier that
// starts with the pattern minus the wildcard; a pattern without a
// wildcard matches only on exact equality.
//
// Path aliases and subpath imports share this single implementation so
// their matching semantics cannot drift apart.
func MatchesPattern(specifier, pattern string) bool {
	if prefix, ok := strings.CutSuffix(pattern, Wildcard); ok {
		return strings.HasPrefix(specifier, prefix)
	}
	return specifier == pattern
}

// PatternRemainder returns the suffix of specifier after the matched
// prefix of a wildcard pattern, or the empty string for exact patterns.
// Call only after MatchesPattern returned true.
func PatternRemainder(specifier, pattern string) string {
	if prefix, ok := strings.CutSuffix(pattern, Wildcard); ok {
		return strings.TrimPrefix(specifier, prefix)
	}
	return ""
}

// hasWildcard reports whether a raw pattern ends in the wildcard marker.
func hasWildcard(pattern string) bool {
	return strings.HasSuffix(pattern, Wildcard)
}
