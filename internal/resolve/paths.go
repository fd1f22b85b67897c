// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package resolve implements specifier resolution: the matcher, the four
// resolution strategies (relative, path alias, subpath import, workspace
// package), and the coordinator that tries them in priority order.
package resolve

import (
	"path/filepath"
	"strings"
)

// NormalizePath converts a path to forward slashes and lower case so two
// spellings of the same file compare equal on case-insensitive
// filesystems and across platform separators.
func NormalizePath(p string) string {
	return strings.ToLower(filepath.ToSlash(p))
}

// SamePath reports whether two paths refer to the same file under
// slash-normalized, case-insensitive comparison. Every path comparison in
// tsmove goes through this (or hasPathPrefix) so a match is never missed
// because of separator or case differences.
func SamePath(a, b string) bool {
	return NormalizePath(a) == NormalizePath(b)
}

// hasPathPrefix reports whether path is dir itself or lives underneath it.
func hasPathPrefix(path, dir string) bool {
	p := NormalizePath(path)
	d := strings.TrimSuffix(NormalizePath(dir), "/")
	return p == d || strings.HasPrefix(p, d+"/")
}

// slashRel returns path relative to base with forward slashes.
func slashRel(base, path string) (string, bool) {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
