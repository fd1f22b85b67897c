// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package resolve

import (
	"os"
	"path/filepath"
	"strings"
)

// SourceExtensions lists the recognized source-file extensions, in probe
// order.
var SourceExtensions = []string{".ts", ".tsx", ".js", ".jsx"}

// HasSourceExtension reports whether path ends in a recognized source
// extension.
func HasSourceExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range SourceExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// StripSourceExtension removes a recognized source extension from a
// slash-separated path. Paths with other extensions are returned
// unchanged.
func StripSourceExtension(p string) string {
	if HasSourceExtension(p) {
		return strings.TrimSuffix(p, filepath.Ext(p))
	}
	return p
}

// ProbeFile maps a resolved base path to an existing file, probing in
// order: the exact path; the path with each recognized extension
// appended; for a path already carrying a recognized extension, the
// path with that extension substituted (ESM specifiers write .js for
// files authored as .ts); the path as a directory holding an index file
// with each recognized extension. Returns false when nothing exists,
// which callers treat as a normal not-applicable outcome.
func ProbeFile(base string) (string, bool) {
	if isFile(base) {
		return base, true
	}
	for _, ext := range SourceExtensions {
		if p := base + ext; isFile(p) {
			return p, true
		}
	}
	if HasSourceExtension(base) {
		stripped := strings.TrimSuffix(base, filepath.Ext(base))
		for _, ext := range SourceExtensions {
			if p := stripped + ext; isFile(p) {
				return p, true
			}
		}
	}
	for _, ext := range SourceExtensions {
		if p := filepath.Join(base, "index"+ext); isFile(p) {
			return p, true
		}
	}
	return "", false
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
