// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package rewrite applies planned specifier replacements to files.
// Replacements are spliced over the immutable original content in
// descending byte-offset order, so applying one never invalidates the
// offsets of those still pending. Writes go through a temp file and
// rename in the target directory.
package rewrite

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// span is one byte-range replacement over the original content.
type span struct {
	start, end int
	text       string
}

// Splice produces the rewritten content for a set of replacements. The
// original string is never mutated in place; each replacement is applied
// over the result of the previous one, highest offset first.
func Splice(original string, replacements []Replacement) string {
	spans := make([]span, 0, len(replacements))
	for _, r := range replacements {
		if r.ByteStart < 0 || r.ByteEnd > len(original) || r.ByteStart > r.ByteEnd {
			continue
		}
		spans = append(spans, span{start: r.ByteStart, end: r.ByteEnd, text: r.NewText})
	}
	sort.Slice(spans, func(i, j int) bool {
		return spans[i].start > spans[j].start
	})

	content := original
	for _, sp := range spans {
		content = content[:sp.start] + sp.text + content[sp.end:]
	}
	return content
}

// Replacement is one byte-range substitution.
type Replacement struct {
	ByteStart int
	ByteEnd   int
	NewText   string
}

// WriteFile writes data to a temp file in the target directory, then
// renames it over the destination. Original permissions are preserved
// when the file already exists.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)

	perm := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	f, err := os.CreateTemp(dir, ".tsmove-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := f.Name()

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, perm); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	return nil
}

// MoveFile renames a file, creating the destination's parent directory
// first when absent.
func MoveFile(src, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", filepath.Dir(dest), err)
	}
	if err := os.Rename(src, dest); err != nil {
		return fmt.Errorf("moving %s to %s: %w", src, dest, err)
	}
	return nil
}
