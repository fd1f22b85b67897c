// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package scan finds every project file whose imports resolve to a given
// file. It walks the tree, extracts references through the parser, and
// resolves each one through the coordinator.
package scan

import (
	"context"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/petar-djukic/tsmove/internal/parse"
	"github.com/petar-djukic/tsmove/internal/resolve"
	"github.com/petar-djukic/tsmove/pkg/types"
)

// skipDirs are directory names excluded from every source walk.
var skipDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
}

// Scanner locates references to a moved file across the project.
type Scanner struct {
	Root        string
	Coordinator *resolve.Coordinator
	Logger      *log.Logger
}

// New creates a scanner rooted at the project directory.
func New(root string, coord *resolve.Coordinator, logger *log.Logger) *Scanner {
	if logger == nil {
		logger = log.Default()
	}
	return &Scanner{Root: root, Coordinator: coord, Logger: logger}
}

// Affected returns one FileRewrite per file holding at least one
// reference that resolves to movedPath. Only matching references are
// listed; a file's unrelated imports stay untouched. Files that fail to
// parse are skipped with a warning, never aborting the scan. Each file's
// parse results are discarded as soon as its references are extracted.
func (s *Scanner) Affected(ctx context.Context, movedPath string) ([]types.FileRewrite, error) {
	var rewrites []types.FileRewrite

	err := s.walkSources(func(path string) error {
		if resolve.SamePath(path, movedPath) {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		content, err := os.ReadFile(path)
		if err != nil {
			s.Logger.Warn("skipping unreadable file", "file", path, "error", err)
			return nil
		}

		statements, err := parse.Extract(ctx, path, content)
		if err != nil {
			s.Logger.Warn("skipping unparseable file", "file", path, "error", err)
			return nil
		}

		var matched []types.PlannedReference
		for _, ref := range parse.References(statements) {
			abs, ok := s.Coordinator.Resolve(ref.Specifier, path)
			if ok && resolve.SamePath(abs, movedPath) {
				matched = append(matched, types.PlannedReference{ImportReference: ref})
			}
		}
		if len(matched) == 0 {
			return nil
		}

		rewrites = append(rewrites, types.FileRewrite{
			FilePath:        path,
			OriginalContent: string(content),
			References:      matched,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rewrites, nil
}

// walkSources visits every recognized source file under the root,
// skipping excluded directories.
func (s *Scanner) walkSources(visit func(path string) error) error {
	return filepath.Walk(s.Root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip files we cannot stat.
		}
		if info.IsDir() {
			if skipDirs[filepath.Base(path)] {
				return filepath.SkipDir
			}
			return nil
		}
		if !parse.SupportedFile(path) {
			return nil
		}
		return visit(path)
	})
}

// WalkSources exposes the source walk for other components (barrel
// analysis shares the same candidate set and exclusions).
func (s *Scanner) WalkSources(visit func(path string) error) error {
	return s.walkSources(visit)
}
