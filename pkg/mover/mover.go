// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package mover defines the public interface for tsmove, a
// TypeScript/JavaScript file-move refactoring library that keeps import
// specifiers correct across the move.
package mover

import (
	"context"
	"errors"

	internalmover "github.com/petar-djukic/tsmove/internal/mover"
	"github.com/petar-djukic/tsmove/pkg/types"
)

// Error types for the Mover API.
var (
	ErrInvalidConfig = errors.New("invalid config")

	// Precondition errors, surfaced verbatim from a move.
	ErrSourceMissing     = internalmover.ErrSourceMissing
	ErrSourceUnsupported = internalmover.ErrSourceUnsupported
	ErrDestExists        = internalmover.ErrDestExists
)

// Config configures a Mover instance. Construction loads the project's
// path-alias and subpath-import configuration and discovers workspace
// packages; a Mover is tied to one project root.
type Config struct {
	ProjectRoot string // Project root directory (required)
}

// Options selects the optional behaviors of one move.
type Options struct {
	UpdateBarrels bool             // Propagate the move through re-exporting barrel files
	BarrelMode    types.BarrelMode // Simple or recursive propagation
	DryRun        bool             // Plan and report diffs without touching disk
	GitCommit     bool             // Commit the move when the project is a git repository
}

// FileDiff is one planned content change from a dry run.
type FileDiff struct {
	FilePath string
	Patch    string
}

// Result holds the outcome of a Mover.Move invocation.
type Result struct {
	SourcePath     string
	DestPath       string
	ModifiedFiles  []string   // Files whose content changed (rewrites + barrel updates)
	FilesChanged   int        // len(ModifiedFiles); the operation's success signal
	BarrelsTouched []string   // Files importing through an affected barrel
	Diffs          []FileDiff // Planned changes, dry run only
	Warnings       []string   // Non-fatal degradations during the run
}

// Mover moves source files within a project, rewriting every import
// that referenced them.
type Mover interface {
	// Move relocates sourcePath to destPath and rewrites affected
	// imports. Paths may be absolute or relative to the project root.
	// Precondition failures (missing source, unsupported file type,
	// occupied destination) abort before anything is touched.
	Move(ctx context.Context, sourcePath, destPath string, opts Options) (*Result, error)
}
