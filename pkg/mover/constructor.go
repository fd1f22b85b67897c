// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package mover

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/petar-djukic/tsmove/internal/barrel"
	"github.com/petar-djukic/tsmove/internal/config"
	"github.com/petar-djukic/tsmove/internal/git"
	internalmover "github.com/petar-djukic/tsmove/internal/mover"
	"github.com/petar-djukic/tsmove/internal/resolve"
	"github.com/petar-djukic/tsmove/internal/scan"
	"github.com/petar-djukic/tsmove/pkg/types"
)

// New validates the config, loads the project's resolution
// configuration once, and returns a ready-to-use Mover. Every move made
// through the instance resolves against this configuration snapshot.
func New(cfg Config) (Mover, error) {
	return NewWithLogger(cfg, log.Default())
}

// NewWithLogger is New with an explicit logger.
func NewWithLogger(cfg Config, logger *log.Logger) (Mover, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	root, err := filepath.Abs(cfg.ProjectRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	coord := resolve.NewCoordinator(
		config.LoadPathAliasRules(root, logger),
		config.LoadSubpathImportRules(root, logger),
		config.DiscoverWorkspacePackages(root, logger),
		logger,
	)
	scanner := scan.New(root, coord, logger)

	// Git is optional; outside a repository the mover runs without it.
	var repo *git.Repo
	if r, err := git.Open(git.Config{WorkDir: root}); err == nil {
		repo = r
	}

	runner := internalmover.NewRunner(internalmover.Deps{
		ProjectRoot: root,
		Scanner:     scanner,
		Propagator:  barrel.New(scanner.WalkSources, logger),
		Coordinator: coord,
		Repo:        repo,
		Logger:      logger,
	})

	return &moverAdapter{runner: runner, root: root}, nil
}

// moverAdapter adapts internal/mover.Runner to the public Mover
// interface.
type moverAdapter struct {
	runner *internalmover.Runner
	root   string
}

func (a *moverAdapter) Move(ctx context.Context, sourcePath, destPath string, opts Options) (*Result, error) {
	op := types.MoveOperation{
		SourcePath: a.absolute(sourcePath),
		DestPath:   a.absolute(destPath),
	}

	ir, err := a.runner.Run(ctx, op, internalmover.Options{
		UpdateBarrels: opts.UpdateBarrels,
		BarrelMode:    opts.BarrelMode,
		DryRun:        opts.DryRun,
		GitCommit:     opts.GitCommit,
	})
	if ir == nil {
		return &Result{}, err
	}

	result := &Result{
		SourcePath:     ir.SourcePath,
		DestPath:       ir.DestPath,
		ModifiedFiles:  ir.ModifiedFiles,
		FilesChanged:   ir.FilesChanged(),
		BarrelsTouched: ir.BarrelsTouched,
		Warnings:       ir.Warnings,
	}
	for _, d := range ir.Diffs {
		result.Diffs = append(result.Diffs, FileDiff{FilePath: d.FilePath, Patch: d.Patch})
	}
	return result, err
}

// absolute resolves a caller-supplied path against the project root.
func (a *moverAdapter) absolute(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(a.root, path)
}

// validateConfig checks that required fields are present.
func validateConfig(cfg Config) error {
	if cfg.ProjectRoot == "" {
		return fmt.Errorf("ProjectRoot is required")
	}
	if info, err := os.Stat(cfg.ProjectRoot); err != nil || !info.IsDir() {
		return fmt.Errorf("ProjectRoot %q does not exist or is not a directory", cfg.ProjectRoot)
	}
	return nil
}
