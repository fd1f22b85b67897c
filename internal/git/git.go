// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package git records completed moves as commits in the project's
// repository. It is an optional surface: a project that is not a git
// repository simply runs without it.
package git

import (
	"errors"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
)

// ErrNoGit is returned when the project root is not a git repository.
var ErrNoGit = errors.New("not a git repository")

// ErrDirtyWorkTree is returned when uncommitted changes predate the move
// and committing would fold them into the move commit.
var ErrDirtyWorkTree = errors.New("uncommitted changes exist")

// Config configures git integration.
type Config struct {
	WorkDir string // Repository working directory
}

// Repo wraps a go-git repository for the operations we need.
type Repo struct {
	repo *gogit.Repository
	cfg  Config
}

// Open opens an existing git repository at the configured work
// directory. Returns ErrNoGit if the directory is not a repository.
func Open(cfg Config) (*Repo, error) {
	r, err := gogit.PlainOpen(cfg.WorkDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoGit, err)
	}
	return &Repo{repo: r, cfg: cfg}, nil
}

// IsDirty returns true if the working tree has uncommitted changes
// (either staged or unstaged).
func (r *Repo) IsDirty() (bool, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("getting worktree: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("getting status: %w", err)
	}

	return !status.IsClean(), nil
}
