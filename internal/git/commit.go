// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package git

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const (
	authorName  = "tsmove"
	authorEmail = "noreply@tsmove"
)

// CommitMove stages the moved file's old and new paths plus every
// rewritten file, and commits them with a generated message. All paths
// are absolute; they are staged relative to the repository root. The
// working tree must be clean before the move for the commit to capture
// exactly the move's changes.
func (r *Repo) CommitMove(sourcePath, destPath string, rewrittenFiles []string) error {
	wt, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("getting worktree: %w", err)
	}

	staged := append([]string{sourcePath, destPath}, rewrittenFiles...)
	for _, f := range staged {
		rel, err := filepath.Rel(r.cfg.WorkDir, f)
		if err != nil {
			return fmt.Errorf("staging %s: %w", f, err)
		}
		// Add tolerates a deleted path (the pre-move source), staging
		// its removal.
		if _, err := wt.Add(filepath.ToSlash(rel)); err != nil {
			return fmt.Errorf("staging %s: %w", rel, err)
		}
	}

	msg := moveMessage(r.cfg.WorkDir, sourcePath, destPath, rewrittenFiles)

	_, err = wt.Commit(msg, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  authorName,
			Email: authorEmail,
			When:  time.Now(),
		},
	})
	if err != nil {
		return fmt.Errorf("committing: %w", err)
	}

	return nil
}

// moveMessage builds a conventional refactor commit for the move, with
// the rewritten files listed in the body.
func moveMessage(workDir, sourcePath, destPath string, rewrittenFiles []string) string {
	src := relOrBase(workDir, sourcePath)
	dst := relOrBase(workDir, destPath)

	msg := fmt.Sprintf("refactor: move %s to %s", src, dst)
	if len(rewrittenFiles) > 0 {
		var buf strings.Builder
		buf.WriteString("\n\nUpdated imports in:\n")
		for _, f := range rewrittenFiles {
			buf.WriteString("- " + relOrBase(workDir, f) + "\n")
		}
		msg += strings.TrimRight(buf.String(), "\n") + "\n"
	}
	return msg
}

func relOrBase(workDir, path string) string {
	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		return filepath.Base(path)
	}
	return filepath.ToSlash(rel)
}
