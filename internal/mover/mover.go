// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package mover implements the move orchestrator, wiring all internal
// components to execute one file move: validate, scan, plan, analyze
// barrels, mutate, apply barrel updates, report.
package mover

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/petar-djukic/tsmove/internal/barrel"
	"github.com/petar-djukic/tsmove/internal/git"
	"github.com/petar-djukic/tsmove/internal/parse"
	"github.com/petar-djukic/tsmove/internal/resolve"
	"github.com/petar-djukic/tsmove/internal/rewrite"
	"github.com/petar-djukic/tsmove/internal/scan"
	"github.com/petar-djukic/tsmove/pkg/types"
)

// Validation errors for a move. Wrapped with path context; callers test
// with errors.Is.
var (
	ErrSourceMissing     = errors.New("source file does not exist")
	ErrSourceUnsupported = errors.New("source is not a recognized source file")
	ErrDestExists        = errors.New("destination already exists")
)

// Options selects the optional behaviors of one run.
type Options struct {
	UpdateBarrels bool
	BarrelMode    types.BarrelMode
	DryRun        bool
	GitCommit     bool
}

// FileDiff is one planned content change, rendered as a patch for
// dry-run reporting.
type FileDiff struct {
	FilePath string
	Patch    string
}

// RunResult holds the outcome of a Runner.Run invocation. This is the
// internal result type; pkg/mover converts it to the public Result.
type RunResult struct {
	SourcePath string
	DestPath   string
	// ModifiedFiles lists every file whose content changed: import
	// rewrites plus barrel updates. The moved file itself is not
	// counted.
	ModifiedFiles []string
	// BarrelsTouched lists files importing through an affected barrel.
	// In simple mode they need no change but are part of the reported
	// blast radius.
	BarrelsTouched []string
	// Diffs carries the planned changes when running in preview mode.
	Diffs    []FileDiff
	Warnings []string
}

// FilesChanged is the operation's success signal: the number of files
// whose content changed.
func (r *RunResult) FilesChanged() int {
	return len(r.ModifiedFiles)
}

// Deps holds injected dependencies for the runner.
type Deps struct {
	ProjectRoot string
	Scanner     *scan.Scanner
	Propagator  *barrel.Propagator
	Coordinator *resolve.Coordinator
	Repo        *git.Repo // nil when the project is not a git repository
	Logger      *log.Logger
}

// Runner orchestrates the move lifecycle.
type Runner struct {
	deps Deps
}

// NewRunner creates a Runner with the given dependencies.
func NewRunner(deps Deps) *Runner {
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}
	return &Runner{deps: deps}
}

// Run executes one move end to end. The sequence is fixed: validate,
// scan the pre-move tree, plan every rewrite, analyze barrels (still
// pre-move), rename, write rewrites, apply barrel updates, report.
// Per-file write failures are logged and the run continues; a failed
// rename aborts. In dry-run mode the plan is rendered as diffs and
// nothing on disk changes.
func (r *Runner) Run(ctx context.Context, op types.MoveOperation, opts Options) (*RunResult, error) {
	result := &RunResult{SourcePath: op.SourcePath, DestPath: op.DestPath}

	// Step 1: Validate.
	if err := r.validate(op, opts); err != nil {
		return result, err
	}
	// A requested commit needs a clean tree before the move, so the
	// commit captures exactly the move's changes.
	if opts.GitCommit && !opts.DryRun && r.deps.Repo != nil {
		dirty, err := r.deps.Repo.IsDirty()
		if err != nil {
			return result, fmt.Errorf("checking work tree: %w", err)
		}
		if dirty {
			return result, fmt.Errorf("%w: refusing to commit the move", git.ErrDirtyWorkTree)
		}
	}

	// Step 2: Scan the current tree for references to the source.
	rewrites, err := r.deps.Scanner.Affected(ctx, op.SourcePath)
	if err != nil {
		return result, fmt.Errorf("scanning references: %w", err)
	}

	// Step 3: Plan the replacement specifier for every reference.
	for i := range rewrites {
		fr := &rewrites[i]
		for j := range fr.References {
			ref := &fr.References[j]
			ref.NewSpecifier = r.deps.Coordinator.Recalculate(ref.Specifier, fr.FilePath, op.DestPath)
		}
	}

	// Step 4: Barrel analysis runs before the physical move; it reads
	// the original import graph.
	var barrelUpdates []barrel.FileUpdate
	if opts.UpdateBarrels {
		impact, err := r.deps.Propagator.AnalyzeImpact(ctx, op.SourcePath)
		if err != nil {
			return result, fmt.Errorf("analyzing barrels: %w", err)
		}
		result.BarrelsTouched = impact.Touched
		barrelUpdates = r.deps.Propagator.Plan(impact, op.DestPath, opts.BarrelMode)
		// Re-exports claimed by barrel propagation leave the ordinary
		// rewrite plan; the propagator preserves the barrel's extension
		// convention where plain recalculation would strip it.
		rewrites = dropBarrelOwned(rewrites, impact.Direct)
	}

	if opts.DryRun {
		return result, r.preview(result, rewrites, barrelUpdates, op)
	}

	// Step 5: Mutate. The rename completes before any rewrite lands so
	// no reader ever resolves against a path that no longer exists.
	if err := rewrite.MoveFile(op.SourcePath, op.DestPath); err != nil {
		return result, fmt.Errorf("moving file: %w", err)
	}
	consumed := make(map[int]bool)
	for _, fr := range rewrites {
		updated := renderPlanned(fr, barrelUpdates, consumed)
		if updated == fr.OriginalContent {
			continue
		}
		if err := rewrite.WriteFile(fr.FilePath, []byte(updated)); err != nil {
			// A failed write does not abort the run; the report still
			// counts what did land.
			r.deps.Logger.Warn("rewrite failed", "file", fr.FilePath, "error", err)
			result.Warnings = append(result.Warnings, fmt.Sprintf("rewrite failed for %s: %v", fr.FilePath, err))
			continue
		}
		result.ModifiedFiles = append(result.ModifiedFiles, fr.FilePath)
	}

	// Step 6: Barrel updates, now that the destination exists. Updates
	// merged into a rewrite above were already written.
	if remaining := skipConsumed(barrelUpdates, consumed); len(remaining) > 0 {
		result.ModifiedFiles = append(result.ModifiedFiles, r.deps.Propagator.Apply(remaining)...)
	}

	// Step 7: Record the move as a commit when asked to.
	if opts.GitCommit {
		if err := r.commit(result); err != nil {
			r.deps.Logger.Warn("git commit failed", "error", err)
			result.Warnings = append(result.Warnings, fmt.Sprintf("git commit failed: %v", err))
		}
	}

	return result, nil
}

// validate checks the move's preconditions before anything is touched.
func (r *Runner) validate(op types.MoveOperation, opts Options) error {
	info, err := os.Stat(op.SourcePath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrSourceMissing, op.SourcePath)
		}
		return fmt.Errorf("checking source: %w", err)
	}
	if info.IsDir() || !parse.SupportedFile(op.SourcePath) {
		return fmt.Errorf("%w: %s", ErrSourceUnsupported, op.SourcePath)
	}
	// Preview mode tolerates an occupied destination; a real move does
	// not.
	if !opts.DryRun {
		if _, err := os.Stat(op.DestPath); err == nil {
			return fmt.Errorf("%w: %s", ErrDestExists, op.DestPath)
		}
	}
	return nil
}

// preview renders the planned change set as diffs without mutating
// anything on disk.
func (r *Runner) preview(result *RunResult, rewrites []types.FileRewrite, barrelUpdates []barrel.FileUpdate, op types.MoveOperation) error {
	dmp := diffmatchpatch.New()
	patch := func(path, before, after string) {
		if before == after {
			return
		}
		diffs := dmp.DiffMain(before, after, false)
		result.Diffs = append(result.Diffs, FileDiff{
			FilePath: path,
			Patch:    dmp.PatchToText(dmp.PatchMake(before, diffs)),
		})
		result.ModifiedFiles = append(result.ModifiedFiles, path)
	}

	consumed := make(map[int]bool)
	for _, fr := range rewrites {
		patch(fr.FilePath, fr.OriginalContent, renderPlanned(fr, barrelUpdates, consumed))
	}
	for i, u := range barrelUpdates {
		if consumed[i] {
			continue
		}
		before, after, err := r.deps.Propagator.Render(u)
		if err != nil {
			return fmt.Errorf("rendering barrel update for %s: %w", u.FilePath, err)
		}
		patch(u.FilePath, before, after)
	}
	return nil
}

// renderPlanned splices a file's planned references together with any
// barrel update targeting the same file, all over the file's original
// content, so each file has exactly one writer and one set of offsets.
// Merged updates are marked consumed.
func renderPlanned(fr types.FileRewrite, updates []barrel.FileUpdate, consumed map[int]bool) string {
	reps := planReplacements(fr)
	appendText := ""
	for i, u := range updates {
		if consumed[i] || !resolve.SamePath(u.FilePath, fr.FilePath) {
			continue
		}
		reps = append(reps, u.ReplacementsFor(fr.OriginalContent)...)
		appendText += u.Append
		consumed[i] = true
	}
	return rewrite.Splice(fr.OriginalContent, reps) + appendText
}

// skipConsumed filters out updates already merged into a rewrite.
func skipConsumed(updates []barrel.FileUpdate, consumed map[int]bool) []barrel.FileUpdate {
	var remaining []barrel.FileUpdate
	for i, u := range updates {
		if !consumed[i] {
			remaining = append(remaining, u)
		}
	}
	return remaining
}

// dropBarrelOwned removes references that a barrel update already
// covers, keyed by file and specifier byte span. Files left with no
// references drop out of the plan entirely.
func dropBarrelOwned(rewrites []types.FileRewrite, direct []types.BarrelReexport) []types.FileRewrite {
	owned := make(map[string]map[int]bool)
	for _, re := range direct {
		key := resolve.NormalizePath(re.BarrelFile)
		if owned[key] == nil {
			owned[key] = make(map[int]bool)
		}
		owned[key][re.ByteStart] = true
	}

	var kept []types.FileRewrite
	for _, fr := range rewrites {
		spans := owned[resolve.NormalizePath(fr.FilePath)]
		if spans == nil {
			kept = append(kept, fr)
			continue
		}
		var refs []types.PlannedReference
		for _, ref := range fr.References {
			if !spans[ref.ByteStart] {
				refs = append(refs, ref)
			}
		}
		if len(refs) > 0 {
			fr.References = refs
			kept = append(kept, fr)
		}
	}
	return kept
}

// planReplacements converts a planned rewrite's references into splice
// replacements.
func planReplacements(fr types.FileRewrite) []rewrite.Replacement {
	reps := make([]rewrite.Replacement, 0, len(fr.References))
	for _, ref := range fr.References {
		reps = append(reps, rewrite.Replacement{
			ByteStart: ref.ByteStart,
			ByteEnd:   ref.ByteEnd,
			NewText:   ref.NewSpecifier,
		})
	}
	return reps
}

// commit records the completed move in the project's git repository.
func (r *Runner) commit(result *RunResult) error {
	if r.deps.Repo == nil {
		return git.ErrNoGit
	}
	return r.deps.Repo.CommitMove(result.SourcePath, result.DestPath, result.ModifiedFiles)
}
