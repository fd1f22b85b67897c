// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package barrel detects index files that re-export a moved module and
// propagates the move through them. Barrels are assumed to use relative
// re-export specifiers; re-exports written with aliases or package
// names are left unchanged, a documented limitation.
package barrel

import (
	"context"
	"os"

	"github.com/charmbracelet/log"

	"github.com/petar-djukic/tsmove/internal/parse"
	"github.com/petar-djukic/tsmove/internal/resolve"
	"github.com/petar-djukic/tsmove/pkg/types"
)

// consumer is a file importing from a barrel.
type consumer struct {
	filePath   string
	specifier  string
	byteStart  int
	byteEnd    int
	names      []types.ExportedName
	isWildcard bool // import * as ns
}

// Impact is the result of analyzing one move against the re-export
// graph. Direct holds re-exports pointing at the moved file; Chain holds
// re-exports of the affected barrels themselves (outer barrels); both
// levels' consumers are recorded for reporting and for recursive-mode
// rewriting.
type Impact struct {
	Direct []types.BarrelReexport
	Chain  []types.BarrelReexport
	// Touched lists files that import from an affected barrel. In simple
	// mode these need no change (the barrel's own path is stable) but
	// they are part of the reported blast radius.
	Touched []string

	consumers map[string][]consumer
}

// Propagator builds the re-export graph and computes barrel updates for
// one move. Walk supplies the candidate files and carries the project's
// exclusion rules; the scanner's walker is injected here so both
// components agree on the candidate set.
type Propagator struct {
	Walk   func(visit func(path string) error) error
	Logger *log.Logger

	relative resolve.RelativeStrategy
}

// New creates a propagator over the given source walker.
func New(walk func(visit func(path string) error) error, logger *log.Logger) *Propagator {
	if logger == nil {
		logger = log.Default()
	}
	return &Propagator{Walk: walk, Logger: logger}
}

// AnalyzeImpact builds the re-export graph once (one file's parse
// results at a time, nothing retained beyond the extracted facts) and
// returns every barrel edge into sourcePath, the outer-barrel chain,
// and the consumers of affected barrels. Runs before the physical move:
// it resolves against the pre-move tree.
func (p *Propagator) AnalyzeImpact(ctx context.Context, sourcePath string) (*Impact, error) {
	edges := make(map[string][]types.BarrelReexport) // target -> re-exports of it
	consumers := make(map[string][]consumer)         // target -> importers of it

	err := p.Walk(func(path string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			p.Logger.Warn("skipping unreadable file in barrel analysis", "file", path, "error", err)
			return nil
		}
		statements, err := parse.Extract(ctx, path, content)
		if err != nil {
			p.Logger.Warn("skipping unparseable file in barrel analysis", "file", path, "error", err)
			return nil
		}

		for _, stmt := range statements {
			// Relative resolution only; barrels addressed through
			// aliases or packages are out of scope here.
			target, ok := p.relative.Resolve(stmt.Specifier, path)
			if !ok {
				continue
			}
			key := resolve.NormalizePath(target)
			if stmt.IsReExport {
				edges[key] = append(edges[key], types.BarrelReexport{
					BarrelFile: path,
					Specifier:  stmt.Specifier,
					TargetPath: target,
					Names:      stmt.Names,
					IsWildcard: stmt.IsWildcard,
					ByteStart:  stmt.ByteStart,
					ByteEnd:    stmt.ByteEnd,
					StmtStart:  stmt.StmtStart,
					StmtEnd:    stmt.StmtEnd,
				})
			} else {
				consumers[key] = append(consumers[key], consumer{
					filePath:   path,
					specifier:  stmt.Specifier,
					byteStart:  stmt.ByteStart,
					byteEnd:    stmt.ByteEnd,
					names:      stmt.Names,
					isWildcard: stmt.IsWildcard,
				})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	impact := &Impact{consumers: consumers}
	impact.Direct = edges[resolve.NormalizePath(sourcePath)]

	// Outer barrels: walk the chain transitively. A barrel re-exported
	// by another barrel extends the blast radius without needing its
	// own rewrite (its target did not move).
	seen := make(map[string]bool)
	frontier := impact.Direct
	for len(frontier) > 0 {
		var next []types.BarrelReexport
		for _, re := range frontier {
			key := resolve.NormalizePath(re.BarrelFile)
			if seen[key] {
				continue
			}
			seen[key] = true
			for _, outer := range edges[key] {
				impact.Chain = append(impact.Chain, outer)
				next = append(next, outer)
			}
			for _, c := range consumers[key] {
				impact.Touched = append(impact.Touched, c.filePath)
			}
		}
		frontier = next
	}

	return impact, nil
}
