// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package resolve

import (
	"github.com/charmbracelet/log"

	"github.com/petar-djukic/tsmove/pkg/types"
)

// Strategy is the three-operation contract every resolution style
// implements. A false second return value always means "not applicable
// here", never an error; not finding a file on disk is a normal outcome.
type Strategy interface {
	// Name identifies the strategy in diagnostics.
	Name() string

	// Resolve maps a specifier written in fromFile to an existing
	// absolute file path.
	Resolve(specifier, fromFile string) (string, bool)

	// Recalculate computes the specifier that should replace
	// oldSpecifier after the referenced file moved to newPath,
	// preserving this strategy's style. Not applicable when the new
	// location no longer fits anything the strategy can express.
	Recalculate(oldSpecifier, fromFile, newPath string) (string, bool)

	// Classify reports whether the specifier belongs to this strategy's
	// style and, if so, which kind it is.
	Classify(specifier, fromFile string) (types.ImportKind, bool)
}

// Coordinator tries the strategies in fixed priority order: workspace
// package, then path alias, then subpath import, then relative. The
// order prefers the least location-coupled style when several could
// claim the same specifier text; relative is the terminal fallback and
// the only strategy whose Recalculate is expected to always succeed.
type Coordinator struct {
	strategies []Strategy
	logger     *log.Logger
}

// NewCoordinator builds a coordinator over immutable rule sets loaded
// once at initialization. No strategy holds ambient state; everything is
// passed in here.
func NewCoordinator(aliases []types.PathAliasRule, subpaths []types.SubpathImportRule, workspaces []types.WorkspacePackage, logger *log.Logger) *Coordinator {
	if logger == nil {
		logger = log.Default()
	}
	return &Coordinator{
		strategies: []Strategy{
			&WorkspaceStrategy{Packages: workspaces},
			&AliasStrategy{Rules: aliases},
			&SubpathStrategy{Rules: subpaths},
			&RelativeStrategy{},
		},
		logger: logger,
	}
}

// Resolve maps a specifier to an existing absolute file path, or reports
// that no strategy could resolve it (external packages, broken imports).
func (c *Coordinator) Resolve(specifier, fromFile string) (string, bool) {
	for _, s := range c.strategies {
		if abs, ok := s.Resolve(specifier, fromFile); ok {
			return abs, true
		}
	}
	return "", false
}

// Recalculate computes the replacement specifier for a reference whose
// target moved to newPath. When even the relative fallback cannot
// produce a result the original specifier is returned unchanged; that
// silent no-op is logged because it should not happen in practice.
func (c *Coordinator) Recalculate(oldSpecifier, fromFile, newPath string) string {
	for _, s := range c.strategies {
		if spec, ok := s.Recalculate(oldSpecifier, fromFile, newPath); ok {
			return spec
		}
	}
	c.logger.Warn("no strategy could recalculate specifier; leaving it untouched",
		"specifier", oldSpecifier, "from", fromFile, "newPath", newPath)
	return oldSpecifier
}

// Classify reports the style of a specifier. Specifiers no strategy
// claims are external (bare node_modules imports).
func (c *Coordinator) Classify(specifier, fromFile string) types.ImportKind {
	for _, s := range c.strategies {
		if kind, ok := s.Classify(specifier, fromFile); ok {
			return kind
		}
	}
	return types.KindExternal
}
