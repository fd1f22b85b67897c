// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package resolve

import (
	"path/filepath"
	"strings"

	"github.com/petar-djukic/tsmove/pkg/types"
)

// scopeMarker prefixes workspace package names.
const scopeMarker = "@"

// WorkspaceStrategy resolves "@scope/package/subpath" specifiers against
// the packages discovered in the workspace.
type WorkspaceStrategy struct {
	// Packages in discovery order. Recalculate picks the first package
	// whose root contains the new path; nested roots therefore resolve
	// by discovery order, a documented ambiguity kept as-is.
	Packages []types.WorkspacePackage
}

var _ Strategy = (*WorkspaceStrategy)(nil)

func (s *WorkspaceStrategy) Name() string { return "workspace" }

// splitSpecifier splits "@scope/pkg/sub/path" into package name and
// module subpath. The subpath is empty for a bare package import.
func splitSpecifier(specifier string) (name, subpath string, ok bool) {
	if !strings.HasPrefix(specifier, scopeMarker) {
		return "", "", false
	}
	parts := strings.SplitN(specifier, "/", 3)
	if len(parts) < 2 || parts[1] == "" {
		return "", "", false
	}
	name = parts[0] + "/" + parts[1]
	if len(parts) == 3 {
		subpath = parts[2]
	}
	return name, subpath, true
}

func (s *WorkspaceStrategy) lookup(name string) (types.WorkspacePackage, bool) {
	for _, p := range s.Packages {
		if p.Name == name {
			return p, true
		}
	}
	return types.WorkspacePackage{}, false
}

func (s *WorkspaceStrategy) Resolve(specifier, fromFile string) (string, bool) {
	name, subpath, ok := splitSpecifier(specifier)
	if !ok {
		return "", false
	}
	pkg, ok := s.lookup(name)
	if !ok {
		return "", false
	}
	if subpath == "" {
		subpath = "index"
	}
	// Conventional locations: src/<sub>[.ext|/index.ext], then the same
	// without the src/ prefix.
	if abs, ok := ProbeFile(filepath.Join(pkg.Root, "src", filepath.FromSlash(subpath))); ok {
		return abs, true
	}
	return ProbeFile(filepath.Join(pkg.Root, filepath.FromSlash(subpath)))
}

// Recalculate re-derives the package-qualified specifier from whichever
// workspace package now contains the file. Applicable only when the old
// specifier names a known workspace package; an alias-shaped specifier
// like "@/utils/db" is not claimed here even though it carries the
// scope marker. A destination outside every workspace is deliberately
// not expressible; the coordinator then falls back to a relative
// specifier.
func (s *WorkspaceStrategy) Recalculate(oldSpecifier, fromFile, newPath string) (string, bool) {
	name, _, ok := splitSpecifier(oldSpecifier)
	if !ok {
		return "", false
	}
	if _, ok := s.lookup(name); !ok {
		return "", false
	}
	for _, pkg := range s.Packages {
		if !hasPathPrefix(newPath, pkg.Root) {
			continue
		}
		rel, ok := slashRel(pkg.Root, newPath)
		if !ok {
			continue
		}
		rel = strings.TrimPrefix(rel, "src/")
		rel = StripSourceExtension(rel)
		rel = strings.TrimSuffix(rel, "/index")
		if rel == "index" || rel == "." || rel == "" {
			return pkg.Name, true
		}
		return pkg.Name + "/" + rel, true
	}
	return "", false
}

func (s *WorkspaceStrategy) Classify(specifier, fromFile string) (types.ImportKind, bool) {
	name, _, ok := splitSpecifier(specifier)
	if !ok {
		return 0, false
	}
	if _, ok := s.lookup(name); !ok {
		return 0, false
	}
	return types.KindWorkspace, true
}
