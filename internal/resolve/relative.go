// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package resolve

import (
	"path/filepath"
	"strings"

	"github.com/petar-djukic/tsmove/pkg/types"
)

// RelativeStrategy resolves dot- and slash-prefixed specifiers against
// the importing file's directory. It is the universal fallback: its
// Recalculate can express any destination.
type RelativeStrategy struct{}

var _ Strategy = (*RelativeStrategy)(nil)

func (s *RelativeStrategy) Name() string { return "relative" }

func isRelativeSpecifier(specifier string) bool {
	return strings.HasPrefix(specifier, ".") || strings.HasPrefix(specifier, "/")
}

func (s *RelativeStrategy) Resolve(specifier, fromFile string) (string, bool) {
	if !isRelativeSpecifier(specifier) {
		return "", false
	}
	base := filepath.Join(filepath.Dir(fromFile), filepath.FromSlash(specifier))
	return ProbeFile(base)
}

// Recalculate produces an extension-less relative specifier from the
// importing file's directory to the new location, prefixed with "./"
// when the path does not already start with a dot.
func (s *RelativeStrategy) Recalculate(oldSpecifier, fromFile, newPath string) (string, bool) {
	rel, ok := slashRel(filepath.Dir(fromFile), newPath)
	if !ok {
		return "", false
	}
	rel = StripSourceExtension(rel)
	if !strings.HasPrefix(rel, ".") {
		rel = "./" + rel
	}
	return rel, true
}

func (s *RelativeStrategy) Classify(specifier, fromFile string) (types.ImportKind, bool) {
	if !isRelativeSpecifier(specifier) {
		return 0, false
	}
	return types.KindRelative, true
}
