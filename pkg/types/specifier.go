// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package types defines the shared data model for tsmove: module
// specifiers, resolution rules, planned rewrites, and barrel re-exports.
package types

// ImportKind classifies the style of a module specifier.
type ImportKind int

const (
	KindRelative  ImportKind = iota // ./x, ../x, /x
	KindAlias                       // tsconfig paths alias, e.g. @/utils/db
	KindSubpath                     // package.json subpath import, e.g. #internal/db
	KindWorkspace                   // workspace package, e.g. @scope/pkg/db
	KindExternal                    // bare specifier resolved from node_modules
)

func (k ImportKind) String() string {
	switch k {
	case KindRelative:
		return "relative"
	case KindAlias:
		return "alias"
	case KindSubpath:
		return "subpath"
	case KindWorkspace:
		return "workspace"
	case KindExternal:
		return "external"
	default:
		return "unknown"
	}
}

// ImportReference is one occurrence of a module specifier in a source file.
// ByteStart and ByteEnd delimit exactly the specifier text between its
// quotes, so replacing that span rewrites the import without re-parsing.
type ImportReference struct {
	Specifier  string // Literal specifier text as written in the source
	ByteStart  int    // Offset of the first byte of the specifier
	ByteEnd    int    // Offset one past the last byte of the specifier
	IsReExport bool   // True for `export ... from` declarations
}

// PlannedReference is an ImportReference together with the replacement
// specifier computed for it during planning.
type PlannedReference struct {
	ImportReference
	NewSpecifier string
}
