// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

import "fmt"

// MoveOperation is the top-level transient value describing one move.
// Both paths are absolute. Validity (source exists with a recognized
// extension, destination absent) is checked before any mutation.
type MoveOperation struct {
	SourcePath string
	DestPath   string
}

// FileRewrite holds every reference in one affected file that resolved to
// the moved file, together with the file's original content. References
// are applied in descending byte-offset order over OriginalContent.
type FileRewrite struct {
	FilePath        string
	OriginalContent string
	References      []PlannedReference
}

// ExportedName is one entry of a re-export clause.
type ExportedName struct {
	Name  string
	Alias string // Empty unless "as" was used
}

// BarrelReexport represents one re-export statement known to point at the
// moved file. Byte offsets delimit the specifier text, as in
// ImportReference.
type BarrelReexport struct {
	BarrelFile string
	Specifier  string
	TargetPath string // Absolute path the specifier resolved to pre-move
	Names      []ExportedName
	IsWildcard bool // True for `export * from ...`
	ByteStart  int
	ByteEnd    int
	StmtStart  int // Offset of the full statement, for recursive-mode line removal
	StmtEnd    int
}

// BarrelMode selects how barrel propagation behaves for one run.
type BarrelMode int

const (
	// BarrelSimple rewrites only the direct barrel's re-export specifier.
	// Consumers importing from the barrel stay correct because the
	// barrel's own path did not change.
	BarrelSimple BarrelMode = iota
	// BarrelRecursive additionally rewrites imports in files that consumed
	// the moved symbols through the barrel, and adds or removes re-export
	// lines when the destination leaves the barrel's reach.
	BarrelRecursive
)

func (m BarrelMode) String() string {
	switch m {
	case BarrelSimple:
		return "simple"
	case BarrelRecursive:
		return "recursive"
	default:
		return "unknown"
	}
}

// ParseBarrelMode converts a mode name to its BarrelMode.
func ParseBarrelMode(s string) (BarrelMode, error) {
	switch s {
	case "simple":
		return BarrelSimple, nil
	case "recursive":
		return BarrelRecursive, nil
	default:
		return 0, fmt.Errorf("unknown barrel mode %q (want simple or recursive)", s)
	}
}
