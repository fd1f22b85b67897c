// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

// PathAliasRule is one entry derived from a tsconfig paths table.
// AliasPattern and TargetPattern carry no wildcard; RawAlias is the key as
// written and may end in "*". Several rules can share one RawAlias (one
// alias mapping to multiple candidate targets; the first target that
// resolves to an existing file wins).
type PathAliasRule struct {
	AliasPattern  string // Alias prefix without the wildcard, e.g. "@/"
	RawAlias      string // Alias key as written, e.g. "@/*"
	TargetPattern string // Target prefix without the wildcard, slash-separated, e.g. "src/"
	BasePath      string // Absolute directory the target resolves against
}

// SubpathImportRule is one entry from a package.json "imports" table.
// Values is always a list; single-string manifest values are normalized
// to a one-element list by the loader.
type SubpathImportRule struct {
	Key         string   // e.g. "#internal/*"
	Values      []string // e.g. ["./src/internal/*.js"]
	PackageRoot string   // Absolute directory of the owning package.json
}

// WorkspacePackage is a scoped package discovered inside the project,
// importable by name from any other package in the workspace.
type WorkspacePackage struct {
	Name string // Declared package name, starts with "@"
	Root string // Absolute directory containing its package.json
}
