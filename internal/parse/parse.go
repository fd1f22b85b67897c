// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package parse extracts import and re-export references from
// TypeScript and JavaScript sources using tree-sitter. Byte offsets
// point exactly at the specifier text between its quotes, so callers
// can splice replacements without re-parsing. Dynamic import() calls
// and require() invocations are not statements and are never reported.
package parse

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/petar-djukic/tsmove/pkg/types"
)

// languages maps file extensions to their tree-sitter grammar.
var languages = map[string]*sitter.Language{
	".ts":  typescript.GetLanguage(),
	".tsx": tsx.GetLanguage(),
	".js":  javascript.GetLanguage(),
	".jsx": javascript.GetLanguage(),
}

// statementQuery captures every static import and export declaration.
// Export declarations without a source (local exports) are filtered out
// after the match, since the grammar reuses one node type for both.
const statementQuery = `
	(import_statement) @stmt
	(export_statement) @stmt
`

// Statement is one import or re-export declaration with a literal string
// specifier.
type Statement struct {
	Specifier  string
	ByteStart  int // Specifier span between the quotes
	ByteEnd    int
	StmtStart  int // Full statement span, including keywords
	StmtEnd    int
	IsReExport bool
	IsWildcard bool // export * / export * as ns / import * as ns
	Names      []types.ExportedName
}

// SupportedFile reports whether path has an extension this parser
// understands.
func SupportedFile(path string) bool {
	_, ok := languages[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Extract parses content and returns every import/re-export statement
// carrying a literal string specifier, in source order. Nothing from
// the syntax tree outlives the call; only the extracted facts are
// returned, so scanning a large project never accumulates trees in
// memory.
func Extract(ctx context.Context, path string, content []byte) ([]Statement, error) {
	lang, ok := languages[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, fmt.Errorf("unsupported file type: %s", path)
	}

	root, err := sitter.ParseCtx(ctx, content, lang)
	if err != nil || root == nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	q, err := sitter.NewQuery([]byte(statementQuery), lang)
	if err != nil {
		return nil, fmt.Errorf("compiling statement query: %w", err)
	}
	defer q.Close()
	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(q, root)

	var statements []Statement
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, c := range m.Captures {
			if stmt, ok := extractStatement(c.Node, content); ok {
				statements = append(statements, stmt)
			}
		}
	}

	sort.Slice(statements, func(i, j int) bool {
		return statements[i].StmtStart < statements[j].StmtStart
	})
	return statements, nil
}

// References converts statements to the ImportReference model consumed
// by the scanner.
func References(statements []Statement) []types.ImportReference {
	refs := make([]types.ImportReference, 0, len(statements))
	for _, s := range statements {
		refs = append(refs, types.ImportReference{
			Specifier:  s.Specifier,
			ByteStart:  s.ByteStart,
			ByteEnd:    s.ByteEnd,
			IsReExport: s.IsReExport,
		})
	}
	return refs
}

// extractStatement pulls the specifier span and, for re-exports, the
// exported names out of one statement node. Statements without a string
// source (local export declarations) report false.
func extractStatement(node *sitter.Node, content []byte) (Statement, bool) {
	source := node.ChildByFieldName("source")
	if source == nil {
		return Statement{}, false
	}

	start, end := specifierSpan(source)
	stmt := Statement{
		Specifier:  string(content[start:end]),
		ByteStart:  start,
		ByteEnd:    end,
		StmtStart:  int(node.StartByte()),
		StmtEnd:    int(node.EndByte()),
		IsReExport: node.Type() == "export_statement",
	}

	if stmt.IsReExport {
		for i := 0; i < int(node.ChildCount()); i++ {
			child := node.Child(i)
			switch child.Type() {
			case "*", "namespace_export":
				stmt.IsWildcard = true
			case "export_clause":
				stmt.Names = clauseNames(child, "export_specifier", content)
			}
		}
	} else {
		for i := 0; i < int(node.ChildCount()); i++ {
			child := node.Child(i)
			if child.Type() != "import_clause" {
				continue
			}
			for j := 0; j < int(child.NamedChildCount()); j++ {
				part := child.NamedChild(j)
				switch part.Type() {
				case "named_imports":
					stmt.Names = append(stmt.Names, clauseNames(part, "import_specifier", content)...)
				case "namespace_import":
					stmt.IsWildcard = true
				}
			}
		}
	}

	return stmt, true
}

// specifierSpan returns the byte span of the specifier text inside the
// string node's quotes. Empty strings have no fragment child; the span
// inside the quotes is used directly.
func specifierSpan(source *sitter.Node) (int, int) {
	for i := 0; i < int(source.NamedChildCount()); i++ {
		child := source.NamedChild(i)
		if child.Type() == "string_fragment" {
			return int(child.StartByte()), int(child.EndByte())
		}
	}
	return int(source.StartByte()) + 1, int(source.EndByte()) - 1
}

// clauseNames reads a {name as alias, ...} clause, for both re-export
// and named-import specifiers.
func clauseNames(clause *sitter.Node, specType string, content []byte) []types.ExportedName {
	var names []types.ExportedName
	for i := 0; i < int(clause.NamedChildCount()); i++ {
		spec := clause.NamedChild(i)
		if spec.Type() != specType {
			continue
		}
		name := types.ExportedName{}
		if n := spec.ChildByFieldName("name"); n != nil {
			name.Name = n.Content(content)
		}
		if a := spec.ChildByFieldName("alias"); a != nil {
			name.Alias = a.Content(content)
		}
		names = append(names, name)
	}
	return names
}
