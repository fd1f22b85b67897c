// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package parse

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/tsmove/pkg/types"
)

func TestExtractImports(t *testing.T) {
	src := `import { User } from '../utils/helper';
import React from "react";
import './styles.css';
const lazy = import('./dynamic');
const legacy = require('./legacy');
`
	statements, err := Extract(context.Background(), "app.ts", []byte(src))
	require.NoError(t, err)
	require.Len(t, statements, 3)

	assert.Equal(t, "../utils/helper", statements[0].Specifier)
	assert.False(t, statements[0].IsReExport)
	assert.Equal(t, "react", statements[1].Specifier)
	assert.Equal(t, "./styles.css", statements[2].Specifier)

	// Offsets delimit exactly the quoted specifier text.
	for _, s := range statements {
		assert.Equal(t, s.Specifier, src[s.ByteStart:s.ByteEnd])
	}
}

func TestExtractReexports(t *testing.T) {
	src := `export { helper, format as fmt } from './helper.js';
export * from './wild';
export * as ns from './spaced';
export const local = 1;
export { alreadyImported };
`
	statements, err := Extract(context.Background(), "index.ts", []byte(src))
	require.NoError(t, err)
	require.Len(t, statements, 3)

	named := statements[0]
	assert.True(t, named.IsReExport)
	assert.False(t, named.IsWildcard)
	assert.Equal(t, "./helper.js", named.Specifier)
	assert.Equal(t, []types.ExportedName{
		{Name: "helper"},
		{Name: "format", Alias: "fmt"},
	}, named.Names)

	wild := statements[1]
	assert.True(t, wild.IsWildcard)
	assert.Empty(t, wild.Names)

	spaced := statements[2]
	assert.True(t, spaced.IsWildcard)
}

func TestExtractTSXAndJS(t *testing.T) {
	tsx := `import { Card } from './Card';
export default function App() { return <Card />; }
`
	statements, err := Extract(context.Background(), "App.tsx", []byte(tsx))
	require.NoError(t, err)
	require.Len(t, statements, 1)
	assert.Equal(t, "./Card", statements[0].Specifier)

	js := `import util from './util.js';
export { util } from './util.js';
`
	statements, err = Extract(context.Background(), "mod.js", []byte(js))
	require.NoError(t, err)
	require.Len(t, statements, 2)
	assert.True(t, statements[1].IsReExport)
}

func TestExtractImportNames(t *testing.T) {
	src := `import { helper, format as fmt } from './helper';
import * as ns from './all';
import def from './def';
`
	statements, err := Extract(context.Background(), "x.ts", []byte(src))
	require.NoError(t, err)
	require.Len(t, statements, 3)

	assert.Equal(t, []types.ExportedName{
		{Name: "helper"},
		{Name: "format", Alias: "fmt"},
	}, statements[0].Names)

	assert.True(t, statements[1].IsWildcard)
	assert.Empty(t, statements[2].Names)
}

func TestExtractUnsupportedFile(t *testing.T) {
	_, err := Extract(context.Background(), "README.md", []byte("# doc"))
	assert.Error(t, err)
}

func TestSupportedFile(t *testing.T) {
	assert.True(t, SupportedFile("a.ts"))
	assert.True(t, SupportedFile("a.TSX"))
	assert.True(t, SupportedFile("a.jsx"))
	assert.False(t, SupportedFile("a.css"))
	assert.False(t, SupportedFile("a"))
}

func TestReferences(t *testing.T) {
	src := `import a from './a';
export { b } from './b';
`
	statements, err := Extract(context.Background(), "x.ts", []byte(src))
	require.NoError(t, err)

	refs := References(statements)
	require.Len(t, refs, 2)
	assert.Equal(t, "./a", refs[0].Specifier)
	assert.False(t, refs[0].IsReExport)
	assert.True(t, refs[1].IsReExport)
}
