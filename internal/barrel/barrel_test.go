// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package barrel

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/tsmove/pkg/types"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		abs := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0o755))
		require.NoError(t, os.WriteFile(abs, []byte(content), 0o644))
	}
}

// sourceWalker visits every .ts/.tsx/.js/.jsx file under root.
func sourceWalker(root string) func(visit func(path string) error) error {
	return func(visit func(path string) error) error {
		return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil || info.IsDir() {
				return err
			}
			switch filepath.Ext(path) {
			case ".ts", ".tsx", ".js", ".jsx":
				return visit(path)
			}
			return nil
		})
	}
}

func newPropagator(root string) *Propagator {
	return New(sourceWalker(root), log.New(io.Discard))
}

func read(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func TestSimpleModePreservesExtensionConvention(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/utils/helper.ts": "export const helper = 1;\n",
		"src/utils/index.ts":  "export { helper } from './helper.js';\n",
		"src/App.tsx":         "import { helper } from '../utils/index.js';\n",
	})
	appBefore := read(t, filepath.Join(root, "src", "App.tsx"))

	p := newPropagator(root)
	source := filepath.Join(root, "src", "utils", "helper.ts")
	dest := filepath.Join(root, "src", "shared", "helper.ts")

	impact, err := p.AnalyzeImpact(context.Background(), source)
	require.NoError(t, err)
	require.Len(t, impact.Direct, 1)
	assert.Equal(t, "./helper.js", impact.Direct[0].Specifier)
	assert.Equal(t, []string{filepath.Join(root, "src", "App.tsx")}, impact.Touched)

	updates := p.Plan(impact, dest, types.BarrelSimple)
	changed := p.Apply(updates)
	assert.Equal(t, []string{filepath.Join(root, "src", "utils", "index.ts")}, changed)

	// The barrel's re-export keeps its explicit .js extension.
	assert.Equal(t, "export { helper } from '../shared/helper.js';\n",
		read(t, filepath.Join(root, "src", "utils", "index.ts")))

	// The consumer imports through the barrel's stable path and stays
	// byte-identical.
	assert.Equal(t, appBefore, read(t, filepath.Join(root, "src", "App.tsx")))
}

func TestSimpleModeExtensionlessStaysExtensionless(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/utils/helper.ts": "export const helper = 1;\n",
		"src/utils/index.ts":  "export { helper } from './helper';\n",
	})

	p := newPropagator(root)
	source := filepath.Join(root, "src", "utils", "helper.ts")
	dest := filepath.Join(root, "src", "shared", "helper.ts")

	impact, err := p.AnalyzeImpact(context.Background(), source)
	require.NoError(t, err)

	p.Apply(p.Plan(impact, dest, types.BarrelSimple))
	assert.Equal(t, "export { helper } from '../shared/helper';\n",
		read(t, filepath.Join(root, "src", "utils", "index.ts")))
}

func TestNonRelativeReexportLeftUnchanged(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/utils/helper.ts": "export const helper = 1;\n",
		"src/utils/index.ts":  "export { helper } from '@/utils/helper';\n",
	})

	p := newPropagator(root)
	impact, err := p.AnalyzeImpact(context.Background(), filepath.Join(root, "src", "utils", "helper.ts"))
	require.NoError(t, err)
	assert.Empty(t, impact.Direct)
}

func TestTransitiveChain(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/utils/helper.ts": "export const helper = 1;\n",
		"src/utils/index.ts":  "export { helper } from './helper';\n",
		"src/index.ts":        "export * from './utils/index';\n",
		"src/main.ts":         "import { helper } from './index';\n",
	})

	p := newPropagator(root)
	impact, err := p.AnalyzeImpact(context.Background(), filepath.Join(root, "src", "utils", "helper.ts"))
	require.NoError(t, err)

	require.Len(t, impact.Direct, 1)
	require.Len(t, impact.Chain, 1)
	assert.Equal(t, filepath.Join(root, "src", "index.ts"), impact.Chain[0].BarrelFile)
	assert.Contains(t, impact.Touched, filepath.Join(root, "src", "main.ts"))
}

func TestRecursiveModeInsideReachRewritesInPlace(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/utils/helper.ts": "export const helper = 1;\n",
		"src/utils/index.ts":  "export { helper } from './helper';\n",
	})

	p := newPropagator(root)
	source := filepath.Join(root, "src", "utils", "helper.ts")
	dest := filepath.Join(root, "src", "utils", "deep", "helper.ts")

	impact, err := p.AnalyzeImpact(context.Background(), source)
	require.NoError(t, err)

	p.Apply(p.Plan(impact, dest, types.BarrelRecursive))
	assert.Equal(t, "export { helper } from './deep/helper';\n",
		read(t, filepath.Join(root, "src", "utils", "index.ts")))
}

func TestRecursiveModeOutsideReach(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/utils/helper.ts": "export const helper = 1;\n",
		"src/utils/other.ts":  "export const other = 2;\n",
		"src/utils/index.ts": "export { other } from './other';\n" +
			"export { helper } from './helper';\n",
		"src/shared/index.ts": "export const shared = 0;\n",
		"src/App.tsx":         "import { helper } from './utils/index';\n",
		"src/Other.tsx":       "import { other } from './utils/index';\n",
	})

	p := newPropagator(root)
	source := filepath.Join(root, "src", "utils", "helper.ts")
	dest := filepath.Join(root, "src", "shared", "helper.ts")

	impact, err := p.AnalyzeImpact(context.Background(), source)
	require.NoError(t, err)
	require.Len(t, impact.Direct, 1)

	changed := p.Apply(p.Plan(impact, dest, types.BarrelRecursive))

	// The old barrel lost the moved re-export line but kept the rest.
	assert.Equal(t, "export { other } from './other';\n",
		read(t, filepath.Join(root, "src", "utils", "index.ts")))

	// The destination directory's barrel gained the re-export.
	assert.Equal(t, "export const shared = 0;\nexport { helper } from './helper';\n",
		read(t, filepath.Join(root, "src", "shared", "index.ts")))

	// Only the consumer of the moved symbol was repointed.
	assert.Equal(t, "import { helper } from './shared/index';\n",
		read(t, filepath.Join(root, "src", "App.tsx")))
	assert.Equal(t, "import { other } from './utils/index';\n",
		read(t, filepath.Join(root, "src", "Other.tsx")))

	assert.Len(t, changed, 3)
}
