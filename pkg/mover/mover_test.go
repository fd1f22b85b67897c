// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package mover

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidatesConfig(t *testing.T) {
	_, err := New(Config{})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = New(Config{ProjectRoot: filepath.Join(t.TempDir(), "missing")})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestMoveThroughPublicAPI(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{
		"src/utils/helper.ts": "export const helper = 1;\n",
		"src/App.tsx":         "import { helper } from './utils/helper';\n",
	}
	for rel, content := range files {
		abs := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0o755))
		require.NoError(t, os.WriteFile(abs, []byte(content), 0o644))
	}

	m, err := NewWithLogger(Config{ProjectRoot: root}, log.New(io.Discard))
	require.NoError(t, err)

	// Relative paths resolve against the project root.
	result, err := m.Move(context.Background(), "src/utils/helper.ts", "src/lib/helper.ts", Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, result.FilesChanged)
	content, err := os.ReadFile(filepath.Join(root, "src", "App.tsx"))
	require.NoError(t, err)
	assert.Equal(t, "import { helper } from './lib/helper';\n", string(content))

	_, err = m.Move(context.Background(), "src/lib/helper.ts", "src/App.tsx", Options{})
	assert.ErrorIs(t, err, ErrDestExists)
}
