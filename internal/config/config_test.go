// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/tsmove/pkg/types"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		abs := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0o755))
		require.NoError(t, os.WriteFile(abs, []byte(content), 0o644))
	}
}

func TestStripJSONC(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "line comment",
			in:   "{\n  // alias setup\n  \"a\": 1\n}",
			want: "{\n                \n  \"a\": 1\n}",
		},
		{
			name: "block comment",
			in:   `{"a": /* inline */ 1}`,
			want: `{"a":              1}`,
		},
		{
			name: "comment markers inside strings survive",
			in:   `{"url": "http://example.com"}`,
			want: `{"url": "http://example.com"}`,
		},
		{
			name: "trailing comma in object",
			in:   "{\"a\": 1,}",
			want: "{\"a\": 1 }",
		},
		{
			name: "trailing comma before comment",
			in:   "{\"a\": 1, // done\n}",
			want: "{\"a\": 1         \n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(stripJSONC([]byte(tt.in))))
		})
	}
}

func TestLoadPathAliasRules(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"tsconfig.json": `{
			// project aliases
			"compilerOptions": {
				"baseUrl": ".",
				"paths": {
					"@/*": ["./src/*"],
					"#shared": ["./src/shared/index.ts"],
				}
			}
		}`,
		"apps/web/tsconfig.app.json": `{
			"compilerOptions": {
				"baseUrl": "./src",
				"paths": {"~/*": ["./app/*", "./fallback/*"]}
			}
		}`,
		"node_modules/dep/tsconfig.json": `{"compilerOptions": {"paths": {"x/*": ["./x/*"]}}}`,
		"broken/tsconfig.json":           `{not json`,
	})

	rules := LoadPathAliasRules(root, quietLogger())
	require.Len(t, rules, 4)

	assert.Equal(t, types.PathAliasRule{
		AliasPattern:  "#shared",
		RawAlias:      "#shared",
		TargetPattern: "src/shared/index.ts",
		BasePath:      root,
	}, rules[0])
	assert.Equal(t, types.PathAliasRule{
		AliasPattern:  "@/",
		RawAlias:      "@/*",
		TargetPattern: "src/",
		BasePath:      root,
	}, rules[1])

	// One alias mapping to two candidate targets yields two rules with
	// the same key, in target order.
	appBase := filepath.Join(root, "apps", "web", "src")
	assert.Equal(t, "app/", rules[2].TargetPattern)
	assert.Equal(t, "fallback/", rules[3].TargetPattern)
	assert.Equal(t, appBase, rules[2].BasePath)
	assert.Equal(t, "~/*", rules[2].RawAlias)
}

func TestLoadSubpathImportRules(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"package.json": `{
			"name": "app",
			"imports": {
				"#internal/*": "./src/internal/*.js",
				"#config": ["./src/config.js", "./config.js"]
			}
		}`,
		"packages/lib/package.json": `{"name": "@acme/lib", "imports": {"#util/*": "./util/*.js"}}`,
		"bad/package.json":          `{{{`,
	})

	rules := LoadSubpathImportRules(root, quietLogger())
	require.Len(t, rules, 3)

	assert.Equal(t, "#config", rules[0].Key)
	assert.Equal(t, []string{"./src/config.js", "./config.js"}, rules[0].Values)
	assert.Equal(t, root, rules[0].PackageRoot)

	assert.Equal(t, "#internal/*", rules[1].Key)
	assert.Equal(t, []string{"./src/internal/*.js"}, rules[1].Values)

	assert.Equal(t, "#util/*", rules[2].Key)
	assert.Equal(t, filepath.Join(root, "packages", "lib"), rules[2].PackageRoot)
}

func TestDiscoverWorkspacePackages(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"package.json":                  `{"name": "root-app"}`,
		"packages/core/package.json":    `{"name": "@acme/core"}`,
		"packages/ui/package.json":      `{"name": "@acme/ui"}`,
		"tools/unscoped/package.json":   `{"name": "scripts"}`,
		"node_modules/dep/package.json": `{"name": "@vendor/dep"}`,
	})

	packages := DiscoverWorkspacePackages(root, quietLogger())
	require.Len(t, packages, 2)
	assert.Equal(t, "@acme/core", packages[0].Name)
	assert.Equal(t, filepath.Join(root, "packages", "core"), packages[0].Root)
	assert.Equal(t, "@acme/ui", packages[1].Name)
}
