// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/petar-djukic/tsmove/pkg/types"
)

// tsconfig mirrors the subset of a tsconfig file tsmove reads.
type tsconfig struct {
	CompilerOptions struct {
		BaseURL string              `json:"baseUrl"`
		Paths   map[string][]string `json:"paths"`
	} `json:"compilerOptions"`
}

// LoadPathAliasRules walks the project for tsconfig.json and
// tsconfig.*.json files (skipping excluded directories) and flattens
// every compilerOptions.paths entry into PathAliasRule values. Rules
// keep file walk order; within one file, alias keys are sorted for
// determinism since JSON object order is not preserved. Malformed files
// are logged and skipped.
func LoadPathAliasRules(projectRoot string, logger *log.Logger) []types.PathAliasRule {
	var rules []types.PathAliasRule

	for _, file := range findConfigFiles(projectRoot, isTsconfigName) {
		content, err := os.ReadFile(file)
		if err != nil {
			logger.Warn("skipping unreadable tsconfig", "file", file, "error", err)
			continue
		}

		var cfg tsconfig
		if err := json.Unmarshal(stripJSONC(content), &cfg); err != nil {
			logger.Warn("skipping malformed tsconfig", "file", file, "error", err)
			continue
		}
		if len(cfg.CompilerOptions.Paths) == 0 {
			continue
		}

		baseURL := cfg.CompilerOptions.BaseURL
		if baseURL == "" {
			baseURL = "."
		}
		basePath := filepath.Join(filepath.Dir(file), filepath.FromSlash(baseURL))

		aliases := make([]string, 0, len(cfg.CompilerOptions.Paths))
		for alias := range cfg.CompilerOptions.Paths {
			aliases = append(aliases, alias)
		}
		sort.Strings(aliases)

		for _, alias := range aliases {
			for _, target := range cfg.CompilerOptions.Paths[alias] {
				rules = append(rules, types.PathAliasRule{
					AliasPattern:  strings.TrimSuffix(alias, "*"),
					RawAlias:      alias,
					TargetPattern: normalizeTarget(target),
					BasePath:      basePath,
				})
			}
		}
	}

	return rules
}

// normalizeTarget strips the wildcard and leading "./" from a paths
// target so it can be joined against the base path directly.
func normalizeTarget(target string) string {
	target = strings.TrimSuffix(target, "*")
	return strings.TrimPrefix(target, "./")
}

func isTsconfigName(name string) bool {
	return name == "tsconfig.json" ||
		(strings.HasPrefix(name, "tsconfig.") && strings.HasSuffix(name, ".json"))
}

// skipDirs are directory names never descended into during config and
// source walks.
var skipDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
}

// findConfigFiles returns matching file paths in lexical walk order.
func findConfigFiles(root string, match func(name string) bool) []string {
	var files []string
	_ = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if skipDirs[filepath.Base(path)] {
				return filepath.SkipDir
			}
			return nil
		}
		if match(info.Name()) {
			files = append(files, path)
		}
		return nil
	})
	return files
}
