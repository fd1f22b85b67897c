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

// manifest mirrors the subset of a package.json tsmove reads.
type manifest struct {
	Name    string                     `json:"name"`
	Imports map[string]json.RawMessage `json:"imports"`
}

// LoadSubpathImportRules walks the project for package.json files and
// flattens every "imports" entry into SubpathImportRule values.
// Manifests keep file walk order, so when package roots overlap the
// first-walked manifest claims a file; that first-match rule is a
// documented ambiguity, deliberately not changed to nearest-ancestor.
// Single-string values are normalized to one-element lists. Malformed
// manifests are logged and skipped.
func LoadSubpathImportRules(projectRoot string, logger *log.Logger) []types.SubpathImportRule {
	var rules []types.SubpathImportRule

	for _, file := range findConfigFiles(projectRoot, isManifestName) {
		m, ok := readManifest(file, logger)
		if !ok || len(m.Imports) == 0 {
			continue
		}

		keys := make([]string, 0, len(m.Imports))
		for key := range m.Imports {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		pkgRoot := filepath.Dir(file)
		for _, key := range keys {
			values, err := decodeStringOrList(m.Imports[key])
			if err != nil {
				logger.Warn("skipping malformed imports entry", "file", file, "key", key, "error", err)
				continue
			}
			rules = append(rules, types.SubpathImportRule{
				Key:         key,
				Values:      values,
				PackageRoot: pkgRoot,
			})
		}
	}

	return rules
}

// DiscoverWorkspacePackages walks the project for package.json files
// whose declared name starts with a scope marker and records them in
// walk order. Nested package roots keep that discovery order; see
// LoadSubpathImportRules for the overlap caveat.
func DiscoverWorkspacePackages(projectRoot string, logger *log.Logger) []types.WorkspacePackage {
	var packages []types.WorkspacePackage

	for _, file := range findConfigFiles(projectRoot, isManifestName) {
		m, ok := readManifest(file, logger)
		if !ok || !strings.HasPrefix(m.Name, "@") {
			continue
		}
		packages = append(packages, types.WorkspacePackage{
			Name: m.Name,
			Root: filepath.Dir(file),
		})
	}

	return packages
}

func readManifest(file string, logger *log.Logger) (manifest, bool) {
	content, err := os.ReadFile(file)
	if err != nil {
		logger.Warn("skipping unreadable package.json", "file", file, "error", err)
		return manifest{}, false
	}
	var m manifest
	if err := json.Unmarshal(content, &m); err != nil {
		logger.Warn("skipping malformed package.json", "file", file, "error", err)
		return manifest{}, false
	}
	return m, true
}

// decodeStringOrList accepts both manifest value shapes: a single
// string, or a list of candidate strings.
func decodeStringOrList(raw json.RawMessage) ([]string, error) {
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return []string{single}, nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func isManifestName(name string) bool {
	return name == "package.json"
}
