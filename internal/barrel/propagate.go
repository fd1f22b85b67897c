// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package barrel

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/petar-djukic/tsmove/internal/resolve"
	"github.com/petar-djukic/tsmove/internal/rewrite"
	"github.com/petar-djukic/tsmove/pkg/types"
)

// FileUpdate is the planned change set for one file: in-place byte-range
// replacements plus optional appended content.
type FileUpdate struct {
	FilePath     string
	Replacements []rewrite.Replacement
	Append       string
}

// Plan computes the barrel updates for a move whose destination is
// destPath. It must be called with an Impact produced before the move;
// Apply runs after it.
//
// Simple mode rewrites only the direct barrels' re-export specifiers.
// Recursive mode additionally handles a destination that left a
// barrel's reach: the re-export line moves to the barrel of the
// destination directory (when one exists), and consumers importing the
// moved symbols through the old barrel are repointed.
func (p *Propagator) Plan(impact *Impact, destPath string, mode types.BarrelMode) []FileUpdate {
	byFile := make(map[string]*FileUpdate)
	update := func(path string) *FileUpdate {
		if u, ok := byFile[path]; ok {
			return u
		}
		u := &FileUpdate{FilePath: path}
		byFile[path] = u
		return u
	}

	for _, re := range impact.Direct {
		inReach := resolve.SamePath(filepath.Dir(re.BarrelFile), filepath.Dir(destPath)) ||
			isUnder(destPath, filepath.Dir(re.BarrelFile))

		if mode == types.BarrelSimple || inReach {
			newSpec := relativeWithConvention(filepath.Dir(re.BarrelFile), destPath, re.Specifier)
			update(re.BarrelFile).Replacements = append(update(re.BarrelFile).Replacements, rewrite.Replacement{
				ByteStart: re.ByteStart,
				ByteEnd:   re.ByteEnd,
				NewText:   newSpec,
			})
			continue
		}

		// Recursive mode, destination outside this barrel's reach:
		// remove the re-export line entirely.
		update(re.BarrelFile).Replacements = append(update(re.BarrelFile).Replacements, rewrite.Replacement{
			ByteStart: re.StmtStart,
			ByteEnd:   re.StmtEnd,
			NewText:   "",
		})

		// The moved symbols' new home: the destination directory's own
		// barrel when it has one, otherwise the moved file itself.
		newHome := destPath
		if idx, ok := destBarrel(destPath); ok {
			newHome = idx
			line := reexportLine(re, filepath.Dir(idx), destPath)
			update(idx).Append += line
		}

		for _, c := range impact.consumers[resolve.NormalizePath(re.BarrelFile)] {
			if !consumesMovedNames(c, re) {
				continue
			}
			newSpec := relativeWithConvention(filepath.Dir(c.filePath), newHome, c.specifier)
			update(c.filePath).Replacements = append(update(c.filePath).Replacements, rewrite.Replacement{
				ByteStart: c.byteStart,
				ByteEnd:   c.byteEnd,
				NewText:   newSpec,
			})
		}
	}

	updates := make([]FileUpdate, 0, len(byFile))
	for _, u := range byFile {
		updates = append(updates, *u)
	}
	sort.Slice(updates, func(i, j int) bool {
		return updates[i].FilePath < updates[j].FilePath
	})
	return updates
}

// ReplacementsFor returns the update's replacements adjusted against
// content: a removed statement takes its trailing newline with it.
// Offsets are valid only against the pre-move content the impact was
// analyzed on.
func (u FileUpdate) ReplacementsFor(content string) []rewrite.Replacement {
	replacements := make([]rewrite.Replacement, len(u.Replacements))
	copy(replacements, u.Replacements)
	for i, r := range replacements {
		if r.NewText == "" && r.ByteEnd < len(content) && content[r.ByteEnd] == '\n' {
			replacements[i].ByteEnd++
		}
	}
	return replacements
}

// Render computes the updated content for one planned update without
// writing anything, reading the file's current content from disk.
func (p *Propagator) Render(u FileUpdate) (original, updated string, err error) {
	content, err := os.ReadFile(u.FilePath)
	if err != nil {
		return "", "", err
	}
	return string(content), rewrite.Splice(string(content), u.ReplacementsFor(string(content))) + u.Append, nil
}

// Apply writes the planned updates. Per-file failures are logged and the
// remaining updates still run; the operation reports what it did manage
// to change.
func (p *Propagator) Apply(updates []FileUpdate) []string {
	var changed []string
	for _, u := range updates {
		original, updated, err := p.Render(u)
		if err != nil {
			p.Logger.Warn("skipping barrel update for unreadable file", "file", u.FilePath, "error", err)
			continue
		}
		if updated == original {
			continue
		}
		if err := rewrite.WriteFile(u.FilePath, []byte(updated)); err != nil {
			p.Logger.Warn("barrel update failed", "file", u.FilePath, "error", err)
			continue
		}
		changed = append(changed, u.FilePath)
	}
	return changed
}

// relativeWithConvention computes a relative specifier from dir to
// target, preserving the extension convention of the original
// specifier: an explicit source extension stays (with the original's
// exact extension string), an extension-less specifier stays
// extension-less. Barrel re-exports differ here from ordinary relative
// recalculation, which always strips.
func relativeWithConvention(dir, target, originalSpec string) string {
	rel, err := filepath.Rel(dir, target)
	if err != nil {
		return originalSpec
	}
	spec := filepath.ToSlash(rel)
	spec = resolve.StripSourceExtension(spec)
	if ext := filepath.Ext(originalSpec); ext != "" && resolve.HasSourceExtension(originalSpec) {
		spec += ext
	}
	if !strings.HasPrefix(spec, ".") {
		spec = "./" + spec
	}
	return spec
}

// destBarrel returns the index file of the destination's directory, if
// one exists and is not the destination itself.
func destBarrel(destPath string) (string, bool) {
	for _, ext := range resolve.SourceExtensions {
		idx := filepath.Join(filepath.Dir(destPath), "index"+ext)
		if resolve.SamePath(idx, destPath) {
			continue
		}
		if info, err := os.Stat(idx); err == nil && !info.IsDir() {
			return idx, true
		}
	}
	return "", false
}

// reexportLine renders a re-export statement for the moved symbols,
// addressed from the new barrel's directory.
func reexportLine(re types.BarrelReexport, barrelDir, destPath string) string {
	spec := relativeWithConvention(barrelDir, destPath, re.Specifier)
	if re.IsWildcard || len(re.Names) == 0 {
		return fmt.Sprintf("export * from '%s';\n", spec)
	}
	parts := make([]string, 0, len(re.Names))
	for _, n := range re.Names {
		if n.Alias != "" {
			parts = append(parts, n.Name+" as "+n.Alias)
		} else {
			parts = append(parts, n.Name)
		}
	}
	return fmt.Sprintf("export { %s } from '%s';\n", strings.Join(parts, ", "), spec)
}

// consumesMovedNames reports whether a consumer's import clause touches
// any symbol the re-export carried. Wildcards on either side match
// everything.
func consumesMovedNames(c consumer, re types.BarrelReexport) bool {
	if c.isWildcard || re.IsWildcard {
		return true
	}
	exported := make(map[string]bool, len(re.Names))
	for _, n := range re.Names {
		visible := n.Name
		if n.Alias != "" {
			visible = n.Alias
		}
		exported[visible] = true
	}
	for _, n := range c.names {
		if exported[n.Name] {
			return true
		}
	}
	return false
}

// isUnder reports whether path lives inside dir's subtree.
func isUnder(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(filepath.ToSlash(rel), "../")
}
