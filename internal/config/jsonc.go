// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config loads resolution configuration from the project tree:
// tsconfig path mappings, package.json subpath imports, and workspace
// package discovery. Malformed files are skipped with a warning; a bad
// config never aborts a run.
package config

// stripJSONC removes line comments, block comments, and trailing commas
// from tsconfig-style JSON so encoding/json can parse it. Comment
// markers inside string literals are preserved. Removed bytes are
// blanked rather than deleted, keeping offsets stable for error
// messages. Comments are blanked first so a trailing comma separated
// from its closing bracket by a comment is still detected.
func stripJSONC(src []byte) []byte {
	out := make([]byte, len(src))
	copy(out, src)
	blankComments(out)
	blankTrailingCommas(out)
	return out
}

func blankComments(b []byte) {
	inString := false
	for i := 0; i < len(b); i++ {
		c := b[i]
		if inString {
			if c == '\\' {
				i++
			} else if c == '"' {
				inString = false
			}
			continue
		}
		switch {
		case c == '"':
			inString = true
		case c == '/' && i+1 < len(b) && b[i+1] == '/':
			for i < len(b) && b[i] != '\n' {
				b[i] = ' '
				i++
			}
		case c == '/' && i+1 < len(b) && b[i+1] == '*':
			b[i], b[i+1] = ' ', ' '
			i += 2
			for i+1 < len(b) && !(b[i] == '*' && b[i+1] == '/') {
				if b[i] != '\n' {
					b[i] = ' '
				}
				i++
			}
			if i+1 < len(b) {
				b[i], b[i+1] = ' ', ' '
				i++
			}
		}
	}
}

func blankTrailingCommas(b []byte) {
	inString := false
	for i := 0; i < len(b); i++ {
		c := b[i]
		if inString {
			if c == '\\' {
				i++
			} else if c == '"' {
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case ',':
			if j := nextToken(b, i+1); j < len(b) && (b[j] == '}' || b[j] == ']') {
				b[i] = ' '
			}
		}
	}
}

// nextToken returns the index of the next non-whitespace byte at or
// after i.
func nextToken(b []byte, i int) int {
	for i < len(b) {
		switch b[i] {
		case ' ', '\t', '\r', '\n':
			i++
		default:
			return i
		}
	}
	return i
}
