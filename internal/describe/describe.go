// Package describe produces a one-line description for a file: the first
// sentence of its leading doc comment (or module docstring), or for
// Markdown files the first heading or paragraph.
package describe

import (
	"strings"
	"unicode/utf8"

	"github.com/jward/treeline/internal/lang"
)

const maxLen = 120

// commentPrefixes are the line-comment markers stripped when scanning a
// file's leading comment block.
var commentPrefixes = map[lang.Language][]string{
	lang.Go:         {"//"},
	lang.JavaScript: {"//", "*", "/*"},
	lang.TypeScript: {"//", "*", "/*"},
	lang.Python:     {"#"},
	lang.Rust:       {"//!", "///", "//"},
	lang.C:          {"//", "*", "/*"},
	lang.CPP:        {"//", "*", "/*"},
	lang.Java:       {"//", "*", "/*"},
	lang.Ruby:       {"#"},
	lang.PHP:        {"//", "#", "*", "/*"},
}

// Source extracts a description from a source file's leading comment block.
// Returns "" when the file has no leading comment.
func Source(language lang.Language, src []byte) string {
	prefixes, ok := commentPrefixes[language]
	if !ok {
		return ""
	}

	if language == lang.Python {
		if doc := pythonDocstring(src); doc != "" {
			return clip(doc)
		}
	}

	var parts []string
	for _, line := range strings.Split(string(src), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			if len(parts) > 0 {
				break
			}
			continue
		}
		if len(parts) == 0 && strings.HasPrefix(line, "<?php") {
			continue
		}
		stripped, isComment := stripComment(line, prefixes)
		if !isComment {
			break
		}
		if stripped == "" {
			if len(parts) > 0 {
				break // blank comment line ends the first paragraph
			}
			continue
		}
		if skipMarker(stripped) {
			continue
		}
		parts = append(parts, stripped)
	}
	return clip(strings.Join(parts, " "))
}

// Markdown extracts the first heading, or failing that the first paragraph
// line, from a Markdown document.
func Markdown(src []byte) string {
	var firstPara string
	for _, line := range strings.Split(string(src), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			return clip(strings.TrimSpace(strings.TrimLeft(line, "#")))
		}
		if firstPara == "" && !strings.HasPrefix(line, "---") {
			firstPara = line
		}
	}
	return clip(firstPara)
}

func stripComment(line string, prefixes []string) (string, bool) {
	// A bare block-comment terminator is a blank comment line, not a "*"
	// line with "/" content.
	if line == "*/" {
		return "", true
	}
	for _, p := range prefixes {
		if strings.HasPrefix(line, p) {
			rest := strings.TrimPrefix(line, p)
			rest = strings.TrimSuffix(rest, "*/")
			return strings.TrimSpace(rest), true
		}
	}
	return "", false
}

// skipMarker drops lines that are tooling directives rather than prose:
// shebangs, encoding cookies, linter pragmas, license SPDX tags.
func skipMarker(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(s, "!") ||
		strings.HasPrefix(lower, "-*-") ||
		strings.HasPrefix(lower, "spdx-") ||
		strings.HasPrefix(lower, "nolint") ||
		strings.HasPrefix(lower, "eslint") ||
		strings.HasPrefix(lower, "coding:")
}

// pythonDocstring pulls the first line of a module docstring.
func pythonDocstring(src []byte) string {
	text := strings.TrimLeft(string(src), " \t\n")
	for _, q := range []string{`"""`, "'''"} {
		if !strings.HasPrefix(text, q) {
			continue
		}
		body := text[len(q):]
		end := strings.Index(body, q)
		if end < 0 {
			return ""
		}
		for _, line := range strings.Split(body[:end], "\n") {
			if line = strings.TrimSpace(line); line != "" {
				return line
			}
		}
	}
	return ""
}

func clip(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= maxLen {
		return s
	}
	cut := strings.LastIndex(s[:maxLen], " ")
	if cut <= 0 {
		// No space to break on; back up to a rune boundary so the cut
		// never splits a multibyte character.
		cut = maxLen
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
	}
	return s[:cut] + "…"
}
