package index

import (
	"strings"

	"symguard/internal/lang"
	"symguard/internal/types"
)

// Lines longer than this are almost always minified or generated content;
// running the pattern set over them wastes time and yields junk names.
const maxLineLength = 4096

// EachCodeLine walks the non-comment lines of a file, tracking block
// comments. Overlong lines are skipped.
func EachCodeLine(g *lang.Grammar, content string, fn func(lineNo int, line string)) {
	inBlock := false
	for i, line := range strings.Split(content, "\n") {
		if len(line) > maxLineLength {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if inBlock {
			if g.BlockCommentEnd != "" && strings.Contains(trimmed, g.BlockCommentEnd) {
				inBlock = false
			}
			continue
		}
		if isLineComment(g, trimmed) {
			continue
		}
		if g.BlockCommentStart != "" && strings.HasPrefix(trimmed, g.BlockCommentStart) {
			if !strings.Contains(trimmed[len(g.BlockCommentStart):], g.BlockCommentEnd) {
				inBlock = true
			}
			continue
		}
		fn(i+1, line)
	}
}

func isLineComment(g *lang.Grammar, trimmed string) bool {
	for _, prefix := range g.LineComments {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}

// ExtractDefinitions runs every definition pattern over a file and returns
// the defined names with their locations. Keywords are dropped: the looser
// method patterns would otherwise record control-flow words as symbols.
func ExtractDefinitions(g *lang.Grammar, path, content string) map[string][]types.SymbolLocation {
	defs := make(map[string][]types.SymbolLocation)
	EachCodeLine(g, content, func(lineNo int, line string) {
		for _, d := range g.Definitions {
			m := d.Re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			name := m[1]
			if _, kw := g.Keywords[name]; kw {
				continue
			}
			defs[name] = append(defs[name], types.SymbolLocation{
				File: path,
				Line: lineNo,
				Kind: d.Kind,
			})
			break
		}
	})
	return defs
}

// ExtractProperties returns the names assigned as instance properties in a
// file. These count as same-file symbols during resolution but are too
// noisy to put in the shared index.
func ExtractProperties(g *lang.Grammar, content string) map[string]struct{} {
	if len(g.Properties) == 0 {
		return nil
	}
	props := make(map[string]struct{})
	EachCodeLine(g, content, func(_ int, line string) {
		for _, re := range g.Properties {
			for _, m := range re.FindAllStringSubmatch(line, -1) {
				props[m[1]] = struct{}{}
			}
		}
	})
	return props
}
