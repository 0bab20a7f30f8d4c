// Package imports extracts import statements from source files and decides
// which of them bind external names. A name bound by an external import is
// assumed resolvable for the rest of that file's validation, since code
// outside the scanned tree cannot be verified locally.
package imports

import (
	"regexp"
	"strings"

	"symguard/internal/lang"
)

// ImportInfo is one parsed import statement.
type ImportInfo struct {
	Module   string   `json:"module"`
	Names    []string `json:"names"`
	Line     int      `json:"line"`
	External bool     `json:"external"`
}

// Extract parses the import statements of a file. Unparseable lines are
// skipped; the worst case is an empty result, never an error.
func Extract(language lang.Language, content string) []ImportInfo {
	lines := strings.Split(content, "\n")
	switch language {
	case lang.Python:
		return extractPython(lines)
	case lang.JavaScript, lang.TypeScript:
		return extractJS(lines)
	case lang.Go:
		return extractGo(lines)
	case lang.PHP:
		return extractPHP(lines)
	case lang.Rust:
		return extractRust(lines)
	default:
		return nil
	}
}

// ExternalNames collects every name bound by an external import.
func ExternalNames(infos []ImportInfo) map[string]struct{} {
	out := make(map[string]struct{})
	for _, in := range infos {
		if !in.External {
			continue
		}
		for _, n := range in.Names {
			out[n] = struct{}{}
		}
	}
	return out
}

// HasExternal reports whether any import resolves outside the scanned tree.
func HasExternal(infos []ImportInfo) bool {
	for _, in := range infos {
		if in.External {
			return true
		}
	}
	return false
}

var (
	pyImportRe     = regexp.MustCompile(`^\s*import\s+(.+)$`)
	pyFromImportRe = regexp.MustCompile(`^\s*from\s+([\w.]+)\s+import\s+(.+)$`)
)

func extractPython(lines []string) []ImportInfo {
	var out []ImportInfo
	for i, line := range lines {
		if m := pyFromImportRe.FindStringSubmatch(line); m != nil {
			module := m[1]
			names := parseNameList(strings.TrimSuffix(m[2], "\\"))
			out = append(out, ImportInfo{
				Module:   module,
				Names:    names,
				Line:     i + 1,
				External: isExternal(lang.Python, module),
			})
			continue
		}
		if m := pyImportRe.FindStringSubmatch(line); m != nil {
			// "import a.b as x, c" binds x and c
			for _, part := range strings.Split(m[1], ",") {
				part = strings.TrimSpace(part)
				if part == "" {
					continue
				}
				module, alias := splitAs(part)
				bound := alias
				if bound == "" {
					// "import os.path" binds the top-level name
					bound = strings.SplitN(module, ".", 2)[0]
				}
				out = append(out, ImportInfo{
					Module:   module,
					Names:    []string{bound},
					Line:     i + 1,
					External: isExternal(lang.Python, module),
				})
			}
		}
	}
	return out
}

var (
	jsImportFromRe    = regexp.MustCompile(`^\s*import\s+(.+?)\s+from\s+['"]([^'"]+)['"]`)
	jsImportBareRe    = regexp.MustCompile(`^\s*import\s+['"]([^'"]+)['"]`)
	jsRequireRe       = regexp.MustCompile(`^\s*(?:const|let|var)\s+(.+?)\s*=\s*(?:await\s+)?require\s*\(\s*['"]([^'"]+)['"]`)
	jsDynamicImportRe = regexp.MustCompile(`^\s*(?:const|let|var)\s+(.+?)\s*=\s*await\s+import\s*\(\s*['"]([^'"]+)['"]`)
)

func extractJS(lines []string) []ImportInfo {
	var out []ImportInfo
	for i, line := range lines {
		var clause, module string
		if m := jsImportFromRe.FindStringSubmatch(line); m != nil {
			clause, module = m[1], m[2]
		} else if m := jsRequireRe.FindStringSubmatch(line); m != nil {
			clause, module = m[1], m[2]
		} else if m := jsDynamicImportRe.FindStringSubmatch(line); m != nil {
			clause, module = m[1], m[2]
		} else if m := jsImportBareRe.FindStringSubmatch(line); m != nil {
			// side-effect import, binds nothing
			out = append(out, ImportInfo{
				Module:   m[1],
				Line:     i + 1,
				External: isExternal(lang.JavaScript, m[1]),
			})
			continue
		} else {
			continue
		}
		out = append(out, ImportInfo{
			Module:   module,
			Names:    parseJSClause(clause),
			Line:     i + 1,
			External: isExternal(lang.JavaScript, module),
		})
	}
	return out
}

// parseJSClause handles "foo", "{ a, b as c }", "* as ns", "foo, { a }"
// and destructured require bindings.
func parseJSClause(clause string) []string {
	var names []string
	clause = strings.TrimSpace(clause)
	for clause != "" {
		switch {
		case strings.HasPrefix(clause, "{"):
			end := strings.Index(clause, "}")
			if end < 0 {
				end = len(clause) - 1
			}
			names = append(names, parseNameList(clause[1:end])...)
			clause = strings.TrimPrefix(strings.TrimSpace(clause[end+1:]), ",")
		case strings.HasPrefix(clause, "*"):
			rest := strings.TrimSpace(strings.TrimPrefix(clause, "*"))
			if strings.HasPrefix(rest, "as ") {
				names = append(names, strings.TrimSpace(strings.TrimPrefix(rest, "as ")))
			}
			clause = ""
		default:
			part := clause
			if c := strings.Index(clause, ","); c >= 0 {
				part, clause = clause[:c], strings.TrimSpace(clause[c+1:])
			} else {
				clause = ""
			}
			if n := strings.TrimSpace(part); n != "" {
				names = append(names, n)
			}
		}
		clause = strings.TrimSpace(clause)
	}
	return names
}

var goImportLineRe = regexp.MustCompile(`^\s*(?:import\s+)?(?:(\w+|\.)\s+)?"([\w./-]+)"`)

func extractGo(lines []string) []ImportInfo {
	var out []ImportInfo
	inBlock := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "import ("):
			inBlock = true
			continue
		case inBlock && trimmed == ")":
			inBlock = false
			continue
		case !inBlock && !strings.HasPrefix(trimmed, "import"):
			continue
		}
		m := goImportLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		alias, path := m[1], m[2]
		name := alias
		if name == "" || name == "." || name == "_" {
			name = goPackageName(path)
		}
		out = append(out, ImportInfo{
			Module:   path,
			Names:    []string{name},
			Line:     i + 1,
			External: isExternal(lang.Go, path),
		})
	}
	return out
}

// goPackageName guesses the package identifier from an import path.
func goPackageName(path string) string {
	segs := strings.Split(path, "/")
	last := segs[len(segs)-1]
	// skip major-version suffixes like .../v2
	if len(segs) > 1 && len(last) > 1 && last[0] == 'v' && isDigits(last[1:]) {
		last = segs[len(segs)-2]
	}
	last = strings.TrimPrefix(last, "go-")
	last = strings.TrimSuffix(last, "-go")
	if dot := strings.Index(last, "."); dot > 0 {
		last = last[:dot]
	}
	return strings.ReplaceAll(last, "-", "")
}

var (
	phpUseRe     = regexp.MustCompile(`^\s*use\s+(?:(function|const)\s+)?([\w\\]+)(?:\s+as\s+(\w+))?\s*;`)
	phpRequireRe = regexp.MustCompile(`^\s*(?:require|include)(?:_once)?\s*\(?\s*['"]([^'"]+)['"]`)
)

func extractPHP(lines []string) []ImportInfo {
	var out []ImportInfo
	for i, line := range lines {
		if m := phpUseRe.FindStringSubmatch(line); m != nil {
			module := m[2]
			name := m[3]
			if name == "" {
				segs := strings.Split(module, "\\")
				name = segs[len(segs)-1]
			}
			out = append(out, ImportInfo{
				Module:   module,
				Names:    []string{name},
				Line:     i + 1,
				External: isExternal(lang.PHP, module),
			})
			continue
		}
		if m := phpRequireRe.FindStringSubmatch(line); m != nil {
			out = append(out, ImportInfo{
				Module:   m[1],
				Line:     i + 1,
				External: isExternal(lang.PHP, m[1]),
			})
		}
	}
	return out
}

var rustUseRe = regexp.MustCompile(`^\s*(?:pub\s+)?use\s+([\w:]+)(?:::\{([^}]*)\})?(?:\s+as\s+(\w+))?\s*;`)

func extractRust(lines []string) []ImportInfo {
	var out []ImportInfo
	for i, line := range lines {
		m := rustUseRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		module, group, alias := m[1], m[2], m[3]
		var names []string
		switch {
		case alias != "":
			names = []string{alias}
		case group != "":
			for _, n := range parseNameList(group) {
				if n != "self" && !strings.Contains(n, ":") {
					names = append(names, n)
				}
			}
		default:
			segs := strings.Split(module, "::")
			names = []string{segs[len(segs)-1]}
		}
		// the crate root is usable as a qualifier too
		root := strings.SplitN(module, "::", 2)[0]
		if root != "" && root != "crate" && root != "self" && root != "super" && !contains(names, root) {
			names = append(names, root)
		}
		out = append(out, ImportInfo{
			Module:   module,
			Names:    names,
			Line:     i + 1,
			External: isExternal(lang.Rust, module),
		})
	}
	return out
}

// parseNameList splits "a, b as c, d" into bound names [a c d].
func parseNameList(list string) []string {
	var out []string
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" || part == "*" {
			continue
		}
		_, alias := splitAs(part)
		if alias != "" {
			out = append(out, alias)
			continue
		}
		out = append(out, part)
	}
	return out
}

func splitAs(s string) (name, alias string) {
	if idx := strings.Index(s, " as "); idx >= 0 {
		return strings.TrimSpace(s[:idx]), strings.TrimSpace(s[idx+4:])
	}
	return strings.TrimSpace(s), ""
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
