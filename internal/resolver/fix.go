package resolver

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"symguard/internal/index"
	"symguard/internal/lang"
	"symguard/internal/logging"
)

// ApplyFix rewrites call sites of oldName to newName in one file and
// returns the number of occurrences replaced. Definition sites are left
// alone: renaming a definition is a refactor, not a typo fix.
func ApplyFix(path, oldName, newName string) (int, error) {
	language, ok := lang.Detect(path)
	if !ok {
		return 0, fmt.Errorf("unsupported file: %s", path)
	}
	g, _ := lang.Get(language)

	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", path, err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}

	wordRe, err := regexp.Compile(`\b` + regexp.QuoteMeta(oldName) + `\b`)
	if err != nil {
		return 0, fmt.Errorf("bad symbol name %q: %w", oldName, err)
	}

	// Comment and blank lines never hold call sites; restricting the
	// rewrite to code lines keeps prose mentions of the name intact.
	codeLines := make(map[int]struct{})
	index.EachCodeLine(g, string(content), func(lineNo int, _ string) {
		codeLines[lineNo] = struct{}{}
	})

	lines := strings.Split(string(content), "\n")
	replaced := 0
	for i, line := range lines {
		if _, ok := codeLines[i+1]; !ok {
			continue
		}
		if definesName(g, line, oldName) {
			continue
		}
		updated := wordRe.ReplaceAllStringFunc(line, func(string) string {
			replaced++
			return newName
		})
		lines[i] = updated
	}
	if replaced == 0 {
		return 0, nil
	}

	out := strings.Join(lines, "\n")
	if err := os.WriteFile(path, []byte(out), info.Mode().Perm()); err != nil {
		return replaced, fmt.Errorf("write %s: %w", path, err)
	}
	logging.Resolve("Applied fix in %s: %s -> %s (%d occurrences)", path, oldName, newName, replaced)
	return replaced, nil
}

// definesName reports whether a line is a definition site for name.
func definesName(g *lang.Grammar, line, name string) bool {
	for _, d := range g.Definitions {
		if m := d.Re.FindStringSubmatch(line); m != nil && m[1] == name {
			return true
		}
	}
	return false
}
