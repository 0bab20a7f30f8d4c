// Package resolver extracts symbol references from changed files and flags
// the ones that resolve nowhere: not in the file, the session, the
// whitelist, the language's builtins, the external imports, or the
// codebase index.
package resolver

import (
	"fmt"
	"os"
	"sort"
	"unicode"

	"symguard/internal/imports"
	"symguard/internal/index"
	"symguard/internal/lang"
	"symguard/internal/logging"
	"symguard/internal/policy"
	"symguard/internal/scoring"
	"symguard/internal/types"
)

const (
	maxSuggestions   = 3
	similarityCutoff = 0.6
)

// Resolver validates files against a scanned codebase index.
type Resolver struct {
	index    *index.Index
	readFile index.ReadFileFunc
}

func New(ix *index.Index) *Resolver {
	return &Resolver{index: ix, readFile: os.ReadFile}
}

// ValidateFile reads and validates one file. Unreadable files error;
// unsupported languages return no issues.
func (r *Resolver) ValidateFile(path string, sess *policy.Session) ([]types.Issue, error) {
	content, err := r.readFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return r.ValidateContent(path, string(content), sess), nil
}

// ValidateContent validates file content already in memory.
func (r *Resolver) ValidateContent(path, content string, sess *policy.Session) []types.Issue {
	language, ok := lang.Detect(path)
	if !ok {
		return nil
	}
	g, ok := lang.Get(language)
	if !ok {
		return nil
	}
	timer := logging.StartTimer(logging.CategoryResolve, "ValidateContent "+path)
	defer timer.Stop()

	localDefs := index.ExtractDefinitions(g, path, content)
	localProps := index.ExtractProperties(g, content)
	imps := imports.Extract(language, content)
	externals := imports.ExternalNames(imps)
	hasExternal := imports.HasExternal(imps)
	density := dynamicDensity(g, content)

	refs := extractReferences(g, content, externals)

	var issues []types.Issue
	for _, ref := range refs {
		if r.resolves(ref.name, g, localDefs, localProps, externals, sess) {
			continue
		}
		issues = append(issues, r.buildIssue(ref, path, density, hasExternal))
	}
	sort.Slice(issues, func(i, j int) bool { return issues[i].Line < issues[j].Line })
	logging.Resolve("%s: %d references, %d unresolved (dynamic density %d)",
		path, len(refs), len(issues), density)
	return issues
}

// resolves walks the resolution tiers in order, stopping at the first hit.
func (r *Resolver) resolves(name string, g *lang.Grammar, localDefs map[string][]types.SymbolLocation,
	localProps map[string]struct{}, externals map[string]struct{}, sess *policy.Session) bool {

	if _, ok := localDefs[name]; ok {
		return true
	}
	if _, ok := localProps[name]; ok {
		return true
	}
	if sess != nil {
		if sess.HasSymbol(name) {
			return true
		}
		if sess.IsWhitelisted(name) {
			return true
		}
	}
	if _, ok := g.Builtins[name]; ok {
		return true
	}
	if _, ok := externals[name]; ok {
		return true
	}
	return len(r.index.Lookup(name)) > 0
}

func (r *Resolver) buildIssue(ref reference, path string, density int, hasExternal bool) types.Issue {
	suggestions := r.index.FuzzyMatch(ref.name, maxSuggestions, similarityCutoff)
	confidence := scoring.Score(scoring.Input{
		Name:               ref.name,
		DynamicDensity:     density,
		HasExternalImports: hasExternal,
		HasFuzzyMatch:      len(suggestions) > 0,
	})

	var locs []types.SymbolLocation
	for _, s := range suggestions {
		if known := r.index.Lookup(s); len(known) > 0 {
			locs = append(locs, known[0])
		}
	}

	reason := "not defined in this file, the session, or the scanned codebase"
	if len(suggestions) > 0 {
		reason = fmt.Sprintf("not defined anywhere in scope; closest known name is %q", suggestions[0])
	}

	return types.Issue{
		Name:                ref.name,
		File:                path,
		Line:                ref.line,
		Confidence:          confidence,
		Reason:              reason,
		Suggestions:         suggestions,
		SuggestionLocations: locs,
	}
}

// reference is one extracted call site.
type reference struct {
	name string
	line int
}

// extractReferences pulls every distinct referenced name out of a file,
// keeping the first occurrence line. Import lines, comments, constructor
// style calls, and calls qualified by an external module or builtin are
// skipped.
func extractReferences(g *lang.Grammar, content string, externals map[string]struct{}) []reference {
	var refs []reference
	seen := make(map[string]struct{})

	index.EachCodeLine(g, content, func(lineNo int, line string) {
		if isImportLine(g, line) {
			return
		}
		// spans already claimed by an earlier pattern on this line; the
		// bare-call pattern would otherwise re-match the name segment of
		// every qualified call
		var consumed [][2]int
		for _, call := range g.Calls {
			for _, m := range call.Re.FindAllStringSubmatchIndex(line, -1) {
				if overlaps(consumed, m[0], m[1]) {
					continue
				}
				consumed = append(consumed, [2]int{m[0], m[1]})

				var qualifier, name string
				if call.Qualified {
					qualifier = group(line, m, 1)
					name = group(line, m, 2)
				} else {
					name = group(line, m, 1)
				}
				if !keepReference(g, qualifier, name, externals) {
					continue
				}
				if _, dup := seen[name]; dup {
					continue
				}
				seen[name] = struct{}{}
				refs = append(refs, reference{name: name, line: lineNo})
			}
		}
	})
	return refs
}

// keepReference filters out reference matches that carry no hallucination
// signal.
func keepReference(g *lang.Grammar, qualifier, name string, externals map[string]struct{}) bool {
	if name == "" {
		return false
	}
	if _, kw := g.Keywords[name]; kw {
		return false
	}
	if qualifier != "" {
		if _, kw := g.Keywords[qualifier]; kw {
			return false
		}
		// a call through an external module alias or builtin object
		// cannot be checked locally
		if _, ok := externals[qualifier]; ok {
			return false
		}
		if _, ok := g.Builtins[qualifier]; ok {
			return false
		}
	}
	if g.SkipCapitalizedCalls && startsUpper(name) {
		// type instantiation, not a potentially hallucinated free function
		return false
	}
	return true
}

func isImportLine(g *lang.Grammar, line string) bool {
	for _, re := range g.ImportLines {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// dynamicDensity counts dynamic-dispatch constructs in a file. Heavy use
// means the pattern set cannot see how names resolve.
func dynamicDensity(g *lang.Grammar, content string) int {
	n := 0
	index.EachCodeLine(g, content, func(_ int, line string) {
		for _, re := range g.Dynamic {
			n += len(re.FindAllStringIndex(line, -1))
		}
	})
	return n
}

func overlaps(consumed [][2]int, start, end int) bool {
	for _, c := range consumed {
		if start < c[1] && end > c[0] {
			return true
		}
	}
	return false
}

func group(line string, m []int, i int) string {
	if m[2*i] < 0 {
		return ""
	}
	return line[m[2*i]:m[2*i+1]]
}

func startsUpper(name string) bool {
	for _, r := range name {
		return unicode.IsUpper(r)
	}
	return false
}
