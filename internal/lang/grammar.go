// Package lang is the language pattern registry: per-language lexical
// grammars used to extract symbol definitions and references without a
// compiler front-end. Everything in this package is read-only data; adding
// a language means adding a Grammar entry, no resolver changes.
package lang

import (
	"path/filepath"
	"regexp"
	"strings"

	"symguard/internal/types"
)

// Language identifies a supported source language.
type Language string

const (
	Go         Language = "go"
	Python     Language = "python"
	JavaScript Language = "javascript"
	TypeScript Language = "typescript"
	PHP        Language = "php"
	Rust       Language = "rust"
)

// DefPattern matches a symbol definition. The regexp has exactly one
// capture group: the defined name.
type DefPattern struct {
	Re   *regexp.Regexp
	Kind types.SymbolKind
}

// CallPattern matches a symbol reference. When Qualified is true the
// regexp has two groups (qualifier, name); the name is always the last
// non-empty group.
type CallPattern struct {
	Re        *regexp.Regexp
	Qualified bool
}

// Grammar is the full lexical pattern set for one language.
type Grammar struct {
	Language    Language
	Definitions []DefPattern
	Calls       []CallPattern
	Properties  []*regexp.Regexp
	Dynamic     []*regexp.Regexp
	ImportLines []*regexp.Regexp

	// Builtins are runtime/stdlib identifiers that must never be flagged.
	Builtins map[string]struct{}
	// Keywords are control-flow words the call regexes would otherwise
	// capture (if, for, switch, ...).
	Keywords map[string]struct{}

	// LineComments are prefixes that mark a whole-line comment.
	LineComments []string
	// BlockCommentStart/End delimit block comments, empty if none.
	BlockCommentStart string
	BlockCommentEnd   string

	// SkipCapitalizedCalls suppresses capitalized call names, which in
	// this language denote type instantiation rather than free functions.
	SkipCapitalizedCalls bool
}

// extensions maps file extensions to languages.
var extensions = map[string]Language{
	".go":  Go,
	".py":  Python,
	".pyw": Python,
	".js":  JavaScript,
	".jsx": JavaScript,
	".mjs": JavaScript,
	".cjs": JavaScript,
	".ts":  TypeScript,
	".tsx": TypeScript,
	".php": PHP,
	".rs":  Rust,
}

// excludedSuffixes marks minified/generated files as unsupported even when
// the extension would match.
var excludedSuffixes = []string{
	".min.js",
	".min.css",
	".bundle.js",
	".generated.go",
	"_gen.go",
	".pb.go",
	"_pb2.py",
	".d.ts",
	".blade.php",
}

// Detect returns the language for a file path, or false when the file is
// unsupported (unknown extension or generated/minified suffix).
func Detect(path string) (Language, bool) {
	base := strings.ToLower(filepath.Base(path))
	for _, suffix := range excludedSuffixes {
		if strings.HasSuffix(base, suffix) {
			return "", false
		}
	}
	lang, ok := extensions[strings.ToLower(filepath.Ext(base))]
	return lang, ok
}

// Get returns the grammar for a language.
func Get(l Language) (*Grammar, bool) {
	g, ok := grammars[l]
	return g, ok
}

// Supported lists all registered languages.
func Supported() []Language {
	out := make([]Language, 0, len(grammars))
	for l := range grammars {
		out = append(out, l)
	}
	return out
}

func nameSet(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}
