package lang

import (
	"regexp"

	"symguard/internal/types"
)

// grammars is the registry proper: one hand-tuned lexical grammar per
// language. Patterns favor missing an exotic construct over matching a
// false one; the resolver degrades gracefully when a definition form is
// not covered.
var grammars = map[Language]*Grammar{

	Go: {
		Language: Go,
		Definitions: []DefPattern{
			{regexp.MustCompile(`^func\s+\([^)]+\)\s+(\w+)\s*\(`), types.KindMethod},
			{regexp.MustCompile(`^func\s+(\w+)\s*\(`), types.KindFunction},
			{regexp.MustCompile(`^type\s+(\w+)\s+struct\b`), types.KindClass},
			{regexp.MustCompile(`^type\s+(\w+)\s+interface\b`), types.KindInterface},
			{regexp.MustCompile(`^type\s+(\w+)\s+func\b`), types.KindFunction},
			{regexp.MustCompile(`^var\s+(\w+)\s*=\s*func\b`), types.KindFunction},
		},
		Calls: []CallPattern{
			{regexp.MustCompile(`(\w+)\.(\w+)\s*\(`), true},
			{regexp.MustCompile(`\b(\w+)\s*\(`), false},
		},
		Properties: nil, // struct fields need brace tracking; not worth the false positives
		Dynamic: []*regexp.Regexp{
			regexp.MustCompile(`\breflect\.\w+`),
			regexp.MustCompile(`\.MethodByName\s*\(`),
			regexp.MustCompile(`\.FieldByName\s*\(`),
			regexp.MustCompile(`\bunsafe\.\w+`),
		},
		ImportLines: []*regexp.Regexp{
			regexp.MustCompile(`^import\s`),
			regexp.MustCompile(`^\s+"[\w./-]+"$`),
			regexp.MustCompile(`^\s+\w+\s+"[\w./-]+"$`),
		},
		Builtins:          goBuiltins,
		Keywords:          goKeywords,
		LineComments:      []string{"//"},
		BlockCommentStart: "/*",
		BlockCommentEnd:   "*/",
		// Exported Go functions are capitalized; skipping them would blind
		// the resolver to most of the language.
		SkipCapitalizedCalls: false,
	},

	Python: {
		Language: Python,
		Definitions: []DefPattern{
			{regexp.MustCompile(`^\s*class\s+(\w+)\s*[(:]`), types.KindClass},
			{regexp.MustCompile(`^\s+(?:async\s+)?def\s+(\w+)\s*\(\s*(?:self|cls)\b`), types.KindMethod},
			{regexp.MustCompile(`^\s*(?:async\s+)?def\s+(\w+)\s*\(`), types.KindFunction},
		},
		Calls: []CallPattern{
			{regexp.MustCompile(`(\w+)\.(\w+)\s*\(`), true},
			{regexp.MustCompile(`\b(\w+)\s*\(`), false},
		},
		Properties: []*regexp.Regexp{
			regexp.MustCompile(`self\.(\w+)\s*[:=]`),
			regexp.MustCompile(`cls\.(\w+)\s*=`),
		},
		Dynamic: []*regexp.Regexp{
			regexp.MustCompile(`\bgetattr\s*\(`),
			regexp.MustCompile(`\bsetattr\s*\(`),
			regexp.MustCompile(`\beval\s*\(`),
			regexp.MustCompile(`\bexec\s*\(`),
			regexp.MustCompile(`\b__import__\s*\(`),
			regexp.MustCompile(`\bimportlib\.`),
			regexp.MustCompile(`\bglobals\s*\(\s*\)`),
			regexp.MustCompile(`\blocals\s*\(\s*\)`),
		},
		ImportLines: []*regexp.Regexp{
			regexp.MustCompile(`^\s*import\s`),
			regexp.MustCompile(`^\s*from\s+[\w.]+\s+import\b`),
		},
		Builtins:             pythonBuiltins,
		Keywords:             pythonKeywords,
		LineComments:         []string{"#"},
		SkipCapitalizedCalls: true,
	},

	JavaScript: {
		Language: JavaScript,
		Definitions: []DefPattern{
			{regexp.MustCompile(`\bclass\s+(\w+)`), types.KindClass},
			{regexp.MustCompile(`\bfunction\s+(\w+)\s*\(`), types.KindFunction},
			{regexp.MustCompile(`\b(?:const|let|var)\s+(\w+)\s*=\s*(?:async\s+)?function\b`), types.KindFunction},
			{regexp.MustCompile(`\b(?:const|let|var)\s+(\w+)\s*=\s*(?:async\s*)?\([^)]*\)\s*=>`), types.KindFunction},
			{regexp.MustCompile(`\b(?:const|let|var)\s+(\w+)\s*=\s*(?:async\s+)?\w+\s*=>`), types.KindFunction},
			{regexp.MustCompile(`^\s*(?:static\s+)?(?:async\s+)?(\w+)\s*\([^)]*\)\s*\{`), types.KindMethod},
			{regexp.MustCompile(`^\s*(\w+)\s*:\s*(?:async\s+)?function\b`), types.KindMethod},
		},
		Calls: []CallPattern{
			{regexp.MustCompile(`(\w+)\.(\w+)\s*\(`), true},
			{regexp.MustCompile(`\b(\w+)\s*\(`), false},
		},
		Properties: []*regexp.Regexp{
			regexp.MustCompile(`this\.(\w+)\s*=`),
		},
		Dynamic: []*regexp.Regexp{
			regexp.MustCompile(`\beval\s*\(`),
			regexp.MustCompile(`\bnew\s+Function\s*\(`),
			regexp.MustCompile(`\w+\[\s*['"\x60]?\w+['"\x60]?\s*\]\s*\(`),
			regexp.MustCompile(`\bReflect\.\w+`),
			regexp.MustCompile(`\brequire\s*\(\s*[^'"]`),
			regexp.MustCompile(`\bimport\s*\(`),
		},
		ImportLines: []*regexp.Regexp{
			regexp.MustCompile(`^\s*import\s`),
			regexp.MustCompile(`^\s*export\s+\{`),
			regexp.MustCompile(`^\s*export\s+\*`),
			regexp.MustCompile(`^\s*(?:const|let|var)\s+.*=\s*require\s*\(`),
		},
		Builtins:             jsBuiltins,
		Keywords:             jsKeywords,
		LineComments:         []string{"//"},
		BlockCommentStart:    "/*",
		BlockCommentEnd:      "*/",
		SkipCapitalizedCalls: true,
	},

	PHP: {
		Language: PHP,
		Definitions: []DefPattern{
			{regexp.MustCompile(`\bclass\s+(\w+)`), types.KindClass},
			{regexp.MustCompile(`\binterface\s+(\w+)`), types.KindInterface},
			{regexp.MustCompile(`\btrait\s+(\w+)`), types.KindClass},
			{regexp.MustCompile(`\bfunction\s+(\w+)\s*\(`), types.KindFunction},
		},
		Calls: []CallPattern{
			{regexp.MustCompile(`\$(\w+)->(\w+)\s*\(`), true},
			{regexp.MustCompile(`(\w+)::(\w+)\s*\(`), true},
			{regexp.MustCompile(`\b(\w+)\s*\(`), false},
		},
		Properties: []*regexp.Regexp{
			regexp.MustCompile(`\$this->(\w+)\s*=`),
			regexp.MustCompile(`(?:public|private|protected)\s+(?:\??\w+\s+)?\$(\w+)`),
		},
		Dynamic: []*regexp.Regexp{
			regexp.MustCompile(`\bcall_user_func(?:_array)?\s*\(`),
			regexp.MustCompile(`\$\$\w+`),
			regexp.MustCompile(`\$\w+\s*\(`),
			regexp.MustCompile(`\bReflection\w*\s*(?:\(|::)`),
			regexp.MustCompile(`\beval\s*\(`),
			regexp.MustCompile(`->\$\w+\s*\(`),
			regexp.MustCompile(`\bmagic\s*__call\b|function\s+__call\s*\(`),
		},
		ImportLines: []*regexp.Regexp{
			regexp.MustCompile(`^\s*use\s+`),
			regexp.MustCompile(`^\s*require(?:_once)?\b`),
			regexp.MustCompile(`^\s*include(?:_once)?\b`),
			regexp.MustCompile(`^\s*namespace\s+`),
		},
		Builtins:             phpBuiltins,
		Keywords:             phpKeywords,
		LineComments:         []string{"//", "#"},
		BlockCommentStart:    "/*",
		BlockCommentEnd:      "*/",
		SkipCapitalizedCalls: true,
	},

	Rust: {
		Language: Rust,
		Definitions: []DefPattern{
			{regexp.MustCompile(`\bfn\s+(\w+)\s*[(<]`), types.KindFunction},
			{regexp.MustCompile(`\bstruct\s+(\w+)`), types.KindClass},
			{regexp.MustCompile(`\benum\s+(\w+)`), types.KindClass},
			{regexp.MustCompile(`\btrait\s+(\w+)`), types.KindInterface},
			{regexp.MustCompile(`\bmacro_rules!\s+(\w+)`), types.KindFunction},
		},
		Calls: []CallPattern{
			{regexp.MustCompile(`(\w+)::(\w+)\s*\(`), true},
			{regexp.MustCompile(`\.(\w+)\s*\(`), false},
			{regexp.MustCompile(`\b(\w+)\s*\(`), false},
		},
		Properties: nil,
		Dynamic: []*regexp.Regexp{
			regexp.MustCompile(`\bmem::transmute\b`),
			regexp.MustCompile(`\bBox<dyn\s`),
			regexp.MustCompile(`\bdyn\s+\w+`),
		},
		ImportLines: []*regexp.Regexp{
			regexp.MustCompile(`^\s*use\s+`),
			regexp.MustCompile(`^\s*extern\s+crate\b`),
			regexp.MustCompile(`^\s*mod\s+\w+\s*;`),
		},
		Builtins:             rustBuiltins,
		Keywords:             rustKeywords,
		LineComments:         []string{"//"},
		BlockCommentStart:    "/*",
		BlockCommentEnd:      "*/",
		SkipCapitalizedCalls: false,
	},
}

func init() {
	// TypeScript shares the JavaScript grammar plus its own declaration forms.
	js := grammars[JavaScript]
	ts := *js
	ts.Language = TypeScript
	ts.Definitions = append([]DefPattern{
		{regexp.MustCompile(`\binterface\s+(\w+)`), types.KindInterface},
		{regexp.MustCompile(`\btype\s+(\w+)(?:<[^>]+>)?\s*=`), types.KindInterface},
		{regexp.MustCompile(`\benum\s+(\w+)`), types.KindClass},
	}, js.Definitions...)
	grammars[TypeScript] = &ts
}
