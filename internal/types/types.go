// Package types holds the shared data model for symguard.
// Keeping these definitions in a leaf package breaks import cycles between
// the resolver, policy, and index packages, which all exchange these values.
package types

// SymbolKind classifies what a defined symbol is.
type SymbolKind string

const (
	KindFunction  SymbolKind = "function"
	KindMethod    SymbolKind = "method"
	KindClass     SymbolKind = "class"
	KindInterface SymbolKind = "interface"
	KindProperty  SymbolKind = "property"
)

// SymbolLocation is a single place where a symbol is defined.
// Immutable once created.
type SymbolLocation struct {
	File string     `json:"file"`
	Line int        `json:"line"`
	Kind SymbolKind `json:"kind"`
}

// Issue is an unresolved symbol reference: a call site whose name could not
// be matched against any known symbol source.
type Issue struct {
	Name                string           `json:"name"`
	File                string           `json:"file"`
	Line                int              `json:"line"`
	Confidence          float64          `json:"confidence"`
	Reason              string           `json:"reason"`
	Suggestions         []string         `json:"suggestions,omitempty"`
	SuggestionLocations []SymbolLocation `json:"suggestion_locations,omitempty"`
}

// Severity buckets confidence into the tiers the report renderer uses.
func (i Issue) Severity() string {
	switch {
	case i.Confidence > 0.8:
		return "HIGH"
	case i.Confidence > 0.5:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

// Mode is the effective validation strictness for a file or batch.
type Mode int

const (
	ModeDisabled Mode = iota
	ModeWarn
	ModeStrict
)

func (m Mode) String() string {
	switch m {
	case ModeDisabled:
		return "off"
	case ModeWarn:
		return "warn"
	case ModeStrict:
		return "strict"
	default:
		return "unknown"
	}
}

// ParseMode maps a config/CLI string to a Mode. Unknown values fall back to
// warn, the global default.
func ParseMode(s string) Mode {
	switch s {
	case "off", "disabled":
		return ModeDisabled
	case "strict":
		return ModeStrict
	default:
		return ModeWarn
	}
}

// Verdict is a user judgement on a reported issue.
type Verdict string

const (
	VerdictFalsePositive Verdict = "false_positive"
	VerdictConfirmed     Verdict = "confirmed"
	VerdictFixed         Verdict = "fixed"
)

// ValidationResult is what a validation call hands back to the caller.
type ValidationResult struct {
	Issues  []Issue `json:"issues"`
	Mode    Mode    `json:"mode"`
	Blocked bool    `json:"blocked"`
}
