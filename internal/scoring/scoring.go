// Package scoring turns resolution signals into a confidence value: how
// likely an unresolved reference is a hallucinated symbol rather than a
// false positive of lexical analysis.
package scoring

import "symguard/internal/lang"

const (
	genericNamePenalty    = 0.3
	externalImportPenalty = 0.1
	fuzzyMatchBonus       = 0.1
	shortNamePenalty      = 0.2
	shortNameMax          = 3

	// Confidence never reaches zero: lexical analysis alone cannot prove
	// a reference is legitimate.
	floor   = 0.1
	ceiling = 1.0
)

// Input carries the per-reference signals the scorer consumes.
type Input struct {
	Name string
	// DynamicDensity is the file's dynamic-construct match count.
	DynamicDensity int
	// HasExternalImports is true when the file imports anything external.
	HasExternalImports bool
	// HasFuzzyMatch is true when a near-miss known name exists.
	HasFuzzyMatch bool
}

// Score computes confidence in [0.1, 1.0].
func Score(in Input) float64 {
	c := 1.0

	if lang.IsGenericName(in.Name) {
		c -= genericNamePenalty
	}
	if in.HasExternalImports {
		c -= externalImportPenalty
	}

	c *= dynamicModifier(in.DynamicDensity)

	if in.HasFuzzyMatch {
		// A near-miss makes a genuine typo more likely, not less.
		c += fuzzyMatchBonus
	}
	if len(in.Name) <= shortNameMax {
		c -= shortNamePenalty
	}

	if c < floor {
		return floor
	}
	if c > ceiling {
		return ceiling
	}
	return c
}

// dynamicModifier drops confidence sharply as a file leans on dynamic
// dispatch: getattr-heavy code resolves names the patterns cannot see.
func dynamicModifier(density int) float64 {
	switch {
	case density >= 10:
		return 0.3
	case density >= 5:
		return 0.5
	case density >= 2:
		return 0.7
	case density == 1:
		return 0.85
	default:
		return 1.0
	}
}
