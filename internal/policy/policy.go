// Package policy decides how strictly validation findings are enforced:
// per-file mode selection, batch mode combination, and the blocking rule.
package policy

import (
	"strings"

	"symguard/internal/logging"
	"symguard/internal/types"
)

// Filename fragments that imply sensitive code paths. A file matching one
// validates in strict mode unless explicitly overridden.
var criticalPatterns = []string{
	"controller", "service", "handler", "model", "repository",
	"middleware", "auth", "payment",
}

// Filename fragments for low-stakes files where aggressive flagging is
// mostly noise.
var relaxedPatterns = []string{
	"test", "spec", "config", "mock", "fixture", "example",
}

const (
	// blockThreshold is the minimum count of near-certain issues before
	// strict mode blocks. Isolated high-confidence hits stay warnings.
	blockThreshold = 5
	// blockConfidence is exclusive: an issue counts only above it.
	blockConfidence = 0.9
)

// FileMode resolves the validation mode for one file. Order: explicit
// per-file override, critical patterns, relaxed patterns, session-wide
// override, then the configured default (warn unless changed).
func FileMode(path string, s *Session) types.Mode {
	lower := strings.ToLower(path)

	if s != nil {
		if m, ok := s.FileOverride(path); ok {
			return m
		}
	}
	for _, p := range criticalPatterns {
		if strings.Contains(lower, p) {
			return types.ModeStrict
		}
	}
	for _, p := range relaxedPatterns {
		if strings.Contains(lower, p) {
			return types.ModeWarn
		}
	}
	if s != nil {
		if m, ok := s.ModeOverride(); ok {
			return m
		}
		return s.DefaultMode()
	}
	return types.ModeWarn
}

// BatchMode combines per-file modes for a validation batch. A session-wide
// override wins outright. Otherwise strict applies only when every file is
// strict, disabled only when every file is disabled, and the least-strict
// non-disabled mode wins the rest. A single sensitive file among ordinary
// ones must not force blocking on the whole batch.
func BatchMode(files []string, s *Session) types.Mode {
	if s != nil {
		if m, ok := s.ModeOverride(); ok {
			logging.Policy("Batch mode %s (session override)", m)
			return m
		}
	}
	if len(files) == 0 {
		if s != nil {
			return s.DefaultMode()
		}
		return types.ModeWarn
	}

	allStrict, allDisabled := true, true
	sawWarn := false
	for _, f := range files {
		switch FileMode(f, s) {
		case types.ModeStrict:
			allDisabled = false
		case types.ModeWarn:
			allStrict = false
			allDisabled = false
			sawWarn = true
		case types.ModeDisabled:
			allStrict = false
		}
	}

	var mode types.Mode
	switch {
	case allStrict:
		mode = types.ModeStrict
	case allDisabled:
		mode = types.ModeDisabled
	case sawWarn:
		mode = types.ModeWarn
	default:
		// strict and disabled files mixed: warn is the least-strict
		// non-disabled mode available
		mode = types.ModeWarn
	}
	logging.Policy("Batch mode %s for %d files", mode, len(files))
	return mode
}

// ShouldBlock applies the blocking rule: strict mode, and at least five
// issues with confidence strictly above 0.9.
func ShouldBlock(issues []types.Issue, mode types.Mode) bool {
	if mode != types.ModeStrict {
		return false
	}
	n := 0
	for _, issue := range issues {
		if issue.Confidence > blockConfidence {
			n++
		}
	}
	if n >= blockThreshold {
		logging.Policy("Blocking: %d issues above %.1f confidence", n, blockConfidence)
		return true
	}
	return false
}
