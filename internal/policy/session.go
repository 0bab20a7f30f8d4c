package policy

import (
	"sync"

	"github.com/google/uuid"

	"symguard/internal/logging"
	"symguard/internal/types"
)

// Session carries the caller-owned validation state: symbols defined
// earlier in the session, the false-positive whitelist, and mode
// overrides. Safe for concurrent use.
type Session struct {
	ID string

	mu            sync.RWMutex
	symbols       map[string]struct{}
	whitelist     map[string]struct{}
	fileOverrides map[string]types.Mode
	modeOverride  *types.Mode
	defaultMode   types.Mode
}

func NewSession() *Session {
	return &Session{
		ID:            uuid.NewString(),
		symbols:       make(map[string]struct{}),
		whitelist:     make(map[string]struct{}),
		fileOverrides: make(map[string]types.Mode),
		defaultMode:   types.ModeWarn,
	}
}

// DefineSymbol records a name created earlier in the session, so
// references to it resolve before the codebase index is consulted.
func (s *Session) DefineSymbol(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.symbols[name] = struct{}{}
}

// DefineSymbols records a batch of session-created names.
func (s *Session) DefineSymbols(names []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range names {
		s.symbols[n] = struct{}{}
	}
}

// HasSymbol reports whether the session defined name.
func (s *Session) HasSymbol(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.symbols[name]
	return ok
}

// Whitelist adds a name to the suppression list.
func (s *Session) Whitelist(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.whitelist[name] = struct{}{}
}

// IsWhitelisted reports whether name is suppressed.
func (s *Session) IsWhitelisted(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.whitelist[name]
	return ok
}

// WhitelistNames returns a snapshot of the whitelist.
func (s *Session) WhitelistNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.whitelist))
	for n := range s.whitelist {
		out = append(out, n)
	}
	return out
}

// SetFileOverride pins a validation mode for one file.
func (s *Session) SetFileOverride(path string, m types.Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fileOverrides[path] = m
}

// FileOverride returns the pinned mode for a file, if any.
func (s *Session) FileOverride(path string) (types.Mode, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.fileOverrides[path]
	return m, ok
}

// SetModeOverride pins a session-wide validation mode.
func (s *Session) SetModeOverride(m types.Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modeOverride = &m
}

// ClearModeOverride restores per-file mode resolution.
func (s *Session) ClearModeOverride() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modeOverride = nil
}

// SetDefaultMode changes the mode used when no pattern or override
// decides. The engine sets this from the workspace config.
func (s *Session) SetDefaultMode(m types.Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaultMode = m
}

// DefaultMode returns the fallback validation mode.
func (s *Session) DefaultMode() types.Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.defaultMode
}

// ModeOverride returns the session-wide mode, if set.
func (s *Session) ModeOverride() (types.Mode, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.modeOverride == nil {
		return 0, false
	}
	return *s.modeOverride, true
}

// RecordFeedback applies a user verdict on a flagged name. A false
// positive joins the whitelist and is suppressed for the rest of the
// session; other verdicts are audit-only.
func (s *Session) RecordFeedback(name string, verdict types.Verdict) {
	if verdict == types.VerdictFalsePositive {
		s.Whitelist(name)
		logging.Policy("Whitelisted %q after false-positive feedback", name)
		return
	}
	logging.PolicyDebug("Feedback on %q: %s", name, verdict)
}
