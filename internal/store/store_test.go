package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"symguard/internal/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "symbols.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveLoadFileSymbols(t *testing.T) {
	s := openTestStore(t)

	defs := map[string][]types.SymbolLocation{
		"processOrder": {{File: "svc/orders.py", Line: 10, Kind: types.KindFunction}},
		"OrderService": {{File: "svc/orders.py", Line: 3, Kind: types.KindClass}},
	}
	require.NoError(t, s.SaveFileSymbols("svc/orders.py", "100-200", defs))

	got, found, err := s.LoadFileSymbols("svc/orders.py", "100-200")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, defs, got)

	// stale fingerprint misses
	_, found, err = s.LoadFileSymbols("svc/orders.py", "101-200")
	require.NoError(t, err)
	assert.False(t, found)

	// unknown file misses
	_, found, err = s.LoadFileSymbols("svc/other.py", "100-200")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSaveFileSymbolsReplacesOldRows(t *testing.T) {
	s := openTestStore(t)

	first := map[string][]types.SymbolLocation{
		"oldName": {{File: "a.go", Line: 1, Kind: types.KindFunction}},
	}
	require.NoError(t, s.SaveFileSymbols("a.go", "1-1", first))

	second := map[string][]types.SymbolLocation{
		"newName": {{File: "a.go", Line: 2, Kind: types.KindFunction}},
	}
	require.NoError(t, s.SaveFileSymbols("a.go", "2-2", second))

	got, found, err := s.LoadFileSymbols("a.go", "2-2")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, second, got)
	assert.NotContains(t, got, "oldName")
}

func TestDeleteFileSymbols(t *testing.T) {
	s := openTestStore(t)

	defs := map[string][]types.SymbolLocation{
		"handler": {{File: "h.go", Line: 5, Kind: types.KindFunction}},
	}
	require.NoError(t, s.SaveFileSymbols("h.go", "1-1", defs))
	require.NoError(t, s.DeleteFileSymbols("h.go"))

	_, found, err := s.LoadFileSymbols("h.go", "1-1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestWhitelistPersistence(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.AddWhitelist("customHelper"))
	require.NoError(t, s.AddWhitelist("customHelper")) // idempotent
	require.NoError(t, s.AddWhitelist("anotherHelper"))

	names, err := s.LoadWhitelist()
	require.NoError(t, err)
	assert.Equal(t, []string{"anotherHelper", "customHelper"}, names)
}

func TestFeedbackAudit(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.RecordFeedback("sess-1", "getOrderById", types.VerdictFalsePositive))
	require.NoError(t, s.RecordFeedback("sess-1", "getOrderById", types.VerdictConfirmed))
	require.NoError(t, s.RecordFeedback("sess-2", "getOrderById", types.VerdictConfirmed))

	counts, err := s.FeedbackCounts("getOrderById")
	require.NoError(t, err)
	assert.Equal(t, 1, counts[types.VerdictFalsePositive])
	assert.Equal(t, 2, counts[types.VerdictConfirmed])
}
