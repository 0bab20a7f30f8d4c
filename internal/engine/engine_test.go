package engine

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"symguard/internal/config"
	"symguard/internal/store"
	"symguard/internal/types"
)

func newTestEngine(t *testing.T, files map[string]string) (*Engine, string) {
	t.Helper()
	ws := t.TempDir()
	for name, content := range files {
		p := filepath.Join(ws, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
	cfg := config.Default()
	cfg.Scan.ManifestPath = "" // keep unit tests free of manifest files
	return New(Options{Workspace: ws, Config: cfg}), ws
}

func TestResolveScopeWalksWorkspace(t *testing.T) {
	e, ws := newTestEngine(t, map[string]string{
		"src/orders.py":            "def find_order():\n    pass\n",
		"src/api.ts":               "export function ping() {}\n",
		"node_modules/pkg/x.js":    "function vendored() {}\n",
		".git/hooks/sample.py":     "def hook():\n    pass\n",
		"docs/readme.md":           "text",
		"dist/bundle.min.js":       "minified",
		"src/generated_pb2.py":     "def gen():\n    pass\n",
		"src/sub/shipping.test.ts": "test('x', () => {})\n",
	})

	files, err := e.ResolveScope(nil)
	require.NoError(t, err)

	rel := make([]string, len(files))
	for i, f := range files {
		r, _ := filepath.Rel(ws, f)
		rel[i] = r
	}
	assert.ElementsMatch(t, []string{
		"src/orders.py",
		"src/api.ts",
		"src/sub/shipping.test.ts",
	}, rel)
}

func TestResolveScopeExplicitArgsAndGlobs(t *testing.T) {
	e, ws := newTestEngine(t, map[string]string{
		"a.py": "def a():\n    pass\n",
		"b.py": "def b():\n    pass\n",
		"c.go": "package c\n",
	})

	files, err := e.ResolveScope([]string{filepath.Join(ws, "a.py")})
	require.NoError(t, err)
	assert.Len(t, files, 1)

	files, err = e.ResolveScope([]string{filepath.Join(ws, "*.py")})
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestResolveScopeNotFound(t *testing.T) {
	e, ws := newTestEngine(t, nil)
	_, err := e.ResolveScope([]string{filepath.Join(ws, "missing", "*.py")})
	assert.ErrorIs(t, err, ErrScopeNotFound)
}

func TestScanThenValidateCleanFile(t *testing.T) {
	e, ws := newTestEngine(t, map[string]string{
		"lib/orders.py": "def find_order_by_id(i):\n    return i\n",
		"app.py":        "def main():\n    return find_order_by_id(1)\n",
	})

	scope, err := e.ResolveScope(nil)
	require.NoError(t, err)
	res, err := e.Scan(context.Background(), scope)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Symbols)

	out, err := e.Validate(context.Background(), []string{filepath.Join(ws, "app.py")})
	require.NoError(t, err)
	assert.Empty(t, out.Issues)
	assert.False(t, out.Blocked)
}

func TestValidateFlagsAndFixClears(t *testing.T) {
	e, ws := newTestEngine(t, map[string]string{
		"lib/orders.py": "def find_order_by_id(i):\n    return i\n",
		"app.py":        "def main():\n    return find_order_by_idx(1)\n",
	})
	scope, err := e.ResolveScope(nil)
	require.NoError(t, err)
	_, err = e.Scan(context.Background(), scope)
	require.NoError(t, err)

	changed := []string{filepath.Join(ws, "app.py")}
	out, err := e.Validate(context.Background(), changed)
	require.NoError(t, err)
	require.Len(t, out.Issues, 1)
	assert.Equal(t, "find_order_by_idx", out.Issues[0].Name)
	assert.Contains(t, out.Issues[0].Suggestions, "find_order_by_id")

	n, err := e.ApplyFix(changed[0], "find_order_by_idx", "find_order_by_id")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	out, err = e.Validate(context.Background(), changed)
	require.NoError(t, err)
	assert.Empty(t, out.Issues)
}

func TestSessionSymbolsAreNeverFlagged(t *testing.T) {
	e, ws := newTestEngine(t, map[string]string{
		"app.py": "def main():\n    return helper_created_this_session()\n",
	})
	e.Session().DefineSymbol("helper_created_this_session")

	out, err := e.Validate(context.Background(), []string{filepath.Join(ws, "app.py")})
	require.NoError(t, err)
	assert.Empty(t, out.Issues)
}

func TestFeedbackWhitelistSuppressesAndPersists(t *testing.T) {
	ws := t.TempDir()
	appPath := filepath.Join(ws, "app.py")
	require.NoError(t, os.WriteFile(appPath, []byte("def main():\n    return unusual_helper()\n"), 0644))

	st, err := store.Open(filepath.Join(ws, ".symguard", "symbols.db"))
	require.NoError(t, err)
	defer st.Close()

	cfg := config.Default()
	cfg.Scan.ManifestPath = ""
	e := New(Options{Workspace: ws, Config: cfg, Store: st})

	out, err := e.Validate(context.Background(), []string{appPath})
	require.NoError(t, err)
	require.Len(t, out.Issues, 1)

	require.NoError(t, e.RecordFeedback("unusual_helper", types.VerdictFalsePositive))

	out, err = e.Validate(context.Background(), []string{appPath})
	require.NoError(t, err)
	assert.Empty(t, out.Issues, "whitelisted names are suppressed for the session")

	// a new engine over the same store inherits the whitelist
	e2 := New(Options{Workspace: ws, Config: cfg, Store: st})
	out, err = e2.Validate(context.Background(), []string{appPath})
	require.NoError(t, err)
	assert.Empty(t, out.Issues, "whitelist persists across sessions")
}

func TestValidateDisabledModeShortCircuits(t *testing.T) {
	e, ws := newTestEngine(t, map[string]string{
		"app.py": "def main():\n    return phantom_reference()\n",
	})
	e.Session().SetModeOverride(types.ModeDisabled)

	out, err := e.Validate(context.Background(), []string{filepath.Join(ws, "app.py")})
	require.NoError(t, err)
	assert.Equal(t, types.ModeDisabled, out.Mode)
	assert.Empty(t, out.Issues)
}

func TestValidateBlocksOnStrictVolume(t *testing.T) {
	content := `def main():
    phantom_alpha_routine()
    phantom_beta_routine()
    phantom_gamma_routine()
    phantom_delta_routine()
    phantom_epsilon_routine()
`
	e, ws := newTestEngine(t, map[string]string{"app.py": content})
	e.Session().SetModeOverride(types.ModeStrict)

	out, err := e.Validate(context.Background(), []string{filepath.Join(ws, "app.py")})
	require.NoError(t, err)
	require.Len(t, out.Issues, 5)
	for _, issue := range out.Issues {
		assert.Greater(t, issue.Confidence, 0.9)
	}
	assert.True(t, out.Blocked)

	// the same issues in warn mode never block
	e.Session().SetModeOverride(types.ModeWarn)
	out, err = e.Validate(context.Background(), []string{filepath.Join(ws, "app.py")})
	require.NoError(t, err)
	assert.False(t, out.Blocked)
}

func TestScanHonorsMaxFileBytes(t *testing.T) {
	big := "def oversized_helper():\n    pass\n" + strings.Repeat("x = 1\n", 2000)
	ws := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(ws, "big.py"), []byte(big), 0644))

	cfg := config.Default()
	cfg.Scan.ManifestPath = ""
	cfg.Scan.MaxFileBytes = 1
	e := New(Options{Workspace: ws, Config: cfg})

	scope, err := e.ResolveScope(nil)
	require.NoError(t, err)
	res, err := e.Scan(context.Background(), scope)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Symbols)
	assert.Equal(t, 1, res.Skipped)
}

func TestConfiguredDefaultModeApplies(t *testing.T) {
	content := `def main():
    phantom_alpha_routine()
    phantom_beta_routine()
    phantom_gamma_routine()
    phantom_delta_routine()
    phantom_epsilon_routine()
`
	ws := t.TempDir()
	appPath := filepath.Join(ws, "app.py")
	require.NoError(t, os.WriteFile(appPath, []byte(content), 0644))

	cfg := config.Default()
	cfg.Scan.ManifestPath = ""
	cfg.Policy.DefaultMode = "strict"
	e := New(Options{Workspace: ws, Config: cfg})

	out, err := e.Validate(context.Background(), []string{appPath})
	require.NoError(t, err)
	assert.Equal(t, types.ModeStrict, out.Mode)
	assert.True(t, out.Blocked)
}

func TestValidateUnreadableFileDegrades(t *testing.T) {
	e, ws := newTestEngine(t, nil)
	out, err := e.Validate(context.Background(), []string{filepath.Join(ws, "gone.py")})
	require.NoError(t, err)
	assert.Empty(t, out.Issues)
}

func TestWatchRescansChangedFile(t *testing.T) {
	e, ws := newTestEngine(t, map[string]string{
		"lib.py": "def original_fn():\n    pass\n",
	})
	scope, err := e.ResolveScope(nil)
	require.NoError(t, err)
	_, err = e.Scan(context.Background(), scope)
	require.NoError(t, err)
	require.Len(t, e.Index().Lookup("original_fn"), 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan WatchEvent, 16)
	done := make(chan error, 1)
	go func() {
		done <- e.Watch(ctx, func(ev WatchEvent) { events <- ev })
	}()

	// give the watcher time to register
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(ws, "lib.py"),
		[]byte("def renamed_fn():\n    pass\n"), 0644))

	select {
	case <-events:
	case <-time.After(5 * time.Second):
		t.Fatal("no watch event received")
	}

	assert.Eventually(t, func() bool {
		return len(e.Index().Lookup("renamed_fn")) == 1 && e.Index().Lookup("original_fn") == nil
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
