// Package engine wires the scanner, resolver, policy, and store into the
// operations the CLI and external callers consume: scan, validate,
// feedback, fix, and watch.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"symguard/internal/config"
	"symguard/internal/index"
	"symguard/internal/lang"
	"symguard/internal/logging"
	"symguard/internal/policy"
	"symguard/internal/resolver"
	"symguard/internal/store"
	"symguard/internal/types"
)

// ErrScopeNotFound means the requested scope matched no scannable files.
// Callers treat it as a setup error, not a validation failure.
var ErrScopeNotFound = errors.New("scan scope not found")

// Options configures an Engine.
type Options struct {
	Workspace string
	Config    config.Config
	// Store is optional; without it symbols and whitelist entries live
	// only for the process lifetime.
	Store *store.Store
	// Session is optional; a fresh one is created when nil.
	Session *policy.Session
}

// Engine is the orchestrator. Safe for concurrent use after New.
type Engine struct {
	workspace string
	cfg       config.Config
	ix        *index.Index
	res       *resolver.Resolver
	sess      *policy.Session
	store     *store.Store
}

func New(opts Options) *Engine {
	sess := opts.Session
	if sess == nil {
		sess = policy.NewSession()
	}

	var symStore index.SymbolStore
	if opts.Store != nil {
		symStore = opts.Store
	}
	manifest := ""
	if opts.Cfg().Scan.ManifestPath != "" && opts.Workspace != "" {
		manifest = filepath.Join(opts.Workspace, opts.Cfg().Scan.ManifestPath)
	}

	ix := index.New(index.Options{
		Workers:      opts.Cfg().Scan.Workers,
		ManifestPath: manifest,
		MaxFileBytes: opts.Cfg().Scan.MaxFileBytes,
		Store:        symStore,
	})
	sess.SetDefaultMode(types.ParseMode(opts.Cfg().Policy.DefaultMode))

	e := &Engine{
		workspace: opts.Workspace,
		cfg:       opts.Cfg(),
		ix:        ix,
		res:       resolver.New(ix),
		sess:      sess,
		store:     opts.Store,
	}
	e.loadPersistedWhitelist()
	return e
}

// Cfg returns the options config, defaulted when zero.
func (o Options) Cfg() config.Config {
	if o.Config.Scan.Workers == 0 && o.Config.Policy.DefaultMode == "" {
		return config.Default()
	}
	return o.Config
}

func (e *Engine) loadPersistedWhitelist() {
	if e.store == nil || !e.cfg.Policy.PersistWhitelist {
		return
	}
	names, err := e.store.LoadWhitelist()
	if err != nil {
		logging.Get(logging.CategoryPolicy).Error("Failed to load persisted whitelist: %v", err)
		return
	}
	for _, n := range names {
		e.sess.Whitelist(n)
	}
	if len(names) > 0 {
		logging.Policy("Loaded %d persisted whitelist entries", len(names))
	}
}

// Config returns the effective workspace configuration.
func (e *Engine) Config() config.Config { return e.cfg }

// Session exposes the engine's session state to the caller.
func (e *Engine) Session() *policy.Session { return e.sess }

// Index exposes the symbol index, mainly for lookups in tooling.
func (e *Engine) Index() *index.Index { return e.ix }

// ResolveScope expands scope arguments into scannable files. Each
// argument may be a file, a directory (walked recursively), or a glob.
// No arguments means the whole workspace. Ignored directories from the
// scan config are skipped. Returns ErrScopeNotFound when nothing matches.
func (e *Engine) ResolveScope(args []string) ([]string, error) {
	if len(args) == 0 {
		args = []string{e.workspace}
	}

	var files []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, dup := seen[p]; dup {
			return
		}
		if _, ok := lang.Detect(p); !ok {
			return
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		switch {
		case err == nil && info.IsDir():
			e.walkDir(arg, add)
		case err == nil:
			add(arg)
		default:
			matches, _ := filepath.Glob(arg)
			for _, m := range matches {
				if fi, err := os.Stat(m); err == nil && fi.IsDir() {
					e.walkDir(m, add)
				} else {
					add(m)
				}
			}
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrScopeNotFound, args)
	}
	return files, nil
}

func (e *Engine) walkDir(root string, add func(string)) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && e.isIgnoredDir(name) {
				return filepath.SkipDir
			}
			return nil
		}
		add(path)
		return nil
	})
}

func (e *Engine) isIgnoredDir(name string) bool {
	if strings.HasPrefix(name, ".") && name != "." {
		return true
	}
	for _, p := range e.cfg.Scan.IgnorePatterns {
		if name == p {
			return true
		}
	}
	return false
}

// Scan indexes the scope files. Idempotent and cache-aware.
func (e *Engine) Scan(ctx context.Context, scope []string) (*index.ScanResult, error) {
	return e.ix.Scan(ctx, scope)
}

// Validate resolves references in the changed files and applies the
// policy. Per-file resolution runs in parallel; each file only reads the
// shared index and writes its own issue list.
func (e *Engine) Validate(ctx context.Context, changed []string) (types.ValidationResult, error) {
	mode := policy.BatchMode(changed, e.sess)
	result := types.ValidationResult{Mode: mode}
	if mode == types.ModeDisabled {
		return result, nil
	}

	workers := e.cfg.Scan.Workers
	if workers <= 0 {
		workers = index.DefaultWorkers
	}
	perFile := make([][]types.Issue, len(changed))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range changed {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			issues, err := e.res.ValidateFile(path, e.sess)
			if err != nil {
				// degrade like the scanner: unreadable files resolve to
				// no findings
				logging.Get(logging.CategoryResolve).Error("Skipping %s: %v", path, err)
				return nil
			}
			perFile[i] = issues
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, fmt.Errorf("validate: %w", err)
	}

	for _, issues := range perFile {
		result.Issues = append(result.Issues, issues...)
	}
	result.Blocked = policy.ShouldBlock(result.Issues, mode)
	logging.Policy("Validated %d files: %d issues, mode %s, blocked %v",
		len(changed), len(result.Issues), mode, result.Blocked)
	return result, nil
}

// RecordFeedback applies a user verdict. False positives join the session
// whitelist and, when configured, persist across sessions. Every verdict
// is stored for audit when a store is attached.
func (e *Engine) RecordFeedback(name string, verdict types.Verdict) error {
	e.sess.RecordFeedback(name, verdict)
	if e.store == nil {
		return nil
	}
	if err := e.store.RecordFeedback(e.sess.ID, name, verdict); err != nil {
		return fmt.Errorf("record feedback: %w", err)
	}
	if verdict == types.VerdictFalsePositive && e.cfg.Policy.PersistWhitelist {
		if err := e.store.AddWhitelist(name); err != nil {
			return fmt.Errorf("persist whitelist: %w", err)
		}
	}
	return nil
}

// ApplyFix rewrites call sites of oldName to newName in a file and
// invalidates its index entry so the next scan sees the new content.
func (e *Engine) ApplyFix(path, oldName, newName string) (int, error) {
	n, err := resolver.ApplyFix(path, oldName, newName)
	if err != nil {
		return n, err
	}
	if n > 0 {
		e.ix.Invalidate(path)
	}
	return n, nil
}
