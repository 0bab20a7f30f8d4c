// Package index is the codebase symbol index: a parallel, cache-aware scan
// of the scope files that maps every defined name to its locations.
package index

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"symguard/internal/lang"
	"symguard/internal/logging"
	"symguard/internal/types"
)

// ReadFileFunc reads a file's content. Replaceable in tests to count reads.
type ReadFileFunc func(path string) ([]byte, error)

// SymbolStore persists per-file symbol rows keyed by fingerprint, so a new
// process can warm-start without re-parsing unchanged files.
type SymbolStore interface {
	LoadFileSymbols(path, fingerprint string) (map[string][]types.SymbolLocation, bool, error)
	SaveFileSymbols(path, fingerprint string, defs map[string][]types.SymbolLocation) error
	DeleteFileSymbols(path string) error
}

// Options configures an Index.
type Options struct {
	// Workers bounds concurrent file reads. Zero means DefaultWorkers.
	Workers int
	// ManifestPath is the JSON fingerprint manifest; "" disables it.
	ManifestPath string
	// MaxFileBytes skips larger files entirely. Zero means no cap.
	MaxFileBytes int64
	// Store, when set, persists symbols across processes.
	Store SymbolStore
	// ReadFile overrides file reading, mainly for tests.
	ReadFile ReadFileFunc
}

const DefaultWorkers = 8

// Index holds every known symbol definition. Writes happen only inside
// Scan and Invalidate; resolution reads it concurrently afterwards.
type Index struct {
	mu        sync.RWMutex
	defs      map[string][]types.SymbolLocation
	fileNames map[string][]string // file -> names defined in it

	cache        *FileCache
	store        SymbolStore
	readFile     ReadFileFunc
	workers      int
	maxFileBytes int64
}

// ScanResult summarizes one Scan call.
type ScanResult struct {
	Symbols   int // total symbol locations in the index after the scan
	Scanned   int // files parsed this call
	CacheHits int // files reused from manifest or store
	Skipped   int // unsupported or oversized files
	Warnings  []string
	Duration  time.Duration
}

func New(opts Options) *Index {
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	readFile := opts.ReadFile
	if readFile == nil {
		readFile = os.ReadFile
	}
	return &Index{
		defs:         make(map[string][]types.SymbolLocation),
		fileNames:    make(map[string][]string),
		cache:        NewFileCache(opts.ManifestPath),
		store:        opts.Store,
		readFile:     readFile,
		workers:      workers,
		maxFileBytes: opts.MaxFileBytes,
	}
}

// fileResult is one worker's output, merged after the pool drains.
type fileResult struct {
	path    string
	defs    map[string][]types.SymbolLocation
	reused  bool // in-memory entry still valid, nothing to merge
	hit     bool
	skipped bool
	warning string
}

// Scan indexes the scope files. Idempotent: a second call re-parses only
// files whose mtime+size fingerprint changed. Unreadable files become
// warnings, never errors.
func (ix *Index) Scan(ctx context.Context, files []string) (*ScanResult, error) {
	start := time.Now()
	logging.Scan("Index scan starting: %d files, %d workers", len(files), ix.workers)

	results := make([]fileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ix.workers)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = ix.scanFile(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		// Partial results are still merged; the index stays additive and
		// a retry picks up where this call stopped.
		ix.merge(results)
		return nil, fmt.Errorf("index scan: %w", err)
	}

	res := ix.merge(results)
	res.Duration = time.Since(start)
	if err := ix.cache.Save(); err != nil {
		logging.Get(logging.CategoryScan).Error("Failed to save scan manifest: %v", err)
	}
	logging.Scan("Index scan done: %d symbols, %d parsed, %d cached, %d warnings in %s",
		res.Symbols, res.Scanned, res.CacheHits, len(res.Warnings), res.Duration)
	return res, nil
}

func (ix *Index) scanFile(path string) fileResult {
	language, ok := lang.Detect(path)
	if !ok {
		return fileResult{path: path, skipped: true}
	}
	g, ok := lang.Get(language)
	if !ok {
		return fileResult{path: path, skipped: true}
	}

	info, err := os.Stat(path)
	if err != nil {
		return fileResult{path: path, warning: fmt.Sprintf("%s: %v", path, err)}
	}
	if ix.maxFileBytes > 0 && info.Size() > ix.maxFileBytes {
		logging.ScanDebug("Skipping %s: %d bytes over the %d cap", path, info.Size(), ix.maxFileBytes)
		return fileResult{path: path, skipped: true}
	}

	if !ix.cache.Changed(path, info) && ix.hasFile(path) {
		return fileResult{path: path, reused: true, hit: true}
	}

	fp := Fingerprint(info)
	if ix.store != nil {
		if defs, found, err := ix.store.LoadFileSymbols(path, fp); err == nil && found {
			ix.cache.Update(path, info)
			return fileResult{path: path, defs: defs, hit: true}
		}
	}

	content, err := ix.readFile(path)
	if err != nil {
		return fileResult{path: path, warning: fmt.Sprintf("%s: %v", path, err)}
	}
	defs := ExtractDefinitions(g, path, string(content))
	ix.cache.Update(path, info)
	if ix.store != nil {
		if err := ix.store.SaveFileSymbols(path, fp, defs); err != nil {
			logging.Get(logging.CategoryStore).Error("Failed to persist symbols for %s: %v", path, err)
		}
	}
	return fileResult{path: path, defs: defs}
}

func (ix *Index) merge(results []fileResult) *ScanResult {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	res := &ScanResult{}
	for _, r := range results {
		switch {
		case r.path == "": // worker never ran (cancelled)
		case r.skipped:
			res.Skipped++
		case r.warning != "":
			res.Warnings = append(res.Warnings, r.warning)
		case r.reused:
			res.CacheHits++
		default:
			if r.hit {
				res.CacheHits++
			} else {
				res.Scanned++
			}
			ix.removeFileLocked(r.path)
			names := make([]string, 0, len(r.defs))
			for name, locs := range r.defs {
				ix.defs[name] = append(ix.defs[name], locs...)
				names = append(names, name)
			}
			ix.fileNames[r.path] = names
		}
	}
	for _, locs := range ix.defs {
		res.Symbols += len(locs)
	}
	return res
}

// Lookup returns every known definition of a name, nil when undefined.
func (ix *Index) Lookup(name string) []types.SymbolLocation {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	locs := ix.defs[name]
	if len(locs) == 0 {
		return nil
	}
	out := make([]types.SymbolLocation, len(locs))
	copy(out, locs)
	return out
}

// FuzzyMatch returns the closest defined names to name, for suggestion
// display only. Results are capped at maxResults and filtered by cutoff.
func (ix *Index) FuzzyMatch(name string, maxResults int, cutoff float64) []string {
	ix.mu.RLock()
	candidates := make([]string, 0, len(ix.defs))
	for n := range ix.defs {
		candidates = append(candidates, n)
	}
	ix.mu.RUnlock()
	return rankSimilar(name, candidates, maxResults, cutoff)
}

// Invalidate drops a file's symbols and cache entry so the next Scan
// re-parses it. Used by the watcher on change/remove events.
func (ix *Index) Invalidate(path string) {
	ix.mu.Lock()
	ix.removeFileLocked(path)
	ix.mu.Unlock()
	ix.cache.Forget(path)
	if ix.store != nil {
		if err := ix.store.DeleteFileSymbols(path); err != nil {
			logging.Get(logging.CategoryStore).Error("Failed to drop stored symbols for %s: %v", path, err)
		}
	}
}

// Symbols returns the total number of symbol locations currently indexed.
func (ix *Index) Symbols() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	n := 0
	for _, locs := range ix.defs {
		n += len(locs)
	}
	return n
}

func (ix *Index) hasFile(path string) bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	_, ok := ix.fileNames[path]
	return ok
}

func (ix *Index) removeFileLocked(path string) {
	names, ok := ix.fileNames[path]
	if !ok {
		return
	}
	for _, name := range names {
		locs := ix.defs[name][:0]
		for _, loc := range ix.defs[name] {
			if loc.File != path {
				locs = append(locs, loc)
			}
		}
		if len(locs) == 0 {
			delete(ix.defs, name)
		} else {
			ix.defs[name] = locs
		}
	}
	delete(ix.fileNames, path)
}
