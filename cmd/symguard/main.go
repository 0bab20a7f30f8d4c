package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"symguard/internal/config"
	"symguard/internal/engine"
	"symguard/internal/logging"
	"symguard/internal/report"
	"symguard/internal/store"
	"symguard/internal/types"
)

const (
	exitOK    = 0
	exitBlock = 1
	exitSetup = 2
)

var (
	// Global flags
	verbose   bool
	workspace string
	modeFlag  string
	noStore   bool
	timeout   time.Duration

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "symguard",
	Short: "symguard - cross-language symbol hallucination detector",
	Long: `symguard indexes symbol definitions across a codebase and flags
references in changed files that resolve to nothing: not a local
definition, not a session symbol, not a builtin, not an import, and
not anything the scanned codebase defines.

Each unresolved reference carries a confidence score; in strict mode
a high volume of high-confidence issues blocks the change.

Typical flow:
  symguard scan                       # build the symbol index
  symguard validate changed.py        # check a changed file
  symguard fix app.py getOrderByid getOrderById`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		if err := logging.Initialize(resolveWorkspace()); err != nil {
			fmt.Fprintf(os.Stderr, "warning: file logging unavailable: %v\n", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.CloseAll()
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// scanCmd builds or refreshes the symbol index
var scanCmd = &cobra.Command{
	Use:   "scan [paths...]",
	Short: "Index symbol definitions in the workspace",
	Long: `Walks the given paths (default: the whole workspace), extracts
symbol definitions from every supported source file, and persists
them to .symguard/ so later validations start warm.

Unchanged files are served from the cache and not re-parsed.`,
	RunE: runScan,
}

// validateCmd checks changed files against the index
var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Flag unresolvable symbol references in changed files",
	Long: `Extracts every referenced symbol from the given files and resolves
each against local definitions, session symbols, the whitelist,
language builtins, imports, and the codebase index. Whatever is left
is reported with a confidence score and fuzzy suggestions.

Exit codes: 0 clean or warnings only, 1 blocked, 2 setup error.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

// fixCmd rewrites one symbol name in a file
var fixCmd = &cobra.Command{
	Use:   "fix [file] [old-name] [new-name]",
	Short: "Rename a symbol reference in a file",
	Long: `Replaces whole-word occurrences of old-name with new-name in the
given file, skipping lines that define old-name. Use this to apply a
suggestion from a validate report.`,
	Args: cobra.ExactArgs(3),
	RunE: runFix,
}

// feedbackCmd records a verdict on a reported issue
var feedbackCmd = &cobra.Command{
	Use:   "feedback [symbol] [verdict]",
	Short: "Record whether a reported symbol was a real problem",
	Long: `Verdicts: confirmed, false_positive, fixed.

A false_positive verdict whitelists the symbol so it is never
reported again in this workspace.`,
	Args: cobra.ExactArgs(2),
	RunE: runFeedback,
}

// watchCmd keeps the index fresh as files change
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the workspace and re-index files as they change",
	RunE:  runWatch,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace directory (default: current)")
	rootCmd.PersistentFlags().BoolVar(&noStore, "no-store", false, "Skip the sqlite store (in-memory run)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "Operation timeout")

	validateCmd.Flags().StringVar(&modeFlag, "mode", "", "Override enforcement mode (strict|warn|disabled)")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(feedbackCmd)
	rootCmd.AddCommand(watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitSetup)
	}
}

func resolveWorkspace() string {
	if workspace != "" {
		return workspace
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return cwd
}

// setup loads config, opens the store, and builds an engine. The returned
// cleanup closes the store and is safe to call when no store was opened.
func setup() (*engine.Engine, func(), error) {
	ws := resolveWorkspace()
	cfg, err := config.Load(ws)
	if err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}

	var st *store.Store
	if !noStore {
		st, err = store.Open(filepath.Join(ws, cfg.Scan.StorePath))
		if err != nil {
			return nil, nil, fmt.Errorf("store: %w", err)
		}
	}

	eng := engine.New(engine.Options{Workspace: ws, Config: cfg, Store: st})
	cleanup := func() {
		if st != nil {
			_ = st.Close()
		}
	}
	return eng, cleanup, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("Received shutdown signal")
		cancel()
	}()
	return ctx, cancel
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	eng, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	scope, err := eng.ResolveScope(args)
	if err != nil {
		return err
	}
	logger.Info("Scanning", zap.Int("files", len(scope)))

	res, err := eng.Scan(ctx, scope)
	if err != nil {
		return err
	}

	fmt.Printf("Indexed %d symbol(s) across %d file(s) in %s (%d cached, %d skipped)\n",
		res.Symbols, res.Scanned+res.CacheHits, res.Duration.Round(time.Millisecond),
		res.CacheHits, res.Skipped)
	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	eng, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	if modeFlag != "" {
		mode, err := parseMode(modeFlag)
		if err != nil {
			return err
		}
		eng.Session().SetModeOverride(mode)
	}

	// warm the index so references resolve against the whole codebase
	scope, err := eng.ResolveScope(nil)
	if err == nil {
		if _, err := eng.Scan(ctx, scope); err != nil {
			return err
		}
	} else {
		logger.Debug("Empty workspace, validating against builtins only", zap.Error(err))
	}

	changed, err := eng.ResolveScope(args)
	if err != nil {
		return err
	}

	result, err := eng.Validate(ctx, changed)
	if err != nil {
		return err
	}

	fmt.Println(report.Render(result, eng.Config().Report.MaxIssues))
	if result.Blocked {
		cleanup()
		logging.CloseAll()
		os.Exit(exitBlock)
	}
	return nil
}

func runFix(cmd *cobra.Command, args []string) error {
	eng, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	path, oldName, newName := args[0], args[1], args[2]
	n, err := eng.ApplyFix(path, oldName, newName)
	if err != nil {
		return err
	}
	if n == 0 {
		fmt.Printf("No occurrences of %q in %s\n", oldName, path)
		return nil
	}
	fmt.Printf("Replaced %d occurrence(s) of %q with %q in %s\n", n, oldName, newName, path)
	return nil
}

func runFeedback(cmd *cobra.Command, args []string) error {
	eng, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	name := args[0]
	verdict, err := parseVerdict(args[1])
	if err != nil {
		return err
	}
	if err := eng.RecordFeedback(name, verdict); err != nil {
		return err
	}
	if verdict == types.VerdictFalsePositive {
		fmt.Printf("Whitelisted %q\n", name)
	} else {
		fmt.Printf("Recorded %s for %q\n", verdict, name)
	}
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	eng, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	// initial scan so the index starts complete
	if scope, err := eng.ResolveScope(nil); err == nil {
		if _, err := eng.Scan(ctx, scope); err != nil {
			return err
		}
	}

	logger.Info("Watching", zap.String("workspace", resolveWorkspace()))
	err = eng.Watch(ctx, func(ev engine.WatchEvent) {
		if ev.Removed {
			fmt.Printf("removed %s\n", ev.Path)
			return
		}
		fmt.Printf("re-indexed %s (%d symbols total)\n", ev.Path, ev.Symbols)
	})
	if err == context.Canceled || err == context.DeadlineExceeded {
		return nil
	}
	return err
}

func parseMode(s string) (types.Mode, error) {
	switch s {
	case "strict", "warn", "disabled", "off":
		return types.ParseMode(s), nil
	}
	return types.ModeWarn, fmt.Errorf("unknown mode %q (want strict, warn, or disabled)", s)
}

func parseVerdict(s string) (types.Verdict, error) {
	switch s {
	case "confirmed":
		return types.VerdictConfirmed, nil
	case "false_positive":
		return types.VerdictFalsePositive, nil
	case "fixed":
		return types.VerdictFixed, nil
	}
	return "", fmt.Errorf("unknown verdict %q (want confirmed, false_positive, or fixed)", s)
}
