package config

import "runtime"

// ScanConfig controls the codebase symbol scan.
type ScanConfig struct {
	// Workers caps concurrent file reads during the index scan.
	Workers int `yaml:"workers" json:"workers,omitempty"`
	// IgnorePatterns skips matching directories (relative to workspace).
	IgnorePatterns []string `yaml:"ignore_patterns" json:"ignore_patterns,omitempty"`
	// MaxFileBytes skips pattern extraction for larger files.
	MaxFileBytes int64 `yaml:"max_file_bytes" json:"max_file_bytes,omitempty"`
	// StorePath is the SQLite symbol cache, relative to the workspace.
	StorePath string `yaml:"store_path" json:"store_path,omitempty"`
	// ManifestPath is the fingerprint manifest, relative to the workspace.
	ManifestPath string `yaml:"manifest_path" json:"manifest_path,omitempty"`
}

// DefaultScanConfig returns defaults for index scanning.
func DefaultScanConfig() ScanConfig {
	workers := runtime.NumCPU()
	if workers > 16 {
		workers = 16
	}
	if workers < 4 {
		workers = 4
	}
	return ScanConfig{
		Workers: workers,
		IgnorePatterns: []string{
			".git",
			".symguard",
			"node_modules",
			"vendor",
			"dist",
			"build",
			".next",
			"target",
			"bin",
			"obj",
			".venv",
			".cache",
			"__pycache__",
		},
		MaxFileBytes: 2 * 1024 * 1024,
		StorePath:    ".symguard/symbols.db",
		ManifestPath: ".symguard/cache/manifest.json",
	}
}

// PolicyConfig controls enforcement behavior.
type PolicyConfig struct {
	// DefaultMode applies when no file pattern or override decides:
	// off, warn, or strict.
	DefaultMode string `yaml:"default_mode" json:"default_mode,omitempty"`
	// PersistWhitelist carries false-positive feedback across sessions.
	PersistWhitelist bool `yaml:"persist_whitelist" json:"persist_whitelist,omitempty"`
}

func DefaultPolicyConfig() PolicyConfig {
	return PolicyConfig{
		DefaultMode:      "warn",
		PersistWhitelist: true,
	}
}

// ReportConfig controls human-facing output.
type ReportConfig struct {
	// MaxIssues caps the rendered issue list.
	MaxIssues int `yaml:"max_issues" json:"max_issues,omitempty"`
}

func DefaultReportConfig() ReportConfig {
	return ReportConfig{MaxIssues: 20}
}

// LoggingConfig configures the categorized file logger.
type LoggingConfig struct {
	Level      string          `yaml:"level" json:"level,omitempty"`           // debug, info, warn, error
	DebugMode  bool            `yaml:"debug_mode" json:"debug_mode,omitempty"` // Master toggle - false = no logging
	JSONFormat bool            `yaml:"json_format" json:"json_format,omitempty"`
	Categories map[string]bool `yaml:"categories" json:"categories,omitempty"` // Per-category toggles
}

func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{Level: "info"}
}
