// Package config holds symguard's configuration: per-concern structs with
// defaults, loaded from .symguard/config.yaml and adjustable through
// environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration tree.
type Config struct {
	Scan    ScanConfig    `yaml:"scan" json:"scan"`
	Policy  PolicyConfig  `yaml:"policy" json:"policy"`
	Report  ReportConfig  `yaml:"report" json:"report"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// Default returns the full default configuration.
func Default() Config {
	return Config{
		Scan:    DefaultScanConfig(),
		Policy:  DefaultPolicyConfig(),
		Report:  DefaultReportConfig(),
		Logging: DefaultLoggingConfig(),
	}
}

// Load reads .symguard/config.yaml under the workspace, falling back to
// defaults when the file is missing, then applies env overrides.
func Load(workspace string) (Config, error) {
	cfg := Default()

	path := filepath.Join(workspace, ".symguard", "config.yaml")
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.normalize()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("SYMGUARD_SCAN_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Scan.Workers = n
		}
	}
	if v := os.Getenv("SYMGUARD_MAX_FILE_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			c.Scan.MaxFileBytes = n
		}
	}
	if v := os.Getenv("SYMGUARD_MODE"); v != "" {
		c.Policy.DefaultMode = v
	}
}

func (c *Config) normalize() {
	d := Default()
	if c.Scan.Workers <= 0 {
		c.Scan.Workers = d.Scan.Workers
	}
	if c.Scan.MaxFileBytes <= 0 {
		c.Scan.MaxFileBytes = d.Scan.MaxFileBytes
	}
	if len(c.Scan.IgnorePatterns) == 0 {
		c.Scan.IgnorePatterns = d.Scan.IgnorePatterns
	}
	if c.Report.MaxIssues <= 0 {
		c.Report.MaxIssues = d.Report.MaxIssues
	}
	if c.Policy.DefaultMode == "" {
		c.Policy.DefaultMode = d.Policy.DefaultMode
	}
}
