// Package config loads the wp tool configuration from a YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the user-tunable settings of the tool.
type Config struct {
	// LedgerFile is the path of the JSONL operations file.
	LedgerFile string `yaml:"ledger_file"`
	// MarketSymbols are the tickers shown on the market strip, bare form.
	MarketSymbols []string `yaml:"market_symbols"`
	// LocalSuffix is appended to bare tickers for local-exchange quote
	// lookups.
	LocalSuffix string `yaml:"local_suffix"`
	// RegimeCutover overrides the official-rate cutover date (ISO format).
	// Empty keeps the built-in default.
	RegimeCutover string `yaml:"regime_cutover,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		LedgerFile:    "operations.jsonl",
		MarketSymbols: []string{"GGAL", "YPF", "AAPL", "GOOGL", "MSFT", "MELI"},
		LocalSuffix:   ".BA",
	}
}

// DefaultPath returns the conventional config location under the user config
// directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "wp.yaml"
	}
	return filepath.Join(dir, "wp", "config.yaml")
}

// Load reads the configuration from path. A missing file is not an error and
// yields the defaults; a present but invalid file is.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to path, creating parent directories as
// needed.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	if c.LedgerFile == "" {
		return fmt.Errorf("ledger_file is required")
	}
	for _, s := range c.MarketSymbols {
		if s == "" {
			return fmt.Errorf("market_symbols must not contain empty entries")
		}
	}
	return nil
}

// QuoteSymbols returns the market symbols with the local suffix applied, the
// form quote sources know them by.
func (c *Config) QuoteSymbols() []string {
	suffix := c.LocalSuffix
	out := make([]string, len(c.MarketSymbols))
	for i, s := range c.MarketSymbols {
		out[i] = s + suffix
	}
	return out
}
