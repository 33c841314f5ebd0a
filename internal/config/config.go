// Package config provides configuration management for the opportunity tracker.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrNoRelevanceKeywords      = errors.New("at least one direct_transport or service_type keyword is required")
	ErrInvalidDaysBack          = errors.New("samgov.search_days_back must be at least 1")
	ErrInvalidPageLimit         = errors.New("samgov.page_limit must be between 1 and 1000")
	ErrInvalidMaxPages          = errors.New("samgov.max_pages must be at least 1")
	ErrInvalidAutoHighValue     = errors.New("scoring.auto_high_value must be non-negative")
	ErrInvalidMaxAttempts       = errors.New("retry.max_attempts must be at least 1")
	ErrInvalidInitialDelay      = errors.New("retry.initial_delay_ms must be non-negative")
	ErrInvalidBackoffMultiplier = errors.New("retry.backoff_multiplier must be >= 1.0")
	ErrInvalidTimeout           = errors.New("retry.timeout_sec must be at least 1")
	ErrMissingOutputPath        = errors.New("output.base_path is required")
	ErrInvalidDigestTopN        = errors.New("output.digest_top_n must be at least 1")
	ErrInvalidLogLevel          = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Config represents the complete tracker configuration.
type Config struct {
	SAMGov   SAMGovConfig   `yaml:"samgov"`
	Keywords KeywordsConfig `yaml:"keywords"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	Retry    RetryPolicy    `yaml:"retry"`
	Manual   ManualConfig   `yaml:"manual"`
	Seen     SeenConfig     `yaml:"seen"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// SAMGovConfig contains settings for the SAM.gov opportunities API.
type SAMGovConfig struct {
	APIKey         string   `yaml:"api_key"`
	BaseURL        string   `yaml:"base_url"`
	NAICSCodes     []string `yaml:"naics_codes"`
	States         []string `yaml:"states"`
	SearchDaysBack int      `yaml:"search_days_back"`
	PageLimit      int      `yaml:"page_limit"`
	MaxPages       int      `yaml:"max_pages"`
}

// KeywordsConfig holds the three keyword lists driving relevance scoring.
type KeywordsConfig struct {
	DirectTransport []string `yaml:"direct_transport"`
	ServiceType     []string `yaml:"service_type"`
	Exclude         []string `yaml:"exclude"`
}

// ScoringConfig holds scoring thresholds.
type ScoringConfig struct {
	// AutoHighValue is the award amount at or above which an opportunity
	// is tiered high regardless of keyword matches.
	AutoHighValue float64 `yaml:"auto_high_value"`
}

// RetryPolicy defines retry behavior for the API collaborator.
type RetryPolicy struct {
	MaxAttempts       int     `yaml:"max_attempts"`
	InitialDelayMs    int     `yaml:"initial_delay_ms"`
	MaxDelayMs        int     `yaml:"max_delay_ms"`
	BackoffMultiplier float64 `yaml:"backoff_multiplier"`
	TimeoutSec        int     `yaml:"timeout_sec"`
}

// ManualConfig locates the hand-curated entries file.
type ManualConfig struct {
	Path string `yaml:"path"`
}

// SeenConfig locates the cross-run seen-ID snapshot.
type SeenConfig struct {
	Path string `yaml:"path"`
}

// OutputConfig defines where rendered artifacts are written.
type OutputConfig struct {
	BasePath     string `yaml:"base_path"`
	HTMLFile     string `yaml:"html_file"`
	CSVFile      string `yaml:"csv_file"`
	DigestFile   string `yaml:"digest_file"`
	SnapshotFile string `yaml:"snapshot_file"`
	DigestTopN   int    `yaml:"digest_top_n"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// LoadConfig loads configuration from a YAML file, applies defaults, and
// validates the result.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// ApplyDefaults fills in zero-valued fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.SAMGov.BaseURL == "" {
		c.SAMGov.BaseURL = "https://api.sam.gov/opportunities/v2/search"
	}

	if c.SAMGov.SearchDaysBack == 0 {
		c.SAMGov.SearchDaysBack = 365
	}

	if c.SAMGov.PageLimit == 0 {
		c.SAMGov.PageLimit = 25
	}

	if c.SAMGov.MaxPages == 0 {
		c.SAMGov.MaxPages = 40
	}

	if len(c.SAMGov.States) == 0 {
		c.SAMGov.States = []string{"MA"}
	}

	if c.Scoring.AutoHighValue == 0 {
		c.Scoring.AutoHighValue = 500000
	}

	if c.Retry.MaxAttempts == 0 {
		c.Retry.MaxAttempts = 3
	}

	if c.Retry.InitialDelayMs == 0 {
		c.Retry.InitialDelayMs = 500
	}

	if c.Retry.MaxDelayMs == 0 {
		c.Retry.MaxDelayMs = 30000
	}

	if c.Retry.BackoffMultiplier == 0 {
		c.Retry.BackoffMultiplier = 2.0
	}

	if c.Retry.TimeoutSec == 0 {
		c.Retry.TimeoutSec = 60
	}

	if c.Manual.Path == "" {
		c.Manual.Path = "manual_opportunities.json"
	}

	if c.Seen.Path == "" {
		c.Seen.Path = "seen_opportunities.json"
	}

	if c.Output.BasePath == "" {
		c.Output.BasePath = "docs"
	}

	if c.Output.HTMLFile == "" {
		c.Output.HTMLFile = "index.html"
	}

	if c.Output.CSVFile == "" {
		c.Output.CSVFile = "opportunities.csv"
	}

	if c.Output.DigestFile == "" {
		c.Output.DigestFile = "digest.md"
	}

	if c.Output.SnapshotFile == "" {
		c.Output.SnapshotFile = "opportunities.json"
	}

	if c.Output.DigestTopN == 0 {
		c.Output.DigestTopN = 20
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if len(c.Keywords.DirectTransport) == 0 && len(c.Keywords.ServiceType) == 0 {
		return ErrNoRelevanceKeywords
	}

	if c.SAMGov.SearchDaysBack < 1 {
		return ErrInvalidDaysBack
	}

	if c.SAMGov.PageLimit < 1 || c.SAMGov.PageLimit > 1000 {
		return ErrInvalidPageLimit
	}

	if c.SAMGov.MaxPages < 1 {
		return ErrInvalidMaxPages
	}

	if c.Scoring.AutoHighValue < 0 {
		return ErrInvalidAutoHighValue
	}

	if c.Retry.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}

	if c.Retry.InitialDelayMs < 0 {
		return ErrInvalidInitialDelay
	}

	if c.Retry.BackoffMultiplier < 1.0 {
		return ErrInvalidBackoffMultiplier
	}

	if c.Retry.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	if c.Output.BasePath == "" {
		return ErrMissingOutputPath
	}

	if c.Output.DigestTopN < 1 {
		return ErrInvalidDigestTopN
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// GetRetryDelay calculates exponential backoff delay for attempt number.
func (rp *RetryPolicy) GetRetryDelay(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}

	delayMs := float64(rp.InitialDelayMs)
	for i := 1; i < attempt; i++ {
		delayMs *= rp.BackoffMultiplier
	}

	// Cap at max delay
	if int(delayMs) > rp.MaxDelayMs {
		delayMs = float64(rp.MaxDelayMs)
	}

	return time.Duration(int(delayMs)) * time.Millisecond
}

// GetTimeout returns the per-request timeout duration.
func (rp *RetryPolicy) GetTimeout() time.Duration {
	return time.Duration(rp.TimeoutSec) * time.Second
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{NAICS: %d, States: %d, MaxAttempts: %d, Output: %s}",
		len(c.SAMGov.NAICSCodes),
		len(c.SAMGov.States),
		c.Retry.MaxAttempts,
		c.Output.BasePath,
	)
}
