// Package config provides configuration loading and validation for the grader.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config represents the grader configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or must be
// provided via CLI flags. The Gemini API key always comes from the
// environment (GEMINI_API_KEY), never from the file.
type Config struct {
	// Server
	Port int `json:"port,omitempty"` // HTTP port for the serve command

	// Timeouts and limits (seconds / minutes to keep the JSON readable)
	FetchTimeoutSec    int `json:"fetch_timeout_sec,omitempty"`    // Job URL fetch timeout
	AnalysisTimeoutSec int `json:"analysis_timeout_sec,omitempty"` // Analysis engine call timeout
	SessionTTLMin      int `json:"session_ttl_min,omitempty"`      // Idle session eviction; 0 disables

	// Models
	ScoreModel   string `json:"score_model,omitempty"`   // Model for score/missing-skills modes
	SummaryModel string `json:"summary_model,omitempty"` // Model for the tailored summary mode

	// Behavior
	UseBrowser bool `json:"use_browser,omitempty"` // Headless browser fallback for SPA job boards
	Verbose    bool `json:"verbose,omitempty"`     // Print detailed debug information
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:               8080,
		FetchTimeoutSec:    20,
		AnalysisTimeoutSec: 90,
		SessionTTLMin:      24 * 60,
	}
}

// Load loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.FetchTimeoutSec < 0 {
		return fmt.Errorf("config error: 'fetch_timeout_sec' must be non-negative")
	}
	if c.AnalysisTimeoutSec < 0 {
		return fmt.Errorf("config error: 'analysis_timeout_sec' must be non-negative")
	}
	if c.SessionTTLMin < 0 {
		return fmt.Errorf("config error: 'session_ttl_min' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from
// defaults. Bool fields are not merged; CLI flags always win for those.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.FetchTimeoutSec == 0 {
		result.FetchTimeoutSec = defaults.FetchTimeoutSec
	}
	if result.AnalysisTimeoutSec == 0 {
		result.AnalysisTimeoutSec = defaults.AnalysisTimeoutSec
	}
	if result.SessionTTLMin == 0 {
		result.SessionTTLMin = defaults.SessionTTLMin
	}
	if result.ScoreModel == "" {
		result.ScoreModel = defaults.ScoreModel
	}
	if result.SummaryModel == "" {
		result.SummaryModel = defaults.SummaryModel
	}

	return result
}

// FetchTimeout returns the job URL fetch timeout as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSec) * time.Second
}

// AnalysisTimeout returns the engine call timeout as a duration.
func (c *Config) AnalysisTimeout() time.Duration {
	return time.Duration(c.AnalysisTimeoutSec) * time.Second
}

// SessionTTL returns the idle session eviction window as a duration.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMin) * time.Minute
}
