package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the EDGAR fetcher.
type Config struct {
	// SEC holds client identity and HTTP settings for the EDGAR API.
	SEC SECConfig `yaml:"sec" json:"sec"`

	// RateLimit holds request throttling configuration.
	RateLimit RateLimitConfig `yaml:"rate_limit" json:"rate_limit"`

	// Retry holds retry and backoff configuration.
	Retry RetryConfig `yaml:"retry" json:"retry"`

	// Paths holds the filesystem layout for snapshots, output and state.
	Paths PathsConfig `yaml:"paths" json:"paths"`

	// Run holds per-run options.
	Run RunConfig `yaml:"run" json:"run"`

	// Logging configuration.
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// SECConfig holds EDGAR-specific client settings.
//
// The SEC requires automated clients to identify themselves with a
// User-Agent naming the application and a contact address.
type SECConfig struct {
	UserAgent string        `yaml:"user_agent" json:"user_agent"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout"`
}

// Validate validates the SEC settings.
func (c *SECConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.UserAgent, validation.Required),
		validation.Field(&c.Timeout, validation.Required, validation.Min(time.Second)),
	)
}

// RateLimitConfig holds request throttling configuration.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second"`
}

// Validate validates the rate limit settings.
func (c *RateLimitConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.RequestsPerSecond, validation.Required, validation.Min(0.0).Exclusive()),
	)
}

// RetryConfig holds retry and backoff configuration.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts" json:"max_attempts"`
	BaseBackoff time.Duration `yaml:"base_backoff" json:"base_backoff"`
	MaxBackoff  time.Duration `yaml:"max_backoff" json:"max_backoff"`
}

// Validate validates the retry settings.
func (c *RetryConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.MaxAttempts, validation.Required, validation.Min(1)),
		validation.Field(&c.BaseBackoff, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&c.MaxBackoff, validation.Min(time.Duration(0))),
	)
}

// PathsConfig holds the filesystem layout.
type PathsConfig struct {
	// SnapshotRoot contains dt=YYYY-MM-DD snapshot directories.
	SnapshotRoot string `yaml:"snapshot_root" json:"snapshot_root"`
	// OutputRoot receives one cik=<cik10> directory per fetched document.
	OutputRoot string `yaml:"output_root" json:"output_root"`
	// StateFile is the ledger location.
	StateFile string `yaml:"state_file" json:"state_file"`
}

// Validate validates the path settings.
func (c *PathsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.SnapshotRoot, validation.Required),
		validation.Field(&c.OutputRoot, validation.Required),
		validation.Field(&c.StateFile, validation.Required),
	)
}

// RunConfig holds per-run options.
type RunConfig struct {
	// Limit caps the number of identifiers processed this run; 0 means
	// unlimited.
	Limit int `yaml:"limit" json:"limit"`
	// Overwrite forces re-fetching of items that already succeeded.
	Overwrite bool `yaml:"overwrite" json:"overwrite"`
}

// Validate validates the run settings.
func (c *RunConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Limit, validation.Min(0)),
	)
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with the polite EDGAR defaults.
func DefaultConfig() *Config {
	return &Config{
		SEC: SECConfig{
			UserAgent: "edgarfetch/1.0 (contact: data-eng@edgarfetch.dev)",
			Timeout:   60 * time.Second,
		},
		RateLimit: RateLimitConfig{
			// SEC guidance allows up to 10 req/s; 2 is the safe default.
			RequestsPerSecond: 2.0,
		},
		Retry: RetryConfig{
			MaxAttempts: 5,
			BaseBackoff: time.Second,
			MaxBackoff:  60 * time.Second,
		},
		Paths: PathsConfig{
			SnapshotRoot: filepath.Join("data", "bronze", "sec", "company_tickers"),
			OutputRoot:   filepath.Join("data", "bronze", "sec", "companyfacts"),
			StateFile:    filepath.Join("data", "state", "companyfacts_state.json"),
		},
		Run: RunConfig{
			Limit:     0,
			Overwrite: false,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadFromEnv loads configuration overrides from environment variables.
func (c *Config) LoadFromEnv() error {
	if userAgent := os.Getenv("EDGARFETCH_USER_AGENT"); userAgent != "" {
		c.SEC.UserAgent = userAgent
	}

	if rps := os.Getenv("EDGARFETCH_REQUESTS_PER_SECOND"); rps != "" {
		val, err := strconv.ParseFloat(rps, 64)
		if err != nil {
			return fmt.Errorf("invalid EDGARFETCH_REQUESTS_PER_SECOND %q: %w", rps, err)
		}
		c.RateLimit.RequestsPerSecond = val
	}

	if attempts := os.Getenv("EDGARFETCH_MAX_RETRIES"); attempts != "" {
		val, err := strconv.Atoi(attempts)
		if err != nil {
			return fmt.Errorf("invalid EDGARFETCH_MAX_RETRIES %q: %w", attempts, err)
		}
		c.Retry.MaxAttempts = val
	}

	if root := os.Getenv("EDGARFETCH_SNAPSHOT_ROOT"); root != "" {
		c.Paths.SnapshotRoot = root
	}
	if root := os.Getenv("EDGARFETCH_OUTPUT_ROOT"); root != "" {
		c.Paths.OutputRoot = root
	}
	if state := os.Getenv("EDGARFETCH_STATE_FILE"); state != "" {
		c.Paths.StateFile = state
	}

	if logLevel := os.Getenv("EDGARFETCH_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	return nil
}

// LoadFromFile loads configuration from a YAML file. An empty path searches
// the standard locations; a missing file there is not an error.
func (c *Config) LoadFromFile(path string) error {
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for a config file in standard locations.
func (c *Config) findConfigFile() string {
	locations := []string{
		".edgarfetch.yaml",
		".edgarfetch.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "edgarfetch", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".edgarfetch.yaml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := c.SEC.Validate(); err != nil {
		return fmt.Errorf("sec: %w", err)
	}
	if err := c.RateLimit.Validate(); err != nil {
		return fmt.Errorf("rate_limit: %w", err)
	}
	if err := c.Retry.Validate(); err != nil {
		return fmt.Errorf("retry: %w", err)
	}
	if err := c.Paths.Validate(); err != nil {
		return fmt.Errorf("paths: %w", err)
	}
	if err := c.Run.Validate(); err != nil {
		return fmt.Errorf("run: %w", err)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error", "fatal", "disabled":
	default:
		return fmt.Errorf("logging: invalid log level %q", c.Logging.Level)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration.
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if limit, ok := flags["limit"].(int); ok && limit > 0 {
		c.Run.Limit = limit
	}
	if rps, ok := flags["requests-per-second"].(float64); ok && rps > 0 {
		c.RateLimit.RequestsPerSecond = rps
	}
	if overwrite, ok := flags["overwrite"].(bool); ok {
		c.Run.Overwrite = overwrite
	}
	if root, ok := flags["snapshot-root"].(string); ok && root != "" {
		c.Paths.SnapshotRoot = root
	}
	if root, ok := flags["output-root"].(string); ok && root != "" {
		c.Paths.OutputRoot = root
	}
	if state, ok := flags["state-file"].(string); ok && state != "" {
		c.Paths.StateFile = state
	}
	if attempts, ok := flags["max-retries"].(int); ok && attempts > 0 {
		c.Retry.MaxAttempts = attempts
	}
	if timeout, ok := flags["timeout"].(time.Duration); ok && timeout > 0 {
		c.SEC.Timeout = timeout
	}
	if level, ok := flags["log-level"].(string); ok && level != "" {
		c.Logging.Level = level
	}
}

// Load builds the effective configuration: defaults, then the config file,
// then environment variables, then command line flags. The result is
// validated before being returned.
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Pick up .env files for local development.
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".edgarfetch.env"))

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, err
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, err
	}

	config.MergeCommandLineFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
