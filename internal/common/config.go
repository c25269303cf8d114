package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const (
	// ConfigDirName is the per-user configuration directory under the home directory.
	ConfigDirName = ".scrapegraphai"

	// ConfigFileName is the configuration file inside ConfigDirName.
	ConfigFileName = "config.toml"
)

// Config represents the application configuration
type Config struct {
	APIKey  string        `toml:"api_key"`
	Debug   bool          `toml:"debug"` // Trace every request and response at debug level
	API     APIConfig     `toml:"api"`
	Logging LoggingConfig `toml:"logging"`
}

// APIConfig configures the connection to the ScrapeGraph AI API
type APIConfig struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"` // Time budget for one command, polling included
	PollInterval   string `toml:"poll_interval"`   // e.g., "3s" - pause between status polls
	RateLimit      int    `toml:"rate_limit"`      // Requests per second, 0 disables limiting
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Output []string `toml:"output"` // "stdout", "file"
}

// NewDefaultConfig creates a configuration with default values
func NewDefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "https://api.scrapegraphai.com/v1",
			TimeoutSeconds: 120,
			PollInterval:   "3s",
			RateLimit:      10,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Output: []string{"file"}, // stdout is reserved for command results
		},
	}
}

// DefaultConfigDir returns ~/.scrapegraphai, or an empty string when the home
// directory cannot be determined.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ConfigDirName)
}

// DefaultConfigPath returns ~/.scrapegraphai/config.toml, or an empty string
// when the home directory cannot be determined.
func DefaultConfigPath() string {
	dir := DefaultConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, ConfigFileName)
}

// LoadFromFiles loads configuration with priority: default -> file1 -> file2 -> ... -> .env -> env
// Later files override earlier files. Missing files are skipped so a first run
// works without any configuration.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	// .env never overrides variables already set in the environment
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if apiKey := strings.TrimSpace(os.Getenv("SGAI_API_KEY")); apiKey != "" {
		config.APIKey = apiKey
	}
	if baseURL := os.Getenv("SGAI_API_URL"); baseURL != "" {
		config.API.BaseURL = baseURL
	}

	// SGAI_CLI_TIMEOUT_S only applies when it is a positive integer
	if timeout := os.Getenv("SGAI_CLI_TIMEOUT_S"); timeout != "" {
		if t, err := strconv.Atoi(strings.TrimSpace(timeout)); err == nil && t > 0 {
			config.API.TimeoutSeconds = t
		}
	}

	if os.Getenv("SGAI_CLI_DEBUG") == "1" {
		config.Debug = true
	}

	if level := os.Getenv("SGAI_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config
func ApplyFlagOverrides(config *Config, timeoutSeconds int, debug bool) {
	if timeoutSeconds > 0 {
		config.API.TimeoutSeconds = timeoutSeconds
	}
	if debug {
		config.Debug = true
	}
}

// Validate checks the values that cannot be defaulted silently
func (c *Config) Validate() error {
	if c.API.TimeoutSeconds <= 0 {
		return fmt.Errorf("api.timeout_seconds must be positive, got %d", c.API.TimeoutSeconds)
	}
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url must not be empty")
	}
	if _, err := time.ParseDuration(c.API.PollInterval); err != nil {
		return fmt.Errorf("invalid api.poll_interval %q: %w", c.API.PollInterval, err)
	}
	if c.API.RateLimit < 0 {
		return fmt.Errorf("api.rate_limit must not be negative, got %d", c.API.RateLimit)
	}
	return nil
}

// TimeBudget returns the ceiling applied to every command.
func (c *Config) TimeBudget() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// PollInterval returns the parsed pause between status polls.
func (c *Config) PollInterval() time.Duration {
	d, err := time.ParseDuration(c.API.PollInterval)
	if err != nil || d <= 0 {
		return 3 * time.Second
	}
	return d
}

// LogLevel returns the effective log level; debug tracing forces "debug".
func (c *Config) LogLevel() string {
	if c.Debug {
		return "debug"
	}
	return c.Logging.Level
}
