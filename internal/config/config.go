// ABOUTME: Configuration loading and parsing for linkstash
// ABOUTME: Supports YAML files with environment variable expansion and duration parsing

package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete linkstash configuration
type Config struct {
	Telegram   TelegramConfig   `yaml:"telegram"`
	Database   DatabaseConfig   `yaml:"database"`
	Categories CategoriesConfig `yaml:"categories"`
	Fetch      FetchConfig      `yaml:"fetch"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// TelegramConfig holds the messaging front-end configuration
type TelegramConfig struct {
	Token string `yaml:"token"`
	Debug bool   `yaml:"debug"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// DefaultCategory is one process-wide default category
type DefaultCategory struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

// CategoriesConfig holds the default category set offered to every user
type CategoriesConfig struct {
	Defaults []DefaultCategory `yaml:"defaults"`
}

// FetchConfig holds content fetcher timing configuration
type FetchConfig struct {
	PageTimeout     time.Duration `yaml:"-"`
	ResourceTimeout time.Duration `yaml:"-"`

	// Raw string values for YAML unmarshaling
	PageTimeoutRaw     string `yaml:"page_timeout"`
	ResourceTimeoutRaw string `yaml:"resource_timeout"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// defaultCategories is the compiled-in fallback when the config lists none.
var defaultCategories = []DefaultCategory{
	{Name: "News", Color: "blue"},
	{Name: "Tech", Color: "green"},
	{Name: "Fun", Color: "yellow"},
	{Name: "Sport", Color: "red"},
	{Name: "Music", Color: "purple"},
}

// Load reads a configuration file from the given path and returns a parsed Config.
// Environment variables in the format ${VAR_NAME} are expanded.
// Duration strings are parsed into time.Duration values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the raw YAML content
	expandedData := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := parseDurations(&cfg); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	if len(cfg.Categories.Defaults) == 0 {
		cfg.Categories.Defaults = defaultCategories
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// If the environment variable is not set, it is replaced with an empty string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// Validate checks that all required configuration fields are present and valid.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	if c.Telegram.Token == "" {
		return fmt.Errorf("telegram.token is required")
	}

	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}

	for _, cat := range c.Categories.Defaults {
		if cat.Name == "" {
			return fmt.Errorf("categories.defaults entries need a name")
		}
		if cat.Color == "" {
			return fmt.Errorf("categories.defaults entry %q needs a color", cat.Name)
		}
	}

	return nil
}

// parseDurations converts the raw duration strings into time.Duration values
func parseDurations(cfg *Config) error {
	var err error

	if cfg.Fetch.PageTimeoutRaw != "" {
		cfg.Fetch.PageTimeout, err = time.ParseDuration(cfg.Fetch.PageTimeoutRaw)
		if err != nil {
			return fmt.Errorf("parsing page_timeout %q: %w", cfg.Fetch.PageTimeoutRaw, err)
		}
	}

	if cfg.Fetch.ResourceTimeoutRaw != "" {
		cfg.Fetch.ResourceTimeout, err = time.ParseDuration(cfg.Fetch.ResourceTimeoutRaw)
		if err != nil {
			return fmt.Errorf("parsing resource_timeout %q: %w", cfg.Fetch.ResourceTimeoutRaw, err)
		}
	}

	return nil
}
