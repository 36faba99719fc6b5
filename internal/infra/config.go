package infra

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultUserAgent is a browser-like user agent string to avoid bot detection
// on the icon CDN.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Config holds all application settings. Values loaded from the YAML file
// can be overridden through environment variables.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"server"`

	Trading struct {
		UserID string `yaml:"user_id"` // single-tenant: every request acts as this user
	} `yaml:"trading"`

	Storage struct {
		DataDir string `yaml:"data_dir"` // empty means the OS user config dir
	} `yaml:"storage"`

	Assets struct {
		IconURLTemplate string `yaml:"icon_url_template"` // %s is the lowercased symbol
		IconSize        int    `yaml:"icon_size"`
	} `yaml:"assets"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// LoadConfig reads and parses the configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	overrideWithEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks configuration validity
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Trading.UserID == "" {
		return fmt.Errorf("trading user_id is required")
	}

	if c.Assets.IconURLTemplate != "" && c.Assets.IconSize <= 0 {
		return fmt.Errorf("icon size must be positive")
	}

	return nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// overrideWithEnv replaces settings when matching environment variables exist.
func overrideWithEnv(cfg *Config) {
	if host := os.Getenv("EQUITY_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if port := os.Getenv("EQUITY_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
	if user := os.Getenv("EQUITY_USER_ID"); user != "" {
		cfg.Trading.UserID = user
	}
	if dir := os.Getenv("EQUITY_DATA_DIR"); dir != "" {
		cfg.Storage.DataDir = dir
	}
}
