package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	// Gateway is the spreadsheet web app holding categories, activities and teams
	Gateway struct {
		URL     string `yaml:"url" env:"GATEWAY_URL"`
		Timeout string `yaml:"timeout" env:"GATEWAY_TIMEOUT"`
	} `yaml:"gateway"`

	Session struct {
		CookieName    string `yaml:"cookie_name" env:"SESSION_COOKIE_NAME"`
		IdleTTL       string `yaml:"idle_ttl" env:"SESSION_IDLE_TTL"`
		SweepInterval string `yaml:"sweep_interval" env:"SESSION_SWEEP_INTERVAL"`
		SecureCookie  bool   `yaml:"secure_cookie" env:"SESSION_SECURE_COOKIE"`
	} `yaml:"session"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables.
// A missing file is not an error; defaults and the environment still apply.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	config.Gateway.Timeout = "30s"

	config.Session.CookieName = "regform_session"
	config.Session.IdleTTL = "2h"
	config.Session.SweepInterval = "10m"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid. An empty gateway
// URL is allowed: the site then starts and shows the load-failure page.
func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if raw := strings.TrimSpace(config.Gateway.URL); raw != "" {
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("invalid gateway url: %w", err)
		}
		if u.Scheme != "" && u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("gateway url must be http or https, got %q", u.Scheme)
		}
	}

	if config.Session.CookieName == "" {
		return fmt.Errorf("session cookie name is required")
	}

	durations := map[string]string{
		"gateway timeout":        config.Gateway.Timeout,
		"session idle ttl":       config.Session.IdleTTL,
		"session sweep interval": config.Session.SweepInterval,
	}
	for name, value := range durations {
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid %s format: %w", name, err)
		}
		if d < 0 {
			return fmt.Errorf("%s must not be negative", name)
		}
	}

	return nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Mode, "production")
}
