// Package config loads YAML configuration with environment variable expansion.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration
type Config struct {
	App       AppConfig                 `yaml:"app"`
	Logging   LoggingConfig             `yaml:"logging"`
	Exchanges map[string]ExchangeConfig `yaml:"exchanges"`
}

// AppConfig identifies the application
type AppConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// LoggingConfig configures the logger package
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
	MaxAge int    `yaml:"max_age"`
}

// ExchangeConfig holds per-exchange credentials and connection settings
type ExchangeConfig struct {
	APIKey  string            `yaml:"api_key"`
	Secret  string            `yaml:"secret"`
	BaseURL string            `yaml:"base_url"`
	Proxy   string            `yaml:"proxy"`
	Sandbox bool              `yaml:"sandbox"`
	Debug   bool              `yaml:"debug"`
	Options map[string]string `yaml:"options"`
}

// LoadEnv loads .env files into the process environment, missing files are ignored
func LoadEnv(files ...string) error {
	for _, file := range files {
		if _, err := os.Stat(file); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return fmt.Errorf("failed to load env file '%s': %w", file, err)
		}
	}
	return nil
}

// LoadConfig reads a YAML configuration file, expanding ${VAR} references
// from the environment before parsing
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.Expand(string(data), func(key string) string {
		return os.Getenv(key)
	})

	config := Config{
		Logging: LoggingConfig{Level: "info", Format: "json", Output: "stdout"},
	}
	if err := yaml.Unmarshal([]byte(expanded), &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &config, nil
}

// Exchange returns the configuration block for the named exchange
func (c *Config) Exchange(name string) (ExchangeConfig, bool) {
	cfg, ok := c.Exchanges[name]
	return cfg, ok
}

func validateConfig(cfg *Config) error {
	for name, exchange := range cfg.Exchanges {
		if name == "" {
			return fmt.Errorf("exchanges must be keyed by name")
		}
		if exchange.APIKey != "" && exchange.Secret == "" {
			return fmt.Errorf("exchanges.%s.secret is required when api_key is set", name)
		}
	}
	return nil
}
