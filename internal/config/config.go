// Package config loads runtime settings for the to-do app.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config holds the application settings.
type Config struct {
	Port       string `yaml:"port" toml:"port"`
	DBPath     string `yaml:"db_path" toml:"db_path"`
	StorageKey string `yaml:"storage_key" toml:"storage_key"`
	Title      string `yaml:"title" toml:"title"`
	Dark       bool   `yaml:"dark" toml:"dark"`
	LogLevel   string `yaml:"log_level" toml:"log_level"`
	LogFormat  string `yaml:"log_format" toml:"log_format"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Port:       "8080",
		DBPath:     "./data/todos.db",
		StorageKey: "tasks",
		Title:      "My Tasks",
		LogLevel:   "info",
		LogFormat:  "console",
	}
}

// Load builds the configuration in priority order:
// 1. Defaults
// 2. Config file at path, when path is not empty (.yaml, .yml or .toml)
// 3. Environment variables
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	loadFromEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	case ".toml":
		_, err := toml.Decode(string(data), cfg)
		return err
	default:
		return fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
}

func loadFromEnv(cfg *Config) {
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.DBPath = getEnv("DB_PATH", cfg.DBPath)
	cfg.StorageKey = getEnv("TODOS_STORAGE_KEY", cfg.StorageKey)
	cfg.Title = getEnv("TODOS_TITLE", cfg.Title)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)

	if v := os.Getenv("TODOS_DARK"); v != "" {
		if dark, err := strconv.ParseBool(v); err == nil {
			cfg.Dark = dark
		}
	}
}

// Validate checks that the settings are usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.StorageKey) == "" {
		return errors.New("storage_key is required")
	}

	if strings.TrimSpace(c.DBPath) == "" {
		return errors.New("db_path is required")
	}

	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("port must be a number between 1 and 65535, got %q", c.Port)
	}

	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("log_format must be 'console' or 'json', got %q", c.LogFormat)
	}

	return nil
}

// Addr is the listen address for the web screen.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
