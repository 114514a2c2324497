package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"

	"brigade/internal/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Port     int            `yaml:"port"`
	LogLevel string         `yaml:"log_level"`
	MenuFile string         `yaml:"menu_file"`
	Database DatabaseConfig `yaml:"database"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Auth     AuthConfig     `yaml:"auth"`
	Kitchen  KitchenConfig  `yaml:"kitchen"`
}

// DatabaseConfig selects the snapshot store. An empty dialect disables it.
type DatabaseConfig struct {
	Dialect string `yaml:"dialect"`
	URL     string `yaml:"url"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Port    int    `yaml:"port"`
	Path    string `yaml:"path"`
}

// AuthConfig guards mutating API routes when JWTSecret is set.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
}

// KitchenConfig seeds the station manager at startup.
type KitchenConfig struct {
	Stations []StationConfig     `yaml:"stations"`
	Backup   []models.Ingredient `yaml:"backup"`
	Menu     []models.DishSpec   `yaml:"menu"`
}

type StationConfig struct {
	Name        string              `yaml:"name"`
	Dishes      []string            `yaml:"dishes"`
	Ingredients []models.Ingredient `yaml:"ingredients"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Port:     8080,
		LogLevel: "info",
		Database: DatabaseConfig{Dialect: "sqlite3", URL: "brigade.db"},
		Metrics:  MetricsConfig{Enabled: true, Port: 9090, Path: "/metrics"},
	}
}

// Load reads the YAML file at path on top of the defaults, then applies
// BRIGADE_* environment overrides. A .env file in the working directory is
// loaded first when present. An empty path skips the file.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("yaml config parsing error: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	var err error
	if c.Port, err = getIntWithDefault("BRIGADE_PORT", c.Port); err != nil {
		return err
	}
	if c.Metrics.Port, err = getIntWithDefault("BRIGADE_METRICS_PORT", c.Metrics.Port); err != nil {
		return err
	}
	c.LogLevel = getEnvWithDefault("BRIGADE_LOG_LEVEL", c.LogLevel)
	c.MenuFile = getEnvWithDefault("BRIGADE_MENU_FILE", c.MenuFile)
	c.Database.Dialect = getEnvWithDefault("BRIGADE_DB_DIALECT", c.Database.Dialect)
	c.Database.URL = getEnvWithDefault("BRIGADE_DATABASE_URL", c.Database.URL)
	c.Auth.JWTSecret = getEnvWithDefault("BRIGADE_JWT_SECRET", c.Auth.JWTSecret)
	return nil
}

// Validate checks the values the server cannot start without.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.Metrics.Enabled && (c.Metrics.Port <= 0 || c.Metrics.Port > 65535) {
		return fmt.Errorf("invalid metrics port %d", c.Metrics.Port)
	}
	switch c.Database.Dialect {
	case "", "sqlite3", "postgres":
	default:
		return fmt.Errorf("unsupported database dialect %q", c.Database.Dialect)
	}

	seen := make(map[string]bool, len(c.Kitchen.Stations))
	for _, s := range c.Kitchen.Stations {
		if s.Name == "" {
			return fmt.Errorf("station name is required")
		}
		if seen[s.Name] {
			return fmt.Errorf("duplicate station %q", s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}

// getEnvWithDefault returns the value of the environment variable or the default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getIntWithDefault(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return n, nil
}
