// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is the .env file read when none is given.
const DefaultEnvFile = ".env"

// Config holds the application configuration.
type Config struct {
	App     AppConfig
	Logger  LoggerConfig
	Storage StorageConfig
	Recipes RecipesConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// StorageConfig holds the key-value store configuration.
type StorageConfig struct {
	// DataPath is the directory of the database files (default: ~/WeeklyBite/data)
	DataPath string
	// Ephemeral keeps all data in memory for the lifetime of the process
	Ephemeral bool
}

// RecipesConfig holds recipe repository configuration.
type RecipesConfig struct {
	// SeedDefaults loads the default recipes into an empty collection (default: true)
	SeedDefaults bool
}

// Overrides carries command-line values. Empty strings mean "not given".
type Overrides struct {
	Env          string
	LogLevel     string
	DataPath     string
	Ephemeral    string
	SeedDefaults string
	EnvFile      string
}

// Load loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func Load(o Overrides) (*Config, error) {
	envFile := o.EnvFile
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	// godotenv never overrides variables that are already set.
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file %s: %w", envFile, err)
	}

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(o.Env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(o.LogLevel, "LOG_LEVEL", "info"),
		},
		Storage: StorageConfig{
			DataPath:  getConfigValue(o.DataPath, "DATA_PATH", ""),
			Ephemeral: getBoolConfigValue(o.Ephemeral, "EPHEMERAL", false),
		},
		Recipes: RecipesConfig{
			SeedDefaults: getBoolConfigValue(o.SeedDefaults, "SEED_DEFAULT_RECIPES", true),
		},
	}

	if err := cfg.expandDataPath(); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	// An ephemeral store needs no directory.
	if c.Storage.DataPath == "" && !c.Storage.Ephemeral {
		return errors.New("data path cannot be empty after expansion")
	}

	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty, defaultPath is used as is.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// expandDataPath resolves the data directory, defaulting to ~/WeeklyBite/data.
func (c *Config) expandDataPath() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	defaultPath := filepath.Join(homeDir, "WeeklyBite", "data")

	expanded, err := expandPath(c.Storage.DataPath, defaultPath)
	if err != nil {
		return err
	}
	c.Storage.DataPath = expanded
	return nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}

	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}

	return defaultValue
}

// getBoolConfigValue returns a bool from flag, env var, or default.
// Accepts: "true", "1", "yes" (case-insensitive) as true; anything else is false.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	strValue = strings.ToLower(strValue)
	return strValue == "true" || strValue == "1" || strValue == "yes"
}
