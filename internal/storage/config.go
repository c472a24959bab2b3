package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the config file.
const (
	EnvMaxClusters     = "BMORG_MAX_CLUSTERS"
	EnvLogLevel        = "BMORG_LOG_LEVEL"
	EnvStrictClassRule = "BMORG_STRICT_CLASS_RULE"
	EnvMatchFullHost   = "BMORG_MATCH_FULL_HOST"
)

// Config holds application configuration.
type Config struct {
	MaxClusters            int     `yaml:"maxClusters"`
	FolderPathThreshold    float64 `yaml:"folderPathThreshold"`
	SecondaryWordThreshold float64 `yaml:"secondaryWordThreshold"`
	// StrictClassRule requires class keywords to come with a tool domain.
	StrictClassRule bool   `yaml:"strictClassRule"`
	MatchFullHost   bool   `yaml:"matchFullHost"`
	LogLevel        string `yaml:"logLevel"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		MaxClusters:            10,
		FolderPathThreshold:    0.4,
		SecondaryWordThreshold: 0.4,
		StrictClassRule:        true,
		MatchFullHost:          false,
		LogLevel:               "info",
	}
}

// LoadConfig reads config from the YAML file.
// Creates the file with defaults if it doesn't exist; missing fields keep their defaults.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// Non-fatal: return defaults even if save fails
			_ = SaveConfig(path, &config)
			return &config, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if config.LogLevel == "" {
		config.LogLevel = DefaultConfig().LogLevel
	}
	return &config, config.Validate()
}

// SaveConfig writes config to the YAML file.
// Creates the directory if it doesn't exist.
func SaveConfig(path string, config *Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := WriteFile(path, data); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// LoadEnv loads variables from .env files into the process environment.
// Missing files are ignored; variables already set win.
func LoadEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

// ApplyEnv overrides config fields from BMORG_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvMaxClusters); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxClusters, err)
		}
		c.MaxClusters = n
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	for name, field := range map[string]*bool{
		EnvStrictClassRule: &c.StrictClassRule,
		EnvMatchFullHost:   &c.MatchFullHost,
	} {
		v := os.Getenv(name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*field = b
	}
	return c.Validate()
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if c.MaxClusters < 1 {
		return fmt.Errorf("maxClusters must be at least 1, got %d", c.MaxClusters)
	}
	for _, th := range []struct {
		name  string
		value float64
	}{
		{"folderPathThreshold", c.FolderPathThreshold},
		{"secondaryWordThreshold", c.SecondaryWordThreshold},
	} {
		if th.value < 0 || th.value > 1 {
			return fmt.Errorf("%s must be within [0, 1], got %g", th.name, th.value)
		}
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("logLevel: %w", err)
	}
	return level, nil
}

// DefaultConfigFilePath returns the default config path: ~/.config/bmorg/config.yaml
func DefaultConfigFilePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "bmorg", "config.yaml"), nil
}
