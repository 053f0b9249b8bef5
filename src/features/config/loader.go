package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// GeniusTokenEnv overrides genius.access_token when set.
const GeniusTokenEnv = "GENIUS_API_KEY"

// Load reads a YAML file from the given path and returns a new ConfigManager.
// If the file doesn't exist, creates a default configuration.
func Load(path string) (*Manager, error) {
	// Check if config file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Info("Config file not found, creating default configuration", "path", path)
		defaultCfg := createDefaultConfig()

		// Save default config to file
		if err := saveDefaultConfig(path, defaultCfg); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}

		slog.Info("Default configuration created successfully", "path", path)
		applyEnvOverrides(defaultCfg)
		manager := NewManager(defaultCfg)
		if err := manager.EnsureDirectories(); err != nil {
			return nil, err
		}
		return manager, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg := createDefaultConfig()
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	manager := NewManager(cfg)
	if err := manager.EnsureDirectories(); err != nil {
		return nil, err
	}

	return manager, nil
}

// Validate checks the configuration struct tags.
func Validate(cfg *Config) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// applyEnvOverrides replaces secrets with the values found in the environment
func applyEnvOverrides(cfg *Config) {
	if token := os.Getenv(GeniusTokenEnv); token != "" {
		cfg.Genius.AccessToken = token
	}
	if cfg.Provider == "genius" && cfg.Genius.AccessToken == "" {
		slog.Warn("Genius access token is empty, requests will be rejected", "env", GeniusTokenEnv)
	}
}

// saveDefaultConfig saves the default configuration to the specified file path
func saveDefaultConfig(path string, cfg *Config) error {
	if err := NewManager(cfg).Save(path); err != nil {
		return fmt.Errorf("failed to save default config: %w", err)
	}
	return nil
}
