package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Manager holds the application configuration and provides thread-safe access to it.
type Manager struct {
	mu     sync.RWMutex
	config *Config
}

// NewManager creates a new ConfigManager.
func NewManager(config *Config) *Manager {
	return &Manager{config: config}
}

// Get returns the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// Update updates the configuration.
func (m *Manager) Update(config *Config) {
	m.mu.Lock()
	defer m.mu.Unlock()

	oldConfig := m.config
	m.config = config

	// Log configuration changes
	if oldConfig != nil {
		slog.Debug("Configuration updated",
			"cache_path_changed", oldConfig.CachePath != config.CachePath,
			"provider_changed", oldConfig.Provider != config.Provider,
			"genius_timeout_changed", oldConfig.Genius.Timeout != config.Genius.Timeout,
			"genius_retries_changed", oldConfig.Genius.Retries != config.Genius.Retries,
			"server_port_changed", oldConfig.Server.Port != config.Server.Port,
		)
	}
}

// Save writes the current configuration to the specified file path.
func (m *Manager) Save(path string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	file, err := os.Create(path)
	if err != nil {
		slog.Error("failed to create config file", "path", path, "error", err)
		return err
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	if err := encoder.Encode(m.config); err != nil {
		slog.Error("failed to encode config", "path", path, "error", err)
		return err
	}

	slog.Info("Configuration saved successfully", "path", path)
	return nil
}

// EnsureDirectories creates the lyrics cache directory if it doesn't exist.
func (m *Manager) EnsureDirectories() error {
	m.mu.RLock()
	cfg := m.config
	m.mu.RUnlock()

	if err := os.MkdirAll(cfg.CachePath, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory %s: %w", cfg.CachePath, err)
	}

	slog.Debug("Required directories created/verified", "cache", cfg.CachePath)
	return nil
}

// redactedCfg gets a redacted copy of the Config
func (m *Manager) redactedCfg() Config {
	cfgCpy := *m.config
	if cfgCpy.Genius.AccessToken != "" {
		cfgCpy.Genius.AccessToken = "<redacted>"
	}
	return cfgCpy
}

// GetJSON returns the redacted configuration as a JSON string.
func (m *Manager) GetJSON() string {
	return m.render("JSON", json.Marshal)
}

// GetYAML returns the redacted configuration as a YAML string.
func (m *Manager) GetYAML() string {
	return m.render("YAML", yaml.Marshal)
}

// render encodes the redacted configuration, returning the error text on failure
func (m *Manager) render(format string, marshal func(any) ([]byte, error)) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out, err := marshal(m.redactedCfg())
	if err != nil {
		slog.Error("Failed to render config", "format", format, "error", err)
		return err.Error()
	}
	return string(out)
}
