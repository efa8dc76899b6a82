package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bpetrich/skipper/internal/logger"
)

// Config holds all skipper configuration
type Config struct {
	ShowHidden       bool   `json:"show_hidden"`
	DirectoriesFirst bool   `json:"directories_first"`
	SortBy           string `json:"sort_by"` // name, size, mtime, ext
	IconsEnabled     bool   `json:"icons_enabled"`
	ConfirmDelete    bool   `json:"confirm_delete"`
	Editor           string `json:"editor"`
	ScrollMargin     int    `json:"scroll_margin"`
}

// ValidSortModes lists the accepted values for sort_by
var ValidSortModes = []string{"name", "size", "mtime", "ext"}

func defaultConfig() *Config {
	return &Config{
		ShowHidden:       false,
		DirectoriesFirst: true,
		SortBy:           "name",
		IconsEnabled:     true,
		ConfirmDelete:    true,
		Editor:           "",
		ScrollMargin:     3,
	}
}

func configDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "skipper"), nil
}

// Load reads config from ~/.config/skipper/config.json
func Load() *Config {
	dir, err := configDir()
	if err != nil {
		logger.Error("Failed to resolve config directory: %v", err)
		return defaultConfig()
	}
	configPath := filepath.Join(dir, "config.json")

	if err := os.MkdirAll(dir, 0755); err != nil {
		logger.Error("Failed to create config directory %s: %v", dir, err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		// First run: persist the defaults so users have a file to edit
		cfg := defaultConfig()
		if err := Save(cfg); err != nil {
			logger.Warn("Failed to save default config: %v", err)
		}
		return cfg
	}

	cfg := defaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		logger.Warn("Failed to parse config file %s: %v, using defaults", configPath, err)
		return defaultConfig()
	}

	validate(cfg)
	return cfg
}

// validate clamps out-of-range values back to sane defaults
func validate(cfg *Config) {
	valid := false
	for _, mode := range ValidSortModes {
		if cfg.SortBy == mode {
			valid = true
			break
		}
	}
	if !valid {
		logger.Warn("Unknown sort_by %q, using name", cfg.SortBy)
		cfg.SortBy = "name"
	}

	if cfg.ScrollMargin < 0 {
		cfg.ScrollMargin = 0
	} else if cfg.ScrollMargin > 10 {
		logger.Warn("scroll_margin too high (%d), using maximum of 10", cfg.ScrollMargin)
		cfg.ScrollMargin = 10
	}
}

// Save writes config to ~/.config/skipper/config.json
func Save(cfg *Config) error {
	dir, err := configDir()
	if err != nil {
		logger.Error("Failed to resolve config directory: %v", err)
		return err
	}
	configPath := filepath.Join(dir, "config.json")

	if err := os.MkdirAll(dir, 0755); err != nil {
		logger.Error("Failed to create config directory %s: %v", dir, err)
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		logger.Error("Failed to marshal config: %v", err)
		return fmt.Errorf("cannot marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		logger.Error("Failed to write config file %s: %v", configPath, err)
		return fmt.Errorf("cannot write config file: %w", err)
	}

	return nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}
