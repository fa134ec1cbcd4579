package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/SheetQuote/internal/model"
)

// DefaultConfigDir returns the directory holding all persisted settings,
// ~/.sheetquote.
func DefaultConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, ".sheetquote"), nil
}

// DefaultConfigPath returns the default file path for the application config.
func DefaultConfigPath() (string, error) {
	return defaultFile("config.json")
}

func defaultFile(name string) (string, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// writeJSON marshals v with indentation and writes it, creating parent
// directories as needed.
func writeJSON(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// readJSON decodes path into v. It reports found=false without error when
// the file does not exist.
func readJSON(path string, v interface{}) (found bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return true, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return true, nil
}

// SaveAppConfig writes the application config to the given path.
func SaveAppConfig(path string, cfg model.AppConfig) error {
	return writeJSON(path, cfg)
}

// LoadAppConfig reads the application config from the given path.
// If the file does not exist, returns the default config.
func LoadAppConfig(path string) (model.AppConfig, error) {
	cfg := model.DefaultAppConfig()
	if _, err := readJSON(path, &cfg); err != nil {
		return model.DefaultAppConfig(), err
	}
	if cfg.RecentExports == nil {
		cfg.RecentExports = []string{}
	}
	return cfg, nil
}

// LoadDefaultAppConfig loads the config from ~/.sheetquote/config.json.
func LoadDefaultAppConfig() (model.AppConfig, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return model.DefaultAppConfig(), err
	}
	return LoadAppConfig(path)
}

// SaveDefaultAppConfig writes the config to ~/.sheetquote/config.json.
func SaveDefaultAppConfig(cfg model.AppConfig) error {
	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	return SaveAppConfig(path, cfg)
}
