package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetDBPath resolves the preferences database path.
// Order of precedence:
// 1) CLI override (e.g. --db-path)
// 2) Environment variable: FAULTLINE_DB_PATH
// 3) config.yaml: db_path
// 4) Default: ~/.config/faultline/faultline.db
// Returns an absolute path to faultline.db and ensures the parent directory exists.
func GetDBPath() (string, error) {
	if override := getDBPathOverride(); override != "" {
		return EnsureDBDir(override)
	}

	if envPath := os.Getenv("FAULTLINE_DB_PATH"); envPath != "" {
		return EnsureDBDir(envPath)
	}

	cfg, err := LoadSettings()
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.DBPath != "" {
		return EnsureDBDir(cfg.DBPath)
	}

	configDir, err := ConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine config directory: %w", err)
	}
	return EnsureDBDir(filepath.Join(configDir, "faultline.db"))
}

// EnsureDBDir creates the parent directory for dbPath if needed.
func EnsureDBDir(dbPath string) (string, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create database directory: %w", err)
	}
	return dbPath, nil
}
