package app

import (
	"os"
	"path/filepath"
)

// ConfigDir returns ~/.config/faultline/ on all platforms.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "faultline"), nil
}

// EnsureConfigDir creates the config directory and default config.yaml if missing.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	configFile := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		return os.WriteFile(configFile, []byte(defaultConfig), 0600)
	}
	return nil
}

const defaultConfig = `# faultline configuration
# Run: faultline --help

# Chat model used for error explanations.
# model: gpt-4o-mini

# Base URL for OpenAI-compatible endpoints (leave unset for api.openai.com).
# base_url: ""

# Environment variable consulted when no key is stored via "faultline key set".
# api_key_env: FAULTLINE_API_KEY

# Optional: override the preferences database location.
# Can also be set via FAULTLINE_DB_PATH or --db-path.
# db_path: ~/.config/faultline/faultline.db

# Backtrace rendering defaults.
# reverse_backtrace: true
# max_frames: 30
# hide_frames: true
`
