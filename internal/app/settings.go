package app

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Settings represents configuration loaded from config.yaml.
// Field names match snake_case YAML keys.
type Settings struct {
	Model            string `yaml:"model"`
	BaseURL          string `yaml:"base_url"`
	APIKeyEnv        string `yaml:"api_key_env"`
	DBPath           string `yaml:"db_path"`
	ReverseBacktrace *bool  `yaml:"reverse_backtrace"`
	MaxFrames        int    `yaml:"max_frames"`
	HideFrames       *bool  `yaml:"hide_frames"`
}

const (
	// DefaultModel is the chat model queried for error explanations.
	DefaultModel = "gpt-4o-mini"

	// DefaultAPIKeyEnv is the environment variable consulted when no key
	// was stored via "faultline key set".
	DefaultAPIKeyEnv = "FAULTLINE_API_KEY"

	defaultMaxFrames = 30
)

// EffectiveSettings returns validated settings with defaults applied.
// Invalid or missing config values fall back to safe defaults.
func EffectiveSettings() Settings {
	cfg := Settings{
		Model:     DefaultModel,
		APIKeyEnv: DefaultAPIKeyEnv,
		MaxFrames: defaultMaxFrames,
	}

	s, err := LoadSettings()
	if err != nil {
		return cfg
	}

	if s.Model != "" {
		cfg.Model = s.Model
	}
	if s.BaseURL != "" {
		cfg.BaseURL = s.BaseURL
	}
	if s.APIKeyEnv != "" {
		cfg.APIKeyEnv = s.APIKeyEnv
	}
	if s.DBPath != "" {
		cfg.DBPath = s.DBPath
	}
	if s.MaxFrames > 0 {
		cfg.MaxFrames = s.MaxFrames
	}
	cfg.ReverseBacktrace = s.ReverseBacktrace
	cfg.HideFrames = s.HideFrames

	if cfg.MaxFrames > 1000 {
		cfg.MaxFrames = 1000
	}
	return cfg
}

// settingsOnce, settings, settingsErr implement the sync.Once lazy-load singleton for config.
// dbPathOverrideMu and dbPathOverride implement a mutex-protected process-wide override for CLI --db-path.
// These globals are required by the sync.Once pattern and the RWMutex pattern; they cannot be avoided.
//
//nolint:gochecknoglobals // sync.Once singleton + RWMutex override are intentional process-wide state
var (
	settingsOnce sync.Once
	settings     Settings
	settingsErr  error

	dbPathOverrideMu sync.RWMutex
	dbPathOverride   string
)

// SetDBPathOverride sets a process-wide preferences database path override.
// Intended for CLI flag support (e.g. --db-path).
func SetDBPathOverride(path string) {
	dbPathOverrideMu.Lock()
	dbPathOverride = path
	dbPathOverrideMu.Unlock()
}

func getDBPathOverride() string {
	dbPathOverrideMu.RLock()
	v := dbPathOverride
	dbPathOverrideMu.RUnlock()
	return v
}

// LoadSettings loads configuration once using the documented lookup order.
// Lookup order (first found wins):
// 1) ~/.config/faultline/config.yaml
// 2) /etc/faultline/config.yaml
// 3) ./config.yaml (lowest priority; allows repo-local overrides if desired)
// Environment variables are handled separately.
func LoadSettings() (Settings, error) {
	settingsOnce.Do(func() {
		settings = Settings{}

		// 1) User config (~/.config/faultline/config.yaml)
		dir, err := ConfigDir()
		if err != nil {
			settingsErr = err
			return
		}
		if s, err := loadSettingsFile(filepath.Join(dir, "config.yaml")); err == nil {
			settings = s
			return
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			settingsErr = err
			return
		}

		// 2) /etc
		if s, err := loadSettingsFile(filepath.Join(string(os.PathSeparator), "etc", "faultline", "config.yaml")); err == nil {
			settings = s
			return
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			settingsErr = err
			return
		}

		// 3) Local ./config.yaml (lowest priority)
		if s, err := loadSettingsFile("config.yaml"); err == nil {
			settings = s
			return
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			settingsErr = err
			return
		}
	})

	return settings, settingsErr
}

func loadSettingsFile(path string) (Settings, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, err
	}

	var s Settings
	if err := yaml.Unmarshal(b, &s); err != nil {
		return Settings{}, err
	}
	return s, nil
}
