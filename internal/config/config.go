package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines application configuration.
type Config struct {
	DB       DBConfig       `yaml:"db"`
	Log      LogConfig      `yaml:"log"`
	Autosave AutosaveConfig `yaml:"autosave"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// AutosaveConfig tunes the autosave coordinator.
type AutosaveConfig struct {
	// QuietMS is the debounce window: edits arriving within it collapse
	// into a single write.
	QuietMS int `yaml:"quiet_ms"`
	// SettleMS is how long a document reports "saved" before reverting
	// to idle.
	SettleMS int `yaml:"settle_ms"`
}

func (a AutosaveConfig) Quiet() time.Duration  { return time.Duration(a.QuietMS) * time.Millisecond }
func (a AutosaveConfig) Settle() time.Duration { return time.Duration(a.SettleMS) * time.Millisecond }

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		DB: DBConfig{
			Path: DefaultDBPath(),
		},
		Log: LogConfig{
			Level: "info",
		},
		Autosave: AutosaveConfig{
			QuietMS:  1000,
			SettleMS: 2000,
		},
	}

	if path := os.Getenv("INKWELL_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if dbPath := os.Getenv("INKWELL_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("INKWELL_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if quiet := os.Getenv("INKWELL_AUTOSAVE_QUIET_MS"); quiet != "" {
		ms, err := strconv.Atoi(quiet)
		if err != nil {
			return Config{}, fmt.Errorf("invalid INKWELL_AUTOSAVE_QUIET_MS: %w", err)
		}
		cfg.Autosave.QuietMS = ms
	}
	if settle := os.Getenv("INKWELL_AUTOSAVE_SETTLE_MS"); settle != "" {
		ms, err := strconv.Atoi(settle)
		if err != nil {
			return Config{}, fmt.Errorf("invalid INKWELL_AUTOSAVE_SETTLE_MS: %w", err)
		}
		cfg.Autosave.SettleMS = ms
	}

	return cfg, nil
}

// DefaultDBPath places the database under the XDG data directory.
func DefaultDBPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "inkwell", "inkwell.db")
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
