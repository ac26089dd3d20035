package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all moneytree configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Display    DisplayConfig    `toml:"display"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DataFile     string `toml:"data_file,omitempty"`
	HistoryLimit int    `toml:"history_limit"`
}

// DisplayConfig controls how amounts are printed. It never affects stored values.
type DisplayConfig struct {
	Currency string `toml:"currency"`
	Decimals int    `toml:"decimals"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			HistoryLimit: 20,
		},
		Display: DisplayConfig{
			Currency: "¥",
			Decimals: 0,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "moneytree")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "moneytree")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "moneytree")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "moneytree")
}

// DefaultDataFile is the database used when nothing else is configured.
func DefaultDataFile() string {
	return filepath.Join(DataDir(), "moneytree.db")
}

// DataFile returns the database path from env var, config, or the default,
// in that order.
func DataFile(cfg Config) string {
	if p := os.Getenv("MONEYTREE_DATA_FILE"); p != "" {
		return p
	}
	if cfg.General.DataFile != "" {
		return expandHome(cfg.General.DataFile)
	}
	return DefaultDataFile()
}

func expandHome(p string) string {
	if len(p) < 2 || p[:2] != "~/" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[2:])
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.General.HistoryLimit <= 0 {
		cfg.General.HistoryLimit = DefaultConfig().General.HistoryLimit
	}
	if cfg.Display.Decimals < 0 {
		cfg.Display.Decimals = 0
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
