// Package config handles the outlay config file and environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds all outlay configuration. The session token and theme are
// the two durable client-side keys; everything else has a sane default.
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Session    SessionConfig    `toml:"session"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// ServerConfig holds backend connection settings.
type ServerConfig struct {
	BaseURL    string `toml:"base_url"`
	TimeoutSec int    `toml:"timeout_sec,omitempty"`
}

// SessionConfig holds the persisted session token.
type SessionConfig struct {
	Token string `toml:"token,omitempty"`
}

// AppearanceConfig holds the theme preference ("dark" or "light").
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			BaseURL: "http://localhost:8080/api",
		},
		Appearance: AppearanceConfig{
			Theme: "dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "outlay")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "outlay")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, applying defaults when it doesn't exist and
// environment overrides on top. A .env file in the working directory is
// honored for the OUTLAY_* variables.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

// loadFile reads the config file without environment overrides, so that
// partial saves never bake an env override into the file.
func loadFile() (Config, error) {
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
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("OUTLAY_SERVER"); v != "" {
		cfg.Server.BaseURL = v
	}
	if v := os.Getenv("OUTLAY_TOKEN"); v != "" {
		cfg.Session.Token = v
	}
	if v := os.Getenv("OUTLAY_THEME"); v != "" {
		cfg.Appearance.Theme = v
	}
}

// Save writes the config to disk. Mode 0600 because the file carries the
// session token.
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

// SaveToken updates only the persisted session token.
func SaveToken(token string) error {
	cfg, err := loadFile()
	if err != nil {
		return err
	}
	cfg.Session.Token = token
	return Save(cfg)
}

// SaveServer updates only the persisted backend base URL.
func SaveServer(baseURL string) error {
	cfg, err := loadFile()
	if err != nil {
		return err
	}
	cfg.Server.BaseURL = baseURL
	return Save(cfg)
}

// SaveTheme updates only the persisted theme preference.
func SaveTheme(name string) error {
	cfg, err := loadFile()
	if err != nil {
		return err
	}
	cfg.Appearance.Theme = name
	return Save(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
