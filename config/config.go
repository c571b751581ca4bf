// Package config loads and saves nesvm's TOML-backed configuration.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"nesvm/internal/log"
)

// Config is the top-level on-disk configuration.
type Config struct {
	General GeneralConfig `toml:"general"`
	Video   VideoConfig   `toml:"video"`
	Input   InputConfig   `toml:"input"`
}

type GeneralConfig struct {
	LogModules []string `toml:"log_modules"`
}

type VideoConfig struct {
	YieldIntervalDots int `toml:"yield_interval_dots"`
}

type InputConfig struct {
	Pad1Scheme string `toml:"pad1_scheme"`
	Pad2Scheme string `toml:"pad2_scheme"`
}

// Default returns the configuration a fresh install starts with.
func Default() Config {
	return Config{
		Video: VideoConfig{YieldIntervalDots: 29780 * 3}, // roughly one NTSC frame of clock steps
	}
}

// DefaultPath returns the config file nesvm reads from and writes to when
// no explicit path is given: $XDG_CONFIG_HOME (or its OS-specific
// equivalent, via os.UserConfigDir) + "nesvm/config.toml".
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "nesvm", "config.toml")
}

// Load reads and decodes a TOML configuration file at path, falling back
// to Default if the file does not exist.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	_, err := toml.DecodeFile(path, &cfg)
	return cfg, err
}

// LoadOrDefault is Load without an error return: a missing or malformed
// file yields Default, with the decode error (if any) logged at Warn
// rather than surfaced to the caller.
func LoadOrDefault(path string) Config {
	cfg, err := Load(path)
	if err != nil {
		log.ModEmu.WarnZ("failed to load config, using defaults").
			Str("path", path).
			Err(err).
			End()
		return Default()
	}
	return cfg
}

// Save encodes cfg as TOML and writes it to path, creating parent
// directories as needed.
func Save(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}
