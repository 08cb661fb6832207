// Package config holds the session configuration record: heap/stack
// sizing, whether to emit a debug listing, and the entry point symbol.
// cmd/basecodec takes these values from its own flags and does not read
// this package. Grounded on the teacher's
// config.go (DefaultConfig/Load/LoadFrom/Save), trimmed to the fields
// spec.md §6's CLI record actually names.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config is the {heap_size, stack_size, debug_listing?} record spec.md §6
// describes the CLI as consuming, plus an entry point symbol. No other
// package in this module reads Entry; the assembler always starts the
// image at its first entry.
type Config struct {
	HeapSize     uint32 `toml:"heap_size"`
	StackSize    uint32 `toml:"stack_size"`
	DebugListing bool   `toml:"debug_listing"`
	Entry        string `toml:"entry"`
}

// DefaultConfig returns the configuration used when no file is present and
// no flags override it.
func DefaultConfig() *Config {
	return &Config{
		HeapSize:     1 << 20,
		StackSize:    1 << 16,
		DebugListing: false,
		Entry:        "main",
	}
}

// GetConfigPath mirrors the teacher's platform-specific config path logic,
// renamed from "arm-emu" to this toolchain's name.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "basecodec")
	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "basecodec")
	default:
		return "config.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "config.toml"
	}
	return filepath.Join(configDir, "config.toml")
}

// Load reads the config file at the default path, falling back to
// DefaultConfig when it does not exist.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom reads the config file at path, falling back to DefaultConfig
// when it does not exist.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Save writes c to the default config path.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo writes c to path in TOML form.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
