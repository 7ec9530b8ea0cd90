// Package config handles loading and saving user configuration for the
// conjugator.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Palette holds the highlight colors as hex strings. Each tense color
// has a darker _hi variant for irregular characters.
type Palette struct {
	Red      string `yaml:"red"`
	RedHi    string `yaml:"red_hi"`
	Blue     string `yaml:"blue"`
	BlueHi   string `yaml:"blue_hi"`
	Green    string `yaml:"green"`
	GreenHi  string `yaml:"green_hi"`
	Purple   string `yaml:"purple"`
	PurpleHi string `yaml:"purple_hi"`
	Orange   string `yaml:"orange"`
	Salmon   string `yaml:"salmon"`
}

// Config holds all user configuration.
type Config struct {
	DataDir          string  `yaml:"data_dir"`
	DeckName         string  `yaml:"deck_name"`
	ServerAddr       string  `yaml:"server_addr"`
	EnableAudioLinks bool    `yaml:"enable_audio_links"`
	Palette          Palette `yaml:"palette"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DataDir:    defaultDataDir(),
		DeckName:   "Conjugaison française",
		ServerAddr: "localhost:8765",
		Palette: Palette{
			Red:      "#FF6B6B",
			RedHi:    "#E11D48",
			Blue:     "#0F766E",
			BlueHi:   "#0B5C56",
			Green:    "#2E7D32",
			GreenHi:  "#166534",
			Purple:   "#1E40AF",
			PurpleHi: "#1D4ED8",
			Orange:   "#FB923C",
			Salmon:   "#FFA07A",
		},
	}
}

// Load reads the config at path. A missing file yields the defaults;
// fields absent from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes the config as YAML, creating parent directories.
func Save(path string, cfg *Config) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// GetConfigDir returns the default configuration directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "conjugateur"), nil
}

// EnsureConfigDir creates the config directory if it doesn't exist.
func EnsureConfigDir() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func defaultDataDir() string {
	dir, err := GetConfigDir()
	if err != nil {
		return "data"
	}
	return filepath.Join(dir, "data")
}
