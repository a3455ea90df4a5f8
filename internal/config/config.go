package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (LEARNAI_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: LEARNAI_SERVER_URL -> server_url, etc.
	if err := k.Load(env.Provider("LEARNAI_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "LEARNAI_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validTones is the set of recognized tone values.
var validTones = map[Tone]bool{
	ToneDefault:      true,
	ToneProfessional: true,
	ToneInformal:     true,
	ToneEncouraging:  true,
}

// validLevels is the set of recognized level values.
var validLevels = map[Level]bool{
	LevelBeginner:     true,
	LevelIntermediate: true,
	LevelAdvanced:     true,
}

// ValidTone reports whether t is a recognized tone.
func ValidTone(t Tone) bool { return validTones[t] }

// ValidLevel reports whether l is a recognized level.
func ValidLevel(l Level) bool { return validLevels[l] }

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.ServerURL == "" {
		return fmt.Errorf("server_url is required")
	}
	u, err := url.Parse(c.ServerURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("invalid server_url %q: must be an absolute URL", c.ServerURL)
	}

	if !validTones[c.Tone] {
		return fmt.Errorf("invalid tone %q: must be one of default, professional, informal, encouraging", c.Tone)
	}

	if !validLevels[c.Level] {
		return fmt.Errorf("invalid level %q: must be one of beginner, intermediate, advanced", c.Level)
	}

	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}

	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("max_upload_mb must be positive")
	}

	return nil
}
