package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// LoadBittris loads the game configuration.
// Search order: customPath -> ~/.bittris/configs/bittris.yaml -> ./configs/bittris.yaml -> embedded default.
// Values missing from a file keep their defaults.
func LoadBittris(customPath string) (BittrisConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultBittrisConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return DefaultBittrisConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("bittris.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "bittris.yaml")); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultBittrisYAML)
	if err != nil {
		return DefaultBittrisConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse decodes YAML over the defaults and validates the result.
func parse(data []byte) (BittrisConfig, error) {
	cfg := DefaultBittrisConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks that timings are positive and every action has a key.
func (c BittrisConfig) Validate() error {
	if c.Timing.GravityInterval <= 0 {
		return fmt.Errorf("%w: timing.gravity_interval must be positive, got %s", ErrInvalid, c.Timing.GravityInterval)
	}
	if c.Timing.TickRate <= 0 {
		return fmt.Errorf("%w: timing.tick_rate must be positive, got %d", ErrInvalid, c.Timing.TickRate)
	}
	if c.Timing.PollDelay < 0 {
		return fmt.Errorf("%w: timing.poll_delay must not be negative, got %s", ErrInvalid, c.Timing.PollDelay)
	}

	bindings := []struct {
		name string
		keys []string
	}{
		{"left", c.Keys.Left},
		{"right", c.Keys.Right},
		{"soft_drop", c.Keys.SoftDrop},
		{"rotate", c.Keys.Rotate},
		{"pause", c.Keys.Pause},
		{"restart", c.Keys.Restart},
		{"quit", c.Keys.Quit},
	}
	seen := make(map[string]string)
	for _, b := range bindings {
		if len(b.keys) == 0 {
			return fmt.Errorf("%w: keys.%s has no keys", ErrInvalid, b.name)
		}
		for _, k := range b.keys {
			k = strings.ToLower(strings.TrimSpace(k))
			if k == "" {
				return fmt.Errorf("%w: keys.%s has an empty key", ErrInvalid, b.name)
			}
			if other, dup := seen[k]; dup && other != b.name {
				return fmt.Errorf("%w: key %q bound to both %s and %s", ErrInvalid, k, other, b.name)
			}
			seen[k] = b.name
		}
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".bittris", "configs", filename)
}
