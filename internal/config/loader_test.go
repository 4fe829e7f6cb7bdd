package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bittris.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var fromYAML BittrisConfig
	if err := yaml.Unmarshal(defaultBittrisYAML, &fromYAML); err != nil {
		t.Fatalf("embedded yaml: %v", err)
	}
	want := DefaultBittrisConfig()

	if fromYAML.Timing != want.Timing {
		t.Errorf("timing = %+v, want %+v", fromYAML.Timing, want.Timing)
	}
	if fromYAML.Spawn != want.Spawn {
		t.Errorf("spawn = %+v, want %+v", fromYAML.Spawn, want.Spawn)
	}
	if len(fromYAML.Keys.Quit) != len(want.Keys.Quit) || fromYAML.Keys.Left[0] != want.Keys.Left[0] {
		t.Errorf("keys = %+v, want %+v", fromYAML.Keys, want.Keys)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := writeConfig(t, `
timing:
  gravity_interval: 250ms
  tick_rate: 30
keys:
  rotate: [k]
`)

	cfg, err := LoadBittris(path)
	if err != nil {
		t.Fatalf("LoadBittris: %v", err)
	}
	if cfg.Timing.GravityInterval != 250*time.Millisecond {
		t.Errorf("interval = %s, want 250ms", cfg.Timing.GravityInterval)
	}
	if cfg.Timing.TickRate != 30 {
		t.Errorf("tick rate = %d, want 30", cfg.Timing.TickRate)
	}
	if len(cfg.Keys.Rotate) != 1 || cfg.Keys.Rotate[0] != "k" {
		t.Errorf("rotate = %v, want [k]", cfg.Keys.Rotate)
	}
	// Unset values keep their defaults.
	if cfg.Timing.PollDelay != time.Millisecond {
		t.Errorf("poll delay = %s, want default", cfg.Timing.PollDelay)
	}
	if len(cfg.Keys.Left) != 2 {
		t.Errorf("left = %v, want default bindings", cfg.Keys.Left)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		invalid bool
	}{
		{
			name: "missing file",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.yaml") },
		},
		{
			name: "bad yaml",
			path: func(t *testing.T) string { return writeConfig(t, "timing: [") },
		},
		{
			name:    "zero interval",
			path:    func(t *testing.T) string { return writeConfig(t, "timing:\n  gravity_interval: 0s\n") },
			invalid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadBittris(tt.path(t))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.invalid && !errors.Is(err, ErrInvalid) {
				t.Errorf("err = %v, want ErrInvalid", err)
			}
			if cfg.Timing != DefaultBittrisConfig().Timing {
				t.Error("failed load should return defaults")
			}
		})
	}
}

func TestLoadFallsBackToLocalConfigs(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)

	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join("configs", "bittris.yaml"), []byte("spawn:\n  include_o: true\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadBittris("")
	if err != nil {
		t.Fatalf("LoadBittris: %v", err)
	}
	if !cfg.Spawn.IncludeO {
		t.Error("./configs/bittris.yaml should be used")
	}
}

func TestLoadUserConfigWins(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)

	userDir := filepath.Join(dir, ".bittris", "configs")
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(userDir, "bittris.yaml"), []byte("timing:\n  tick_rate: 20\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join("configs", "bittris.yaml"), []byte("timing:\n  tick_rate: 40\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadBittris("")
	if err != nil {
		t.Fatalf("LoadBittris: %v", err)
	}
	if cfg.Timing.TickRate != 20 {
		t.Errorf("tick rate = %d, want the user config's 20", cfg.Timing.TickRate)
	}
}

func TestLoadEmbeddedDefault(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)

	cfg, err := LoadBittris("")
	if err != nil {
		t.Fatalf("LoadBittris: %v", err)
	}
	if cfg.Timing != DefaultBittrisConfig().Timing {
		t.Errorf("timing = %+v, want defaults", cfg.Timing)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *BittrisConfig)
	}{
		{"zero interval", func(c *BittrisConfig) { c.Timing.GravityInterval = 0 }},
		{"negative tick rate", func(c *BittrisConfig) { c.Timing.TickRate = -1 }},
		{"negative poll delay", func(c *BittrisConfig) { c.Timing.PollDelay = -time.Millisecond }},
		{"no left keys", func(c *BittrisConfig) { c.Keys.Left = nil }},
		{"blank key", func(c *BittrisConfig) { c.Keys.Quit = []string{" "} }},
		{"shared key", func(c *BittrisConfig) { c.Keys.Pause = []string{"A"} }},
	}

	if err := DefaultBittrisConfig().Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultBittrisConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}
