// Package config provides YAML-based configuration loading for bittris.
package config

import "time"

// BittrisConfig contains all configuration for the game and its frontends.
type BittrisConfig struct {
	Timing TimingConfig `yaml:"timing"`
	Spawn  SpawnConfig  `yaml:"spawn"`
	Keys   KeysConfig   `yaml:"keys"`
}

// TimingConfig controls how fast pieces fall and how often frontends poll.
type TimingConfig struct {
	GravityInterval time.Duration `yaml:"gravity_interval"` // Time between automatic one-row drops
	TickRate        int           `yaml:"tick_rate"`        // Simulation ticks per second (tui frontend)
	PollDelay       time.Duration `yaml:"poll_delay"`       // Idle pause between polls (raw frontend)
}

// SpawnConfig controls which families can spawn.
type SpawnConfig struct {
	IncludeO bool `yaml:"include_o"` // Roll from seven families instead of six
}

// KeysConfig binds key names to actions. Names follow Bubble Tea's
// KeyMsg.String() form: "a", "left", "ctrl+c".
type KeysConfig struct {
	Left     []string `yaml:"left"`
	Right    []string `yaml:"right"`
	SoftDrop []string `yaml:"soft_drop"`
	Rotate   []string `yaml:"rotate"`
	Pause    []string `yaml:"pause"`
	Restart  []string `yaml:"restart"`
	Quit     []string `yaml:"quit"`
}
