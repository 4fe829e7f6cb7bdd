package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/bittris.yaml
var defaultBittrisYAML []byte

// DefaultBittrisConfig returns the default configuration.
func DefaultBittrisConfig() BittrisConfig {
	return BittrisConfig{
		Timing: TimingConfig{
			GravityInterval: 500 * time.Millisecond,
			TickRate:        60,
			PollDelay:       time.Millisecond,
		},
		Spawn: SpawnConfig{
			IncludeO: false,
		},
		Keys: KeysConfig{
			Left:     []string{"a", "left"},
			Right:    []string{"d", "right"},
			SoftDrop: []string{"s", "down"},
			Rotate:   []string{"w", "up"},
			Pause:    []string{"p"},
			Restart:  []string{"r"},
			Quit:     []string{"q", "ctrl+c"},
		},
	}
}
