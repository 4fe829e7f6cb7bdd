package bittris

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bittris/internal/config"
	"github.com/vovakirdan/bittris/internal/core"
	"github.com/vovakirdan/bittris/internal/registry"
)

// Mode selects which families can spawn.
type Mode string

const (
	ModeClassic Mode = "classic" // T J L Z S I
	ModeSeven   Mode = "seven"   // adds O
)

// Game adapts a Session to the fixed-tick registry.Game contract.
type Game struct {
	mode    Mode
	cfg     config.BittrisConfig
	rng     *rand.Rand
	session *Session
	tick    uint64

	gravityTicks int // ticks per gravity step
	sinceGravity int // ticks since the last gravity step

	paused bool
	help   string
}

// Package-level variables for config
var (
	configPath string
	logger     = log.New(io.Discard)
)

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetLogger sets the logger handed to every new session.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// New creates a classic game with six spawnable families.
func New() *Game {
	return &Game{mode: ModeClassic}
}

// NewSeven creates a game that also spawns the O piece.
func NewSeven() *Game {
	return &Game{mode: ModeSeven}
}

func init() {
	registry.Register("bittris", func() registry.Game {
		return New()
	})
	registry.Register("bittris_seven", func() registry.Game {
		return NewSeven()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeSeven {
		return "bittris_seven"
	}
	return "bittris"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeSeven {
		return "Bittris (Seven Pieces)"
	}
	return "Bittris"
}

// Reset loads the config and starts a new run.
func (g *Game) Reset(rc core.RuntimeConfig) {
	cfg, err := config.LoadBittris(configPath)
	if err != nil {
		logger.Warn("using default config", "error", err)
	}
	g.ResetWithConfig(rc, cfg)
}

// ResetWithConfig starts a new run with an explicit config.
func (g *Game) ResetWithConfig(rc core.RuntimeConfig, cfg config.BittrisConfig) {
	g.cfg = cfg

	tickRate := rc.TickRate
	if tickRate <= 0 {
		tickRate = cfg.Timing.TickRate
	}
	g.gravityTicks = GravityTicks(cfg.Timing.GravityInterval, tickRate)
	g.sinceGravity = 0
	g.tick = 0
	g.paused = false
	g.help = HelpLine(cfg.Keys)

	g.rng = rand.New(rand.NewSource(rc.Seed))
	opts := []SessionOption{WithLogger(logger)}
	if g.mode == ModeSeven || cfg.Spawn.IncludeO {
		opts = append(opts, WithSevenKinds())
	}
	g.session = NewSession(g.rng, opts...)
	if err := g.session.Start(); err != nil {
		logger.Error("start failed", "error", err)
	}
}

// GravityTicks converts a gravity interval into whole ticks at tickRate.
// The result is at least 1.
func GravityTicks(interval time.Duration, tickRate int) int {
	if tickRate <= 0 {
		return 1
	}
	n := int((interval*time.Duration(tickRate) + time.Second/2) / time.Second)
	return max(1, n)
}

// Step advances the game by one tick. Actions are applied in arrival
// order, then at most one gravity step runs.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	changed := false
	for _, a := range in.Actions {
		switch {
		case a == core.ActionPause:
			if !g.session.GameOver() {
				g.paused = !g.paused
				changed = true
			}
		case a.IsMove():
			if !g.paused && g.session.Apply(a) {
				changed = true
			}
		}
	}

	if g.paused || g.session.GameOver() {
		return core.StepResult{State: g.State(), Changed: changed}
	}

	g.tick++
	g.sinceGravity++
	if g.sinceGravity >= g.gravityTicks {
		g.sinceGravity = 0
		g.session.Gravity()
		changed = true
	}

	return core.StepResult{State: g.State(), Changed: changed}
}

// Render draws the framed board centered on the screen.
func (g *Game) Render(dst *core.Screen) {
	v := g.session.View()
	v.Paused = g.paused
	DrawView(dst, v, g.help)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		GameOver: g.session.GameOver(),
		Paused:   g.paused,
	}
}

// Session exposes the running session.
func (g *Game) Session() *Session {
	return g.session
}

// Config returns the config the current run was started with.
func (g *Game) Config() config.BittrisConfig {
	return g.cfg
}
