// Package driver runs a Session as a single-threaded polling loop: pending
// input is applied first, then at most one gravity step runs once the
// interval has elapsed. Nothing in the loop blocks except the idle sleep.
package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bittris/internal/core"
	"github.com/vovakirdan/bittris/internal/games/bittris"
	"github.com/vovakirdan/bittris/internal/platform/keys"
)

// ErrQuit is returned by Iterate when the quit key was read.
var ErrQuit = errors.New("driver: quit requested")

// InputSource is a non-blocking keyboard.
type InputSource interface {
	// HasPendingInput reports whether ReadKey would return without blocking.
	HasPendingInput() bool
	// ReadKey returns the next key. Non-key events return an empty name.
	ReadKey() keys.Name
}

// Clock supplies time to the loop.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// Renderer draws one frame.
type Renderer interface {
	Render(v bittris.View) error
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// Sleep calls time.Sleep.
func (SystemClock) Sleep(d time.Duration) { time.Sleep(d) }

// Config controls the loop.
type Config struct {
	Interval  time.Duration // time between gravity steps
	PollDelay time.Duration // sleep after an iteration that did nothing
	Keys      keys.KeyMap
	Logger    *log.Logger
}

// Loop owns a session and its collaborators.
type Loop struct {
	session  *bittris.Session
	input    InputSource
	clock    Clock
	renderer Renderer
	cfg      Config
	logger   *log.Logger

	last   time.Time // time of the last gravity step
	paused bool
	idle   bool // the last iteration neither read input nor ticked
}

// New creates a loop. The session is started by Start or Run.
func New(s *bittris.Session, in InputSource, clk Clock, r Renderer, cfg Config) *Loop {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 500 * time.Millisecond
	}
	return &Loop{
		session:  s,
		input:    in,
		clock:    clk,
		renderer: r,
		cfg:      cfg,
		logger:   logger,
	}
}

// Start spawns the first piece, resets the timer and draws the first frame.
func (l *Loop) Start() error {
	if err := l.session.Start(); err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	l.last = l.clock.Now()
	l.paused = false
	return l.render()
}

// Run starts the session and iterates until the context is cancelled, the
// quit key is read or the run tops out. Top-out returns bittris.ErrTopOut;
// quit and cancellation return nil.
func (l *Loop) Run(ctx context.Context) error {
	if err := l.Start(); err != nil {
		return err
	}
	l.logger.Info("loop started", "interval", l.cfg.Interval)

	for {
		if ctx.Err() != nil {
			l.logger.Info("loop cancelled")
			return nil
		}

		err := l.Iterate()
		switch {
		case errors.Is(err, ErrQuit):
			l.logger.Info("loop stopped", "reason", "quit")
			return nil
		case errors.Is(err, bittris.ErrTopOut):
			stats := l.session.Stats()
			l.logger.Info("loop stopped", "reason", "top out", "locked", stats.Locked, "lines", stats.Lines)
			return err
		case err != nil:
			l.logger.Error("loop failed", "error", err)
			return err
		}

		if l.idle && l.cfg.PollDelay > 0 {
			l.clock.Sleep(l.cfg.PollDelay)
		}
	}
}

// Iterate runs one loop iteration: at most one key, then at most one
// gravity step. It returns ErrQuit, bittris.ErrTopOut, a render error or nil.
func (l *Loop) Iterate() error {
	l.idle = true

	if l.input.HasPendingInput() {
		l.idle = false
		if err := l.handleKey(l.input.ReadKey()); err != nil {
			return err
		}
	}

	if l.paused {
		return nil
	}

	now := l.clock.Now()
	if now.Sub(l.last) < l.cfg.Interval {
		return nil
	}
	l.idle = false
	l.last = now

	res := l.session.Gravity()
	if err := l.render(); err != nil {
		return err
	}
	if res.TopOut {
		return bittris.ErrTopOut
	}
	return nil
}

// handleKey applies one key. Unbound keys are ignored without a repaint.
func (l *Loop) handleKey(k keys.Name) error {
	a := l.cfg.Keys.Action(k)
	switch {
	case a == core.ActionQuit:
		return ErrQuit
	case a == core.ActionPause:
		l.paused = !l.paused
		if !l.paused {
			l.last = l.clock.Now()
		}
		l.logger.Debug("pause", "paused", l.paused)
		return l.render()
	case a.IsMove():
		if !l.paused {
			l.session.Apply(a)
		}
		return l.render()
	}
	return nil
}

func (l *Loop) render() error {
	v := l.session.View()
	v.Paused = l.paused
	if err := l.renderer.Render(v); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

// Paused reports whether gravity is suspended.
func (l *Loop) Paused() bool {
	return l.paused
}
