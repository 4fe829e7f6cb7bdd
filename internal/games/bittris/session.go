package bittris

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bittris/internal/core"
)

// Randomizer picks the next piece family. *math/rand.Rand satisfies it.
type Randomizer interface {
	// Intn returns a uniform integer in [0, n).
	Intn(n int) int
}

// GravityResult describes one timer step.
type GravityResult struct {
	Moved   bool // the piece fell one row
	Locked  bool // the piece could not fall and was merged
	Cleared int  // rows removed by the lock
	TopOut  bool // the next piece spawned onto occupied cells
}

// Stats counts what happened during a run.
type Stats struct {
	Locked int // pieces merged into the board
	Lines  int // rows cleared
}

// View is what a renderer needs to draw one frame.
type View struct {
	Board     Board // settled cells
	Footprint Board // cells of the falling piece
	Kind      Kind  // family of the falling piece
	Paused    bool
	GameOver  bool
}

// Composite returns settled cells and the falling piece together.
func (v View) Composite() Board {
	return v.Board.Or(v.Footprint)
}

// Session is one run of the game: an engine, the source of new pieces and
// the top-out rule. A run ends when a new piece spawns onto settled cells;
// after that every input and timer step is ignored.
type Session struct {
	engine *Engine
	rng    Randomizer
	seven  bool
	logger *log.Logger
	over   bool
	stats  Stats
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithSevenKinds adds the O piece to the spawn rolls.
func WithSevenKinds() SessionOption {
	return func(s *Session) {
		s.seven = true
	}
}

// WithLogger sets the logger for lock, clear and top-out events.
func WithLogger(l *log.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSession creates a session drawing pieces from rng.
// Call Start before applying input.
func NewSession(rng Randomizer, opts ...SessionOption) *Session {
	s := &Session{
		engine: NewEngine(),
		rng:    rng,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start empties the board and spawns the first piece.
func (s *Session) Start() error {
	s.engine.Reset()
	s.over = false
	s.stats = Stats{}
	return s.spawnNext()
}

// spawnNext rolls the next family and spawns it, ending the run on top-out.
func (s *Session) spawnNext() error {
	n := len(SpawnRoots)
	if s.seven {
		n++
	}
	roll := s.rng.Intn(n)
	idx, ok := RootForRoll(roll, s.seven)
	if !ok {
		return fmt.Errorf("randomizer roll %d out of range [0, %d)", roll, n)
	}

	err := s.engine.Spawn(idx)
	if errors.Is(err, ErrTopOut) {
		s.over = true
		s.logger.Info("top out", "kind", s.engine.Piece().Kind, "locked", s.stats.Locked, "lines", s.stats.Lines)
		return err
	}
	if err != nil {
		return err
	}
	s.logger.Debug("spawn", "kind", s.engine.Piece().Kind)
	return nil
}

// Apply performs one player action on the falling piece and reports
// whether anything moved. A soft drop that is blocked does not lock;
// locking only happens on a timer step.
func (s *Session) Apply(a core.Action) (changed bool) {
	if s.over {
		return false
	}
	switch a {
	case core.ActionLeft:
		return !s.engine.MoveHorizontal(-1)
	case core.ActionRight:
		return !s.engine.MoveHorizontal(1)
	case core.ActionSoftDrop:
		return !s.engine.StepDown()
	case core.ActionRotate:
		return s.engine.Rotate()
	}
	return false
}

// Gravity runs one timer step: the piece falls a row, or it locks, full
// rows clear and the next piece spawns.
func (s *Session) Gravity() GravityResult {
	if s.over {
		return GravityResult{}
	}
	if !s.engine.StepDown() {
		return GravityResult{Moved: true}
	}

	active, _ := s.engine.Active()
	kind := s.engine.Piece().Kind
	cleared := s.engine.LockAndClear()
	s.stats.Locked++
	s.stats.Lines += cleared
	s.logger.Debug("lock", "kind", kind, "x", active.X, "y", active.Y, "cleared", cleared)

	res := GravityResult{Locked: true, Cleared: cleared}
	if err := s.spawnNext(); err != nil {
		res.TopOut = s.over
		if !s.over {
			s.logger.Error("spawn failed", "error", err)
		}
	}
	return res
}

// GameOver reports whether the run has ended.
func (s *Session) GameOver() bool {
	return s.over
}

// Stats returns the run counters.
func (s *Session) Stats() Stats {
	return s.stats
}

// Engine exposes the underlying engine.
func (s *Session) Engine() *Engine {
	return s.engine
}

// View returns the current frame for a renderer.
func (s *Session) View() View {
	return View{
		Board:     s.engine.Board(),
		Footprint: s.engine.Footprint(),
		Kind:      s.engine.Piece().Kind,
		GameOver:  s.over,
	}
}
