package bittris

import (
	"errors"
	"fmt"
)

var (
	// ErrTopOut is returned when a piece spawns onto occupied cells.
	ErrTopOut = errors.New("bittris: spawn position is occupied")

	// ErrNotSpawnRoot is returned when spawning a state that is not the
	// first state of its family.
	ErrNotSpawnRoot = errors.New("bittris: index is not a spawn root")
)

// maxClearRows is the tallest footprint a piece can have, and so the most
// rows a single lock can complete.
const maxClearRows = 4

// Active is the falling piece: its catalog state and its offset from the
// top-left corner of the board.
type Active struct {
	Index Index
	X     int
	Y     int
}

// Engine owns a board and the piece falling on it. All operations are
// synchronous and do no I/O. Collisions are reported as booleans.
type Engine struct {
	board  Board
	active Active
	piece  Piece
	live   bool // a piece is falling
}

// NewEngine returns an engine with an empty board and no piece.
func NewEngine() *Engine {
	return &Engine{}
}

// Reset empties the board and drops the falling piece.
func (e *Engine) Reset() {
	*e = Engine{}
}

// Board returns the settled cells.
func (e *Engine) Board() Board {
	return e.board
}

// SetBoard replaces the settled cells. Bits outside the grid are dropped.
func (e *Engine) SetBoard(b Board) {
	for r := range Height {
		b[r] &= FullRow
	}
	e.board = b
}

// Active returns the falling piece's state. ok is false between a lock and
// the next spawn.
func (e *Engine) Active() (Active, bool) {
	return e.active, e.live
}

// Piece returns the catalog entry of the falling piece.
func (e *Engine) Piece() Piece {
	return e.piece
}

// Footprint returns the cells covered by the falling piece, or an empty
// board when there is none.
func (e *Engine) Footprint() Board {
	if !e.live {
		return Board{}
	}
	return e.piece.At(e.active.X, e.active.Y)
}

// Composite returns the settled cells with the falling piece drawn in.
func (e *Engine) Composite() Board {
	return e.board.Or(e.Footprint())
}

// fits reports whether p placed at (x, y) lies inside the grid and clear of
// settled cells. Bounds are checked before the shifted shape is built.
func (e *Engine) fits(p Piece, x, y int) bool {
	if !field.ContainsRect(p.Bounds(x, y)) {
		return false
	}
	return !e.board.Overlaps(p.At(x, y))
}

// Spawn places the first state i of a family at the top-left corner.
//
// A non-root index is rejected and nothing changes. If the spawn cells are
// already occupied the piece is still installed, so it can be drawn, and
// ErrTopOut is returned; the caller decides how the run ends.
func (e *Engine) Spawn(i Index) error {
	if !IsSpawnRoot(i) {
		return fmt.Errorf("spawn %d: %w", i, ErrNotSpawnRoot)
	}
	p, _ := Lookup(i)
	e.piece = p
	e.active = Active{Index: i}
	e.live = true
	if e.board.Overlaps(p.At(0, 0)) {
		return fmt.Errorf("spawn %s: %w", p.Kind, ErrTopOut)
	}
	return nil
}

// MoveHorizontal shifts the piece delta columns. It reports blocked when
// the new column would leave [0, Width-width] or hit settled cells; in that
// case nothing changes.
func (e *Engine) MoveHorizontal(delta int) (blocked bool) {
	if !e.live {
		return true
	}
	x := e.active.X + delta
	if x < 0 || x > Width-e.piece.Width {
		return true
	}
	if e.board.Overlaps(e.piece.At(x, e.active.Y)) {
		return true
	}
	e.active.X = x
	return false
}

// StepDown moves the piece one row down. It reports blocked when the piece
// already rests on the floor or on settled cells; in that case nothing
// changes and the piece is ready to lock.
func (e *Engine) StepDown() (blocked bool) {
	if !e.live {
		return true
	}
	if e.active.Y+e.piece.Height >= Height {
		return true
	}
	if e.board.Overlaps(e.piece.At(e.active.X, e.active.Y+1)) {
		return true
	}
	e.active.Y++
	return false
}

// Rotate advances the piece to its next rotation state. The single
// candidate placement from the rotation table either fits entirely or the
// piece keeps its state, column and row. Returns whether it rotated.
func (e *Engine) Rotate() (rotated bool) {
	if !e.live {
		return false
	}
	rot, ok := Transition(e.active.Index)
	if !ok {
		return false
	}
	next, _ := Lookup(rot.Next)
	x, y := e.active.X+rot.DX, e.active.Y+rot.DY
	if !e.fits(next, x, y) {
		return false
	}
	e.piece = next
	e.active = Active{Index: rot.Next, X: x, Y: y}
	return true
}

// LockAndClear merges the falling piece into the board and removes the
// rows it completed. Only the rows from the piece's top row downward are
// candidates (at most four). Clearing a row shifts only the rows above it,
// so the remaining candidates below keep their positions. Returns the
// number of rows removed. Afterwards there is no falling piece until the
// next Spawn.
func (e *Engine) LockAndClear() (cleared int) {
	if !e.live {
		return 0
	}
	e.board = e.board.Or(e.Footprint())
	e.live = false

	top := e.active.Y
	for r := top; r < top+maxClearRows && r < Height; r++ {
		if e.board.RowFull(r) {
			e.board.ClearRow(r)
			cleared++
		}
	}
	return cleared
}
