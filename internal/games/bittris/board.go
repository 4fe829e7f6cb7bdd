// Package bittris implements a falling-block puzzle on a fixed 10x12 bit-board.
//
// Bit layout: a Board is Height rows of Row, row 0 at the top. Within a row,
// bit c marks column c as occupied, so bit 0 is the leftmost column. Bits at
// or above Width are never set.
package bittris

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/vovakirdan/bittris/internal/core"
)

// Board dimensions.
const (
	Width  = 10
	Height = 12
)

// Row is one board row as a column bitmask.
type Row uint16

// FullRow has every column of a row occupied.
const FullRow Row = 1<<Width - 1

// Board is a Width x Height occupancy grid. The zero value is empty.
// Piece shapes use the same type, positioned at the top-left origin.
type Board [Height]Row

// field is the whole grid as a rectangle.
var field = core.NewRect(0, 0, Width, Height)

// inBounds reports whether (row, col) is inside the grid.
func inBounds(row, col int) bool {
	return field.Contains(col, row)
}

// Occupied reports whether cell (row, col) is set.
// Cells outside the grid are never occupied.
func (b Board) Occupied(row, col int) bool {
	if !inBounds(row, col) {
		return false
	}
	return b[row]&(1<<col) != 0
}

// Set marks cell (row, col) as occupied. Out-of-range cells are ignored.
func (b *Board) Set(row, col int) {
	if !inBounds(row, col) {
		return
	}
	b[row] |= 1 << col
}

// Row returns the bitmask of the given row, or 0 outside the grid.
func (b Board) Row(r int) Row {
	if r < 0 || r >= Height {
		return 0
	}
	return b[r]
}

// RowFull reports whether every column of row r is occupied.
func (b Board) RowFull(r int) bool {
	return b.Row(r) == FullRow
}

// Overlaps reports whether any cell is occupied in both boards.
func (b Board) Overlaps(other Board) bool {
	for r := range Height {
		if b[r]&other[r] != 0 {
			return true
		}
	}
	return false
}

// Or returns the union of both boards.
func (b Board) Or(other Board) Board {
	for r := range Height {
		b[r] |= other[r]
	}
	return b
}

// ClearRow removes row r. Every row above it moves down by one and an
// empty row enters at the top; rows below r are untouched.
func (b *Board) ClearRow(r int) {
	if r < 0 || r >= Height {
		return
	}
	copy(b[1:r+1], b[0:r])
	b[0] = 0
}

// Shift translates the board dx columns right and dy rows down.
// Negative values move left or up. Cells pushed off the grid are dropped.
func (b Board) Shift(dx, dy int) Board {
	var out Board
	for r := range Height {
		dst := r + dy
		if dst < 0 || dst >= Height || b[r] == 0 {
			continue
		}
		row := b[r]
		switch {
		case dx >= Width || dx <= -Width:
			row = 0
		case dx > 0:
			row <<= dx
		case dx < 0:
			row >>= -dx
		}
		out[dst] = row & FullRow
	}
	return out
}

// Count returns the number of occupied cells.
func (b Board) Count() int {
	n := 0
	for _, row := range b {
		n += bits.OnesCount16(uint16(row))
	}
	return n
}

// Empty reports whether no cell is occupied.
func (b Board) Empty() bool {
	return b == Board{}
}

// String renders the board as rows of '#' and '.', one line per row.
func (b Board) String() string {
	var sb strings.Builder
	sb.Grow(Height * (Width + 1))
	for r := range Height {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := range Width {
			if b.Occupied(r, c) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}

// ParseBoard builds a board from text art, one string per row starting at
// row 0. '#' is occupied; '.' and ' ' are empty. Missing rows and columns
// are empty.
func ParseBoard(lines ...string) (Board, error) {
	var b Board
	if len(lines) > Height {
		return b, fmt.Errorf("parse board: %d rows exceeds height %d", len(lines), Height)
	}
	for r, line := range lines {
		if len(line) > Width {
			return b, fmt.Errorf("parse board: row %d is %d wide, max %d", r, len(line), Width)
		}
		for c, ch := range line {
			switch ch {
			case '#':
				b.Set(r, c)
			case '.', ' ':
			default:
				return b, fmt.Errorf("parse board: unexpected %q at row %d col %d", ch, r, c)
			}
		}
	}
	return b, nil
}

// MustParseBoard is ParseBoard for static tables; it panics on bad art.
func MustParseBoard(lines ...string) Board {
	b, err := ParseBoard(lines...)
	if err != nil {
		panic(err)
	}
	return b
}
