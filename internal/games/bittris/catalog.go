package bittris

import (
	"github.com/vovakirdan/bittris/internal/core"
)

// Kind identifies a piece family.
type Kind int

const (
	KindT Kind = iota
	KindJ
	KindL
	KindO
	KindZ
	KindS
	KindI
)

// String returns the one-letter name of the family.
func (k Kind) String() string {
	switch k {
	case KindT:
		return "T"
	case KindJ:
		return "J"
	case KindL:
		return "L"
	case KindO:
		return "O"
	case KindZ:
		return "Z"
	case KindS:
		return "S"
	case KindI:
		return "I"
	default:
		return "?"
	}
}

// Color returns the display color of the family's falling piece.
func (k Kind) Color() core.Color {
	switch k {
	case KindT:
		return core.ColorMagenta
	case KindJ:
		return core.ColorBlue
	case KindL:
		return core.ColorOrange
	case KindO:
		return core.ColorYellow
	case KindZ:
		return core.ColorRed
	case KindS:
		return core.ColorGreen
	case KindI:
		return core.ColorCyan
	default:
		return core.ColorDefault
	}
}

// Index selects one rotation state in the catalog.
type Index int

// First rotation state of each family. Pieces spawn in these states.
const (
	IndexT Index = 0
	IndexJ Index = 4
	IndexL Index = 8
	IndexO Index = 12
	IndexZ Index = 13
	IndexS Index = 15
	IndexI Index = 17

	CatalogSize = 19
)

// Piece is one rotation state: a shape at the top-left origin plus its
// bounding box.
type Piece struct {
	Kind   Kind
	Shape  Board
	Width  int
	Height int
}

// Bounds returns the piece's bounding box when placed at (x, y).
func (p Piece) Bounds(x, y int) core.Rect {
	return core.NewRect(x, y, p.Width, p.Height)
}

// At returns the piece's footprint placed x columns right and y rows down.
func (p Piece) At(x, y int) Board {
	return p.Shape.Shift(x, y)
}

// catalogArt lists every rotation state in index order.
var catalogArt = [CatalogSize]struct {
	kind Kind
	art  []string
}{
	// T: 0-3
	{KindT, []string{".#.", "###"}},
	{KindT, []string{"#.", "##", "#."}},
	{KindT, []string{"###", ".#."}},
	{KindT, []string{".#", "##", ".#"}},
	// J: 4-7
	{KindJ, []string{"#..", "###"}},
	{KindJ, []string{"##", "#.", "#."}},
	{KindJ, []string{"###", "..#"}},
	{KindJ, []string{".#", ".#", "##"}},
	// L: 8-11
	{KindL, []string{"..#", "###"}},
	{KindL, []string{"#.", "#.", "##"}},
	{KindL, []string{"###", "#.."}},
	{KindL, []string{"##", ".#", ".#"}},
	// O: 12
	{KindO, []string{"##", "##"}},
	// Z: 13-14
	{KindZ, []string{"##.", ".##"}},
	{KindZ, []string{".#", "##", "#."}},
	// S: 15-16
	{KindS, []string{".##", "##."}},
	{KindS, []string{"#.", "##", ".#"}},
	// I: 17-18
	{KindI, []string{"####"}},
	{KindI, []string{"#", "#", "#", "#"}},
}

var catalog = buildCatalog()

// buildCatalog bakes the art table into shape bitmasks.
// The bounding box is the art's own row count and widest row.
func buildCatalog() [CatalogSize]Piece {
	var out [CatalogSize]Piece
	for i, entry := range catalogArt {
		w := 0
		for _, line := range entry.art {
			w = max(w, len(line))
		}
		out[i] = Piece{
			Kind:   entry.kind,
			Shape:  MustParseBoard(entry.art...),
			Width:  w,
			Height: len(entry.art),
		}
	}
	return out
}

// Lookup returns the catalog entry for i.
func Lookup(i Index) (Piece, bool) {
	if i < 0 || i >= CatalogSize {
		return Piece{}, false
	}
	return catalog[i], true
}

// SpawnRoots maps a randomizer roll in [0, 6) to the state a new piece
// spawns in: 0=T, 1=J, 2=L, 3=Z, 4=S, 5=I.
var SpawnRoots = [...]Index{IndexT, IndexJ, IndexL, IndexZ, IndexS, IndexI}

// sevenKindRoots extends SpawnRoots with the O piece at roll 6.
var sevenKindRoots = [...]Index{IndexT, IndexJ, IndexL, IndexZ, IndexS, IndexI, IndexO}

// RootForRoll maps a roll to a spawn state. With seven set, roll 6 selects
// the O piece. ok is false for an out-of-range roll.
func RootForRoll(roll int, seven bool) (Index, bool) {
	roots := SpawnRoots[:]
	if seven {
		roots = sevenKindRoots[:]
	}
	if roll < 0 || roll >= len(roots) {
		return 0, false
	}
	return roots[roll], true
}

// IsSpawnRoot reports whether i is the first state of a family.
func IsSpawnRoot(i Index) bool {
	for _, root := range sevenKindRoots {
		if root == i {
			return true
		}
	}
	return false
}
