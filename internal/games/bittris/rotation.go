package bittris

// Rotation is the move from one rotation state to the next: the new catalog
// index and the offset applied to the piece position so the new bounding
// box sits where the family visually pivots.
type Rotation struct {
	Next Index
	DX   int
	DY   int
}

// rotations is hand-authored per state. The offsets are not derived from a
// geometric rotation; they are part of each family's feel. J and L do not
// return to their starting position after a full turn.
var rotations = map[Index]Rotation{
	// T
	0: {Next: 1, DX: 1, DY: 0},
	1: {Next: 2, DX: -1, DY: 1},
	2: {Next: 3, DX: 0, DY: -1},
	3: {Next: 0, DX: 0, DY: 0},
	// J
	4: {Next: 5, DX: 0, DY: 1},
	5: {Next: 6, DX: -2, DY: 0},
	6: {Next: 7, DX: 1, DY: -1},
	7: {Next: 4, DX: 1, DY: 1},
	// L
	8:  {Next: 9, DX: 1, DY: -1},
	9:  {Next: 10, DX: 2, DY: 0},
	10: {Next: 11, DX: 0, DY: 0},
	11: {Next: 8, DX: -1, DY: -1},
	// O has no entry: rotating it does nothing.
	// Z
	13: {Next: 14, DX: 1, DY: 0},
	14: {Next: 13, DX: -1, DY: 0},
	// S
	15: {Next: 16, DX: 0, DY: 0},
	16: {Next: 15, DX: 0, DY: 0},
	// I
	17: {Next: 18, DX: 0, DY: 0},
	18: {Next: 17, DX: 0, DY: 0},
}

// Transition returns the rotation out of state i, if the state rotates.
func Transition(i Index) (Rotation, bool) {
	r, ok := rotations[i]
	return r, ok
}
