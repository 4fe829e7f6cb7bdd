package bittris

// Snapshot contains the complete game state for replay and determinism checks.
// Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick         uint64
	SinceGravity int
	Rows         [Height]uint16 // settled cells, bit c = column c

	// Falling piece
	Live  bool
	Index int
	X     int
	Y     int

	Locked   int
	Lines    int
	Paused   bool
	GameOver bool
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	e := g.session.Engine()
	board := e.Board()
	var rows [Height]uint16
	for r, row := range board {
		rows[r] = uint16(row)
	}

	active, live := e.Active()
	stats := g.session.Stats()
	return Snapshot{
		Tick:         g.tick,
		SinceGravity: g.sinceGravity,
		Rows:         rows,
		Live:         live,
		Index:        int(active.Index),
		X:            active.X,
		Y:            active.Y,
		Locked:       stats.Locked,
		Lines:        stats.Lines,
		Paused:       g.paused,
		GameOver:     g.session.GameOver(),
	}
}
