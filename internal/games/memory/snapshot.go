package memory

// CardView is a card as seen by a player: the key of a face-down card is
// hidden as -1.
type CardView struct {
	Key      int  `json:"key"`
	Revealed bool `json:"revealed"`
	Matched  bool `json:"matched"`
}

// Snapshot is the read-only view of a round used by remote renderers.
type Snapshot struct {
	Tick      uint64     `json:"tick"`
	Cards     []CardView `json:"cards"`
	Cols      int        `json:"cols"`
	Cursor    int        `json:"cursor"`
	Pending   int        `json:"pending"`
	Moves     int        `json:"moves"`
	Seconds   int        `json:"seconds"`
	Started   bool       `json:"started"`
	Completed bool       `json:"completed"`
	Paused    bool       `json:"paused"`
}

// Snapshot returns the current round state.
func (g *Game) Snapshot() Snapshot {
	views := make([]CardView, len(g.cards))
	for i, c := range g.cards {
		key := -1
		if c.Revealed || c.Matched {
			key = c.Key
		}
		views[i] = CardView{Key: key, Revealed: c.Revealed, Matched: c.Matched}
	}

	return Snapshot{
		Tick:      g.tick,
		Cards:     views,
		Cols:      Cols,
		Cursor:    g.cursor,
		Pending:   len(g.pending),
		Moves:     g.moves,
		Seconds:   g.seconds,
		Started:   g.started,
		Completed: g.completed,
		Paused:    g.paused,
	}
}

// Observe implements registry.Game.
func (g *Game) Observe() any {
	return g.Snapshot()
}
