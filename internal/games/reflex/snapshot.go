package reflex

import "github.com/vovakirdan/miniplay/internal/core"

// Snapshot is the read-only view of a round used by remote renderers.
// Target is only set while Armed; the scheduled delay is never exposed.
type Snapshot struct {
	Tick       uint64     `json:"tick"`
	Phase      string     `json:"phase"`
	Playfield  core.Point `json:"playfield"`
	Target     *core.Rect `json:"target,omitempty"`
	ReactionMS int        `json:"reaction_ms,omitempty"`
	Rating     string     `json:"rating,omitempty"`
	Attempts   int        `json:"attempts"`
}

// Snapshot returns the current round state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:      g.tick,
		Phase:     g.phase.String(),
		Playfield: core.Point{X: g.cfg.Playfield.Width, Y: g.cfg.Playfield.Height},
		Attempts:  g.attempts,
	}
	switch g.phase {
	case PhaseArmed:
		t := g.target
		s.Target = &t
	case PhaseResolved:
		s.ReactionMS = g.reaction
		s.Rating = Rating(g.reaction)
	}
	return s
}

// Observe implements registry.Game.
func (g *Game) Observe() any {
	return g.Snapshot()
}
