package reflex

import (
	"fmt"

	"github.com/vovakirdan/miniplay/internal/core"
)

const fieldY = 3

// fieldOrigin returns the screen cell of playfield (0, 0).
func (g *Game) fieldOrigin() core.Point {
	return core.Point{
		X: (g.screenW-g.cfg.Playfield.Width)/2 + 1,
		Y: fieldY,
	}
}

// toField converts a screen cell to playfield cells.
func (g *Game) toField(p core.Point) core.Point {
	o := g.fieldOrigin()
	return core.Point{X: p.X - o.X, Y: p.Y - o.Y}
}

func (g *Game) inPlayfield(p core.Point) bool {
	f := g.toField(p)
	return core.NewRect(0, 0, g.cfg.Playfield.Width, g.cfg.Playfield.Height).Contains(f.X, f.Y)
}

func (g *Game) onTarget(p core.Point) bool {
	f := g.toField(p)
	return g.target.Contains(f.X, f.Y)
}

// Render draws the playfield, the target and the phase prompt.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	dst.DrawText(1, 0, fmt.Sprintf("Quick Reflex  Attempt: %d", g.attempts))
	dst.DrawHLine(0, 1, dst.Width(), '─')

	o := g.fieldOrigin()
	field := core.NewRect(o.X-1, o.Y-1, g.cfg.Playfield.Width+2, g.cfg.Playfield.Height+2)

	border := core.ColorGray
	switch g.phase {
	case PhaseWaiting:
		border = core.ColorYellow
	case PhaseArmed:
		border = core.ColorBrightGreen
	}
	dst.DrawBoxColor(field, border)

	midY := o.Y + g.cfg.Playfield.Height/2
	switch g.phase {
	case PhaseIdle:
		dst.DrawTextCentered(midY, "Press Space or click to start")
	case PhaseWaiting:
		dst.DrawTextCenteredColor(midY, "Wait for the target...", core.ColorYellow)
	case PhaseArmed:
		t := g.target
		dst.DrawRectColor(core.NewRect(o.X+t.X, o.Y+t.Y, t.W, t.H), '█', core.ColorBrightRed)
	case PhaseResolved:
		dst.DrawPanel(
			fmt.Sprintf("%d ms", g.reaction),
			Rating(g.reaction),
			"Press Enter to try again",
		)
	}
}
