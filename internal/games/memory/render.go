package memory

import (
	"fmt"

	"github.com/vovakirdan/miniplay/internal/core"
)

const (
	cardW   = 7
	cardH   = 3
	cardGap = 1
	boardY  = 3
)

var symbolColors = []core.Color{
	core.ColorBrightRed,
	core.ColorBrightGreen,
	core.ColorBrightYellow,
	core.ColorBrightBlue,
	core.ColorBrightMagenta,
	core.ColorBrightCyan,
	core.ColorOrange,
	core.ColorBrightWhite,
}

// Symbol returns the face glyph for a card key.
func Symbol(key int) string {
	return string(rune('A' + key%26))
}

func symbolColor(key int) core.Color {
	return symbolColors[key%len(symbolColors)]
}

// cardRect returns the screen rectangle of card index.
func (g *Game) cardRect(index int) core.Rect {
	gridW := Cols*(cardW+cardGap) - cardGap
	originX := (g.screenW - gridW) / 2
	col, row := index%Cols, index/Cols
	return core.NewRect(
		originX+col*(cardW+cardGap),
		boardY+row*(cardH+cardGap),
		cardW, cardH,
	)
}

// cardAt maps a pointer position to a card index.
func (g *Game) cardAt(p core.Point) (int, bool) {
	for i := range g.cards {
		if g.cardRect(i).Contains(p.X, p.Y) {
			return i, true
		}
	}
	return 0, false
}

// Render draws the board, the cursor and the HUD.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	dst.DrawText(1, 0, fmt.Sprintf("Memory Match  Moves: %d  Time: %ds  Pairs: %d/%d",
		g.moves, g.seconds, g.matched, g.cfg.Pairs))
	dst.DrawHLine(0, 1, dst.Width(), '─')

	if !g.started {
		dst.DrawPanel("MEMORY MATCH", "Find all the pairs", "Press Enter to deal")
		return
	}

	for i, c := range g.cards {
		r := g.cardRect(i)
		border := core.ColorGray
		if i == g.cursor {
			border = core.ColorBrightWhite
		}

		switch {
		case c.Matched:
			dst.DrawBoxColor(r, core.ColorGreen)
			dst.DrawTextColor(r.X+cardW/2, r.Y+1, Symbol(c.Key), core.ColorGreen)
		case c.Revealed:
			dst.DrawBoxColor(r, border)
			dst.DrawTextColor(r.X+cardW/2, r.Y+1, Symbol(c.Key), symbolColor(c.Key))
		default:
			dst.DrawBoxColor(r, border)
			dst.DrawRectColor(core.NewRect(r.X+1, r.Y+1, cardW-2, cardH-2), '░', core.ColorBlue)
		}
	}

	switch {
	case g.completed:
		dst.DrawPanel("ALL PAIRS FOUND!",
			fmt.Sprintf("Time: %ds  Moves: %d", g.seconds, g.moves),
			"Press Enter to play again")
	case g.paused:
		dst.DrawPanel("PAUSED", "Press P to resume")
	}
}
