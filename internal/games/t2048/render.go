package t2048

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/miniplay/internal/core"
)

// Cell sizes include one border line on the left and top.
const (
	cellWidth  = 5
	cellHeight = 2
	hudHeight  = 3
)

// Render draws the HUD, the grid and any end-of-round panel.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.tooSmall {
		y := g.screenH / 2
		dst.DrawTextCentered(y, "Window too small")
		dst.DrawTextCentered(y+1, "Please resize terminal")
		return
	}

	boardW := BoardSize*cellWidth + 1
	boardX := (g.screenW - boardW) / 2

	g.renderHUD(dst, boardX, boardW)
	g.renderBoard(dst, boardX, hudHeight+1)
	g.renderOverlays(dst)
}

func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	title := "2048"
	dst.DrawTextColor(boardX+(boardW-len(title))/2, 0, title, ColorTitle)

	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", g.score))
	target := fmt.Sprintf("Target: %d", g.cfg.Target)
	dst.DrawText(max(boardX, boardX+boardW-len(target)), 1, target)

	moves := fmt.Sprintf("Moves: %d", g.moves)
	dst.DrawText(boardX+(boardW-len(moves))/2, 2, moves)
}

// junction picks the box-drawing rune where grid line gx meets grid line gy.
func junction(gx, gy int) rune {
	const last = BoardSize
	col := 1 // 0 left edge, 1 inner, 2 right edge
	if gx == 0 {
		col = 0
	} else if gx == last {
		col = 2
	}
	row := 1
	if gy == 0 {
		row = 0
	} else if gy == last {
		row = 2
	}
	return [3][3]rune{
		{'┌', '┬', '┐'},
		{'├', '┼', '┤'},
		{'└', '┴', '┘'},
	}[row][col]
}

func (g *Game) renderBoard(dst *core.Screen, boardX, boardY int) {
	boardW := BoardSize*cellWidth + 1
	for gy := range BoardSize + 1 {
		py := boardY + gy*cellHeight
		dst.DrawHLine(boardX, py, boardW, '─')
		for gx := range BoardSize + 1 {
			px := boardX + gx*cellWidth
			dst.Set(px, py, junction(gx, gy))
			if gy < BoardSize {
				dst.DrawVLine(px, py+1, cellHeight-1, '│')
			}
		}
	}

	for y, row := range g.board {
		for x, v := range row {
			if v == 0 {
				continue
			}
			label := strconv.Itoa(v)
			pad := max((cellWidth-1-len(label))/2, 0)
			dst.DrawTextColor(boardX+x*cellWidth+1+pad, boardY+y*cellHeight+1, label, TileColor(v))
		}
	}
}

func (g *Game) renderOverlays(dst *core.Screen) {
	switch {
	case g.paused:
		dst.DrawPanel("PAUSED", "Press P to resume")
	case g.won:
		dst.DrawPanel(fmt.Sprintf("%d REACHED!", g.cfg.Target), fmt.Sprintf("Score: %d", g.score), "Press R to restart")
	case g.gameOver:
		dst.DrawPanel("GAME OVER", fmt.Sprintf("Max tile: %d", MaxTile(g.board)), "Press R to restart")
	}
}

// ColorTitle is the HUD title colour.
const ColorTitle = core.ColorBrightYellow

// TileColor picks a colour per tile value, cycling for values past 2048.
func TileColor(v int) core.Color {
	palette := []core.Color{
		core.ColorWhite,         // 2
		core.ColorBrightWhite,   // 4
		core.ColorYellow,        // 8
		core.ColorOrange,        // 16
		core.ColorRed,           // 32
		core.ColorBrightRed,     // 64
		core.ColorBrightYellow,  // 128
		core.ColorGreen,         // 256
		core.ColorBrightGreen,   // 512
		core.ColorCyan,          // 1024
		core.ColorBrightMagenta, // 2048
	}
	idx := 0
	for n := v; n > 2; n >>= 1 {
		idx++
	}
	return palette[idx%len(palette)]
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Slide | P: Pause | R: Restart | Q: Quit"
}
