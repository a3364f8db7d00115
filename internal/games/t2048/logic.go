package t2048

import "github.com/vovakirdan/miniplay/internal/core"

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// BoardSize is the board dimension.
const BoardSize = 4

// Board is the grid indexed [y][x]; 0 is empty, other cells hold powers of two.
type Board [BoardSize][BoardSize]int

type line [BoardSize]int

// slideRow compacts a line toward index 0 and merges equal neighbours in one
// pass. A tile produced by a merge never merges again in the same move.
// Returns the updated line and the value of all newly formed tiles.
func slideRow(row line) (result line, score int) {
	writePos := 0
	lastMerged := false

	for _, v := range row {
		if v == 0 {
			continue
		}

		if writePos > 0 && !lastMerged && result[writePos-1] == v {
			result[writePos-1] *= 2
			score += result[writePos-1]
			lastMerged = true
			continue
		}

		result[writePos] = v
		writePos++
		lastMerged = false
	}

	return result, score
}

// cell returns the board coordinates of position i of line n, where index 0
// is the edge tiles slide toward.
func cell(dir Direction, n, i int) (x, y int) {
	switch dir {
	case DirLeft:
		return i, n
	case DirRight:
		return BoardSize - 1 - i, n
	case DirUp:
		return n, i
	default: // DirDown
		return n, BoardSize - 1 - i
	}
}

// Slide performs a move in the given direction. Each row or column is
// projected into a line ordered from the leading edge, slid, and written back.
// Returns the new board, the score gained, and whether any cell changed.
func Slide(board Board, dir Direction) (Board, int, bool) {
	if dir < DirUp || dir > DirRight {
		return board, 0, false
	}

	var out Board
	total := 0
	for n := range BoardSize {
		var in line
		for i := range BoardSize {
			x, y := cell(dir, n, i)
			in[i] = board[y][x]
		}

		slid, score := slideRow(in)
		total += score
		for i, v := range slid {
			x, y := cell(dir, n, i)
			out[y][x] = v
		}
	}

	return out, total, out != board
}

// EmptyCells returns coordinates of all empty cells in row-major order.
func EmptyCells(board Board) []core.Point {
	var cells []core.Point
	for y, row := range board {
		for x, v := range row {
			if v == 0 {
				cells = append(cells, core.Point{X: x, Y: y})
			}
		}
	}
	return cells
}

// CanMove reports whether some move would change the board: an empty cell
// exists or two horizontal or vertical neighbours are equal.
func CanMove(board Board) bool {
	for y, row := range board {
		for x, v := range row {
			if v == 0 {
				return true
			}
			if x+1 < BoardSize && row[x+1] == v {
				return true
			}
			if y+1 < BoardSize && board[y+1][x] == v {
				return true
			}
		}
	}
	return false
}

// IsGameOver returns true if no moves are possible.
func IsGameOver(board Board) bool {
	return !CanMove(board)
}

// MaxTile returns the largest tile on the board.
func MaxTile(board Board) int {
	best := 0
	for _, row := range board {
		for _, v := range row {
			best = max(best, v)
		}
	}
	return best
}

// Reached reports whether any tile is at least target.
func Reached(board Board, target int) bool {
	return target > 0 && MaxTile(board) >= target
}
