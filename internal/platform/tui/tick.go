// Package tui hosts the games, the catalog menu and the SSH server on Bubble Tea.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
// Gen identifies the loop that scheduled it; ticks from another loop are dropped.
type TickMsg struct {
	Gen  uint64
	Time time.Time
}

var loopGen atomic.Uint64

// nextLoop returns a fresh loop generation.
func nextLoop() uint64 {
	return loopGen.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(gen uint64, tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}
