// Package tui hosts registered games in Bubble Tea programs: the tick loop
// that drives each game, key and mouse mapping, the profile menu, the
// scoreboard and the SSH front end.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent once per frame to advance the hosted game.
// ID ties the tick to the model that scheduled it.
type TickMsg struct {
	ID   int
	Time time.Time
}

var lastTickID atomic.Int64

// nextTickID returns a fresh tick loop identifier.
func nextTickID() int {
	return int(lastTickID.Add(1))
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(id, tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Time: t}
	})
}
