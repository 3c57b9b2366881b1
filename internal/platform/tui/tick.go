// Package tui provides the Bubble Tea integration for Mortgage Runner.
// It handles the terminal UI loop, input mapping, and session flow.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a simulation frame.
type TickMsg struct {
	Gen uint64
	At  time.Time
}

// SecondMsg is sent once per real second to count down the run.
type SecondMsg struct {
	Gen uint64
}

// generations is shared by every model so a stale tick from a finished
// game can never match a newer one.
var generations atomic.Uint64

// nextGen returns a fresh clock generation. Messages carrying an older
// generation are dropped.
func nextGen() uint64 {
	return generations.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, gen uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, At: t}
	})
}

// secondCmd returns a command that sends a SecondMsg after one second.
func secondCmd(gen uint64) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return SecondMsg{Gen: gen}
	})
}
