package brawl

import (
	"time"

	"github.com/vovakirdan/barnyard-arcade/internal/core"
	"github.com/vovakirdan/barnyard-arcade/internal/sim"
)

// Snapshot is the complete visible state of a match after a frame. It holds
// only values, so it can be handed to another goroutine or encoded as JSON
// for spectators.
type Snapshot struct {
	At       time.Duration `json:"at"`
	Round    int           `json:"round"`
	Wins     [2]int        `json:"wins"`
	TimeLeft int           `json:"timeLeft"`
	Paused   bool          `json:"paused"`
	Outcome  sim.Outcome   `json:"outcome"`
	Winner   core.PlayerID `json:"winner,omitempty"`
	Reason   string        `json:"reason,omitempty"`
	Fighters [2]View       `json:"fighters"`
	Events   []sim.Event   `json:"events,omitempty"`
}

// Snapshot captures the match; events are attached by the caller that
// drained them.
func (m *Match) Snapshot() Snapshot {
	r := m.round
	now := r.Now()
	return Snapshot{
		At:       now,
		Round:    m.number,
		Wins:     m.wins,
		TimeLeft: r.TimeLeft(),
		Paused:   r.Paused(),
		Outcome:  r.Outcome(),
		Winner:   r.Winner(),
		Reason:   r.Reason(),
		Fighters: [2]View{r.fighters[0].View(now), r.fighters[1].View(now)},
	}
}
