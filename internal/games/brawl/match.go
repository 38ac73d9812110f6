package brawl

import (
	"time"

	"github.com/vovakirdan/barnyard-arcade/internal/config"
	"github.com/vovakirdan/barnyard-arcade/internal/core"
	"github.com/vovakirdan/barnyard-arcade/internal/sim"
)

// Match is a best-of-N series of rounds between the same two fighters.
// A round counts once its victory reveal has fired; the next round then
// starts on the same Round value with a fresh schedule generation.
type Match struct {
	round   *Round
	need    int
	number  int
	wins    [2]int
	history []Result
	over    bool
	winner  core.PlayerID
}

// NewMatch builds the first round.
func NewMatch(cfg config.BrawlConfig, p1, p2 string, opts ...Option) (*Match, error) {
	r, err := NewRound(cfg, p1, p2, opts...)
	if err != nil {
		return nil, err
	}
	return &Match{round: r, need: cfg.Match.RoundsToWin, number: 1}, nil
}

// Tick advances the current round and rolls over to the next one when the
// previous result has been revealed.
func (m *Match) Tick(now time.Duration) {
	m.round.Tick(now)
	if m.over || !m.round.Outcome().Done() || !m.round.Revealed() {
		return
	}

	res := m.round.Result()
	m.history = append(m.history, res)
	i, _ := seat(res.Winner)
	m.wins[i]++
	if m.wins[i] >= m.need {
		m.over = true
		m.winner = res.Winner
		return
	}
	m.round.Reset()
	m.number++
}

// Outcome reports P1Won or P2Won once the series is decided.
func (m *Match) Outcome() sim.Outcome {
	switch {
	case !m.over:
		return sim.OutcomeNone
	case m.winner == core.Player2:
		return sim.OutcomeP2Won
	default:
		return sim.OutcomeP1Won
	}
}

// Apply forwards an intent to the current round.
func (m *Match) Apply(id core.PlayerID, in Intent) { m.round.Apply(id, in) }

// ApplyInput forwards a platform action to the current round.
func (m *Match) ApplyInput(id core.PlayerID, a core.Action) { m.round.ApplyInput(id, a) }

// Round returns the round in progress.
func (m *Match) Round() *Round { return m.round }

// Number returns the 1-based round number.
func (m *Match) Number() int { return m.number }

// Wins returns the rounds won by a seat.
func (m *Match) Wins(id core.PlayerID) int {
	if i, ok := seat(id); ok {
		return m.wins[i]
	}
	return 0
}

// Over reports whether the series is decided.
func (m *Match) Over() bool { return m.over }

// Winner returns the series winner, or zero.
func (m *Match) Winner() core.PlayerID { return m.winner }

// History returns the results of finished rounds.
func (m *Match) History() []Result { return m.history }

// Drain returns the events emitted since the last call.
func (m *Match) Drain() []sim.Event { return m.round.Drain() }
