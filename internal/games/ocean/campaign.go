package ocean

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/barnyard-arcade/internal/config"
	"github.com/vovakirdan/barnyard-arcade/internal/sim"
)

// Stage is where the campaign stands between levels.
type Stage int

const (
	StagePlaying Stage = iota
	StageCleared       // level done, waiting for Next
	StagePowerUp       // last pellet level done, shooting unlocked
	StageFailed        // out of lives, waiting for Retry
	StageWon           // boss defeated
)

func (s Stage) String() string {
	switch s {
	case StagePlaying:
		return "playing"
	case StageCleared:
		return "cleared"
	case StagePowerUp:
		return "power_up"
	case StageFailed:
		return "failed"
	case StageWon:
		return "won"
	default:
		return "unknown"
	}
}

// Campaign strings the levels together and keeps the running score.
// Points earned in a failed attempt stay banked.
type Campaign struct {
	cfg  config.OceanConfig
	rng  *rand.Rand
	sink sim.Sink

	level   *Level
	stage   Stage
	banked  int
	pending []sim.Event
}

// NewCampaign validates cfg and starts at level start.
func NewCampaign(cfg config.OceanConfig, start int, opts ...Option) (*Campaign, error) {
	o := buildOptions(opts)
	c := &Campaign{cfg: cfg, rng: o.rng, sink: o.sink}
	if err := c.begin(start); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Campaign) begin(number int) error {
	l, err := NewLevel(c.cfg, number, WithRand(c.rng), WithSink(c.sink))
	if err != nil {
		return err
	}
	if c.level != nil {
		c.pending = append(c.pending, c.level.Drain()...)
		l.now = c.level.now
	}
	c.level = l
	c.stage = StagePlaying
	return nil
}

// Tick advances the current level and settles the stage when it ends.
func (c *Campaign) Tick(now time.Duration) {
	if c.stage != StagePlaying {
		c.level.Tick(now)
		return
	}
	c.level.Tick(now)

	switch c.level.Outcome() {
	case sim.OutcomeLevelComplete:
		c.banked += c.level.Score()
		switch {
		case c.level.IsBossLevel():
			c.stage = StageWon
			c.level.emit(sim.EventGameWon, 0, float64(c.Score()))
		case c.level.PowerUp():
			c.stage = StagePowerUp
		default:
			c.stage = StageCleared
		}
	case sim.OutcomeLevelFailed:
		c.banked += c.level.Score()
		c.stage = StageFailed
	}
}

// Next moves on after a cleared level. It reports whether a new level began.
func (c *Campaign) Next() bool {
	if c.stage != StageCleared && c.stage != StagePowerUp {
		return false
	}
	return c.begin(c.level.Number()+1) == nil
}

// Retry replays a failed level with full lives.
func (c *Campaign) Retry() bool {
	if c.stage != StageFailed {
		return false
	}
	return c.begin(c.level.Number()) == nil
}

// Jump abandons the current level and starts another, keeping the score.
func (c *Campaign) Jump(number int) error {
	if number < 1 || number > c.cfg.Gameplay.Levels {
		return fmt.Errorf("%w: %d not in 1..%d", ErrLevelRange, number, c.cfg.Gameplay.Levels)
	}
	return c.begin(number)
}

// Level returns the level in play.
func (c *Campaign) Level() *Level { return c.level }

// Stage returns the campaign stage.
func (c *Campaign) Stage() Stage { return c.stage }

// Won reports whether the boss is beaten.
func (c *Campaign) Won() bool { return c.stage == StageWon }

// Score returns banked points plus whatever the running level has earned.
func (c *Campaign) Score() int {
	if c.stage == StagePlaying {
		return c.banked + c.level.Score()
	}
	return c.banked
}

// Outcome returns the current level's result flag.
func (c *Campaign) Outcome() sim.Outcome { return c.level.Outcome() }

// Drain returns the events emitted since the last call.
func (c *Campaign) Drain() []sim.Event {
	out := append(c.pending, c.level.Drain()...)
	c.pending = nil
	return out
}
