package space

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/barnyard-arcade/internal/config"
	"github.com/vovakirdan/barnyard-arcade/internal/sim"
)

// Stage is where the campaign stands.
type Stage int

const (
	StagePlaying      Stage = iota
	StageIntermission       // level cleared, next one starts on its own
	StageWon
	StageOver
)

func (s Stage) String() string {
	switch s {
	case StagePlaying:
		return "playing"
	case StageIntermission:
		return "intermission"
	case StageWon:
		return "won"
	case StageOver:
		return "over"
	default:
		return "unknown"
	}
}

// Option configures a Campaign.
type Option func(*Campaign)

// WithRand injects the random source used for spawns.
func WithRand(rng *rand.Rand) Option {
	return func(c *Campaign) { c.rng = rng }
}

// WithSeed seeds a private random source.
func WithSeed(seed int64) Option {
	return func(c *Campaign) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithSink forwards every event to s as it is emitted.
func WithSink(s sim.Sink) Option {
	return func(c *Campaign) { c.sink = s }
}

// Campaign plays the levels back to back. Lives carry over between levels
// and a cleared level hands over to the next after a short pause.
type Campaign struct {
	cfg  config.SpaceConfig
	rng  *rand.Rand
	sink sim.Sink

	level   *Level
	stage   Stage
	banked  int
	advance sim.Lockout
	pending []sim.Event
}

// NewCampaign validates cfg and starts level 1 at time zero.
func NewCampaign(cfg config.SpaceConfig, opts ...Option) (*Campaign, error) {
	c := &Campaign{cfg: cfg}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(1))
	}
	l, err := NewLevel(cfg, 1, cfg.Gameplay.Lives, 0, c.rng, c.sink)
	if err != nil {
		return nil, err
	}
	c.level = l
	return c, nil
}

// Tick advances the level, or waits out the pause between levels.
func (c *Campaign) Tick(now time.Duration) {
	if c.stage == StageIntermission {
		c.level.Tick(now)
		if c.advance.Update(now) {
			c.next(now)
		}
		return
	}
	c.level.Tick(now)
	if c.stage != StagePlaying {
		return
	}

	switch c.level.Outcome() {
	case sim.OutcomeLevelComplete:
		c.banked += c.level.Score()
		if c.level.Number() >= c.cfg.Gameplay.Levels {
			c.stage = StageWon
			c.level.emit(sim.EventGameWon, float64(c.banked))
			return
		}
		c.stage = StageIntermission
		c.advance.Start(now, c.cfg.Gameplay.AdvanceDelay)
	case sim.OutcomeLevelFailed:
		c.banked += c.level.Score()
		c.stage = StageOver
	}
}

func (c *Campaign) next(now time.Duration) {
	l, err := NewLevel(c.cfg, c.level.Number()+1, c.level.Lives(), now, c.rng, c.sink)
	if err != nil {
		c.stage = StageOver
		return
	}
	c.pending = append(c.pending, c.level.Drain()...)
	c.level = l
	c.stage = StagePlaying
}

// Level returns the level in play, or the one just cleared.
func (c *Campaign) Level() *Level { return c.level }

// Stage returns the campaign stage.
func (c *Campaign) Stage() Stage { return c.stage }

// Score returns banked points plus the running level's.
func (c *Campaign) Score() int {
	if c.stage == StagePlaying {
		return c.banked + c.level.Score()
	}
	return c.banked
}

// Outcome reports the whole campaign: levelComplete once the last level is
// survived, levelFailed when the lives run out, none otherwise.
func (c *Campaign) Outcome() sim.Outcome {
	switch c.stage {
	case StageWon:
		return sim.OutcomeLevelComplete
	case StageOver:
		return sim.OutcomeLevelFailed
	default:
		return sim.OutcomeNone
	}
}

// Drain returns the events emitted since the last call.
func (c *Campaign) Drain() []sim.Event {
	out := append(c.pending, c.level.Drain()...)
	c.pending = nil
	return out
}
