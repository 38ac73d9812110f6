package sim

import (
	"context"
	"errors"
	"time"
)

// ErrFrameLimit is returned by Loop.Run when MaxFrames elapse without an outcome.
var ErrFrameLimit = errors.New("sim: frame limit reached")

// Stepper is a round or level the loop can drive.
type Stepper interface {
	Tick(now time.Duration)
	Outcome() Outcome
}

// Loop drives a Stepper at a fixed tick rate. The per-frame callback is the
// only place a frame's results are read, and it always runs after Tick
// returns, so readers never observe a half-applied frame.
type Loop struct {
	TickRate int

	// Paced sleeps between frames to match wall time. Headless runs leave it
	// off and simulate as fast as possible with identical results.
	Paced bool

	// Linger keeps ticking this long after an outcome so deferred
	// notifications (victory reveal, flourish steps) still fire.
	Linger time.Duration

	// MaxFrames bounds a run; zero means unbounded.
	MaxFrames int64

	// OnFrame, when set, is called after every tick.
	OnFrame func(now time.Duration)
}

// Run ticks s until it reports an outcome (plus Linger), ctx is cancelled,
// or MaxFrames is reached.
func (l Loop) Run(ctx context.Context, s Stepper) (Outcome, error) {
	clock := NewFrameClock(l.TickRate)

	var ticker *time.Ticker
	if l.Paced {
		ticker = time.NewTicker(clock.Step())
		defer ticker.Stop()
	}

	var doneAt time.Duration
	finished := false
	for frame := int64(1); ; frame++ {
		if ticker != nil {
			select {
			case <-ctx.Done():
				return s.Outcome(), ctx.Err()
			case <-ticker.C:
			}
		} else if err := ctx.Err(); err != nil {
			return s.Outcome(), err
		}

		now := clock.Advance()
		s.Tick(now)
		if l.OnFrame != nil {
			l.OnFrame(now)
		}

		if out := s.Outcome(); out.Done() {
			if !finished {
				finished = true
				doneAt = now
			}
			if now-doneAt >= l.Linger {
				return out, nil
			}
		}

		if l.MaxFrames > 0 && frame >= l.MaxFrames {
			return s.Outcome(), ErrFrameLimit
		}
	}
}
