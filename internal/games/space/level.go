package space

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/barnyard-arcade/internal/config"
	"github.com/vovakirdan/barnyard-arcade/internal/core"
	"github.com/vovakirdan/barnyard-arcade/internal/sim"
)

// ErrLevelRange is returned when a level number falls outside the campaign.
var ErrLevelRange = errors.New("space: level out of range")

const (
	enemyKinds = 5
	hitFlash   = 500 * time.Millisecond
)

// Heading is the set of direction keys held this tick.
type Heading struct {
	Up, Down, Left, Right bool
}

// Enemy is a drifting space critter. Kind picks the sprite.
type Enemy struct {
	Body sim.Body
	Kind int
}

// Level is one timed stage: survive until the clock runs out. Every full
// second survived scores; touching an enemy costs a life at once.
type Level struct {
	cfg    config.SpaceConfig
	number int
	rng    *rand.Rand
	events *sim.Recorder

	player  sim.Body
	heading Heading
	enemies []Enemy

	timer sim.Countdown
	lives int
	score int
	flash sim.Lockout

	now     time.Duration
	paused  bool
	outcome sim.Outcome
}

// NewLevel validates cfg and lays out level number with the given lives.
// The level clock starts at start.
func NewLevel(cfg config.SpaceConfig, number, lives int, start time.Duration, rng *rand.Rand, sink sim.Sink) (*Level, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("space: %w", err)
	}
	if number < 1 || number > cfg.Gameplay.Levels {
		return nil, fmt.Errorf("%w: %d not in 1..%d", ErrLevelRange, number, cfg.Gameplay.Levels)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	l := &Level{
		cfg:    cfg,
		number: number,
		rng:    rng,
		events: sim.NewRecorder(sink),
		player: sim.Body{W: cfg.Player.Size, H: cfg.Player.Size},
		timer:  sim.NewCountdown(int(cfg.Gameplay.LevelDuration/time.Second), time.Second),
		lives:  lives,
		now:    start,
	}
	l.placePlayer()
	l.spawnEnemies()
	return l, nil
}

func (l *Level) canvas() core.Box {
	return core.Box{W: l.cfg.Canvas.Width, H: l.cfg.Canvas.Height}
}

// placePlayer puts the ship at the bottom centre.
func (l *Level) placePlayer() {
	l.player.X = (l.cfg.Canvas.Width - l.cfg.Player.Size) / 2
	l.player.Y = l.cfg.Canvas.Height - l.cfg.Player.Size - l.cfg.Gameplay.PlayerMargin
}

// spawnEnemies scatters the swarm over the upper band of the canvas.
func (l *Level) spawnEnemies() {
	sw := l.cfg.Enemies
	n := sw.BaseCount + sw.PerLevel*l.number
	speed := sw.BaseSpeed + sw.SpeedPerLevel*float64(l.number)
	band := l.cfg.Canvas.Height * l.cfg.Gameplay.SpawnBand
	l.enemies = make([]Enemy, 0, n)
	for i := 0; i < n; i++ {
		l.enemies = append(l.enemies, Enemy{
			Body: sim.Body{
				X:  l.rng.Float64() * (l.cfg.Canvas.Width - sw.Size),
				Y:  l.rng.Float64() * band,
				VX: (l.rng.Float64() - 0.5) * speed,
				VY: (l.rng.Float64() - 0.5) * speed,
				W:  sw.Size,
				H:  sw.Size,
			},
			Kind: l.rng.Intn(enemyKinds),
		})
	}
}

// Steer sets the direction keys held from now on.
func (l *Level) Steer(h Heading) { l.heading = h }

// TogglePause freezes or resumes the level clock and every body.
func (l *Level) TogglePause() {
	if l.outcome.Done() {
		return
	}
	l.paused = !l.paused
}

// Tick advances the level to now.
func (l *Level) Tick(now time.Duration) {
	dt := now - l.now
	l.now = now
	l.flash.Update(now)
	if l.paused || l.outcome.Done() {
		return
	}

	l.movePlayer()
	for i := range l.enemies {
		sim.StepBouncing(&l.enemies[i].Body, l.canvas())
	}

	seconds, expired := l.timer.Advance(dt)
	l.score += seconds * l.cfg.Gameplay.PointsPerSecond
	if expired {
		l.complete()
		return
	}
	l.checkEnemies()
}

func (l *Level) movePlayer() {
	var dx, dy float64
	speed := l.cfg.Player.Speed
	if l.heading.Up {
		dy -= speed
	}
	if l.heading.Down {
		dy += speed
	}
	if l.heading.Left {
		dx -= speed
	}
	if l.heading.Right {
		dx += speed
	}
	if dx != 0 || dy != 0 {
		sim.MoveWithin(&l.player, dx, dy, l.canvas())
	}
}

// checkEnemies tests every enemy against the ship as it stood at the start
// of the check, so two overlapping enemies cost two lives.
func (l *Level) checkEnemies() {
	ship := l.player.Box()
	for _, e := range l.enemies {
		if !ship.Overlaps(e.Body.Box()) {
			continue
		}
		l.lives--
		l.flash.Start(l.now, hitFlash)
		l.emit(sim.EventLifeLost, float64(l.lives))
		if l.lives <= 0 {
			l.outcome = sim.OutcomeLevelFailed
			l.emit(sim.EventGameOver, float64(l.number))
			return
		}
		l.placePlayer()
	}
}

func (l *Level) complete() {
	bonus := l.cfg.Gameplay.LevelBonus * l.number
	l.score += bonus
	l.outcome = sim.OutcomeLevelComplete
	l.emit(sim.EventLevelComplete, float64(bonus))
}

func (l *Level) emit(kind sim.EventKind, amount float64) {
	l.events.Emit(sim.Event{Kind: kind, At: l.now, Actor: int(core.Player1), Amount: amount})
}

// Number returns the level number, starting at 1.
func (l *Level) Number() int { return l.number }

// Player returns the ship's body.
func (l *Level) Player() sim.Body { return l.player }

// Enemies returns the swarm.
func (l *Level) Enemies() []Enemy { return l.enemies }

// Lives returns the lives left.
func (l *Level) Lives() int { return l.lives }

// Score returns the points earned in this level, bonus included.
func (l *Level) Score() int { return l.score }

// TimeLeft returns whole seconds left on the level clock.
func (l *Level) TimeLeft() int { return l.timer.Remaining() }

// Flashing reports whether the ship is blinking after a hit.
func (l *Level) Flashing() bool { return l.flash.Active() }

// Paused reports whether the level is frozen.
func (l *Level) Paused() bool { return l.paused }

// Now returns the timestamp of the last tick.
func (l *Level) Now() time.Duration { return l.now }

// Outcome returns the level's result flag.
func (l *Level) Outcome() sim.Outcome { return l.outcome }

// Drain returns the events emitted since the last call.
func (l *Level) Drain() []sim.Event { return l.events.Drain() }
