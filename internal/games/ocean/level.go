package ocean

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
var ErrLevelRange = errors.New("ocean: level out of range")

const (
	enemyKinds    = 5
	bubbleCull    = -30.0 // bubbles left of this x are gone
	bossClearance = 50.0  // gap the boss keeps above the danger zone
	playerHover   = 10.0  // gap the player keeps above the danger zone
	spawnLift     = 30.0  // start height above the danger zone
	bossSpawnX    = 50.0  // the boss level starts in the bottom left corner
	hitFlash      = 500 * time.Millisecond
)

// Option configures a Level or Campaign.
type Option func(*options)

type options struct {
	rng  *rand.Rand
	sink sim.Sink
}

// WithRand injects the random source used for spawns and pellet wrap.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) { o.rng = rng }
}

// WithSeed seeds a private random source.
func WithSeed(seed int64) Option {
	return func(o *options) { o.rng = rand.New(rand.NewSource(seed)) }
}

// WithSink forwards every event to s as it is emitted.
func WithSink(s sim.Sink) Option {
	return func(o *options) { o.sink = s }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(1))
	}
	return o
}

// Heading is the set of direction keys held this tick.
type Heading struct {
	Up, Down, Left, Right bool
}

// Enemy is a bouncing sea creature. Kind picks the sprite.
type Enemy struct {
	Body sim.Body
	Kind int
}

// Boss is the shark of the final level.
type Boss struct {
	Body  sim.Body
	HP    int
	MaxHP int
}

// Level is one stage of the campaign: pellet collection above the danger
// zone, or the boss fight when Number is the last level.
type Level struct {
	cfg    config.OceanConfig
	number int
	rng    *rand.Rand
	events *sim.Recorder

	player   sim.Body
	heading  Heading
	enemies  []Enemy
	pellets  []sim.Body
	bubbles  []sim.Body
	boss     *Boss
	canShoot bool

	lives     int
	collected int
	score     int
	contact   sim.Debounce
	shot      sim.Cooldown
	flash     sim.Lockout

	now     time.Duration
	paused  bool
	outcome sim.Outcome
	powerUp bool
}

// NewLevel validates cfg and lays out level number.
func NewLevel(cfg config.OceanConfig, number int, opts ...Option) (*Level, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("ocean: %w", err)
	}
	if number < 1 || number > cfg.Gameplay.Levels {
		return nil, fmt.Errorf("%w: %d not in 1..%d", ErrLevelRange, number, cfg.Gameplay.Levels)
	}
	o := buildOptions(opts)
	l := &Level{
		cfg:     cfg,
		number:  number,
		rng:     o.rng,
		events:  sim.NewRecorder(o.sink),
		lives:   cfg.Gameplay.Lives,
		contact: sim.NewDebounce(cfg.Gameplay.ContactDebounce),
		shot:    sim.NewCooldown(cfg.Bubbles.RateLimit),
	}
	l.player = sim.Body{W: cfg.Player.Size, H: cfg.Player.Size}
	l.placePlayer()
	if l.IsBossLevel() {
		l.canShoot = true
		l.player.X = bossSpawnX
		l.spawnBoss()
	} else {
		l.spawnEnemies()
		l.spawnPellets()
	}
	return l, nil
}

func (l *Level) canvas() core.Box {
	return core.Box{W: l.cfg.Canvas.Width, H: l.cfg.Canvas.Height}
}

// placePlayer centres the player just above the danger zone.
func (l *Level) placePlayer() {
	l.player.X = (l.cfg.Canvas.Width - l.cfg.Player.Size) / 2
	l.player.Y = l.cfg.Canvas.Height - l.cfg.Player.Size - l.DangerHeight() - spawnLift
}

func (l *Level) spawnEnemies() {
	sw := l.cfg.Enemies
	n := sw.BaseCount + sw.PerLevel*l.number
	speed := sw.BaseSpeed + sw.SpeedPerLevel*float64(l.number)
	l.enemies = make([]Enemy, 0, n)
	for i := 0; i < n; i++ {
		l.enemies = append(l.enemies, Enemy{
			Body: sim.Body{
				X:  l.rng.Float64() * (l.cfg.Canvas.Width - sw.Size),
				Y:  l.rng.Float64() * (l.cfg.Canvas.Height - sw.Size),
				VX: (l.rng.Float64() - 0.5) * speed,
				VY: (l.rng.Float64() - 0.5) * speed,
				W:  sw.Size,
				H:  sw.Size,
			},
			Kind: l.rng.Intn(enemyKinds),
		})
	}
}

func (l *Level) spawnPellets() {
	p := l.cfg.Pellets
	l.pellets = make([]sim.Body, 0, p.PerLevel)
	for i := 0; i < p.PerLevel; i++ {
		l.pellets = append(l.pellets, sim.Body{
			X: l.rng.Float64() * (l.cfg.Canvas.Width - p.Size),
			Y: l.rng.Float64() * (l.cfg.Canvas.Height - p.Size),
			W: p.Size,
			H: p.Size,
		})
	}
}

func (l *Level) spawnBoss() {
	b := l.cfg.Boss
	l.boss = &Boss{
		Body: sim.Body{
			X:  l.cfg.Canvas.Width/2 - b.Size/2,
			Y:  b.StartY,
			VX: b.VX,
			VY: b.VY,
			W:  b.Size,
			H:  b.Size,
		},
		HP:    b.HP,
		MaxHP: b.HP,
	}
}

// Steer sets the direction keys held from now on.
func (l *Level) Steer(h Heading) { l.heading = h }

// Shoot fires a bubble to the left if shooting is unlocked and the rate
// limit allows. It reports whether a bubble left.
func (l *Level) Shoot() bool {
	if !l.canShoot || l.paused || l.outcome.Done() {
		return false
	}
	if !l.shot.Trigger(l.now) {
		return false
	}
	size := l.cfg.Bubbles.Size
	l.bubbles = append(l.bubbles, sim.Body{
		X:  l.player.X - size*0.75,
		Y:  l.player.Y + size*0.75,
		VX: -l.cfg.Bubbles.Speed,
		W:  size,
		H:  size,
	})
	l.emit(sim.EventShot, 0, 0)
	return true
}

// TogglePause freezes or resumes the level. Finished levels stay finished.
func (l *Level) TogglePause() {
	if l.outcome.Done() {
		return
	}
	l.paused = !l.paused
}

// Tick advances the level to now: pellets scroll, the player swims, enemies
// and the boss bounce, bubbles fly, then contacts and pickups resolve.
func (l *Level) Tick(now time.Duration) {
	l.now = now
	l.flash.Update(now)
	if l.paused || l.outcome.Done() {
		return
	}

	l.scrollPellets()
	l.movePlayer()
	for i := range l.enemies {
		sim.StepBouncing(&l.enemies[i].Body, l.canvas())
	}
	if l.boss != nil {
		l.moveBoss()
	}
	if l.canShoot {
		l.moveBubbles()
	}
	if l.outcome.Done() {
		return
	}

	if l.boss != nil && l.boss.HP <= 0 {
		l.emit(sim.EventBossDefeated, 0, 0)
		l.outcome = sim.OutcomeLevelComplete
		return
	}
	l.checkDangerZone()
	l.checkEnemies()
	l.checkPickups()
}

func (l *Level) scrollPellets() {
	p := l.cfg.Pellets
	for i := range l.pellets {
		pel := &l.pellets[i]
		pel.Y += p.ScrollSpeed
		if pel.Y > l.cfg.Canvas.Height {
			pel.Y = -p.Size
			pel.X = l.rng.Float64() * (l.cfg.Canvas.Width - p.Size)
		}
	}
}

// playerBounds keeps the player above the danger zone except on the boss level.
func (l *Level) playerBounds() core.Box {
	b := l.canvas()
	if !l.IsBossLevel() {
		b.H = l.cfg.Canvas.Height - l.DangerHeight() - playerHover
	}
	return b
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
		sim.MoveWithin(&l.player, dx, dy, l.playerBounds())
	}
}

func (l *Level) moveBoss() {
	bounds := l.canvas()
	bounds.H = l.cfg.Canvas.Height - l.DangerHeight() - bossClearance
	sim.StepBouncing(&l.boss.Body, bounds)
	if l.player.Box().Overlaps(l.boss.Body.Box()) {
		l.collide()
	}
}

func (l *Level) moveBubbles() {
	keep := l.bubbles[:0]
	for _, b := range l.bubbles {
		b.X += b.VX
		b.Y += b.VY
		if b.X < bubbleCull {
			continue
		}
		if l.boss != nil && l.boss.HP > 0 && b.Box().Overlaps(l.boss.Body.Box()) {
			l.boss.HP--
			l.emit(sim.EventBossHit, 0, float64(l.boss.HP))
			continue
		}
		keep = append(keep, b)
	}
	l.bubbles = keep
}

func (l *Level) checkDangerZone() {
	g := l.cfg.Gameplay
	if l.number < l.cfg.Danger.FirstLevel || l.number >= g.Levels {
		return
	}
	if l.player.Box().Bottom() > l.cfg.Canvas.Height-l.DangerHeight() {
		l.collide()
	}
}

func (l *Level) checkEnemies() {
	for i := range l.enemies {
		if l.outcome.Done() {
			return
		}
		if l.player.Box().Overlaps(l.enemies[i].Body.Box()) {
			l.collide()
		}
	}
}

// checkPickups collects overlapping pellets. Nothing is collected once the
// last pellet has ended the level.
func (l *Level) checkPickups() {
	for i := len(l.pellets) - 1; i >= 0; i-- {
		if l.outcome.Done() {
			return
		}
		if !l.player.Box().Overlaps(l.pellets[i].Box()) {
			continue
		}
		l.collected++
		l.score += l.cfg.Pellets.Points
		l.pellets = append(l.pellets[:i], l.pellets[i+1:]...)
		l.emit(sim.EventPickup, 0, float64(l.cfg.Pellets.Points))

		if len(l.pellets) == 0 {
			l.complete()
		}
	}
}

// complete ends a pellet level. The level before the boss grants the power-up.
func (l *Level) complete() {
	bonus := l.cfg.Gameplay.LevelBonus * l.number
	l.score += bonus
	l.outcome = sim.OutcomeLevelComplete
	if l.number == l.cfg.Gameplay.Levels-1 {
		l.powerUp = true
		l.emit(sim.EventPowerUp, 0, float64(bonus))
		return
	}
	l.emit(sim.EventLevelComplete, 0, float64(bonus))
}

// collide costs a life unless the contact debounce swallows it.
func (l *Level) collide() {
	if l.outcome.Done() || !l.contact.Allow(l.now) {
		return
	}
	l.lives--
	l.flash.Start(l.now, hitFlash)
	l.emit(sim.EventLifeLost, 0, float64(l.lives))
	if l.lives <= 0 {
		l.outcome = sim.OutcomeLevelFailed
		l.emit(sim.EventLevelFailed, 0, float64(l.number))
		return
	}
	l.placePlayer()
}

func (l *Level) emit(kind sim.EventKind, target int, amount float64) {
	l.events.Emit(sim.Event{Kind: kind, At: l.now, Actor: int(core.Player1), Target: target, Amount: amount})
}

// Number returns the level number, starting at 1.
func (l *Level) Number() int { return l.number }

// IsBossLevel reports whether this is the final level.
func (l *Level) IsBossLevel() bool { return l.number == l.cfg.Gameplay.Levels }

// DangerHeight returns the height of the strip at the bottom of the canvas.
func (l *Level) DangerHeight() float64 { return l.cfg.Danger.Height(l.number) }

// DangerActive reports whether touching the danger zone costs a life here.
func (l *Level) DangerActive() bool {
	return l.number >= l.cfg.Danger.FirstLevel && !l.IsBossLevel()
}

// Player returns the player's body.
func (l *Level) Player() sim.Body { return l.player }

// Enemies returns the live enemies.
func (l *Level) Enemies() []Enemy { return l.enemies }

// Pellets returns the pellets still floating.
func (l *Level) Pellets() []sim.Body { return l.pellets }

// Bubbles returns the bubbles in flight.
func (l *Level) Bubbles() []sim.Body { return l.bubbles }

// Boss returns the boss, or nil on pellet levels.
func (l *Level) Boss() *Boss { return l.boss }

// CanShoot reports whether bubbles are unlocked.
func (l *Level) CanShoot() bool { return l.canShoot }

// Lives returns the lives left in this level.
func (l *Level) Lives() int { return l.lives }

// Collected returns how many pellets were eaten.
func (l *Level) Collected() int { return l.collected }

// Score returns the points earned in this level, bonus included.
func (l *Level) Score() int { return l.score }

// Flashing reports whether the player is blinking after a hit.
func (l *Level) Flashing() bool { return l.flash.Active() }

// PowerUp reports whether finishing this level unlocked shooting.
func (l *Level) PowerUp() bool { return l.powerUp }

// Paused reports whether the level is frozen.
func (l *Level) Paused() bool { return l.paused }

// Now returns the timestamp of the last tick.
func (l *Level) Now() time.Duration { return l.now }

// Outcome returns the level's result flag.
func (l *Level) Outcome() sim.Outcome { return l.outcome }

// Drain returns the events emitted since the last call.
func (l *Level) Drain() []sim.Event { return l.events.Drain() }
