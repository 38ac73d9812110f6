package brawl

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/barnyard-arcade/internal/config"
	"github.com/vovakirdan/barnyard-arcade/internal/core"
	"github.com/vovakirdan/barnyard-arcade/internal/sim"
)

// Reasons a round ends.
const (
	ReasonKnockout = "ko"
	ReasonTime     = "time"
	ReasonDraw     = "draw" // time ran out on equal health; the winner was drawn
)

// Option configures a Round.
type Option func(*Round)

// WithRand injects the random source used by CPU policies and tie breaks.
func WithRand(rng *rand.Rand) Option {
	return func(r *Round) { r.rng = rng }
}

// WithSeed seeds a private random source.
func WithSeed(seed int64) Option {
	return func(r *Round) { r.rng = rand.New(rand.NewSource(seed)) }
}

// WithPolicy hands a seat to p.
func WithPolicy(id core.PlayerID, p Policy) Option {
	return func(r *Round) {
		if i, ok := seat(id); ok {
			r.policies[i] = p
		}
	}
}

// WithCPU hands a seat to the built-in random policy.
func WithCPU(id core.PlayerID) Option {
	return func(r *Round) {
		if i, ok := seat(id); ok {
			r.cpu[i] = true
		}
	}
}

// WithSink forwards every event to s as it is emitted.
func WithSink(s sim.Sink) Option {
	return func(r *Round) { r.sink = s }
}

// Round is one fight between two fighters. It owns all entity state between
// ticks; callers read it only after Tick returns.
type Round struct {
	cfg      config.BrawlConfig
	phys     sim.GroundPhysics
	fighters [2]*Fighter
	policies [2]Policy
	cpu      [2]bool
	rng      *rand.Rand
	sink     sim.Sink

	timer  sim.Countdown
	sched  sim.Schedule
	events *sim.Recorder

	now      time.Duration
	started  time.Duration
	ticked   bool
	paused   bool
	outcome  sim.Outcome
	winner   core.PlayerID
	reason   string
	endedAt  time.Duration
	revealed bool
}

// NewRound validates the configuration once and places both fighters at
// their start marks.
func NewRound(cfg config.BrawlConfig, p1, p2 string, opts ...Option) (*Round, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("brawl: %w", err)
	}
	c1, err := Lookup(cfg, p1)
	if err != nil {
		return nil, err
	}
	c2, err := Lookup(cfg, p2)
	if err != nil {
		return nil, err
	}

	r := &Round{
		cfg: cfg,
		phys: sim.GroundPhysics{
			Gravity:  cfg.Physics.Gravity,
			Friction: cfg.Physics.Friction,
			MinX:     cfg.Arena.MinX(),
			MaxX:     cfg.Arena.MaxX(),
		},
		fighters: [2]*Fighter{
			newFighter(core.Player1, c1, cfg),
			newFighter(core.Player2, c2, cfg),
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.rng == nil {
		r.rng = rand.New(rand.NewSource(1))
	}
	for i, cpu := range r.cpu {
		if cpu && r.policies[i] == nil {
			r.policies[i] = NewRandomPolicy(cfg.AI, r.rng)
		}
	}
	r.events = sim.NewRecorder(r.sink)
	r.timer = sim.NewCountdown(cfg.Match.TimerSeconds, time.Second)
	return r, nil
}

// Reset starts a fresh round with the same fighters. Deferred notifications
// queued by the previous round are discarded.
func (r *Round) Reset() {
	for _, f := range r.fighters {
		f.reset(r.cfg)
	}
	r.sched.Reset()
	r.timer = sim.NewCountdown(r.cfg.Match.TimerSeconds, time.Second)
	r.ticked = false
	r.paused = false
	r.outcome = sim.OutcomeNone
	r.winner = 0
	r.reason = ""
	r.endedAt = 0
	r.revealed = false
}

// Tick advances the round by one frame: expiries, then each fighter's
// physics, facing and policy in seat order, then the match clock, then any
// deferred notifications that have come due.
func (r *Round) Tick(now time.Duration) {
	var dt time.Duration
	if r.ticked && now > r.now {
		dt = now - r.now
	}
	if !r.ticked {
		r.started = now
		r.ticked = true
	}
	r.now = now

	if r.outcome.Done() || r.paused {
		r.flush(now)
		return
	}

	for _, f := range r.fighters {
		f.expire(now)
	}
	for i := range r.fighters {
		r.stepFighter(i, now)
	}

	if !r.outcome.Done() {
		ticks, expired := r.timer.Advance(dt)
		for k := 0; k < ticks; k++ {
			r.events.Emit(sim.Event{Kind: sim.EventTimerTick, At: now, Amount: float64(r.timer.Remaining())})
		}
		if expired {
			r.timeUp()
		}
	}

	r.flush(now)
}

func (r *Round) stepFighter(i int, now time.Duration) {
	f, opp := r.fighters[i], r.fighters[1-i]
	sim.StepGrounded(&f.Body, r.phys)
	sim.FaceToward(&f.Body, opp.Body.X)

	p := r.policies[i]
	if p == nil || r.outcome.Done() {
		return
	}
	for _, in := range p.Decide(Situation{Now: now, Self: f.View(now), Opponent: opp.View(now)}) {
		r.apply(f, opp, in)
	}
}

// Apply funnels an intent into the fighter's state machine. It takes effect
// at the timestamp of the last tick. Invalid requests are silent no-ops.
func (r *Round) Apply(id core.PlayerID, in Intent) {
	if in.Command == CmdPause {
		r.TogglePause()
		return
	}
	i, ok := seat(id)
	if !ok || r.outcome.Done() || r.paused {
		return
	}
	r.apply(r.fighters[i], r.fighters[1-i], in)
}

// ApplyInput translates a platform action and applies it.
func (r *Round) ApplyInput(id core.PlayerID, a core.Action) {
	if c := CommandFor(a); c != CmdNone {
		r.Apply(id, Do(c))
	}
}

func (r *Round) apply(f, opp *Fighter, in Intent) {
	switch in.Command {
	case CmdMoveLeft:
		r.move(f, -1, in.Speed)
	case CmdMoveRight:
		r.move(f, 1, in.Speed)
	case CmdJump:
		r.jump(f)
	case CmdBlock:
		r.block(f)
	case CmdAttack:
		r.attack(f, opp)
	case CmdSpecial:
		r.special(f, opp)
	}
}

func (r *Round) move(f *Fighter, dir, speed float64) {
	if !f.Body.Grounded || f.locked() {
		return
	}
	if speed <= 0 {
		speed = r.cfg.Physics.MoveImpulse
	}
	f.Body.VX = dir * speed
}

func (r *Round) jump(f *Fighter) {
	if f.Body.Jumps >= r.cfg.Physics.MaxJumps || f.locked() {
		return
	}
	f.Body.VY = r.cfg.Physics.JumpVelocity
	f.Body.Grounded = false
	f.Body.Jumps++
	r.emit(sim.EventJump, f.ID, 0, 0)
}

func (r *Round) block(f *Fighter) {
	if f.locked() {
		return
	}
	f.guard.Start(r.now, r.cfg.Combat.Block)
	r.emit(sim.EventGuard, f.ID, 0, 0)
}

func (r *Round) attack(f, opp *Fighter) {
	if f.locked() {
		return
	}
	f.swing.Start(r.now, r.cfg.Combat.Attack)
	r.emit(sim.EventPunch, f.ID, opp.ID, 0)
	if sim.Distance(f.Body, opp.Body) < r.cfg.Combat.MeleeRange {
		r.strike(f, opp, f.Char.Damage)
	}
}

func (r *Round) special(f, opp *Fighter) {
	if f.locked() || !f.special.Trigger(r.now) {
		return
	}
	f.swing.Start(r.now, r.cfg.Combat.SpecialLockout)
	r.emit(sim.EventSpecial, f.ID, opp.ID, 0)
	for i := 0; i < r.cfg.Combat.SpecialBursts; i++ {
		r.sched.After(r.now, time.Duration(i)*r.cfg.Combat.BurstInterval, sim.Event{
			Kind:   sim.EventSpecialBurst,
			Actor:  int(f.ID),
			Amount: float64(i),
		})
	}
	if sim.Distance(f.Body, opp.Body) < r.cfg.Combat.SpecialRange {
		r.strike(f, opp, f.Char.SpecialDamage)
	}
}

// DealDamage applies amount from the given seat to its opponent, through the
// same guard, invincibility and knockout rules as a landed strike.
func (r *Round) DealDamage(from core.PlayerID, amount float64) {
	i, ok := seat(from)
	if !ok {
		return
	}
	r.strike(r.fighters[i], r.fighters[1-i], amount)
}

func (r *Round) strike(att, def *Fighter, amount float64) {
	if amount <= 0 || r.outcome.Done() || def.Invincible || def.KnockedOut() {
		return
	}

	kind := sim.EventHit
	if def.Blocking() {
		amount *= r.cfg.Combat.BlockMultiplier
		kind = sim.EventBlocked
	}
	def.Health = math.Max(0, def.Health-amount)
	def.flash.Start(r.now, r.cfg.Combat.HitFlash)
	r.emit(kind, att.ID, def.ID, amount)

	if def.Health <= 0 {
		r.finish(att.ID, ReasonKnockout)
	}
}

func (r *Round) timeUp() {
	h1, h2 := r.fighters[0].Health, r.fighters[1].Health
	switch {
	case h1 > h2:
		r.finish(core.Player1, ReasonTime)
	case h2 > h1:
		r.finish(core.Player2, ReasonTime)
	case r.rng.Intn(2) == 0:
		r.finish(core.Player1, ReasonDraw)
	default:
		r.finish(core.Player2, ReasonDraw)
	}
}

func (r *Round) finish(winner core.PlayerID, reason string) {
	r.winner = winner
	r.reason = reason
	r.endedAt = r.now

	if reason == ReasonKnockout {
		r.outcome = sim.OutcomeP1Won
		if winner == core.Player2 {
			r.outcome = sim.OutcomeP2Won
		}
		r.emit(sim.EventKnockout, winner, winner.Opponent(), 0)
	} else {
		r.outcome = sim.OutcomeTimeUp
		r.emit(sim.EventTimeUp, winner, winner.Opponent(), 0)
	}

	r.sched.After(r.now, r.cfg.Match.RevealDelay, sim.Event{
		Kind:   sim.EventRevealWinner,
		Actor:  int(winner),
		Target: int(winner.Opponent()),
	})
}

func (r *Round) flush(now time.Duration) {
	for _, ev := range r.sched.Due(now) {
		if ev.Kind == sim.EventRevealWinner {
			r.revealed = true
		}
		r.events.Emit(ev)
	}
}

func (r *Round) emit(kind sim.EventKind, actor, target core.PlayerID, amount float64) {
	r.events.Emit(sim.Event{Kind: kind, At: r.now, Actor: int(actor), Target: int(target), Amount: amount})
}

// TogglePause freezes or resumes the round. The match clock only counts
// running time.
func (r *Round) TogglePause() {
	if r.outcome.Done() {
		return
	}
	r.paused = !r.paused
}

// Paused reports whether the round is frozen.
func (r *Round) Paused() bool { return r.paused }

// Outcome returns the round's outcome flag.
func (r *Round) Outcome() sim.Outcome { return r.outcome }

// Winner returns the winning seat, or zero while the round is running.
func (r *Round) Winner() core.PlayerID { return r.winner }

// Reason returns how the round ended.
func (r *Round) Reason() string { return r.reason }

// Revealed reports whether the victory reveal has fired.
func (r *Round) Revealed() bool { return r.revealed }

// Now returns the timestamp of the last tick.
func (r *Round) Now() time.Duration { return r.now }

// TimeLeft returns the match clock in whole seconds.
func (r *Round) TimeLeft() int { return r.timer.Remaining() }

// Fighter returns the fighter in a seat, or nil.
func (r *Round) Fighter(id core.PlayerID) *Fighter {
	if i, ok := seat(id); ok {
		return r.fighters[i]
	}
	return nil
}

// Fighters returns both fighters in seat order.
func (r *Round) Fighters() [2]*Fighter { return r.fighters }

// Config returns the configuration the round was built with.
func (r *Round) Config() config.BrawlConfig { return r.cfg }

// Drain returns the events emitted since the last call.
func (r *Round) Drain() []sim.Event { return r.events.Drain() }

// Result summarises a finished round.
type Result struct {
	Winner   core.PlayerID `json:"winner"`
	Outcome  sim.Outcome   `json:"outcome"`
	Reason   string        `json:"reason"`
	P1       string        `json:"p1"`
	P2       string        `json:"p2"`
	P1Health float64       `json:"p1Health"`
	P2Health float64       `json:"p2Health"`
	Duration time.Duration `json:"duration"`
}

// Result returns the summary; Outcome is None while the round is running.
func (r *Round) Result() Result {
	return Result{
		Winner:   r.winner,
		Outcome:  r.outcome,
		Reason:   r.reason,
		P1:       r.fighters[0].Char.ID,
		P2:       r.fighters[1].Char.ID,
		P1Health: r.fighters[0].Health,
		P2Health: r.fighters[1].Health,
		Duration: r.endedAt - r.started,
	}
}

func seat(id core.PlayerID) (int, bool) {
	switch id {
	case core.Player1:
		return 0, true
	case core.Player2:
		return 1, true
	default:
		return 0, false
	}
}
