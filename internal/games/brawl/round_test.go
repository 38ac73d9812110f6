package brawl

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/barnyard-arcade/internal/config"
	"github.com/vovakirdan/barnyard-arcade/internal/core"
	"github.com/vovakirdan/barnyard-arcade/internal/sim"
)

const frame = time.Second / 60

// newTestRound places GiGi (12 damage, 25 special) and Brandy gap apart.
func newTestRound(t *testing.T, gap float64, opts ...Option) *Round {
	t.Helper()
	r, err := NewRound(config.DefaultBrawlConfig(), "gigi", "brandy", opts...)
	if err != nil {
		t.Fatalf("NewRound() error: %v", err)
	}
	r.Fighter(core.Player1).Body.X = 400
	r.Fighter(core.Player2).Body.X = 400 + gap
	return r
}

func count(events []sim.Event, kind sim.EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func TestAttackInMeleeRange(t *testing.T) {
	r := newTestRound(t, 100)

	r.Apply(core.Player1, Do(CmdAttack))

	if got := r.Fighter(core.Player2).Health; got != 88 {
		t.Errorf("defender health = %v, expected 88", got)
	}
	if r.Outcome() != sim.OutcomeNone {
		t.Errorf("outcome = %v, expected none", r.Outcome())
	}
	events := r.Drain()
	if count(events, sim.EventPunch) != 1 || count(events, sim.EventHit) != 1 {
		t.Errorf("events = %+v, expected one punch and one hit", events)
	}
	if !r.Fighter(core.Player2).Flashing() {
		t.Error("defender should flash after a hit")
	}
}

func TestAttackAgainstGuard(t *testing.T) {
	r := newTestRound(t, 100)

	r.Apply(core.Player2, Do(CmdBlock))
	r.Apply(core.Player1, Do(CmdAttack))

	got := r.Fighter(core.Player2).Health
	if math.Abs(got-96.4) > 1e-9 {
		t.Errorf("guarded health = %v, expected 96.4", got)
	}
	if count(r.Drain(), sim.EventBlocked) != 1 {
		t.Error("expected a blocked event")
	}
}

func TestAttackOutOfRange(t *testing.T) {
	r := newTestRound(t, 200)

	r.Apply(core.Player1, Do(CmdAttack))

	if got := r.Fighter(core.Player2).Health; got != 100 {
		t.Errorf("health = %v, expected a whiff", got)
	}
	if !r.Fighter(core.Player1).Attacking() {
		t.Error("a whiff still starts the swing lockout")
	}
}

func TestAttackLockoutIsIdempotent(t *testing.T) {
	r := newTestRound(t, 100)
	r.Tick(0)

	r.Apply(core.Player1, Do(CmdAttack))
	r.Apply(core.Player1, Do(CmdAttack))
	if got := r.Fighter(core.Player2).Health; got != 88 {
		t.Fatalf("health = %v after a repeated attack, expected 88", got)
	}

	r.Tick(299 * time.Millisecond)
	r.Apply(core.Player1, Do(CmdAttack))
	if got := r.Fighter(core.Player2).Health; got != 88 {
		t.Fatalf("health = %v inside the lockout, expected 88", got)
	}

	r.Tick(300 * time.Millisecond)
	r.Apply(core.Player1, Do(CmdAttack))
	if got := r.Fighter(core.Player2).Health; got != 76 {
		t.Errorf("health = %v after the lockout, expected 76", got)
	}
}

func TestSpecialCooldown(t *testing.T) {
	r := newTestRound(t, 100)
	r.Tick(0)
	p1, p2 := r.Fighter(core.Player1), r.Fighter(core.Player2)

	r.Apply(core.Player1, Do(CmdSpecial))
	if p2.Health != 75 {
		t.Fatalf("health = %v after special, expected 75", p2.Health)
	}
	first, _ := p1.special.Last()

	r.Tick(time.Second)
	if p1.Attacking() {
		t.Fatal("special lockout should have expired after 500ms")
	}
	r.Apply(core.Player1, Do(CmdSpecial))
	if p2.Health != 75 {
		t.Errorf("second special inside 3s landed, health = %v", p2.Health)
	}
	if last, _ := p1.special.Last(); last != first {
		t.Errorf("refused special moved the cooldown from %v to %v", first, last)
	}

	r.Tick(3 * time.Second)
	r.Apply(core.Player1, Do(CmdSpecial))
	if p2.Health != 50 {
		t.Errorf("health = %v after cooldown, expected 50", p2.Health)
	}
}

func TestSpecialBurstsFollowInOrder(t *testing.T) {
	r := newTestRound(t, 500)
	r.Tick(0)
	r.Apply(core.Player1, Do(CmdSpecial))

	var bursts []sim.Event
	for now := time.Duration(0); now <= 600*time.Millisecond; now += frame {
		r.Tick(now)
		for _, e := range r.Drain() {
			if e.Kind == sim.EventSpecialBurst {
				bursts = append(bursts, e)
			}
		}
	}

	if len(bursts) != 5 {
		t.Fatalf("got %d bursts, expected 5", len(bursts))
	}
	for i, e := range bursts {
		if e.Amount != float64(i) || e.At != time.Duration(i)*100*time.Millisecond {
			t.Errorf("burst %d = %+v", i, e)
		}
	}
	if r.Fighter(core.Player2).Health != 100 {
		t.Error("special out of range should not damage")
	}
}

func TestKnockoutReportedOnce(t *testing.T) {
	r := newTestRound(t, 100)
	r.Tick(0)

	r.DealDamage(core.Player1, 150)
	r.DealDamage(core.Player1, 10)
	r.Apply(core.Player1, Do(CmdAttack))

	p2 := r.Fighter(core.Player2)
	if p2.Health != 0 {
		t.Errorf("health = %v, expected clamp at 0", p2.Health)
	}
	if r.Outcome() != sim.OutcomeP1Won || r.Winner() != core.Player1 || r.Reason() != ReasonKnockout {
		t.Errorf("outcome = %v winner = %v reason = %q", r.Outcome(), r.Winner(), r.Reason())
	}

	events := r.Drain()
	if count(events, sim.EventKnockout) != 1 || count(events, sim.EventHit) != 1 {
		t.Errorf("events = %+v, expected one hit and one knockout", events)
	}

	r.Tick(999 * time.Millisecond)
	if r.Revealed() {
		t.Fatal("winner revealed early")
	}
	r.Tick(time.Second)
	if !r.Revealed() {
		t.Fatal("winner should be revealed after the delay")
	}
	if n := count(r.Drain(), sim.EventRevealWinner); n != 1 {
		t.Errorf("reveal fired %d times", n)
	}
}

func TestInvincibleTakesNoDamage(t *testing.T) {
	r := newTestRound(t, 100)
	r.Fighter(core.Player2).Invincible = true

	r.Apply(core.Player1, Do(CmdAttack))

	if got := r.Fighter(core.Player2).Health; got != 100 {
		t.Errorf("health = %v, expected invincible", got)
	}
}

func runToOutcome(t *testing.T, r *Round) {
	t.Helper()
	for now := time.Duration(0); !r.Outcome().Done(); now += frame {
		if now > 10*time.Minute {
			t.Fatal("round never ended")
		}
		r.Tick(now)
	}
}

func TestTimeUpHigherHealthWins(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		cfg := config.DefaultBrawlConfig()
		cfg.Match.TimerSeconds = 2
		r, err := NewRound(cfg, "gigi", "brandy", WithSeed(seed))
		if err != nil {
			t.Fatal(err)
		}
		r.DealDamage(core.Player2, 10)

		runToOutcome(t, r)

		if r.Outcome() != sim.OutcomeTimeUp || r.Winner() != core.Player2 || r.Reason() != ReasonTime {
			t.Fatalf("seed %d: outcome %v winner %v reason %q", seed, r.Outcome(), r.Winner(), r.Reason())
		}
		if r.TimeLeft() != 0 {
			t.Errorf("TimeLeft() = %d", r.TimeLeft())
		}
	}
}

func TestTimeUpDrawUsesInjectedRand(t *testing.T) {
	winners := map[core.PlayerID]bool{}
	for seed := int64(1); seed <= 32; seed++ {
		var got [2]core.PlayerID
		for i := range got {
			cfg := config.DefaultBrawlConfig()
			cfg.Match.TimerSeconds = 1
			r, err := NewRound(cfg, "gigi", "brandy", WithSeed(seed))
			if err != nil {
				t.Fatal(err)
			}
			runToOutcome(t, r)
			if r.Reason() != ReasonDraw {
				t.Fatalf("reason = %q, expected draw", r.Reason())
			}
			got[i] = r.Winner()
		}
		if got[0] != got[1] {
			t.Fatalf("seed %d picked %v then %v", seed, got[0], got[1])
		}
		winners[got[0]] = true
	}
	if len(winners) != 2 {
		t.Error("32 seeds should produce both draw winners")
	}
}

func TestMovementRules(t *testing.T) {
	r := newTestRound(t, 300)
	r.Tick(0)
	p1 := r.Fighter(core.Player1)

	r.Apply(core.Player1, Do(CmdBlock))
	r.Apply(core.Player1, Do(CmdMoveRight))
	r.Apply(core.Player1, Do(CmdJump))
	if p1.Body.VX != 0 || p1.Body.Jumps != 0 {
		t.Fatalf("blocking fighter moved: vx=%v jumps=%d", p1.Body.VX, p1.Body.Jumps)
	}

	r.Tick(500 * time.Millisecond)
	r.Apply(core.Player1, Do(CmdMoveRight))
	if p1.Body.VX != 8 {
		t.Errorf("VX = %v, expected move impulse 8", p1.Body.VX)
	}

	r.Apply(core.Player1, Do(CmdJump))
	r.Apply(core.Player1, Do(CmdJump))
	r.Apply(core.Player1, Do(CmdJump))
	if p1.Body.Jumps != 2 {
		t.Errorf("Jumps = %d, expected 2 charges", p1.Body.Jumps)
	}
	if p1.Body.Grounded {
		t.Error("fighter should be airborne")
	}

	p1.Body.VX = 0
	r.Apply(core.Player1, Do(CmdMoveLeft))
	if p1.Body.VX != 0 {
		t.Error("airborne fighter should not take move input")
	}

	for now := 500 * time.Millisecond; !p1.Body.Grounded; now += frame {
		r.Tick(now)
	}
	if p1.Body.Jumps != 0 {
		t.Errorf("landing should reset jumps, got %d", p1.Body.Jumps)
	}
}

func TestGuardAndSwingExclude(t *testing.T) {
	r := newTestRound(t, 100)
	r.Tick(0)
	p1, p2 := r.Fighter(core.Player1), r.Fighter(core.Player2)

	r.Apply(core.Player2, Do(CmdBlock))
	r.Apply(core.Player2, Do(CmdAttack))
	r.Apply(core.Player2, Do(CmdSpecial))
	if p2.Attacking() || p1.Health != 100 {
		t.Fatalf("guarding fighter swung: attacking=%v p1.health=%v", p2.Attacking(), p1.Health)
	}
	if _, used := p2.special.Last(); used {
		t.Error("special refused under guard should not start the cooldown")
	}

	r.Apply(core.Player1, Do(CmdAttack))
	r.Apply(core.Player1, Do(CmdBlock))
	r.Apply(core.Player1, Do(CmdMoveLeft))
	r.Apply(core.Player1, Do(CmdJump))
	if p1.Blocking() {
		t.Error("swinging fighter raised its guard")
	}
	if p1.Body.VX != 0 || p1.Body.Jumps != 0 {
		t.Errorf("swinging fighter moved: vx=%v jumps=%d", p1.Body.VX, p1.Body.Jumps)
	}

	r.Tick(300 * time.Millisecond)
	r.Apply(core.Player1, Do(CmdMoveLeft))
	if p1.Body.VX != -8 {
		t.Errorf("VX = %v after the swing, expected -8", p1.Body.VX)
	}
}

func TestPauseFreezesClockAndInput(t *testing.T) {
	r := newTestRound(t, 100)
	r.Tick(0)
	r.Apply(core.Player2, Do(CmdPause))

	for now := time.Duration(0); now < 5*time.Second; now += frame {
		r.Tick(now)
	}
	r.Apply(core.Player1, Do(CmdAttack))

	if r.TimeLeft() != 99 {
		t.Errorf("TimeLeft() = %d while paused, expected 99", r.TimeLeft())
	}
	if r.Fighter(core.Player2).Health != 100 {
		t.Error("input should be ignored while paused")
	}

	r.Apply(core.Player1, Do(CmdPause))
	for now := 5 * time.Second; now <= 7*time.Second; now += frame {
		r.Tick(now)
	}
	if r.TimeLeft() != 97 {
		t.Errorf("TimeLeft() = %d after 2s running, expected 97", r.TimeLeft())
	}
}

func TestFightersStayInsideWalls(t *testing.T) {
	cfg := config.DefaultBrawlConfig()
	cfg.AI.WanderChance = 0.5
	cfg.AI.WanderSpeed = 200
	r, err := NewRound(cfg, "benny", "mooana", WithSeed(42), WithCPU(core.Player1), WithCPU(core.Player2))
	if err != nil {
		t.Fatal(err)
	}

	for now := time.Duration(0); now < 99*time.Second && !r.Outcome().Done(); now += frame {
		r.Tick(now)
		for _, f := range r.Fighters() {
			if f.Body.X < cfg.Arena.MinX() || f.Body.X > cfg.Arena.MaxX() {
				t.Fatalf("%v: x = %v outside [%v, %v]", f.ID, f.Body.X, cfg.Arena.MinX(), cfg.Arena.MaxX())
			}
		}
	}
}

func TestCPUBoutIsReproducible(t *testing.T) {
	play := func() Result {
		r, err := NewRound(config.DefaultBrawlConfig(), "rocky", "woolly",
			WithSeed(7), WithCPU(core.Player1), WithCPU(core.Player2))
		if err != nil {
			t.Fatal(err)
		}
		runToOutcome(t, r)
		return r.Result()
	}

	a, b := play(), play()
	if a != b {
		t.Errorf("same seed produced different bouts:\n%+v\n%+v", a, b)
	}
}

func TestResetDropsPendingBursts(t *testing.T) {
	r := newTestRound(t, 100)
	r.Apply(core.Player1, Do(CmdSpecial))
	r.Drain()

	r.Reset()
	for now := time.Duration(0); now < time.Second; now += frame {
		r.Tick(now)
	}

	if n := count(r.Drain(), sim.EventSpecialBurst); n != 0 {
		t.Errorf("%d bursts from the previous round fired after Reset", n)
	}
	if r.Fighter(core.Player2).Health != 100 || !r.Fighter(core.Player1).SpecialReady(0) {
		t.Error("Reset should restore health and cooldowns")
	}
}

func TestNewRoundValidation(t *testing.T) {
	if _, err := NewRound(config.DefaultBrawlConfig(), "gigi", "donkey"); !errors.Is(err, ErrUnknownFighter) {
		t.Errorf("err = %v, expected ErrUnknownFighter", err)
	}

	cfg := config.DefaultBrawlConfig()
	cfg.Roster[0].SpecialDamage = 0
	if _, err := NewRound(cfg, "gigi", "brandy"); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("err = %v, expected config.ErrInvalid", err)
	}
}
