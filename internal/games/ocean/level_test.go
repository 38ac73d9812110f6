package ocean

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/barnyard-arcade/internal/config"
	"github.com/vovakirdan/barnyard-arcade/internal/sim"
)

const step = 16 * time.Millisecond

// quietLevel returns a level with no enemies so tests place everything by hand.
func quietLevel(t *testing.T, number int) *Level {
	t.Helper()
	l, err := NewLevel(config.DefaultOceanConfig(), number, WithSeed(7))
	if err != nil {
		t.Fatalf("NewLevel(%d) error: %v", number, err)
	}
	l.enemies = nil
	return l
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

func pelletOnPlayer(l *Level) sim.Body {
	p := l.Player()
	size := l.cfg.Pellets.Size
	return sim.Body{X: p.X + 5, Y: p.Y + 5, W: size, H: size}
}

func TestLevelCompletesOnceAfterLastPellet(t *testing.T) {
	l := quietLevel(t, 1)
	l.pellets = l.pellets[:0]
	for i := 0; i < 8; i++ {
		l.pellets = append(l.pellets, pelletOnPlayer(l))
	}

	l.Tick(step)
	events := l.Drain()

	if got := count(events, sim.EventPickup); got != 8 {
		t.Errorf("pickups = %d, expected 8", got)
	}
	if got := count(events, sim.EventLevelComplete); got != 1 {
		t.Errorf("level complete events = %d, expected 1", got)
	}
	if l.Outcome() != sim.OutcomeLevelComplete {
		t.Errorf("outcome = %v, expected levelComplete", l.Outcome())
	}
	if got := l.Score(); got != 8*50+100 {
		t.Errorf("score = %d, expected %d", got, 8*50+100)
	}

	// A pellet drifting onto the player afterwards is ignored.
	l.pellets = append(l.pellets, pelletOnPlayer(l))
	for i := 2; i < 20; i++ {
		l.Tick(time.Duration(i) * step)
	}
	if events := l.Drain(); len(events) != 0 {
		t.Errorf("finished level emitted %+v", events)
	}
	if l.Collected() != 8 {
		t.Errorf("collected = %d, expected 8", l.Collected())
	}
}

func TestLevelPickupStopsAtCompletion(t *testing.T) {
	l := quietLevel(t, 2)
	l.pellets = []sim.Body{pelletOnPlayer(l)}
	l.Tick(step)

	if l.Collected() != 1 || l.Outcome() != sim.OutcomeLevelComplete {
		t.Fatalf("collected = %d, outcome = %v", l.Collected(), l.Outcome())
	}
	if got := l.Score(); got != 50+200 {
		t.Errorf("score = %d, expected pellet plus level 2 bonus", got)
	}
}

func TestContactDebounce(t *testing.T) {
	l := quietLevel(t, 1)
	l.pellets = nil
	p := l.Player()
	l.enemies = []Enemy{{Body: sim.Body{X: p.X + 4, Y: p.Y + 3, W: 40, H: 40}}}

	tick := 0
	advance := func(n int) {
		for i := 0; i < n; i++ {
			tick++
			l.Tick(time.Duration(tick) * step)
		}
	}

	advance(1)
	if l.Lives() != 2 {
		t.Fatalf("lives after first contact = %d, expected 2", l.Lives())
	}
	if !l.Flashing() {
		t.Error("player should flash after losing a life")
	}

	// 16 ms .. 512 ms stays inside the window.
	advance(31)
	if l.Lives() != 2 {
		t.Errorf("lives inside debounce window = %d, expected 2", l.Lives())
	}

	advance(1) // 528 ms
	if l.Lives() != 1 {
		t.Errorf("lives after window = %d, expected 1", l.Lives())
	}

	advance(32) // 1040 ms
	if l.Lives() != 0 || l.Outcome() != sim.OutcomeLevelFailed {
		t.Errorf("lives = %d, outcome = %v, expected failure", l.Lives(), l.Outcome())
	}
	events := l.Drain()
	if count(events, sim.EventLifeLost) != 3 || count(events, sim.EventLevelFailed) != 1 {
		t.Errorf("events = %+v", events)
	}
}

func TestContactResetsPlayer(t *testing.T) {
	l := quietLevel(t, 1)
	l.pellets = nil
	l.player.X, l.player.Y = 0, 0
	l.enemies = []Enemy{{Body: sim.Body{X: 10, Y: 10, W: 40, H: 40}}}

	l.Tick(step)

	want := (800.0 - 48) / 2
	if l.Player().X != want || l.Player().Y != 600-48-10-30 {
		t.Errorf("player at (%v, %v), expected (%v, %v)", l.Player().X, l.Player().Y, want, 600-48-10-30)
	}
}

func TestDangerZone(t *testing.T) {
	tests := []struct {
		level    int
		wantLoss bool
	}{
		{1, false},
		{2, true},
		{5, true},
	}
	for _, tt := range tests {
		l := quietLevel(t, tt.level)
		l.pellets = nil
		l.player.Y = 600 - l.DangerHeight() - 40 // bottom sits 8 inside the zone

		l.Tick(step)

		lost := l.Lives() < 3
		if lost != tt.wantLoss {
			t.Errorf("level %d: life lost = %v, expected %v", tt.level, lost, tt.wantLoss)
		}
	}
}

func TestPlayerStaysAboveDangerZone(t *testing.T) {
	l := quietLevel(t, 3)
	l.pellets = nil
	l.Steer(Heading{Down: true, Right: true})
	for i := 1; i <= 200; i++ {
		l.Tick(time.Duration(i) * step)
	}

	p := l.Player()
	if got, limit := p.Box().Bottom(), 600-l.DangerHeight()-10; got != limit {
		t.Errorf("player bottom = %v, expected %v", got, limit)
	}
	if p.Box().Right() != 800 {
		t.Errorf("player right = %v, expected 800", p.Box().Right())
	}
	if l.Lives() != 3 {
		t.Errorf("held keys must not push the player into the zone, lives = %d", l.Lives())
	}
}

func TestPelletsScrollAndWrap(t *testing.T) {
	l := quietLevel(t, 1)
	l.player.X = 0
	l.pellets = []sim.Body{
		{X: 400, Y: 100, W: 30, H: 30},
		{X: 400, Y: 599, W: 30, H: 30},
	}

	l.Tick(step)

	if got := l.Pellets()[0].Y; got != 102 {
		t.Errorf("pellet y = %v, expected 102", got)
	}
	if got := l.Pellets()[1].Y; got != -30 {
		t.Errorf("wrapped pellet y = %v, expected -30", got)
	}
}

func TestBossFight(t *testing.T) {
	l := quietLevel(t, 6)
	if !l.CanShoot() || l.Boss() == nil {
		t.Fatal("boss level should have a boss and bubbles")
	}
	if l.Player().X != 50 {
		t.Errorf("boss level start x = %v, expected 50", l.Player().X)
	}

	boss := l.Boss()
	boss.Body.VX, boss.Body.VY = 0, 0
	boss.Body.X, boss.Body.Y = 0, 190
	boss.HP = 2
	l.player.X, l.player.Y = 300, 312

	if !l.Shoot() {
		t.Fatal("first shot refused")
	}
	if l.Shoot() {
		t.Error("second shot inside the rate limit should be refused")
	}
	b := l.Bubbles()[0]
	if b.X != 285 || b.Y != 327 {
		t.Errorf("bubble at (%v, %v), expected (285, 327)", b.X, b.Y)
	}

	tick := 0
	for boss.HP == 2 && tick < 100 {
		tick++
		l.Tick(time.Duration(tick) * step)
	}
	if boss.HP != 1 || len(l.Bubbles()) != 0 {
		t.Fatalf("hp = %d, bubbles = %d after the hit", boss.HP, len(l.Bubbles()))
	}
	if tick != 17 {
		t.Errorf("bubble needed %d ticks, expected 17", tick)
	}

	for l.Now() < 300*time.Millisecond {
		tick++
		l.Tick(time.Duration(tick) * step)
	}
	if !l.Shoot() {
		t.Fatal("shot after the rate limit refused")
	}
	for l.Outcome() == sim.OutcomeNone && tick < 200 {
		tick++
		l.Tick(time.Duration(tick) * step)
	}
	if l.Outcome() != sim.OutcomeLevelComplete {
		t.Fatalf("outcome = %v, expected levelComplete", l.Outcome())
	}
	events := l.Drain()
	if count(events, sim.EventBossHit) != 2 || count(events, sim.EventBossDefeated) != 1 {
		t.Errorf("events = %+v", events)
	}
}

func TestBubblesPassDefeatedBoss(t *testing.T) {
	l := quietLevel(t, 6)
	boss := l.Boss()
	boss.Body.VX, boss.Body.VY = 0, 0
	boss.Body.X, boss.Body.Y = 200, 190
	boss.HP = 1
	l.player.X, l.player.Y = 600, 50

	size := l.cfg.Bubbles.Size
	for i := 0; i < 2; i++ {
		l.bubbles = append(l.bubbles, sim.Body{X: 260, Y: 250 + float64(i)*size, VX: -l.cfg.Bubbles.Speed, W: size, H: size})
	}
	l.Tick(step)

	if boss.HP != 0 {
		t.Errorf("hp = %d, expected the second bubble to leave a defeated boss alone", boss.HP)
	}
	if len(l.Bubbles()) != 1 {
		t.Errorf("bubbles = %d, expected the spare one still flying", len(l.Bubbles()))
	}
	events := l.Drain()
	if count(events, sim.EventBossHit) != 1 || count(events, sim.EventBossDefeated) != 1 {
		t.Errorf("events = %+v, expected one hit and one defeat", events)
	}
	if l.Outcome() != sim.OutcomeLevelComplete {
		t.Errorf("outcome = %v, expected levelComplete", l.Outcome())
	}
}

func TestShootLockedOnPelletLevels(t *testing.T) {
	l := quietLevel(t, 3)
	if l.Shoot() {
		t.Error("shooting should be locked before the power-up")
	}
}

func TestPauseFreezesLevel(t *testing.T) {
	l := quietLevel(t, 1)
	l.Steer(Heading{Left: true})
	l.TogglePause()
	x := l.Player().X
	l.Tick(step)
	if l.Player().X != x {
		t.Error("paused level moved the player")
	}
	l.TogglePause()
	l.Tick(2 * step)
	if l.Player().X != x-8 {
		t.Errorf("x = %v, expected %v", l.Player().X, x-8)
	}
}

func TestNewLevelValidates(t *testing.T) {
	if _, err := NewLevel(config.DefaultOceanConfig(), 7); !errors.Is(err, ErrLevelRange) {
		t.Errorf("level 7 error = %v, expected ErrLevelRange", err)
	}
	cfg := config.DefaultOceanConfig()
	cfg.Boss.HP = 0
	if _, err := NewLevel(cfg, 1); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("bad config error = %v, expected ErrInvalid", err)
	}
}

func TestSpawnsAreSeeded(t *testing.T) {
	cfg := config.DefaultOceanConfig()
	a, _ := NewLevel(cfg, 3, WithSeed(42))
	b, _ := NewLevel(cfg, 3, WithSeed(42))

	if len(a.Enemies()) != 3+2*3 {
		t.Errorf("enemies = %d, expected 9", len(a.Enemies()))
	}
	for i := range a.Enemies() {
		if a.Enemies()[i] != b.Enemies()[i] {
			t.Fatalf("enemy %d differs between equal seeds", i)
		}
	}
}
