package space

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/barnyard-arcade/internal/config"
	"github.com/vovakirdan/barnyard-arcade/internal/core"
	"github.com/vovakirdan/barnyard-arcade/internal/registry"
	"github.com/vovakirdan/barnyard-arcade/internal/sim"
)

const step = 16 * time.Millisecond

func quietLevel(t *testing.T, number, lives int) *Level {
	t.Helper()
	l, err := NewLevel(config.DefaultSpaceConfig(), number, lives, 0, nil, nil)
	if err != nil {
		t.Fatalf("NewLevel() error: %v", err)
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

func TestLevelScoresEverySecond(t *testing.T) {
	l := quietLevel(t, 1, 3)

	for i := 1; i <= 1250; i++ {
		l.Tick(time.Duration(i) * step)
		if i == 125 && l.Score() != 20 {
			t.Errorf("score after 2 s = %d, expected 20", l.Score())
		}
	}

	if l.Outcome() != sim.OutcomeLevelComplete {
		t.Fatalf("outcome after 20 s = %v, expected levelComplete", l.Outcome())
	}
	if got := l.Score(); got != 20*10+100 {
		t.Errorf("score = %d, expected 300", got)
	}
	if n := count(l.Drain(), sim.EventLevelComplete); n != 1 {
		t.Errorf("level complete events = %d, expected 1", n)
	}
}

func TestContactHasNoDebounce(t *testing.T) {
	l := quietLevel(t, 1, 3)
	p := l.Player()
	l.enemies = []Enemy{{Body: sim.Body{X: p.X + 4, Y: p.Y + 4, W: 40, H: 40}}}

	for i := 1; i <= 3; i++ {
		l.Tick(time.Duration(i) * step)
		if l.Lives() != 3-i {
			t.Fatalf("tick %d: lives = %d, expected %d", i, l.Lives(), 3-i)
		}
	}
	if l.Outcome() != sim.OutcomeLevelFailed {
		t.Errorf("outcome = %v, expected levelFailed", l.Outcome())
	}
	events := l.Drain()
	if count(events, sim.EventLifeLost) != 3 || count(events, sim.EventGameOver) != 1 {
		t.Errorf("events = %+v", events)
	}
}

func TestContactResetsShip(t *testing.T) {
	l := quietLevel(t, 1, 3)
	l.player.X, l.player.Y = 0, 0
	l.enemies = []Enemy{
		{Body: sim.Body{X: 5, Y: 5, W: 40, H: 40}},
		{Body: sim.Body{X: 20, Y: 20, W: 40, H: 40}},
	}

	l.Tick(step)

	if l.Lives() != 1 {
		t.Errorf("two overlapping enemies should cost two lives, lives = %d", l.Lives())
	}
	if p := l.Player(); p.X != (800-48)/2 || p.Y != 600-48-20 {
		t.Errorf("ship at (%v, %v), expected (376, 532)", p.X, p.Y)
	}
}

func TestEnemiesSpawnInUpperBand(t *testing.T) {
	cfg := config.DefaultSpaceConfig()
	for level := 1; level <= cfg.Gameplay.Levels; level++ {
		l, err := NewLevel(cfg, level, 3, 0, nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		if got := len(l.Enemies()); got != 3+2*level {
			t.Errorf("level %d enemies = %d, expected %d", level, got, 3+2*level)
		}
		for _, e := range l.Enemies() {
			if e.Body.Y < 0 || e.Body.Y > 360 {
				t.Errorf("level %d enemy spawned at y = %v", level, e.Body.Y)
			}
		}
	}
}

func TestLivesCarryOverLevels(t *testing.T) {
	c, err := NewCampaign(config.DefaultSpaceConfig(), WithSeed(2))
	if err != nil {
		t.Fatal(err)
	}
	l := c.Level()
	p := l.Player()
	l.enemies = []Enemy{{Body: sim.Body{X: p.X, Y: p.Y, W: 40, H: 40}}}
	c.Tick(step)
	l.enemies = nil
	if l.Lives() != 2 {
		t.Fatalf("lives = %d, expected 2", l.Lives())
	}

	tick := 1
	for c.Stage() == StagePlaying {
		tick++
		c.Tick(time.Duration(tick) * step)
	}
	if c.Stage() != StageIntermission {
		t.Fatalf("stage = %v, expected intermission", c.Stage())
	}
	cleared := c.Level().Now()

	for c.Stage() == StageIntermission {
		tick++
		c.Tick(time.Duration(tick) * step)
	}
	if c.Level().Number() != 2 {
		t.Fatalf("level = %d, expected 2", c.Level().Number())
	}
	if c.Level().Lives() != 2 {
		t.Errorf("lives in level 2 = %d, expected 2", c.Level().Lives())
	}
	if wait := c.Level().Now() - cleared; wait < 2*time.Second || wait > 2*time.Second+step {
		t.Errorf("intermission lasted %v, expected 2s", wait)
	}
	if c.Score() != 300 {
		t.Errorf("score = %d, expected 300", c.Score())
	}
}

func TestCampaignWinsAfterLastLevel(t *testing.T) {
	c, err := NewCampaign(config.DefaultSpaceConfig(), WithSeed(9))
	if err != nil {
		t.Fatal(err)
	}
	c.Level().enemies = nil

	var events []sim.Event
	loop := sim.Loop{
		TickRate:  60,
		MaxFrames: 60 * 200,
		OnFrame: func(time.Duration) {
			c.Level().enemies = nil
			events = append(events, c.Drain()...)
		},
	}
	out, err := loop.Run(context.Background(), c)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if out != sim.OutcomeLevelComplete || c.Stage() != StageWon {
		t.Fatalf("outcome = %v, stage = %v", out, c.Stage())
	}
	if c.Level().Number() != 5 {
		t.Errorf("finished on level %d, expected 5", c.Level().Number())
	}
	if got := c.Score(); got != 5*200+100*(1+2+3+4+5) {
		t.Errorf("score = %d, expected 2500", got)
	}
	if count(events, sim.EventGameWon) != 1 || count(events, sim.EventLevelComplete) != 5 {
		t.Errorf("game won = %d, level complete = %d", count(events, sim.EventGameWon), count(events, sim.EventLevelComplete))
	}
}

func TestPauseFreezesClock(t *testing.T) {
	l := quietLevel(t, 1, 3)
	l.TogglePause()
	for i := 1; i <= 300; i++ {
		l.Tick(time.Duration(i) * step)
	}
	if l.TimeLeft() != 20 || l.Score() != 0 {
		t.Errorf("paused level advanced: %d s left, score %d", l.TimeLeft(), l.Score())
	}
}

func TestGameAdapter(t *testing.T) {
	if !registry.Exists("space") {
		t.Fatal("space is not registered")
	}
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 3})
	g.Campaign().Level().enemies = nil

	frame := core.NewInputFrame()
	frame.Set(core.ActionLeft)
	in := core.NewMultiInputFrame()
	in.SetPlayer(core.Player1, frame)
	x0 := g.Campaign().Level().Player().X
	g.Step(in)
	if got := g.Campaign().Level().Player().X; got != x0-8 {
		t.Errorf("x = %v, expected %v", got, x0-8)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()
	for _, want := range []string{"Level 1/5", "Score 0", "♥♥♥", shipSprite} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
}
