package ocean

import (
	"strings"
	"testing"

	"github.com/vovakirdan/barnyard-arcade/internal/core"
	"github.com/vovakirdan/barnyard-arcade/internal/registry"
	"github.com/vovakirdan/barnyard-arcade/internal/sim"
)

func press(actions ...core.Action) core.MultiInputFrame {
	frame := core.NewInputFrame()
	for _, a := range actions {
		frame.Set(a)
	}
	in := core.NewMultiInputFrame()
	in.SetPlayer(core.Player1, frame)
	return in
}

func newTestGame(t *testing.T) *Game {
	t.Helper()
	SetStartLevel(1)
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 5})
	l := g.Campaign().Level()
	l.enemies = nil
	l.pellets = nil
	return g
}

func TestGameRegistered(t *testing.T) {
	if !registry.Exists("ocean") {
		t.Fatal("ocean is not registered")
	}
	g, _ := registry.Create("ocean")
	if _, ok := g.(registry.EventSource); !ok {
		t.Error("ocean should emit events for audio")
	}
}

func TestKeyPressHoldsDirection(t *testing.T) {
	g := newTestGame(t)
	x0 := g.Campaign().Level().Player().X

	g.Step(press(core.ActionRight))
	x1 := g.Campaign().Level().Player().X
	if x1 != x0+8 {
		t.Fatalf("x after press = %v, expected %v", x1, x0+8)
	}

	// The press keeps the fish moving for a short while, then it stops.
	for i := 0; i < 30; i++ {
		g.Step(core.NewMultiInputFrame())
	}
	x2 := g.Campaign().Level().Player().X
	if x2 <= x1 {
		t.Error("held direction should keep moving between key repeats")
	}
	for i := 0; i < 10; i++ {
		g.Step(core.NewMultiInputFrame())
	}
	if g.Campaign().Level().Player().X != x2 {
		t.Error("direction should release once key repeats stop")
	}
}

func TestGamePauseAndShootRouting(t *testing.T) {
	g := newTestGame(t)

	g.Step(press(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("pause not applied")
	}
	g.Step(press(core.ActionPause))
	if g.State().Paused {
		t.Fatal("pause not toggled off")
	}

	g.Step(press(core.ActionShoot))
	if n := len(g.Campaign().Level().Bubbles()); n != 0 {
		t.Errorf("bubbles on a pellet level = %d, expected 0", n)
	}
}

func TestGameConfirmAdvances(t *testing.T) {
	g := newTestGame(t)
	l := g.Campaign().Level()
	l.pellets = []sim.Body{pelletOnPlayer(l)}

	g.Step(core.NewMultiInputFrame())
	if g.Campaign().Stage() != StageCleared {
		t.Fatalf("stage = %v, expected cleared", g.Campaign().Stage())
	}
	if g.State().GameOver {
		t.Error("a cleared level is not game over")
	}
	events := g.TakeEvents()
	if count(events, sim.EventLevelComplete) != 1 {
		t.Errorf("events = %+v", events)
	}

	g.Step(press(core.ActionConfirm))
	if g.Campaign().Level().Number() != 2 {
		t.Errorf("level = %d, expected 2", g.Campaign().Level().Number())
	}
	if g.State().Score != 150 {
		t.Errorf("score = %d, expected 150", g.State().Score)
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(t)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	for _, want := range []string{"Level 1", "Pellets 0/8", "Score 0", "♥♥♥", fishSprite} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
}
