package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/barnyard-arcade/internal/core"
	"github.com/vovakirdan/barnyard-arcade/internal/sim"
	"github.com/vovakirdan/barnyard-arcade/internal/storage"
)

// fakeGame records the frames it is stepped with and hands out canned
// events and bouts.
type fakeGame struct {
	frames []core.MultiInputFrame
	state  core.GameState
	events []sim.Event
	bouts  []core.Bout
	lines  []string
	resets int
}

func (g *fakeGame) ID() string               { return "fake" }
func (g *fakeGame) Title() string            { return "Fake" }
func (g *fakeGame) Reset(core.RuntimeConfig) { g.resets++ }
func (g *fakeGame) Render(dst *core.Screen)  { dst.DrawText(0, 0, "fake") }
func (g *fakeGame) State() core.GameState    { return g.state }

func (g *fakeGame) Step(in core.MultiInputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	return core.StepResult{State: g.state}
}

func (g *fakeGame) TakeEvents() []sim.Event {
	out := g.events
	g.events = nil
	return out
}

func (g *fakeGame) TakeBouts() []core.Bout {
	out := g.bouts
	g.bouts = nil
	return out
}

// promptGame adds a text prompt to fakeGame.
type promptGame struct{ fakeGame }

func (g *promptGame) Prompt() string { return "ask" }
func (g *promptGame) Submit(line string) bool {
	if line == "" {
		return false
	}
	g.lines = append(g.lines, line)
	return true
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 60, Seed: 1}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return out
}

func TestModelRoutesKeysToSeats(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, testConfig(), Options{Versus: true})

	m = update(t, m, runeKey("."))
	m = update(t, m, runeKey("a"))
	m = update(t, m, TickMsg{})

	if len(g.frames) != 1 {
		t.Fatalf("stepped %d times, want 1", len(g.frames))
	}
	f := g.frames[0]
	if !f.Player1().Has(core.ActionAttack) {
		t.Error("seat 1 attack missing from frame")
	}
	if !f.Player2().Has(core.ActionLeft) {
		t.Error("seat 2 move missing from frame")
	}

	// The frame is cleared after each tick.
	update(t, m, TickMsg{})
	if g.frames[1].Player1().Has(core.ActionAttack) {
		t.Error("held key leaked into the next tick")
	}
}

func TestModelForwardsEventsAndBouts(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	rec := sim.NewRecorder(nil)
	g := &fakeGame{
		events: []sim.Event{{Kind: sim.EventPunch}, {Kind: sim.EventHit}},
		bouts: []core.Bout{{
			P1: "gigi", P2: "brandy", Winner: core.Player1, Reason: "ko",
			P1Health: 40, Duration: 12 * time.Second, Versus: "cpu",
		}},
	}
	m := NewModel(g, testConfig(), Options{Store: store, Sound: rec})
	update(t, m, TickMsg{})

	if got := rec.Len(); got != 2 {
		t.Errorf("sound sink got %d events, want 2", got)
	}
	bouts, err := store.RecentBouts(10)
	if err != nil {
		t.Fatalf("RecentBouts: %v", err)
	}
	if len(bouts) != 1 || bouts[0].P1 != "gigi" || bouts[0].Reason != "ko" {
		t.Errorf("stored bouts = %+v", bouts)
	}
}

func TestModelSavesScoreOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	g := &fakeGame{state: core.GameState{Score: 150, GameOver: true}}
	m := NewModel(g, testConfig(), Options{Store: store})
	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})
	update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})

	scores, err := store.TopScores("fake", 10)
	if err != nil {
		t.Fatalf("TopScores: %v", err)
	}
	if len(scores) != 1 || scores[0].Score != 150 {
		t.Errorf("scores = %+v, want one entry of 150", scores)
	}
}

func TestModelSavesScoreOnQuit(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	g := &fakeGame{}
	m := NewModel(g, testConfig(), Options{Store: store})
	g.state = core.GameState{Score: 70}
	m = update(t, m, TickMsg{})
	m = update(t, m, runeKey("q"))

	if !m.IsQuitting() {
		t.Fatal("q did not quit")
	}
	if hs, _ := store.HighScore("fake"); hs != 70 {
		t.Errorf("high score = %d, want 70", hs)
	}
}

func TestModelEscLeavesSession(t *testing.T) {
	g := &fakeGame{}

	m := update(t, NewModel(g, testConfig(), Options{InSession: true}), tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() || m.IsQuitting() {
		t.Errorf("in session: back=%v quit=%v, want back to menu", m.BackToMenu(), m.IsQuitting())
	}

	m = update(t, NewModel(g, testConfig(), Options{}), tea.KeyMsg{Type: tea.KeyEsc})
	if !m.IsQuitting() {
		t.Error("standalone Esc did not quit")
	}
}

func TestModelRestartAfterGameOver(t *testing.T) {
	g := &fakeGame{state: core.GameState{GameOver: true}}
	m := NewModel(g, testConfig(), Options{})
	m = update(t, m, TickMsg{})

	before := g.resets
	m = update(t, m, runeKey("r"))
	update(t, m, TickMsg{})
	if g.resets != before+1 {
		t.Errorf("resets = %d, want %d", g.resets, before+1)
	}
}

func TestModelPromptSubmitsLines(t *testing.T) {
	g := &promptGame{}
	m := NewModel(g, testConfig(), Options{})

	for _, r := range "will it rain" {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if len(g.lines) != 1 || g.lines[0] != "will it rain" {
		t.Fatalf("submitted %q, want one question", g.lines)
	}
	if m.input.Value() != "" {
		t.Errorf("input not cleared after an accepted line: %q", m.input.Value())
	}

	// q is typed, not a quit, while the prompt is focused.
	m = update(t, m, runeKey("q"))
	if m.IsQuitting() {
		t.Error("typing q quit the prompt game")
	}

	// Rejected lines stay in the box.
	m.input.SetValue("")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if len(g.lines) != 1 {
		t.Errorf("empty line was submitted")
	}
}

func TestModelView(t *testing.T) {
	m := NewModel(&fakeGame{}, testConfig(), Options{})
	if v := m.View(); v == "" {
		t.Error("View is empty")
	}
}
