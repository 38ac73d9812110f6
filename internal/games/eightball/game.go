// Package eightball is the sarcastic magic 8-ball: type a question, wait
// for the shimmer, get told off.
package eightball

import (
	"math/rand"
	"unicode/utf8"

	"github.com/vovakirdan/barnyard-arcade/internal/core"
	"github.com/vovakirdan/barnyard-arcade/internal/registry"
	"github.com/vovakirdan/barnyard-arcade/internal/sim"
)

// Game adapts a Ball to the platform. It takes typed lines instead of keys.
type Game struct {
	clock   *sim.FrameClock
	ball    *Ball
	pending []sim.Event
}

// NewGame creates the 8-ball game.
func NewGame() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return "eightball" }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Sarcastic 8-Ball" }

// Reset starts with a quiet ball.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.clock = sim.NewFrameClock(runtime.TickRate)
	g.ball = New(rand.New(rand.NewSource(runtime.Seed)), nil)
	g.pending = nil
}

// Prompt returns the placeholder for the question box.
func (g *Game) Prompt() string { return "Ask a yes/no question..." }

// Submit asks the ball. Blank lines are refused.
func (g *Game) Submit(line string) bool {
	if g.ball == nil {
		return false
	}
	return g.ball.Ask(line)
}

// Step advances the ball by one tick. Keys are ignored.
func (g *Game) Step(core.MultiInputFrame) core.StepResult {
	if g.ball == nil {
		return core.StepResult{}
	}
	g.ball.Tick(g.clock.Advance())
	g.pending = append(g.pending, g.ball.Drain()...)
	return core.StepResult{State: g.State()}
}

// TakeEvents returns the events emitted since the last call.
func (g *Game) TakeEvents() []sim.Event {
	out := g.pending
	g.pending = nil
	return out
}

// Ball returns the ball.
func (g *Game) Ball() *Ball { return g.ball }

// State reports the number of answers as the score. The toy never ends.
func (g *Game) State() core.GameState {
	if g.ball == nil {
		return core.GameState{}
	}
	return core.GameState{Score: g.ball.Answered()}
}

// Render draws the ball with its window.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.ball == nil {
		return
	}
	w, h := dst.Width(), dst.Height()
	boxW := core.Min(w-2, 52)
	boxH := core.Min(h-4, 9)
	box := core.NewRect((w-boxW)/2, core.Max(0, (h-boxH)/2-1), boxW, boxH)
	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)

	mid := box.Y + box.H/2
	switch {
	case g.ball.Thinking():
		centre(dst, mid, "Thinking…", core.ColorPink)
	case g.ball.Answer() != "":
		centre(dst, mid, g.ball.Answer(), core.ColorBrightCyan)
	default:
		centre(dst, mid, "8", core.ColorBrightWhite)
	}
	if q := g.ball.Question(); q != "" {
		centre(dst, box.Y-1, "\""+q+"\"", core.ColorGray)
	}
	centre(dst, box.Bottom()+1, "Type a question and press Enter", core.ColorDefault)
}

func centre(dst *core.Screen, y int, text string, c core.Color) {
	dst.DrawTextColored((dst.Width()-utf8.RuneCountInString(text))/2, y, text, c)
}

func init() {
	registry.Register("eightball", func() registry.Game {
		return NewGame()
	})
}
