// Package brawl implements Barnyard Brawl: two farmyard fighters, a 99 second
// clock and a floor. Seat 2 is either the CPU or a second local player.
package brawl

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/barnyard-arcade/internal/config"
	"github.com/vovakirdan/barnyard-arcade/internal/core"
	"github.com/vovakirdan/barnyard-arcade/internal/registry"
	"github.com/vovakirdan/barnyard-arcade/internal/sim"
)

// Settings chosen on the command line or in the menu.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	fighterP1        = "gigi"
	fighterP2        = "brandy"
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names keep the
// file values.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = config.DifficultyFixed
	}
	difficultyPreset = p
}

// SetFighters picks the characters for the next Reset. Empty ids keep the
// current choice.
func SetFighters(p1, p2 string) {
	if p1 != "" {
		fighterP1 = p1
	}
	if p2 != "" {
		fighterP2 = p2
	}
}

// Fighters returns the current character choice.
func Fighters() (p1, p2 string) { return fighterP1, fighterP2 }

// LoadConfig loads the brawl configuration with the chosen preset applied.
func LoadConfig() (config.BrawlConfig, error) {
	cfg, err := config.LoadBrawl(configPath)
	if err != nil {
		return cfg, err
	}
	config.ApplyBrawlPreset(&cfg, difficultyPreset)
	return cfg, nil
}

// Game adapts a Match to the platform's Game interface.
type Game struct {
	id        string
	title     string
	twoPlayer bool

	cfg     config.BrawlConfig
	runtime core.RuntimeConfig
	clock   *sim.FrameClock
	match   *Match
	err     error

	pending  []sim.Event
	reported int
	banner   banner
}

// banner is the special-move name shown above a fighter for a moment.
type banner struct {
	seat  core.PlayerID
	text  string
	until time.Duration
}

// New creates a one-player game against the CPU.
func New() *Game {
	return &Game{id: "brawl", title: "Barnyard Brawl"}
}

// NewVersus creates a two-player local game.
func NewVersus() *Game {
	return &Game{id: "brawl2p", title: "Barnyard Brawl (2P)", twoPlayer: true}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return g.id }

// Title returns the display name for this game.
func (g *Game) Title() string { return g.title }

// Reset loads configuration and starts a new match.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.clock = sim.NewFrameClock(runtime.TickRate)
	g.pending = nil
	g.reported = 0
	g.banner = banner{}
	g.err = nil

	cfg, err := LoadConfig()
	if err != nil {
		g.err = err
		cfg = config.DefaultBrawlConfig()
	}
	g.cfg = cfg

	opts := []Option{WithRand(rand.New(rand.NewSource(runtime.Seed)))}
	if !g.twoPlayer {
		opts = append(opts, WithCPU(core.Player2))
	}
	g.match, err = NewMatch(cfg, fighterP1, fighterP2, opts...)
	if err != nil {
		g.err = err
		// Fall back to the first two roster entries so the screen can still
		// explain what went wrong.
		g.match, _ = NewMatch(cfg, cfg.Roster[0].ID, cfg.Roster[len(cfg.Roster)-1].ID, opts...)
	}
}

// seatActions is the fixed order in which a frame's actions are applied.
var seatActions = []core.Action{
	core.ActionPause,
	core.ActionConfirm,
	core.ActionLeft,
	core.ActionRight,
	core.ActionUp,
	core.ActionDown,
	core.ActionBlock,
	core.ActionAttack,
	core.ActionSpecial,
}

// Step advances the match by one tick.
func (g *Game) Step(in core.MultiInputFrame) core.StepResult {
	if g.match == nil {
		return core.StepResult{State: g.State()}
	}

	g.applySeat(core.Player1, in.Player1())
	if g.twoPlayer {
		g.applySeat(core.Player2, in.Player2())
	}

	now := g.clock.Advance()
	g.match.Tick(now)

	for _, ev := range g.match.Drain() {
		if ev.Kind == sim.EventSpecial {
			if f := g.match.Round().Fighter(core.PlayerID(ev.Actor)); f != nil {
				g.banner = banner{seat: f.ID, text: f.Char.Special, until: now + g.cfg.Combat.SpecialLockout*2}
			}
		}
		g.pending = append(g.pending, ev)
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) applySeat(id core.PlayerID, frame core.InputFrame) {
	for _, a := range seatActions {
		if frame.Has(a) {
			g.match.ApplyInput(id, a)
		}
	}
}

// TakeEvents returns the events emitted since the last call.
func (g *Game) TakeEvents() []sim.Event {
	out := g.pending
	g.pending = nil
	return out
}

// TakeBouts returns rounds finished since the last call.
func (g *Game) TakeBouts() []core.Bout {
	if g.match == nil {
		return nil
	}
	history := g.match.History()
	if g.reported >= len(history) {
		return nil
	}
	versus := "cpu"
	if g.twoPlayer {
		versus = "local"
	}
	out := make([]core.Bout, 0, len(history)-g.reported)
	for _, res := range history[g.reported:] {
		out = append(out, BoutOf(res, versus))
	}
	g.reported = len(history)
	return out
}

// BoutOf converts a round result for storage.
func BoutOf(res Result, versus string) core.Bout {
	return core.Bout{
		P1:       res.P1,
		P2:       res.P2,
		Winner:   res.Winner,
		Reason:   res.Reason,
		P1Health: res.P1Health,
		P2Health: res.P2Health,
		Duration: res.Duration,
		Versus:   versus,
	}
}

// Match returns the match in progress.
func (g *Game) Match() *Match { return g.match }

// State returns the current game state. Score is the health P1 kept across
// the rounds they won, so a flawless single round scores 100.
func (g *Game) State() core.GameState {
	if g.match == nil {
		return core.GameState{}
	}
	score := 0
	for _, res := range g.match.History() {
		if res.Winner == core.Player1 {
			score += int(res.P1Health + 0.5)
		}
	}
	return core.GameState{
		Score:    score,
		GameOver: g.match.Over(),
		Won:      g.match.Winner() == core.Player1,
		Paused:   g.match.Round().Paused(),
	}
}

func init() {
	registry.Register("brawl", func() registry.Game {
		return New()
	})
	registry.Register("brawl2p", func() registry.Game {
		return NewVersus()
	})
}
