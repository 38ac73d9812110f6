// Package space implements the Emoji Space Adventure: dodge the swarm for
// five timed levels, scoring for every second survived.
package space

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/barnyard-arcade/internal/config"
	"github.com/vovakirdan/barnyard-arcade/internal/core"
	"github.com/vovakirdan/barnyard-arcade/internal/registry"
	"github.com/vovakirdan/barnyard-arcade/internal/sim"
)

// keyHold is how long one key press keeps a direction held.
const keyHold = 150 * time.Millisecond

var (
	configPath       string
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = config.DifficultyFixed
	}
	difficultyPreset = p
}

// LoadConfig loads the space configuration with the chosen preset applied.
func LoadConfig() (config.SpaceConfig, error) {
	cfg, err := config.LoadSpace(configPath)
	if err != nil {
		return cfg, err
	}
	config.ApplySpacePreset(&cfg, difficultyPreset)
	return cfg, nil
}

// Game adapts a Campaign to the platform's Game interface.
type Game struct {
	cfg      config.SpaceConfig
	clock    *sim.FrameClock
	campaign *Campaign
	holds    [4]sim.Lockout
	pending  []sim.Event
	err      error
}

// New creates a new space game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return "space" }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Emoji Space Adventure" }

// Reset loads configuration and starts at level 1.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.clock = sim.NewFrameClock(runtime.TickRate)
	g.holds = [4]sim.Lockout{}
	g.pending = nil
	g.err = nil

	cfg, err := LoadConfig()
	if err != nil {
		g.err = err
		cfg = config.DefaultSpaceConfig()
	}
	g.cfg = cfg

	rng := rand.New(rand.NewSource(runtime.Seed))
	g.campaign, err = NewCampaign(cfg, WithRand(rng))
	if err != nil {
		g.err = err
		g.cfg = config.DefaultSpaceConfig()
		g.campaign, _ = NewCampaign(g.cfg, WithRand(rng))
	}
}

var heldActions = [4]core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight}

// Step advances the campaign by one tick.
func (g *Game) Step(in core.MultiInputFrame) core.StepResult {
	if g.campaign == nil {
		return core.StepResult{}
	}
	frame := in.Player1()
	last := g.clock.Now()

	if g.campaign.Stage() == StagePlaying {
		if frame.Has(core.ActionPause) || frame.Has(core.ActionConfirm) {
			g.campaign.Level().TogglePause()
		}
		for i, a := range heldActions {
			if frame.Has(a) {
				g.holds[i].Start(last, keyHold)
			}
		}
	}

	now := g.clock.Advance()
	var held [4]bool
	for i := range g.holds {
		g.holds[i].Update(now)
		held[i] = g.holds[i].Active()
	}
	g.campaign.Level().Steer(Heading{Up: held[0], Down: held[1], Left: held[2], Right: held[3]})
	g.campaign.Tick(now)
	g.pending = append(g.pending, g.campaign.Drain()...)

	return core.StepResult{State: g.State()}
}

// TakeEvents returns the events emitted since the last call.
func (g *Game) TakeEvents() []sim.Event {
	out := g.pending
	g.pending = nil
	return out
}

// Campaign returns the campaign in progress.
func (g *Game) Campaign() *Campaign { return g.campaign }

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.campaign == nil {
		return core.GameState{}
	}
	stage := g.campaign.Stage()
	return core.GameState{
		Score:    g.campaign.Score(),
		GameOver: stage == StageWon || stage == StageOver,
		Won:      stage == StageWon,
		Paused:   g.campaign.Level().Paused(),
	}
}

func init() {
	registry.Register("space", func() registry.Game {
		return New()
	})
}
