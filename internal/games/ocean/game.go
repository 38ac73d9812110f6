// Package ocean implements Linda's Ocean Adventure: swim above the rising
// danger zone eating pellets, earn the bubble power-up, then sink the shark.
package ocean

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/barnyard-arcade/internal/config"
	"github.com/vovakirdan/barnyard-arcade/internal/core"
	"github.com/vovakirdan/barnyard-arcade/internal/registry"
	"github.com/vovakirdan/barnyard-arcade/internal/sim"
)

// keyHold is how long one key press keeps a direction held. Terminals report
// presses and auto-repeat but never releases, so a burst of repeats reads as
// a held key and silence reads as a release.
const keyHold = 150 * time.Millisecond

var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	startLevel       = 1
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

// SetStartLevel picks the level the next Reset begins at. Values outside the
// campaign fall back to level 1 on Reset.
func SetStartLevel(level int) {
	startLevel = level
}

// LoadConfig loads the ocean configuration with the chosen preset applied.
func LoadConfig() (config.OceanConfig, error) {
	cfg, err := config.LoadOcean(configPath)
	if err != nil {
		return cfg, err
	}
	config.ApplyOceanPreset(&cfg, difficultyPreset)
	return cfg, nil
}

// Game adapts a Campaign to the platform's Game interface.
type Game struct {
	cfg      config.OceanConfig
	clock    *sim.FrameClock
	campaign *Campaign
	holds    [4]sim.Lockout // up, down, left, right
	pending  []sim.Event
	err      error
}

// New creates a new ocean game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return "ocean" }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Linda's Ocean Adventure" }

// Reset loads configuration and starts the campaign.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.clock = sim.NewFrameClock(runtime.TickRate)
	g.holds = [4]sim.Lockout{}
	g.pending = nil
	g.err = nil

	cfg, err := LoadConfig()
	if err != nil {
		g.err = err
		cfg = config.DefaultOceanConfig()
	}
	g.cfg = cfg

	rng := rand.New(rand.NewSource(runtime.Seed))
	start := startLevel
	if start < 1 || start > cfg.Gameplay.Levels {
		start = 1
	}
	g.campaign, err = NewCampaign(cfg, start, WithRand(rng))
	if err != nil {
		g.err = err
		g.campaign, _ = NewCampaign(config.DefaultOceanConfig(), 1, WithRand(rng))
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
	level := g.campaign.Level()

	switch g.campaign.Stage() {
	case StagePlaying:
		if frame.Has(core.ActionPause) || frame.Has(core.ActionConfirm) {
			level.TogglePause()
		}
		for i, a := range heldActions {
			if frame.Has(a) {
				g.holds[i].Start(last, keyHold)
			}
		}
		if frame.Has(core.ActionShoot) || frame.Has(core.ActionSpecial) {
			level.Shoot()
		}
	case StageCleared, StagePowerUp:
		if frame.Has(core.ActionConfirm) {
			g.campaign.Next()
			g.holds = [4]sim.Lockout{}
		}
	case StageFailed:
		if frame.Has(core.ActionConfirm) {
			g.campaign.Retry()
			g.holds = [4]sim.Lockout{}
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

// State returns the current game state. The game is over only once the
// boss is beaten; a failed level waits for a retry.
func (g *Game) State() core.GameState {
	if g.campaign == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.campaign.Score(),
		GameOver: g.campaign.Won(),
		Won:      g.campaign.Won(),
		Paused:   g.campaign.Level().Paused(),
	}
}

func init() {
	registry.Register("ocean", func() registry.Game {
		return New()
	})
}
