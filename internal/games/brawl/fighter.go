package brawl

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/barnyard-arcade/internal/config"
	"github.com/vovakirdan/barnyard-arcade/internal/core"
	"github.com/vovakirdan/barnyard-arcade/internal/sim"
)

// ErrUnknownFighter is returned when a round names a character the roster
// does not contain.
var ErrUnknownFighter = errors.New("unknown fighter")

// Lookup resolves a roster id.
func Lookup(cfg config.BrawlConfig, id string) (config.Character, error) {
	ch, ok := cfg.Character(id)
	if !ok {
		return config.Character{}, fmt.Errorf("brawl: %q: %w", id, ErrUnknownFighter)
	}
	return ch, nil
}

// Fighter is one combatant. Timed states are expiry timestamps advanced by
// the round's Tick, never callbacks.
type Fighter struct {
	ID   core.PlayerID
	Char config.Character
	Body sim.Body

	Health     float64
	Invincible bool

	guard   sim.Lockout
	swing   sim.Lockout
	flash   sim.Lockout
	special sim.Cooldown
}

func newFighter(id core.PlayerID, ch config.Character, cfg config.BrawlConfig) *Fighter {
	f := &Fighter{ID: id, Char: ch}
	f.reset(cfg)
	return f
}

func (f *Fighter) reset(cfg config.BrawlConfig) {
	x := cfg.Arena.P1StartX
	facing := 1.0
	if f.ID == core.Player2 {
		x = cfg.Arena.Width - cfg.Arena.P2StartOffset
		facing = -1
	}
	f.Body = sim.Body{
		X:        core.ClampF(x, cfg.Arena.MinX(), cfg.Arena.MaxX()),
		W:        cfg.Arena.FighterWidth,
		H:        cfg.Arena.FighterHeight,
		Facing:   facing,
		Grounded: true,
	}
	f.Health = cfg.Combat.MaxHealth
	f.Invincible = false
	f.guard.Clear()
	f.swing.Clear()
	f.flash.Clear()
	f.special = sim.NewCooldown(cfg.Combat.SpecialCooldown)
}

// Blocking reports whether the guard is up.
func (f *Fighter) Blocking() bool { return f.guard.Active() }

// Attacking reports whether a swing or special lockout is running.
func (f *Fighter) Attacking() bool { return f.swing.Active() }

// locked reports whether a guard or swing is in progress. Neither can start
// during the other, and the fighter cannot move or jump until it ends.
func (f *Fighter) locked() bool { return f.guard.Active() || f.swing.Active() }

// Flashing reports whether the fighter was hit recently.
func (f *Fighter) Flashing() bool { return f.flash.Active() }

// SpecialReady reports whether the signature move is off cooldown.
func (f *Fighter) SpecialReady(now time.Duration) bool { return f.special.Ready(now) }

// SpecialRemaining returns the time left on the special cooldown.
func (f *Fighter) SpecialRemaining(now time.Duration) time.Duration {
	return f.special.Remaining(now)
}

// KnockedOut reports whether health has reached zero.
func (f *Fighter) KnockedOut() bool { return f.Health <= 0 }

// expire releases lockouts whose time has come.
func (f *Fighter) expire(now time.Duration) {
	f.guard.Update(now)
	f.swing.Update(now)
	f.flash.Update(now)
}

// View is the read-only picture of a fighter handed to policies and
// renderers.
type View struct {
	ID           core.PlayerID `json:"id"`
	Character    string        `json:"character"`
	Name         string        `json:"name"`
	X            float64       `json:"x"`
	Y            float64       `json:"y"`
	VX           float64       `json:"vx"`
	Facing       float64       `json:"facing"`
	Grounded     bool          `json:"grounded"`
	Jumps        int           `json:"jumps"`
	Health       float64       `json:"health"`
	Blocking     bool          `json:"blocking"`
	Attacking    bool          `json:"attacking"`
	Flashing     bool          `json:"flashing"`
	SpecialReady bool          `json:"specialReady"`
}

// View captures the fighter at now.
func (f *Fighter) View(now time.Duration) View {
	return View{
		ID:           f.ID,
		Character:    f.Char.ID,
		Name:         f.Char.Name,
		X:            f.Body.X,
		Y:            f.Body.Y,
		VX:           f.Body.VX,
		Facing:       f.Body.Facing,
		Grounded:     f.Body.Grounded,
		Jumps:        f.Body.Jumps,
		Health:       f.Health,
		Blocking:     f.Blocking(),
		Attacking:    f.Attacking(),
		Flashing:     f.Flashing(),
		SpecialReady: f.SpecialReady(now),
	}
}
