package brawl

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/barnyard-arcade/internal/config"
)

// Situation is what a policy sees each frame.
type Situation struct {
	Now      time.Duration
	Self     View
	Opponent View
}

// Distance is the horizontal gap between the two fighters.
func (s Situation) Distance() float64 {
	d := s.Self.X - s.Opponent.X
	if d < 0 {
		return -d
	}
	return d
}

// Policy decides what a computer-controlled fighter does this frame.
type Policy interface {
	Decide(s Situation) []Intent
}

// PolicyFunc adapts a function to Policy.
type PolicyFunc func(Situation) []Intent

// Decide calls f.
func (f PolicyFunc) Decide(s Situation) []Intent { return f(s) }

// RandomPolicy is the barnyard CPU: every frame each behaviour fires
// independently with a small fixed probability. It keeps no memory between
// frames.
type RandomPolicy struct {
	cfg config.BrawlAI
	rng *rand.Rand
}

// NewRandomPolicy builds the CPU policy over rng.
func NewRandomPolicy(cfg config.BrawlAI, rng *rand.Rand) *RandomPolicy {
	return &RandomPolicy{cfg: cfg, rng: rng}
}

// Decide rolls each behaviour in a fixed order. Conditions short-circuit
// before their roll, so a seed reproduces the same draws.
func (p *RandomPolicy) Decide(s Situation) []Intent {
	var out []Intent
	dist := s.Distance()

	if p.rng.Float64() < p.cfg.WanderChance {
		if v := (p.rng.Float64() - 0.5) * p.cfg.WanderSpeed; v != 0 {
			out = append(out, Move(v))
		}
	}

	if dist > p.cfg.ChaseRange && p.rng.Float64() < p.cfg.ChaseChance {
		dir := -1.0
		if s.Opponent.X > s.Self.X {
			dir = 1
		}
		out = append(out, Move(dir*p.cfg.ChaseSpeed))
	}

	if s.Self.Grounded && p.rng.Float64() < p.cfg.JumpChance {
		out = append(out, Do(CmdJump))
	}

	if dist < p.cfg.AttackRange && p.rng.Float64() < p.cfg.AttackChance {
		out = append(out, Do(CmdAttack))
	}

	if dist < p.cfg.SpecialRange && p.rng.Float64() < p.cfg.SpecialChance && s.Self.SpecialReady {
		out = append(out, Do(CmdSpecial))
	}

	if s.Opponent.Attacking && p.rng.Float64() < p.cfg.BlockChance {
		out = append(out, Do(CmdBlock))
	}

	return out
}
