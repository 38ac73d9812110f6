package ocean

import (
	"errors"
	"testing"

	"github.com/vovakirdan/barnyard-arcade/internal/config"
	"github.com/vovakirdan/barnyard-arcade/internal/sim"
)

func newTestCampaign(t *testing.T, start int) *Campaign {
	t.Helper()
	c, err := NewCampaign(config.DefaultOceanConfig(), start, WithSeed(3))
	if err != nil {
		t.Fatalf("NewCampaign() error: %v", err)
	}
	c.Level().enemies = nil
	return c
}

func TestCampaignPowerUpLeadsToBoss(t *testing.T) {
	c := newTestCampaign(t, 5)
	l := c.Level()
	l.pellets = []sim.Body{pelletOnPlayer(l)}

	c.Tick(step)

	if c.Stage() != StagePowerUp {
		t.Fatalf("stage = %v, expected power_up", c.Stage())
	}
	if got := c.Score(); got != 50+500 {
		t.Errorf("score = %d, expected 550", got)
	}
	if events := c.Drain(); count(events, sim.EventPowerUp) != 1 || count(events, sim.EventLevelComplete) != 0 {
		t.Errorf("events = %+v, expected a single power-up", events)
	}

	if !c.Next() {
		t.Fatal("Next() refused after the power-up")
	}
	if c.Level().Number() != 6 || !c.Level().CanShoot() || c.Stage() != StagePlaying {
		t.Errorf("level %d, can shoot %v, stage %v", c.Level().Number(), c.Level().CanShoot(), c.Stage())
	}
	if c.Score() != 550 {
		t.Errorf("score after Next = %d, expected 550", c.Score())
	}
}

func TestCampaignRetryKeepsBankedPoints(t *testing.T) {
	c := newTestCampaign(t, 1)
	l := c.Level()
	l.pellets = []sim.Body{pelletOnPlayer(l), {X: 0, Y: 0, W: 30, H: 30}}
	c.Tick(step)
	if c.Score() != 50 {
		t.Fatalf("score = %d, expected 50", c.Score())
	}

	l.lives = 1
	p := l.Player()
	l.enemies = []Enemy{{Body: sim.Body{X: p.X, Y: p.Y, W: 40, H: 40}}}
	c.Tick(2 * step)

	if c.Stage() != StageFailed {
		t.Fatalf("stage = %v, expected failed", c.Stage())
	}
	if c.Next() {
		t.Error("Next() should be refused after a failure")
	}
	if !c.Retry() {
		t.Fatal("Retry() refused")
	}
	if c.Level().Number() != 1 || c.Level().Lives() != 3 || c.Level().Collected() != 0 {
		t.Errorf("retry gave level %d with %d lives and %d pellets", c.Level().Number(), c.Level().Lives(), c.Level().Collected())
	}
	if c.Score() != 50 {
		t.Errorf("score after retry = %d, expected 50", c.Score())
	}
}

func TestCampaignBossDefeatWins(t *testing.T) {
	c := newTestCampaign(t, 1)
	if err := c.Jump(6); err != nil {
		t.Fatalf("Jump(6) error: %v", err)
	}
	l := c.Level()
	boss := l.Boss()
	boss.HP = 1
	l.bubbles = append(l.bubbles, sim.Body{X: boss.Body.X + 60, Y: boss.Body.Y + 60, VX: -8, W: 20, H: 20})

	c.Tick(step)

	if !c.Won() || c.Outcome() != sim.OutcomeLevelComplete {
		t.Fatalf("won = %v, outcome = %v", c.Won(), c.Outcome())
	}
	events := c.Drain()
	if count(events, sim.EventBossDefeated) != 1 || count(events, sim.EventGameWon) != 1 {
		t.Errorf("events = %+v", events)
	}
	if c.Next() || c.Retry() {
		t.Error("a won campaign has nowhere to go")
	}
}

func TestCampaignJumpRange(t *testing.T) {
	c := newTestCampaign(t, 1)
	for _, n := range []int{0, 7} {
		if err := c.Jump(n); !errors.Is(err, ErrLevelRange) {
			t.Errorf("Jump(%d) error = %v, expected ErrLevelRange", n, err)
		}
	}
	if _, err := NewCampaign(config.DefaultOceanConfig(), 9); !errors.Is(err, ErrLevelRange) {
		t.Errorf("NewCampaign(9) error = %v", err)
	}
}
