package config

import (
	"errors"
	"fmt"
)

// ErrInvalid marks a configuration that cannot start a round or level.
var ErrInvalid = errors.New("invalid config")

func invalid(format string, args ...any) error {
	return fmt.Errorf("config: %s: %w", fmt.Sprintf(format, args...), ErrInvalid)
}

// Validate checks the values a round relies on.
func (c BrawlConfig) Validate() error {
	if c.Arena.MaxX() <= c.Arena.MinX() {
		return invalid("arena walls [%v, %v] are empty", c.Arena.MinX(), c.Arena.MaxX())
	}
	if c.Arena.FighterWidth <= 0 || c.Arena.FighterHeight <= 0 {
		return invalid("fighter size must be positive")
	}
	if c.Physics.Friction < 0 || c.Physics.Friction > 1 {
		return invalid("friction %v outside [0, 1]", c.Physics.Friction)
	}
	if c.Physics.MaxJumps < 1 {
		return invalid("max_jumps must be at least 1")
	}
	if c.Combat.MaxHealth <= 0 {
		return invalid("max_health must be positive")
	}
	if c.Combat.BlockMultiplier < 0 || c.Combat.BlockMultiplier > 1 {
		return invalid("block_multiplier %v outside [0, 1]", c.Combat.BlockMultiplier)
	}
	if c.Match.TimerSeconds <= 0 {
		return invalid("timer_seconds must be positive")
	}
	if c.Match.RoundsToWin <= 0 {
		return invalid("rounds_to_win must be positive")
	}
	if len(c.Roster) == 0 {
		return invalid("roster is empty")
	}
	seen := make(map[string]bool, len(c.Roster))
	for _, ch := range c.Roster {
		if err := ch.Validate(); err != nil {
			return err
		}
		if seen[ch.ID] {
			return invalid("duplicate character %q", ch.ID)
		}
		seen[ch.ID] = true
	}
	return nil
}

// Validate checks a single roster entry.
func (ch Character) Validate() error {
	if ch.ID == "" {
		return invalid("character without id")
	}
	if ch.Damage <= 0 || ch.SpecialDamage <= 0 {
		return invalid("character %q is missing damage stats", ch.ID)
	}
	return nil
}

// Validate checks the values a level relies on.
func (c OceanConfig) Validate() error {
	if err := validateField(c.Canvas, c.Player, c.Enemies.Size); err != nil {
		return err
	}
	if c.Gameplay.Levels < 2 {
		return invalid("ocean needs at least one pellet level before the boss")
	}
	if c.Gameplay.Lives <= 0 {
		return invalid("lives must be positive")
	}
	if c.Pellets.PerLevel <= 0 || c.Pellets.Size <= 0 {
		return invalid("pellets per level and size must be positive")
	}
	if c.Boss.HP <= 0 || c.Boss.Size <= 0 {
		return invalid("boss hp and size must be positive")
	}
	if c.Bubbles.Size <= 0 || c.Bubbles.Speed <= 0 {
		return invalid("bubble size and speed must be positive")
	}
	return nil
}

// Validate checks the values a level relies on.
func (c SpaceConfig) Validate() error {
	if err := validateField(c.Canvas, c.Player, c.Enemies.Size); err != nil {
		return err
	}
	if c.Gameplay.Levels <= 0 {
		return invalid("levels must be positive")
	}
	if c.Gameplay.Lives <= 0 {
		return invalid("lives must be positive")
	}
	if c.Gameplay.LevelDuration <= 0 {
		return invalid("level_duration must be positive")
	}
	if c.Gameplay.SpawnBand <= 0 || c.Gameplay.SpawnBand > 1 {
		return invalid("spawn_band %v outside (0, 1]", c.Gameplay.SpawnBand)
	}
	return nil
}

func validateField(canvas Canvas, player Mover, enemySize float64) error {
	if canvas.Width <= 0 || canvas.Height <= 0 {
		return invalid("canvas %vx%v is empty", canvas.Width, canvas.Height)
	}
	if player.Size <= 0 || player.Size >= canvas.Width || player.Size >= canvas.Height {
		return invalid("player size %v does not fit the canvas", player.Size)
	}
	if enemySize <= 0 {
		return invalid("enemy size must be positive")
	}
	return nil
}
