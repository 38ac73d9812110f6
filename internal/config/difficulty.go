package config

import (
	"math"
	"time"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI value to a preset. The empty string means fixed.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	case "":
		return DifficultyFixed, nil
	default:
		return "", invalid("unknown difficulty %q (expected easy, normal, hard or fixed)", s)
	}
}

// aggression scales the CPU fighter's action probabilities for a preset.
func aggression(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.5
	case DifficultyHard:
		return 1.6
	default:
		return 1.0
	}
}

// ApplyBrawlPreset modifies the config based on a difficulty preset.
// Normal and fixed keep the file values.
func ApplyBrawlPreset(cfg *BrawlConfig, preset DifficultyPreset) {
	scale := aggression(preset)
	ai := &cfg.AI
	ai.WanderChance = scaleChance(ai.WanderChance, scale)
	ai.ChaseChance = scaleChance(ai.ChaseChance, scale)
	ai.AttackChance = scaleChance(ai.AttackChance, scale)
	ai.SpecialChance = scaleChance(ai.SpecialChance, scale)
	ai.BlockChance = scaleChance(ai.BlockChance, scale)

	switch preset {
	case DifficultyEasy:
		cfg.Match.TimerSeconds += 30
	case DifficultyHard:
		cfg.Match.TimerSeconds = max(30, cfg.Match.TimerSeconds-30)
	}
}

// ApplyOceanPreset modifies the config based on a difficulty preset.
func ApplyOceanPreset(cfg *OceanConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 5
		cfg.Enemies.SpeedPerLevel *= 0.5
		cfg.Gameplay.ContactDebounce = time.Second
	case DifficultyHard:
		cfg.Gameplay.Lives = 2
		cfg.Enemies.SpeedPerLevel *= 1.5
		cfg.Enemies.PerLevel++
	}
}

// ApplySpacePreset modifies the config based on a difficulty preset.
func ApplySpacePreset(cfg *SpaceConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 5
		cfg.Gameplay.LevelDuration = 15 * time.Second
		cfg.Enemies.SpeedPerLevel *= 0.5
	case DifficultyHard:
		cfg.Gameplay.Lives = 2
		cfg.Gameplay.LevelDuration = 30 * time.Second
		cfg.Enemies.PerLevel++
	}
}

func scaleChance(p, scale float64) float64 {
	return math.Max(0, math.Min(1, p*scale))
}
