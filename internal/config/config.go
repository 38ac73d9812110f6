// Package config provides YAML-based game configuration loading and
// difficulty presets for the arcade platform.
package config

import "time"

// BrawlConfig contains all configuration for Barnyard Brawl.
type BrawlConfig struct {
	Physics BrawlPhysics `yaml:"physics"`
	Arena   BrawlArena   `yaml:"arena"`
	Combat  BrawlCombat  `yaml:"combat"`
	Match   BrawlMatch   `yaml:"match"`
	AI      BrawlAI      `yaml:"ai"`
	Roster  []Character  `yaml:"roster"`
}

// BrawlPhysics defines the per-frame fighter kinematics.
type BrawlPhysics struct {
	Gravity      float64 `yaml:"gravity"`
	Friction     float64 `yaml:"friction"`
	JumpVelocity float64 `yaml:"jump_velocity"` // negative is up
	MaxJumps     int     `yaml:"max_jumps"`
	MoveImpulse  float64 `yaml:"move_impulse"`
}

// BrawlArena defines the arena dimensions in world units.
type BrawlArena struct {
	Width         float64 `yaml:"width"`
	WallLeft      float64 `yaml:"wall_left"`  // minimum x
	WallRight     float64 `yaml:"wall_right"` // margin subtracted from width for maximum x
	P1StartX      float64 `yaml:"p1_start_x"`
	P2StartOffset float64 `yaml:"p2_start_offset"` // p2 starts at width - offset
	FighterWidth  float64 `yaml:"fighter_width"`
	FighterHeight float64 `yaml:"fighter_height"`
}

// MinX returns the left wall.
func (a BrawlArena) MinX() float64 { return a.WallLeft }

// MaxX returns the right wall.
func (a BrawlArena) MaxX() float64 { return a.Width - a.WallRight }

// BrawlCombat defines ranges, lockouts and damage modifiers.
type BrawlCombat struct {
	MaxHealth       float64       `yaml:"max_health"`
	MeleeRange      float64       `yaml:"melee_range"`
	SpecialRange    float64       `yaml:"special_range"`
	BlockMultiplier float64       `yaml:"block_multiplier"`
	Block           time.Duration `yaml:"block"`
	Attack          time.Duration `yaml:"attack"`
	SpecialLockout  time.Duration `yaml:"special_lockout"`
	SpecialCooldown time.Duration `yaml:"special_cooldown"`
	HitFlash        time.Duration `yaml:"hit_flash"`
	SpecialBursts   int           `yaml:"special_bursts"`
	BurstInterval   time.Duration `yaml:"burst_interval"`
}

// BrawlMatch defines the round clock and match length.
type BrawlMatch struct {
	TimerSeconds int           `yaml:"timer_seconds"`
	RoundsToWin  int           `yaml:"rounds_to_win"`
	RevealDelay  time.Duration `yaml:"reveal_delay"`
}

// BrawlAI holds the per-frame probabilities and ranges of the CPU fighter.
type BrawlAI struct {
	WanderChance  float64 `yaml:"wander_chance"`
	WanderSpeed   float64 `yaml:"wander_speed"` // full spread of the random impulse
	ChaseChance   float64 `yaml:"chase_chance"`
	ChaseRange    float64 `yaml:"chase_range"` // chase only when farther than this
	ChaseSpeed    float64 `yaml:"chase_speed"`
	JumpChance    float64 `yaml:"jump_chance"`
	AttackChance  float64 `yaml:"attack_chance"`
	AttackRange   float64 `yaml:"attack_range"`
	SpecialChance float64 `yaml:"special_chance"`
	SpecialRange  float64 `yaml:"special_range"`
	BlockChance   float64 `yaml:"block_chance"`
}

// Character is one roster entry.
type Character struct {
	ID            string  `yaml:"id"`
	Name          string  `yaml:"name"`
	Glyph         string  `yaml:"glyph"`
	Special       string  `yaml:"special"`
	VictoryQuote  string  `yaml:"victory_quote"`
	Damage        float64 `yaml:"damage"`
	SpecialDamage float64 `yaml:"special_damage"`
	Speed         int     `yaml:"speed"` // shown on the select screen only
}

// Character looks up a roster entry by id.
func (c BrawlConfig) Character(id string) (Character, bool) {
	for _, ch := range c.Roster {
		if ch.ID == id {
			return ch, true
		}
	}
	return Character{}, false
}

// OceanConfig contains all configuration for the ocean adventure.
type OceanConfig struct {
	Canvas   Canvas        `yaml:"canvas"`
	Player   Mover         `yaml:"player"`
	Enemies  Swarm         `yaml:"enemies"`
	Pellets  OceanPellets  `yaml:"pellets"`
	Danger   DangerZone    `yaml:"danger_zone"`
	Boss     OceanBoss     `yaml:"boss"`
	Bubbles  OceanBubbles  `yaml:"bubbles"`
	Gameplay OceanGameplay `yaml:"gameplay"`
}

// Canvas is the playfield size in world units.
type Canvas struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Mover describes a square actor moved by held keys.
type Mover struct {
	Size  float64 `yaml:"size"`
	Speed float64 `yaml:"speed"`
}

// Swarm describes the bouncing enemies of a level.
// Count is BaseCount + PerLevel*level; each velocity axis is drawn from
// (rand-0.5) * (BaseSpeed + SpeedPerLevel*level).
type Swarm struct {
	Size          float64 `yaml:"size"`
	BaseCount     int     `yaml:"base_count"`
	PerLevel      int     `yaml:"per_level"`
	BaseSpeed     float64 `yaml:"base_speed"`
	SpeedPerLevel float64 `yaml:"speed_per_level"`
}

// OceanPellets describes the collectibles.
type OceanPellets struct {
	Size        float64 `yaml:"size"`
	PerLevel    int     `yaml:"per_level"`
	Points      int     `yaml:"points"`
	ScrollSpeed float64 `yaml:"scroll_speed"`
}

// DangerZone is the strip at the bottom of the canvas that grows per level.
type DangerZone struct {
	Base       float64 `yaml:"base"`
	PerLevel   float64 `yaml:"per_level"`
	FirstLevel int     `yaml:"first_level"` // first level where contact costs a life
}

// Height returns the zone height for a level.
func (d DangerZone) Height(level int) float64 {
	return d.Base + d.PerLevel*float64(level-1)
}

// OceanBoss describes the final level's boss.
type OceanBoss struct {
	Size   float64 `yaml:"size"`
	HP     int     `yaml:"hp"`
	VX     float64 `yaml:"vx"`
	VY     float64 `yaml:"vy"`
	StartY float64 `yaml:"start_y"`
}

// OceanBubbles describes the projectiles unlocked by the power-up.
type OceanBubbles struct {
	Size      float64       `yaml:"size"`
	Speed     float64       `yaml:"speed"`
	RateLimit time.Duration `yaml:"rate_limit"`
}

// OceanGameplay holds lives, scoring and level count.
type OceanGameplay struct {
	Levels          int           `yaml:"levels"` // the last one is the boss
	Lives           int           `yaml:"lives"`
	LevelBonus      int           `yaml:"level_bonus"` // multiplied by level
	ContactDebounce time.Duration `yaml:"contact_debounce"`
}

// SpaceConfig contains all configuration for the space adventure.
type SpaceConfig struct {
	Canvas   Canvas        `yaml:"canvas"`
	Player   Mover         `yaml:"player"`
	Enemies  Swarm         `yaml:"enemies"`
	Gameplay SpaceGameplay `yaml:"gameplay"`
}

// SpaceGameplay holds level timing, scoring and lives.
type SpaceGameplay struct {
	Levels          int           `yaml:"levels"`
	LevelDuration   time.Duration `yaml:"level_duration"`
	PointsPerSecond int           `yaml:"points_per_second"`
	LevelBonus      int           `yaml:"level_bonus"`
	Lives           int           `yaml:"lives"`
	SpawnBand       float64       `yaml:"spawn_band"` // enemies spawn in the top fraction of the canvas
	AdvanceDelay    time.Duration `yaml:"advance_delay"`
	PlayerMargin    float64       `yaml:"player_margin"` // gap between the player and the bottom edge
}
