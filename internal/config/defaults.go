package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/brawl.yaml
var defaultBrawlYAML []byte

//go:embed defaults/ocean.yaml
var defaultOceanYAML []byte

//go:embed defaults/space.yaml
var defaultSpaceYAML []byte

// DefaultBrawlConfig returns the default Barnyard Brawl configuration.
func DefaultBrawlConfig() BrawlConfig {
	return BrawlConfig{
		Physics: BrawlPhysics{
			Gravity:      0.8,
			Friction:     0.85,
			JumpVelocity: -18,
			MaxJumps:     2,
			MoveImpulse:  8,
		},
		Arena: BrawlArena{
			Width:         1200,
			WallLeft:      50,
			WallRight:     150,
			P1StartX:      200,
			P2StartOffset: 300,
			FighterWidth:  100,
			FighterHeight: 100,
		},
		Combat: BrawlCombat{
			MaxHealth:       100,
			MeleeRange:      150,
			SpecialRange:    250,
			BlockMultiplier: 0.3,
			Block:           500 * time.Millisecond,
			Attack:          300 * time.Millisecond,
			SpecialLockout:  500 * time.Millisecond,
			SpecialCooldown: 3000 * time.Millisecond,
			HitFlash:        500 * time.Millisecond,
			SpecialBursts:   5,
			BurstInterval:   100 * time.Millisecond,
		},
		Match: BrawlMatch{
			TimerSeconds: 99,
			RoundsToWin:  1,
			RevealDelay:  1000 * time.Millisecond,
		},
		AI: BrawlAI{
			WanderChance:  0.02,
			WanderSpeed:   10,
			ChaseChance:   0.1,
			ChaseRange:    150,
			ChaseSpeed:    5,
			JumpChance:    0.02,
			AttackChance:  0.05,
			AttackRange:   150,
			SpecialChance: 0.01,
			SpecialRange:  200,
			BlockChance:   0.3,
		},
		Roster: DefaultRoster(),
	}
}

// DefaultRoster returns the eight barnyard fighters.
func DefaultRoster() []Character {
	return []Character{
		{ID: "gigi", Name: "GiGi the Goat", Glyph: "G", Special: "Headbutt Rampage", VictoryQuote: "My skin is FLAWLESS and so is my VICTORY!", Damage: 12, SpecialDamage: 25, Speed: 7},
		{ID: "brandy", Name: "Brandy the Fox", Glyph: "F", Special: "Sneaky Swipe", VictoryQuote: "Crime DOES pay, baby!", Damage: 10, SpecialDamage: 22, Speed: 9},
		{ID: "clucky", Name: "Clucky McFeathers", Glyph: "C", Special: "Peck Storm", VictoryQuote: "BAWK BAWK! Who's chicken NOW?!", Damage: 11, SpecialDamage: 20, Speed: 8},
		{ID: "mooana", Name: "Mooana the Diva Cow", Glyph: "M", Special: "Hoof of Fury", VictoryQuote: "I didn't choose the moo life, the moo life chose ME!", Damage: 15, SpecialDamage: 28, Speed: 5},
		{ID: "porkchop", Name: "Sir Porkchop", Glyph: "P", Special: "Mud Bomb", VictoryQuote: "A gentleman always wins with CLASS!", Damage: 13, SpecialDamage: 24, Speed: 6},
		{ID: "woolly", Name: "Woolly the Sheep", Glyph: "W", Special: "Woolly Whirlwind", VictoryQuote: "Ewe didn't stand a CHANCE!", Damage: 11, SpecialDamage: 21, Speed: 7},
		{ID: "benny", Name: `Benny "Bounce" Bunny`, Glyph: "B", Special: "Carrot Cannon", VictoryQuote: "What's up, DOC? Your defeat, that's what!", Damage: 9, SpecialDamage: 19, Speed: 10},
		{ID: "rocky", Name: "Rocky the Rooster", Glyph: "R", Special: "Dawn Screech", VictoryQuote: "COCK-A-DOODLE-DON'T mess with me!", Damage: 14, SpecialDamage: 26, Speed: 8},
	}
}

// DefaultOceanConfig returns the default ocean adventure configuration.
func DefaultOceanConfig() OceanConfig {
	return OceanConfig{
		Canvas: Canvas{Width: 800, Height: 600},
		Player: Mover{Size: 48, Speed: 8},
		Enemies: Swarm{
			Size:          40,
			BaseCount:     3,
			PerLevel:      2,
			BaseSpeed:     2,
			SpeedPerLevel: 0.5,
		},
		Pellets: OceanPellets{
			Size:        30,
			PerLevel:    8,
			Points:      50,
			ScrollSpeed: 2,
		},
		Danger: DangerZone{Base: 10, PerLevel: 40, FirstLevel: 2},
		Boss: OceanBoss{
			Size:   150,
			HP:     10,
			VX:     3,
			VY:     2,
			StartY: 100,
		},
		Bubbles: OceanBubbles{
			Size:      20,
			Speed:     8,
			RateLimit: 300 * time.Millisecond,
		},
		Gameplay: OceanGameplay{
			Levels:          6,
			Lives:           3,
			LevelBonus:      100,
			ContactDebounce: 500 * time.Millisecond,
		},
	}
}

// DefaultSpaceConfig returns the default space adventure configuration.
func DefaultSpaceConfig() SpaceConfig {
	return SpaceConfig{
		Canvas: Canvas{Width: 800, Height: 600},
		Player: Mover{Size: 48, Speed: 8},
		Enemies: Swarm{
			Size:          40,
			BaseCount:     3,
			PerLevel:      2,
			BaseSpeed:     2,
			SpeedPerLevel: 0.5,
		},
		Gameplay: SpaceGameplay{
			Levels:          5,
			LevelDuration:   20 * time.Second,
			PointsPerSecond: 10,
			LevelBonus:      100,
			Lives:           3,
			SpawnBand:       0.6,
			AdvanceDelay:    2 * time.Second,
			PlayerMargin:    20,
		},
	}
}
