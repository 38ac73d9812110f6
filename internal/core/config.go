package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is the platform-facing summary of a running game.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
	Won      bool // Whether the local player (P1) came out on top
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}

// Bout is a finished fight reported to the platform for the history table.
type Bout struct {
	P1       string        // character id in seat 1
	P2       string        // character id in seat 2
	Winner   PlayerID      // winning seat
	Reason   string        // "ko", "time" or "draw"
	P1Health float64       // health left when the bout ended
	P2Health float64
	Duration time.Duration // fight time, pauses included
	Versus   string        // "cpu", "local" or "script"
}
