package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/barnyard-arcade/internal/platform/tui"
	"github.com/vovakirdan/barnyard-arcade/internal/registry"
	"github.com/vovakirdan/barnyard-arcade/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game.
Left/Right picks player 1's fighter (or the ocean start level),
A/D picks player 2's fighter. After a game ends, Esc returns here.

Controls:
  Up/Down/j/k  - Navigate menu
  Left/Right   - Change option
  A/D          - Change player 2's fighter
  Enter/Space  - Select game
  Tab          - Scoreboard and bout history
  Q            - Quit

Examples:
  arcade menu
  arcade menu --fps 30 --sound
  arcade menu --db ./scores.db`,
	Run: runMenu,
}

func init() {
	// Uses global flags from main.go (--fps, --seed, --db)
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	menuCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound cues through the default audio device")
	menuCmd.Flags().Float64Var(&flagVolume, "volume", 0, "Sound volume in doublings (negative is quieter)")
}

func runMenu(_ *cobra.Command, _ []string) {
	logger := newLogger("arcade")

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		store = nil
	}

	applyGameFlags()
	sound, closeSound := openSound(logger)
	cfg := terminalConfig()

	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		sel := menuResult.Selection
		if sel.GameID == "" {
			break
		}
		sel.Apply()

		game, err := registry.Create(sel.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		// A fresh seed per game unless one was pinned
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		if err := tui.Run(game, cfg, tui.Options{
			Store:  store,
			Sound:  sound,
			Versus: sel.Versus,
		}); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}

	closeSound()
	if store != nil {
		store.Close()
	}
}
