package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/barnyard-arcade/internal/audio"
	"github.com/vovakirdan/barnyard-arcade/internal/core"
	"github.com/vovakirdan/barnyard-arcade/internal/games/brawl"
	"github.com/vovakirdan/barnyard-arcade/internal/games/ocean"
	"github.com/vovakirdan/barnyard-arcade/internal/games/space"
	"github.com/vovakirdan/barnyard-arcade/internal/platform/tui"
	"github.com/vovakirdan/barnyard-arcade/internal/registry"
	"github.com/vovakirdan/barnyard-arcade/internal/sim"
	"github.com/vovakirdan/barnyard-arcade/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagP1         string
	flagP2         string
	flagLevel      int
	flagSound      bool
	flagVolume     float64
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls (player 1):
  Arrows     - Move / jump / duck
  . or /     - Attack
  Space      - Special
  X          - Shoot (ocean boss level)
  Enter/P    - Pause, or continue after a level
  R          - Restart (after game over)
  Esc/Q      - Quit

Player 2 in brawl2p: WASD to move, Q attack, E special, Tab pause.

Difficulty options:
  easy   - More lives, longer clock, calmer CPU
  normal - File values with a slightly livelier CPU
  hard   - Fewer lives, shorter clock, aggressive CPU
  fixed  - Exactly the config file values

Examples:
  arcade play brawl
  arcade play brawl --p1 mooana --p2 porkchop --sound
  arcade play brawl2p --difficulty hard
  arcade play ocean --level 6
  arcade play space --config ./my-space.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagP1, "p1", "", "Brawl: character for player 1")
	playCmd.Flags().StringVar(&flagP2, "p2", "", "Brawl: character for player 2 or the CPU")
	playCmd.Flags().IntVar(&flagLevel, "level", 1, "Ocean: level to start at")
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound cues through the default audio device")
	playCmd.Flags().Float64Var(&flagVolume, "volume", 0, "Sound volume in doublings (negative is quieter)")
}

// applyGameFlags hands the command line settings to the game packages before
// a game is created.
func applyGameFlags() {
	brawl.SetConfigPath(flagConfig)
	brawl.SetDifficultyPreset(flagDifficulty)
	brawl.SetFighters(flagP1, flagP2)
	ocean.SetConfigPath(flagConfig)
	ocean.SetDifficultyPreset(flagDifficulty)
	ocean.SetStartLevel(flagLevel)
	space.SetConfigPath(flagConfig)
	space.SetDifficultyPreset(flagDifficulty)
}

// openSound starts the speaker when --sound is set. Failures leave the game
// silent.
func openSound(logger *log.Logger) (sim.Sink, func()) {
	if !flagSound {
		return nil, func() {}
	}
	p := audio.NewPlayer(flagVolume)
	if err := p.Init(); err != nil {
		logger.Warn("sound disabled", "error", err)
		return nil, func() {}
	}
	return p, p.Close
}

// terminalConfig builds the runtime config from the terminal size.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func newLogger(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]
	logger := newLogger("arcade")

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	applyGameFlags()
	if gameID == "brawl" || gameID == "brawl2p" {
		cfg, err := brawl.LoadConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading brawl config: %v\n", err)
			os.Exit(1)
		}
		p1, p2 := brawl.Fighters()
		for _, id := range []string{p1, p2} {
			if _, err := brawl.Lookup(cfg, id); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage - game still works
		store = nil
	}

	sound, closeSound := openSound(logger)
	runErr := tui.Run(game, terminalConfig(), tui.Options{
		Store:  store,
		Sound:  sound,
		Versus: gameID == "brawl2p",
	})
	closeSound()

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
